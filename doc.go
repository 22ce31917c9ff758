// Package adclick trains and serves a support vector classifier that predicts
// whether a visitor clicks on an online advertisement.
//
// The pipeline runs in four stages:
//
//  1. Load: read the advertising dataset as pandas "columns" JSON
//     (see dataset.ToJSON and dataset.FromJSON).
//  2. Preprocess: drop the identifier columns, split 70/30 with a fixed seed,
//     then apply MinMax scaling followed by standardization to the numeric
//     features (preprocessing.ColumnTransformer).
//  3. Train: fit an RBF sklearn/svm.SVC and persist it with gob, optionally
//     xz-compressed (core/model.SaveModel).
//  4. Evaluate and predict: reload the model, print a classification report
//     and confusion matrix, and record the run in a SQLite history.
//
// The adclick command wires everything together:
//
//	adclick run --data data/advertising.csv --model-dir model
//	adclick evaluate --plot reports/classes.png
//	adclick predict --score-only
//	adclick history --limit 10
//
// Configuration is read from a YAML file, ADCLICK_* environment variables and
// command-line flags, in increasing order of precedence (see package config).
package adclick
