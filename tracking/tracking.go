// Package tracking records pipeline runs in a SQLite database.
package tracking

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS training_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    stage VARCHAR(20) NOT NULL,
    model_name VARCHAR(50) NOT NULL,
    model_path TEXT NOT NULL,
    accuracy REAL,
    precision REAL,
    recall REAL,
    f1 REAL,
    auc REAL,
    train_samples INTEGER,
    test_samples INTEGER,
    duration_ms INTEGER,
    recorded_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_training_log_recorded_at ON training_log(recorded_at);
`

// Stage names the pipeline step a run belongs to.
type Stage string

const (
	StageTrain    Stage = "train"
	StageEvaluate Stage = "evaluate"
	StagePredict  Stage = "predict"
)

// Run is one row of the training log. Precision, recall and F1 are the
// scores of the positive class.
type Run struct {
	ID           int64
	Stage        Stage
	ModelName    string
	ModelPath    string
	Accuracy     float64
	Precision    float64
	Recall       float64
	F1           float64
	AUC          float64
	TrainSamples int
	TestSamples  int
	DurationMs   int64
	RecordedAt   time.Time
}

// Store is a run history backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open tracking db %s", path)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "create tracking schema in %s", path)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun inserts r and returns its id. A zero RecordedAt is set to now.
func (s *Store) RecordRun(ctx context.Context, r Run) (int64, error) {
	if r.RecordedAt.IsZero() {
		r.RecordedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO training_log (stage, model_name, model_path, accuracy, precision, recall, f1, auc,
                                  train_samples, test_samples, duration_ms, recorded_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(r.Stage), r.ModelName, r.ModelPath, r.Accuracy, r.Precision, r.Recall, r.F1, r.AUC,
		r.TrainSamples, r.TestSamples, r.DurationMs, r.RecordedAt.UTC())
	if err != nil {
		return 0, errors.Wrap(err, "insert run")
	}
	return res.LastInsertId()
}

// ListRuns returns up to limit runs, newest first. limit <= 0 returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
        SELECT id, stage, model_name, model_path, accuracy, precision, recall, f1, auc,
               train_samples, test_samples, duration_ms, recorded_at
        FROM training_log
        ORDER BY recorded_at DESC, id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query runs")
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		var r Run
		var stage string
		if err := rows.Scan(&r.ID, &stage, &r.ModelName, &r.ModelPath, &r.Accuracy, &r.Precision, &r.Recall,
			&r.F1, &r.AUC, &r.TrainSamples, &r.TestSamples, &r.DurationMs, &r.RecordedAt); err != nil {
			return nil, errors.Wrap(err, "scan run")
		}
		r.Stage = Stage(stage)
		runs = append(runs, r)
	}
	return runs, errors.Wrap(rows.Err(), "iterate runs")
}
