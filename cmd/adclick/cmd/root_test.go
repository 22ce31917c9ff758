package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/dataset"
)

func writeDataset(t *testing.T, path string, n int) {
	t.Helper()
	cols := map[string][]float64{}
	numeric := []string{dataset.ColDailyTimeSpent, dataset.ColAge, dataset.ColAreaIncome, dataset.ColDailyInternetUsage, dataset.ColMale, dataset.ColClickedOnAd}
	for _, name := range numeric {
		cols[name] = make([]float64, n)
	}
	text := make([]string, n)
	for i := 0; i < n; i++ {
		clicked := i%4 == 0
		shift := float64(i%7) - 3
		if clicked {
			cols[dataset.ColDailyTimeSpent][i] = 45 + shift
			cols[dataset.ColAge][i] = 45 + shift
			cols[dataset.ColAreaIncome][i] = 40000 + 500*shift
			cols[dataset.ColDailyInternetUsage][i] = 130 + shift
			cols[dataset.ColClickedOnAd][i] = 1
		} else {
			cols[dataset.ColDailyTimeSpent][i] = 78 + shift
			cols[dataset.ColAge][i] = 29 + shift
			cols[dataset.ColAreaIncome][i] = 65000 + 500*shift
			cols[dataset.ColDailyInternetUsage][i] = 225 + shift
		}
		cols[dataset.ColMale][i] = float64(i % 2)
		text[i] = fmt.Sprintf("value %d", i)
	}

	tbl, err := dataset.NewTable(
		dataset.NumericColumn(dataset.ColDailyTimeSpent, cols[dataset.ColDailyTimeSpent]),
		dataset.NumericColumn(dataset.ColAge, cols[dataset.ColAge]),
		dataset.NumericColumn(dataset.ColAreaIncome, cols[dataset.ColAreaIncome]),
		dataset.NumericColumn(dataset.ColDailyInternetUsage, cols[dataset.ColDailyInternetUsage]),
		dataset.TextColumn(dataset.ColAdTopicLine, text),
		dataset.TextColumn(dataset.ColCity, text),
		dataset.NumericColumn(dataset.ColMale, cols[dataset.ColMale]),
		dataset.TextColumn(dataset.ColCountry, text),
		dataset.TextColumn(dataset.ColTimestamp, text),
		dataset.NumericColumn(dataset.ColClickedOnAd, cols[dataset.ColClickedOnAd]),
	)
	require.NoError(t, err)
	require.NoError(t, dataset.WriteCSV(path, tbl))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI_RunAndHistory(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "advertising.csv")
	writeDataset(t, data, 200)

	common := []string{
		"--data", data,
		"--model-dir", filepath.Join(dir, "model"),
		"--tracking-db", filepath.Join(dir, "runs.db"),
		"--log-level", "error",
	}

	out, err := execute(t, append([]string{"run"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "MODEL EVALUATION - Classification Report (SVM)")
	assert.Contains(t, out, "Total predictions: 60")

	out, err = execute(t, append([]string{"predict", "--score-only"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Model score on test data: ")

	out, err = execute(t, append([]string{"history"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "STAGE")
	assert.Contains(t, out, "evaluate")
	assert.Contains(t, out, "train")
}

func TestCLI_Config(t *testing.T) {
	out, err := execute(t, "config", "--model-filename", "svc.sav.xz", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "filename: svc.sav.xz")
	assert.Contains(t, out, "kernel: rbf")
}

func TestCLI_EvaluateMissingModel(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "advertising.csv")
	writeDataset(t, data, 40)

	_, err := execute(t, "evaluate", "--data", data, "--model-dir", filepath.Join(dir, "none"),
		"--tracking-db", "", "--log-level", "error")
	assert.Error(t, err)
}
