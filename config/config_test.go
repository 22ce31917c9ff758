package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/errors"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load(NewViper(), "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("data", "advertising.csv"), cfg.Data.Path)
	assert.Equal(t, filepath.Join("model", "model.sav"), cfg.ModelPath())
	assert.Equal(t, 0.3, cfg.Split.TestSize)
	assert.Equal(t, int64(42), cfg.Split.RandomState)
	assert.Equal(t, "rbf", cfg.SVM.Kernel)
	assert.Equal(t, 1.0, cfg.SVM.C)
	assert.Equal(t, "scale", cfg.SVM.Gamma)
	assert.Equal(t, int64(33), cfg.SVM.RandomState)
	assert.Equal(t, -1, cfg.SVM.MaxIter)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 28, cfg.Log.MaxAgeDays)
	assert.Empty(t, cfg.Tracking.DBPath)

	assert.Equal(t, cfg, Default())
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adclick.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
model:
  filename: svc.sav.xz
svm:
  c: 2.5
  gamma: 0.1
log:
  format: console
  max_age_days: 7
`), 0o644))
	t.Setenv("ADCLICK_MODEL_DIR", "/tmp/artifacts")
	t.Setenv("ADCLICK_SPLIT_RANDOM_STATE", "7")

	cfg, err := Load(NewViper(), path)
	require.NoError(t, err)

	assert.Equal(t, "svc.sav.xz", cfg.Model.Filename)
	assert.Equal(t, "/tmp/artifacts", cfg.Model.Dir)
	assert.Equal(t, int64(7), cfg.Split.RandomState)
	assert.Equal(t, 2.5, cfg.SVM.C)
	assert.Equal(t, "0.1", cfg.SVM.Gamma)
	assert.Equal(t, "console", cfg.LogOptions().Format)
	assert.Equal(t, 7, cfg.LogOptions().MaxAgeDays)
	assert.Equal(t, 100, cfg.LogOptions().MaxSizeMB)
	assert.Equal(t, "rbf", cfg.SVM.Kernel, "unset keys keep their defaults")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(NewViper(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		param  string
	}{
		{name: "test size zero", mutate: func(c *Config) { c.Split.TestSize = 0 }, param: "split.test_size"},
		{name: "test size one", mutate: func(c *Config) { c.Split.TestSize = 1 }, param: "split.test_size"},
		{name: "non-positive C", mutate: func(c *Config) { c.SVM.C = 0 }, param: "svm.c"},
		{name: "empty filename", mutate: func(c *Config) { c.Model.Filename = "" }, param: "model.filename"},
		{name: "unknown kernel", mutate: func(c *Config) { c.SVM.Kernel = "cubic" }, param: "svm.kernel"},
		{name: "bad gamma", mutate: func(c *Config) { c.SVM.Gamma = "-1" }, param: "svm.gamma"},
		{name: "bad max iter", mutate: func(c *Config) { c.SVM.MaxIter = 0 }, param: "svm.max_iter"},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, param: "log.format"},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "loud" }, param: "log.level"},
		{name: "negative log age", mutate: func(c *Config) { c.Log.MaxAgeDays = -1 }, param: "log.max_age_days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()

			var ve *errors.ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tt.param, ve.ParamName)
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Default().Dump(&buf))

	out := buf.String()
	assert.Contains(t, out, "kernel: rbf")
	assert.Contains(t, out, "filename: model.sav")

	var back Config
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, *Default(), back)
}
