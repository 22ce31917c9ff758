// Package config loads pipeline settings from defaults, an optional YAML
// file and ADCLICK_* environment variables.
package config

import (
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/errors"
	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/log"
)

// EnvPrefix is prepended to environment variable names, e.g. ADCLICK_MODEL_DIR.
const EnvPrefix = "ADCLICK"

// Config is the effective pipeline configuration.
type Config struct {
	Data     DataConfig     `mapstructure:"data" yaml:"data"`
	Model    ModelConfig    `mapstructure:"model" yaml:"model"`
	Split    SplitConfig    `mapstructure:"split" yaml:"split"`
	SVM      SVMConfig      `mapstructure:"svm" yaml:"svm"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Tracking TrackingConfig `mapstructure:"tracking" yaml:"tracking"`
	Report   ReportConfig   `mapstructure:"report" yaml:"report"`
}

type DataConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

type ModelConfig struct {
	Dir      string `mapstructure:"dir" yaml:"dir"`
	Filename string `mapstructure:"filename" yaml:"filename"`
}

type SplitConfig struct {
	TestSize    float64 `mapstructure:"test_size" yaml:"test_size"`
	RandomState int64   `mapstructure:"random_state" yaml:"random_state"`
}

type SVMConfig struct {
	Kernel      string  `mapstructure:"kernel" yaml:"kernel"`
	C           float64 `mapstructure:"c" yaml:"c"`
	Gamma       string  `mapstructure:"gamma" yaml:"gamma"`
	RandomState int64   `mapstructure:"random_state" yaml:"random_state"`
	Tol         float64 `mapstructure:"tol" yaml:"tol"`
	MaxIter     int     `mapstructure:"max_iter" yaml:"max_iter"`
}

type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	File       string `mapstructure:"file" yaml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
}

// TrackingConfig enables run history when DBPath is set.
type TrackingConfig struct {
	DBPath string `mapstructure:"db_path" yaml:"db_path"`
}

// ReportConfig enables the evaluation chart when PlotPath is set.
type ReportConfig struct {
	PlotPath string `mapstructure:"plot_path" yaml:"plot_path"`
}

// SetDefaults registers every key with its default value. Keys must be
// registered for environment overrides to reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data.path", filepath.Join("data", "advertising.csv"))
	v.SetDefault("model.dir", "model")
	v.SetDefault("model.filename", "model.sav")
	v.SetDefault("split.test_size", 0.3)
	v.SetDefault("split.random_state", 42)
	v.SetDefault("svm.kernel", "rbf")
	v.SetDefault("svm.c", 1.0)
	v.SetDefault("svm.gamma", "scale")
	v.SetDefault("svm.random_state", 33)
	v.SetDefault("svm.tol", 1e-3)
	v.SetDefault("svm.max_iter", -1)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("tracking.db_path", "")
	v.SetDefault("report.plot_path", "")
}

// NewViper returns a viper instance with defaults and environment binding.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file into v and decodes the result.
// An empty path skips the file. The returned config has been validated.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration with no file and no environment applied.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(err)
	}
	return &cfg
}

var kernels = map[string]bool{"linear": true, "poly": true, "rbf": true, "sigmoid": true}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Data.Path == "":
		return errors.NewValidationError("data.path", "must not be empty", c.Data.Path)
	case c.Model.Filename == "":
		return errors.NewValidationError("model.filename", "must not be empty", c.Model.Filename)
	case c.Split.TestSize <= 0 || c.Split.TestSize >= 1:
		return errors.NewValidationError("split.test_size", "must be in the open interval (0, 1)", c.Split.TestSize)
	case c.SVM.C <= 0:
		return errors.NewValidationError("svm.c", "must be strictly positive", c.SVM.C)
	case !kernels[c.SVM.Kernel]:
		return errors.NewValidationError("svm.kernel", "must be one of linear, poly, rbf, sigmoid", c.SVM.Kernel)
	case !validGamma(c.SVM.Gamma):
		return errors.NewValidationError("svm.gamma", `must be "scale", "auto" or a positive number`, c.SVM.Gamma)
	case c.SVM.Tol <= 0:
		return errors.NewValidationError("svm.tol", "must be strictly positive", c.SVM.Tol)
	case c.SVM.MaxIter == 0 || c.SVM.MaxIter < -1:
		return errors.NewValidationError("svm.max_iter", "must be positive or -1", c.SVM.MaxIter)
	case c.Log.Format != "json" && c.Log.Format != "console":
		return errors.NewValidationError("log.format", "must be json or console", c.Log.Format)
	case c.Log.MaxAgeDays < 0:
		return errors.NewValidationError("log.max_age_days", "must not be negative", c.Log.MaxAgeDays)
	}
	if _, err := log.ToLogLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

func validGamma(g string) bool {
	if g == "scale" || g == "auto" {
		return true
	}
	v, err := strconv.ParseFloat(g, 64)
	return err == nil && v > 0
}

// ModelPath is the location of the model artifact.
func (c *Config) ModelPath() string {
	return filepath.Join(c.Model.Dir, c.Model.Filename)
}

// LogOptions maps the log section onto pkg/log options.
func (c *Config) LogOptions() log.Options {
	return log.Options{
		Level:      c.Log.Level,
		Format:     c.Log.Format,
		File:       c.Log.File,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
	}
}

// Dump writes the configuration as YAML.
func (c *Config) Dump(w io.Writer) error {
	out, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	_, err = w.Write(out)
	return errors.Wrap(err, "write config")
}
