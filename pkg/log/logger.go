package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/errors"
)

// Options configures SetupLogger.
type Options struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string
	// Format is "json" (default) or "console".
	Format string
	// File, when set, additionally writes JSON records to a rotating file.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	// Output defaults to os.Stderr; stdout is reserved for reports.
	Output io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetupLogger installs a zerolog-backed provider as the process-wide default
// and routes pkg/errors warnings through it. The returned closer flushes the
// rotating log file, if any.
func SetupLogger(opts Options) (io.Closer, error) {
	level, err := ToLogLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if opts.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		}
		out = zerolog.MultiLevelWriter(out, rotating)
		closer = rotating
	}

	zerolog.ErrorStackMarshaler = marshalStack
	zerolog.ErrorStackFieldName = StacktraceAttrKey
	zerolog.ErrorFieldName = ErrAttrKey

	provider := NewZerologProvider(out, level)
	SetProvider(provider)

	warnLogger := provider.GetLoggerWithName("warnings")
	errors.SetZerologWarnFunc(func(w error) {
		warnLogger.Warn(w.Error(), "warning", w)
	})

	return closer, nil
}

// ToLogLevel parses a textual log level.
func ToLogLevel(level string) (Level, error) {
	switch level {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.NewValidationError("log.level", "must be one of debug, info, warn, error", level)
	}
}
