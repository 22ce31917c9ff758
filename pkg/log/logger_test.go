package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/errors"
)

func TestTestLogger(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelDebug)

	testLogger.Debug("debug message", "key1", "value1", "number", 42)
	testLogger.Info("info message", OperationKey, OperationFit)
	testLogger.Warn("warning message", ErrorCodeKey, ErrorConvergence)
	testLogger.Error("error message", fmt.Errorf("boom"), ErrorCodeKey, ErrorNotFound)

	require.NotEmpty(t, buffer.String())
	for _, msg := range []string{"debug message", "info message", "warning message", "error message"} {
		assert.True(t, testLogger.ContainsMessage(msg), msg)
	}
	assert.True(t, testLogger.ContainsField("key1", "value1"))
	assert.True(t, testLogger.ContainsField("number", 42.0))
	assert.True(t, testLogger.ContainsField(ErrAttrKey, "boom"))
}

func TestTestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)

	contextLogger := testLogger.With(
		ModelNameKey, "SVC",
		ComponentKey, "pipeline.trainer",
	)
	contextLogger.Info("model trained", SamplesKey, 700)
	testLogger.Debug("filtered out")

	entries, err := testLogger.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "SVC", entries[0][ModelNameKey])
	assert.Equal(t, "pipeline.trainer", entries[0][ComponentKey])
	assert.Equal(t, 700.0, entries[0][SamplesKey])

	assert.True(t, testLogger.Enabled(context.Background(), LevelError))
	assert.False(t, testLogger.Enabled(context.Background(), LevelDebug))
}

func TestTestLoggerConcurrent(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				testLogger.Info("message", "goroutine_id", id, "message_id", j)
			}
		}(i)
	}
	wg.Wait()

	entries, err := testLogger.GetLogEntries()
	require.NoError(t, err)
	assert.Len(t, entries, 20)
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestZerologProvider(t *testing.T) {
	var buf bytes.Buffer
	provider := NewZerologProvider(&buf, LevelInfo)

	logger := provider.GetLoggerWithName("pipeline.loader")
	logger.Debug("hidden")
	logger.Info("dataset loaded", SamplesKey, 1000, DatasetPathKey, "data/advertising.csv")
	logger.With(ModelNameKey, "SVC").Warn("slow", DurationMsKey, 12)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "info", entries[0]["level"])
	assert.Equal(t, "dataset loaded", entries[0]["message"])
	assert.Equal(t, "pipeline.loader", entries[0][ComponentKey])
	assert.Equal(t, 1000.0, entries[0][SamplesKey])
	assert.Equal(t, "SVC", entries[1][ModelNameKey])

	assert.False(t, logger.Enabled(context.Background(), LevelDebug))

	provider.SetLevel(LevelDebug)
	buf.Reset()
	provider.GetLogger().Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestZerologLoggerErrorAndObjects(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologProvider(&buf, LevelDebug).GetLogger()

	logger.Error("training failed", errors.NewValueError("SVC.Fit", "bad input"), OperationKey, OperationFit)
	logger.Warn("did not converge", "warning", errors.NewConvergenceWarning("SVC", 10, ""))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "adclick: SVC.Fit: bad input", entries[0]["error"])
	assert.Equal(t, OperationFit, entries[0][OperationKey])

	warning, ok := entries[1]["warning"].(map[string]interface{})
	require.True(t, ok, "warning should be logged as an object")
	assert.Equal(t, "ConvergenceWarning", warning["type"])
	assert.Equal(t, 10.0, warning["iterations"])
}

func TestSetupLogger(t *testing.T) {
	t.Cleanup(func() {
		errors.SetZerologWarnFunc(nil)
		SetProvider(NewZerologProvider(&bytes.Buffer{}, LevelInfo))
	})

	var out bytes.Buffer
	file := filepath.Join(t.TempDir(), "adclick.log")
	closer, err := SetupLogger(Options{Level: "debug", Output: &out, File: file, MaxSizeMB: 1})
	require.NoError(t, err)
	defer closer.Close()

	GetLoggerWithName("test").Debug("hello", SamplesKey, 3)
	errors.Warn(errors.NewUndefinedMetricWarning("precision", "no predicted samples", 0))

	assert.Contains(t, out.String(), "hello")
	assert.Contains(t, out.String(), "UndefinedMetricWarning")

	_, err = SetupLogger(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestToLogLevel(t *testing.T) {
	tests := map[string]Level{
		"debug": LevelDebug,
		"info":  LevelInfo,
		"":      LevelInfo,
		"warn":  LevelWarn,
		"error": LevelError,
	}
	for in, want := range tests {
		got, err := ToLogLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.NotEqual(t, "UNKNOWN", got.String())
	}
}

func BenchmarkTestLogger(b *testing.B) {
	testLogger, _ := NewTestLogger(LevelInfo)
	contextLogger := testLogger.With(ModelNameKey, "SVC")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		contextLogger.Info("benchmark message", "iteration", i, OperationKey, OperationPredict)
	}
}
