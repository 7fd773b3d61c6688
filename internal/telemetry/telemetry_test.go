package telemetry_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockinterview/interviewer/internal/telemetry"
)

func TestInitLogger_WritesJSONToFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "logs", "interviewer.log")
	logger, closeLog, err := telemetry.InitLogger(telemetry.LogOptions{File: path, Level: slog.LevelInfo})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("interview started", "session_id", "abc")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"interview started"`)
	assert.Contains(t, string(data), `"session_id":"abc"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestInitTelemetry_EmptyDirIsNoop(t *testing.T) {
	tel, err := telemetry.InitTelemetry(context.Background(), "")
	require.NoError(t, err)

	_, span := tel.Tracer.Start(context.Background(), "noop")
	span.End()
	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestInitTelemetry_ExportsToFiles(t *testing.T) {
	dir := t.TempDir()
	tel, err := telemetry.InitTelemetry(context.Background(), dir)
	require.NoError(t, err)

	_, span := tel.Tracer.Start(context.Background(), "llm.generate")
	span.End()
	counter, err := tel.Meter.Int64Counter("llm.attempts")
	require.NoError(t, err)
	counter.Add(context.Background(), 1)

	require.NoError(t, tel.Shutdown(context.Background()))

	traces, err := os.ReadFile(filepath.Join(dir, "traces.log"))
	require.NoError(t, err)
	assert.Contains(t, string(traces), "llm.generate")

	metrics, err := os.ReadFile(filepath.Join(dir, "metrics.log"))
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "llm.attempts")
}
