package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitpanel/orbitsweep/internal/ports"
)

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewConsoleLogger(WithOutput(&buf), WithLevel(ports.LevelWarn))

	logger.Debug(context.Background(), "debug message")
	logger.Info(context.Background(), "info message")
	logger.Warn(context.Background(), "warn message")
	logger.Error(context.Background(), "error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
}

func TestConsoleLogger_TextFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewConsoleLogger(WithOutput(&buf))

	logger.Info(context.Background(), "package removed", ports.F("package", "exim"))

	assert.Contains(t, buf.String(), "package removed")
	assert.Contains(t, buf.String(), "package=exim")
}

func TestConsoleLogger_JSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewConsoleLogger(WithOutput(&buf), WithJSONFormat(true))

	logger.Info(context.Background(), "service stopped", ports.F("unit", "orbitd"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "service stopped", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "orbitd", entry["unit"])
	assert.NotEmpty(t, entry["time"])
}

func TestConsoleLogger_WithCarriesFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := NewConsoleLogger(WithOutput(&buf), WithJSONFormat(true))
	logger := base.With(ports.F("step", "rpm:remove:exim"))

	logger.Info(context.Background(), "applying")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "rpm:remove:exim", entry["step"])
}

func TestNopLogger_DiscardsEverything(t *testing.T) {
	t.Parallel()

	logger := NewNopLogger()
	logger.Info(context.Background(), "ignored")
	assert.Same(t, logger, logger.With(ports.F("k", "v")))
}
