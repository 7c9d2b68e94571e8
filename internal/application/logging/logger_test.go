package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/takeoff-go/internal/application/logging"
)

func TestLoggerFromContext_FallsBackToNoOp(t *testing.T) {
	logger := logging.LoggerFromContext(context.Background())

	require.NotNil(t, logger)
	assert.NotPanics(t, func() { logger.Log(logging.LevelInfo, "ignored", nil) })
}

func TestStdLogger_TextFiltersByLevel(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := logging.NewStdLogger(&buf, "warn", "text")
	ctx := logging.WithLogger(context.Background(), logger)

	// Act
	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "recomputed", nil)
	logging.LoggerFromContext(ctx).Log(logging.LevelWarn, "unresolved prices", map[string]interface{}{"count": 2, "quote": "q-1"})

	// Assert
	out := buf.String()
	assert.NotContains(t, out, "recomputed")
	assert.Contains(t, out, "[WARN] unresolved prices count=2 quote=q-1")
}

func TestStdLogger_JSONLines(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewStdLogger(&buf, "debug", "json")

	logger.Log(logging.LevelError, "save failed", map[string]interface{}{"quote": "q-2"})

	line := buf.String()
	start := strings.Index(line, "{")
	require.GreaterOrEqual(t, start, 0)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(line[start:])), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "save failed", entry["msg"])
	assert.Equal(t, "q-2", entry["quote"])
}
