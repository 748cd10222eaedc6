package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newJSONLogger returns a debug-level JSON logger writing to buf.
func newJSONLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// decodeLines decodes one JSON log record per line.
func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		records = append(records, rec)
	}
	return records
}

func TestEnrichLogger(t *testing.T) {
	t.Run("adds template fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := EnrichLogger(newJSONLogger(&buf), "id-1", "profile")
		logger.Info("hello")

		records := decodeLines(t, &buf)
		require.Len(t, records, 1)
		assert.Equal(t, "id-1", records[0]["template_id"])
		assert.Equal(t, "profile", records[0]["template"])
	})

	t.Run("omits empty name", func(t *testing.T) {
		var buf bytes.Buffer
		EnrichLogger(newJSONLogger(&buf), "id-2", "").Info("hello")

		records := decodeLines(t, &buf)
		require.Len(t, records, 1)
		assert.NotContains(t, records[0], "template")
	})

	t.Run("nil logger stays nil", func(t *testing.T) {
		assert.Nil(t, EnrichLogger(nil, "id", "name"))
	})
}

func TestLogCompile(t *testing.T) {
	var buf bytes.Buffer
	LogCompile(newJSONLogger(&buf), 3, 42, 0.5)

	records := decodeLines(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, "template compiled", records[0]["msg"])
	assert.Equal(t, "DEBUG", records[0]["level"])
	assert.EqualValues(t, 3, records[0]["slots"])
	assert.EqualValues(t, 42, records[0]["size_bytes"])
}

func TestLogCompileError(t *testing.T) {
	var buf bytes.Buffer
	LogCompileError(newJSONLogger(&buf), errors.New("missing value for slot 1"), 0.1)

	records := decodeLines(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, "WARN", records[0]["level"])
	assert.Equal(t, "missing value for slot 1", records[0]["error"])
}

func TestLogDefinition(t *testing.T) {
	var buf bytes.Buffer
	logger := newJSONLogger(&buf)
	LogDefinitionLoaded(logger, "profile", "profile.yaml", 6)
	LogDefinitionError(logger, "broken", "broken.yaml", errors.New("unknown slot kind"))

	records := decodeLines(t, &buf)
	require.Len(t, records, 2)
	assert.Equal(t, "template definition loaded", records[0]["msg"])
	assert.EqualValues(t, 6, records[0]["slots"])
	assert.Equal(t, "template definition rejected", records[1]["msg"])
	assert.Equal(t, "unknown slot kind", records[1]["error"])
}

func TestLogHelpers_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		LogCompile(nil, 1, 1, 1)
		LogCompileError(nil, errors.New("x"), 1)
		LogDefinitionLoaded(nil, "a", "b", 1)
		LogDefinitionError(nil, "a", "b", errors.New("x"))
	})
}
