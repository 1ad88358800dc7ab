package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLogLevel(in), "level %q", in)
	}
}

func TestAppLogger_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf, "info")

	l.Info("batch processed", "session_id", "abc", "records", 2)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "batch processed", entry["message"])
	assert.Equal(t, "abc", entry["session_id"])
	assert.EqualValues(t, 2, entry["records"])
}

func TestAppLogger_ErrorAndLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf, "warn")

	l.Debug("hidden")
	l.Info("hidden too")
	l.Error("upload failed", errors.New("boom"), "dangling")

	out := strings.TrimSpace(buf.String())
	require.NotEmpty(t, out)
	assert.NotContains(t, out, "hidden")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "boom", entry["error"])
	assert.NotContains(t, entry, "dangling")
}
