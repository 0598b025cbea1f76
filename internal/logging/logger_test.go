package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":    zerolog.DebugLevel,
		" DEBUG ":  zerolog.DebugLevel,
		"warn":     zerolog.WarnLevel,
		"warning":  zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"info":     zerolog.InfoLevel,
		"":         zerolog.InfoLevel,
		"verbose?": zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLogLevel(in), "level %q", in)
	}
}

func TestNewIncludesModuleAndVersion(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "tcs", "v9.9.9", "info")

	logger.Debug().Msg("hidden")
	logger.Info().Str("item", "Pacman").Msg("launching")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "tcs", event["module"])
	assert.Equal(t, "v9.9.9", event["version"])
	assert.Equal(t, "Pacman", event["item"])
	assert.Equal(t, "launching", event["message"])
	assert.Contains(t, event, "time")
}

func TestOpenFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tcs.log")

	f, err := OpenFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("one\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f, err = OpenFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("two\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(data))

	_, err = OpenFile(filepath.Join(t.TempDir(), "missing", "tcs.log"))
	assert.Error(t, err)
}
