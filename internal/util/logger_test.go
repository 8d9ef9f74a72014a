package util

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, zerolog.TraceLevel, zerologLevel(TraceLevel))
	assert.Equal(t, zerolog.WarnLevel, zerologLevel(WarnLevel))
	assert.Equal(t, zerolog.ErrorLevel, zerologLevel(ErrorLevel))
	assert.Equal(t, zerolog.InfoLevel, zerologLevel(42), "unknown levels fall back to info")
}

func TestZerologWriter_StripsPrefix(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := zerologWriter{logger: zerolog.New(&buf), level: zerolog.ErrorLevel}

	p := []byte("2024/01/02 15:04:05 server.go:12: mount failed\n")
	n, err := w.Write(p)
	require.NoError(t, err)
	assert.Equal(t, len(p), n)

	var entry map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "mount failed", entry["message"])
	assert.Equal(t, "error", entry["level"])
}
