package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "debug", "json").With("file", "datos.xlsx")
	l.Warn("dropped rows", "count", 2, "error", errors.New("bad cell"))

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "warn", rec["level"])
	assert.Equal(t, "dropped rows", rec["message"])
	assert.Equal(t, "datos.xlsx", rec["file"])
	assert.Equal(t, float64(2), rec["count"])
	assert.Equal(t, "bad cell", rec["error"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn", "json")
	l.Info("hidden")
	assert.Zero(t, buf.Len())
	l.Error("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "loud", "json")
	l.Debug("hidden")
	assert.Zero(t, buf.Len())
	l.Info("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestGlobalSwap(t *testing.T) {
	prev := Global()
	defer SetGlobal(prev)
	var buf bytes.Buffer
	SetGlobal(New(&buf, "info", "json"))
	Info("hello", "error", errors.New("boom"))
	assert.Contains(t, buf.String(), `"error":"boom"`)
}
