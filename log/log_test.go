package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, InfoLevel).Named("test")
	l.Debug("hidden")
	l.Info("visible", String("track", "Monza"), Int("laps", 53))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, "test", entry["logger"])
	assert.Equal(t, "Monza", entry["track"])
	assert.InDelta(t, 53, entry["laps"], 0)
}

func TestWithFilter(t *testing.T) {
	var buf bytes.Buffer
	opt, err := WithFilter("*:telemetry")
	require.NoError(t, err)
	l := New(&buf, DebugLevel, opt)
	l.Named("session").Info("dropped")
	assert.Empty(t, buf.String())
	l.Named("telemetry").Info("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestContextLogger(t *testing.T) {
	assert.Same(t, Default(), GetFromContext(context.Background()))
	l := New(&bytes.Buffer{}, InfoLevel)
	ctx := AddToContext(context.Background(), l)
	assert.Same(t, l, GetFromContext(ctx))
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, WarnLevel, lvl)
	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
