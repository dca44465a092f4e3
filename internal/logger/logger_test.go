package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStampsService(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "debug", Format: "json", Service: "migrate", Out: &buf})
	log.Info().Str("command", "up").Msg("done")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "migrate", line["service"])
	assert.Equal(t, "up", line["command"])
	assert.Equal(t, "info", line["level"])
	assert.Contains(t, line, "time")
	assert.Contains(t, line, "caller")
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var buf bytes.Buffer
	log := New(Options{Level: "chatty", Out: &buf})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	log.Debug().Msg("hidden")
	assert.Empty(t, buf.String())
	log.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "info", Format: "pretty", Service: "server", Out: &buf})
	log.Info().Msg("listening")

	out := buf.String()
	assert.Contains(t, out, "listening")
	assert.Contains(t, out, "service=")
	assert.False(t, json.Valid(buf.Bytes()))
}
