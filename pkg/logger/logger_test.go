package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depotix/depotix-api/pkg/logger"
)

func TestNew_JSONWithServiceAndComponent(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "info", Service: "depotix-api", Output: &buf})

	comp := l.Component("inventory")
	comp.Info().Str("movement", "m1").Msg("movimiento registrado")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "depotix-api", entry["service"])
	assert.Equal(t, "inventory", entry["component"])
	assert.Equal(t, "m1", entry["movement"])
	assert.Equal(t, "info", entry["level"])
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "WARN", Output: &buf})

	l.Info().Msg("oculto")
	assert.Zero(t, buf.Len())
	l.Warn().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}
