package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONConAppYComponente(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", AppName: "intendencia", Out: &buf})

	cl := l.Component("movement")
	cl.Info().Int64("base_id", 1).Msg("movimiento registrado")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "intendencia", line["app"])
	assert.Equal(t, "movement", line["component"])
	assert.Equal(t, "movimiento registrado", line["message"])
	assert.EqualValues(t, 1, line["base_id"])
}

func TestNew_NivelFiltraDebug(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "warn", Out: &buf})
	l.Info().Msg("no aparece")
	assert.Empty(t, buf.String())
	l.Warn().Msg("aparece")
	assert.Contains(t, buf.String(), "aparece")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel(" DEBUG "))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("desconocido"))
}
