package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(WarnLevel))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
}

func TestConfigureJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	lgr := Configure(Config{Level: InfoLevel, Format: "json", Output: &buf})
	t.Cleanup(func() { Configure(Config{Level: InfoLevel, Format: "text"}) })

	lgr.Debug().Msg("hidden")
	componentLogger := WithComponent("auth")
	componentLogger.Info().Msg("visible")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "auth", entry["component"])
	assert.Equal(t, "info", entry["level"])
}
