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

	"github.com/islandepoch/islandepoch-go/internal/infrastructure/config"
)

func TestBuild_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := build(&buf, "json", zerolog.InfoLevel, false)

	logger.Debug().Msg("hidden")
	logger.Info().Str("component", "production").Msg("tick")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "tick", entry["message"])
	assert.Equal(t, "production", entry["component"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "islandepoch.log")

	logger, closer, err := New(config.LoggingConfig{Level: "warn", Format: "json", Output: "file", FilePath: path})
	require.NoError(t, err)
	logger.Warn().Msg("save failed")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "save failed")
}

func TestNew_RejectsBadLevel(t *testing.T) {
	_, _, err := New(config.LoggingConfig{Level: "loud", Format: "json", Output: "stderr"})
	assert.Error(t, err)
}
