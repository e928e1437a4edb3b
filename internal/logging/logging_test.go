package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/prn-tf/barledger/internal/config"
)

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "barledger.log")

	logger, closeFn, err := New(config.LoggingConfig{
		Level:  "debug",
		Format: "json",
		Output: path,
	})
	require.NoError(t, err)

	logger.Info().Str("component", "test").Msg("hello")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"message":"hello"`)
	require.Contains(t, string(data), `"component":"test"`)
	require.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New(config.LoggingConfig{Level: "shout", Output: "stderr"})
	require.Error(t, err)
}
