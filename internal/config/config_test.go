package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.Equal(t, "bar_management.db", cfg.Database.Path)
	require.Equal(t, "WAL", cfg.Database.JournalMode)
	require.True(t, cfg.Bootstrap.Enabled)
	require.Equal(t, "admin", cfg.Bootstrap.Username)
	require.Equal(t, "admin", cfg.Bootstrap.Password)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "barledger.yaml")
	content := []byte(`
database:
  path: /tmp/from-file.db
  journal_mode: DELETE
logging:
  level: debug
  format: json
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("BARLEDGER_LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/from-file.db", cfg.Database.Path)
	require.Equal(t, "DELETE", cfg.Database.JournalMode)
	require.Equal(t, "warn", cfg.Logging.Level)
	require.Equal(t, "json", cfg.Logging.Format)
	require.Equal(t, 5000, cfg.Database.BusyTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: true,
		},
		{
			name:    "bad journal mode",
			mutate:  func(c *Config) { c.Database.JournalMode = "FAST" },
			wantErr: true,
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: true,
		},
		{
			name:    "bootstrap without password",
			mutate:  func(c *Config) { c.Bootstrap.Password = "" },
			wantErr: true,
		},
		{
			name: "bootstrap disabled without password",
			mutate: func(c *Config) {
				c.Bootstrap.Enabled = false
				c.Bootstrap.Password = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
