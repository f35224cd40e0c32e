package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("values from file override defaults", func(t *testing.T) {
		path := writeConfig(t, `
db_path: /var/lib/atlas/assets.db
server:
  port: "9090"
export:
  bucket: atlas-exports
  prefix: nightly
scanner:
  expiry_horizon_days: 60
`)

		cfg, err := LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, "/var/lib/atlas/assets.db", cfg.DbPath)
		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, "atlas-exports", cfg.Export.Bucket)
		assert.Equal(t, 60, cfg.Scanner.ExpiryHorizonDays)
	})

	t.Run("unset keys fall back to defaults", func(t *testing.T) {
		path := writeConfig(t, "db_path: test.db\n")

		cfg, err := LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, "localhost", cfg.Server.Host)
		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "us-east-1", cfg.Export.AWSRegion)
		assert.Equal(t, 30, cfg.Scanner.ExpiryHorizonDays)
		assert.Equal(t, 10, cfg.Scanner.IssuePenalty)
		assert.Equal(t, 90, cfg.Scanner.NextCheckDays)
		assert.Equal(t, "system", cfg.Scanner.Auditor)
		assert.Empty(t, cfg.Export.Bucket)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
