package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"resources_dir": "/srv/ub",
		"log_format":    "json",
		"rar_binary":    "/opt/rar",
		"tool_timeout":  "30s",
		"history_keep":  50,
		"s3": map[string]any{
			"bucket":   "backups",
			"region":   "eu-central-1",
			"endpoint": "http://localhost:9000",
		},
	})

	t.Run("overlays present keys only", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg, []string{"-config", path}))

		assert.Equal(t, "/srv/ub", cfg.ResourcesDir)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "/opt/rar", cfg.RarBinary)
		assert.Equal(t, 30*time.Second, cfg.ToolTimeout)
		assert.Equal(t, 50, cfg.HistoryKeep)
		assert.Equal(t, "info", cfg.LogLevel, "absent key keeps default")
		assert.Equal(t, S3{Bucket: "backups", Region: "eu-central-1", Endpoint: "http://localhost:9000"}, cfg.S3)
	})

	t.Run("no config flag leaves cfg alone", func(t *testing.T) {
		cfg := &Config{LogLevel: "warn"}
		require.NoError(t, parseJson(cfg, []string{"-l", "debug"}))
		assert.Equal(t, &Config{LogLevel: "warn"}, cfg)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		require.Error(t, parseJson(&Config{}, []string{"-c", bad}))
	})

	t.Run("missing file", func(t *testing.T) {
		require.Error(t, parseJson(&Config{}, []string{"-c", filepath.Join(t.TempDir(), "nope.json")}))
	})
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"log_level":  "error",
		"history_db": "",
	})

	cfg, err := LoadConfig([]string{"-c", path, "-l", "debug"})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Empty(t, cfg.HistoryDB, "explicit empty history_db disables the journal")
}
