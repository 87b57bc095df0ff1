package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:5000", cfg.Server.Addr)
	require.Equal(t, "index_store", cfg.Index.Dir)
	require.Equal(t, "uploaddigital.co", cfg.Search.Site)
	require.Equal(t, "gpt-4o-mini", cfg.Synthesis.Model)
	require.Equal(t, "OPENAI_API_KEY", cfg.Synthesis.APIKeyEnv)
}

func TestLoadAppliesDefaultsToPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: 0.0.0.0:8080\n"), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	require.Equal(t, 20, cfg.Search.TimeoutSecs)
	require.Equal(t, 60, cfg.Synthesis.TimeoutSecs)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultConfig()
	cfg.Synthesis.Model = "gpt-4o"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "gpt-4o", loaded.Synthesis.Model)
	require.Equal(t, cfg.Server.Addr, loaded.Server.Addr)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}
