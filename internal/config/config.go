package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// CorpusConfig points at the CSV corpus exports.
type CorpusConfig struct {
	WebsiteCSV string `yaml:"website_csv"`
	GDocsCSV   string `yaml:"gdocs_csv"`
}

// IndexConfig locates the persisted index artifacts.
type IndexConfig struct {
	Dir string `yaml:"dir"`
}

// SearchConfig configures the Google CSE fallback. Credentials come from the
// named environment variables; leaving them unset disables the fallback.
type SearchConfig struct {
	Site        string `yaml:"site"`
	APIKeyEnv   string `yaml:"api_key_env"`
	CXEnv       string `yaml:"cx_env"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// SynthesisConfig configures the answer-synthesis model.
type SynthesisConfig struct {
	Model       string `yaml:"model"`
	APIKeyEnv   string `yaml:"api_key_env"`
	BaseURL     string `yaml:"base_url,omitempty"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Corpus    CorpusConfig    `yaml:"corpus"`
	Index     IndexConfig     `yaml:"index"`
	Search    SearchConfig    `yaml:"search"`
	Synthesis SynthesisConfig `yaml:"synthesis"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/uploadai/config.yaml.
// If neither exists, it writes defaults to ~/.config/uploadai/config.yaml and
// returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "uploadai", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = "127.0.0.1:5000"
	}
	if cfg.Corpus.WebsiteCSV == "" {
		cfg.Corpus.WebsiteCSV = "data/uploaddigital_corpus.csv"
	}
	if cfg.Corpus.GDocsCSV == "" {
		cfg.Corpus.GDocsCSV = "data/google_docs_corpus.csv"
	}
	if cfg.Index.Dir == "" {
		cfg.Index.Dir = "index_store"
	}
	if cfg.Search.Site == "" {
		cfg.Search.Site = "uploaddigital.co"
	}
	if cfg.Search.APIKeyEnv == "" {
		cfg.Search.APIKeyEnv = "GOOGLE_CSE_KEY"
	}
	if cfg.Search.CXEnv == "" {
		cfg.Search.CXEnv = "GOOGLE_CSE_CX"
	}
	if cfg.Search.TimeoutSecs == 0 {
		cfg.Search.TimeoutSecs = 20
	}
	if cfg.Synthesis.Model == "" {
		cfg.Synthesis.Model = "gpt-4o-mini"
	}
	if cfg.Synthesis.APIKeyEnv == "" {
		cfg.Synthesis.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Synthesis.TimeoutSecs == 0 {
		cfg.Synthesis.TimeoutSecs = 60
	}
}
