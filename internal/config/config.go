package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Clau791/Drive-search-with-AI-extended/internal/drive"
	"github.com/Clau791/Drive-search-with-AI-extended/internal/hybrid"
)

// StoreConfig locates the embedding store artifact.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// DriveConfig holds remote store connection settings. CredentialsFile
// points at a service account key; empty means the client is built from
// the environment instead.
type DriveConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	MimeType        string `yaml:"mime_type"`
	PageSize        int    `yaml:"page_size"`
}

// EmbedderConfig selects and configures the embedding provider. An empty
// provider defers the choice to the environment.
type EmbedderConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
}

// PlannerConfig configures the chat model used for query planning,
// refinement, and answer synthesis. The API key always comes from the
// environment, never from the file.
type PlannerConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// SearchConfig sets hybrid search defaults.
type SearchConfig struct {
	TopN            int  `yaml:"top_n"`
	SyncFirst       bool `yaml:"sync_first"`
	SyncTimeoutSecs int  `yaml:"sync_timeout_secs"`
}

// SyncConfig tunes the reconciliation engine.
type SyncConfig struct {
	Workers int `yaml:"workers"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Store    StoreConfig    `yaml:"store"`
	Drive    DriveConfig    `yaml:"drive"`
	Embedder EmbedderConfig `yaml:"embedder"`
	Planner  PlannerConfig  `yaml:"planner"`
	Search   SearchConfig   `yaml:"search"`
	Sync     SyncConfig     `yaml:"sync"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return cfg, nil
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

// LoadDefault tries ./config.yaml first, then
// ~/.config/drivesearch/config.yaml. If neither exists, it writes defaults
// to ~/.config/drivesearch/config.yaml and returns them.
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
	return filepath.Join(home, ".config", "drivesearch", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Store: StoreConfig{Path: "embeddings.json"},
		Drive: DriveConfig{
			MimeType: drive.MimeTypePDF,
			PageSize: drive.DefaultPageSize,
		},
		Search: SearchConfig{
			TopN:            hybrid.DefaultTopN,
			SyncTimeoutSecs: int(hybrid.DefaultSyncTimeout.Seconds()),
		},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Store.Path == "" {
		cfg.Store.Path = "embeddings.json"
	}
	if cfg.Drive.MimeType == "" {
		cfg.Drive.MimeType = drive.MimeTypePDF
	}
	if cfg.Drive.PageSize == 0 {
		cfg.Drive.PageSize = drive.DefaultPageSize
	}
	if cfg.Search.TopN == 0 {
		cfg.Search.TopN = hybrid.DefaultTopN
	}
	if cfg.Search.SyncTimeoutSecs == 0 {
		cfg.Search.SyncTimeoutSecs = int(hybrid.DefaultSyncTimeout.Seconds())
	}
}
