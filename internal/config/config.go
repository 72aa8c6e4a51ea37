// Package config loads the server configuration from a YAML file and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable holding the config file path.
const EnvConfigPath = "TOURISM_CMS_CONFIG"

const (
	defaultStorageKey = "tourism-cms-storage"
	defaultHTTPAddr   = ":8080"
	defaultTokenTTL   = 12 * time.Hour
	signalFileName    = ".tourism-cms-notify"
)

// GlobalStateDir returns the default state directory (~/.config/tourism-cms).
func GlobalStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".config", "tourism-cms")
}

// GlobalStateFile returns the default state file path.
func GlobalStateFile() string {
	return filepath.Join(GlobalStateDir(), "state.sqlite")
}

// AuthConfig configures admin bearer tokens.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"TOURISM_CMS_JWT_SECRET"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"TOURISM_CMS_TOKEN_TTL"`
}

// Config holds the server configuration. Environment variables override
// values from the file.
type Config struct {
	StateFile   string     `yaml:"state_file" env:"TOURISM_CMS_STATE_FILE"`
	StorageKey  string     `yaml:"storage_key" env:"TOURISM_CMS_STORAGE_KEY"`
	LogFile     string     `yaml:"log_file" env:"TOURISM_CMS_LOG_FILE"`
	HTTPAddr    string     `yaml:"http_addr" env:"TOURISM_CMS_HTTP_ADDR"`
	SeedDir     string     `yaml:"seed_dir" env:"TOURISM_CMS_SEED_DIR"`
	MCPStdio    bool       `yaml:"mcp_stdio" env:"TOURISM_CMS_MCP_STDIO"`
	CORSOrigins []string   `yaml:"cors_origins" env:"TOURISM_CMS_CORS_ORIGINS" envSeparator:","`
	SearchIndex string     `yaml:"search_index" env:"TOURISM_CMS_SEARCH_INDEX"`
	Auth        AuthConfig `yaml:"auth"`
}

// DefaultConfig returns the defaults. State and log paths stay empty and
// resolve under GlobalStateDir.
func DefaultConfig() *Config {
	return &Config{
		StorageKey: defaultStorageKey,
		HTTPAddr:   defaultHTTPAddr,
		Auth: AuthConfig{
			TokenTTL: defaultTokenTTL,
		},
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ParseEnv applies environment overrides to cfg. Unset variables leave the
// field as it is.
func ParseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the file named by TOURISM_CMS_CONFIG (defaults when unset) and
// applies environment overrides.
func Load() (*Config, error) {
	cfg := DefaultConfig()
	if path := os.Getenv(EnvConfigPath); path != "" {
		var err error
		cfg, err = LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// StatePath returns the configured state file, or GlobalStateFile when unset.
func (c *Config) StatePath() string {
	if c.StateFile == "" {
		return GlobalStateFile()
	}
	return c.StateFile
}

// SignalPath returns the notify signal file, next to the state file.
// Watchers use it instead of SQLite WAL file events.
func (c *Config) SignalPath() string {
	return filepath.Join(filepath.Dir(c.StatePath()), signalFileName)
}

// LogPath returns the configured log file path.
// If unset, defaults to ~/.config/tourism-cms/tourism-cms.log.
// "none" or "off" disable file logging entirely.
func (c *Config) LogPath() string {
	if c.LogFile == "" {
		return filepath.Join(GlobalStateDir(), "tourism-cms.log")
	}
	return c.LogFile
}

// FileLoggingDisabled reports whether LogPath is "none" or "off".
func (c *Config) FileLoggingDisabled() bool {
	lower := strings.ToLower(c.LogPath())
	return lower == "none" || lower == "off"
}

// Key returns the snapshot row key.
func (c *Config) Key() string {
	if c.StorageKey == "" {
		return defaultStorageKey
	}
	return c.StorageKey
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	if c.HTTPAddr == "" {
		return defaultHTTPAddr
	}
	return c.HTTPAddr
}

// TokenTTL returns the admin token lifetime.
func (c *Config) TokenTTL() time.Duration {
	if c.Auth.TokenTTL <= 0 {
		return defaultTokenTTL
	}
	return c.Auth.TokenTTL
}

// SearchIndexPath returns the full-text index database path. Empty (the
// default) or "memory" keep the index in memory.
func (c *Config) SearchIndexPath() string {
	if strings.EqualFold(c.SearchIndex, "memory") {
		return ""
	}
	return c.SearchIndex
}
