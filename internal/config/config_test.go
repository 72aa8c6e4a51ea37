package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Key() != "tourism-cms-storage" {
		t.Errorf("Key() = %q", cfg.Key())
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
	if cfg.TokenTTL() != 12*time.Hour {
		t.Errorf("TokenTTL() = %v", cfg.TokenTTL())
	}
	if cfg.StatePath() != GlobalStateFile() {
		t.Errorf("StatePath() = %q, want %q", cfg.StatePath(), GlobalStateFile())
	}
	if !strings.HasSuffix(cfg.LogPath(), "tourism-cms.log") {
		t.Errorf("LogPath() = %q", cfg.LogPath())
	}
	if cfg.FileLoggingDisabled() {
		t.Error("file logging should be enabled by default")
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
state_file: /var/lib/tourism/state.sqlite
storage_key: staging
http_addr: 127.0.0.1:9090
log_file: off
cors_origins:
  - https://example.com
search_index: /var/lib/tourism/search.db
auth:
  jwt_secret: s3cret
  token_ttl: 30m
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.StatePath() != "/var/lib/tourism/state.sqlite" {
		t.Errorf("StatePath() = %q", cfg.StatePath())
	}
	if cfg.SignalPath() != "/var/lib/tourism/.tourism-cms-notify" {
		t.Errorf("SignalPath() = %q", cfg.SignalPath())
	}
	if cfg.Key() != "staging" || cfg.Addr() != "127.0.0.1:9090" {
		t.Errorf("Key/Addr = %q %q", cfg.Key(), cfg.Addr())
	}
	if !cfg.FileLoggingDisabled() {
		t.Error("log_file: off should disable file logging")
	}
	if cfg.Auth.JWTSecret != "s3cret" || cfg.TokenTTL() != 30*time.Minute {
		t.Errorf("Auth = %+v", cfg.Auth)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "https://example.com" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.SearchIndexPath() != "/var/lib/tourism/search.db" {
		t.Errorf("SearchIndexPath() = %q", cfg.SearchIndexPath())
	}
}

func TestLoadConfig_KeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "seed_dir: ./seed\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SeedDir != "./seed" {
		t.Errorf("SeedDir = %q", cfg.SeedDir)
	}
	if cfg.Addr() != ":8080" || cfg.TokenTTL() != 12*time.Hour {
		t.Errorf("defaults lost: addr %q ttl %v", cfg.Addr(), cfg.TokenTTL())
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := LoadConfig(writeConfig(t, "http_addr: [unclosed")); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "http_addr: :7000\nauth:\n  jwt_secret: from-file\n")
	t.Setenv(EnvConfigPath, path)
	t.Setenv("TOURISM_CMS_HTTP_ADDR", ":7001")
	t.Setenv("TOURISM_CMS_TOKEN_TTL", "2h")
	t.Setenv("TOURISM_CMS_CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr() != ":7001" {
		t.Errorf("Addr() = %q, want env override", cfg.Addr())
	}
	if cfg.Auth.JWTSecret != "from-file" {
		t.Errorf("JWTSecret = %q, unset env must keep file value", cfg.Auth.JWTSecret)
	}
	if cfg.TokenTTL() != 2*time.Hour {
		t.Errorf("TokenTTL() = %v", cfg.TokenTTL())
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoad_NoFile(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("TOURISM_CMS_STATE_FILE", "/tmp/x/state.sqlite")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.StatePath() != "/tmp/x/state.sqlite" {
		t.Errorf("StatePath() = %q", cfg.StatePath())
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("TOURISM_CMS_TOKEN_TTL", "not-a-duration")
	err := ParseEnv(DefaultConfig())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestSearchIndexPath(t *testing.T) {
	for _, tt := range []struct{ in, want string }{
		{"", ""},
		{"memory", ""},
		{"MEMORY", ""},
		{"/tmp/search.db", "/tmp/search.db"},
	} {
		cfg := DefaultConfig()
		cfg.SearchIndex = tt.in
		if got := cfg.SearchIndexPath(); got != tt.want {
			t.Errorf("SearchIndexPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
