package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return configPath
}

func TestLoadConfig(t *testing.T) {
	configPath := writeConfig(t, `
app:
  name: "shareit-test"
server:
  port: 9191
gateway:
  port: 8181
  server_url: "http://localhost:9191"
database:
  path: "test.db"
redis:
  address: "localhost:6379"
  cache_ttl_seconds: 30
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.App.Name != "shareit-test" {
		t.Errorf("expected app name shareit-test, got %s", cfg.App.Name)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("expected server port 9191, got %d", cfg.Server.Port)
	}
	if cfg.Redis.CacheTTL != 30 {
		t.Errorf("expected cache ttl 30, got %d", cfg.Redis.CacheTTL)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	configPath := writeConfig(t, `
database:
  path: "test.db"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected default server port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Gateway.Port != 8080 {
		t.Errorf("expected default gateway port 8080, got %d", cfg.Gateway.Port)
	}
	if cfg.Gateway.ServerURL != "http://localhost:9090" {
		t.Errorf("expected derived server url, got %s", cfg.Gateway.ServerURL)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Logging.Level)
	}
	if cfg.Redis.CacheTTL != 60 {
		t.Errorf("expected default cache ttl 60, got %d", cfg.Redis.CacheTTL)
	}
}

func TestLoadConfig_ExpandsEnv(t *testing.T) {
	t.Setenv("SHAREIT_TEST_DB_PATH", "env.db")

	configPath := writeConfig(t, `
database:
  path: "${SHAREIT_TEST_DB_PATH}"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Database.Path != "env.db" {
		t.Errorf("expected env-expanded path env.db, got %s", cfg.Database.Path)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid config",
			cfg: Config{
				Server:   ServerConfig{Port: 9090},
				Gateway:  GatewayConfig{Port: 8080},
				Database: DatabaseConfig{Path: "path"},
			},
			wantErr: false,
		},
		{
			name: "missing database path",
			cfg: Config{
				Server:  ServerConfig{Port: 9090},
				Gateway: GatewayConfig{Port: 8080},
			},
			wantErr: true,
		},
		{
			name: "ports collide",
			cfg: Config{
				Server:   ServerConfig{Port: 8080},
				Gateway:  GatewayConfig{Port: 8080},
				Database: DatabaseConfig{Path: "path"},
			},
			wantErr: true,
		},
		{
			name: "negative rate limit",
			cfg: Config{
				Server:    ServerConfig{Port: 9090},
				Gateway:   GatewayConfig{Port: 8080},
				Database:  DatabaseConfig{Path: "path"},
				RateLimit: RateLimitConfig{RPS: -1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
