package config

import (
	"strings"
	"testing"
)

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 0},
		Database: DatabaseConfig{Driver: DriverMemory},
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_Drivers(t *testing.T) {
	tests := []struct {
		name    string
		db      DatabaseConfig
		wantErr string
	}{
		{"memory without addrs", DatabaseConfig{Driver: DriverMemory}, ""},
		{"redis with addrs", DatabaseConfig{Driver: DriverRedis, Addrs: []string{"localhost:6379"}}, ""},
		{"valkey without addrs", DatabaseConfig{Driver: DriverValkey}, `database.addrs is required for driver "valkey"`},
		{"unknown driver", DatabaseConfig{Driver: "postgres"}, `database.driver must be one of memory, redis, valkey, got "postgres"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{HTTP: HTTPConfig{Port: 8080}, Database: tt.db}
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Fatalf("got %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_LoggingLevel(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: DriverMemory},
		Logging:  LoggingConfig{Level: "verbose"},
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown logging level")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.Driver != DriverMemory {
		t.Errorf("expected Driver=memory, got %q", cfg.Database.Driver)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Storage.KeyPrefix != "recordkit:" {
		t.Errorf("expected KeyPrefix='recordkit:', got %q", cfg.Storage.KeyPrefix)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{Driver: DriverRedis, ReadinessTimeout: 15},
		Storage:  StorageConfig{KeyPrefix: "custom:"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Database.Driver != DriverRedis {
		t.Errorf("expected Driver=redis, got %q", cfg.Database.Driver)
	}
	if cfg.Storage.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Storage.KeyPrefix)
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("RECORDKIT_TEST_PORT", "9090")
	t.Setenv("RECORDKIT_TEST_KEY", "")

	cfg, err := Parse([]byte(strings.Join([]string{
		"http:",
		"  port: ${RECORDKIT_TEST_PORT}",
		"database:",
		"  driver: valkey",
		"  addrs: [\"${RECORDKIT_TEST_ADDR:-localhost:6379}\"]",
		"auth:",
		"  api_keys: [\"${RECORDKIT_TEST_KEY:-dev-key}\"]",
		"seed:",
		"  path: config/seed.yaml",
	}, "\n")))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.HTTP.Port)
	}
	if len(cfg.Database.Addrs) != 1 || cfg.Database.Addrs[0] != "localhost:6379" {
		t.Errorf("expected default addr, got %v", cfg.Database.Addrs)
	}
	if len(cfg.Auth.APIKeys) != 1 || cfg.Auth.APIKeys[0] != "dev-key" {
		t.Errorf("expected default api key, got %v", cfg.Auth.APIKeys)
	}
	if cfg.Seed.Path != "config/seed.yaml" {
		t.Errorf("expected seed path, got %q", cfg.Seed.Path)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := Parse([]byte("http:\n  port: 0\n")); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoad_LocalConfig(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("load local: %v", err)
	}
	if cfg.Database.Driver != DriverMemory {
		t.Errorf("expected memory driver in local config, got %q", cfg.Database.Driver)
	}
}
