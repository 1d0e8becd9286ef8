package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	pmAuth "github.com/MrEthical07/pmAuth"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pmctl.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Backend != pmAuth.StorageSQLite || cfg.Storage.Path == "" {
		t.Fatalf("storage = %+v", cfg.Storage)
	}
	if cfg.API.Timeout != 15*time.Second || cfg.Password.MinLength != 6 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: https://api.example.com/api
  timeout: 3s
storage:
  backend: memory
password:
  min_length: 8
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "https://api.example.com/api" || cfg.API.Timeout != 3*time.Second {
		t.Fatalf("api = %+v", cfg.API)
	}
	if cfg.Storage.Backend != pmAuth.StorageMemory || cfg.Password.MinLength != 8 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Session.ExpiryLeeway != 30*time.Second {
		t.Fatalf("keys absent from the file must keep defaults, leeway = %v", cfg.Session.ExpiryLeeway)
	}
}

func TestLoadFileFromEnvPath(t *testing.T) {
	path := writeConfig(t, "api:\n  base_url: http://localhost:5000/api\n")
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:5000/api" {
		t.Fatalf("base url = %q", cfg.API.BaseURL)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "api:\n  base_url: http://file.example.com\n")
	t.Setenv("PM_API_BASE_URL", "http://env.example.com")
	t.Setenv("PM_SESSION_EXPIRY_LEEWAY", "1m")
	t.Setenv("PM_METRICS_ENABLED", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://env.example.com" || cfg.Session.ExpiryLeeway != time.Minute || !cfg.Metrics.Enabled {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil || !strings.Contains(err.Error(), "read config file") {
		t.Fatalf("missing file: %v", err)
	}

	if _, err := Load(writeConfig(t, "api:\n  base_ur1: typo\n")); err == nil || !strings.Contains(err.Error(), "parse config file") {
		t.Fatalf("unknown key: %v", err)
	}

	t.Setenv("PM_PASSWORD_MIN_LENGTH", "six")
	if _, err := Load(""); err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("bad env: %v", err)
	}
}

func TestEmptyFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Key != Defaults().Storage.Key {
		t.Fatalf("key = %q", cfg.Storage.Key)
	}
}
