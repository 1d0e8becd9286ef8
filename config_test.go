package pmAuth

import (
	"testing"
	"time"
)

func validTestConfig() Config {
	cfg := DefaultConfig()
	cfg.API.BaseURL = "https://api.example.com/api"
	return cfg
}

func TestDefaultConfigNeedsOnlyBaseURL(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected default config without a base URL to fail")
	}
	cfg = validTestConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantValid bool
	}{
		{name: "defaults", mutate: func(*Config) {}, wantValid: true},
		{name: "relative base url", mutate: func(c *Config) { c.API.BaseURL = "/api" }},
		{name: "non http base url", mutate: func(c *Config) { c.API.BaseURL = "ftp://example.com" }},
		{name: "bad origin", mutate: func(c *Config) { c.API.Origin = "example.com" }},
		{name: "explicit origin", mutate: func(c *Config) { c.API.Origin = "http://localhost:5173" }, wantValid: true},
		{name: "zero timeout", mutate: func(c *Config) { c.API.Timeout = 0 }},
		{name: "unknown backend", mutate: func(c *Config) { c.Storage.Backend = "etcd" }},
		{name: "sqlite without path", mutate: func(c *Config) { c.Storage.Backend = StorageSQLite }},
		{
			name: "sqlite with path",
			mutate: func(c *Config) {
				c.Storage.Backend = StorageSQLite
				c.Storage.Path = "session.db"
			},
			wantValid: true,
		},
		{name: "redis without addr", mutate: func(c *Config) { c.Storage.Backend = StorageRedis }},
		{
			name: "redis negative db",
			mutate: func(c *Config) {
				c.Storage.Backend = StorageRedis
				c.Storage.RedisAddr = "localhost:6379"
				c.Storage.RedisDB = -1
			},
		},
		{name: "empty key", mutate: func(c *Config) { c.Storage.Key = " " }},
		{name: "negative leeway", mutate: func(c *Config) { c.Session.ExpiryLeeway = -time.Second }},
		{name: "zero password length", mutate: func(c *Config) { c.Password.MinLength = 0 }},
		{
			name: "audit without buffer",
			mutate: func(c *Config) {
				c.Audit.Enabled = true
				c.Audit.BufferSize = 0
			},
		},
		{name: "negative audit flush timeout", mutate: func(c *Config) { c.Audit.FlushTimeout = -time.Second }},
		{name: "disabled audit ignores buffer", mutate: func(c *Config) { c.Audit.BufferSize = 0 }, wantValid: true},
		{name: "histograms without metrics", mutate: func(c *Config) { c.Metrics.EnableLatencyHistograms = true }},
		{
			name: "histograms with metrics",
			mutate: func(c *Config) {
				c.Metrics.Enabled = true
				c.Metrics.EnableLatencyHistograms = true
			},
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantValid && err != nil {
				t.Fatalf("expected valid config, got %v", err)
			}
			if !tt.wantValid && err == nil {
				t.Fatalf("expected invalid config")
			}
		})
	}
}

func TestConfigOrigin(t *testing.T) {
	cfg := validTestConfig()
	if got := cfg.origin(); got != "https://api.example.com" {
		t.Fatalf("derived origin = %q", got)
	}
	cfg.API.Origin = "http://localhost:5173/"
	if got := cfg.origin(); got != "http://localhost:5173" {
		t.Fatalf("explicit origin = %q", got)
	}
}
