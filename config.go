package pmAuth

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/MrEthical07/pmAuth/session"
)

// Config defines a public type used by pmAuth APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Storage  StorageConfig  `yaml:"storage"`
	Session  SessionConfig  `yaml:"session"`
	Password PasswordConfig `yaml:"password"`
	Audit    AuditConfig    `yaml:"audit"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

/*
====================================
API CONFIG
====================================
*/

// APIConfig locates the backend.
type APIConfig struct {
	// BaseURL is the absolute API base every call is relative to.
	BaseURL string `yaml:"base_url" env:"PM_API_BASE_URL"`
	// Origin is the web client origin invite links are composed against.
	// Empty means the scheme and host of BaseURL, which is only right when
	// the web client and the API share a host.
	Origin    string        `yaml:"origin" env:"PM_API_ORIGIN"`
	Timeout   time.Duration `yaml:"timeout" env:"PM_API_TIMEOUT"`
	UserAgent string        `yaml:"user_agent" env:"PM_API_USER_AGENT"`
}

/*
====================================
STORAGE CONFIG
====================================
*/

// StorageBackend selects where the session is persisted.
type StorageBackend string

const (
	StorageMemory StorageBackend = "memory"
	StorageSQLite StorageBackend = "sqlite"
	StorageRedis  StorageBackend = "redis"
)

// StorageConfig defines a public type used by pmAuth APIs.
//
// StorageConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type StorageConfig struct {
	Backend StorageBackend `yaml:"backend" env:"PM_STORAGE_BACKEND"`
	// Path is the SQLite database file.
	Path          string `yaml:"path" env:"PM_STORAGE_PATH"`
	RedisAddr     string `yaml:"redis_addr" env:"PM_STORAGE_REDIS_ADDR"`
	RedisPassword string `yaml:"redis_password" env:"PM_STORAGE_REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"PM_STORAGE_REDIS_DB"`
	RedisPrefix   string `yaml:"redis_prefix" env:"PM_STORAGE_REDIS_PREFIX"`
	// Key is the fixed record name the session is stored under.
	Key string `yaml:"key" env:"PM_STORAGE_KEY"`
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig controls session restore.
type SessionConfig struct {
	// DiscardExpired drops a restored JWT-shaped token whose exp has passed.
	DiscardExpired bool          `yaml:"discard_expired" env:"PM_SESSION_DISCARD_EXPIRED"`
	ExpiryLeeway   time.Duration `yaml:"expiry_leeway" env:"PM_SESSION_EXPIRY_LEEWAY"`
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig is the client-side registration gate. The backend remains
// authoritative.
type PasswordConfig struct {
	MinLength int `yaml:"min_length" env:"PM_PASSWORD_MIN_LENGTH"`
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by pmAuth APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled      bool          `yaml:"enabled" env:"PM_AUDIT_ENABLED"`
	BufferSize   int           `yaml:"buffer_size" env:"PM_AUDIT_BUFFER_SIZE"`
	DropIfFull   bool          `yaml:"drop_if_full" env:"PM_AUDIT_DROP_IF_FULL"`
	FlushTimeout time.Duration `yaml:"flush_timeout" env:"PM_AUDIT_FLUSH_TIMEOUT"`
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by pmAuth APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool `yaml:"enabled" env:"PM_METRICS_ENABLED"`
	EnableLatencyHistograms bool `yaml:"latency_histograms" env:"PM_METRICS_LATENCY_HISTOGRAMS"`
}

/*
====================================
DEFAULT CONFIG
====================================
*/

// DefaultConfig returns the configuration every loader starts from. BaseURL
// has no default and must be set.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Timeout:   15 * time.Second,
			UserAgent: "pmAuth",
		},
		Storage: StorageConfig{
			Backend:     StorageMemory,
			RedisPrefix: "pm",
			Key:         session.DefaultKey,
		},
		Session: SessionConfig{
			DiscardExpired: true,
			ExpiryLeeway:   30 * time.Second,
		},
		Password: PasswordConfig{
			MinLength: 6,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize:   1024,
			DropIfFull:   true,
			FlushTimeout: 2 * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate returns the first invalid field it finds and does not modify c.
func (c *Config) Validate() error {
	// API
	if _, err := parseHTTPURL(c.API.BaseURL); err != nil {
		return errors.New("API BaseURL must be an absolute http or https URL")
	}
	if c.API.Origin != "" {
		if _, err := parseHTTPURL(c.API.Origin); err != nil {
			return errors.New("API Origin must be an absolute http or https URL")
		}
	}
	if c.API.Timeout <= 0 {
		return errors.New("API Timeout must be > 0")
	}

	// Storage
	switch c.Storage.Backend {
	case StorageMemory:
	case StorageSQLite:
		if strings.TrimSpace(c.Storage.Path) == "" {
			return errors.New("Storage Path is required for the sqlite backend")
		}
	case StorageRedis:
		if strings.TrimSpace(c.Storage.RedisAddr) == "" {
			return errors.New("Storage RedisAddr is required for the redis backend")
		}
		if c.Storage.RedisDB < 0 {
			return errors.New("Storage RedisDB must be >= 0")
		}
	default:
		return errors.New("Storage Backend must be 'memory', 'sqlite' or 'redis'")
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return errors.New("Storage Key must not be empty")
	}

	// Session
	if c.Session.ExpiryLeeway < 0 {
		return errors.New("Session ExpiryLeeway must be >= 0")
	}

	// Password
	if c.Password.MinLength < 1 {
		return errors.New("Password MinLength must be >= 1")
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when Audit is enabled")
	}
	if c.Audit.FlushTimeout < 0 {
		return errors.New("Audit FlushTimeout must be >= 0")
	}

	// Metrics
	if c.Metrics.EnableLatencyHistograms && !c.Metrics.Enabled {
		return errors.New("Metrics EnableLatencyHistograms requires Metrics Enabled")
	}

	return nil
}

// origin is the base invite links are composed against.
func (c *Config) origin() string {
	if c.API.Origin != "" {
		return strings.TrimRight(c.API.Origin, "/")
	}
	u, err := parseHTTPURL(c.API.BaseURL)
	if err != nil {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func parseHTTPURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.New("not an absolute http url")
	}
	return u, nil
}
