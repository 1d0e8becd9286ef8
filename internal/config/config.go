package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	pmAuth "github.com/MrEthical07/pmAuth"
)

// EnvConfigPath names the variable that points at the YAML file when no
// --config flag is given.
const EnvConfigPath = "PM_CONFIG"

// Defaults returns the CLI defaults. Unlike the library defaults, the CLI
// persists its session in SQLite so it survives between invocations.
func Defaults() pmAuth.Config {
	cfg := pmAuth.DefaultConfig()
	cfg.API.UserAgent = "pmctl"
	cfg.Storage.Backend = pmAuth.StorageSQLite
	cfg.Storage.Path = DefaultSessionPath()
	return cfg
}

// DefaultSessionPath is the SQLite session file under the user config dir,
// or in the working directory when that cannot be determined.
func DefaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "pmctl-session.db"
	}
	return filepath.Join(dir, "pmctl", "session.db")
}

// Load builds a configuration from Defaults, the YAML file at path and the
// environment. An empty path falls back to $PM_CONFIG; when both are empty no
// file is read. A named file that does not exist is an error.
func Load(path string) (pmAuth.Config, error) {
	cfg := Defaults()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := readFile(path, &cfg); err != nil {
			return pmAuth.Config{}, err
		}
	}

	if err := ParseEnv(&cfg); err != nil {
		return pmAuth.Config{}, err
	}
	return cfg, nil
}

func readFile(path string, cfg *pmAuth.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// ParseEnv overlays PM_* environment variables onto target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
