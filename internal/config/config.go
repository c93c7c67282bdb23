// Package config loads the CLI's config.toml and the server's environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/julianstephens/studylit/internal/constants"
)

type Config struct {
	// DB is a SQLite file path, a PostgreSQL connection string without a
	// password, or "keyring" to read the connection string from the OS keyring.
	DB     string `toml:"db"`
	UserID string `toml:"user_id"`
	Debug  bool   `toml:"debug"`
}

// LoadOrCreate reads path, writing a default config (with a fresh local user
// id) when the file does not exist yet.
func LoadOrCreate(path string) (Config, error) {
	path = ExpandPath(path)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := defaultConfig()
		if err := write(path, cfg); err != nil {
			return cfg, fmt.Errorf("failed to write default config: %w", err)
		}
		return cfg, nil
	}

	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	changed := false
	if cfg.DB == "" {
		cfg.DB = constants.DefaultDBPath
		changed = true
	}
	if cfg.UserID == "" {
		cfg.UserID = uuid.New().String()
		changed = true
	}
	if changed {
		if err := write(path, cfg); err != nil {
			return cfg, fmt.Errorf("failed to update config: %w", err)
		}
	}
	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg Config) error {
	return write(ExpandPath(path), cfg)
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func defaultConfig() Config {
	return Config{
		DB:     constants.DefaultDBPath,
		UserID: uuid.New().String(),
	}
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
