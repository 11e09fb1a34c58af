// Package config persists the storage backend selection. The settings
// file is read once at process start; switching backends requires a
// restart.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	BackendLocal    = "local"    // embedded sqlite file
	BackendExternal = "external" // networked postgres
)

const DefaultPath = "db_config.json"

// Database describes the persisted backend choice.
type Database struct {
	Type             string `json:"type"`
	SQLitePath       string `json:"sqlitePath,omitempty"`
	ConnectionString string `json:"connectionString,omitempty"`
}

func defaultConfig() *Database {
	return &Database{
		Type:       BackendLocal,
		SQLitePath: "crewtrack.db",
	}
}

// Load reads the settings file, falling back to the local backend when
// the file does not exist. Environment variables override the file in
// either case.
func Load(path string) (*Database, error) {
	if path == "" {
		path = DefaultPath
	}

	cfg := defaultConfig()

	data, err := os.ReadFile(path)

	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if cfg.Type == "" {
		cfg.Type = BackendLocal
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = defaultConfig().SQLitePath
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// Save writes the settings file. Takes effect on the next start.
func Save(path string, cfg *Database) error {
	if path == "" {
		path = DefaultPath
	}

	data, err := json.MarshalIndent(cfg, "", "  ")

	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}

	return os.WriteFile(path, data, 0o644)
}

func applyEnvOverrides(cfg *Database) {
	viper.AutomaticEnv()

	_ = viper.BindEnv("database_url", "DATABASE_URL")
	_ = viper.BindEnv("db_backend", "DB_BACKEND")
	_ = viper.BindEnv("sqlite_path", "SQLITE_PATH")

	if v := viper.GetString("database_url"); v != "" {
		cfg.ConnectionString = v
		cfg.Type = BackendExternal
	}
	if v := viper.GetString("db_backend"); v != "" {
		cfg.Type = v
	}
	if v := viper.GetString("sqlite_path"); v != "" {
		cfg.SQLitePath = v
	}
}
