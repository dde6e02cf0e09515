// Package config loads server configuration from defaults, an optional
// TOML file, and environment variable overrides, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultPort          = 3001
	defaultSecret        = "dev_secret_change_me"
	defaultTokenTTL      = 7 * 24 * time.Hour
	defaultIdleTimeout   = 60 * time.Second
	defaultDBPath        = "./data/homeledger.db"
	defaultMigrationsDir = "./migrations"
	defaultDataPath      = "./data/records.json"
	defaultKeyPrefix     = "ev_yonetimi"
)

// Config is the full configuration surface.
type Config struct {
	Server  ServerConfig
	Auth    AuthConfig
	Storage StorageConfig
}

type ServerConfig struct {
	Port int
}

type AuthConfig struct {
	// Secret signs bearer tokens. The default is a development value;
	// deployments must override it.
	Secret   string
	TokenTTL time.Duration

	// IdleTimeout forces a local sign-out after this much inactivity.
	// Zero disables the idle watcher.
	IdleTimeout time.Duration
}

type StorageConfig struct {
	DBPath        string
	MigrationsDir string
	DataPath      string
	KeyPrefix     string
}

// rawConfig mirrors Config for TOML decoding. Durations are decoded as
// strings ("5m", "48h") and parsed with time.ParseDuration; pointer
// fields distinguish "absent" from "set to the zero value".
type rawConfig struct {
	Server  *rawServer  `toml:"server"`
	Auth    *rawAuth    `toml:"auth"`
	Storage *rawStorage `toml:"storage"`
}

type rawServer struct {
	Port *int `toml:"port"`
}

type rawAuth struct {
	Secret      *string `toml:"secret"`
	TokenTTL    *string `toml:"token_ttl"`
	IdleTimeout *string `toml:"idle_timeout"`
}

type rawStorage struct {
	DBPath        *string `toml:"db_path"`
	MigrationsDir *string `toml:"migrations_dir"`
	DataPath      *string `toml:"data_path"`
	KeyPrefix     *string `toml:"key_prefix"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port: defaultPort,
		},
		Auth: AuthConfig{
			Secret:      defaultSecret,
			TokenTTL:    defaultTokenTTL,
			IdleTimeout: defaultIdleTimeout,
		},
		Storage: StorageConfig{
			DBPath:        defaultDBPath,
			MigrationsDir: defaultMigrationsDir,
			DataPath:      defaultDataPath,
			KeyPrefix:     defaultKeyPrefix,
		},
	}
}

// Load builds the configuration: defaults, then the TOML file at path
// (skipped when path is empty or the file does not exist), then
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err == nil {
			var raw rawConfig
			if err := toml.Unmarshal(data, &raw); err != nil {
				return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
			if err := applyRaw(&cfg, raw); err != nil {
				return Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyRaw overlays file values onto the config, leaving absent fields
// at their defaults.
func applyRaw(cfg *Config, raw rawConfig) error {
	if raw.Server != nil {
		setInt(raw.Server.Port, &cfg.Server.Port)
	}
	if raw.Auth != nil {
		setString(raw.Auth.Secret, &cfg.Auth.Secret)
		if err := setDuration("auth.token_ttl", raw.Auth.TokenTTL, &cfg.Auth.TokenTTL); err != nil {
			return err
		}
		if err := setDuration("auth.idle_timeout", raw.Auth.IdleTimeout, &cfg.Auth.IdleTimeout); err != nil {
			return err
		}
	}
	if raw.Storage != nil {
		setString(raw.Storage.DBPath, &cfg.Storage.DBPath)
		setString(raw.Storage.MigrationsDir, &cfg.Storage.MigrationsDir)
		setString(raw.Storage.DataPath, &cfg.Storage.DataPath)
		setString(raw.Storage.KeyPrefix, &cfg.Storage.KeyPrefix)
	}
	return nil
}

func setString(src *string, dst *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(src *int, dst *int) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(key string, src *string, dst *time.Duration) error {
	if src == nil {
		return nil
	}
	d, err := time.ParseDuration(*src)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

// applyEnv overlays environment variables onto the config. Env wins over
// file values.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("LOCAL_AUTH_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		cfg.Storage.MigrationsDir = v
	}
	if v := os.Getenv("DATA_PATH"); v != "" {
		cfg.Storage.DataPath = v
	}
	if v := os.Getenv("KEY_PREFIX"); v != "" {
		cfg.Storage.KeyPrefix = v
	}
	return nil
}
