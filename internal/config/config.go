package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Store backends
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config holds the client settings
type Config struct {
	API      string `toml:"api" env:"TIDBIT_API"`
	LogLevel string `toml:"log_level" env:"TIDBIT_LOG_LEVEL"`
	Store    Store  `toml:"store"`
	Wallet   Wallet `toml:"wallet"`
	Events   Events `toml:"events"`
}

// Store selects where the session token is persisted
type Store struct {
	Kind     string `toml:"kind" env:"TIDBIT_STORE"`
	Path     string `toml:"path" env:"TIDBIT_STORE_PATH"`
	RedisURL string `toml:"redis_url" env:"REDIS_URL"`
}

// Wallet selects the wallet provider. RPCURL wins over KeystoreDir.
type Wallet struct {
	RPCURL      string `toml:"rpc_url" env:"TIDBIT_WALLET_RPC"`
	KeystoreDir string `toml:"keystore_dir" env:"TIDBIT_KEYSTORE"`
	Account     string `toml:"account" env:"TIDBIT_ACCOUNT"`
	Passphrase  string `toml:"-" env:"TIDBIT_WALLET_PASSPHRASE"`
	Confirm     bool   `toml:"confirm" env:"TIDBIT_WALLET_CONFIRM"`
}

// Events configures the auth event stream; it needs Store.RedisURL
type Events struct {
	Enabled bool   `toml:"enabled" env:"TIDBIT_EVENTS"`
	Topic   string `toml:"topic" env:"TIDBIT_EVENTS_TOPIC"`
}

// Default returns the built-in configuration
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		API:      "http://localhost:4100",
		LogLevel: "info",
		Store: Store{
			Kind:     StoreFile,
			Path:     filepath.Join(home, ".tidbit", "session.toml"),
			RedisURL: "redis://localhost:6379/0",
		},
		Wallet: Wallet{
			KeystoreDir: filepath.Join(home, ".tidbit", "keystore"),
			Confirm:     true,
		},
		Events: Events{
			Topic: "tidbit.auth",
		},
	}
}

// DefaultPath is the config file location under the user config dir
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "tidbit", "config.toml")
}

// Load layers defaults, the TOML file at path (if it exists) and the environment
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that cannot be defaulted
func (c Config) Validate() error {
	if c.API == "" {
		return errors.New("api base url is required")
	}
	switch c.Store.Kind {
	case StoreMemory:
	case StoreFile:
		if c.Store.Path == "" {
			return errors.New("store path is required for the file store")
		}
	case StoreRedis:
		if c.Store.RedisURL == "" {
			return errors.New("redis url is required for the redis store")
		}
	default:
		return fmt.Errorf("unknown store kind %q", c.Store.Kind)
	}
	if c.Events.Enabled && c.Store.RedisURL == "" {
		return errors.New("events need a redis url")
	}
	return nil
}
