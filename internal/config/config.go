package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/theirongolddev/fcast/internal/logging"
)

// Environment variables consulted by Load.
const (
	EnvConfigPath = "FCAST_CONFIG"
	EnvLogLevel   = "FCAST_LOG_LEVEL"
	EnvSeed       = "FCAST_SEED"
)

// Config holds all fcast configuration.
type Config struct {
	General    GeneralConfig             `toml:"general"`
	Appearance AppearanceConfig          `toml:"appearance"`
	Logging    logging.Config            `toml:"logging"`
	Presets    map[string]PresetOverride `toml:"presets,omitempty"`
}

// GeneralConfig holds forecast defaults.
type GeneralConfig struct {
	DefaultPreset string `toml:"default_preset"`
	Stochastic    bool   `toml:"stochastic"`
	// Seed 0 picks a time-based seed per run.
	Seed    uint64 `toml:"seed"`
	Workers int    `toml:"workers"`
}

// RunSeed returns the configured seed, or a time-based one when Seed is 0.
func (g GeneralConfig) RunSeed() uint64 {
	if g.Seed != 0 {
		return g.Seed
	}
	return uint64(time.Now().UnixNano())
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultPreset: PresetColocation,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Logging: logging.DefaultConfig(),
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fcast")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fcast")
}

// ConfigPath returns the full path to the config file.
// FCAST_CONFIG wins over the XDG location.
func ConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(ConfigDir(), "config.toml")
}

// LoadEnv reads a .env file from the working directory, if present.
// Variables already set in the environment are left alone.
func LoadEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("reading .env: %w", err)
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are applied on top.
func Load() (Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return cfg, err
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFile is Load without environment overrides: defaults plus whatever
// the file sets. Use it when the result is written back with Save.
func LoadFile() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if s := os.Getenv(EnvSeed); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvSeed, err)
		}
		cfg.General.Seed = seed
	}
	return nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
