package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func useTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(EnvConfigPath, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvSeed, "")
	return filepath.Join(dir, "fcast", "config.toml")
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	path := useTempConfig(t)
	if ConfigPath() != path {
		t.Fatalf("ConfigPath() = %q, want %q", ConfigPath(), path)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.DefaultPreset != PresetColocation {
		t.Errorf("DefaultPreset = %q, want %q", cfg.General.DefaultPreset, PresetColocation)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
	if Exists() {
		t.Error("Exists() = true before Save")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	useTempConfig(t)

	cfg := DefaultConfig()
	cfg.General.DefaultPreset = PresetCloudS3
	cfg.General.Seed = 1234
	cfg.General.Workers = 3
	cfg.Appearance.Theme = "tokyo-night"
	months := 60
	cfg.Presets = map[string]PresetOverride{"cloud-s3": {Months: &months}}

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}
	info, err := os.Stat(ConfigPath())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config mode = %o, want 600", perm)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.General != cfg.General || got.Appearance != cfg.Appearance {
		t.Fatalf("round trip = %+v, want %+v", got, cfg)
	}
	if o := got.Presets["cloud-s3"]; o.Months == nil || *o.Months != 60 {
		t.Fatalf("preset override lost: %+v", got.Presets)
	}
}

func TestLoadParseError(t *testing.T) {
	path := useTempConfig(t)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[general\nseed ="), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "parsing config") {
		t.Fatalf("Load error = %v, want parsing config error", err)
	}
}

func TestConfigPathEnvOverride(t *testing.T) {
	useTempConfig(t)
	custom := filepath.Join(t.TempDir(), "custom.toml")
	t.Setenv(EnvConfigPath, custom)

	if got := ConfigPath(); got != custom {
		t.Fatalf("ConfigPath() = %q, want %q", got, custom)
	}
	if err := os.WriteFile(custom, []byte("[general]\nworkers = 7\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.Workers != 7 {
		t.Fatalf("Workers = %d, want 7", cfg.General.Workers)
	}
	// Unset keys keep their defaults.
	if cfg.General.DefaultPreset != PresetColocation {
		t.Fatalf("DefaultPreset = %q, want default", cfg.General.DefaultPreset)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	useTempConfig(t)
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvSeed, "42")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "debug" || cfg.General.Seed != 42 {
		t.Fatalf("env overrides not applied: level=%q seed=%d", cfg.Logging.Level, cfg.General.Seed)
	}

	t.Setenv(EnvSeed, "not-a-number")
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted a non-numeric seed")
	}
}

func TestLoadFileIgnoresEnv(t *testing.T) {
	useTempConfig(t)
	cfg := DefaultConfig()
	cfg.General.Seed = 5
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvSeed, "42")

	got, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got.General.Seed != 5 || got.Logging.Level != DefaultConfig().Logging.Level {
		t.Fatalf("LoadFile picked up env overrides: seed=%d level=%q", got.General.Seed, got.Logging.Level)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	// Missing .env is not an error.
	if err := LoadEnv(); err != nil {
		t.Fatalf("LoadEnv without file: %v", err)
	}

	t.Setenv(EnvSeed, "")
	os.Unsetenv(EnvSeed)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("FCAST_SEED=77\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := LoadEnv(); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if got := os.Getenv(EnvSeed); got != "77" {
		t.Fatalf("FCAST_SEED = %q, want 77", got)
	}
}

func TestRunSeed(t *testing.T) {
	g := GeneralConfig{Seed: 9}
	if g.RunSeed() != 9 {
		t.Fatalf("RunSeed() = %d, want 9", g.RunSeed())
	}
	if (GeneralConfig{}).RunSeed() == 0 {
		t.Fatal("time-based seed should not be 0")
	}
}
