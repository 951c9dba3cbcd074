package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// PathEnv names the variable pointing at a YAML config file.
const PathEnv = "USODICT_CONFIG"

// DefaultPath is read when PathEnv is unset. It may be absent.
const DefaultPath = "usodict.yaml"

// Load builds the Config for a command run. Environment variables win over the
// YAML file, which wins over the env-default tags.
func Load() (*Config, error) {
	path, required := filePath()

	var cfg Config
	if err := read(path, required, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// filePath reports the config file to read and whether it must exist.
func filePath() (string, bool) {
	if p := os.Getenv(PathEnv); p != "" {
		return p, true
	}
	return DefaultPath, false
}

func read(path string, required bool, cfg *Config) error {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		return nil
	case required || !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("file %s: %w", path, err)
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return fmt.Errorf("read env: %w", err)
	}
	return nil
}
