// Package config loads usodict settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Config is the root application configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Parser ParserConfig `yaml:"parser"`
	Store  StoreConfig  `yaml:"store"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// ParserConfig holds conversion settings.
type ParserConfig struct {
	PrologueMarker   string `yaml:"prologue_marker"   env:"USODICT_PROLOGUE_MARKER"   env-default:"Utrecht, marzo de 2020"`
	FixupsPath       string `yaml:"fixups_path"       env:"USODICT_FIXUPS"`
	NormalizeUnicode bool   `yaml:"normalize_unicode" env:"USODICT_NORMALIZE_UNICODE" env-default:"true"`
}

// StoreConfig holds the entry database location.
type StoreConfig struct {
	Path string `yaml:"path" env:"USODICT_DB"`
}

var (
	logLevels = map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	validFormats = []string{"text", "json"}
)

// SlogLevel returns the level named by Level, ignoring case and surrounding
// space. Unknown names give info.
func (l LogConfig) SlogLevel() slog.Level {
	if lvl, ok := logLevels[strings.ToLower(strings.TrimSpace(l.Level))]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	var errs []error
	if _, ok := logLevels[strings.ToLower(strings.TrimSpace(c.Log.Level))]; !ok {
		errs = append(errs, fmt.Errorf("log.level: %q is not one of %v", c.Log.Level, slices.Sorted(maps.Keys(logLevels))))
	}
	if !slices.Contains(validFormats, strings.ToLower(c.Log.Format)) {
		errs = append(errs, fmt.Errorf("log.format: %q is not one of %v", c.Log.Format, validFormats))
	}
	if strings.TrimSpace(c.Parser.PrologueMarker) == "" {
		errs = append(errs, errors.New("parser.prologue_marker: must not be empty"))
	}
	return errors.Join(errs...)
}

// DBPath returns the configured database path, or ~/.usodict/usodict.db.
func (c *Config) DBPath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".usodict", "usodict.db")
}
