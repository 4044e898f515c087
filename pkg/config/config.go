// Package config loads formatter settings from .precice-format.toml.
//
// The file is looked up by walking from the working directory towards the
// filesystem root, so one file at the top of a repository covers every
// configuration below it. Only keys present in the file override the
// defaults; command-line flags override both.
//
//	[format]
//	indent = 2
//	max_width = 100
//	max_group_level = 1
//
//	[cache]
//	enabled = true
//	redis_url = "redis://ci-cache:6379/0"
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/precice/config-format/pkg/errors"
	"github.com/precice/config-format/pkg/format"
)

// FileName is the configuration file looked up by Find.
const FileName = ".precice-format.toml"

// Config is the complete formatter configuration.
type Config struct {
	Format FormatConfig `toml:"format"`
	Cache  CacheConfig  `toml:"cache"`

	// Path is the file the configuration was loaded from, empty for defaults.
	Path string `toml:"-"`
}

// FormatConfig holds the layout settings.
type FormatConfig struct {
	Indent         int    `toml:"indent"`   // indentation width per level
	UseTabs        bool   `toml:"use_tabs"` // indent with tabs instead of spaces
	MaxWidth       int    `toml:"max_width"`
	MaxGroupLevel  int    `toml:"max_group_level"`
	GroupSeparator string `toml:"group_separator"`
}

// CacheConfig controls the canonical-content cache.
type CacheConfig struct {
	Enabled  bool          `toml:"enabled"`
	RedisURL string        `toml:"redis_url"`
	Prefix   string        `toml:"prefix"`
	TTL      time.Duration `toml:"ttl"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Format: FormatConfig{
			Indent:         len(format.DefaultIndent),
			MaxWidth:       format.DefaultMaxWidth,
			MaxGroupLevel:  format.DefaultMaxGroupLevel,
			GroupSeparator: format.DefaultGroupSeparator,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     30 * 24 * time.Hour,
		},
	}
}

// Find walks up from startDir to locate FileName.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load reads path on top of the defaults. Unknown keys are rejected so a
// misspelled option does not silently fall back to its default.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "%s: failed to parse TOML", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errs.New(errs.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Discover finds and loads the configuration for startDir, returning the
// defaults when no file exists.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Format.Indent < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "format.indent must not be negative, got %d", c.Format.Indent)
	}
	if c.Cache.TTL < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.ttl must not be negative, got %s", c.Cache.TTL)
	}
	return c.Options().Validate()
}

// Options converts the layout settings into renderer options.
func (c Config) Options() format.Options {
	unit := " "
	if c.Format.UseTabs {
		unit = "\t"
	}
	return format.Options{
		Indent:         strings.Repeat(unit, c.Format.Indent),
		MaxWidth:       c.Format.MaxWidth,
		MaxGroupLevel:  c.Format.MaxGroupLevel,
		GroupSeparator: c.Format.GroupSeparator,
	}
}

// Encode writes the configuration as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
