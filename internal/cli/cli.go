package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/precice/config-format/pkg/buildinfo"
	"github.com/precice/config-format/pkg/cache"
	"github.com/precice/config-format/pkg/config"
	"github.com/precice/config-format/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "precice-config-format"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	out   io.Writer // status lines and command output
	flags flags
}

// flags are the persistent flags shared by all commands.
type flags struct {
	configPath    string
	indentWidth   int
	useTabs       bool
	maxWidth      int
	maxGroupLevel int
	noCache       bool
	redisURL      string
}

// New creates a new CLI instance logging to w. Command output goes to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// ExitError reports a non-zero exit status for a batch whose per-file results
// have already been printed.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The root command itself formats the files given as arguments in place.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName + " [files...]",
		Short: "Consistently format preCICE configuration files",
		Long: `Consistently format preCICE configuration files.

Files are rewritten in place. The exit status is 0 when every file was
already formatted, 2 when at least one file was reformatted, and 1 when
at least one file could not be read, parsed or written.`,
		Version:       buildinfo.Version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFormat(cmd, args, false)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.configPath, "config", "", "configuration file (default: nearest "+config.FileName+")")
	pf.IntVar(&c.flags.indentWidth, "indent-width", 2, "spaces per nesting level")
	pf.BoolVar(&c.flags.useTabs, "use-tabs", false, "indent with tabs instead of spaces")
	pf.IntVar(&c.flags.maxWidth, "max-width", 100, "line width before attributes are split over lines")
	pf.IntVar(&c.flags.maxGroupLevel, "max-group-level", 1, "deepest level at which siblings are grouped")
	pf.BoolVar(&c.flags.noCache, "no-cache", false, "disable the canonical-content cache")
	pf.StringVar(&c.flags.redisURL, "redis-url", "", "share the cache through Redis (e.g. redis://localhost:6379/0)")

	root.AddCommand(c.checkCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig resolves the effective configuration: flags override the
// configuration file, which overrides the defaults.
func (c *CLI) loadConfig(cmd *cobra.Command) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if c.flags.configPath != "" {
		cfg, err = config.Load(c.flags.configPath)
	} else {
		var wd string
		if wd, err = os.Getwd(); err == nil {
			cfg, err = config.Discover(wd)
		}
	}
	if err != nil {
		return config.Config{}, err
	}
	if cfg.Path != "" {
		c.Logger.Debug("loaded configuration", "path", cfg.Path)
	}

	fs := cmd.Flags()
	if fs.Changed("indent-width") {
		cfg.Format.Indent = c.flags.indentWidth
	}
	if fs.Changed("use-tabs") {
		cfg.Format.UseTabs = c.flags.useTabs
	}
	if fs.Changed("max-width") {
		cfg.Format.MaxWidth = c.flags.maxWidth
	}
	if fs.Changed("max-group-level") {
		cfg.Format.MaxGroupLevel = c.flags.maxGroupLevel
	}
	if fs.Changed("no-cache") {
		cfg.Cache.Enabled = !c.flags.noCache
	}
	if fs.Changed("redis-url") {
		cfg.Cache.RedisURL = c.flags.redisURL
	}
	return cfg, cfg.Validate()
}

// pipelineOptions converts the configuration into runner options.
func pipelineOptions(cfg config.Config) pipeline.Options {
	return pipeline.Options{
		Options: cfg.Options(),
		TTL:     cfg.Cache.TTL,
	}
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(cfg config.Config) (*pipeline.Runner, error) {
	cc, err := c.newCache(cfg.Cache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if cfg.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Cache.Prefix)
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

func (c *CLI) newCache(cfg config.CacheConfig) (cache.Cache, error) {
	if !cfg.Enabled {
		return cache.NewNullCache(), nil
	}
	if cfg.RedisURL != "" {
		c.Logger.Debug("using redis cache")
		return cache.NewRedisCache(cfg.RedisURL)
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard
// (~/.cache/precice-config-format/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
