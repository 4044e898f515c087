// Package pipeline runs the read → parse → render → classify → write cycle
// for preCICE configuration files.
//
// The same [Runner] backs the command line (in-place formatting and check
// mode) and the HTTP server (in-memory formatting), so caching, logging and
// hooks behave identically on every entry point.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	opts := pipeline.DefaultOptions()
//	summary := runner.FormatFiles(ctx, []string{"precice-config.xml"}, opts)
//	os.Exit(summary.ExitCode())
//
// Format content without touching the filesystem:
//
//	res, err := runner.FormatBytes(ctx, data, opts)
//	if err != nil {
//	    return err // SOURCE_MALFORMED, UNSUPPORTED or CANCELED
//	}
//	fmt.Print(string(res.Output))
package pipeline

import (
	"time"

	"github.com/precice/config-format/pkg/buildinfo"
	"github.com/precice/config-format/pkg/cache"
	"github.com/precice/config-format/pkg/canon"
	"github.com/precice/config-format/pkg/format"
)

// Options configures a formatting run.
type Options struct {
	format.Options

	// Check reports what would change without writing any file.
	Check bool `json:"check,omitempty"`

	// TTL is the lifetime of canonical markers in the cache.
	// Zero means cache.DefaultTTL.
	TTL time.Duration `json:"-"`
}

// DefaultOptions returns the default layout in write mode.
func DefaultOptions() Options {
	return Options{Options: format.DefaultOptions()}
}

// Validate checks the layout options and fills in defaults.
func (o *Options) Validate() error {
	if err := o.Options.Validate(); err != nil {
		return err
	}
	if o.TTL <= 0 {
		o.TTL = cache.DefaultTTL
	}
	return nil
}

// keyOpts lists every option that influences the rendered output.
func (o Options) keyOpts() cache.FormatKeyOpts {
	return cache.FormatKeyOpts{
		Indent:         o.Indent,
		MaxWidth:       o.MaxWidth,
		MaxGroupLevel:  o.MaxGroupLevel,
		GroupSeparator: o.GroupSeparator,
		Version:        buildinfo.Version,
	}
}

// Result is the outcome of formatting in-memory content.
type Result struct {
	// Output is the canonical document, encoded in its declared encoding.
	// On a cache hit it is the input itself.
	Output []byte

	Status canon.Status

	// Cached is true when the content was confirmed canonical by the cache
	// without parsing.
	Cached bool
}
