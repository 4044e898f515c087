package format

import (
	"strings"

	errs "github.com/precice/config-format/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultIndent is the text prepended once per nesting level.
	DefaultIndent = "  "

	// DefaultMaxWidth is the column limit for single-line attribute layout.
	DefaultMaxWidth = 100

	// DefaultMaxGroupLevel is the deepest level at which blank lines are
	// inserted between sibling groups.
	DefaultMaxGroupLevel = 1

	// DefaultGroupSeparator splits a tag into its group key and the rest.
	DefaultGroupSeparator = ":"
)

// Options controls rendering. It is passed by value and never mutated while
// a document renders, so one Options can be shared between goroutines.
type Options struct {
	Indent         string `json:"indent"`
	MaxWidth       int    `json:"max_width"`
	MaxGroupLevel  int    `json:"max_group_level"`
	GroupSeparator string `json:"group_separator"`
}

// DefaultOptions returns the canonical layout settings.
func DefaultOptions() Options {
	return Options{
		Indent:         DefaultIndent,
		MaxWidth:       DefaultMaxWidth,
		MaxGroupLevel:  DefaultMaxGroupLevel,
		GroupSeparator: DefaultGroupSeparator,
	}
}

// Validate checks that the options describe a usable layout.
func (o Options) Validate() error {
	if strings.TrimSpace(o.Indent) != "" {
		return errs.New(errs.ErrCodeInvalidConfig, "indent must be whitespace, got %q", o.Indent)
	}
	if o.MaxWidth < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "max width must not be negative, got %d", o.MaxWidth)
	}
	if o.MaxGroupLevel < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "max group level must not be negative, got %d", o.MaxGroupLevel)
	}
	if o.GroupSeparator == "" {
		return errs.New(errs.ErrCodeInvalidConfig, "group separator must not be empty")
	}
	return nil
}
