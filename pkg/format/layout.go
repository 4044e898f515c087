package format

import (
	"unicode/utf8"

	"github.com/precice/config-format/pkg/xmltree"
)

// Layout is the attribute arrangement chosen for one element.
type Layout int

const (
	// Horizontal puts all attributes on the tag's line.
	Horizontal Layout = iota
	// Vertical puts each attribute on its own line, one level deeper.
	Vertical
)

// String returns the layout name.
func (l Layout) String() string {
	if l == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ChooseLayout decides how el's attributes are arranged at the given depth.
// An element fits horizontally when its width plus indentation is at most
// opts.MaxWidth. Attribute values are never split, so a single oversized
// attribute still yields Vertical.
func ChooseLayout(el *xmltree.Element, depth int, opts Options) Layout {
	if len(el.Attrs) == 0 {
		return Horizontal
	}
	if Width(el)+depth*utf8.RuneCountInString(opts.Indent) <= opts.MaxWidth {
		return Horizontal
	}
	return Vertical
}
