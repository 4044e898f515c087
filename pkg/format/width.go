package format

import (
	"unicode/utf8"

	"github.com/precice/config-format/pkg/xmltree"
)

// Width returns the number of characters el occupies when printed on one
// line with horizontal attributes, excluding indentation. Children do not
// contribute.
//
//	<tag k1="v1" k2="v2" />
//	^^^^^^^^^^^^^^^^^^^^^^^ = 2 + len(tag) + 1 + attrs + 2 (self-closing)
func Width(el *xmltree.Element) int {
	total := 2 + utf8.RuneCountInString(el.Tag)
	if len(el.Attrs) > 0 {
		total += 1 + attrsWidth(el.Attrs)
	}
	if el.IsEmpty() {
		total += 2 // space and slash
	}
	return total
}

// attrsWidth is the width of the space-joined key="value" list.
func attrsWidth(attrs []xmltree.Attr) int {
	total := 0
	for _, a := range attrs {
		// KEY="VALUE"
		total += utf8.RuneCountInString(a.Key) + 3 + utf8.RuneCountInString(a.Value)
	}
	return total + len(attrs) - 1
}
