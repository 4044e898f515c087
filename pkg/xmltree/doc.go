// Package xmltree holds the parsed form of an XML configuration document.
//
// A [Document] owns one XML declaration and exactly one root [Element]. Every
// element owns its attribute list and its children; there is no sharing and
// no parent pointers, so a tree can be walked top-down without cycles.
//
// # Node Kinds
//
// The set of node kinds is closed: a [Node] is either an [*Element] or a
// [*Comment]. Callers dispatch with a type switch:
//
//	switch n := node.(type) {
//	case *xmltree.Element:
//	    // tag, attributes, children
//	case *xmltree.Comment:
//	    // verbatim payload
//	}
//
// # Parsing
//
// [Parse] builds a tree from raw bytes. It keeps attribute order, child order
// and comments exactly as they appear in the source, drops whitespace-only
// text between elements, and rejects content the tree cannot represent
// (non-blank text, CDATA, processing instructions) rather than dropping it.
//
// Namespace prefixes are not resolved: a tag written as "data:vector" is kept
// as the opaque string "data:vector".
package xmltree
