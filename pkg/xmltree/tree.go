package xmltree

import "strings"

// Default declaration values used when a source has no XML declaration.
const (
	DefaultVersion  = "1.0"
	DefaultEncoding = "UTF-8"
)

// Declaration is the <?xml ... ?> header of a document.
type Declaration struct {
	Version  string
	Encoding string
}

// IsUTF8 reports whether the declared encoding is UTF-8 (case-insensitive).
func (d Declaration) IsUTF8() bool {
	e := strings.ToLower(d.Encoding)
	return e == "" || e == "utf-8" || e == "utf8"
}

// Document is a parsed XML configuration file.
type Document struct {
	Decl Declaration
	Root *Element
}

// Node is either an *Element or a *Comment.
type Node interface {
	node()
}

// Attr is a single key="value" pair. Value is stored escaped, exactly as it
// is written back out.
type Attr struct {
	Key   string
	Value string
}

// Element is a named node with ordered attributes and ordered children.
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []Node
}

// Comment is an XML comment. Text is the payload between "<!--" and "-->".
type Comment struct {
	Text string
}

func (*Element) node() {}
func (*Comment) node() {}

// IsEmpty reports whether the element has no children and therefore renders
// as a self-closing tag.
func (e *Element) IsEmpty() bool {
	return len(e.Children) == 0
}

// Attr returns the value of the attribute with the given key.
func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Elem builds an element. It is a convenience for tests and examples.
func Elem(tag string, attrs []Attr, children ...Node) *Element {
	return &Element{Tag: tag, Attrs: attrs, Children: children}
}

// Attrs builds an attribute list from alternating keys and values.
// It panics on an odd number of arguments.
func Attrs(kv ...string) []Attr {
	if len(kv)%2 != 0 {
		panic("xmltree: Attrs requires key/value pairs")
	}
	attrs := make([]Attr, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		attrs = append(attrs, Attr{Key: kv[i], Value: kv[i+1]})
	}
	return attrs
}

// NewDocument returns a document with the default declaration.
func NewDocument(root *Element) *Document {
	return &Document{
		Decl: Declaration{Version: DefaultVersion, Encoding: DefaultEncoding},
		Root: root,
	}
}
