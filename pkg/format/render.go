package format

import (
	"bufio"
	"io"
	"strings"

	"github.com/precice/config-format/pkg/xmltree"
)

// Render returns the canonical text of doc. Every line, including the last,
// ends with a single "\n".
func Render(doc *xmltree.Document, opts Options) string {
	var sb strings.Builder
	p := &printer{w: &sb, opts: opts}
	p.document(doc)
	return sb.String()
}

// Fprint writes the canonical text of doc to w.
func Fprint(w io.Writer, doc *xmltree.Document, opts Options) error {
	bw := bufio.NewWriter(w)
	p := &printer{w: bw, opts: opts}
	p.document(doc)
	if p.err != nil {
		return p.err
	}
	return bw.Flush()
}

// RenderElement returns the lines of a single element at depth, without the
// XML declaration.
func RenderElement(el *xmltree.Element, depth int, opts Options) string {
	var sb strings.Builder
	p := &printer{w: &sb, opts: opts}
	p.node(el, depth)
	return sb.String()
}

// printer emits lines to w and keeps the first write error.
type printer struct {
	w    io.StringWriter
	opts Options
	err  error
}

func (p *printer) line(parts ...string) {
	if p.err != nil {
		return
	}
	for _, s := range parts {
		if _, err := p.w.WriteString(s); err != nil {
			p.err = err
			return
		}
	}
	if _, err := p.w.WriteString("\n"); err != nil {
		p.err = err
	}
}

func (p *printer) indent(depth int) string {
	return strings.Repeat(p.opts.Indent, depth)
}

func (p *printer) document(doc *xmltree.Document) {
	p.line(`<?xml version="`, doc.Decl.Version, `" encoding="`, doc.Decl.Encoding, `" ?>`)
	p.node(doc.Root, 0)
}

func (p *printer) node(n xmltree.Node, depth int) {
	switch n := n.(type) {
	case *xmltree.Comment:
		p.line(p.indent(depth), "<!--", n.Text, "-->")
	case *xmltree.Element:
		if n.IsEmpty() {
			p.openTag(n, depth, " />")
			return
		}
		p.openTag(n, depth, ">")
		p.children(n.Children, depth+1)
		p.line(p.indent(depth), "</", n.Tag, ">")
	}
}

// openTag prints the start tag of el terminated by closer, which is ">" for
// containers and " />" for empty elements.
func (p *printer) openTag(el *xmltree.Element, depth int, closer string) {
	ind := p.indent(depth)
	switch {
	case len(el.Attrs) == 0:
		p.line(ind, "<", el.Tag, closer)
	case ChooseLayout(el, depth, p.opts) == Horizontal:
		p.line(ind, "<", el.Tag, " ", horizontalAttrs(el.Attrs), closer)
	default:
		p.line(ind, "<", el.Tag)
		attrInd := p.indent(depth + 1)
		last := len(el.Attrs) - 1
		for i, a := range el.Attrs {
			if i == last {
				p.line(attrInd, a.Key, `="`, a.Value, `"`, closer)
			} else {
				p.line(attrInd, a.Key, `="`, a.Value, `"`)
			}
		}
	}
}

func horizontalAttrs(attrs []xmltree.Attr) string {
	var sb strings.Builder
	for i, a := range attrs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(a.Key)
		sb.WriteString(`="`)
		sb.WriteString(a.Value)
		sb.WriteByte('"')
	}
	return sb.String()
}

func (p *printer) children(nodes []xmltree.Node, depth int) {
	groups := Groups(nodes, depth, p.opts)
	for i, g := range groups {
		for _, n := range g {
			p.node(n, depth)
		}
		if separated(g, i, len(groups)) {
			p.line()
		}
	}
}
