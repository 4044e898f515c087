package xmltree

import (
	"bytes"
	"errors"
	"regexp"
	"strings"

	"github.com/beevik/etree"

	errs "github.com/precice/config-format/pkg/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// declAttrRegex matches pseudo-attributes inside <?xml ... ?>.
var declAttrRegex = regexp.MustCompile(`([A-Za-z_:][-A-Za-z0-9._:]*)\s*=\s*(?:"([^"]*)"|'([^']*)')`)

// Parse builds a Document from raw XML bytes.
//
// Errors are returned as *errors.Error with code SOURCE_MALFORMED.
func Parse(data []byte) (*Document, error) {
	data = normalizeAttrWhitespace(bytes.TrimPrefix(data, utf8BOM))

	raw := etree.NewDocument()
	raw.ReadSettings.CharsetReader = charsetReader
	raw.ReadSettings.PreserveCData = true
	raw.ReadSettings.PreserveDuplicateAttrs = true
	if err := raw.ReadFromBytes(data); err != nil {
		if errors.Is(err, etree.ErrXML) {
			return nil, errs.New(errs.ErrCodeSourceMalformed, "unbalanced or unclosed elements")
		}
		return nil, errs.Wrap(errs.ErrCodeSourceMalformed, err, "parse XML")
	}

	doc := &Document{Decl: Declaration{Version: DefaultVersion, Encoding: DefaultEncoding}}
	for i, tok := range raw.Child {
		switch t := tok.(type) {
		case *etree.ProcInst:
			if t.Target != "xml" || i != 0 {
				return nil, errs.New(errs.ErrCodeSourceMalformed, "unexpected processing instruction <?%s?>", t.Target)
			}
			doc.Decl = parseDeclaration([]byte(t.Inst))

		case *etree.Element:
			if doc.Root != nil {
				return nil, errs.New(errs.ErrCodeSourceMalformed, "multiple root elements")
			}
			root, err := convert(t)
			if err != nil {
				return nil, err
			}
			doc.Root = root

		case *etree.Comment:
			return nil, errs.New(errs.ErrCodeSourceMalformed, "comment outside the root element")

		default:
			if err := rejectToken(tok); err != nil {
				return nil, err
			}
		}
	}

	if doc.Root == nil {
		return nil, errs.New(errs.ErrCodeSourceMalformed, "no root element")
	}
	return doc, nil
}

// convert maps an etree element and its subtree onto the package model.
func convert(src *etree.Element) (*Element, error) {
	el := &Element{Tag: qualifiedName(src.Space, src.Tag)}

	if len(src.Attr) > 0 {
		el.Attrs = make([]Attr, 0, len(src.Attr))
		seen := make(map[string]bool, len(src.Attr))
		for _, a := range src.Attr {
			key := qualifiedName(a.Space, a.Key)
			if seen[key] {
				return nil, errs.New(errs.ErrCodeSourceMalformed, "duplicate attribute %q on <%s>", key, el.Tag)
			}
			seen[key] = true
			el.Attrs = append(el.Attrs, Attr{Key: key, Value: EscapeAttr(a.Value)})
		}
	}

	for _, tok := range src.Child {
		switch t := tok.(type) {
		case *etree.Element:
			child, err := convert(t)
			if err != nil {
				return nil, err
			}
			el.Children = append(el.Children, child)
		case *etree.Comment:
			el.Children = append(el.Children, &Comment{Text: t.Data})
		case *etree.ProcInst:
			return nil, errs.New(errs.ErrCodeSourceMalformed, "unexpected processing instruction <?%s?> in <%s>", t.Target, el.Tag)
		default:
			if err := rejectToken(tok); err != nil {
				return nil, err
			}
		}
	}
	return el, nil
}

// rejectToken accepts whitespace-only character data and refuses everything
// the model has no place for.
func rejectToken(tok etree.Token) error {
	switch t := tok.(type) {
	case *etree.CharData:
		if t.IsCData() {
			return errs.New(errs.ErrCodeSourceMalformed, "unsupported CDATA section %q", truncate(t.Data, 40))
		}
		if t.IsWhitespace() {
			return nil
		}
		return errs.New(errs.ErrCodeSourceMalformed, "unexpected text content %q", truncate(strings.TrimSpace(t.Data), 40))
	case *etree.Directive:
		return errs.New(errs.ErrCodeSourceMalformed, "unsupported directive <!%s>", truncate(t.Data, 40))
	}
	return errs.New(errs.ErrCodeSourceMalformed, "unexpected token %T", tok)
}

// qualifiedName joins a raw prefix and local name back into "prefix:local".
func qualifiedName(space, local string) string {
	if space == "" {
		return local
	}
	return space + ":" + local
}

func parseDeclaration(inst []byte) Declaration {
	decl := Declaration{Version: DefaultVersion, Encoding: DefaultEncoding}
	for _, m := range declAttrRegex.FindAllSubmatch(inst, -1) {
		val := string(m[2])
		if len(m[3]) > 0 {
			val = string(m[3])
		}
		switch string(m[1]) {
		case "version":
			decl.Version = val
		case "encoding":
			decl.Encoding = val
		}
	}
	return decl
}

// normalizeAttrWhitespace replaces literal tab, newline and carriage return
// characters inside quoted attribute values with a space, folding CR LF
// into one. Characters written as references are left for the decoder, so
// after decoding they are the only whitespace controls a value can hold.
func normalizeAttrWhitespace(data []byte) []byte {
	if !bytes.ContainsAny(data, "\t\n\r") {
		return data
	}

	out := make([]byte, 0, len(data))
	var quote byte
	inTag := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		switch {
		case quote != 0:
			switch c {
			case quote:
				quote = 0
			case '\r':
				if i+1 < len(data) && data[i+1] == '\n' {
					continue
				}
				c = ' '
			case '\t', '\n':
				c = ' '
			}
		case inTag:
			switch c {
			case '"', '\'':
				quote = c
			case '>':
				inTag = false
			}
		case c == '<':
			if end := skipMarkup(data[i:]); end > 0 {
				out = append(out, data[i:i+end]...)
				i += end - 1
				continue
			}
			inTag = true
		}
		out = append(out, c)
	}
	return out
}

var markupSections = []struct{ open, close string }{
	{"<!--", "-->"},
	{"<![CDATA[", "]]>"},
	{"<?", "?>"},
	{"<!", ">"},
}

// skipMarkup returns the length of the comment, CDATA section, processing
// instruction or directive that data starts with, or 0 when data opens a tag.
func skipMarkup(data []byte) int {
	for _, m := range markupSections {
		if !bytes.HasPrefix(data, []byte(m.open)) {
			continue
		}
		if end := bytes.Index(data[len(m.open):], []byte(m.close)); end >= 0 {
			return len(m.open) + end + len(m.close)
		}
		return len(data)
	}
	return 0
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	`"`, "&quot;",
	"\t", "&#9;",
	"\n", "&#10;",
	"\r", "&#13;",
)

// EscapeAttr escapes a decoded attribute value for output between double
// quotes. Whitespace controls only reach it from character references, so
// they are written back as references.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
