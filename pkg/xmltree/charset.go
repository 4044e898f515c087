package xmltree

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"

	errs "github.com/precice/config-format/pkg/errors"
)

// lookupEncoding resolves an IANA charset label such as "ISO-8859-1".
func lookupEncoding(label string) (encoding.Encoding, error) {
	if strings.EqualFold(label, "utf-8") || strings.EqualFold(label, "utf8") || label == "" {
		return unicode.UTF8, nil
	}
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc, nil
}

// charsetReader is installed as xml.Decoder.CharsetReader so documents
// declaring a non-UTF-8 encoding are decoded before tokenizing.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := lookupEncoding(label)
	if err != nil {
		return nil, err
	}
	return enc.NewDecoder().Reader(input), nil
}

// Encode converts rendered UTF-8 text into the bytes of the document's
// declared encoding. UTF-8 documents are returned unchanged.
func (d Declaration) Encode(text string) ([]byte, error) {
	if d.IsUTF8() {
		return []byte(text), nil
	}
	enc, err := lookupEncoding(d.Encoding)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeUnsupported, err, "encoding %q", d.Encoding)
	}
	out, err := enc.NewEncoder().String(text)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeUnsupported, err, "encode output as %s", d.Encoding)
	}
	return []byte(out), nil
}
