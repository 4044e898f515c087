package format

import (
	"strings"
	"testing"

	"github.com/precice/config-format/pkg/xmltree"
)

func TestChooseLayout(t *testing.T) {
	opts := DefaultOptions()

	// depth 1: 2 indent + 23 fixed + len(value)
	boundary := func(n int) *xmltree.Element {
		return xmltree.Elem("data:scalar", xmltree.Attrs("name", strings.Repeat("v", n)))
	}

	tests := []struct {
		name  string
		el    *xmltree.Element
		depth int
		want  Layout
	}{
		{"no attributes", xmltree.Elem(strings.Repeat("t", 200), nil), 5, Horizontal},
		{"exactly max width", boundary(75), 1, Horizontal},
		{"one past max width", boundary(76), 1, Vertical},
		{"deeper indentation tips over", boundary(75), 2, Vertical},
		{"single oversized attribute", boundary(500), 0, Vertical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChooseLayout(tt.el, tt.depth, opts); got != tt.want {
				t.Errorf("ChooseLayout() = %v, want %v (width %d)", got, tt.want, Width(tt.el))
			}
		})
	}
}

func TestChooseLayoutIndentUnit(t *testing.T) {
	el := xmltree.Elem("e", xmltree.Attrs("k", "v")) // width 11
	opts := Options{Indent: "\t", MaxWidth: 13, MaxGroupLevel: 1, GroupSeparator: ":"}

	if got := ChooseLayout(el, 2, opts); got != Horizontal {
		t.Errorf("tab indent depth 2 = %v, want horizontal", got)
	}
	opts.Indent = "    "
	if got := ChooseLayout(el, 1, opts); got != Vertical {
		t.Errorf("four-space indent depth 1 = %v, want vertical", got)
	}
}

func TestLayoutString(t *testing.T) {
	if Horizontal.String() != "horizontal" || Vertical.String() != "vertical" {
		t.Errorf("unexpected names %q %q", Horizontal, Vertical)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr bool
	}{
		{"defaults", func(*Options) {}, false},
		{"tab indent", func(o *Options) { o.Indent = "\t" }, false},
		{"no indent", func(o *Options) { o.Indent = "" }, false},
		{"visible indent", func(o *Options) { o.Indent = "--" }, true},
		{"negative width", func(o *Options) { o.MaxWidth = -1 }, true},
		{"negative group level", func(o *Options) { o.MaxGroupLevel = -1 }, true},
		{"empty separator", func(o *Options) { o.GroupSeparator = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			if err := opts.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
