// Package format renders an [xmltree.Document] in canonical layout.
//
// Rendering is a pure function of the tree and an [Options] value: the same
// document and options always produce the same text, and rendering the
// re-parsed output again reproduces it byte for byte.
//
// # Layout Rules
//
// Each element is printed on one line when it fits:
//
//	<data:vector name="Forces" />
//
// and with one attribute per line when its single-line width plus
// indentation exceeds [Options.MaxWidth]:
//
//	<mapping:nearest-neighbor
//	  direction="read"
//	  from="Solid-Mesh"
//	  to="Fluid-Mesh"
//	  constraint="consistent" />
//
// Elements without children are self-closing. Attribute and child order are
// never changed.
//
// # Blank Lines
//
// Up to [Options.MaxGroupLevel], siblings are partitioned into runs that share
// a tag prefix (the part before [Options.GroupSeparator]). A run whose first
// member is self-closing prints compactly; any other run puts every member in
// its own group. Groups are separated by one blank line, except after a
// comment and after the last group.
//
// # Usage
//
//	doc, err := xmltree.Parse(data)
//	if err != nil {
//	    return err
//	}
//	text := format.Render(doc, format.DefaultOptions())
package format
