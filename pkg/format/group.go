package format

import (
	"strings"

	"github.com/precice/config-format/pkg/xmltree"
)

// groupKey identifies a run of siblings. Comments share one key that can
// never equal an element's key.
type groupKey struct {
	comment bool
	prefix  string
}

func keyOf(n xmltree.Node, sep string) groupKey {
	switch n := n.(type) {
	case *xmltree.Element:
		return groupKey{prefix: GroupKey(n.Tag, sep)}
	default:
		return groupKey{comment: true}
	}
}

// GroupKey returns the part of tag before the first sep, or the whole tag.
func GroupKey(tag, sep string) string {
	prefix, _, _ := strings.Cut(tag, sep)
	return prefix
}

// compactRun reports whether a run starting with n prints without blank
// lines. Comments have no children, so a run of comments is compact too.
func compactRun(n xmltree.Node) bool {
	switch n := n.(type) {
	case *xmltree.Element:
		return n.IsEmpty()
	default:
		return true
	}
}

// Groups partitions siblings at depth into the groups rendered without
// internal blank lines. Beyond opts.MaxGroupLevel all siblings form a single
// group.
//
// Consecutive siblings with the same group key form a run. Only the run's
// first member is inspected: if it is self-closing the whole run is one
// group, otherwise every member becomes its own group.
func Groups(nodes []xmltree.Node, depth int, opts Options) [][]xmltree.Node {
	if len(nodes) == 0 {
		return nil
	}
	if depth > opts.MaxGroupLevel {
		return [][]xmltree.Node{nodes}
	}

	var groups [][]xmltree.Node
	for start := 0; start < len(nodes); {
		key := keyOf(nodes[start], opts.GroupSeparator)
		end := start + 1
		for end < len(nodes) && keyOf(nodes[end], opts.GroupSeparator) == key {
			end++
		}

		run := nodes[start:end]
		if compactRun(run[0]) {
			groups = append(groups, run)
		} else {
			for i := range run {
				groups = append(groups, run[i:i+1])
			}
		}
		start = end
	}
	return groups
}

// separated reports whether a blank line follows group i of n.
func separated(group []xmltree.Node, i, n int) bool {
	if i == n-1 {
		return false
	}
	_, isComment := group[0].(*xmltree.Comment)
	return !isComment
}
