package trie

import (
	"strings"
)

// LookupDepth returns the number of edges walked from the root to the node
// matching query, or NotFound when query is not a stored key. A query that
// stops inside the tree on a non-terminal node is not found.
//
// The same walk serves both modes: at each step the edge whose label
// prefixes the rest of the query is taken, whatever the label length.
func (t *Tree) LookupDepth(query string) int {
	curr := t.root
	depth := 0

	for i := 0; i < len(query); {
		rest := query[i:]
		label, next := curr.match(rest)
		if next == nil {
			return NotFound
		}
		i += len(label)
		depth++
		curr = next
	}

	if !curr.terminal {
		return NotFound
	}
	return depth
}

// match returns the child edge whose label is a prefix of s. Sibling labels
// never start with the same rune, so at most one edge can match.
func (n *node) match(s string) (string, *node) {
	first := firstRune(s)
	for label, child := range n.children {
		if firstRune(label) != first {
			continue
		}
		if strings.HasPrefix(s, label) {
			return label, child
		}
		return "", nil
	}
	return "", nil
}
