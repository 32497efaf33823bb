// Package trie builds prefix trees over a fixed set of keys, optionally
// compressed into radix form, and answers depth-aware membership queries.
//
// A Tree is built once and never mutated afterwards, so concurrent lookups
// on the same Tree are safe.
package trie

import (
	"sort"
	"unicode/utf8"
)

// NotFound is returned by LookupDepth when the query is not a stored key.
const NotFound = -1

// Tree is a prefix tree built by Build or BuildSuffixIndex. Its mode is
// fixed when it is built.
type Tree struct {
	root       *node
	compressed bool
}

// Build returns a tree storing every key. Duplicate keys are stored once and
// the empty key marks the root terminal. When compressed is set, chains of
// single-child non-terminal nodes are merged into multi-character edges.
func Build(keys []string, compressed bool) *Tree {
	t := &Tree{
		root:       newNode(),
		compressed: compressed,
	}

	for _, key := range keys {
		t.insert(key)
	}

	if compressed {
		t.compress()
	}
	return t
}

// insert walks key one rune at a time, creating single-rune edges as needed.
// An invalid UTF-8 byte becomes its own one-byte edge.
func (t *Tree) insert(key string) {
	curr := t.root
	for i := 0; i < len(key); {
		label := firstRune(key[i:])
		curr = curr.ensureChild(label)
		i += len(label)
	}
	curr.terminal = true
}

// firstRune returns the leading rune of s as a string, or its first byte when
// that byte does not start a valid encoding.
func firstRune(s string) string {
	_, size := utf8.DecodeRuneInString(s)
	return s[:size]
}

// Compressed reports whether the tree was built with path compression.
func (t *Tree) Compressed() bool {
	return t.compressed
}

// NodeCount returns the number of nodes in the tree, root included.
func (t *Tree) NodeCount() int {
	return t.root.count()
}

// Contains reports whether key was stored.
func (t *Tree) Contains(key string) bool {
	return t.LookupDepth(key) != NotFound
}

// Keys returns every stored key in sorted order.
func (t *Tree) Keys() []string {
	var keys []string
	collectKeys(t.root, "", &keys)
	sort.Strings(keys)
	return keys
}

func collectKeys(n *node, prefix string, keys *[]string) {
	if n.terminal {
		*keys = append(*keys, prefix)
	}
	for _, label := range n.labels() {
		collectKeys(n.children[label], prefix+label, keys)
	}
}
