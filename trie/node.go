package trie

import "sort"

type node struct {
	children map[string]*node
	terminal bool
}

func newNode() *node {
	return &node{
		children: map[string]*node{},
	}
}

func (n *node) ensureChild(label string) *node {
	c, ok := n.children[label]
	if !ok {
		c = newNode()
		n.children[label] = c
	}
	return c
}

// onlyChild returns the label and node of n's single child.
// n must have exactly one child.
func (n *node) onlyChild() (string, *node) {
	for label, c := range n.children {
		return label, c
	}
	return "", nil
}

func (n *node) labels() []string {
	labels := make([]string, 0, len(n.children))
	for label := range n.children {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

func (n *node) count() int {
	total := 1
	for _, c := range n.children {
		total += c.count()
	}
	return total
}
