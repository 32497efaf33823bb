package trie

// compress merges every non-terminal node with exactly one child into the
// edge leading to it. Running it on a compressed tree changes nothing.
func (t *Tree) compress() {
	compressNode(t.root)
}

// compressNode compresses the subtrees below n, children first, then lifts
// each mergeable child's only edge up into n.
func compressNode(n *node) {
	for _, label := range n.labels() {
		child := n.children[label]
		compressNode(child)

		// child's own subtree is already compressed, so its only child is
		// terminal or branching and one merge is enough.
		if len(child.children) != 1 || child.terminal {
			continue
		}
		childLabel, grandchild := child.onlyChild()
		delete(n.children, label)
		n.children[label+childLabel] = grandchild
	}
}
