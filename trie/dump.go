package trie

import (
	"bufio"
	"io"
	"strings"
)

// Lines returns a depth-first listing of every edge, indented one space per
// level, with " End" appended to edges that complete a stored key.
func (t *Tree) Lines() []string {
	var lines []string
	dumpNode(t.root, 0, &lines)
	return lines
}

func dumpNode(n *node, level int, lines *[]string) {
	for _, label := range n.labels() {
		child := n.children[label]
		line := strings.Repeat(" ", level) + label
		if child.terminal {
			line += " End"
		}
		*lines = append(*lines, line)
		dumpNode(child, level+1, lines)
	}
}

// Dump writes Lines to w, one per line.
func (t *Tree) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, line := range t.Lines() {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
