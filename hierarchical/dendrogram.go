package hierarchical

import (
	"strconv"
	"strings"
)

// Node is a dendrogram node. Leaves carry an instance index; internal nodes
// join two subtrees at Height, the linkage value of the merge.
type Node struct {
	Left, Right *Node
	Instance    int // leaf instance index, -1 for internal nodes
	Height      float64
	Size        int
}

func newLeaf(i int) *Node {
	return &Node{Instance: i, Size: 1}
}

func join(left, right *Node, height float64) *Node {
	return &Node{
		Left:     left,
		Right:    right,
		Instance: -1,
		Height:   height,
		Size:     left.Size + right.Size,
	}
}

// IsLeaf reports whether n is a single instance.
func (n *Node) IsLeaf() bool { return n.Left == nil && n.Right == nil }

// Leaves returns the instance indices under n, left to right.
func (n *Node) Leaves() []int {
	out := make([]int, 0, n.Size)
	var walk func(*Node)
	walk = func(x *Node) {
		if x.IsLeaf() {
			out = append(out, x.Instance)
			return
		}
		walk(x.Left)
		walk(x.Right)
	}
	walk(n)

	return out
}

// minLeaf returns the smallest instance index under n.
func (n *Node) minLeaf() int {
	if n.IsLeaf() {
		return n.Instance
	}

	return min(n.Left.minLeaf(), n.Right.minLeaf())
}

// Newick renders n as a Newick tree without the trailing semicolon, e.g.
// "(a:0.5,(b:0.25,c:0.25):0.25)". label names leaves; branchLength selects
// merge distance (true) or height difference (false) as the edge length.
func (n *Node) Newick(label func(instance int) string, branchLength bool) string {
	var b strings.Builder
	n.writeNewick(&b, label, branchLength)

	return b.String()
}

func (n *Node) writeNewick(b *strings.Builder, label func(int) string, branchLength bool) {
	if n.IsLeaf() {
		b.WriteString(newickLabel(label(n.Instance)))
		return
	}
	b.WriteByte('(')
	for k, child := range [2]*Node{n.Left, n.Right} {
		if k > 0 {
			b.WriteByte(',')
		}
		child.writeNewick(b, label, branchLength)
		length := n.Height
		if !branchLength {
			length -= child.Height
		}
		b.WriteByte(':')
		b.WriteString(strconv.FormatFloat(length, 'f', -1, 64))
	}
	b.WriteByte(')')
}

// newickLabel quotes labels containing Newick metacharacters.
func newickLabel(s string) string {
	if !strings.ContainsAny(s, "(),:; \t'[]") {
		return s
	}

	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
