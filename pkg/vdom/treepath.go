package vdom

import (
	"strconv"
	"strings"
)

// TreePath addresses a node by the child indices leading to it from the
// root. The empty path is the root. Paths are values and never alias one
// another.
type TreePath []int

// Root returns the path of the root node.
func Root() TreePath { return TreePath{} }

// NewTreePath creates a path from literal indices.
func NewTreePath(indices ...int) TreePath {
	p := make(TreePath, len(indices))
	copy(p, indices)
	return p
}

// Traverse returns the path of the i-th child of the node at p.
func (p TreePath) Traverse(i int) TreePath {
	next := make(TreePath, len(p)+1)
	copy(next, p)
	next[len(p)] = i
	return next
}

// Backtrack returns the path of the parent of the node at p. The root is
// its own parent.
func (p TreePath) Backtrack() TreePath {
	if len(p) == 0 {
		return Root()
	}
	return NewTreePath(p[:len(p)-1]...)
}

// Depth returns the number of indices in p.
func (p TreePath) Depth() int { return len(p) }

// IsRoot reports whether p addresses the root.
func (p TreePath) IsRoot() bool { return len(p) == 0 }

// Equal reports whether p and other address the same position.
func (p TreePath) Equal(other TreePath) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// String formats p as "[0 1 2]".
func (p TreePath) String() string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// FindNode resolves p against the tree rooted at root.
func (p TreePath) FindNode(root Node) (Node, bool) {
	n := root
	for _, idx := range p {
		children := Children(n)
		if idx < 0 || idx >= len(children) {
			return nil, false
		}
		n = children[idx]
	}
	return n, n != nil
}
