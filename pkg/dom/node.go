package dom

import "github.com/vango-dev/vdiff/pkg/vdom"

// node is the mutable counterpart of a vdom.Node.
type node struct {
	kind        vdom.Kind
	namespace   string
	tag         string
	attrs       []vdom.Attribute
	content     string
	selfClosing bool
	children    []*node
	parent      *node
}

// build converts an immutable tree into mutable nodes.
func build(n vdom.Node) *node {
	out := &node{kind: n.Kind()}
	switch v := n.(type) {
	case *vdom.Element:
		out.namespace = v.Namespace
		out.tag = v.Tag
		out.selfClosing = v.SelfClosing
		out.attrs = append([]vdom.Attribute(nil), v.Attrs...)
	case *vdom.Text:
		out.content = v.Content
	case *vdom.Comment:
		out.content = v.Content
	case *vdom.DocType:
		out.content = v.Content
	case *vdom.Symbol:
		out.content = v.Content
	}
	for _, c := range vdom.Children(n) {
		child := build(c)
		child.parent = out
		out.children = append(out.children, child)
	}
	return out
}

// snapshot converts mutable nodes back into an immutable tree.
func (n *node) snapshot() vdom.Node {
	children := make([]vdom.Node, len(n.children))
	for i, c := range n.children {
		children[i] = c.snapshot()
	}
	switch n.kind {
	case vdom.KindElement:
		return &vdom.Element{
			Namespace:   n.namespace,
			Tag:         n.tag,
			Attrs:       append([]vdom.Attribute(nil), n.attrs...),
			Children:    children,
			SelfClosing: n.selfClosing,
		}
	case vdom.KindText:
		return vdom.NewText(n.content)
	case vdom.KindComment:
		return vdom.NewComment(n.content)
	case vdom.KindDocType:
		return vdom.NewDocType(n.content)
	case vdom.KindSymbol:
		return vdom.NewSymbol(n.content)
	case vdom.KindFragment:
		return &vdom.Fragment{Nodes: children}
	default:
		return &vdom.NodeList{Nodes: children}
	}
}

// hasChildren reports whether n can hold children.
func (n *node) hasChildren() bool {
	switch n.kind {
	case vdom.KindElement, vdom.KindFragment, vdom.KindNodeList:
		return true
	}
	return false
}

// index returns the position of n among its siblings, or -1.
func (n *node) index() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// detach removes n from its parent.
func (n *node) detach() {
	i := n.index()
	if i < 0 {
		return
	}
	p := n.parent
	p.children = append(p.children[:i], p.children[i+1:]...)
	n.parent = nil
}

// insertAt inserts children into n at position i.
func (n *node) insertAt(i int, children ...*node) {
	for _, c := range children {
		c.parent = n
	}
	tail := append([]*node(nil), n.children[i:]...)
	n.children = append(append(n.children[:i], children...), tail...)
}

// setAttribute replaces every attribute named a.Name with a.
func (n *node) setAttribute(a vdom.Attribute) {
	n.removeAttribute(a.Name)
	n.attrs = append(n.attrs, a)
}

// removeAttribute drops every attribute named name.
func (n *node) removeAttribute(name string) {
	kept := n.attrs[:0]
	for _, a := range n.attrs {
		if a.Name != name {
			kept = append(kept, a)
		}
	}
	n.attrs = kept
}
