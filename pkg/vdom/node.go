package vdom

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement  Kind = iota // <div>, <button>, etc.
	KindText                 // Plain text
	KindComment              // <!-- ... -->
	KindDocType              // <!doctype ...>
	KindSymbol               // Unescaped entity or symbol such as &nbsp;
	KindFragment             // Grouping without wrapper
	KindNodeList             // Transient grouping, unrolled on construction
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	case KindDocType:
		return "DocType"
	case KindSymbol:
		return "Symbol"
	case KindFragment:
		return "Fragment"
	case KindNodeList:
		return "NodeList"
	default:
		return "Unknown"
	}
}

// Node is a node of a virtual tree. The set of implementations is closed.
type Node interface {
	Kind() Kind
	node()
}

// Element is a tagged node with attributes and children.
type Element struct {
	Namespace   string      // XML namespace, empty for HTML
	Tag         string      // Element tag name (e.g., "div")
	Attrs       []Attribute // Attributes in source order, names may repeat
	Children    []Node      // Child nodes, never containing a NodeList
	SelfClosing bool        // Rendered as <tag/>
}

// Text is a plain text leaf.
type Text struct {
	Content string
}

// Comment is a comment leaf.
type Comment struct {
	Content string
}

// DocType is a document type declaration leaf.
type DocType struct {
	Content string
}

// Symbol is a leaf rendered verbatim, such as an HTML entity.
type Symbol struct {
	Content string
}

// Fragment groups sibling nodes without a wrapper element.
type Fragment struct {
	Nodes []Node
}

// NodeList is a transient grouping of nodes. It may only survive as the root
// of a tree; as a child it is unrolled into the parent's children.
type NodeList struct {
	Nodes []Node
}

func (*Element) Kind() Kind  { return KindElement }
func (*Text) Kind() Kind     { return KindText }
func (*Comment) Kind() Kind  { return KindComment }
func (*DocType) Kind() Kind  { return KindDocType }
func (*Symbol) Kind() Kind   { return KindSymbol }
func (*Fragment) Kind() Kind { return KindFragment }
func (*NodeList) Kind() Kind { return KindNodeList }

func (*Element) node()  {}
func (*Text) node()     {}
func (*Comment) node()  {}
func (*DocType) node()  {}
func (*Symbol) node()   {}
func (*Fragment) node() {}
func (*NodeList) node() {}

// IsLeaf reports whether n is a terminal node: text, comment, doctype or symbol.
func IsLeaf(n Node) bool {
	switch n.(type) {
	case *Text, *Comment, *DocType, *Symbol:
		return true
	}
	return false
}

// leafContent returns the content of a leaf node.
func leafContent(n Node) string {
	switch v := n.(type) {
	case *Text:
		return v.Content
	case *Comment:
		return v.Content
	case *DocType:
		return v.Content
	case *Symbol:
		return v.Content
	}
	return ""
}

// Tag returns the element tag of n, or "" if n is not an element.
func Tag(n Node) string {
	if el, ok := n.(*Element); ok {
		return el.Tag
	}
	return ""
}

// Attributes returns the attributes of n, or nil if n is not an element.
func Attributes(n Node) []Attribute {
	if el, ok := n.(*Element); ok {
		return el.Attrs
	}
	return nil
}

// Children returns the child nodes of an element, or the grouped nodes of a
// fragment or node list. Leaves have no children.
func Children(n Node) []Node {
	switch v := n.(type) {
	case *Element:
		return v.Children
	case *Fragment:
		return v.Nodes
	case *NodeList:
		return v.Nodes
	}
	return nil
}

// AttributeValues returns all values of the attributes named name on n, in
// source order. Empty placeholders are omitted. It returns nil if n carries
// no such attribute.
func AttributeValues(n Node, name string) []AttributeValue {
	var values []AttributeValue
	found := false
	for _, a := range Attributes(n) {
		if a.Name != name {
			continue
		}
		found = true
		for _, v := range a.Values {
			if _, empty := v.(Empty); !empty {
				values = append(values, v)
			}
		}
	}
	if !found {
		return nil
	}
	if values == nil {
		values = []AttributeValue{}
	}
	return values
}

// HasAttribute reports whether n carries an attribute named name.
func HasAttribute(n Node, name string) bool {
	for _, a := range Attributes(n) {
		if a.Name == name {
			return true
		}
	}
	return false
}

// FirstValue returns the first plain value of the attribute named name.
func FirstValue(n Node, name string) (Value, bool) {
	for _, v := range AttributeValues(n, name) {
		switch av := v.(type) {
		case Simple:
			return av.Value, true
		case FunctionCall:
			return av.Value, true
		}
	}
	return nil, false
}

// KeyOf returns the reconciliation key of n.
func KeyOf(n Node) (Value, bool) {
	return FirstValue(n, AttrKey)
}

// IsKeyed reports whether n carries a key attribute.
func IsKeyed(n Node) bool {
	return HasAttribute(n, AttrKey)
}

// CountNodes returns the number of nodes in the tree rooted at n.
func CountNodes(n Node) int {
	if n == nil {
		return 0
	}
	count := 1
	for _, c := range Children(n) {
		count += CountNodes(c)
	}
	return count
}
