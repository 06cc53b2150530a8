package vdom

import "fmt"

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// NewElement creates an element. NodeList and Fragment children are unrolled
// into the child sequence and nil children are dropped.
func NewElement(tag string, attrs []Attribute, children []Node) *Element {
	return NewElementNS("", tag, attrs, children, false)
}

// NewElementNS creates a namespaced element.
func NewElementNS(namespace, tag string, attrs []Attribute, children []Node, selfClosing bool) *Element {
	return &Element{
		Namespace:   namespace,
		Tag:         tag,
		Attrs:       attrs,
		Children:    appendUnrolled(make([]Node, 0, len(children)), children...),
		SelfClosing: selfClosing,
	}
}

// NewText creates a text node.
func NewText(content string) *Text { return &Text{Content: content} }

// Textf creates a formatted text node.
func Textf(format string, args ...any) *Text { return NewText(fmt.Sprintf(format, args...)) }

// NewComment creates a comment node.
func NewComment(content string) *Comment { return &Comment{Content: content} }

// NewDocType creates a doctype node.
func NewDocType(content string) *DocType { return &DocType{Content: content} }

// NewSymbol creates a node rendered verbatim.
// Use with caution - the content is not escaped.
func NewSymbol(content string) *Symbol { return &Symbol{Content: content} }

// NewFragment groups nodes without a wrapper. Nested fragments and node
// lists are unrolled, so a fragment only survives as the root of a tree.
func NewFragment(nodes ...Node) *Fragment {
	return &Fragment{Nodes: appendUnrolled(make([]Node, 0, len(nodes)), nodes...)}
}

// NewNodeList creates a transient node list. Passing it as a child of an
// element or fragment splices its nodes into that parent.
func NewNodeList(nodes ...Node) *NodeList {
	return &NodeList{Nodes: appendUnrolled(make([]Node, 0, len(nodes)), nodes...)}
}

// appendUnrolled appends nodes to dst, flattening node lists and fragments
// and dropping nil.
func appendUnrolled(dst []Node, nodes ...Node) []Node {
	for _, n := range nodes {
		switch v := n.(type) {
		case *NodeList:
			if v != nil {
				dst = appendUnrolled(dst, v.Nodes...)
			}
		case *Fragment:
			if v != nil {
				dst = appendUnrolled(dst, v.Nodes...)
			}
		default:
			if !isNil(n) {
				dst = append(dst, n)
			}
		}
	}
	return dst
}

// isNil reports whether n is nil or a typed nil pointer.
func isNil(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *Element:
		return v == nil
	case *Text:
		return v == nil
	case *Comment:
		return v == nil
	case *DocType:
		return v == nil
	case *Symbol:
		return v == nil
	case *Fragment:
		return v == nil
	case *NodeList:
		return v == nil
	}
	return false
}

// createElement creates an element with the given tag and arguments.
// Arguments can be: nil, Attribute, []Attribute, Node, []Node, string.
func createElement(tag string, args []any) *Element {
	el := &Element{
		Tag:         tag,
		Children:    make([]Node, 0),
		SelfClosing: IsVoidElement(tag),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional children)
			continue

		case Attribute:
			el.Attrs = append(el.Attrs, v)

		case []Attribute:
			el.Attrs = append(el.Attrs, v...)

		case Node:
			el.Children = appendUnrolled(el.Children, v)

		case []Node:
			el.Children = appendUnrolled(el.Children, v...)

		case string:
			// Shorthand for text node
			el.Children = append(el.Children, NewText(v))
		}
	}

	return el
}

// Document structure elements

func Html(args ...any) *Element  { return createElement("html", args) }
func Head(args ...any) *Element  { return createElement("head", args) }
func Body(args ...any) *Element  { return createElement("body", args) }
func Title(args ...any) *Element { return createElement("title", args) }
func Meta(args ...any) *Element  { return createElement("meta", args) }
func Link(args ...any) *Element  { return createElement("link", args) }

// Content sectioning elements

func Header(args ...any) *Element  { return createElement("header", args) }
func Footer(args ...any) *Element  { return createElement("footer", args) }
func Main(args ...any) *Element    { return createElement("main", args) }
func Nav(args ...any) *Element     { return createElement("nav", args) }
func Section(args ...any) *Element { return createElement("section", args) }
func Article(args ...any) *Element { return createElement("article", args) }
func H1(args ...any) *Element      { return createElement("h1", args) }
func H2(args ...any) *Element      { return createElement("h2", args) }
func H3(args ...any) *Element      { return createElement("h3", args) }

// Text content elements

func Div(args ...any) *Element  { return createElement("div", args) }
func P(args ...any) *Element    { return createElement("p", args) }
func Span(args ...any) *Element { return createElement("span", args) }
func Pre(args ...any) *Element  { return createElement("pre", args) }
func Ul(args ...any) *Element   { return createElement("ul", args) }
func Ol(args ...any) *Element   { return createElement("ol", args) }
func Li(args ...any) *Element   { return createElement("li", args) }
func Hr(args ...any) *Element   { return createElement("hr", args) }

// Inline text semantics

func A(args ...any) *Element      { return createElement("a", args) }
func Strong(args ...any) *Element { return createElement("strong", args) }
func Em(args ...any) *Element     { return createElement("em", args) }
func Code(args ...any) *Element   { return createElement("code", args) }
func Br(args ...any) *Element     { return createElement("br", args) }

// Form elements

func Form(args ...any) *Element     { return createElement("form", args) }
func Input(args ...any) *Element    { return createElement("input", args) }
func Textarea(args ...any) *Element { return createElement("textarea", args) }
func Select(args ...any) *Element   { return createElement("select", args) }
func Option(args ...any) *Element   { return createElement("option", args) }
func Button(args ...any) *Element   { return createElement("button", args) }
func Label(args ...any) *Element    { return createElement("label", args) }

// Table elements

func Table(args ...any) *Element { return createElement("table", args) }
func Thead(args ...any) *Element { return createElement("thead", args) }
func Tbody(args ...any) *Element { return createElement("tbody", args) }
func Tr(args ...any) *Element    { return createElement("tr", args) }
func Th(args ...any) *Element    { return createElement("th", args) }
func Td(args ...any) *Element    { return createElement("td", args) }

// Media elements

func Img(args ...any) *Element { return createElement("img", args) }

// SVG elements

// SvgNamespace is the XML namespace of SVG elements.
const SvgNamespace = "http://www.w3.org/2000/svg"

// Svg creates an <svg> element in the SVG namespace.
func Svg(args ...any) *Element {
	el := createElement("svg", args)
	el.Namespace = SvgNamespace
	return el
}

// CustomElement creates an element with a custom tag name.
func CustomElement(tag string, args ...any) *Element {
	return createElement(tag, args)
}
