package vdom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCreateElement(t *testing.T) {
	el := Div(
		Class("card"),
		[]Attribute{ID("main"), Role("region")},
		nil,
		H1("Title"),
		[]Node{P("a"), P("b")},
		"trailing",
	)

	if el.Tag != "div" || el.Kind() != KindElement {
		t.Fatalf("got %v <%s>", el.Kind(), el.Tag)
	}
	if len(el.Attrs) != 3 {
		t.Errorf("Attrs = %d, want 3", len(el.Attrs))
	}
	if len(el.Children) != 4 {
		t.Fatalf("Children = %d, want 4", len(el.Children))
	}
	if txt, ok := el.Children[3].(*Text); !ok || txt.Content != "trailing" {
		t.Errorf("string argument should become a text child, got %#v", el.Children[3])
	}
}

func TestNodeListIsUnrolled(t *testing.T) {
	list := NewNodeList(Li("a"), NewNodeList(Li("b"), Li("c")))
	ul := Ul(list, Li("d"))

	if len(ul.Children) != 4 {
		t.Fatalf("Children = %d, want 4", len(ul.Children))
	}
	for i, c := range ul.Children {
		if c.Kind() == KindNodeList {
			t.Errorf("child %d is a NodeList", i)
		}
	}

	el := NewElement("ul", nil, []Node{list, nil, Li("d")})
	if len(el.Children) != 4 {
		t.Errorf("NewElement children = %d, want 4", len(el.Children))
	}

	frag := NewFragment(list)
	if len(frag.Nodes) != 3 {
		t.Errorf("Fragment nodes = %d, want 3", len(frag.Nodes))
	}
}

func TestFragmentsAreSplicedIntoParent(t *testing.T) {
	el := Div(Span(), NewFragment(P("a"), NewFragment(P("b"))), P("c"))

	var got []string
	for _, c := range el.Children {
		if c.Kind() == KindFragment {
			t.Fatalf("fragment survived as a child: %v", el.Children)
		}
		got = append(got, Tag(c))
	}
	want := []string{"span", "p", "p", "p"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}

	outer := NewFragment(P("a"), NewFragment(P("b"), P("c")))
	if len(outer.Nodes) != 3 {
		t.Errorf("Fragment nodes = %d, want 3", len(outer.Nodes))
	}

	built := NewElement("ul", nil, []Node{NewFragment(Li("x"), Li("y"))})
	if len(built.Children) != 2 {
		t.Errorf("NewElement children = %d, want 2", len(built.Children))
	}
}

func TestTypedNilChildrenAreDropped(t *testing.T) {
	var missing *Element
	el := Div(missing, Node(nil), Span())
	if len(el.Children) != 1 {
		t.Errorf("Children = %d, want 1", len(el.Children))
	}
}

func TestVoidElements(t *testing.T) {
	if !Input().SelfClosing || !Br().SelfClosing || !Img().SelfClosing {
		t.Error("void elements should be self-closing")
	}
	if Div().SelfClosing {
		t.Error("div is not self-closing")
	}
	if !IsVoidElement("hr") || IsVoidElement("span") {
		t.Error("IsVoidElement mismatch")
	}
}

func TestNewElementNS(t *testing.T) {
	el := NewElementNS(SvgNamespace, "circle", []Attribute{Attr("r", 4)}, nil, true)
	if el.Namespace != SvgNamespace || el.Tag != "circle" || !el.SelfClosing {
		t.Errorf("NewElementNS = %+v", el)
	}
	if Svg().Namespace != SvgNamespace {
		t.Error("Svg should set the SVG namespace")
	}
}

func TestLeafFactories(t *testing.T) {
	tests := []struct {
		node Node
		kind Kind
		text string
	}{
		{NewText("t"), KindText, "t"},
		{Textf("%d-%s", 1, "x"), KindText, "1-x"},
		{NewComment("c"), KindComment, "c"},
		{NewDocType("html"), KindDocType, "html"},
		{NewSymbol("&nbsp;"), KindSymbol, "&nbsp;"},
	}
	for _, tt := range tests {
		if tt.node.Kind() != tt.kind {
			t.Errorf("Kind = %v, want %v", tt.node.Kind(), tt.kind)
		}
		if !IsLeaf(tt.node) {
			t.Errorf("%v should be a leaf", tt.kind)
		}
		if leafContent(tt.node) != tt.text {
			t.Errorf("content = %q, want %q", leafContent(tt.node), tt.text)
		}
	}
	if IsLeaf(Div()) || IsLeaf(NewFragment()) {
		t.Error("elements and fragments are not leaves")
	}
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		KindElement:  "Element",
		KindText:     "Text",
		KindComment:  "Comment",
		KindDocType:  "DocType",
		KindSymbol:   "Symbol",
		KindFragment: "Fragment",
		KindNodeList: "NodeList",
		Kind(99):     "Unknown",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestAccessors(t *testing.T) {
	el := Li(Key("k1"), Class("a"), Class("b"), EmptyAttr("title"), "x")

	if Tag(el) != "li" || Tag(NewText("x")) != "" {
		t.Error("Tag mismatch")
	}
	if k, ok := KeyOf(el); !ok || k.String() != "k1" {
		t.Errorf("KeyOf = %v, %v", k, ok)
	}
	if _, ok := KeyOf(Li()); ok {
		t.Error("KeyOf on an unkeyed node should report false")
	}
	if n := len(AttributeValues(el, "class")); n != 2 {
		t.Errorf("class values = %d, want 2", n)
	}
	if v := AttributeValues(el, "title"); v == nil || len(v) != 0 {
		t.Errorf("present but empty attribute should yield an empty, non-nil slice, got %v", v)
	}
	if AttributeValues(el, "missing") != nil {
		t.Error("missing attribute should yield nil")
	}
	if v, ok := FirstValue(el, "class"); !ok || v.String() != "a" {
		t.Errorf("FirstValue = %v", v)
	}
	if len(Children(el)) != 1 || Children(NewText("x")) != nil {
		t.Error("Children mismatch")
	}
	if CountNodes(Div(P("a"), P("b"))) != 5 {
		t.Errorf("CountNodes = %d, want 5", CountNodes(Div(P("a"), P("b"))))
	}
}
