package vdom

import "testing"

func TestIf(t *testing.T) {
	node := Div()
	if If(true, node) != Node(node) {
		t.Error("If(true) should return node")
	}
	if If(false, node) != nil {
		t.Error("If(false) should return nil")
	}
}

func TestIfElse(t *testing.T) {
	a, b := Div(), Span()
	if IfElse(true, a, b) != Node(a) || IfElse(false, a, b) != Node(b) {
		t.Error("IfElse picked the wrong branch")
	}
}

func TestWhen(t *testing.T) {
	called := false
	fn := func() Node {
		called = true
		return Div()
	}

	if When(false, fn) != nil || called {
		t.Error("When(false) should not call fn")
	}
	if When(true, fn) == nil || !called {
		t.Error("When(true) should call fn")
	}
}

func TestUnless(t *testing.T) {
	if Unless(true, Div()) != nil {
		t.Error("Unless(true) should return nil")
	}
	if Unless(false, Div()) == nil {
		t.Error("Unless(false) should return node")
	}
}

func TestRange(t *testing.T) {
	items := []string{"a", "b", "c"}
	ul := Ul(Range(items, func(item string, i int) Node {
		if item == "b" {
			return nil
		}
		return Li(Key(item), item)
	}))

	if len(ul.Children) != 2 {
		t.Fatalf("Children = %d, want 2", len(ul.Children))
	}
	if k, _ := KeyOf(ul.Children[1]); k.String() != "c" {
		t.Errorf("second key = %v, want c", k)
	}
}

func TestRepeat(t *testing.T) {
	if n := len(Repeat(0, func(int) Node { return Div() }).Nodes); n != 0 {
		t.Errorf("Repeat(0) = %d nodes", n)
	}
	if n := len(Repeat(3, func(i int) Node { return Textf("%d", i) }).Nodes); n != 3 {
		t.Errorf("Repeat(3) = %d nodes", n)
	}
}

func TestEither(t *testing.T) {
	var missing *Element
	fallback := Span()
	if Either(missing, fallback) != Node(fallback) {
		t.Error("Either should skip a typed nil")
	}
	first := Div()
	if Either(first, fallback) != Node(first) {
		t.Error("Either should prefer the first node")
	}
}
