package dom

import (
	"bytes"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/vdiff/internal/errors"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

// roundTrip applies diff(prev, next) to a document mounted from prev and
// checks the result equals next.
func roundTrip(t *testing.T, prev, next vdom.Node) []vdom.Patch {
	t.Helper()
	patches := vdom.Diff(prev, next)
	doc := Mount(prev)
	if err := doc.Apply(patches); err != nil {
		t.Fatalf("Apply: %v\npatches: %s", err, describePatches(patches))
	}
	if got := doc.Snapshot(); !vdom.Equal(got, next) {
		t.Fatalf("snapshot differs from target\npatches: %s", describePatches(patches))
	}
	return patches
}

func describePatches(patches []vdom.Patch) string {
	lines := make([]string, len(patches))
	for i, p := range patches {
		lines[i] = p.String()
	}
	return strings.Join(lines, "; ")
}

func keyed(keys ...int) *vdom.Element {
	children := make([]vdom.Node, len(keys))
	for i, k := range keys {
		children[i] = vdom.Li(vdom.Key(k), vdom.Textf("item %d", k))
	}
	return vdom.NewElement("ul", nil, children)
}

func TestApplyEndToEnd(t *testing.T) {
	prev := vdom.Main(vdom.Class("container"), vdom.Div(vdom.Key("1")), vdom.Div(vdom.Key("2")))
	next := vdom.Main(vdom.Class("container"), vdom.Div(vdom.Key("2")))

	patches := roundTrip(t, prev, next)
	if len(patches) != 1 {
		t.Errorf("Expected 1 patch, got %d", len(patches))
	}
}

func TestApplyReplaceRoot(t *testing.T) {
	roundTrip(t, vdom.Div(), vdom.Span())
}

func TestApplyKeyedCases(t *testing.T) {
	tests := []struct {
		prev, next []int
	}{
		{[]int{1, 2, 3, 4, 5}, []int{1, 3, 2, 4, 5}},
		{[]int{1, 2, 3}, []int{3, 2, 1}},
		{[]int{1, 2, 3}, []int{2, 3, 1}},
		{[]int{1, 2, 3}, []int{3, 9, 1, 2}},
		{[]int{1, 2, 3, 4}, []int{5, 4, 6, 1}},
		{[]int{1, 2}, []int{3, 4}},
		{[]int{1, 2, 3}, nil},
		{nil, []int{1, 2}},
		{[]int{1, 2, 3, 4, 5, 6}, []int{6, 2, 7, 8, 4, 1}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.prev, "->", tt.next), func(t *testing.T) {
			roundTrip(t, keyed(tt.prev...), keyed(tt.next...))
		})
	}
}

func TestApplyDuplicateKeys(t *testing.T) {
	prev := vdom.Ul(vdom.Li(vdom.Key(1), "a"), vdom.Li(vdom.Key(1), "b"), vdom.Li(vdom.Key(2), "c"))
	next := vdom.Ul(vdom.Li(vdom.Key(2), "c"), vdom.Li(vdom.Key(1), "b"), vdom.Li(vdom.Key(1), "a"))
	roundTrip(t, prev, next)
}

func TestApplyMixedKeyedAndText(t *testing.T) {
	prev := vdom.Div(vdom.NewText("head"), vdom.P(vdom.Key("a")), vdom.NewText("mid"), vdom.P(vdom.Key("b")))
	next := vdom.Div(vdom.P(vdom.Key("b")), vdom.NewText("head"), vdom.NewText("changed"), vdom.P(vdom.Key("a"), vdom.Class("x")))
	roundTrip(t, prev, next)
}

func TestApplyFragmentChild(t *testing.T) {
	prev := vdom.Div(vdom.Span(), vdom.NewFragment(vdom.NewText("a")))
	next := vdom.Div(vdom.Span(), vdom.NewFragment(vdom.NewText("b")))

	roundTrip(t, prev, next)

	if got := Mount(next).Snapshot(); !vdom.Equal(got, vdom.Div(vdom.Span(), vdom.NewText("b"))) {
		t.Errorf("Snapshot = %v, want the fragment spliced into <div>", got)
	}
}

func TestApplyRootFragment(t *testing.T) {
	prev := vdom.NewFragment(vdom.P("a"), vdom.P("b"), vdom.P("c"))
	next := vdom.NewFragment(vdom.P("a"), vdom.Em("x"))
	roundTrip(t, prev, next)
}

func TestApplyResolvesPathsBeforeMutating(t *testing.T) {
	doc := Mount(vdom.Ul(vdom.Li("a"), vdom.Li("b"), vdom.Li("c")))

	err := doc.Apply([]vdom.Patch{
		vdom.RemoveNode("li", vdom.NewTreePath(0)),
		vdom.RemoveNode("li", vdom.NewTreePath(1)),
	})
	if err != nil {
		t.Fatal(err)
	}

	want := vdom.Ul(vdom.Li("c"))
	if !vdom.Equal(doc.Snapshot(), want) {
		t.Error("both paths should address the original children")
	}
}

func TestApplyMoveOrder(t *testing.T) {
	doc := Mount(vdom.Ul(vdom.Li("a"), vdom.Li("b"), vdom.Li("c"), vdom.Li("d")))

	err := doc.Apply([]vdom.Patch{
		vdom.MoveAfterNode("li", vdom.NewTreePath(3), vdom.NewTreePath(0), vdom.NewTreePath(1)),
	})
	if err != nil {
		t.Fatal(err)
	}
	want := vdom.Ul(vdom.Li("c"), vdom.Li("d"), vdom.Li("a"), vdom.Li("b"))
	if !vdom.Equal(doc.Snapshot(), want) {
		t.Error("MoveAfterNode should keep the sources in order after the target")
	}
}

func TestApplyErrors(t *testing.T) {
	tree := func() vdom.Node { return vdom.Div(vdom.P("x"), vdom.NewText("t")) }

	tests := []struct {
		name    string
		patches []vdom.Patch
		code    string
	}{
		{"path not found", []vdom.Patch{vdom.RemoveNode("", vdom.NewTreePath(5))}, "E201"},
		{"move source not found", []vdom.Patch{vdom.MoveBeforeNode("p", vdom.NewTreePath(0), vdom.NewTreePath(0, 3))}, "E201"},
		{"tag mismatch", []vdom.Patch{vdom.RemoveNode("span", vdom.NewTreePath(0))}, "E202"},
		{"tag hint on text", []vdom.Patch{vdom.RemoveNode("p", vdom.NewTreePath(1))}, "E202"},
		{"remove root", []vdom.Patch{vdom.RemoveNode("div", vdom.Root())}, "E203"},
		{"attributes on text", []vdom.Patch{vdom.AddAttributes("", vdom.NewTreePath(1), vdom.Class("x"))}, "E203"},
		{"append to text", []vdom.Patch{vdom.AppendChildren("", vdom.NewTreePath(1), vdom.NewText("y"))}, "E203"},
		{"target removed earlier", []vdom.Patch{
			vdom.RemoveNode("p", vdom.NewTreePath(0)),
			vdom.AddAttributes("p", vdom.NewTreePath(0), vdom.Class("x")),
		}, "E203"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Mount(tree()).Apply(tt.patches)
			if !errors.HasCode(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestApplyFailedResolutionLeavesDocumentUnchanged(t *testing.T) {
	doc := Mount(vdom.Div(vdom.P("x")))

	err := doc.Apply([]vdom.Patch{
		vdom.AddAttributes("div", vdom.Root(), vdom.Class("changed")),
		vdom.RemoveNode("p", vdom.NewTreePath(9)),
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !vdom.Equal(doc.Snapshot(), vdom.Div(vdom.P("x"))) {
		t.Error("document changed although resolution failed")
	}
}

func TestTransactionStep(t *testing.T) {
	prev := keyed(1, 2, 3, 4, 5, 6)
	next := keyed(6, 2, 7, 8, 4, 1)
	patches := vdom.Diff(prev, next)

	doc := Mount(prev)
	tx, err := doc.Begin(patches)
	if err != nil {
		t.Fatal(err)
	}

	steps := 0
	for {
		done, err := tx.Step(1)
		if err != nil {
			t.Fatal(err)
		}
		steps++
		if done {
			break
		}
		if tx.Applied()+tx.Remaining() != len(patches) {
			t.Fatalf("Applied %d + Remaining %d != %d", tx.Applied(), tx.Remaining(), len(patches))
		}
	}
	if steps != len(patches) {
		t.Errorf("steps = %d, want %d", steps, len(patches))
	}
	if !vdom.Equal(doc.Snapshot(), next) {
		t.Error("time-sliced application should reach the same tree")
	}
}

func TestTransactionErrorIsSticky(t *testing.T) {
	doc := Mount(vdom.Div(vdom.P("x")))
	tx, err := doc.Begin([]vdom.Patch{vdom.RemoveNode("div", vdom.Root())})
	if err != nil {
		t.Fatal(err)
	}
	_, first := tx.Step(1)
	_, second := tx.Step(1)
	if first == nil || first != second {
		t.Errorf("errors = %v, %v; want the same non-nil error twice", first, second)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	doc := Mount(vdom.Div(vdom.Class("a"), vdom.P("x")))
	before := doc.Snapshot()

	if err := doc.Apply([]vdom.Patch{vdom.ClearChildren("div", vdom.Root())}); err != nil {
		t.Fatal(err)
	}
	if len(vdom.Children(before)) != 1 {
		t.Error("earlier snapshot changed after Apply")
	}
	if len(vdom.Children(doc.Snapshot())) != 0 {
		t.Error("ClearChildren had no effect")
	}
}

func TestApplyLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	doc := Mount(vdom.Div(), WithLogger(logger))
	if err := doc.Apply([]vdom.Patch{vdom.AppendChildren("div", vdom.Root(), vdom.P("x"))}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "count=1") {
		t.Errorf("log output = %q", buf.String())
	}
}

// treeGen builds random trees and mutated copies of them.
type treeGen struct {
	rng     *rand.Rand
	nextKey int
}

var (
	genTags    = []string{"div", "p", "span", "li"}
	genClasses = []string{"a", "b", "c"}
)

func (g *treeGen) attrs() []vdom.Attribute {
	var attrs []vdom.Attribute
	if g.rng.Intn(2) == 0 {
		attrs = append(attrs, vdom.Class(genClasses[g.rng.Intn(len(genClasses))]))
	}
	if g.rng.Intn(4) == 0 {
		attrs = append(attrs, vdom.Class(genClasses[g.rng.Intn(len(genClasses))]))
	}
	if g.rng.Intn(3) == 0 {
		attrs = append(attrs, vdom.StyleAttr(vdom.StylePair("order", g.rng.Intn(3))))
	}
	if g.rng.Intn(4) == 0 {
		attrs = append(attrs, vdom.OnClick(g.rng.Intn(10)))
	}
	if g.rng.Intn(5) == 0 {
		attrs = append(attrs, vdom.ClassIf(false, "hidden"))
	}
	return attrs
}

func (g *treeGen) leaf() vdom.Node {
	if g.rng.Intn(6) == 0 {
		return vdom.NewComment(fmt.Sprint(g.rng.Intn(3)))
	}
	return vdom.Textf("t%d", g.rng.Intn(3))
}

func (g *treeGen) element(depth int, key bool) *vdom.Element {
	attrs := g.attrs()
	if key {
		g.nextKey++
		attrs = append(attrs, vdom.Key(g.nextKey))
	}
	return vdom.NewElement(genTags[g.rng.Intn(len(genTags))], attrs, g.children(depth-1))
}

func (g *treeGen) children(depth int) []vdom.Node {
	if depth <= 0 {
		return nil
	}
	n := g.rng.Intn(5)
	keyedList := g.rng.Intn(2) == 0
	out := make([]vdom.Node, 0, n)
	for i := 0; i < n; i++ {
		switch {
		case keyedList && g.rng.Intn(6) != 0:
			out = append(out, g.element(depth, true))
		case g.rng.Intn(3) == 0:
			out = append(out, g.leaf())
		default:
			out = append(out, g.element(depth, false))
		}
	}
	return out
}

// mutate returns a changed copy of n. It never modifies n.
func (g *treeGen) mutate(n vdom.Node, depth int) vdom.Node {
	el, ok := n.(*vdom.Element)
	if !ok {
		if g.rng.Intn(3) == 0 {
			return g.leaf()
		}
		return n
	}
	switch g.rng.Intn(10) {
	case 0:
		return g.element(depth, vdom.IsKeyed(el))
	case 1:
		// Same key and tag, new content.
		return vdom.NewElement(el.Tag, append(g.attrs(), keyAttr(el)...), g.children(depth-1))
	}

	attrs := el.Attrs
	if g.rng.Intn(3) == 0 {
		attrs = append(g.attrs(), keyAttr(el)...)
	}
	if g.rng.Intn(12) == 0 {
		attrs = append(append([]vdom.Attribute(nil), attrs...), vdom.Replace(true))
	}

	children := make([]vdom.Node, 0, len(el.Children)+2)
	for _, c := range el.Children {
		if g.rng.Intn(6) == 0 {
			continue
		}
		if g.rng.Intn(3) == 0 {
			c = g.mutate(c, depth-1)
		}
		children = append(children, c)
	}
	g.rng.Shuffle(len(children), func(i, j int) {
		if g.rng.Intn(2) == 0 {
			children[i], children[j] = children[j], children[i]
		}
	})
	for k := g.rng.Intn(3); k > 0; k-- {
		at := g.rng.Intn(len(children) + 1)
		fresh := g.element(depth-1, vdom.IsKeyed(el) || hasKeyedChild(children))
		children = append(children[:at], append([]vdom.Node{fresh}, children[at:]...)...)
	}
	return vdom.NewElement(el.Tag, attrs, children)
}

func keyAttr(n vdom.Node) []vdom.Attribute {
	var out []vdom.Attribute
	for _, a := range vdom.Attributes(n) {
		if a.Name == vdom.AttrKey {
			out = append(out, a)
		}
	}
	return out
}

func hasKeyedChild(nodes []vdom.Node) bool {
	for _, n := range nodes {
		if vdom.IsKeyed(n) {
			return true
		}
	}
	return false
}

func TestApplyRoundTripRandom(t *testing.T) {
	g := &treeGen{rng: rand.New(rand.NewSource(20240601))}
	for round := 0; round < 500; round++ {
		prev := g.element(4, false)
		next := g.mutate(prev, 4)
		t.Run(fmt.Sprintf("round %d", round), func(t *testing.T) {
			roundTrip(t, prev, next)
			if patches := vdom.Diff(prev, prev); len(patches) != 0 {
				t.Errorf("diff(T, T) = %s", describePatches(patches))
			}
		})
	}
}

func TestApplyRoundTripKeyedPermutations(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for round := 0; round < 300; round++ {
		n := rng.Intn(10)
		prevKeys := rng.Perm(n + 3)[:n]
		m := rng.Intn(10)
		nextKeys := rng.Perm(m + 3)[:m]
		t.Run(fmt.Sprint(prevKeys, "->", nextKeys), func(t *testing.T) {
			roundTrip(t, keyed(prevKeys...), keyed(nextKeys...))
		})
	}
}

func TestDiffIsSafeForConcurrentUse(t *testing.T) {
	prev, next := keyed(1, 2, 3, 4, 5), keyed(5, 3, 1, 6)
	want := describePatches(vdom.Diff(prev, next))

	results := make(chan string, 16)
	for i := 0; i < cap(results); i++ {
		go func() { results <- describePatches(vdom.Diff(prev, next)) }()
	}
	for i := 0; i < cap(results); i++ {
		if diff := cmp.Diff(want, <-results); diff != "" {
			t.Errorf("concurrent diff differs (-want +got):\n%s", diff)
		}
	}
}
