package vtest

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/vdiff/pkg/dom"
	"github.com/vango-dev/vdiff/pkg/render"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

// RenderToString renders a tree and returns the HTML string, or "" if
// rendering fails.
//
// Example:
//
//	html := vtest.RenderToString(view())
func RenderToString(node vdom.Node) string {
	r := render.NewRenderer(render.RendererConfig{})
	html, err := r.RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	vtest.ExpectContains(t, view(), "Welcome")
func ExpectContains(t testing.TB, node vdom.Node, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node vdom.Node, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(t testing.TB, node vdom.Node, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
func ExpectAttribute(t testing.TB, node vdom.Node, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// ExpectPatches asserts that diffing prev against next yields exactly the
// patches described by want, in order. Each entry is a Patch.String().
//
// Example:
//
//	vtest.ExpectPatches(t, before, after,
//	    "RemoveNode <li> at [0 2]",
//	)
func ExpectPatches(t testing.TB, prev, next vdom.Node, want ...string) []vdom.Patch {
	t.Helper()
	patches := vdom.Diff(prev, next)
	got := make([]string, len(patches))
	for i, p := range patches {
		got[i] = p.String()
	}
	if want == nil {
		want = []string{}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("patches mismatch (-want +got):\n%s", diff)
	}
	return patches
}

// ExpectNoPatches asserts that prev and next diff to nothing.
func ExpectNoPatches(t testing.TB, prev, next vdom.Node) {
	t.Helper()
	ExpectPatches(t, prev, next)
}

// ExpectRoundTrip asserts that applying the diff of prev and next to a
// document mounted from prev reproduces next.
func ExpectRoundTrip(t testing.TB, prev, next vdom.Node) []vdom.Patch {
	t.Helper()
	patches := vdom.Diff(prev, next)
	doc := dom.Mount(prev)
	if err := doc.Apply(patches); err != nil {
		t.Errorf("applying %d patches failed: %v", len(patches), err)
		return patches
	}
	if got := doc.Snapshot(); !vdom.Equal(got, next) {
		t.Errorf("round trip mismatch\nwant: %s\ngot:  %s",
			truncate(RenderToString(next), 500), truncate(RenderToString(got), 500))
	}
	return patches
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
