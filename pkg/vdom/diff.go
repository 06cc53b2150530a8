package vdom

import (
	"log/slog"

	"github.com/vango-dev/vdiff/internal/errors"
)

// Options configures a diff.
type Options struct {
	// MaxDepth bounds recursion. Nodes whose path has MaxDepth or more
	// indices are not compared. Zero means unlimited.
	MaxDepth int

	// Logger receives debug-level reconciliation summaries. Nil disables logging.
	Logger *slog.Logger
}

// Diff compares two trees and returns the patches needed to transform prev into next.
func Diff(prev, next Node) []Patch {
	return DiffWithOptions(prev, next, Options{})
}

// DiffWithOptions is Diff with a depth budget and logging.
//
// It panics with an *errors.Error when a tree violates a construction
// invariant, such as a NodeList reaching the engine as a child.
func DiffWithOptions(prev, next Node, opts Options) []Patch {
	d := &differ{opts: opts}
	d.diffNode(prev, next, Root())
	if opts.Logger != nil {
		opts.Logger.Debug("vdom diff",
			"patches", len(d.patches),
			"visited", d.visited,
			"keyed_lists", d.keyedLists,
		)
	}
	return d.patches
}

// TryDiff is DiffWithOptions for process boundaries: invariant violations
// are returned as an *errors.Error instead of panicking.
func TryDiff(prev, next Node, opts Options) (patches []Patch, err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(*errors.Error)
			if !ok {
				panic(r)
			}
			patches, err = nil, e
		}
	}()
	return DiffWithOptions(prev, next, opts), nil
}

// differ accumulates the patches of one diff.
type differ struct {
	opts       Options
	patches    []Patch
	visited    int
	keyedLists int
}

func (d *differ) emit(p ...Patch) {
	d.patches = append(d.patches, p...)
}

func (d *differ) debug(msg string, args ...any) {
	if d.opts.Logger != nil {
		d.opts.Logger.Debug(msg, args...)
	}
}

// depthExhausted reports whether the depth budget forbids comparing at path.
func (d *differ) depthExhausted(path TreePath) bool {
	return d.opts.MaxDepth > 0 && path.Depth() >= d.opts.MaxDepth
}

// diffNode compares two nodes at path. The decision order is depth, skip,
// replace, equality, then descent.
func (d *differ) diffNode(prev, next Node, path TreePath) {
	if d.depthExhausted(path) {
		return
	}
	if isNil(prev) || isNil(next) {
		panic(errors.New("E003").WithDetailf("at %s", path))
	}
	if prev.Kind() == KindNodeList || next.Kind() == KindNodeList {
		panic(errors.New("E001").WithDetailf("node list at %s", path))
	}
	checkUnrolled(Children(prev), path)
	checkUnrolled(Children(next), path)
	d.visited++

	if shouldSkip(prev, next) {
		return
	}

	if shouldReplace(prev, next) {
		d.emit(ReplaceNode(Tag(prev), path, next))
		return
	}

	if Equal(prev, next) {
		// Equal pairs are not descended, so malformed children deeper down
		// are caught here.
		checkSubtree(prev, path)
		checkSubtree(next, path)
		return
	}

	switch p := prev.(type) {
	case *Element:
		n := next.(*Element)
		d.emit(diffAttributes(p, n, path)...)
		d.diffChildren(p.Tag, p.Children, n.Children, path)

	case *Fragment:
		// A fragment is not addressable; its nodes sit at the parent's level.
		// checkUnrolled keeps fragments at the root, whose parent level is
		// the root itself.
		d.diffChildren("", p.Nodes, next.(*Fragment).Nodes, path.Backtrack())

	default:
		// Leaves are atomic.
		d.emit(ReplaceNode("", path, next))
	}
}

// replaces reports whether diffNode would emit a ReplaceNode for this exact
// pair at path.
func (d *differ) replaces(prev, next Node, path TreePath) bool {
	if d.depthExhausted(path) || shouldSkip(prev, next) {
		return false
	}
	if shouldReplace(prev, next) {
		return true
	}
	return IsLeaf(prev) && !Equal(prev, next)
}

// shouldSkip reports whether the pair is exempt from diffing. Equal skip
// criteria on both sides skip the subtree; otherwise a true skip flag on the
// new node does.
func shouldSkip(prev, next Node) bool {
	prevCriteria := AttributeValues(prev, AttrSkipCriteria)
	nextCriteria := AttributeValues(next, AttrSkipCriteria)
	if prevCriteria != nil && nextCriteria != nil {
		return attributeValuesEqual(prevCriteria, nextCriteria)
	}
	return flagSet(next, AttrSkip)
}

// shouldReplace reports whether next must replace prev wholesale. Listener
// changes alone never force a replace.
func shouldReplace(prev, next Node) bool {
	if prev.Kind() != next.Kind() {
		return true
	}
	if flagSet(next, AttrReplace) {
		return true
	}
	if IsKeyed(prev) && IsKeyed(next) {
		if !attributeValuesEqual(AttributeValues(prev, AttrKey), AttributeValues(next, AttrKey)) {
			return true
		}
	}
	if p, ok := prev.(*Element); ok {
		return p.Tag != next.(*Element).Tag
	}
	return false
}

// flagSet reports whether the first value of the named attribute is Bool(true).
func flagSet(n Node, name string) bool {
	v, ok := FirstValue(n, name)
	if !ok {
		return false
	}
	b, _ := AsBool(v)
	return b
}

// diffChildren reconciles two sibling lists whose parent is at path.
// tag is the parent's tag hint.
func (d *differ) diffChildren(tag string, prev, next []Node, path TreePath) {
	if hasKeyed(prev) || hasKeyed(next) {
		d.keyedLists++
		d.diffKeyedChildren(tag, prev, next, path)
		return
	}
	d.diffUnkeyedChildren(tag, prev, next, path)
}

// diffUnkeyedChildren matches children by position.
func (d *differ) diffUnkeyedChildren(tag string, prev, next []Node, path TreePath) {
	shared := min(len(prev), len(next))
	for i := 0; i < shared; i++ {
		d.diffNode(prev[i], next[i], path.Traverse(i))
	}

	if len(next) > len(prev) {
		d.emit(AppendChildren(tag, path, next[len(prev):]...))
	}

	for i := len(next); i < len(prev); i++ {
		d.emit(RemoveNode(Tag(prev[i]), path.Traverse(i)))
	}
}

// hasKeyed returns true if any node carries a key attribute.
func hasKeyed(nodes []Node) bool {
	for _, n := range nodes {
		if IsKeyed(n) {
			return true
		}
	}
	return false
}

// checkSubtree runs checkUnrolled over every node below n.
func checkSubtree(n Node, path TreePath) {
	for i, c := range Children(n) {
		checkUnrolled(Children(c), path.Traverse(i))
		checkSubtree(c, path.Traverse(i))
	}
}

// checkUnrolled panics if a nil, a node list or a fragment survived
// construction as a child.
func checkUnrolled(children []Node, path TreePath) {
	for i, c := range children {
		if isNil(c) {
			panic(errors.New("E003").WithDetailf("child %d of %s", i, path))
		}
		switch c.Kind() {
		case KindNodeList:
			panic(errors.New("E001").WithDetailf("child %d of %s", i, path))
		case KindFragment:
			panic(errors.New("E004").WithDetailf("child %d of %s", i, path))
		}
	}
}

// childAt returns nodes[i], panicking if the reconciliation arithmetic
// produced an index outside the list.
func childAt(nodes []Node, i int, path TreePath) Node {
	if i < 0 || i >= len(nodes) {
		panic(errors.New("E002").WithDetailf("index %d of %d under %s", i, len(nodes), path))
	}
	return nodes[i]
}
