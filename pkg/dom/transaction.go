package dom

import (
	"github.com/vango-dev/vdiff/internal/errors"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

// Transaction applies a resolved patch list in order, possibly across
// several calls to Step.
type Transaction struct {
	doc     *Document
	patches []vdom.Patch
	targets []*node
	sources [][]*node
	next    int
	err     error
}

// Step applies up to n of the remaining patches and reports whether the
// transaction is complete. Patches are never skipped or reordered; after an
// error the transaction stops and further calls return the same error.
func (tx *Transaction) Step(n int) (done bool, err error) {
	if tx.err != nil {
		return true, tx.err
	}
	for ; n > 0 && tx.next < len(tx.patches); n-- {
		if err := tx.apply(tx.next); err != nil {
			tx.err = err
			return true, err
		}
		tx.next++
	}
	done = tx.next >= len(tx.patches)
	if done && tx.doc.logger != nil {
		tx.doc.logger.Debug("dom patches applied", "count", tx.next)
	}
	return done, nil
}

// Applied returns the number of patches applied so far.
func (tx *Transaction) Applied() int { return tx.next }

// Remaining returns the number of patches not yet applied.
func (tx *Transaction) Remaining() int { return len(tx.patches) - tx.next }

func (tx *Transaction) apply(i int) *errors.Error {
	p := tx.patches[i]
	target := tx.targets[i]
	if !tx.doc.attached(target) {
		return invalid(p, "target was removed by an earlier patch")
	}

	switch p.Op {
	case vdom.PatchInsertBeforeNode, vdom.PatchInsertAfterNode:
		if target.parent == nil {
			return invalid(p, "cannot insert next to the root")
		}
		nodes := buildAll(p.Nodes)
		at := target.index()
		if p.Op == vdom.PatchInsertAfterNode {
			at++
		}
		target.parent.insertAt(at, nodes...)

	case vdom.PatchAppendChildren:
		if !target.hasChildren() {
			return invalid(p, "target cannot hold children")
		}
		target.insertAt(len(target.children), buildAll(p.Nodes)...)

	case vdom.PatchClearChildren:
		if !target.hasChildren() {
			return invalid(p, "target cannot hold children")
		}
		for _, c := range target.children {
			c.parent = nil
		}
		target.children = nil

	case vdom.PatchRemoveNode:
		if target.parent == nil {
			return invalid(p, "cannot remove the root")
		}
		target.detach()

	case vdom.PatchMoveBeforeNode, vdom.PatchMoveAfterNode:
		if target.parent == nil {
			return invalid(p, "cannot move next to the root")
		}
		anchor := target
		for _, src := range tx.sources[i] {
			if src == target {
				return invalid(p, "cannot move a node next to itself")
			}
			if src.parent == nil || !tx.doc.attached(src) {
				return invalid(p, "move source was removed by an earlier patch")
			}
			src.detach()
			if p.Op == vdom.PatchMoveBeforeNode {
				target.parent.insertAt(target.index(), src)
			} else {
				anchor.parent.insertAt(anchor.index()+1, src)
				anchor = src
			}
		}

	case vdom.PatchReplaceNode:
		nodes := buildAll(p.Nodes)
		if target.parent == nil {
			if len(nodes) != 1 {
				return invalid(p, "root must be replaced by exactly one node")
			}
			tx.doc.root = nodes[0]
			return nil
		}
		parent, at := target.parent, target.index()
		target.detach()
		parent.insertAt(at, nodes...)

	case vdom.PatchAddAttributes:
		if target.kind != vdom.KindElement {
			return invalid(p, "target is not an element")
		}
		for _, a := range p.Attrs {
			target.setAttribute(a)
		}

	case vdom.PatchRemoveAttributes:
		if target.kind != vdom.KindElement {
			return invalid(p, "target is not an element")
		}
		for _, a := range p.Attrs {
			target.removeAttribute(a.Name)
		}

	default:
		return invalid(p, "unknown operation")
	}
	return nil
}

func buildAll(nodes []vdom.Node) []*node {
	out := make([]*node, len(nodes))
	for i, n := range nodes {
		out[i] = build(n)
	}
	return out
}

func invalid(p vdom.Patch, reason string) *errors.Error {
	return errors.New("E203").WithDetailf("%s: %s", p, reason)
}
