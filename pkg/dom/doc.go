// Package dom is an in-memory rendering target for vdom patches.
//
// A Document holds a mutable copy of a tree. Patches produced by vdom.Diff
// are applied to it the way a real renderer would apply them: every path is
// resolved against the document before anything changes, tag hints are
// checked, and the patches are then applied in emission order.
//
//	doc := dom.Mount(oldTree)
//	if err := doc.Apply(vdom.Diff(oldTree, newTree)); err != nil {
//	    return err
//	}
//	current := doc.Snapshot()
//
// Begin and Transaction.Step apply a patch list a bounded number of patches
// at a time, for callers that spread work across scheduling turns.
package dom
