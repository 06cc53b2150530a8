// Package vdom provides the tree model and reconciliation engine for vdiff.
//
// A tree is an immutable snapshot of a UI: elements with attributes and
// children, text and other leaves, and fragments that group siblings without
// a wrapper. Diffing two snapshots yields an ordered list of patches that
// turn a rendering of the old tree into one equivalent to the new tree.
//
// # Core Types
//
// Node is a sealed sum type over Element, Text, Comment, DocType, Symbol,
// Fragment and NodeList. Attribute holds a name and an ordered list of
// AttributeValue variants (Simple, Style, EventListener, FunctionCall,
// Empty). TreePath names a node by the child indices leading to it.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Main(Class("container"),
//	    Div(Key(1), NewText("first")),
//	    Div(Key(2), NewText("second")),
//	)
//
// NodeList and Fragment values passed as children are unrolled into the
// parent's child sequence at construction time, so a fragment only appears
// as the root of a tree.
//
// # Diffing
//
// Diff compares two trees and returns a slice of Patch operations. Every
// path in the result, including move sources, addresses a node of the old
// tree as it was before any patch is applied. Consumers resolve all paths
// first and then apply the patches in emission order.
//
// Sibling lists that carry a key attribute are reconciled by identity, with
// moves limited to the nodes outside the longest increasing subsequence of
// matched positions. Other lists are reconciled by index.
package vdom
