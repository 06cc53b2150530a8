package vdom

import (
	"fmt"
	"strings"
)

// PatchOp is the type of patch operation.
type PatchOp uint8

const (
	PatchInsertBeforeNode PatchOp = 0x01 // Insert nodes before the target
	PatchInsertAfterNode  PatchOp = 0x02 // Insert nodes after the target
	PatchAppendChildren   PatchOp = 0x03 // Append nodes to the target's children
	PatchClearChildren    PatchOp = 0x04 // Remove all children of the target
	PatchRemoveNode       PatchOp = 0x05 // Remove the target
	PatchMoveBeforeNode   PatchOp = 0x06 // Move nodes at NodePaths before the target
	PatchMoveAfterNode    PatchOp = 0x07 // Move nodes at NodePaths after the target
	PatchReplaceNode      PatchOp = 0x08 // Replace the target with nodes
	PatchAddAttributes    PatchOp = 0x09 // Set attributes on the target
	PatchRemoveAttributes PatchOp = 0x0A // Remove attributes from the target
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case PatchInsertBeforeNode:
		return "InsertBeforeNode"
	case PatchInsertAfterNode:
		return "InsertAfterNode"
	case PatchAppendChildren:
		return "AppendChildren"
	case PatchClearChildren:
		return "ClearChildren"
	case PatchRemoveNode:
		return "RemoveNode"
	case PatchMoveBeforeNode:
		return "MoveBeforeNode"
	case PatchMoveAfterNode:
		return "MoveAfterNode"
	case PatchReplaceNode:
		return "ReplaceNode"
	case PatchAddAttributes:
		return "AddAttributes"
	case PatchRemoveAttributes:
		return "RemoveAttributes"
	default:
		return "Unknown"
	}
}

// Patch represents a single edit operation. Path and NodePaths address nodes
// of the old tree. Nodes and Attrs share memory with the new tree.
type Patch struct {
	Op        PatchOp     // Operation type
	Tag       string      // Expected tag of the target, "" when unknown or not an element
	Path      TreePath    // Target node
	Nodes     []Node      // For Insert*/AppendChildren/ReplaceNode
	NodePaths []TreePath  // Sources for Move*
	Attrs     []Attribute // For AddAttributes/RemoveAttributes
}

// String returns a one-line description of the patch.
func (p Patch) String() string {
	var sb strings.Builder
	sb.WriteString(p.Op.String())
	if p.Tag != "" {
		fmt.Fprintf(&sb, " <%s>", p.Tag)
	}
	sb.WriteString(" at ")
	sb.WriteString(p.Path.String())
	switch p.Op {
	case PatchInsertBeforeNode, PatchInsertAfterNode, PatchAppendChildren, PatchReplaceNode:
		fmt.Fprintf(&sb, " nodes=%d", len(p.Nodes))
	case PatchMoveBeforeNode, PatchMoveAfterNode:
		paths := make([]string, len(p.NodePaths))
		for i, np := range p.NodePaths {
			paths[i] = np.String()
		}
		fmt.Fprintf(&sb, " from=%s", strings.Join(paths, ","))
	case PatchAddAttributes, PatchRemoveAttributes:
		names := make([]string, len(p.Attrs))
		for i, a := range p.Attrs {
			names[i] = a.Name
		}
		fmt.Fprintf(&sb, " attrs=%s", strings.Join(names, ","))
	}
	return sb.String()
}

// InsertBeforeNode inserts nodes before the node at path.
func InsertBeforeNode(tag string, path TreePath, nodes ...Node) Patch {
	return Patch{Op: PatchInsertBeforeNode, Tag: tag, Path: path, Nodes: nodes}
}

// InsertAfterNode inserts nodes after the node at path.
func InsertAfterNode(tag string, path TreePath, nodes ...Node) Patch {
	return Patch{Op: PatchInsertAfterNode, Tag: tag, Path: path, Nodes: nodes}
}

// AppendChildren appends nodes to the children of the node at path.
func AppendChildren(tag string, path TreePath, nodes ...Node) Patch {
	return Patch{Op: PatchAppendChildren, Tag: tag, Path: path, Nodes: nodes}
}

// ClearChildren removes every child of the node at path.
func ClearChildren(tag string, path TreePath) Patch {
	return Patch{Op: PatchClearChildren, Tag: tag, Path: path}
}

// RemoveNode removes the node at path.
func RemoveNode(tag string, path TreePath) Patch {
	return Patch{Op: PatchRemoveNode, Tag: tag, Path: path}
}

// MoveBeforeNode moves the nodes at sources, in order, to just before the
// node at path.
func MoveBeforeNode(tag string, path TreePath, sources ...TreePath) Patch {
	return Patch{Op: PatchMoveBeforeNode, Tag: tag, Path: path, NodePaths: sources}
}

// MoveAfterNode moves the nodes at sources, in order, to just after the node
// at path.
func MoveAfterNode(tag string, path TreePath, sources ...TreePath) Patch {
	return Patch{Op: PatchMoveAfterNode, Tag: tag, Path: path, NodePaths: sources}
}

// ReplaceNode replaces the node at path with nodes.
func ReplaceNode(tag string, path TreePath, nodes ...Node) Patch {
	return Patch{Op: PatchReplaceNode, Tag: tag, Path: path, Nodes: nodes}
}

// AddAttributes sets attrs on the node at path.
func AddAttributes(tag string, path TreePath, attrs ...Attribute) Patch {
	return Patch{Op: PatchAddAttributes, Tag: tag, Path: path, Attrs: attrs}
}

// RemoveAttributes removes attrs from the node at path.
func RemoveAttributes(tag string, path TreePath, attrs ...Attribute) Patch {
	return Patch{Op: PatchRemoveAttributes, Tag: tag, Path: path, Attrs: attrs}
}
