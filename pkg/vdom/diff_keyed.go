package vdom

import (
	"fmt"
	"strings"
)

// keyIdentity returns a comparable form of the key of n.
func keyIdentity(n Node) (string, bool) {
	values := AttributeValues(n, AttrKey)
	if values == nil {
		return "", false
	}
	var sb strings.Builder
	for _, v := range values {
		switch av := v.(type) {
		case Simple:
			fmt.Fprintf(&sb, "%T:%s;", av.Value, av.Value)
		case FunctionCall:
			fmt.Fprintf(&sb, "fn:%T:%s;", av.Value, av.Value)
		case Style:
			fmt.Fprintf(&sb, "style:%s;", av.String())
		case EventListener:
			sb.WriteString("listener;")
		}
	}
	return sb.String(), true
}

// sameIdentity reports whether two children at the same position can be
// diffed in place while trimming the common prefix or suffix: keys agree
// (both absent counts as agreement) and the pair is not replaced wholesale.
func (d *differ) sameIdentity(prev, next Node, path TreePath) bool {
	pk, pok := keyIdentity(prev)
	nk, nok := keyIdentity(next)
	if pok != nok || pk != nk {
		return false
	}
	return !d.replaces(prev, next, path)
}

// diffKeyedChildren reconciles two sibling lists by key. The common prefix
// and suffix are diffed in place. In the middle, old children are matched to
// new ones by key; nodes whose old positions form a longest increasing
// subsequence stay put and every other matched node is moved next to one of
// them. Anchors are never removed, moved or replaced.
func (d *differ) diffKeyedChildren(tag string, prev, next []Node, path TreePath) {
	if len(next) == 0 {
		if len(prev) > 0 {
			d.emit(ClearChildren(tag, path))
		}
		return
	}
	if len(prev) == 0 {
		d.emit(AppendChildren(tag, path, next...))
		return
	}

	start := 0
	for start < len(prev) && start < len(next) && d.sameIdentity(prev[start], next[start], path.Traverse(start)) {
		d.diffNode(prev[start], next[start], path.Traverse(start))
		start++
	}

	if start == len(prev) {
		if start < len(next) {
			d.emit(AppendChildren(tag, path, next[start:]...))
		}
		return
	}
	if start == len(next) {
		for i := start; i < len(prev); i++ {
			d.emit(RemoveNode(Tag(prev[i]), path.Traverse(i)))
		}
		return
	}

	// Exclusive ends of the middle sections.
	prevEnd, nextEnd := len(prev), len(next)
	for prevEnd > start && nextEnd > start && d.sameIdentity(prev[prevEnd-1], next[nextEnd-1], path.Traverse(prevEnd-1)) {
		prevEnd--
		nextEnd--
	}

	switch {
	case nextEnd == start:
		for i := start; i < prevEnd; i++ {
			d.emit(RemoveNode(Tag(prev[i]), path.Traverse(i)))
		}
	case prevEnd == start:
		anchor := childAt(prev, prevEnd, path)
		d.emit(InsertBeforeNode(Tag(anchor), path.Traverse(prevEnd), next[start:nextEnd]...))
	default:
		d.diffKeyedMiddle(tag, prev, next, start, prevEnd, nextEnd, path)
	}

	for i := 0; prevEnd+i < len(prev); i++ {
		d.diffNode(prev[prevEnd+i], next[nextEnd+i], path.Traverse(prevEnd+i))
	}
}

// keyedMove is one new child of the middle section that must be placed.
type keyedMove struct {
	node    Node
	oldPath TreePath // nil for inserted nodes
}

// diffKeyedMiddle reconciles prev[start:prevEnd] against next[start:nextEnd].
// prev[prevEnd], when it exists, is the head of the unchanged suffix.
func (d *differ) diffKeyedMiddle(tag string, prev, next []Node, start, prevEnd, nextEnd int, path TreePath) {
	prevMid := prev[start:prevEnd]
	nextMid := next[start:nextEnd]

	// First occurrence of a key wins.
	keyIndex := make(map[string]int, len(prevMid))
	for i, n := range prevMid {
		if k, ok := keyIdentity(n); ok {
			if _, dup := keyIndex[k]; !dup {
				keyIndex[k] = i
			}
		}
	}

	nextToPrev := make([]int, len(nextMid))
	matched := make([]bool, len(prevMid))
	for j, n := range nextMid {
		nextToPrev[j] = -1
		k, ok := keyIdentity(n)
		if !ok {
			continue
		}
		i, found := keyIndex[k]
		if !found || matched[i] || d.replaces(prevMid[i], n, path.Traverse(start+i)) {
			continue
		}
		nextToPrev[j] = i
		matched[i] = true
	}

	removed := 0
	for i, n := range prevMid {
		if !matched[i] {
			d.emit(RemoveNode(Tag(n), path.Traverse(start+i)))
			removed++
		}
	}

	var positions, sources []int
	for j, i := range nextToPrev {
		if i >= 0 {
			positions = append(positions, j)
			sources = append(sources, i)
		}
	}
	stable := make([]bool, len(nextMid))
	for _, k := range longestIncreasingSubsequence(sources) {
		stable[positions[k]] = true
	}

	for j, i := range nextToPrev {
		if i >= 0 {
			d.diffNode(prevMid[i], nextMid[j], path.Traverse(start+i))
		}
	}

	moved, inserted := 0, 0
	for j := 0; j < len(nextMid); {
		if stable[j] {
			j++
			continue
		}
		runStart := j
		for j < len(nextMid) && !stable[j] {
			j++
		}

		run := make([]keyedMove, 0, j-runStart)
		for k := runStart; k < j; k++ {
			m := keyedMove{node: nextMid[k]}
			if i := nextToPrev[k]; i >= 0 {
				m.oldPath = path.Traverse(start + i)
				moved++
			} else {
				inserted++
			}
			run = append(run, m)
		}
		d.placeRun(tag, run, d.anchorsFor(prev, nextToPrev, start, prevEnd, runStart, j, path), path)
	}

	d.debug("keyed reconciliation",
		"path", path.String(),
		"removed", removed,
		"moved", moved,
		"inserted", inserted,
		"stable", len(sources)-moved,
	)
}

// runAnchors holds the node a run of unplaced children is positioned
// against. At most one of before and after is set.
type runAnchors struct {
	before     TreePath // place the run before this node
	beforeNode Node
	after      TreePath // place the run after this node
	afterNode  Node
}

// anchorsFor picks the anchor for nextMid[runStart:runEnd]: the next stable
// node, else the suffix head, else the previous stable node, else the prefix
// tail.
func (d *differ) anchorsFor(prev []Node, nextToPrev []int, start, prevEnd, runStart, runEnd int, path TreePath) runAnchors {
	var a runAnchors
	if runEnd < len(nextToPrev) {
		i := start + nextToPrev[runEnd]
		a.before, a.beforeNode = path.Traverse(i), childAt(prev, i, path)
		return a
	}
	if prevEnd < len(prev) {
		a.before, a.beforeNode = path.Traverse(prevEnd), childAt(prev, prevEnd, path)
		return a
	}
	if runStart > 0 {
		i := start + nextToPrev[runStart-1]
		a.after, a.afterNode = path.Traverse(i), childAt(prev, i, path)
		return a
	}
	if start > 0 {
		a.after, a.afterNode = path.Traverse(start-1), childAt(prev, start-1, path)
	}
	return a
}

// placeRun emits the patches that position run. The run is split into
// maximal sub-runs of moved or inserted nodes so each patch stays
// homogeneous.
func (d *differ) placeRun(tag string, run []keyedMove, a runAnchors, path TreePath) {
	var groups [][]keyedMove
	for k := 0; k < len(run); {
		end := k + 1
		for end < len(run) && (run[end].oldPath != nil) == (run[k].oldPath != nil) {
			end++
		}
		groups = append(groups, run[k:end])
		k = end
	}

	switch {
	case a.beforeNode != nil:
		for _, g := range groups {
			d.emit(placement(g, true, Tag(a.beforeNode), a.before))
		}
	case a.afterNode != nil:
		// Each group lands directly after the anchor, so emit right to left.
		for k := len(groups) - 1; k >= 0; k-- {
			d.emit(placement(groups[k], false, Tag(a.afterNode), a.after))
		}
	default:
		// No anchor survives, so the run only holds inserted nodes.
		for _, g := range groups {
			nodes := make([]Node, len(g))
			for k, m := range g {
				nodes[k] = m.node
			}
			d.emit(AppendChildren(tag, path, nodes...))
		}
	}
}

// placement builds the move or insert patch for one homogeneous group.
func placement(g []keyedMove, before bool, tag string, anchor TreePath) Patch {
	if g[0].oldPath != nil {
		sources := make([]TreePath, len(g))
		for k, m := range g {
			sources[k] = m.oldPath
		}
		if before {
			return MoveBeforeNode(tag, anchor, sources...)
		}
		return MoveAfterNode(tag, anchor, sources...)
	}
	nodes := make([]Node, len(g))
	for k, m := range g {
		nodes[k] = m.node
	}
	if before {
		return InsertBeforeNode(tag, anchor, nodes...)
	}
	return InsertAfterNode(tag, anchor, nodes...)
}
