package vdom

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node Node) Node {
	if condition {
		return node
	}
	return nil
}

// IfElse returns the first node if condition is true, the second otherwise.
func IfElse(condition bool, ifTrue, ifFalse Node) Node {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// When is like If but with lazy evaluation.
// The function is only called if condition is true.
func When(condition bool, fn func() Node) Node {
	if condition {
		return fn()
	}
	return nil
}

// Unless is the inverse of If.
func Unless(condition bool, node Node) Node {
	if !condition {
		return node
	}
	return nil
}

// Range maps a slice to a node list. Passed as a child, the list is spliced
// into the parent's children.
func Range[T any](items []T, fn func(item T, index int) Node) *NodeList {
	nodes := make([]Node, 0, len(items))
	for i, item := range items {
		nodes = append(nodes, fn(item, i))
	}
	return NewNodeList(nodes...)
}

// Repeat creates a node list of n nodes using the given function.
func Repeat(n int, fn func(i int) Node) *NodeList {
	if n <= 0 {
		return NewNodeList()
	}
	nodes := make([]Node, 0, n)
	for i := 0; i < n; i++ {
		nodes = append(nodes, fn(i))
	}
	return NewNodeList(nodes...)
}

// Either returns first if it's not nil, otherwise second.
func Either(first, second Node) Node {
	if !isNil(first) {
		return first
	}
	return second
}
