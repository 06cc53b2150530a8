package vdom

// Equal reports whether a and b are structurally equal. Element attributes
// are compared after merging by name, so the order of names does not matter
// but the order of values within one name does. Event listeners compare by
// presence only.
func Equal(a, b Node) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case *Element:
		bv := b.(*Element)
		if av.Tag != bv.Tag || av.Namespace != bv.Namespace || av.SelfClosing != bv.SelfClosing {
			return false
		}
		return attributesEqual(av.Attrs, bv.Attrs) && nodesEqual(av.Children, bv.Children)
	case *Fragment:
		return nodesEqual(av.Nodes, b.(*Fragment).Nodes)
	case *NodeList:
		return nodesEqual(av.Nodes, b.(*NodeList).Nodes)
	default:
		return leafContent(a) == leafContent(b)
	}
}

func nodesEqual(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// attributesEqual compares two raw attribute lists as merged sets.
func attributesEqual(a, b []Attribute) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	ma := MergeAttributesOfSameName(a)
	mb := MergeAttributesOfSameName(b)
	if len(ma) != len(mb) {
		return false
	}
	byName := make(map[string]Attribute, len(mb))
	for _, attr := range mb {
		byName[attr.Name] = attr
	}
	for _, attr := range ma {
		other, ok := byName[attr.Name]
		if !ok || !mergedAttributeEqual(attr, other) {
			return false
		}
	}
	return true
}

func mergedAttributeEqual(a, b Attribute) bool {
	return a.Namespace == b.Namespace && attributeValuesEqual(a.Values, b.Values)
}
