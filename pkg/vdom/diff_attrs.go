package vdom

// diffAttributes emits at most one AddAttributes and one RemoveAttributes
// patch for two elements at the same path. Attributes are compared after
// merging by name; an attribute holding only Empty placeholders is absent.
func diffAttributes(prev, next *Element, path TreePath) []Patch {
	if len(prev.Attrs) == 0 && len(next.Attrs) == 0 {
		return nil
	}

	prevMerged := MergeAttributesOfSameName(prev.Attrs)
	nextMerged := MergeAttributesOfSameName(next.Attrs)

	prevByName := make(map[string]Attribute, len(prevMerged))
	for _, a := range prevMerged {
		prevByName[a.Name] = a
	}
	nextNames := make(map[string]bool, len(nextMerged))

	var add, remove []Attribute
	for _, a := range nextMerged {
		nextNames[a.Name] = true
		old, ok := prevByName[a.Name]
		if !ok || !mergedAttributeEqual(old, a) {
			add = append(add, a)
		}
	}
	for _, a := range prevMerged {
		if !nextNames[a.Name] {
			remove = append(remove, a)
		}
	}

	var patches []Patch
	if len(add) > 0 {
		patches = append(patches, AddAttributes(prev.Tag, path, add...))
	}
	if len(remove) > 0 {
		patches = append(patches, RemoveAttributes(prev.Tag, path, remove...))
	}
	return patches
}
