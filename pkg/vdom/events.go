package vdom

// On creates an event listener attribute. The name is prefixed with "on"
// (e.g., "click" becomes "onclick"). Listeners are compared by presence
// only, so swapping one handler for another never produces a patch.
func On(name string, handler any) Attribute {
	return Attribute{Name: "on" + name, Values: []AttributeValue{EventListener{Handler: handler}}}
}

// IsListener reports whether every value of a is an event listener.
func IsListener(a Attribute) bool {
	if len(a.Values) == 0 {
		return false
	}
	for _, v := range a.Values {
		if _, ok := v.(EventListener); !ok {
			return false
		}
	}
	return true
}

// Listeners returns the attributes of n that carry at least one listener.
func Listeners(n Node) []Attribute {
	var out []Attribute
	for _, a := range Attributes(n) {
		if len(GroupValues(a).Listeners) > 0 {
			out = append(out, a)
		}
	}
	return out
}

// Mouse events

// OnClick handles click events.
func OnClick(handler any) Attribute { return On("click", handler) }

// OnDblClick handles double-click events.
func OnDblClick(handler any) Attribute { return On("dblclick", handler) }

// OnMouseEnter handles mouseenter events.
func OnMouseEnter(handler any) Attribute { return On("mouseenter", handler) }

// OnMouseLeave handles mouseleave events.
func OnMouseLeave(handler any) Attribute { return On("mouseleave", handler) }

// Keyboard events

// OnKeyDown handles keydown events.
func OnKeyDown(handler any) Attribute { return On("keydown", handler) }

// OnKeyUp handles keyup events.
func OnKeyUp(handler any) Attribute { return On("keyup", handler) }

// Form events

// OnInput handles input events (fired when value changes).
func OnInput(handler any) Attribute { return On("input", handler) }

// OnChange handles change events (fired when value is committed).
func OnChange(handler any) Attribute { return On("change", handler) }

// OnSubmit handles form submit events.
func OnSubmit(handler any) Attribute { return On("submit", handler) }

// Focus events

// OnFocus handles focus events.
func OnFocus(handler any) Attribute { return On("focus", handler) }

// OnBlur handles blur events.
func OnBlur(handler any) Attribute { return On("blur", handler) }
