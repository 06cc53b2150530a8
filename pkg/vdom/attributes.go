package vdom

import (
	"sort"
	"strings"
)

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attribute { return Attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
// Repeated Class attributes on one element merge into a single class list.
func Class(classes ...string) Attribute { return Attr("class", strings.Join(classes, " ")) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key string, value any) Attribute { return Attr("data-"+key, value) }

// Accessibility attributes

// Role sets the role attribute.
func Role(role string) Attribute { return Attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attribute { return Attr("aria-label", label) }

// AriaHidden sets the aria-hidden attribute.
func AriaHidden(hidden bool) Attribute { return Attr("aria-hidden", hidden) }

// TabIndex sets the tabindex attribute.
func TabIndex(index int) Attribute { return Attr("tabindex", index) }

// Hidden sets the hidden attribute.
func Hidden() Attribute { return Attr("hidden", true) }

// TitleAttr sets the title attribute (named to avoid conflict with Title element).
func TitleAttr(title string) Attribute { return Attr("title", title) }

// Link attributes

// Href sets the href attribute.
func Href(url string) Attribute { return Attr("href", url) }

// Target sets the target attribute.
func Target(target string) Attribute { return Attr("target", target) }

// Rel sets the rel attribute.
func Rel(rel string) Attribute { return Attr("rel", rel) }

// Form attributes

// Name sets the name attribute.
func Name(name string) Attribute { return Attr("name", name) }

// Type sets the type attribute.
func Type(t string) Attribute { return Attr("type", t) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attribute { return Attr("placeholder", text) }

// Disabled sets the disabled attribute.
func Disabled() Attribute { return Attr("disabled", true) }

// Checked sets the checked attribute.
func Checked() Attribute { return Attr("checked", true) }

// Selected sets the selected attribute.
func Selected() Attribute { return Attr("selected", true) }

// Readonly sets the readonly attribute.
func Readonly() Attribute { return Attr("readonly", true) }

// For sets the for attribute (for labels).
func For(id string) Attribute { return Attr("for", id) }

// InputValue sets the value of a form control as a property rather than
// a markup attribute.
func InputValue(v any) Attribute {
	return Attribute{Name: "value", Values: []AttributeValue{FunctionCall{Value: ValueOf(v)}}}
}

// Media attributes

// Src sets the src attribute.
func Src(url string) Attribute { return Attr("src", url) }

// Alt sets the alt attribute.
func Alt(text string) Attribute { return Attr("alt", text) }

// Width sets the width attribute.
func Width(w int) Attribute { return Attr("width", w) }

// Height sets the height attribute.
func Height(h int) Attribute { return Attr("height", h) }

// Conditional attributes

// ClassIf adds a class conditionally. When condition is false the attribute
// is an Empty placeholder and disappears on merge.
func ClassIf(condition bool, class string) Attribute {
	if condition {
		return Attr("class", class)
	}
	return EmptyAttr("class")
}

// AttrIf adds any attribute conditionally.
func AttrIf(condition bool, a Attribute) Attribute {
	if condition {
		return a
	}
	return EmptyAttr(a.Name)
}

// Classes merges multiple class values.
// Accepts string, []string, and map[string]bool.
func Classes(classes ...any) Attribute {
	var result []string
	for _, c := range classes {
		switch v := c.(type) {
		case string:
			if v != "" {
				result = append(result, v)
			}
		case []string:
			for _, s := range v {
				if s != "" {
					result = append(result, s)
				}
			}
		case map[string]bool:
			names := make([]string, 0, len(v))
			for class, include := range v {
				if include && class != "" {
					names = append(names, class)
				}
			}
			sort.Strings(names)
			result = append(result, names...)
		}
	}
	if len(result) == 0 {
		return EmptyAttr("class")
	}
	return Attr("class", strings.Join(result, " "))
}
