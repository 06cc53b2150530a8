package vdom

import "strings"

// Names of the per-node control attributes read by the diff engine.
const (
	AttrKey          = "key"
	AttrSkip         = "skip"
	AttrSkipCriteria = "skip_criteria"
	AttrReplace      = "replace"
)

// Attribute is a named, optionally namespaced list of values. An element may
// carry several attributes of the same name; they are merged into one logical
// attribute whose values are the concatenation of all occurrences.
type Attribute struct {
	Namespace string
	Name      string
	Values    []AttributeValue
}

// IsEmpty reports whether a carries no value other than Empty placeholders.
func (a Attribute) IsEmpty() bool {
	for _, v := range a.Values {
		if _, ok := v.(Empty); !ok {
			return false
		}
	}
	return true
}

// AttributeValue is one value of an attribute. The set of implementations
// is closed.
type AttributeValue interface {
	attributeValue()
}

// Simple is a plain scalar value.
type Simple struct {
	Value Value
}

// Style is an ordered list of CSS declarations.
type Style struct {
	Entries []StyleEntry
}

// StyleEntry is one CSS declaration.
type StyleEntry struct {
	Name  string
	Value Value
}

// EventListener is an opaque callback handle. Listeners compare equal to
// each other regardless of the handler they hold.
type EventListener struct {
	Handler any
}

// FunctionCall is a value computed by calling a function on the rendering
// target, such as a property setter.
type FunctionCall struct {
	Value Value
}

// Empty is a placeholder for "no attribute", returned by conditional
// builders that must still produce a value.
type Empty struct{}

func (Simple) attributeValue()        {}
func (Style) attributeValue()         {}
func (EventListener) attributeValue() {}
func (FunctionCall) attributeValue()  {}
func (Empty) attributeValue()         {}

// String renders the declarations as "name:value;" pairs.
func (s Style) String() string {
	var sb strings.Builder
	for _, e := range s.Entries {
		sb.WriteString(e.Name)
		sb.WriteByte(':')
		if e.Value != nil {
			sb.WriteString(e.Value.String())
		}
		sb.WriteByte(';')
	}
	return sb.String()
}

// attributeValueEqual compares two attribute values. Event listeners are
// compared by presence only.
func attributeValueEqual(a, b AttributeValue) bool {
	switch av := a.(type) {
	case Simple:
		bv, ok := b.(Simple)
		return ok && valuesEqual(av.Value, bv.Value)
	case Style:
		bv, ok := b.(Style)
		if !ok || len(av.Entries) != len(bv.Entries) {
			return false
		}
		for i := range av.Entries {
			if av.Entries[i].Name != bv.Entries[i].Name || !valuesEqual(av.Entries[i].Value, bv.Entries[i].Value) {
				return false
			}
		}
		return true
	case EventListener:
		_, ok := b.(EventListener)
		return ok
	case FunctionCall:
		bv, ok := b.(FunctionCall)
		return ok && valuesEqual(av.Value, bv.Value)
	case Empty:
		_, ok := b.(Empty)
		return ok
	}
	return false
}

// attributeValuesEqual compares two value lists position by position.
func attributeValuesEqual(a, b []AttributeValue) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !attributeValueEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// MergeAttributesOfSameName returns one attribute per distinct name, in order
// of first appearance. Values are concatenated in source order with Empty
// placeholders dropped, and all Style values of a name are coalesced into
// one Style at the position of the first. Attributes left without values
// are omitted.
func MergeAttributesOfSameName(attrs []Attribute) []Attribute {
	merged := make([]Attribute, 0, len(attrs))
	index := make(map[string]int, len(attrs))
	styleAt := make(map[string]int)
	for _, a := range attrs {
		i, seen := index[a.Name]
		for _, v := range a.Values {
			if _, ok := v.(Empty); ok {
				continue
			}
			if !seen {
				i, seen = len(merged), true
				index[a.Name] = i
				merged = append(merged, Attribute{Namespace: a.Namespace, Name: a.Name})
			}
			if style, ok := v.(Style); ok {
				if at, ok := styleAt[a.Name]; ok {
					prev := merged[i].Values[at].(Style)
					entries := append(append([]StyleEntry(nil), prev.Entries...), style.Entries...)
					merged[i].Values[at] = Style{Entries: entries}
					continue
				}
				styleAt[a.Name] = len(merged[i].Values)
			}
			merged[i].Values = append(merged[i].Values, v)
		}
	}
	return merged
}

// AttributeGroup collects the attributes sharing one name together with
// their positions in the source list.
type AttributeGroup struct {
	Name    string
	Indices []int
	Attrs   []Attribute
}

// Values returns the concatenated values of the group, Empty placeholders
// dropped.
func (g AttributeGroup) Values() []AttributeValue {
	var values []AttributeValue
	for _, a := range g.Attrs {
		for _, v := range a.Values {
			if _, ok := v.(Empty); !ok {
				values = append(values, v)
			}
		}
	}
	return values
}

// GroupAttributesPerName groups attrs by name without merging them, in order
// of first appearance.
func GroupAttributesPerName(attrs []Attribute) []AttributeGroup {
	groups := make([]AttributeGroup, 0, len(attrs))
	index := make(map[string]int, len(attrs))
	for i, a := range attrs {
		gi, ok := index[a.Name]
		if !ok {
			gi = len(groups)
			index[a.Name] = gi
			groups = append(groups, AttributeGroup{Name: a.Name})
		}
		groups[gi].Indices = append(groups[gi].Indices, i)
		groups[gi].Attrs = append(groups[gi].Attrs, a)
	}
	return groups
}

// GroupedValues partitions the values of one attribute by kind.
type GroupedValues struct {
	Listeners     []EventListener
	Plain         []Value
	Styles        []StyleEntry
	FunctionCalls []Value
}

// GroupValues partitions the values of a by kind. Empty placeholders are
// dropped.
func GroupValues(a Attribute) GroupedValues {
	var g GroupedValues
	for _, v := range a.Values {
		switch av := v.(type) {
		case EventListener:
			g.Listeners = append(g.Listeners, av)
		case Simple:
			g.Plain = append(g.Plain, av.Value)
		case Style:
			g.Styles = append(g.Styles, av.Entries...)
		case FunctionCall:
			g.FunctionCalls = append(g.FunctionCalls, av.Value)
		}
	}
	return g
}

// Attr creates an attribute. The value may be an AttributeValue, a slice of
// StyleEntry, nil (which yields an Empty placeholder), or any scalar accepted
// by ValueOf.
func Attr(name string, v any) Attribute {
	return Attribute{Name: name, Values: []AttributeValue{attributeValueOf(v)}}
}

// AttrNS creates a namespaced attribute.
func AttrNS(namespace, name string, v any) Attribute {
	a := Attr(name, v)
	a.Namespace = namespace
	return a
}

func attributeValueOf(v any) AttributeValue {
	switch x := v.(type) {
	case nil:
		return Empty{}
	case AttributeValue:
		return x
	case []StyleEntry:
		return Style{Entries: x}
	case StyleEntry:
		return Style{Entries: []StyleEntry{x}}
	default:
		return Simple{Value: ValueOf(v)}
	}
}

// EmptyAttr creates an attribute carrying only an Empty placeholder.
func EmptyAttr(name string) Attribute {
	return Attribute{Name: name, Values: []AttributeValue{Empty{}}}
}

// StylePair creates one CSS declaration.
func StylePair(name string, v any) StyleEntry {
	return StyleEntry{Name: name, Value: ValueOf(v)}
}

// StyleAttr creates a style attribute from declarations.
func StyleAttr(entries ...StyleEntry) Attribute {
	return Attribute{Name: "style", Values: []AttributeValue{Style{Entries: entries}}}
}

// Key sets the reconciliation key.
func Key(v any) Attribute { return Attr(AttrKey, v) }

// Skip marks a subtree the diff engine may leave alone when skip is true.
func Skip(skip bool) Attribute { return Attr(AttrSkip, skip) }

// SkipCriteria skips diffing when the old and new criteria compare equal.
func SkipCriteria(v any) Attribute { return Attr(AttrSkipCriteria, v) }

// Replace forces the node to be replaced instead of patched in place.
func Replace(replace bool) Attribute { return Attr(AttrReplace, replace) }
