package vdom

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a scalar attribute value. The set of implementations is closed.
type Value interface {
	// Equal reports whether v and other are the same variant with the same content.
	Equal(other Value) bool
	// String returns the value as it is rendered into markup.
	String() string
	value()
}

// String is a string value.
type String string

// Int is a signed integer value.
type Int int64

// Float is a floating point value.
type Float float64

// Bool is a boolean value.
type Bool bool

// List is an ordered list of values, rendered space separated.
type List []Value

func (String) value() {}
func (Int) value()    {}
func (Float) value()  {}
func (Bool) value()   {}
func (List) value()   {}

func (s String) String() string { return string(s) }
func (i Int) String() string    { return strconv.FormatInt(int64(i), 10) }
func (f Float) String() string  { return strconv.FormatFloat(float64(f), 'g', -1, 64) }
func (b Bool) String() string   { return strconv.FormatBool(bool(b)) }

func (l List) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}

func (s String) Equal(other Value) bool {
	o, ok := other.(String)
	return ok && s == o
}

func (i Int) Equal(other Value) bool {
	o, ok := other.(Int)
	return ok && i == o
}

func (f Float) Equal(other Value) bool {
	o, ok := other.(Float)
	return ok && f == o
}

func (b Bool) Equal(other Value) bool {
	o, ok := other.(Bool)
	return ok && b == o
}

func (l List) Equal(other Value) bool {
	o, ok := other.(List)
	if !ok || len(l) != len(o) {
		return false
	}
	for i := range l {
		if !valuesEqual(l[i], o[i]) {
			return false
		}
	}
	return true
}

// valuesEqual compares two possibly nil values.
func valuesEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// AsBool returns the boolean held by v. Only Bool values convert.
func AsBool(v Value) (bool, bool) {
	b, ok := v.(Bool)
	return bool(b), ok
}

// ValueOf converts a Go scalar into a Value.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return String("")
	case Value:
		return x
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case int:
		return Int(x)
	case int8:
		return Int(x)
	case int16:
		return Int(x)
	case int32:
		return Int(x)
	case int64:
		return Int(x)
	case uint:
		return Int(x)
	case uint8:
		return Int(x)
	case uint16:
		return Int(x)
	case uint32:
		return Int(x)
	case uint64:
		return Int(x)
	case float32:
		return Float(x)
	case float64:
		return Float(x)
	case []string:
		l := make(List, len(x))
		for i, s := range x {
			l[i] = String(s)
		}
		return l
	case []any:
		l := make(List, len(x))
		for i, e := range x {
			l[i] = ValueOf(e)
		}
		return l
	case fmt.Stringer:
		return String(x.String())
	default:
		return String(fmt.Sprint(x))
	}
}
