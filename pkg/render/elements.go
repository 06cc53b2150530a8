package render

import "github.com/vango-dev/vdiff/pkg/vdom"

// inlineElements do not start a new line in pretty-printed output.
var inlineElements = map[string]bool{
	"a": true, "abbr": true, "b": true, "br": true, "cite": true,
	"code": true, "em": true, "i": true, "kbd": true, "label": true,
	"mark": true, "q": true, "s": true, "samp": true, "small": true,
	"span": true, "strong": true, "sub": true, "sup": true, "time": true,
	"u": true, "var": true,
}

func isInlineElement(tag string) bool {
	return inlineElements[tag]
}

// booleanAttrs are written as a bare name when true and omitted when false.
var booleanAttrs = map[string]bool{
	"allowfullscreen": true,
	"async":           true,
	"autofocus":       true,
	"autoplay":        true,
	"checked":         true,
	"controls":        true,
	"default":         true,
	"defer":           true,
	"disabled":        true,
	"formnovalidate":  true,
	"hidden":          true,
	"loop":            true,
	"multiple":        true,
	"muted":           true,
	"novalidate":      true,
	"open":            true,
	"readonly":        true,
	"required":        true,
	"reversed":        true,
	"selected":        true,
}

func isBooleanAttr(name string) bool {
	return booleanAttrs[name]
}

// controlAttrs steer the diff engine and never reach the markup.
var controlAttrs = map[string]bool{
	vdom.AttrKey:          true,
	vdom.AttrSkip:         true,
	vdom.AttrSkipCriteria: true,
	vdom.AttrReplace:      true,
}

// innerHTMLAttr carries raw markup that replaces the element's children.
const innerHTMLAttr = "inner_html"

// isVoid reports whether el is written without a closing tag. Only HTML
// elements are void; namespaced elements use SelfClosing instead.
func isVoid(el *vdom.Element) bool {
	return el.Namespace == "" && vdom.IsVoidElement(el.Tag)
}
