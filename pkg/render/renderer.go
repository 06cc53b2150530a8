package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/vango-dev/vdiff/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output. Whitespace between elements becomes
	// text in the browser, so pretty output is for reading, not serving.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string

	// Cache holds the trees built by RenderTemplate. A private cache is
	// created when nil.
	Cache *vdom.TemplateCache
}

// Renderer writes vdom trees as HTML. A Renderer holds no per-render state
// and may be used concurrently.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	if config.Cache == nil {
		config.Cache = vdom.NewTemplateCache()
	}
	return &Renderer{config: config}
}

// Cache returns the template cache used by RenderTemplate.
func (r *Renderer) Cache() *vdom.TemplateCache {
	return r.config.Cache
}

// RenderToString renders a tree to an HTML string.
func (r *Renderer) RenderToString(node vdom.Node) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a tree to w.
func (r *Renderer) RenderToWriter(w io.Writer, node vdom.Node) error {
	ew := &errWriter{w: w}
	r.renderNode(ew, node, 0)
	return ew.err
}

// RenderTemplate renders the tree cached under id, building it with build
// on first use. A build error is returned and nothing is cached.
func (r *Renderer) RenderTemplate(w io.Writer, id string, build func() (vdom.Node, error)) error {
	node, err := r.config.Cache.GetOrBuild(id, build)
	if err != nil {
		return fmt.Errorf("render template %q: %w", id, err)
	}
	return r.RenderToWriter(w, node)
}

// errWriter remembers the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) WriteString(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

func (r *Renderer) renderNode(w *errWriter, node vdom.Node, depth int) {
	switch n := node.(type) {
	case nil:
	case *vdom.Element:
		r.renderElement(w, n, depth)
	case *vdom.Text:
		w.WriteString(escapeHTML(n.Content))
	case *vdom.Symbol:
		w.WriteString(n.Content)
	case *vdom.Comment:
		w.WriteString("<!--" + n.Content + "-->")
	case *vdom.DocType:
		w.WriteString("<!DOCTYPE " + n.Content + ">")
	case *vdom.Fragment:
		r.renderSiblings(w, n.Nodes, depth)
	case *vdom.NodeList:
		r.renderSiblings(w, n.Nodes, depth)
	}
}

// renderSiblings renders nodes without a wrapper. Top-level siblings go on
// their own lines in pretty mode.
func (r *Renderer) renderSiblings(w *errWriter, nodes []vdom.Node, depth int) {
	for i, child := range nodes {
		if i > 0 && depth == 0 && r.config.Pretty {
			w.WriteString("\n")
		}
		r.renderNode(w, child, depth)
	}
}

func (r *Renderer) renderElement(w *errWriter, el *vdom.Element, depth int) {
	w.WriteString("<" + el.Tag)
	innerHTML := r.renderAttributes(w, el)

	if isVoid(el) {
		w.WriteString(">")
		return
	}
	if el.SelfClosing && len(el.Children) == 0 && innerHTML == "" {
		w.WriteString("/>")
		return
	}
	w.WriteString(">")

	if innerHTML != "" {
		w.WriteString(innerHTML)
	} else {
		// A lone text child stays on the tag's line.
		loneText := len(el.Children) == 1 && el.Children[0].Kind() == vdom.KindText
		block := r.config.Pretty && len(el.Children) > 0 && !loneText && !isInlineElement(el.Tag)
		for _, child := range el.Children {
			if block {
				r.breakLine(w, depth+1)
			}
			r.renderNode(w, child, depth+1)
		}
		if block {
			r.breakLine(w, depth)
		}
	}

	w.WriteString("</" + el.Tag + ">")
}

// renderAttributes writes the merged attributes of el and returns the raw
// inner markup carried by an inner_html attribute, if any.
func (r *Renderer) renderAttributes(w *errWriter, el *vdom.Element) string {
	var innerHTML string
	for _, attr := range vdom.MergeAttributesOfSameName(el.Attrs) {
		if controlAttrs[attr.Name] {
			continue
		}
		values := vdom.GroupValues(attr)
		if attr.Name == innerHTMLAttr {
			innerHTML = joinValues(values.FunctionCalls)
			continue
		}

		if isBooleanAttr(attr.Name) {
			if truthy(values) {
				w.WriteString(" " + attr.Name)
			}
			continue
		}

		parts := make([]string, 0, 2)
		if len(values.Plain) > 0 {
			parts = append(parts, joinValues(values.Plain))
		}
		if len(values.FunctionCalls) > 0 {
			parts = append(parts, joinValues(values.FunctionCalls))
		}
		if len(values.Styles) > 0 {
			parts = append(parts, vdom.Style{Entries: values.Styles}.String())
		}
		if len(parts) == 0 {
			// Listener-only attributes have no markup form.
			continue
		}
		w.WriteString(" " + attr.Name + `="` + escapeAttr(strings.Join(parts, " ")) + `"`)
	}
	return innerHTML
}

// truthy reports whether a boolean attribute is set. The first plain or
// function-call value decides; false, "false" and "" unset it.
func truthy(values vdom.GroupedValues) bool {
	var first vdom.Value
	switch {
	case len(values.Plain) > 0:
		first = values.Plain[0]
	case len(values.FunctionCalls) > 0:
		first = values.FunctionCalls[0]
	default:
		return false
	}
	if b, ok := vdom.AsBool(first); ok {
		return b
	}
	s := first.String()
	return s != "" && s != "false"
}

func joinValues(values []vdom.Value) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}

// breakLine starts a new line indented to depth.
func (r *Renderer) breakLine(w *errWriter, depth int) {
	w.WriteString("\n" + strings.Repeat(r.config.Indent, depth))
}
