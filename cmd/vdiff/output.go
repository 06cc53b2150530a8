package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/vango-dev/vdiff/pkg/render"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

var (
	insertColor  = color.New(color.FgGreen)
	removeColor  = color.New(color.FgRed)
	moveColor    = color.New(color.FgCyan)
	replaceColor = color.New(color.FgYellow)
	attrColor    = color.New(color.FgMagenta)
	faint        = color.New(color.Faint)
)

func opColor(op vdom.PatchOp) *color.Color {
	switch op {
	case vdom.PatchInsertBeforeNode, vdom.PatchInsertAfterNode, vdom.PatchAppendChildren:
		return insertColor
	case vdom.PatchRemoveNode, vdom.PatchClearChildren:
		return removeColor
	case vdom.PatchMoveBeforeNode, vdom.PatchMoveAfterNode:
		return moveColor
	case vdom.PatchReplaceNode:
		return replaceColor
	default:
		return attrColor
	}
}

// printPatches writes one line per patch followed by a summary.
func printPatches(w io.Writer, patches []vdom.Patch) {
	for _, p := range patches {
		fmt.Fprintln(w, opColor(p.Op).Sprint(p.String()))
	}
	fmt.Fprintln(w, faint.Sprintf("%d %s", len(patches), plural(len(patches), "patch", "patches")))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// jsonPatch is the JSON form of a patch. Payload nodes are rendered as HTML.
type jsonPatch struct {
	Op    string     `json:"op"`
	Tag   string     `json:"tag,omitempty"`
	Path  []int      `json:"path"`
	Nodes []string   `json:"nodes,omitempty"`
	From  [][]int    `json:"from,omitempty"`
	Attrs []jsonAttr `json:"attrs,omitempty"`
}

type jsonAttr struct {
	Namespace string   `json:"namespace,omitempty"`
	Name      string   `json:"name"`
	Values    []string `json:"values,omitempty"`
}

func toJSONPatches(r *render.Renderer, patches []vdom.Patch) ([]jsonPatch, error) {
	out := make([]jsonPatch, len(patches))
	for i, p := range patches {
		jp := jsonPatch{
			Op:   p.Op.String(),
			Tag:  p.Tag,
			Path: pathOrEmpty(p.Path),
		}
		for _, n := range p.Nodes {
			html, err := r.RenderToString(n)
			if err != nil {
				return nil, err
			}
			jp.Nodes = append(jp.Nodes, html)
		}
		for _, np := range p.NodePaths {
			jp.From = append(jp.From, pathOrEmpty(np))
		}
		for _, a := range p.Attrs {
			ja := jsonAttr{Namespace: a.Namespace, Name: a.Name}
			for _, v := range a.Values {
				ja.Values = append(ja.Values, describeValue(v))
			}
			jp.Attrs = append(jp.Attrs, ja)
		}
		out[i] = jp
	}
	return out, nil
}

func pathOrEmpty(p vdom.TreePath) []int {
	if p == nil {
		return []int{}
	}
	return p
}

// describeValue renders an attribute value for display. Listeners have no
// printable form.
func describeValue(v vdom.AttributeValue) string {
	switch x := v.(type) {
	case vdom.Simple:
		return x.Value.String()
	case vdom.Style:
		return x.String()
	case vdom.FunctionCall:
		return x.Value.String()
	case vdom.EventListener:
		return "<listener>"
	default:
		return ""
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
