// Package render converts vdom trees into HTML.
//
// The output is the markup a browser would build the tree from: text and
// attribute values are escaped, void elements have no closing tag, boolean
// attributes are written bare, and repeated attributes of one name are
// merged before rendering. Event listeners have no markup form and are
// omitted, as are the diff engine's control attributes (key, skip,
// skip_criteria, replace).
//
// # Basic Usage
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(tree)
//
// To stream HTML to a writer:
//
//	err := r.RenderToWriter(w, tree)
//
// # Templates
//
// Trees whose shape never changes can be built once and reused:
//
//	err := r.RenderTemplate(w, "footer", buildFooter)
//
// The built tree is kept in the renderer's vdom.TemplateCache. Pass a shared
// cache in RendererConfig to reuse trees across renderers.
//
// # Security
//
// Text content is escaped. Symbol nodes are written verbatim and should
// only carry trusted content.
package render
