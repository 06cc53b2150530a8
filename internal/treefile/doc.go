// Package treefile loads vdom trees from YAML documents.
//
// A document holds one node. A node is a mapping with exactly one kind key:
//
//	tag: main                 # element; may add ns, attrs, children, self_closing
//	attrs:
//	  class: container        # scalar: string, int, float or bool
//	  hidden: null            # Empty placeholder
//	  style: {style: {display: flex, gap: 4}}
//	  onclick: {on: click}    # event listener; the handler is the event name
//	  value: {call: hello}    # function call value
//	  data-ids: {list: [1, 2]}
//	  rel: [noopener, {on: x}] # several occurrences of one name
//	children:
//	  - {tag: div, attrs: {key: "1"}}
//	  - text: hello
//	  - plain strings are text
//	  - {comment: note}
//	  - {doctype: html}
//	  - {symbol: "&nbsp;"}
//	  - fragment: [...]
//
// A fragment below the root is spliced into its parent's children.
//
// Parsed documents are memoized by content hash in a vdom.TemplateCache, so
// loading the same file twice returns the same tree.
package treefile
