package dom

import (
	"log/slog"

	"github.com/vango-dev/vdiff/internal/errors"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

// Document is a mutable tree that patches are applied to.
// A Document is not safe for concurrent use.
type Document struct {
	root   *node
	logger *slog.Logger
}

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger that receives debug-level application events.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Document) {
		d.logger = logger
	}
}

// Mount creates a document holding a copy of tree.
func Mount(tree vdom.Node, opts ...Option) *Document {
	d := &Document{root: build(tree)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Snapshot returns the current content of the document as an immutable
// tree. The result is the baseline for the next diff.
func (d *Document) Snapshot() vdom.Node {
	return d.root.snapshot()
}

// Apply applies patches in order. Every path is resolved before the first
// patch is applied; if resolution fails the document is left unchanged.
func (d *Document) Apply(patches []vdom.Patch) error {
	tx, err := d.Begin(patches)
	if err != nil {
		return err
	}
	_, err = tx.Step(len(patches))
	return err
}

// Begin resolves every path of patches against the document and returns a
// transaction that applies them. It fails with E201 if a path does not
// resolve and E202 if a tag hint does not match its target.
func (d *Document) Begin(patches []vdom.Patch) (*Transaction, error) {
	tx := &Transaction{
		doc:     d,
		patches: patches,
		targets: make([]*node, len(patches)),
		sources: make([][]*node, len(patches)),
	}
	for i, p := range patches {
		target, depth := d.resolve(p.Path)
		if target == nil {
			return nil, errors.New("E201").WithDetailf("patch %d: %s: no child %d at depth %d", i, p, p.Path[depth], depth)
		}
		if p.Tag != "" && (target.kind != vdom.KindElement || target.tag != p.Tag) {
			return nil, errors.New("E202").WithDetailf("patch %d: %s: want <%s>, found %s", i, p, p.Tag, describe(target))
		}
		tx.targets[i] = target

		for _, src := range p.NodePaths {
			n, depth := d.resolve(src)
			if n == nil {
				return nil, errors.New("E201").WithDetailf("patch %d: move source %s: no child %d at depth %d", i, src, src[depth], depth)
			}
			tx.sources[i] = append(tx.sources[i], n)
		}
	}
	return tx, nil
}

// resolve finds the node at path. On failure it returns nil and the depth
// of the index that does not exist.
func (d *Document) resolve(path vdom.TreePath) (*node, int) {
	n := d.root
	for depth, idx := range path {
		if idx < 0 || idx >= len(n.children) {
			return nil, depth
		}
		n = n.children[idx]
	}
	return n, len(path)
}

// attached reports whether n is still part of the document.
func (d *Document) attached(n *node) bool {
	for n.parent != nil {
		n = n.parent
	}
	return n == d.root
}

func describe(n *node) string {
	if n.kind == vdom.KindElement {
		return "<" + n.tag + ">"
	}
	return n.kind.String()
}
