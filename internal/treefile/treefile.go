package treefile

import (
	"bytes"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vdiff/internal/errors"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

// Node kind keys.
const (
	keyTag      = "tag"
	keyText     = "text"
	keyComment  = "comment"
	keyDocType  = "doctype"
	keySymbol   = "symbol"
	keyFragment = "fragment"
)

// Element keys besides tag.
const (
	keyNamespace   = "ns"
	keyAttrs       = "attrs"
	keyChildren    = "children"
	keySelfClosing = "self_closing"
)

// Attribute value wrappers.
const (
	valueStyle = "style"
	valueOn    = "on"
	valueCall  = "call"
	valueList  = "list"
)

var kindKeys = []string{keyTag, keyText, keyComment, keyDocType, keySymbol, keyFragment}

// Loader reads tree documents and memoizes them by content.
type Loader struct {
	cache *vdom.TemplateCache
}

// NewLoader creates a Loader backed by cache. A nil cache gets a private one.
func NewLoader(cache *vdom.TemplateCache) *Loader {
	if cache == nil {
		cache = vdom.NewTemplateCache()
	}
	return &Loader{cache: cache}
}

// Cache returns the loader's cache.
func (l *Loader) Cache() *vdom.TemplateCache {
	return l.cache
}

// Load reads and parses the document at path.
func (l *Loader) Load(path string) (vdom.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E150").
			WithDetail("Cannot read " + path).
			Wrap(err)
	}
	return l.Parse(path, data)
}

// Parse parses data, returning the cached tree when the same content was
// parsed before. name is used in error locations.
func (l *Loader) Parse(name string, data []byte) (vdom.Node, error) {
	id := "treefile:" + strconv.FormatUint(xxhash.Sum64(data), 16)
	return l.cache.GetOrBuild(id, func() (vdom.Node, error) {
		return Parse(name, data)
	})
}

// Parse parses one tree document without caching.
func Parse(name string, data []byte) (vdom.Node, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		detail := "Invalid YAML"
		if name != "" {
			detail += " in " + name
		}
		return nil, errors.New("E150").
			WithDetail(detail + ": " + err.Error()).
			Wrap(err)
	}
	if len(doc.Content) == 0 {
		return nil, errors.New("E150").WithDetail("Document " + name + " is empty")
	}
	p := &parser{name: name}
	return p.node(doc.Content[0])
}

type parser struct {
	name string
}

func (p *parser) fail(code string, n *yaml.Node, format string, args ...any) *errors.Error {
	e := errors.New(code).WithDetailf(format, args...)
	if p.name != "" {
		e = e.WithLocation(p.name, n.Line, n.Column)
	}
	return e
}

// node converts one node mapping, or a bare scalar which is text.
func (p *parser) node(n *yaml.Node) (vdom.Node, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil, p.fail("E151", n, "a node cannot be null")
		}
		return vdom.NewText(n.Value), nil
	case yaml.MappingNode:
	default:
		return nil, p.fail("E151", n, "a node must be a mapping or a string")
	}

	fields := make(map[string]*yaml.Node, len(n.Content)/2)
	var kind string
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if _, dup := fields[k.Value]; dup {
			return nil, p.fail("E151", k, "duplicate key %q", k.Value)
		}
		fields[k.Value] = v
		if isKindKey(k.Value) {
			if kind != "" {
				return nil, p.fail("E151", k, "node has both %q and %q", kind, k.Value)
			}
			kind = k.Value
		}
	}

	switch kind {
	case "":
		return nil, p.fail("E151", n, "node has none of %v", kindKeys)
	case keyTag:
		return p.element(n, fields)
	case keyFragment:
		if err := p.allow(n, keyFragment); err != nil {
			return nil, err
		}
		children, err := p.children(fields[keyFragment])
		if err != nil {
			return nil, err
		}
		return vdom.NewFragment(children...), nil
	}

	if err := p.allow(n, kind); err != nil {
		return nil, err
	}
	content, err := p.scalar(fields[kind], kind)
	if err != nil {
		return nil, err
	}
	switch kind {
	case keyText:
		return vdom.NewText(content), nil
	case keyComment:
		return vdom.NewComment(content), nil
	case keyDocType:
		return vdom.NewDocType(content), nil
	default:
		return vdom.NewSymbol(content), nil
	}
}

func (p *parser) element(n *yaml.Node, fields map[string]*yaml.Node) (vdom.Node, error) {
	if err := p.allow(n, keyTag, keyNamespace, keyAttrs, keyChildren, keySelfClosing); err != nil {
		return nil, err
	}
	tag, err := p.scalar(fields[keyTag], keyTag)
	if err != nil {
		return nil, err
	}
	if tag == "" {
		return nil, p.fail("E151", fields[keyTag], "tag must not be empty")
	}

	var ns string
	if v, ok := fields[keyNamespace]; ok {
		if ns, err = p.scalar(v, keyNamespace); err != nil {
			return nil, err
		}
	}

	selfClosing := ns == "" && vdom.IsVoidElement(tag)
	if v, ok := fields[keySelfClosing]; ok {
		if err := v.Decode(&selfClosing); err != nil {
			return nil, p.fail("E151", v, "self_closing must be a boolean")
		}
	}

	var attrs []vdom.Attribute
	if v, ok := fields[keyAttrs]; ok {
		if attrs, err = p.attributes(v); err != nil {
			return nil, err
		}
	}

	var children []vdom.Node
	if v, ok := fields[keyChildren]; ok {
		if children, err = p.children(v); err != nil {
			return nil, err
		}
	}

	return vdom.NewElementNS(ns, tag, attrs, children, selfClosing), nil
}

func (p *parser) children(n *yaml.Node) ([]vdom.Node, error) {
	n = resolveAlias(n)
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, p.fail("E151", n, "children must be a list")
	}
	out := make([]vdom.Node, 0, len(n.Content))
	for _, c := range n.Content {
		child, err := p.node(c)
		if err != nil {
			return nil, err
		}
		out = append(out, child)
	}
	return out, nil
}

// attributes converts the attrs mapping in source order. A list value
// yields one attribute occurrence per item.
func (p *parser) attributes(n *yaml.Node) ([]vdom.Attribute, error) {
	n = resolveAlias(n)
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, p.fail("E152", n, "attrs must be a mapping")
	}
	var attrs []vdom.Attribute
	for i := 0; i+1 < len(n.Content); i += 2 {
		name, v := n.Content[i].Value, resolveAlias(n.Content[i+1])
		items := []*yaml.Node{v}
		if v.Kind == yaml.SequenceNode {
			items = v.Content
		}
		for _, item := range items {
			value, err := p.attributeValue(name, item)
			if err != nil {
				return nil, err
			}
			attrs = append(attrs, vdom.Attribute{Name: name, Values: []vdom.AttributeValue{value}})
		}
	}
	return attrs, nil
}

func (p *parser) attributeValue(name string, n *yaml.Node) (vdom.AttributeValue, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return vdom.Empty{}, nil
		}
		v, err := p.value(n)
		if err != nil {
			return nil, err
		}
		return vdom.Simple{Value: v}, nil
	case yaml.MappingNode:
	default:
		return nil, p.fail("E152", n, "attribute %q has an unsupported value", name)
	}

	if len(n.Content) != 2 {
		return nil, p.fail("E152", n, "attribute %q: a wrapped value has exactly one of style, on, call or list", name)
	}
	wrapper, inner := n.Content[0].Value, resolveAlias(n.Content[1])
	switch wrapper {
	case valueStyle:
		if inner.Kind != yaml.MappingNode {
			return nil, p.fail("E152", inner, "attribute %q: style must be a mapping", name)
		}
		entries := make([]vdom.StyleEntry, 0, len(inner.Content)/2)
		for i := 0; i+1 < len(inner.Content); i += 2 {
			v, err := p.value(resolveAlias(inner.Content[i+1]))
			if err != nil {
				return nil, err
			}
			entries = append(entries, vdom.StyleEntry{Name: inner.Content[i].Value, Value: v})
		}
		return vdom.Style{Entries: entries}, nil
	case valueOn:
		if inner.Kind != yaml.ScalarNode {
			return nil, p.fail("E152", inner, "attribute %q: on must name an event", name)
		}
		return vdom.EventListener{Handler: inner.Value}, nil
	case valueCall:
		v, err := p.value(inner)
		if err != nil {
			return nil, err
		}
		return vdom.FunctionCall{Value: v}, nil
	case valueList:
		v, err := p.value(inner)
		if err != nil {
			return nil, err
		}
		return vdom.Simple{Value: v}, nil
	default:
		return nil, p.fail("E152", n.Content[0], "attribute %q: unknown value wrapper %q", name, wrapper)
	}
}

// value converts a scalar, or a sequence of scalars into a List.
func (p *parser) value(n *yaml.Node) (vdom.Value, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.SequenceNode:
		list := make(vdom.List, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := p.value(c)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.ScalarNode:
	default:
		return nil, p.fail("E152", n, "expected a scalar value")
	}

	switch n.Tag {
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, p.fail("E152", n, "invalid integer %q", n.Value)
		}
		return vdom.Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, p.fail("E152", n, "invalid number %q", n.Value)
		}
		return vdom.Float(f), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, p.fail("E152", n, "invalid boolean %q", n.Value)
		}
		return vdom.Bool(b), nil
	case "!!null":
		return nil, p.fail("E152", n, "null is only allowed as a whole attribute value")
	default:
		return vdom.String(n.Value), nil
	}
}

func (p *parser) scalar(n *yaml.Node, key string) (string, error) {
	n = resolveAlias(n)
	if n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return "", p.fail("E151", n, "%s must be a string", key)
	}
	return n.Value, nil
}

// allow rejects keys outside allowed.
func (p *parser) allow(n *yaml.Node, allowed ...string) error {
	for i := 0; i < len(n.Content); i += 2 {
		k := n.Content[i]
		ok := false
		for _, a := range allowed {
			if k.Value == a {
				ok = true
				break
			}
		}
		if !ok {
			return p.fail("E151", k, "unexpected key %q", k.Value)
		}
	}
	return nil
}

func isKindKey(k string) bool {
	for _, kk := range kindKeys {
		if k == kk {
			return true
		}
	}
	return false
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}
