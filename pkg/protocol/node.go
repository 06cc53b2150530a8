package protocol

import (
	"fmt"

	"github.com/vango-dev/vdiff/internal/errors"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

// nullNode marks an absent node.
const nullNode = 0xFF

// Attribute value tags.
const (
	attrSimple       byte = 0x01
	attrStyle        byte = 0x02
	attrListener     byte = 0x03
	attrFunctionCall byte = 0x04
	attrEmpty        byte = 0x05
)

// Scalar value tags.
const (
	valueString byte = 0x01
	valueInt    byte = 0x02
	valueFloat  byte = 0x03
	valueBool   byte = 0x04
	valueList   byte = 0x05
)

// EncodeNode encodes a tree to bytes.
func EncodeNode(n vdom.Node) []byte {
	e := NewEncoder()
	EncodeNodeTo(e, n)
	return e.Bytes()
}

// EncodeNodeTo encodes a tree using the provided encoder.
func EncodeNodeTo(e *Encoder, n vdom.Node) {
	if n == nil {
		e.WriteUint8(nullNode)
		return
	}
	e.WriteUint8(byte(n.Kind()))

	switch v := n.(type) {
	case *vdom.Element:
		e.WriteString(v.Namespace)
		e.WriteString(v.Tag)
		e.WriteBool(v.SelfClosing)
		encodeAttributes(e, v.Attrs)
		encodeNodes(e, v.Children)
	case *vdom.Text:
		e.WriteString(v.Content)
	case *vdom.Comment:
		e.WriteString(v.Content)
	case *vdom.DocType:
		e.WriteString(v.Content)
	case *vdom.Symbol:
		e.WriteString(v.Content)
	case *vdom.Fragment:
		encodeNodes(e, v.Nodes)
	case *vdom.NodeList:
		encodeNodes(e, v.Nodes)
	}
}

func encodeNodes(e *Encoder, nodes []vdom.Node) {
	e.WriteUvarint(uint64(len(nodes)))
	for _, n := range nodes {
		EncodeNodeTo(e, n)
	}
}

func encodeAttributes(e *Encoder, attrs []vdom.Attribute) {
	e.WriteUvarint(uint64(len(attrs)))
	for _, a := range attrs {
		e.WriteString(a.Namespace)
		e.WriteString(a.Name)
		e.WriteUvarint(uint64(len(a.Values)))
		for _, v := range a.Values {
			encodeAttributeValue(e, v)
		}
	}
}

func encodeAttributeValue(e *Encoder, v vdom.AttributeValue) {
	switch av := v.(type) {
	case vdom.Simple:
		e.WriteUint8(attrSimple)
		encodeValue(e, av.Value)
	case vdom.Style:
		e.WriteUint8(attrStyle)
		e.WriteUvarint(uint64(len(av.Entries)))
		for _, entry := range av.Entries {
			e.WriteString(entry.Name)
			encodeValue(e, entry.Value)
		}
	case vdom.EventListener:
		// Handlers stay on the sending side; only presence travels.
		e.WriteUint8(attrListener)
	case vdom.FunctionCall:
		e.WriteUint8(attrFunctionCall)
		encodeValue(e, av.Value)
	default:
		e.WriteUint8(attrEmpty)
	}
}

func encodeValue(e *Encoder, v vdom.Value) {
	switch x := v.(type) {
	case vdom.Int:
		e.WriteUint8(valueInt)
		e.WriteSvarint(int64(x))
	case vdom.Float:
		e.WriteUint8(valueFloat)
		e.WriteFloat64(float64(x))
	case vdom.Bool:
		e.WriteUint8(valueBool)
		e.WriteBool(bool(x))
	case vdom.List:
		e.WriteUint8(valueList)
		e.WriteUvarint(uint64(len(x)))
		for _, item := range x {
			encodeValue(e, item)
		}
	case vdom.String:
		e.WriteUint8(valueString)
		e.WriteString(string(x))
	default:
		e.WriteUint8(valueString)
		e.WriteString("")
	}
}

// DecodeNode decodes a tree from bytes. The whole input must be consumed.
func DecodeNode(data []byte) (vdom.Node, error) {
	d := NewDecoder(data)
	n, err := DecodeNodeFrom(d)
	if err != nil {
		return nil, err
	}
	if !d.EOF() {
		return nil, malformed(ErrTrailingBytes, "%d bytes after tree", d.Remaining())
	}
	return n, nil
}

// DecodeNodeFrom decodes a tree from a decoder.
func DecodeNodeFrom(d *Decoder) (vdom.Node, error) {
	n, err := decodeNode(d, newDepthContext(MaxTreeDepth))
	if err != nil {
		return nil, malformed(err, "tree at offset %d", d.Position())
	}
	return n, nil
}

func decodeNode(d *Decoder, dc *depthContext) (vdom.Node, error) {
	if err := dc.enter(); err != nil {
		return nil, err
	}
	defer dc.leave()

	kind, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	if kind == nullNode {
		return nil, nil
	}

	switch vdom.Kind(kind) {
	case vdom.KindElement:
		el := &vdom.Element{}
		if el.Namespace, err = d.ReadString(); err != nil {
			return nil, err
		}
		if el.Tag, err = d.ReadString(); err != nil {
			return nil, err
		}
		if el.SelfClosing, err = d.ReadBool(); err != nil {
			return nil, err
		}
		if el.Attrs, err = decodeAttributes(d); err != nil {
			return nil, err
		}
		if el.Children, err = decodeNodes(d, dc); err != nil {
			return nil, err
		}
		return el, nil

	case vdom.KindText, vdom.KindComment, vdom.KindDocType, vdom.KindSymbol:
		content, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		switch vdom.Kind(kind) {
		case vdom.KindText:
			return vdom.NewText(content), nil
		case vdom.KindComment:
			return vdom.NewComment(content), nil
		case vdom.KindDocType:
			return vdom.NewDocType(content), nil
		default:
			return vdom.NewSymbol(content), nil
		}

	case vdom.KindFragment:
		nodes, err := decodeNodes(d, dc)
		if err != nil {
			return nil, err
		}
		return &vdom.Fragment{Nodes: nodes}, nil

	case vdom.KindNodeList:
		nodes, err := decodeNodes(d, dc)
		if err != nil {
			return nil, err
		}
		return &vdom.NodeList{Nodes: nodes}, nil

	default:
		return nil, fmt.Errorf("%w: node kind 0x%02x", ErrUnknownTag, kind)
	}
}

func decodeNodes(d *Decoder, dc *depthContext) ([]vdom.Node, error) {
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}
	nodes := make([]vdom.Node, count)
	for i := range nodes {
		n, err := decodeNode(d, dc)
		if err != nil {
			return nil, err
		}
		if n == nil {
			return nil, fmt.Errorf("%w: child %d", ErrNilNode, i)
		}
		nodes[i] = n
	}
	return nodes, nil
}

func decodeAttributes(d *Decoder) ([]vdom.Attribute, error) {
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	attrs := make([]vdom.Attribute, count)
	for i := range attrs {
		a := &attrs[i]
		if a.Namespace, err = d.ReadString(); err != nil {
			return nil, err
		}
		if a.Name, err = d.ReadString(); err != nil {
			return nil, err
		}
		n, err := d.ReadCollectionCount()
		if err != nil {
			return nil, err
		}
		a.Values = make([]vdom.AttributeValue, n)
		for j := range a.Values {
			if a.Values[j], err = decodeAttributeValue(d); err != nil {
				return nil, err
			}
		}
	}
	return attrs, nil
}

func decodeAttributeValue(d *Decoder) (vdom.AttributeValue, error) {
	tag, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case attrSimple:
		v, err := decodeValue(d, 0)
		return vdom.Simple{Value: v}, err
	case attrStyle:
		n, err := d.ReadCollectionCount()
		if err != nil {
			return nil, err
		}
		entries := make([]vdom.StyleEntry, n)
		for i := range entries {
			if entries[i].Name, err = d.ReadString(); err != nil {
				return nil, err
			}
			if entries[i].Value, err = decodeValue(d, 0); err != nil {
				return nil, err
			}
		}
		return vdom.Style{Entries: entries}, nil
	case attrListener:
		return vdom.EventListener{}, nil
	case attrFunctionCall:
		v, err := decodeValue(d, 0)
		return vdom.FunctionCall{Value: v}, err
	case attrEmpty:
		return vdom.Empty{}, nil
	default:
		return nil, fmt.Errorf("%w: attribute value 0x%02x", ErrUnknownTag, tag)
	}
}

func decodeValue(d *Decoder, depth int) (vdom.Value, error) {
	if depth >= MaxTreeDepth {
		return nil, ErrMaxDepthExceeded
	}
	tag, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case valueString:
		s, err := d.ReadString()
		return vdom.String(s), err
	case valueInt:
		i, err := d.ReadSvarint()
		return vdom.Int(i), err
	case valueFloat:
		f, err := d.ReadFloat64()
		return vdom.Float(f), err
	case valueBool:
		b, err := d.ReadBool()
		return vdom.Bool(b), err
	case valueList:
		n, err := d.ReadCollectionCount()
		if err != nil {
			return nil, err
		}
		list := make(vdom.List, n)
		for i := range list {
			if list[i], err = decodeValue(d, depth+1); err != nil {
				return nil, err
			}
		}
		return list, nil
	default:
		return nil, fmt.Errorf("%w: value 0x%02x", ErrUnknownTag, tag)
	}
}

// malformed wraps a decoding failure in an E301 error. Errors that already
// carry a code pass through unchanged.
func malformed(err error, format string, args ...any) error {
	if errors.HasCode(err, "E301") {
		return err
	}
	return errors.New("E301").WithDetailf(format, args...).Wrap(err)
}
