package protocol

import (
	"fmt"

	"github.com/vango-dev/vdiff/pkg/vdom"
)

// PatchesFrame is a batch of patches with a sequence number. A consumer
// applies frames in sequence order.
type PatchesFrame struct {
	Seq     uint64
	Patches []vdom.Patch
}

// EncodePatches encodes a patches frame to bytes.
func EncodePatches(pf *PatchesFrame) []byte {
	e := NewEncoder()
	EncodePatchesTo(e, pf)
	return e.Bytes()
}

// EncodePatchesTo encodes a patches frame using the provided encoder.
func EncodePatchesTo(e *Encoder, pf *PatchesFrame) {
	e.WriteUvarint(pf.Seq)
	e.WriteUvarint(uint64(len(pf.Patches)))
	for i := range pf.Patches {
		encodePatch(e, &pf.Patches[i])
	}
}

func encodePatch(e *Encoder, p *vdom.Patch) {
	e.WriteUint8(byte(p.Op))
	e.WriteString(p.Tag)
	encodePath(e, p.Path)

	switch p.Op {
	case vdom.PatchInsertBeforeNode, vdom.PatchInsertAfterNode,
		vdom.PatchAppendChildren, vdom.PatchReplaceNode:
		encodeNodes(e, p.Nodes)

	case vdom.PatchMoveBeforeNode, vdom.PatchMoveAfterNode:
		e.WriteUvarint(uint64(len(p.NodePaths)))
		for _, np := range p.NodePaths {
			encodePath(e, np)
		}

	case vdom.PatchAddAttributes, vdom.PatchRemoveAttributes:
		encodeAttributes(e, p.Attrs)

	case vdom.PatchClearChildren, vdom.PatchRemoveNode:
		// Target only.
	}
}

func encodePath(e *Encoder, path vdom.TreePath) {
	e.WriteUvarint(uint64(len(path)))
	for _, idx := range path {
		e.WriteUvarint(uint64(idx))
	}
}

// DecodePatches decodes a patches frame from bytes. The whole input must be
// consumed.
func DecodePatches(data []byte) (*PatchesFrame, error) {
	d := NewDecoder(data)
	pf, err := DecodePatchesFrom(d)
	if err != nil {
		return nil, err
	}
	if !d.EOF() {
		return nil, malformed(ErrTrailingBytes, "%d bytes after patches", d.Remaining())
	}
	return pf, nil
}

// DecodePatchesFrom decodes a patches frame from a decoder.
func DecodePatchesFrom(d *Decoder) (*PatchesFrame, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, malformed(err, "sequence number")
	}
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, malformed(err, "patch count")
	}

	patches := make([]vdom.Patch, count)
	for i := range patches {
		if err := decodePatch(d, &patches[i]); err != nil {
			return nil, malformed(err, "patch %d at offset %d", i, d.Position())
		}
	}
	return &PatchesFrame{Seq: seq, Patches: patches}, nil
}

func decodePatch(d *Decoder, p *vdom.Patch) error {
	op, err := d.ReadByte()
	if err != nil {
		return err
	}
	p.Op = vdom.PatchOp(op)
	if p.Tag, err = d.ReadString(); err != nil {
		return err
	}
	if p.Path, err = decodePath(d); err != nil {
		return err
	}

	switch p.Op {
	case vdom.PatchInsertBeforeNode, vdom.PatchInsertAfterNode,
		vdom.PatchAppendChildren, vdom.PatchReplaceNode:
		p.Nodes, err = decodeNodes(d, newDepthContext(MaxTreeDepth))

	case vdom.PatchMoveBeforeNode, vdom.PatchMoveAfterNode:
		var n int
		if n, err = d.ReadCollectionCount(); err != nil {
			return err
		}
		p.NodePaths = make([]vdom.TreePath, n)
		for i := range p.NodePaths {
			if p.NodePaths[i], err = decodePath(d); err != nil {
				return err
			}
		}

	case vdom.PatchAddAttributes, vdom.PatchRemoveAttributes:
		p.Attrs, err = decodeAttributes(d)

	case vdom.PatchClearChildren, vdom.PatchRemoveNode:

	default:
		// The patch set is closed; an unknown op means the stream is corrupt.
		return fmt.Errorf("%w: patch op 0x%02x", ErrUnknownTag, op)
	}
	return err
}

func decodePath(d *Decoder) (vdom.TreePath, error) {
	n, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}
	if n > MaxTreeDepth {
		return nil, ErrMaxDepthExceeded
	}
	path := make(vdom.TreePath, n)
	for i := range path {
		idx, err := d.ReadUvarint()
		if err != nil {
			return nil, err
		}
		if idx > MaxCollectionCount {
			return nil, ErrCollectionTooLarge
		}
		path[i] = int(idx)
	}
	return path, nil
}
