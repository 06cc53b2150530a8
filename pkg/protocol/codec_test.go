package protocol

import (
	"bytes"
	stderrors "errors"
	"io"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/vango-dev/vdiff/internal/errors"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

func samplePatches() []vdom.Patch {
	path := vdom.NewTreePath(0, 2)
	return []vdom.Patch{
		vdom.InsertBeforeNode("li", path, vdom.Li(vdom.Key(9), "nine")),
		vdom.InsertAfterNode("li", path, vdom.NewText("after"), vdom.NewComment("c")),
		vdom.AppendChildren("ul", vdom.NewTreePath(0), vdom.Li(vdom.Class("a", "b"))),
		vdom.ClearChildren("ul", vdom.NewTreePath(1)),
		vdom.RemoveNode("", vdom.NewTreePath(3, 0, 1)),
		vdom.MoveBeforeNode("li", path, vdom.NewTreePath(0, 5), vdom.NewTreePath(0, 6)),
		vdom.MoveAfterNode("li", path, vdom.NewTreePath(0, 0)),
		vdom.ReplaceNode("", vdom.Root(), vdom.Div(vdom.NewSymbol("&nbsp;"), vdom.NewDocType("html"))),
		vdom.AddAttributes("input", path,
			vdom.Attr("value", vdom.FunctionCall{Value: vdom.String("typed")}),
			vdom.Attr("tabindex", -3),
			vdom.Attr("opacity", 0.5),
			vdom.Attr("checked", true),
			vdom.Attr("data-tags", []string{"x", "y"}),
			vdom.StyleAttr(vdom.StylePair("display", "flex"), vdom.StylePair("order", 2)),
			vdom.EmptyAttr("title"),
			vdom.AttrNS("http://www.w3.org/1999/xlink", "href", "#a"),
		),
		vdom.RemoveAttributes("p", vdom.NewTreePath(1, 1), vdom.Attr("class", "old")),
	}
}

func TestPatchesRoundTrip(t *testing.T) {
	pf := &PatchesFrame{Seq: 42, Patches: samplePatches()}

	got, err := DecodePatches(EncodePatches(pf))
	if err != nil {
		t.Fatalf("DecodePatches: %v", err)
	}
	if diff := cmp.Diff(pf, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPatchesRoundTripFromDiff(t *testing.T) {
	prev := vdom.Ul(vdom.Li(vdom.Key(1), "a"), vdom.Li(vdom.Key(2), "b"), vdom.Li(vdom.Key(3), "c"))
	next := vdom.Ul(vdom.Li(vdom.Key(3), "c"), vdom.Li(vdom.Key(1), "A"), vdom.Li(vdom.Key(4), "d"))
	patches := vdom.Diff(prev, next)

	got, err := DecodePatches(EncodePatches(&PatchesFrame{Seq: 1, Patches: patches}))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(patches, got.Patches, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestNodeRoundTrip(t *testing.T) {
	trees := []vdom.Node{
		vdom.NewText("hello"),
		vdom.NewComment("note"),
		vdom.NewFragment(vdom.NewDocType("html"), vdom.Html(vdom.Body(vdom.Main(vdom.ID("app"))))),
		vdom.Svg(vdom.NewElementNS(vdom.SvgNamespace, "circle", []vdom.Attribute{vdom.Attr("r", 4)}, nil, true)),
		vdom.Div(vdom.Attr("ratio", math.Inf(1)), vdom.Attr("n", int64(math.MinInt64))),
	}
	for _, tree := range trees {
		got, err := DecodeNode(EncodeNode(tree))
		if err != nil {
			t.Fatalf("DecodeNode: %v", err)
		}
		if diff := cmp.Diff(tree, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestNodeNil(t *testing.T) {
	got, err := DecodeNode(EncodeNode(nil))
	if err != nil || got != nil {
		t.Errorf("DecodeNode(nil) = %v, %v", got, err)
	}
}

func TestListenersTravelAsPresence(t *testing.T) {
	tree := vdom.Button(vdom.OnClick(func() {}), "Go")

	got, err := DecodeNode(EncodeNode(tree))
	if err != nil {
		t.Fatal(err)
	}
	if !vdom.Equal(tree, got) {
		t.Error("decoded tree should equal the original")
	}
	listener, ok := vdom.Attributes(got)[0].Values[0].(vdom.EventListener)
	if !ok {
		t.Fatalf("got %T, want EventListener", vdom.Attributes(got)[0].Values[0])
	}
	if listener.Handler != nil {
		t.Error("handler should not cross the wire")
	}
}

func TestDecodeTruncated(t *testing.T) {
	data := EncodePatches(&PatchesFrame{Seq: 7, Patches: samplePatches()})
	for n := 0; n < len(data); n++ {
		_, err := DecodePatches(data[:n])
		if err == nil {
			t.Fatalf("DecodePatches(data[:%d]) succeeded", n)
		}
		if !errors.HasCode(err, "E301") {
			t.Fatalf("DecodePatches(data[:%d]) = %v, want E301", n, err)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	deep := vdom.Node(vdom.NewText("leaf"))
	for i := 0; i < MaxTreeDepth; i++ {
		deep = vdom.Div(deep)
	}

	tests := []struct {
		name   string
		decode func() error
		want   error
	}{
		{
			name: "trailing bytes",
			decode: func() error {
				_, err := DecodePatches(append(EncodePatches(&PatchesFrame{Seq: 1}), 0x00))
				return err
			},
			want: ErrTrailingBytes,
		},
		{
			name: "unknown op",
			decode: func() error {
				_, err := DecodePatches([]byte{0x01, 0x01, 0x7E, 0x00, 0x00})
				return err
			},
			want: ErrUnknownTag,
		},
		{
			name: "unknown node kind",
			decode: func() error {
				_, err := DecodeNode([]byte{0x40})
				return err
			},
			want: ErrUnknownTag,
		},
		{
			name: "invalid bool",
			decode: func() error {
				// Element, empty namespace and tag, self-closing byte 0x02.
				_, err := DecodeNode([]byte{byte(vdom.KindElement), 0x00, 0x00, 0x02, 0x00, 0x00})
				return err
			},
			want: ErrInvalidBool,
		},
		{
			name: "collection too large",
			decode: func() error {
				e := NewEncoder()
				e.WriteUvarint(1)
				e.WriteUvarint(MaxCollectionCount + 1)
				_, err := DecodePatches(e.Bytes())
				return err
			},
			want: ErrCollectionTooLarge,
		},
		{
			name: "count beyond input",
			decode: func() error {
				_, err := DecodePatches([]byte{0x01, 0x05})
				return err
			},
			want: io.ErrUnexpectedEOF,
		},
		{
			name: "nil child",
			decode: func() error {
				_, err := DecodeNode([]byte{byte(vdom.KindFragment), 0x01, nullNode})
				return err
			},
			want: ErrNilNode,
		},
		{
			name: "too deep",
			decode: func() error {
				_, err := DecodeNode(EncodeNode(deep))
				return err
			},
			want: ErrMaxDepthExceeded,
		},
		{
			name: "varint overflow",
			decode: func() error {
				_, err := DecodePatches(bytes.Repeat([]byte{0xFF}, 11))
				return err
			},
			want: ErrVarintOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.decode()
			if !stderrors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if !errors.HasCode(err, "E301") {
				t.Errorf("err = %v, want code E301", err)
			}
		})
	}
}

func TestDepthLimitBoundary(t *testing.T) {
	n := vdom.Node(vdom.NewText("leaf"))
	for i := 0; i < MaxTreeDepth-1; i++ {
		n = vdom.Div(n)
	}
	if _, err := DecodeNode(EncodeNode(n)); err != nil {
		t.Errorf("tree of depth %d should decode: %v", MaxTreeDepth, err)
	}
}

func TestVarintEncoding(t *testing.T) {
	tests := []struct {
		v    uint64
		want []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xAC, 0x02}},
	}
	for _, tt := range tests {
		e := NewEncoder()
		e.WriteUvarint(tt.v)
		if !bytes.Equal(e.Bytes(), tt.want) {
			t.Errorf("WriteUvarint(%d) = %x, want %x", tt.v, e.Bytes(), tt.want)
		}
		got, err := NewDecoder(tt.want).ReadUvarint()
		if err != nil || got != tt.v {
			t.Errorf("ReadUvarint(%x) = %d, %v", tt.want, got, err)
		}
	}

	for _, v := range []int64{0, -1, 1, -64, 64, math.MaxInt64, math.MinInt64} {
		e := NewEncoder()
		e.WriteSvarint(v)
		got, err := NewDecoder(e.Bytes()).ReadSvarint()
		if err != nil || got != v {
			t.Errorf("svarint %d round trip = %d, %v", v, got, err)
		}
	}
}

func TestEncoderReset(t *testing.T) {
	e := NewEncoder()
	e.WriteString("abc")
	e.Reset()
	if e.Len() != 0 {
		t.Errorf("Len after Reset = %d", e.Len())
	}
}

func TestUint8RoundTrip(t *testing.T) {
	e := NewEncoder()
	for _, b := range []byte{0x00, 0x7f, 0x80, 0xff} {
		e.WriteUint8(b)
	}
	if diff := cmp.Diff([]byte{0x00, 0x7f, 0x80, 0xff}, e.Bytes()); diff != "" {
		t.Errorf("bytes mismatch (-want +got):\n%s", diff)
	}

	// Decoder satisfies io.ByteReader.
	var r io.ByteReader = NewDecoder(e.Bytes())
	for _, want := range []byte{0x00, 0x7f, 0x80, 0xff} {
		got, err := r.ReadByte()
		if err != nil || got != want {
			t.Fatalf("ReadByte = %#x, %v; want %#x", got, err, want)
		}
	}
	if _, err := r.ReadByte(); err == nil {
		t.Error("ReadByte past the end: expected an error")
	}
}

func TestFrameRoundTrip(t *testing.T) {
	payload := EncodePatches(&PatchesFrame{Seq: 3, Patches: samplePatches()})
	f := NewFrame(FramePatches, payload)

	got, err := DecodeFrame(f.Encode())
	if err != nil {
		t.Fatal(err)
	}
	if got.Type != FramePatches || !bytes.Equal(got.Payload, payload) {
		t.Errorf("got %v with %d bytes", got.Type, len(got.Payload))
	}

	var buf bytes.Buffer
	if err := WriteFrame(&buf, NewFrame(FrameTree, EncodeNode(vdom.P("x")))); err != nil {
		t.Fatal(err)
	}
	read, err := ReadFrame(&buf)
	if err != nil {
		t.Fatal(err)
	}
	tree, err := DecodeNode(read.Payload)
	if err != nil {
		t.Fatal(err)
	}
	if !vdom.Equal(tree, vdom.P("x")) {
		t.Error("tree frame did not round trip")
	}
}

func TestFrameErrors(t *testing.T) {
	valid := NewFrame(FrameTree, []byte{1, 2, 3}).Encode()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short header", valid[:3], io.ErrUnexpectedEOF},
		{"short payload", valid[:len(valid)-1], io.ErrUnexpectedEOF},
		{"trailing bytes", append(append([]byte(nil), valid...), 0), ErrTrailingBytes},
		{"bad type", append([]byte{0x09}, valid[1:]...), ErrInvalidFrameType},
		{"too large", []byte{byte(FrameTree), 0xFF, 0xFF, 0xFF, 0xFF}, ErrFrameTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFrame(tt.data)
			if !stderrors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFrameTypeString(t *testing.T) {
	if FramePatches.String() != "Patches" || FrameTree.String() != "Tree" || FrameType(9).String() != "Unknown" {
		t.Error("unexpected frame type names")
	}
}
