package protocol

import (
	"testing"

	"github.com/vango-dev/vdiff/pkg/vdom"
)

// FuzzDecodePatches checks that arbitrary input never panics and that
// anything that decodes re-encodes to the same bytes.
func FuzzDecodePatches(f *testing.F) {
	f.Add(EncodePatches(&PatchesFrame{Seq: 1, Patches: samplePatches()}))
	f.Add(EncodePatches(&PatchesFrame{}))
	f.Add([]byte{0x01, 0x01, 0x05, 0x00, 0x01, 0x00})

	f.Fuzz(func(t *testing.T, data []byte) {
		pf, err := DecodePatches(data)
		if err != nil {
			return
		}
		if _, err := DecodePatches(EncodePatches(pf)); err != nil {
			t.Fatalf("re-encoded frame does not decode: %v", err)
		}
	})
}

// FuzzDecodeNode checks that arbitrary input never panics.
func FuzzDecodeNode(f *testing.F) {
	f.Add(EncodeNode(vdom.Div(vdom.Class("a"), vdom.P("x"), vdom.NewComment("c"))))
	f.Add([]byte{nullNode})

	f.Fuzz(func(t *testing.T, data []byte) {
		_, _ = DecodeNode(data)
	})
}

// FuzzDecodeFrame checks that arbitrary input never panics.
func FuzzDecodeFrame(f *testing.F) {
	f.Add(NewFrame(FramePatches, []byte{0x01, 0x00}).Encode())
	f.Add(NewFrame(FrameTree, nil).Encode())

	f.Fuzz(func(t *testing.T, data []byte) {
		_, _ = DecodeFrame(data)
	})
}
