package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vdiff/internal/errors"
	"github.com/vango-dev/vdiff/pkg/protocol"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

func encodeCmd(a *app) *cobra.Command {
	var (
		seq    uint64
		verify bool
	)

	cmd := &cobra.Command{
		Use:   "encode OLD [NEW]",
		Short: "Hex dump the wire frame for a diff or a tree",
		Long: `Encode the patches from OLD to NEW as a binary patches frame and print
a hex dump. With a single document, encode the whole tree as a tree frame.

Examples:
  vdiff encode old.yaml new.yaml
  vdiff encode old.yaml new.yaml --seq=42 --verify
  vdiff encode page.yaml`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prev, err := a.loader.Load(args[0])
			if err != nil {
				return err
			}

			var frame *protocol.Frame
			var patches []vdom.Patch
			if len(args) == 1 {
				frame = protocol.NewFrame(protocol.FrameTree, protocol.EncodeNode(prev))
			} else {
				next, err := a.loader.Load(args[1])
				if err != nil {
					return err
				}
				if patches, err = a.diffFunc()(cmd.Context(), prev, next); err != nil {
					return err
				}
				payload := protocol.EncodePatches(&protocol.PatchesFrame{Seq: seq, Patches: patches})
				frame = protocol.NewFrame(protocol.FramePatches, payload)
			}

			data := frame.Encode()
			if verify {
				if err := verifyFrame(data, prev, patches); err != nil {
					return err
				}
			}

			fmt.Fprintf(a.out, "%s frame, %d bytes\n", frame.Type, len(data))
			fmt.Fprint(a.out, hex.Dump(data))
			return nil
		},
	}

	cmd.Flags().Uint64Var(&seq, "seq", 1, "Sequence number of the patches frame")
	cmd.Flags().BoolVar(&verify, "verify", false, "Decode the frame again and check it matches")

	return cmd
}

// verifyFrame decodes data and checks it carries tree or patches.
func verifyFrame(data []byte, tree vdom.Node, patches []vdom.Patch) error {
	frame, err := protocol.DecodeFrame(data)
	if err != nil {
		return err
	}
	mismatch := errors.New("E301").WithDetail("Decoded frame does not match what was encoded")

	if frame.Type == protocol.FrameTree {
		decoded, err := protocol.DecodeNode(frame.Payload)
		if err != nil {
			return err
		}
		if !vdom.Equal(decoded, tree) {
			return mismatch
		}
		return nil
	}

	pf, err := protocol.DecodePatches(frame.Payload)
	if err != nil {
		return err
	}
	if len(pf.Patches) != len(patches) {
		return mismatch
	}
	for i := range patches {
		if pf.Patches[i].String() != patches[i].String() {
			return mismatch
		}
	}
	return nil
}
