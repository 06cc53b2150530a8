// Package protocol implements the binary wire format for patch lists and
// trees.
//
// The format is compact and reflection free. Integers are protobuf-style
// varints (signed ones ZigZag encoded), strings and byte slices are
// length-prefixed, and fixed-width values are big-endian.
//
// # Frames
//
// Every message is wrapped in a frame with a 5-byte header:
//
//	┌─────────────┬───────────────────────────────┐
//	│ Frame Type  │ Payload Length                │
//	│ (1 byte)    │ (4 bytes, big-endian)         │
//	└─────────────┴───────────────────────────────┘
//
// FramePatches carries a PatchesFrame, FrameTree a single tree.
//
// # Patches
//
//	[Seq: varint][Count: varint]
//	  [Op: byte][Tag: string][Path: varint count, varint indices]
//	  [payload by op: nodes, move source paths or attributes]
//
// Paths address the old tree exactly as the diff engine emitted them.
//
// # Trees
//
// Nodes are written depth first: a kind byte followed by the kind's
// fields. Attribute values keep their variant. Event listeners cannot
// cross the wire; they travel as presence markers and decode to an
// EventListener with a nil handler, which compares equal to the original.
//
// # Limits
//
// Decoding enforces MaxTreeDepth, DefaultMaxAllocation and
// MaxCollectionCount so that a hostile length prefix cannot exhaust memory
// or the stack. Decoding errors carry code E301 and wrap one of the
// sentinel errors of this package.
package protocol
