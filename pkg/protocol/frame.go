package protocol

import (
	"errors"
	"io"
)

// Frame constants.
const (
	// FrameHeaderSize is the size of the frame header in bytes.
	FrameHeaderSize = 5

	// MaxPayloadSize is the largest payload a frame may carry (16MB).
	MaxPayloadSize = 16 * 1024 * 1024
)

// FrameType identifies the payload of a frame.
type FrameType uint8

const (
	FramePatches FrameType = 0x01 // PatchesFrame
	FrameTree    FrameType = 0x02 // A single tree
)

// String returns the string representation of the frame type.
func (ft FrameType) String() string {
	switch ft {
	case FramePatches:
		return "Patches"
	case FrameTree:
		return "Tree"
	default:
		return "Unknown"
	}
}

// Frame errors.
var (
	ErrFrameTooLarge    = errors.New("protocol: frame payload too large")
	ErrInvalidFrameType = errors.New("protocol: invalid frame type")
)

// Frame is a typed, length-prefixed payload.
type Frame struct {
	Type    FrameType
	Payload []byte
}

// NewFrame creates a new frame with the given type and payload.
func NewFrame(ft FrameType, payload []byte) *Frame {
	return &Frame{Type: ft, Payload: payload}
}

// Encode encodes the frame to bytes including the header.
func (f *Frame) Encode() []byte {
	e := &Encoder{buf: make([]byte, 0, FrameHeaderSize+len(f.Payload))}
	f.EncodeTo(e)
	return e.Bytes()
}

// EncodeTo encodes the frame using the provided encoder.
func (f *Frame) EncodeTo(e *Encoder) {
	e.WriteUint8(byte(f.Type))
	e.WriteUint32(uint32(len(f.Payload)))
	e.WriteBytes(f.Payload)
}

// DecodeFrame decodes a frame from bytes. data must hold exactly one frame.
func DecodeFrame(data []byte) (*Frame, error) {
	d := NewDecoder(data)
	ft, err := d.ReadByte()
	if err != nil {
		return nil, malformed(err, "frame header")
	}
	if err := checkFrameType(FrameType(ft)); err != nil {
		return nil, malformed(err, "frame header")
	}
	length, err := d.ReadUint32()
	if err != nil {
		return nil, malformed(err, "frame header")
	}
	if length > MaxPayloadSize {
		return nil, malformed(ErrFrameTooLarge, "payload of %d bytes", length)
	}
	if int(length) != d.Remaining() {
		if int(length) > d.Remaining() {
			return nil, malformed(io.ErrUnexpectedEOF, "payload of %d bytes, %d available", length, d.Remaining())
		}
		return nil, malformed(ErrTrailingBytes, "%d bytes after frame", d.Remaining()-int(length))
	}
	payload := make([]byte, length)
	copy(payload, data[FrameHeaderSize:])
	return &Frame{Type: FrameType(ft), Payload: payload}, nil
}

// ReadFrame reads a complete frame from r.
func ReadFrame(r io.Reader) (*Frame, error) {
	header := make([]byte, FrameHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	ft := FrameType(header[0])
	if err := checkFrameType(ft); err != nil {
		return nil, malformed(err, "frame header")
	}
	length := uint32(header[1])<<24 | uint32(header[2])<<16 | uint32(header[3])<<8 | uint32(header[4])
	if length > MaxPayloadSize {
		return nil, malformed(ErrFrameTooLarge, "payload of %d bytes", length)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return &Frame{Type: ft, Payload: payload}, nil
}

// WriteFrame writes a complete frame to w.
func WriteFrame(w io.Writer, f *Frame) error {
	if len(f.Payload) > MaxPayloadSize {
		return ErrFrameTooLarge
	}
	_, err := w.Write(f.Encode())
	return err
}

func checkFrameType(ft FrameType) error {
	switch ft {
	case FramePatches, FrameTree:
		return nil
	}
	return ErrInvalidFrameType
}
