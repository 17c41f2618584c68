package format

import (
	"bytes"
	"fmt"

	"github.com/psdtool/psdkit/internal/buf"
)

// Header captures the fixed file header. See HeaderSize for the layout.
type Header struct {
	Version  uint16
	Channels uint16
	Height   uint32
	Width    uint32
	Depth    uint16
	Mode     uint16
}

// ParseHeader validates and extracts the file header from the start of b.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("psd header: %w", ErrTruncated)
	}
	if !bytes.Equal(b[:4], FileSignature) {
		return Header{}, fmt.Errorf("psd header: %w", ErrSignatureMismatch)
	}
	return Header{
		Version:  buf.U16BE(b[4:]),
		Channels: buf.U16BE(b[12:]),
		Height:   buf.U32BE(b[14:]),
		Width:    buf.U32BE(b[18:]),
		Depth:    buf.U16BE(b[22:]),
		Mode:     buf.U16BE(b[24:]),
	}, nil
}

// EncodeHeader emits the 26-byte header. The reserved run stays zero.
func EncodeHeader(h Header) []byte {
	out := make([]byte, HeaderSize)
	copy(out, FileSignature)
	buf.PutU16BE(out[4:], h.Version)
	buf.PutU16BE(out[12:], h.Channels)
	buf.PutU32BE(out[14:], h.Height)
	buf.PutU32BE(out[18:], h.Width)
	buf.PutU16BE(out[22:], h.Depth)
	buf.PutU16BE(out[24:], h.Mode)
	return out
}

// IsBig reports whether the header declares the large-document variant.
func (h Header) IsBig() bool { return h.Version == VersionPSB }
