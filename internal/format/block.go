package format

import (
	"bytes"

	"github.com/psdtool/psdkit/internal/buf"
)

// Block describes one additional layer information block: signature, 4-char
// key, 4-byte length, payload. All offsets are absolute within the image.
type Block struct {
	Sig          string
	Key          string
	Start        int // offset of the signature
	LenOffset    int // offset of the 4-byte length field
	PayloadStart int
	PayloadEnd   int
}

// Len returns the declared payload length.
func (b Block) Len() int { return b.PayloadEnd - b.PayloadStart }

// NextBlock scans b for the next additional-info block starting at off and
// bounded by bound (exclusive). It returns the block, the offset at which to
// continue scanning, and ok = false when fewer than BlockHeaderSize bytes
// remain before bound.
//
// The format does not align block boundaries, and real-world files produced
// by non-conforming tools occasionally contain stray bytes between blocks.
// A bad signature or a length that would extend past bound fails only that
// candidate position: the scanner advances one byte and retries until it
// finds a well-formed header or runs out of room.
func NextBlock(b []byte, off, bound int) (Block, int, bool) {
	if bound > len(b) {
		bound = len(b)
	}
	for ; off+BlockHeaderSize <= bound; off++ {
		sig := b[off : off+4]
		if !bytes.Equal(sig, BlockSignature) && !bytes.Equal(sig, BlockSignature64) {
			continue
		}
		length := int(buf.U32BE(b[off+8:]))
		payloadStart := off + BlockHeaderSize
		payloadEnd, ok := buf.AddOverflowSafe(payloadStart, length)
		if !ok || payloadEnd > bound {
			// Declared length escapes the section; treat this position as
			// noise and resynchronize.
			continue
		}
		blk := Block{
			Sig:          string(sig),
			Key:          string(b[off+4 : off+8]),
			Start:        off,
			LenOffset:    off + 8,
			PayloadStart: payloadStart,
			PayloadEnd:   payloadEnd,
		}
		return blk, payloadEnd, true
	}
	return Block{}, bound, false
}

// EncodeBlockHeader emits a 12-byte standard block header for key with the
// given payload length.
func EncodeBlockHeader(key string, length int) []byte {
	out := make([]byte, BlockHeaderSize)
	copy(out, BlockSignature)
	copy(out[4:], key)
	buf.PutU32BE(out[8:], uint32(length))
	return out
}
