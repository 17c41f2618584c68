package reader

import (
	"bytes"

	"github.com/psdtool/psdkit/internal/format"
)

// The type-tool block stores its content in a descriptor: a self-describing
// but undocumented key/value grammar. A full grammar decode is out of scope;
// the two patterns below are the stable anchors real-world files exhibit.
//
// A descriptor item with a zero key length is followed by a 4-byte key, so
// the authoritative text item "Txt " of OSType TEXT appears as the byte run
//
//	00 00 00 00 'T' 'x' 't' ' ' 'T' 'E' 'X' 'T'
//
// followed by a 4-byte character count and UTF-16BE text.
var descriptorTextMarker = []byte{0, 0, 0, 0, 'T', 'x', 't', ' ', 'T', 'E', 'X', 'T'}

// Duplicate name references inside tdta/shmd payloads anchor on the 3-byte
// key "nam" (length-prefixed) with the same TEXT item shape:
//
//	00 00 00 03 'n' 'a' 'm' 'T' 'E' 'X' 'T'
//
// This is a best-effort heuristic over the descriptor grammar; do not extend
// the pattern without confirming against real-world samples.
var nameRefMarker = []byte{0, 0, 0, 3, 'n', 'a', 'm', 'T', 'E', 'X', 'T'}

// FindDescriptorText resolves the authoritative text string inside a
// type-tool block payload. The first well-formed "Txt " TEXT item wins.
func FindDescriptorText(img []byte, blk format.Block) (format.UnicodeString, bool) {
	payload := img[blk.PayloadStart:blk.PayloadEnd]
	off := 0
	for {
		i := bytes.Index(payload[off:], descriptorTextMarker)
		if i < 0 {
			return format.UnicodeString{}, false
		}
		at := blk.PayloadStart + off + i + len(descriptorTextMarker)
		u, err := format.ParseUnicodeString(img[:blk.PayloadEnd], at)
		if err == nil {
			return u, true
		}
		off += i + 1
	}
}

// FindNameRefs returns every well-formed duplicate name reference inside a
// tdta or shmd block payload.
func FindNameRefs(img []byte, blk format.Block) []format.UnicodeString {
	payload := img[blk.PayloadStart:blk.PayloadEnd]
	var refs []format.UnicodeString
	off := 0
	for {
		i := bytes.Index(payload[off:], nameRefMarker)
		if i < 0 {
			return refs
		}
		at := blk.PayloadStart + off + i + len(nameRefMarker)
		if u, err := format.ParseUnicodeString(img[:blk.PayloadEnd], at); err == nil {
			refs = append(refs, u)
		}
		off += i + len(nameRefMarker)
	}
}
