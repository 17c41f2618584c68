package format

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"

	"github.com/psdtool/psdkit/internal/buf"
)

var utf16be = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// DecodeUTF16BE decodes big-endian UTF-16 bytes to a UTF-8 string. Invalid
// code units become the replacement character rather than failing the decode.
func DecodeUTF16BE(b []byte) string {
	out, err := utf16be.NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return string(out)
}

// EncodeUTF16BE encodes s as big-endian UTF-16 bytes, no BOM.
func EncodeUTF16BE(s string) []byte {
	out, err := utf16be.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil
	}
	return out
}

// UnicodeString is a length-prefixed UTF-16BE string as stored in the
// Unicode-name block and descriptor TEXT items: a 4-byte character count
// followed by count UTF-16 code units. No padding follows.
type UnicodeString struct {
	CountOffset int // offset of the 4-byte character count
	TextStart   int
	TextEnd     int
	Text        string // decoded, trailing NUL stripped
}

// ByteLen returns the total on-disk size of the field.
func (u UnicodeString) ByteLen() int { return 4 + (u.TextEnd - u.TextStart) }

// ParseUnicodeString decodes the length-prefixed UTF-16BE string at off in b.
func ParseUnicodeString(b []byte, off int) (UnicodeString, error) {
	if !buf.Has(b, off, 4) {
		return UnicodeString{}, fmt.Errorf("unicode string: %w", ErrTruncated)
	}
	count := int(buf.U32BE(b[off:]))
	raw, ok := buf.Slice(b, off+4, count*2)
	if !ok {
		return UnicodeString{}, fmt.Errorf("unicode string: %w", ErrTruncated)
	}
	text := DecodeUTF16BE(raw)
	for len(text) > 0 && text[len(text)-1] == 0 {
		text = text[:len(text)-1]
	}
	return UnicodeString{
		CountOffset: off,
		TextStart:   off + 4,
		TextEnd:     off + 4 + count*2,
		Text:        text,
	}, nil
}

// EncodeUnicodeString emits the length-prefixed UTF-16BE form of s.
func EncodeUnicodeString(s string) []byte {
	raw := EncodeUTF16BE(s)
	out := make([]byte, 4+len(raw))
	buf.PutU32BE(out, uint32(len(raw)/2))
	copy(out[4:], raw)
	return out
}
