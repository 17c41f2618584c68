// Package locate finds every byte-level representation of a string inside a
// bounded block or a whole image. One scanner parameterized by an encoding
// descriptor replaces the per-variant routines a naive implementation
// accumulates; the descriptor table below is the single source of truth for
// what is searched.
package locate

import (
	"github.com/psdtool/psdkit/internal/format"
	"github.com/psdtool/psdkit/pkg/types"
)

// codec describes one contiguous or fixed-stride encoding. encode returns the
// exact byte pattern of a needle in that encoding, or ok = false when the
// needle cannot be represented (non-ASCII text in a single-byte slot).
type codec struct {
	tag    types.TextEncoding
	stride int // zero filler bytes after each character byte; -1 = UTF-16BE
	encode func(string) ([]byte, bool)
}

// codecs lists every encoding searched, in precedence order. The canonical
// contiguous UTF-16BE form comes first; the stride variants cover the padded
// representations auxiliary descriptor caches use.
var codecs = []codec{
	{tag: types.EncUTF16BE, stride: -1, encode: encodeUTF16BE},
	{tag: types.EncSingleByte, stride: 0, encode: strideEncoder(0)},
	{tag: types.EncStride1, stride: 1, encode: strideEncoder(1)},
	{tag: types.EncStride2, stride: 2, encode: strideEncoder(2)},
	{tag: types.EncStride3, stride: 3, encode: strideEncoder(3)},
}

// literalPrefixes are the recognized PostScript-style tokens that open a
// parenthesized text literal in the legacy engine-data cache. Each is a name
// key followed by " (" with the text (optionally BOM-prefixed, UTF-16BE)
// inside, closed by ')' possibly preceded by a carriage return.
var literalPrefixes = []string{
	"/Text (",
	"/Txt (",
}

func encodeUTF16BE(s string) ([]byte, bool) {
	b := format.EncodeUTF16BE(s)
	return b, len(b) > 0
}

func strideEncoder(stride int) func(string) ([]byte, bool) {
	return func(s string) ([]byte, bool) {
		if s == "" {
			return nil, false
		}
		out := make([]byte, 0, len(s)*(1+stride))
		for i := 0; i < len(s); i++ {
			if s[i] >= 0x80 {
				return nil, false
			}
			out = append(out, s[i])
			for z := 0; z < stride; z++ {
				out = append(out, 0)
			}
		}
		return out, true
	}
}

// SlotBytes returns the on-disk byte cost of one character in the encoding.
// Literal slots hold UTF-16 code units.
func SlotBytes(enc types.TextEncoding) int {
	switch enc {
	case types.EncUTF16BE, types.EncLiteral:
		return 2
	case types.EncSingleByte:
		return 1
	case types.EncStride1:
		return 2
	case types.EncStride2:
		return 3
	case types.EncStride3:
		return 4
	default:
		return 1
	}
}

// EncodeAs renders s in the given encoding, ok = false when not
// representable. Used by the patch engine to produce replacement bytes whose
// shape matches the located slot.
func EncodeAs(s string, enc types.TextEncoding) ([]byte, bool) {
	switch enc {
	case types.EncUTF16BE, types.EncLiteral:
		return format.EncodeUTF16BE(s), true
	case types.EncSingleByte:
		return strideEncoder(0)(s)
	case types.EncStride1:
		return strideEncoder(1)(s)
	case types.EncStride2:
		return strideEncoder(2)(s)
	case types.EncStride3:
		return strideEncoder(3)(s)
	default:
		return nil, false
	}
}
