package locate

import (
	"bytes"
	"sort"

	"github.com/psdtool/psdkit/internal/format"
	"github.com/psdtool/psdkit/pkg/types"
)

// FindOccurrences scans hay for every byte-level representation of needle
// and returns the locations with offsets rebased by base (the absolute
// offset of hay[0] in the source image). Matching is exact byte-for-byte —
// no normalization, no case folding — because a false positive here means
// corrupting bytes that only looked like text. Results are deduplicated by
// (offset, encoding) and sorted by ascending offset.
//
// The scan is the simple O(len(hay) x len(needle)) pass per encoding
// variant. Inputs are bounded by practical file sizes; a missed occurrence
// is a stale copy of old text surviving in the output, which is worse than
// a slow scan.
func FindOccurrences(hay []byte, base int, needle string, prov types.Provenance) []types.TextLocation {
	if needle == "" || len(hay) == 0 {
		return nil
	}
	var locs []types.TextLocation
	for _, c := range codecs {
		pat, ok := c.encode(needle)
		if !ok || len(pat) == 0 {
			continue
		}
		for off := 0; ; {
			i := bytes.Index(hay[off:], pat)
			if i < 0 {
				break
			}
			at := off + i
			locs = append(locs, types.TextLocation{
				Offset:     base + at,
				Length:     len(pat),
				Encoding:   c.tag,
				Provenance: prov,
			})
			off = at + 1
		}
	}
	locs = append(locs, findLiteral(hay, base, needle, prov)...)
	return SortByOffset(Dedup(locs))
}

// findLiteral matches the literal-wrapped form: prefix token, optional BOM,
// UTF-16BE text, optional carriage return, closing parenthesis. The recorded
// location covers only the text bytes — the wrapper stays untouched by
// patches so the slot width is the text width.
func findLiteral(hay []byte, base int, needle string, prov types.Provenance) []types.TextLocation {
	text := format.EncodeUTF16BE(needle)
	if len(text) == 0 {
		return nil
	}
	var locs []types.TextLocation
	for _, prefix := range literalPrefixes {
		pat := []byte(prefix)
		for off := 0; ; {
			i := bytes.Index(hay[off:], pat)
			if i < 0 {
				break
			}
			at := off + i
			off = at + 1

			j := at + len(pat)
			if bytes.HasPrefix(hay[j:], format.UTF16BOM) {
				j += len(format.UTF16BOM)
			}
			if !bytes.HasPrefix(hay[j:], text) {
				continue
			}
			k := j + len(text)
			if k < len(hay) && hay[k] == '\r' {
				k++
			}
			if k >= len(hay) || hay[k] != ')' {
				continue
			}
			locs = append(locs, types.TextLocation{
				Offset:     base + j,
				Length:     len(text),
				Encoding:   types.EncLiteral,
				Provenance: prov,
			})
		}
	}
	return locs
}

type locKey struct {
	offset   int
	encoding types.TextEncoding
}

// Dedup keeps the first location per (offset, encoding) pair, preserving
// order. Callers that merge structural and scanned locations list the
// structural ones first so their provenance wins.
func Dedup(locs []types.TextLocation) []types.TextLocation {
	seen := make(map[locKey]bool, len(locs))
	out := locs[:0:0]
	for _, l := range locs {
		k := locKey{l.Offset, l.Encoding}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, l)
	}
	return out
}

// SortByOffset orders locations by ascending offset so patches applied in
// order never invalidate a later location's absolute offset.
func SortByOffset(locs []types.TextLocation) []types.TextLocation {
	sort.SliceStable(locs, func(i, j int) bool {
		if locs[i].Offset != locs[j].Offset {
			return locs[i].Offset < locs[j].Offset
		}
		return locs[i].Encoding < locs[j].Encoding
	})
	return locs
}
