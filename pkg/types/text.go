package types

import "fmt"

// TextEncoding identifies the byte-level representation a text occurrence
// was found in. The same logical string is typically stored in several of
// these at once, and every copy must be patched together.
type TextEncoding uint8

const (
	// EncUTF16BE is contiguous big-endian UTF-16, two bytes per code unit.
	// The canonical encoding for names and descriptor strings.
	EncUTF16BE TextEncoding = iota
	// EncSingleByte is one byte per character, ASCII subset only.
	EncSingleByte
	// EncStride1, EncStride2, EncStride3 place each character byte followed
	// by 1..3 zero filler bytes — alternate internal representations used by
	// auxiliary descriptor caches.
	EncStride1
	EncStride2
	EncStride3
	// EncLiteral is UTF-16BE text wrapped in a PostScript-style parenthesized
	// literal inside the legacy engine-data cache: a recognized prefix token,
	// an optional FE FF byte-order mark, the text, then a closing parenthesis
	// possibly preceded by a carriage return.
	EncLiteral
)

func (e TextEncoding) String() string {
	switch e {
	case EncUTF16BE:
		return "utf16be"
	case EncSingleByte:
		return "single-byte"
	case EncStride1:
		return "stride-1"
	case EncStride2:
		return "stride-2"
	case EncStride3:
		return "stride-3"
	case EncLiteral:
		return "literal"
	default:
		return fmt.Sprintf("encoding(%d)", int(e))
	}
}

// Provenance records which rule produced a TextLocation, so reports (and
// tests) can tell structural resolution apart from heuristic scanning.
type Provenance string

const (
	// ProvDescriptor marks the authoritative descriptor TEXT item resolved
	// structurally from a type-tool block.
	ProvDescriptor Provenance = "descriptor"
	// ProvUnicodeName marks the Unicode-name block payload.
	ProvUnicodeName Provenance = "unicode-name"
	// ProvPascalName marks the layer record's Pascal name field.
	ProvPascalName Provenance = "pascal-name"
	// ProvNameRef marks a duplicate name reference found inside a tdta or
	// shmd descriptor payload.
	ProvNameRef Provenance = "name-ref"
	// ProvScan marks a hit from the bounded multi-encoding scan of a layer's
	// extra data.
	ProvScan Provenance = "scan"
	// ProvFallback marks a hit from the whole-file scan used when structural
	// resolution yields nothing.
	ProvFallback Provenance = "fallback"
)

// TextLocation is one byte-level occurrence of a logical string.
type TextLocation struct {
	Offset     int
	Length     int // byte length of the occupied slot
	Encoding   TextEncoding
	Provenance Provenance
}

// TextLayerInfo aggregates a text layer with every location that must be
// patched together for its string to stay consistent after an edit.
type TextLayerInfo struct {
	Index     int // -1 for the synthetic layer produced by whole-file fallback
	Name      string
	Text      string
	Locations []TextLocation
}

// LayerSummary describes one layer for enumeration.
type LayerSummary struct {
	Index       int
	Name        string
	UnicodeName string
	BlendKey    string
	Opacity     uint8
	IsText      bool
	Top         int32
	Left        int32
	Bottom      int32
	Right       int32
}

// DocumentInfo describes the decoded container for diagnostics.
type DocumentInfo struct {
	Version         uint16
	Channels        uint16
	Height          uint32
	Width           uint32
	Depth           uint16
	ColorMode       uint16
	ColorModeName   string
	LayerCount      int
	HasTransparency bool
	ColorModeLen    int
	ResourcesLen    int
	LayerMaskLen    int
	ImageDataLen    int
}
