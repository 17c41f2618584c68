// Package format houses low-level decoders for the Photoshop document
// container format. The goal is to keep the parsing focused, allocation-free
// where possible, and independent from the public API so higher-level
// packages can orchestrate the data in a more ergonomic form.
//
// Everything in this file is big-endian on disk.
package format

var (
	// FileSignature is the four-byte signature at the start of every document.
	// Layout:
	//   0x00  '8' 'B' 'P' 'S'
	FileSignature = []byte{'8', 'B', 'P', 'S'}

	// BlockSignature is the four-byte signature of a standard additional
	// layer information block.
	BlockSignature = []byte{'8', 'B', 'I', 'M'}

	// BlockSignature64 is the signature of the large-document block variant.
	// Its extended length form is not specially decoded; the 4-byte length
	// that follows the key is used as-is.
	BlockSignature64 = []byte{'8', 'B', '6', '4'}

	// UTF16BOM is the big-endian byte order mark that may precede literal-
	// wrapped text in the legacy engine-data cache.
	UTF16BOM = []byte{0xFE, 0xFF}
)

// Additional layer information keys the decoder interprets. Any other key is
// retained as an opaque payload range.
const (
	// KeyUnicodeName carries the layer's canonical UTF-16BE name.
	KeyUnicodeName = "luni"

	// KeyTypeTool carries the type tool object setting for a text layer,
	// including the authoritative text string inside a descriptor.
	KeyTypeTool = "TySh"

	// KeyTypeToolLegacy is the pre-CS type tool block. Its text copies are
	// found by scanning, not structural decode.
	KeyTypeToolLegacy = "tySh"

	// KeyRawData and KeyMetadata may carry duplicate name references inside
	// descriptor payloads.
	KeyRawData  = "tdta"
	KeyMetadata = "shmd"

	// KeyNameSource identifies the layer-name-source setting block. Recorded
	// with key and range only.
	KeyNameSource = "lnsr"
)

const (
	// HeaderSize is the size of the fixed file header in bytes.
	//
	//	Offset  Size  Description
	//	------  ----  -------------------------------------
	//	 0x00    4    '8' 'B' 'P' 'S'
	//	 0x04    2    Version (1 = PSD, 2 = PSB)
	//	 0x06    6    Reserved, must be zero
	//	 0x0C    2    Channel count
	//	 0x0E    4    Height in pixels
	//	 0x12    4    Width in pixels
	//	 0x16    2    Bits per channel
	//	 0x18    2    Color mode
	HeaderSize = 26

	// BlockHeaderSize is the size of an additional-info block header:
	// 4-byte signature, 4-byte key, 4-byte length.
	BlockHeaderSize = 12

	// ChannelEntrySize is the stride of one channel table entry: 2-byte
	// channel id plus 4-byte data length.
	ChannelEntrySize = 6

	// VersionPSD and VersionPSB are the two known header versions. Other
	// values are accepted and decoded identically.
	VersionPSD = 1
	VersionPSB = 2

	// MaxPascalName is the longest ASCII layer name a Pascal string field
	// can hold.
	MaxPascalName = 255
)

// ColorModeName returns the human-readable name of a color mode value.
func ColorModeName(mode uint16) string {
	names := []string{
		"Bitmap", "Grayscale", "Indexed", "RGB", "CMYK", "HSL", "HSB",
		"Multichannel", "Duotone", "Lab",
	}
	if int(mode) < len(names) {
		return names[mode]
	}
	return "Unknown"
}

// Pad4 rounds n up to the next multiple of 4.
func Pad4(n int) int {
	return (n + 3) &^ 3
}

// PascalFieldSize returns the on-disk size of a Pascal name field holding an
// ASCII name of nameLen bytes: length byte plus name, zero-padded so the
// whole field is a multiple of 4.
func PascalFieldSize(nameLen int) int {
	return Pad4(1 + nameLen)
}
