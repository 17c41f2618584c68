// Package testutil builds small synthetic Photoshop documents for tests.
// The builder emits byte-exact structures (real lengths, real padding) so
// round-trip and reconstruction assertions can compare whole images.
package testutil

import (
	"encoding/binary"

	"github.com/psdtool/psdkit/internal/format"
)

// LayerSpec configures one synthetic layer.
type LayerSpec struct {
	Name        string
	UnicodeName string // "" omits the luni block
	Text        string // non-empty adds a TySh block with a descriptor TEXT item
	// EngineLiteral wraps Text a second time inside a PostScript-style
	// literal ("/Text (<BOM><utf16>)"), imitating the legacy engine-data
	// cache.
	EngineLiteral bool
	// StrideCopy > 0 adds a tdta block holding Text with that many zero
	// filler bytes after each character byte.
	StrideCopy int
	// NameRef adds a shmd block carrying a duplicate name reference.
	NameRef bool
	// AsciiCopy adds the plain single-byte form of Text to the tdta block.
	AsciiCopy bool
}

// DocSpec configures the whole synthetic document.
type DocSpec struct {
	Transparency bool
	Layers       []LayerSpec
	GlobalMask   []byte // opaque tail after layer info
	Resources    []byte // opaque image resources payload
	ImageData    []byte // opaque composite tail
}

func be32(v int) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	return b[:]
}

func be16(v int) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(v))
	return b[:]
}

// Build emits the document described by spec.
func Build(spec DocSpec) []byte {
	var img []byte
	img = append(img, format.EncodeHeader(format.Header{
		Version: 1, Channels: 3, Height: 32, Width: 32, Depth: 8, Mode: 3,
	})...)

	// Color mode data: empty. Image resources: opaque payload.
	img = append(img, be32(0)...)
	img = append(img, be32(len(spec.Resources))...)
	img = append(img, spec.Resources...)

	// Layer and mask info: [layer info section][global mask tail], the whole
	// thing length-prefixed. A document with no layers and no mask gets a
	// zero-length section.
	var lmiPayload []byte
	if len(spec.Layers) > 0 || len(spec.GlobalMask) > 0 {
		lmiPayload = append(lmiPayload, buildLayerInfo(spec)...)
		lmiPayload = append(lmiPayload, spec.GlobalMask...)
	}
	img = append(img, be32(len(lmiPayload))...)
	img = append(img, lmiPayload...)
	img = append(img, spec.ImageData...)
	return img
}

// BuildLayers is the common case: a document from layer specs alone.
func BuildLayers(layers ...LayerSpec) []byte {
	return Build(DocSpec{Layers: layers, ImageData: []byte{0, 0}})
}

func buildLayerInfo(spec DocSpec) []byte {
	if len(spec.Layers) == 0 {
		return be32(0)
	}
	count := len(spec.Layers)
	if spec.Transparency {
		count = -count
	}
	body := be16(count)

	var channelData []byte
	for _, l := range spec.Layers {
		body = append(body, buildLayerRecord(l)...)
		// One raw-compression channel per layer: 2-byte compression header.
		channelData = append(channelData, 0, 0)
	}
	body = append(body, channelData...)
	return append(be32(len(body)), body...)
}

func buildLayerRecord(l LayerSpec) []byte {
	var rec []byte
	// Bounding rectangle: top, left, bottom, right.
	rec = append(rec, be32(0)...)
	rec = append(rec, be32(0)...)
	rec = append(rec, be32(16)...)
	rec = append(rec, be32(16)...)
	// Channel table: one entry, id 0, 2 bytes of data.
	rec = append(rec, be16(1)...)
	rec = append(rec, be16(0)...)
	rec = append(rec, be32(2)...)
	// Blend signature and key, opacity, clipping, flags, filler.
	rec = append(rec, "8BIMnorm"...)
	rec = append(rec, 255, 0, 0, 0)

	extra := buildExtraData(l)
	rec = append(rec, be32(len(extra))...)
	return append(rec, extra...)
}

func buildExtraData(l LayerSpec) []byte {
	var ex []byte
	ex = append(ex, be32(0)...) // mask data
	ex = append(ex, be32(0)...) // blending ranges

	nameField, err := format.EncodePascalName(l.Name)
	if err != nil {
		panic(err)
	}
	ex = append(ex, nameField...)

	if l.UnicodeName != "" {
		payload := format.EncodeUnicodeString(l.UnicodeName)
		ex = append(ex, format.EncodeBlockHeader(format.KeyUnicodeName, len(payload))...)
		ex = append(ex, payload...)
	}
	if l.Text != "" {
		payload := buildTypeToolPayload(l)
		ex = append(ex, format.EncodeBlockHeader(format.KeyTypeTool, len(payload))...)
		ex = append(ex, payload...)
	}
	if l.StrideCopy > 0 || l.AsciiCopy {
		payload := buildRawDataPayload(l)
		ex = append(ex, format.EncodeBlockHeader(format.KeyRawData, len(payload))...)
		ex = append(ex, payload...)
	}
	if l.NameRef {
		payload := buildNameRefPayload(l.Name)
		ex = append(ex, format.EncodeBlockHeader(format.KeyMetadata, len(payload))...)
		ex = append(ex, payload...)
	}
	return ex
}

// buildTypeToolPayload imitates a type-tool object setting: a version word,
// some opaque transform bytes, the descriptor "Txt " TEXT item, and
// optionally the engine-data literal copy.
func buildTypeToolPayload(l LayerSpec) []byte {
	var p []byte
	p = append(p, be16(1)...)
	p = append(p, make([]byte, 16)...) // stand-in for the transform matrix
	p = append(p, 0, 0, 0, 0)
	p = append(p, "Txt TEXT"...)
	utf := format.EncodeUTF16BE(l.Text)
	p = append(p, be32(len(utf)/2)...)
	p = append(p, utf...)
	if l.EngineLiteral {
		p = append(p, "\x00/Text ("...)
		p = append(p, format.UTF16BOM...)
		p = append(p, utf...)
		p = append(p, ')', 0)
	}
	return p
}

func buildRawDataPayload(l LayerSpec) []byte {
	p := []byte{0, 0, 0, 0}
	if l.AsciiCopy {
		p = append(p, l.Text...)
		p = append(p, 0, 0, 0, 0)
	}
	if l.StrideCopy > 0 {
		for i := 0; i < len(l.Text); i++ {
			p = append(p, l.Text[i])
			p = append(p, make([]byte, l.StrideCopy)...)
		}
		p = append(p, 0xff, 0xff)
	}
	return p
}

func buildNameRefPayload(name string) []byte {
	var p []byte
	p = append(p, 0, 0, 0, 3)
	p = append(p, "namTEXT"...)
	utf := format.EncodeUTF16BE(name)
	p = append(p, be32(len(utf)/2)...)
	p = append(p, utf...)
	return p
}
