// Package reader decodes the Photoshop container into a document model that
// retains the byte offset of every variable-length field. The decode is a
// single forward pass; the only backtracking is the byte-wise block
// resynchronization inside a layer's extra data. Nothing is cached between
// calls — every entry point re-decodes from the source bytes.
package reader

import (
	"fmt"

	"github.com/psdtool/psdkit/internal/buf"
	"github.com/psdtool/psdkit/internal/format"
	"github.com/psdtool/psdkit/pkg/types"
)

// Range is a half-open byte range [Start, End) within the source image.
type Range struct {
	Start int
	End   int
}

// Len returns the range's byte length.
func (r Range) Len() int { return r.End - r.Start }

// Bytes returns the slice of img covered by the range.
func (r Range) Bytes(img []byte) []byte { return img[r.Start:r.End] }

// Document is the decoded container. All ranges are absolute offsets into
// the source image. Sections the core never reinterprets (color mode data,
// image resources, channel data, composite image data) are kept as opaque
// ranges and copied byte-for-byte on reconstruction.
type Document struct {
	Header         format.Header
	ColorModeData  Range // payload; 4-byte length precedes Start
	ImageResources Range // payload; 4-byte length precedes Start
	LayerMask      LayerMaskInfo
	ImageData      Range // composite image data tail

	img []byte
}

// Bytes returns the source image the document was decoded from.
func (d *Document) Bytes() []byte { return d.img }

// LayerMaskInfo is the layer-and-mask-information section.
type LayerMaskInfo struct {
	LenOffset int   // offset of the section's 4-byte length field
	Payload   Range // zero-length when the document has no layers
	Info      LayerInfo
	GlobalMask Range // opaque tail after layer info
}

// LayerInfo is the layer-information sub-section.
type LayerInfo struct {
	LenOffset       int
	Payload         Range
	LayerCount      int // magnitude of the declared count
	HasTransparency bool
	Layers          []Layer
	ChannelData     Range // shared trailing channel image data, opaque
}

// ChannelEntry is one channel table entry.
type ChannelEntry struct {
	ID     int16
	Length uint32
}

// Layer is one decoded layer record.
type Layer struct {
	Index    int
	Record   Range // rectangle through end of extra data
	Top      int32
	Left     int32
	Bottom   int32
	Right    int32
	Channels []ChannelEntry
	BlendSig string
	BlendKey string
	Opacity  byte
	Clipping byte
	Flags    byte
	Filler   byte
	Extra    ExtraData
}

// ExtraData is a layer's variable-length tail: mask data, blending ranges,
// Pascal name, then additional-info blocks until the declared end.
type ExtraData struct {
	LenOffset      int
	Payload        Range
	Mask           Range // payload; 4-byte length precedes Start
	BlendingRanges Range // payload; 4-byte length precedes Start
	NameOffset     int   // offset of the Pascal length byte
	Name           string
	NameFieldSize  int // padded on-disk size of the name field
	Blocks         []InfoBlock
}

// InfoBlock is one additional layer information block along with any decoded
// interpretation. Unrecognized keys keep only the raw block.
type InfoBlock struct {
	format.Block
	Unicode *format.UnicodeString // key "luni"
	Text    *format.UnicodeString // key "TySh": the descriptor TEXT item
}

// UnicodeName returns the layer's decoded Unicode name, or "".
func (l *Layer) UnicodeName() string {
	for i := range l.Extra.Blocks {
		if b := &l.Extra.Blocks[i]; b.Unicode != nil {
			return b.Unicode.Text
		}
	}
	return ""
}

// UnicodeBlock returns the layer's luni block, or nil.
func (l *Layer) UnicodeBlock() *InfoBlock {
	for i := range l.Extra.Blocks {
		if l.Extra.Blocks[i].Unicode != nil {
			return &l.Extra.Blocks[i]
		}
	}
	return nil
}

// TextBlock returns the layer's type-tool block with a structurally resolved
// descriptor string, or nil for non-text layers.
func (l *Layer) TextBlock() *InfoBlock {
	for i := range l.Extra.Blocks {
		if l.Extra.Blocks[i].Text != nil {
			return &l.Extra.Blocks[i]
		}
	}
	return nil
}

// Decode parses img into a Document. Structural failures are terminal:
// a missing 8BPS magic yields types.ErrBadSignature and any unreadable
// required field yields types.ErrTruncated. A single malformed
// additional-info block never fails the whole document.
func Decode(img []byte) (*Document, error) {
	hdr, err := format.ParseHeader(img)
	if err != nil {
		return nil, mapFormatErr(err)
	}
	d := &Document{Header: hdr, img: img}
	c := buf.NewCursor(img)
	c.Seek(format.HeaderSize)

	if d.ColorModeData, err = readSizedSection(c, "color mode data"); err != nil {
		return nil, err
	}
	if d.ImageResources, err = readSizedSection(c, "image resources"); err != nil {
		return nil, err
	}
	if err = decodeLayerMaskInfo(c, d); err != nil {
		return nil, err
	}
	d.ImageData = Range{Start: d.LayerMask.Payload.End, End: len(img)}
	return d, nil
}

// readSizedSection reads a 4-byte length, records the payload range, and
// skips past it.
func readSizedSection(c *buf.Cursor, what string) (Range, error) {
	n, err := c.ReadU32()
	if err != nil {
		return Range{}, truncated(what, err)
	}
	start := c.Pos()
	if err := c.Skip(int(n)); err != nil {
		return Range{}, truncated(what, err)
	}
	return Range{Start: start, End: c.Pos()}, nil
}

func decodeLayerMaskInfo(c *buf.Cursor, d *Document) error {
	lm := &d.LayerMask
	lm.LenOffset = c.Pos()
	payload, err := readSizedSection(c, "layer and mask info")
	if err != nil {
		return err
	}
	lm.Payload = payload
	lm.Info.Payload = Range{Start: payload.Start, End: payload.Start}
	lm.GlobalMask = Range{Start: payload.End, End: payload.End}
	if payload.Len() == 0 {
		return nil
	}

	c.Seek(payload.Start)
	lm.Info.LenOffset = c.Pos()
	infoPayload, err := readSizedSection(c, "layer info")
	if err != nil {
		return err
	}
	lm.Info.Payload = infoPayload
	lm.GlobalMask = Range{Start: infoPayload.End, End: payload.End}
	if infoPayload.Len() == 0 {
		return nil
	}

	c.Seek(infoPayload.Start)
	count, err := c.ReadI16()
	if err != nil {
		return truncated("layer count", err)
	}
	// A negative count flags that the first alpha channel holds merged
	// transparency; the magnitude is the true layer count.
	lm.Info.HasTransparency = count < 0
	if count < 0 {
		count = -count
	}
	lm.Info.LayerCount = int(count)

	lm.Info.Layers = make([]Layer, 0, count)
	for i := 0; i < int(count); i++ {
		layer, err := decodeLayerRecord(c, d.img, i)
		if err != nil {
			return err
		}
		lm.Info.Layers = append(lm.Info.Layers, layer)
	}
	lm.Info.ChannelData = Range{Start: c.Pos(), End: infoPayload.End}
	if lm.Info.ChannelData.Len() < 0 {
		return truncated("channel image data", buf.ErrShortRead)
	}
	return nil
}

// Info returns the API-facing document summary.
func (d *Document) Info() types.DocumentInfo {
	return types.DocumentInfo{
		Version:         d.Header.Version,
		Channels:        d.Header.Channels,
		Height:          d.Header.Height,
		Width:           d.Header.Width,
		Depth:           d.Header.Depth,
		ColorMode:       d.Header.Mode,
		ColorModeName:   format.ColorModeName(d.Header.Mode),
		LayerCount:      d.LayerMask.Info.LayerCount,
		HasTransparency: d.LayerMask.Info.HasTransparency,
		ColorModeLen:    d.ColorModeData.Len(),
		ResourcesLen:    d.ImageResources.Len(),
		LayerMaskLen:    d.LayerMask.Payload.Len(),
		ImageDataLen:    d.ImageData.Len(),
	}
}

// Summaries returns one LayerSummary per decoded layer.
func (d *Document) Summaries() []types.LayerSummary {
	layers := d.LayerMask.Info.Layers
	out := make([]types.LayerSummary, 0, len(layers))
	for i := range layers {
		l := &layers[i]
		out = append(out, types.LayerSummary{
			Index:       l.Index,
			Name:        l.Extra.Name,
			UnicodeName: l.UnicodeName(),
			BlendKey:    l.BlendKey,
			Opacity:     l.Opacity,
			IsText:      l.TextBlock() != nil,
			Top:         l.Top,
			Left:        l.Left,
			Bottom:      l.Bottom,
			Right:       l.Right,
		})
	}
	return out
}

func truncated(what string, err error) error {
	return types.Wrap(types.ErrTruncated, fmt.Errorf("%s: %w", what, err))
}

func mapFormatErr(err error) error {
	switch {
	case err == nil:
		return nil
	default:
		if isSignature(err) {
			return types.Wrap(types.ErrBadSignature, err)
		}
		return types.Wrap(types.ErrTruncated, err)
	}
}
