package edit

import (
	"github.com/psdtool/psdkit/internal/buf"
	"github.com/psdtool/psdkit/internal/format"
	"github.com/psdtool/psdkit/internal/reader"
	"github.com/psdtool/psdkit/pkg/types"
)

// Reconstruct re-emits the whole document with one layer's name substituted.
// Every byte outside the target layer's name field and Unicode-name block is
// stream-copied unmodified: all other layers, all channel tables, the shared
// channel image data run, the global mask tail, and the sibling sections
// before and after the layer-and-mask section. Each enclosing length field
// is recomputed from the actual emitted byte count of its payload and
// backpatched, cascading outward through exactly the chain that contains the
// modified field.
func Reconstruct(img []byte, layerIndex int, newName string, report *types.PatchReport) ([]byte, error) {
	doc, err := reader.Decode(img)
	if err != nil {
		return nil, err
	}
	layers := doc.LayerMask.Info.Layers
	if layerIndex < 0 || layerIndex >= len(layers) {
		return nil, types.Wrapf(types.ErrIndexOutOfRange, "layer %d of %d", layerIndex, len(layers))
	}
	nameField, err := format.EncodePascalName(newName)
	if err != nil {
		return nil, types.Wrap(types.ErrInvalidName, err)
	}

	lm := &doc.LayerMask
	info := &lm.Info

	// Everything before the layer-and-mask length field is byte-identical.
	out := make([]byte, 0, len(img)+len(nameField))
	out = append(out, img[:lm.LenOffset]...)

	lmLenAt := len(out)
	out = append(out, 0, 0, 0, 0)
	lmStart := len(out)

	liLenAt := len(out)
	out = append(out, 0, 0, 0, 0)
	liStart := len(out)

	count := info.LayerCount
	if info.HasTransparency {
		count = -count
	}
	var cnt [2]byte
	buf.PutU16BE(cnt[:], uint16(int16(count)))
	out = append(out, cnt[:]...)

	for i := range layers {
		l := &layers[i]
		if i != layerIndex {
			out = append(out, img[l.Record.Start:l.Record.End]...)
			continue
		}
		out = emitRenamedRecord(out, img, l, nameField, newName, report)
	}

	out = append(out, info.ChannelData.Bytes(img)...)
	backpatch(out, liLenAt, len(out)-liStart)

	out = append(out, lm.GlobalMask.Bytes(img)...)
	backpatch(out, lmLenAt, len(out)-lmStart)

	out = append(out, doc.ImageData.Bytes(img)...)

	if report != nil {
		report.Rebuilt = true
	}
	return out, nil
}

// emitRenamedRecord re-emits the target layer: the fixed prefix (rectangle
// through filler) verbatim, then the extra data with the new name field, the
// substituted Unicode-name block, and every other block copied in place —
// including any stray bytes between blocks.
func emitRenamedRecord(out, img []byte, l *reader.Layer, nameField []byte, newName string, report *types.PatchReport) []byte {
	out = append(out, img[l.Record.Start:l.Extra.LenOffset]...)

	exLenAt := len(out)
	out = append(out, 0, 0, 0, 0)
	exStart := len(out)

	// Mask data and blending ranges keep their own length prefixes.
	out = append(out, img[l.Extra.Mask.Start-4:l.Extra.Mask.End]...)
	out = append(out, img[l.Extra.BlendingRanges.Start-4:l.Extra.BlendingRanges.End]...)

	nameAt := len(out)
	out = append(out, nameField...)
	reportUpdated(report, types.TextLocation{
		Offset:     nameAt,
		Length:     len(nameField),
		Encoding:   types.EncSingleByte,
		Provenance: types.ProvPascalName,
	})

	uniPayload := format.EncodeUnicodeString(newName)
	wroteUnicode := false
	pos := l.Extra.NameOffset + l.Extra.NameFieldSize
	for _, b := range l.Extra.Blocks {
		out = append(out, img[pos:b.Start]...) // inter-block bytes, if any
		pos = b.PayloadEnd
		if b.Unicode != nil {
			out = append(out, format.EncodeBlockHeader(format.KeyUnicodeName, len(uniPayload))...)
			uniAt := len(out)
			out = append(out, uniPayload...)
			wroteUnicode = true
			reportUpdated(report, types.TextLocation{
				Offset:     uniAt,
				Length:     len(uniPayload),
				Encoding:   types.EncUTF16BE,
				Provenance: types.ProvUnicodeName,
			})
			continue
		}
		blockAt := len(out)
		out = append(out, img[b.Start:b.PayloadEnd]...)
		if b.Key == format.KeyRawData || b.Key == format.KeyMetadata {
			rewriteNameRefs(out[blockAt:], img, l, b, newName, report)
		}
	}
	out = append(out, img[pos:l.Extra.Payload.End]...)

	if !wroteUnicode {
		out = append(out, format.EncodeBlockHeader(format.KeyUnicodeName, len(uniPayload))...)
		out = append(out, uniPayload...)
	}

	backpatch(out, exLenAt, len(out)-exStart)
	return out
}

// rewriteNameRefs applies the conservative duplicate-name rewrite to a block
// just copied into the output. emitted aliases the copied block bytes, so
// local offsets within the block translate directly.
func rewriteNameRefs(emitted, img []byte, l *reader.Layer, b reader.InfoBlock, newName string, report *types.PatchReport) {
	newText := format.EncodeUTF16BE(newName)
	headerLen := b.PayloadStart - b.Start
	for _, ref := range reader.FindNameRefs(img, b.Block) {
		if ref.Text != l.Extra.Name {
			continue
		}
		loc := types.TextLocation{
			Offset:     ref.TextStart,
			Length:     ref.TextEnd - ref.TextStart,
			Encoding:   types.EncUTF16BE,
			Provenance: types.ProvNameRef,
		}
		if len(newText) != loc.Length {
			if report != nil {
				report.Skipped = append(report.Skipped, types.SkippedLocation{
					Location: loc, Reason: types.SkipSizeMismatch,
				})
			}
			continue
		}
		local := headerLen + (ref.TextStart - b.PayloadStart)
		copy(emitted[local:], newText)
		reportUpdated(report, loc)
	}
}

func reportUpdated(report *types.PatchReport, loc types.TextLocation) {
	if report != nil {
		report.Updated = append(report.Updated, types.PatchedLocation{Location: loc})
	}
}

func backpatch(out []byte, at, length int) {
	buf.PutU32BE(out[at:], uint32(length))
}
