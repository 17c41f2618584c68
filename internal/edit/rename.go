package edit

import (
	"errors"

	"github.com/psdtool/psdkit/internal/format"
	"github.com/psdtool/psdkit/internal/reader"
	"github.com/psdtool/psdkit/pkg/types"
)

// PlanRename computes the patch for renaming one layer.
//
// Decision rule: when the Pascal-padded width of the new name equals the old
// field width, the ASCII field is overwritten in place. The Unicode-name
// block never pads, so even an "in-place" rename rewrites its length and
// character-count fields — a resize of the block payload with the enclosing
// length chain adjusted. Descriptor-embedded duplicate name references are
// rewritten only when their stored length exactly matches the new name;
// mismatches are reported, never written. A changed Pascal width forces full
// reconstruction instead.
func PlanRename(doc *reader.Document, layerIndex int, newName string) (*PatchPlan, error) {
	layers := doc.LayerMask.Info.Layers
	if layerIndex < 0 || layerIndex >= len(layers) {
		return nil, types.Wrapf(types.ErrIndexOutOfRange, "layer %d of %d", layerIndex, len(layers))
	}
	l := &layers[layerIndex]

	nameField, err := format.EncodePascalName(newName)
	if err != nil {
		if errors.Is(err, format.ErrNameTooLong) || errors.Is(err, format.ErrNotASCII) {
			return nil, types.Wrap(types.ErrInvalidName, err)
		}
		return nil, err
	}

	plan := &PatchPlan{Report: types.PatchReport{LayerIndex: layerIndex}}
	if len(nameField) != l.Extra.NameFieldSize {
		plan.Rebuild = &RebuildRequest{LayerIndex: layerIndex, NewName: newName}
		plan.Report.Rebuilt = true
		return plan, nil
	}

	plan.Splices = append(plan.Splices, Splice{Offset: l.Extra.NameOffset, Data: nameField})
	plan.Report.Updated = append(plan.Report.Updated, types.PatchedLocation{
		Location: types.TextLocation{
			Offset:     l.Extra.NameOffset,
			Length:     len(nameField),
			Encoding:   types.EncSingleByte,
			Provenance: types.ProvPascalName,
		},
	})

	planUnicodeName(doc, l, newName, plan)
	planNameRefs(doc, l, newName, plan)
	return plan, nil
}

// planUnicodeName rewrites (or appends) the layer's luni block. The payload
// is a resize because the UTF-16 byte length tracks the new name; every
// enclosing length field joins the adjustment chain.
func planUnicodeName(doc *reader.Document, l *reader.Layer, newName string, plan *PatchPlan) {
	payload := format.EncodeUnicodeString(newName)
	chain := enclosingLengths(doc, l)

	if ub := l.UnicodeBlock(); ub != nil {
		plan.Resizes = append(plan.Resizes, Resize{
			Offset:       ub.PayloadStart,
			OldLen:       ub.Len(),
			Data:         payload,
			LengthFields: append([]int{ub.LenOffset}, chain...),
		})
		plan.Report.Updated = append(plan.Report.Updated, types.PatchedLocation{
			Location: types.TextLocation{
				Offset:     ub.PayloadStart,
				Length:     len(payload),
				Encoding:   types.EncUTF16BE,
				Provenance: types.ProvUnicodeName,
			},
		})
		return
	}

	// No luni block: append one at the end of the extra data. The new block
	// brings its own header, so only the enclosing chain adjusts.
	blockBytes := append(format.EncodeBlockHeader(format.KeyUnicodeName, len(payload)), payload...)
	plan.Resizes = append(plan.Resizes, Resize{
		Offset:       l.Extra.Payload.End,
		OldLen:       0,
		Data:         blockBytes,
		LengthFields: chain,
	})
	plan.Report.Updated = append(plan.Report.Updated, types.PatchedLocation{
		Location: types.TextLocation{
			Offset:     l.Extra.Payload.End,
			Length:     len(blockBytes),
			Encoding:   types.EncUTF16BE,
			Provenance: types.ProvUnicodeName,
		},
	})
}

// planNameRefs rewrites duplicate name references in tdta/shmd payloads,
// conservatively: only byte-for-byte equal widths are touched.
func planNameRefs(doc *reader.Document, l *reader.Layer, newName string, plan *PatchPlan) {
	img := doc.Bytes()
	oldName := l.Extra.Name
	newText := format.EncodeUTF16BE(newName)
	for _, b := range l.Extra.Blocks {
		if b.Key != format.KeyRawData && b.Key != format.KeyMetadata {
			continue
		}
		for _, ref := range reader.FindNameRefs(img, b.Block) {
			if ref.Text != oldName {
				continue
			}
			loc := types.TextLocation{
				Offset:     ref.TextStart,
				Length:     ref.TextEnd - ref.TextStart,
				Encoding:   types.EncUTF16BE,
				Provenance: types.ProvNameRef,
			}
			if len(newText) != loc.Length {
				plan.Report.Skipped = append(plan.Report.Skipped, types.SkippedLocation{
					Location: loc,
					Reason:   types.SkipSizeMismatch,
				})
				continue
			}
			plan.Splices = append(plan.Splices, Splice{Offset: loc.Offset, Data: newText})
			plan.Report.Updated = append(plan.Report.Updated, types.PatchedLocation{Location: loc})
		}
	}
}

// enclosingLengths returns the offsets of the length fields that enclose a
// layer's extra data, innermost first: extra data, layer info, layer and
// mask info. Sibling sections never join the chain.
func enclosingLengths(doc *reader.Document, l *reader.Layer) []int {
	return []int{
		l.Extra.LenOffset,
		doc.LayerMask.Info.LenOffset,
		doc.LayerMask.LenOffset,
	}
}
