package edit

import (
	"github.com/psdtool/psdkit/internal/format"
	"github.com/psdtool/psdkit/internal/locate"
	"github.com/psdtool/psdkit/internal/reader"
	"github.com/psdtool/psdkit/pkg/types"
)

// PlanReplaceText computes the patch replacing search with replace across
// every text layer whose descriptor string equals search. When no layer
// matches structurally, the whole file is scanned and any hits are treated
// as one synthetic layer (index -1); when that also yields nothing the
// operation fails with ErrNotFound.
func PlanReplaceText(doc *reader.Document, search, replace string) (*PatchPlan, error) {
	if search == "" {
		return nil, types.Wrapf(types.ErrNotFound, "empty search string")
	}
	plan := &PatchPlan{Report: types.PatchReport{LayerIndex: -1}}

	layers := doc.LayerMask.Info.Layers
	matched := 0
	for i := range layers {
		l := &layers[i]
		tb := l.TextBlock()
		if tb == nil || tb.Text.Text != search {
			continue
		}
		matched++
		if matched == 1 {
			plan.Report.LayerIndex = l.Index
		} else {
			plan.Report.LayerIndex = -1
		}
		planLayerText(doc, l, layerLocations(doc, l, search), replace, plan)
	}
	if matched > 0 {
		return plan, nil
	}

	// Heuristic fallback: scan the whole image. Every hit is slot-preserving
	// since no descriptor length field is known for it.
	locs := locate.FindOccurrences(doc.Bytes(), 0, search, types.ProvFallback)
	if len(locs) == 0 {
		return nil, types.Wrapf(types.ErrNotFound, "%q", search)
	}
	planLayerText(doc, nil, locs, replace, plan)
	return plan, nil
}

// PlanReplaceTextByIndex sets the text of one layer, located by index, to
// newText. The search string is the layer's current descriptor text.
func PlanReplaceTextByIndex(doc *reader.Document, layerIndex int, newText string) (*PatchPlan, error) {
	layers := doc.LayerMask.Info.Layers
	if layerIndex < 0 || layerIndex >= len(layers) {
		return nil, types.Wrapf(types.ErrIndexOutOfRange, "layer %d of %d", layerIndex, len(layers))
	}
	l := &layers[layerIndex]
	tb := l.TextBlock()
	if tb == nil {
		return nil, types.Wrapf(types.ErrNotFound, "layer %d has no text", layerIndex)
	}
	plan := &PatchPlan{Report: types.PatchReport{LayerIndex: layerIndex}}
	planLayerText(doc, l, layerLocations(doc, l, tb.Text.Text), newText, plan)
	return plan, nil
}

// planLayerText turns one location set into patch operations. The
// authoritative descriptor location may change length: its payload is
// respliced together with its character-count field and the enclosing
// length chain adjusts. Fixed-stride and literal slots accept shorter
// replacements, zero-filled to the slot width. Every other encoding demands
// an exact width match and is otherwise skipped with SizeMismatch.
func planLayerText(doc *reader.Document, l *reader.Layer, locs []types.TextLocation, replace string, plan *PatchPlan) {
	// Overlapping hits are real: a stride pattern can start one byte into a
	// contiguous UTF-16 run of the same string. Only one rewrite may own any
	// byte, so the descriptor goes first and every later location that
	// overlaps an already-rewritten region is dropped as redundant.
	var written []types.TextLocation
	accept := func(loc types.TextLocation) { written = append(written, loc) }
	taken := func(loc types.TextLocation) bool {
		for _, w := range written {
			if overlaps(loc, w) {
				return true
			}
		}
		return false
	}

	for _, loc := range locs {
		if loc.Provenance != types.ProvDescriptor || l == nil {
			continue
		}
		planDescriptorText(doc, l, loc, replace, plan)
		accept(types.TextLocation{Offset: loc.Offset - 4, Length: loc.Length + 4})
	}

	for _, loc := range locs {
		if loc.Provenance == types.ProvDescriptor && l != nil {
			continue
		}
		if taken(loc) {
			continue
		}
		var ok bool
		switch loc.Encoding {
		case types.EncStride1, types.EncStride2, types.EncStride3, types.EncLiteral:
			ok = planFixedSlot(loc, replace, plan)
		default:
			ok = planStrictSlot(loc, replace, plan)
		}
		if ok {
			accept(loc)
		}
	}
}

func planDescriptorText(doc *reader.Document, l *reader.Layer, loc types.TextLocation, replace string, plan *PatchPlan) {
	tb := l.TextBlock()
	data := format.EncodeUnicodeString(replace)
	plan.Resizes = append(plan.Resizes, Resize{
		Offset:       loc.Offset - 4, // include the character-count field
		OldLen:       4 + loc.Length,
		Data:         data,
		LengthFields: append([]int{tb.LenOffset}, enclosingLengths(doc, l)...),
	})
	plan.Report.Updated = append(plan.Report.Updated, types.PatchedLocation{Location: loc})
}

// planFixedSlot rewrites a slot whose total width must not change. Shorter
// replacements are allowed; the freed character slots are zero filler.
func planFixedSlot(loc types.TextLocation, replace string, plan *PatchPlan) bool {
	pat, ok := locate.EncodeAs(replace, loc.Encoding)
	if !ok {
		plan.Report.Skipped = append(plan.Report.Skipped, types.SkippedLocation{
			Location: loc, Reason: types.SkipNotEncodable,
		})
		return false
	}
	if len(pat) > loc.Length {
		plan.Report.Skipped = append(plan.Report.Skipped, types.SkippedLocation{
			Location: loc, Reason: types.SkipSizeMismatch,
		})
		return false
	}
	data := make([]byte, loc.Length)
	copy(data, pat)
	plan.Splices = append(plan.Splices, Splice{Offset: loc.Offset, Data: data})
	plan.Report.Updated = append(plan.Report.Updated, types.PatchedLocation{Location: loc})
	return true
}

// planStrictSlot rewrites an encoding with no length field and no filler
// convention: only an exact-width replacement is safe.
func planStrictSlot(loc types.TextLocation, replace string, plan *PatchPlan) bool {
	pat, ok := locate.EncodeAs(replace, loc.Encoding)
	if !ok {
		plan.Report.Skipped = append(plan.Report.Skipped, types.SkippedLocation{
			Location: loc, Reason: types.SkipNotEncodable,
		})
		return false
	}
	if len(pat) != loc.Length {
		plan.Report.Skipped = append(plan.Report.Skipped, types.SkippedLocation{
			Location: loc, Reason: types.SkipSizeMismatch,
		})
		return false
	}
	plan.Splices = append(plan.Splices, Splice{Offset: loc.Offset, Data: pat})
	plan.Report.Updated = append(plan.Report.Updated, types.PatchedLocation{Location: loc})
	return true
}

func overlaps(a, b types.TextLocation) bool {
	return a.Offset < b.Offset+b.Length && b.Offset < a.Offset+a.Length
}
