package edit

import (
	"github.com/psdtool/psdkit/internal/locate"
	"github.com/psdtool/psdkit/internal/reader"
	"github.com/psdtool/psdkit/pkg/types"
)

// layerLocations returns every location of needle belonging to layer l: the
// structurally resolved descriptor item (when it matches) followed by a
// bounded multi-encoding scan of the layer's extra data. Structural
// locations are listed first so dedup keeps their provenance.
func layerLocations(doc *reader.Document, l *reader.Layer, needle string) []types.TextLocation {
	img := doc.Bytes()
	var locs []types.TextLocation
	if tb := l.TextBlock(); tb != nil && tb.Text.Text == needle {
		locs = append(locs, types.TextLocation{
			Offset:     tb.Text.TextStart,
			Length:     tb.Text.TextEnd - tb.Text.TextStart,
			Encoding:   types.EncUTF16BE,
			Provenance: types.ProvDescriptor,
		})
	}
	ex := l.Extra.Payload
	locs = append(locs, locate.FindOccurrences(img[ex.Start:ex.End], ex.Start, needle, types.ProvScan)...)
	return locate.SortByOffset(locate.Dedup(locs))
}

// TextLayers aggregates every text layer with the full location set that
// must be patched together for its string to stay consistent.
func TextLayers(doc *reader.Document) []types.TextLayerInfo {
	var out []types.TextLayerInfo
	layers := doc.LayerMask.Info.Layers
	for i := range layers {
		l := &layers[i]
		tb := l.TextBlock()
		if tb == nil {
			continue
		}
		out = append(out, types.TextLayerInfo{
			Index:     l.Index,
			Name:      l.Extra.Name,
			Text:      tb.Text.Text,
			Locations: layerLocations(doc, l, tb.Text.Text),
		})
	}
	return out
}
