package edit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psdtool/psdkit/internal/locate"
	"github.com/psdtool/psdkit/internal/testutil"
	"github.com/psdtool/psdkit/pkg/types"
)

func TestTextLayers(t *testing.T) {
	img := testutil.BuildLayers(
		testutil.LayerSpec{Name: "BG", UnicodeName: "BG"},
		testutil.LayerSpec{Name: "Caption", UnicodeName: "Caption", Text: "Hello", EngineLiteral: true, StrideCopy: 1},
	)
	doc := decode(t, img)

	infos := TextLayers(doc)
	require.Len(t, infos, 1)
	ti := infos[0]
	assert.Equal(t, 1, ti.Index)
	assert.Equal(t, "Caption", ti.Name)
	assert.Equal(t, "Hello", ti.Text)

	// Descriptor, literal, and stride copies must all be present, each once.
	var descriptor, literal, stride int
	for _, loc := range ti.Locations {
		switch {
		case loc.Provenance == types.ProvDescriptor:
			descriptor++
		case loc.Encoding == types.EncLiteral:
			literal++
		case loc.Encoding == types.EncStride1:
			stride++
		}
	}
	assert.Equal(t, 1, descriptor)
	assert.Equal(t, 1, literal)
	assert.GreaterOrEqual(t, stride, 1)

	// Locations arrive sorted by offset with no (offset, encoding) dup.
	seen := map[[2]int]bool{}
	last := -1
	for _, loc := range ti.Locations {
		assert.GreaterOrEqual(t, loc.Offset, last)
		last = loc.Offset
		k := [2]int{loc.Offset, int(loc.Encoding)}
		assert.False(t, seen[k], "duplicate %v", k)
		seen[k] = true
	}
}

func TestReplaceTextMultiEncodingConsistency(t *testing.T) {
	img := testutil.BuildLayers(
		testutil.LayerSpec{Name: "T", UnicodeName: "T", Text: "Hello", EngineLiteral: true, StrideCopy: 1},
	)
	doc := decode(t, img)

	before := locate.FindOccurrences(img, 0, "Hello", types.ProvScan)
	require.NotEmpty(t, before)

	plan, err := PlanReplaceText(doc, "Hello", "Hi")
	require.NoError(t, err)
	out, err := plan.Apply(img)
	require.NoError(t, err)

	// No encoding of the old text survives anywhere in the output.
	assert.Empty(t, locate.FindOccurrences(out, 0, "Hello", types.ProvScan))
	// The new text is at least as widely represented as the old one was.
	after := locate.FindOccurrences(out, 0, "Hi", types.ProvScan)
	assert.GreaterOrEqual(t, len(after), len(before))

	// The document stays structurally valid and carries the new text.
	redecoded := decode(t, out)
	tb := redecoded.LayerMask.Info.Layers[0].TextBlock()
	require.NotNil(t, tb)
	assert.Equal(t, "Hi", tb.Text.Text)
}

func TestReplaceTextGrowsDescriptor(t *testing.T) {
	img := testutil.BuildLayers(
		testutil.LayerSpec{Name: "T", UnicodeName: "T", Text: "Hi"},
	)
	doc := decode(t, img)

	plan, err := PlanReplaceText(doc, "Hi", "Hello there")
	require.NoError(t, err)
	out, err := plan.Apply(img)
	require.NoError(t, err)

	redecoded := decode(t, out)
	tb := redecoded.LayerMask.Info.Layers[0].TextBlock()
	require.NotNil(t, tb)
	assert.Equal(t, "Hello there", tb.Text.Text)
	assert.Greater(t, len(out), len(img))
}

func TestReplaceTextFixedSlotOverflow(t *testing.T) {
	img := testutil.BuildLayers(
		testutil.LayerSpec{Name: "T", UnicodeName: "T", Text: "Hi", StrideCopy: 2},
	)
	doc := decode(t, img)

	// "Hi" -> "Hello" cannot fit the stride slot; the descriptor location
	// still succeeds.
	plan, err := PlanReplaceText(doc, "Hi", "Hello")
	require.NoError(t, err)

	var strideSkipped bool
	for _, s := range plan.Report.Skipped {
		if s.Location.Encoding == types.EncStride2 {
			strideSkipped = true
			assert.Equal(t, types.SkipSizeMismatch, s.Reason)
		}
	}
	assert.True(t, strideSkipped, "stride location must be skipped: %+v", plan.Report)
	require.NotEmpty(t, plan.Report.Updated)

	// Locate the stride slot before applying; its bytes must be unchanged.
	var strideLoc types.TextLocation
	for _, loc := range locate.FindOccurrences(img, 0, "Hi", types.ProvScan) {
		if loc.Encoding == types.EncStride2 {
			strideLoc = loc
		}
	}
	require.NotZero(t, strideLoc.Length)

	out, err := plan.Apply(img)
	require.NoError(t, err)

	// The descriptor grew by 3 chars = 6 bytes; the stride slot sits after
	// it in the file, shifted but byte-identical.
	delta := len(out) - len(img)
	assert.Equal(t, 6, delta)
	assert.Equal(t,
		img[strideLoc.Offset:strideLoc.Offset+strideLoc.Length],
		out[strideLoc.Offset+delta:strideLoc.Offset+strideLoc.Length+delta])

	tb := decode(t, out).LayerMask.Info.Layers[0].TextBlock()
	require.NotNil(t, tb)
	assert.Equal(t, "Hello", tb.Text.Text)
}

func TestReplaceTextFallbackScan(t *testing.T) {
	// No text layer at all: the search term only exists as a raw single-byte
	// run inside an opaque data block.
	img := testutil.BuildLayers(
		testutil.LayerSpec{Name: "L", UnicodeName: "L", Text: "", AsciiCopy: true},
	)
	// Plant the needle in the composite image tail to force the
	// whole-file fallback.
	img = append(img, []byte("needle")...)
	doc := decode(t, img)

	plan, err := PlanReplaceText(doc, "needle", "thread")
	require.NoError(t, err)
	assert.Equal(t, -1, plan.Report.LayerIndex)
	require.NotEmpty(t, plan.Report.Updated)
	for _, u := range plan.Report.Updated {
		assert.Equal(t, types.ProvFallback, u.Location.Provenance)
	}

	out, err := plan.Apply(img)
	require.NoError(t, err)
	assert.Len(t, out, len(img), "fallback patches are always width-preserving")
	assert.Empty(t, locate.FindOccurrences(out, 0, "needle", types.ProvScan))
}

func TestReplaceTextNotFound(t *testing.T) {
	img := testutil.BuildLayers(testutil.LayerSpec{Name: "L"})
	doc := decode(t, img)
	_, err := PlanReplaceText(doc, "missing", "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrNotFound), "got %v", err)
}

func TestReplaceTextFallbackRejectsLongerStrict(t *testing.T) {
	img := testutil.BuildLayers(testutil.LayerSpec{Name: "L"})
	img = append(img, []byte("tiny")...)
	doc := decode(t, img)

	plan, err := PlanReplaceText(doc, "tiny", "enormous")
	require.NoError(t, err)
	assert.Empty(t, plan.Report.Updated)
	require.NotEmpty(t, plan.Report.Skipped)
	assert.Equal(t, types.SkipSizeMismatch, plan.Report.Skipped[0].Reason)

	out, err := plan.Apply(img)
	require.NoError(t, err)
	assert.Equal(t, img, out, "nothing patchable leaves the image untouched")
}

func TestReplaceTextByIndex(t *testing.T) {
	img := testutil.BuildLayers(
		testutil.LayerSpec{Name: "A", UnicodeName: "A", Text: "First"},
		testutil.LayerSpec{Name: "B", UnicodeName: "B", Text: "Second", EngineLiteral: true},
	)
	doc := decode(t, img)

	plan, err := PlanReplaceTextByIndex(doc, 1, "Absurd")
	require.NoError(t, err)
	assert.Equal(t, 1, plan.Report.LayerIndex)

	out, err := plan.Apply(img)
	require.NoError(t, err)

	redecoded := decode(t, out)
	assert.Equal(t, "First", redecoded.LayerMask.Info.Layers[0].TextBlock().Text.Text)
	assert.Equal(t, "Absurd", redecoded.LayerMask.Info.Layers[1].TextBlock().Text.Text)
}

func TestReplaceTextByIndexErrors(t *testing.T) {
	img := testutil.BuildLayers(
		testutil.LayerSpec{Name: "NoText", UnicodeName: "NoText"},
	)
	doc := decode(t, img)

	_, err := PlanReplaceTextByIndex(doc, 5, "x")
	assert.True(t, errors.Is(err, types.ErrIndexOutOfRange), "got %v", err)

	_, err = PlanReplaceTextByIndex(doc, 0, "x")
	assert.True(t, errors.Is(err, types.ErrNotFound), "got %v", err)
}
