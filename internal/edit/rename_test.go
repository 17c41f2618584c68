package edit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psdtool/psdkit/internal/format"
	"github.com/psdtool/psdkit/internal/reader"
	"github.com/psdtool/psdkit/internal/testutil"
	"github.com/psdtool/psdkit/pkg/types"
)

func decode(t *testing.T, img []byte) *reader.Document {
	t.Helper()
	doc, err := reader.Decode(img)
	require.NoError(t, err)
	return doc
}

func TestRenameInPlaceSamePaddedWidth(t *testing.T) {
	// pad4(1+1) == pad4(1+2) == 4: "A" -> "AB" stays in place.
	img := testutil.BuildLayers(testutil.LayerSpec{Name: "A", UnicodeName: "A"})
	doc := decode(t, img)

	plan, err := PlanRename(doc, 0, "AB")
	require.NoError(t, err)
	assert.True(t, plan.InPlace())

	out, err := plan.Apply(img)
	require.NoError(t, err)

	redecoded := decode(t, out)
	l := redecoded.LayerMask.Info.Layers[0]
	assert.Equal(t, "AB", l.Extra.Name)
	assert.Equal(t, "AB", l.UnicodeName())
	// The ASCII field width did not change, but the luni payload grew by
	// one UTF-16 unit.
	assert.Equal(t, len(img)+2, len(out))
}

func TestRenameTriggersReconstruction(t *testing.T) {
	// pad4(1+1) = 4 but pad4(1+4) = 8: "A" -> "ABCD" must rebuild.
	img := testutil.BuildLayers(
		testutil.LayerSpec{Name: "A", UnicodeName: "A"},
		testutil.LayerSpec{Name: "Other", UnicodeName: "Other"},
	)
	doc := decode(t, img)

	plan, err := PlanRename(doc, 0, "ABCD")
	require.NoError(t, err)
	assert.False(t, plan.InPlace())
	assert.True(t, plan.Report.Rebuilt)

	out, err := plan.Apply(img)
	require.NoError(t, err)

	redecoded := decode(t, out)
	require.Equal(t, 2, redecoded.LayerMask.Info.LayerCount)
	assert.Equal(t, "ABCD", redecoded.LayerMask.Info.Layers[0].Extra.Name)
	assert.Equal(t, "ABCD", redecoded.LayerMask.Info.Layers[0].UnicodeName())

	// The untouched layer's record is byte-identical.
	origOther := doc.LayerMask.Info.Layers[1].Record.Bytes(img)
	newOther := redecoded.LayerMask.Info.Layers[1].Record.Bytes(out)
	assert.Equal(t, origOther, newOther)
}

func TestRenamePaddingInvariant(t *testing.T) {
	img := testutil.BuildLayers(testutil.LayerSpec{Name: "Background", UnicodeName: "Background"})
	for _, name := range []string{"", "X", "Ab", "Abc", "Abcd", "A longer layer name"} {
		doc := decode(t, img)
		plan, err := PlanRename(doc, 0, name)
		require.NoError(t, err, "name %q", name)
		out, err := plan.Apply(img)
		require.NoError(t, err, "name %q", name)

		l := decode(t, out).LayerMask.Info.Layers[0]
		assert.Equal(t, name, l.Extra.Name, "name %q", name)
		assert.Zero(t, l.Extra.NameFieldSize%4, "field for %q not 4-aligned", name)
		assert.Equal(t, format.PascalFieldSize(len(name)), l.Extra.NameFieldSize, "name %q", name)
	}
}

func TestRenameCascadingLengths(t *testing.T) {
	img := testutil.Build(testutil.DocSpec{
		Layers: []testutil.LayerSpec{
			{Name: "Background", UnicodeName: "Background"},
			{Name: "Text", UnicodeName: "Text"},
			{Name: "Shadow", UnicodeName: "Shadow"},
		},
		GlobalMask: []byte{1, 2, 3, 4},
		Resources:  []byte("res"),
		ImageData:  []byte{5, 5},
	})
	doc := decode(t, img)

	plan, err := PlanRename(doc, 1, "Title")
	require.NoError(t, err)
	out, err := plan.Apply(img)
	require.NoError(t, err)

	redecoded := decode(t, out)
	lm := redecoded.LayerMask
	// Every enclosing length field equals its payload's byte length.
	assert.Equal(t, uint32(lm.Payload.Len()), u32at(out, lm.LenOffset))
	assert.Equal(t, uint32(lm.Info.Payload.Len()), u32at(out, lm.Info.LenOffset))
	for i := range lm.Info.Layers {
		l := &lm.Info.Layers[i]
		assert.Equal(t, uint32(l.Extra.Payload.Len()), u32at(out, l.Extra.LenOffset))
	}

	// Sibling sections are byte-identical, length prefix included.
	assert.Equal(t, img[:doc.LayerMask.LenOffset], out[:redecoded.LayerMask.LenOffset])
	assert.Equal(t, doc.ImageData.Bytes(img), redecoded.ImageData.Bytes(out))
	assert.Equal(t, doc.LayerMask.GlobalMask.Bytes(img), redecoded.LayerMask.GlobalMask.Bytes(out))

	// Layers 0 and 2 are untouched; layer 1 carries the new name.
	assert.Equal(t, "Background", lm.Info.Layers[0].Extra.Name)
	assert.Equal(t, "Title", lm.Info.Layers[1].Extra.Name)
	assert.Equal(t, "Shadow", lm.Info.Layers[2].Extra.Name)
	assert.Equal(t,
		doc.LayerMask.Info.Layers[0].Record.Bytes(img),
		lm.Info.Layers[0].Record.Bytes(out))
	assert.Equal(t,
		doc.LayerMask.Info.Layers[2].Record.Bytes(img),
		lm.Info.Layers[2].Record.Bytes(out))
}

func TestRenameOutOfRange(t *testing.T) {
	img := testutil.BuildLayers(testutil.LayerSpec{Name: "L"})
	doc := decode(t, img)
	_, err := PlanRename(doc, 1, "X")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrIndexOutOfRange), "got %v", err)
	_, err = PlanRename(doc, -1, "X")
	assert.True(t, errors.Is(err, types.ErrIndexOutOfRange))
}

func TestRenameInvalidName(t *testing.T) {
	img := testutil.BuildLayers(testutil.LayerSpec{Name: "L"})
	doc := decode(t, img)
	_, err := PlanRename(doc, 0, string(make([]byte, 300)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidName), "got %v", err)
}

func TestRenameAddsUnicodeBlockWhenMissing(t *testing.T) {
	img := testutil.BuildLayers(testutil.LayerSpec{Name: "Old"}) // no luni
	doc := decode(t, img)
	require.Nil(t, doc.LayerMask.Info.Layers[0].UnicodeBlock())

	plan, err := PlanRename(doc, 0, "New")
	require.NoError(t, err)
	assert.True(t, plan.InPlace())
	out, err := plan.Apply(img)
	require.NoError(t, err)

	l := decode(t, out).LayerMask.Info.Layers[0]
	assert.Equal(t, "New", l.Extra.Name)
	assert.Equal(t, "New", l.UnicodeName())
}

func TestRenameNameRefEqualWidth(t *testing.T) {
	img := testutil.BuildLayers(testutil.LayerSpec{Name: "Title", UnicodeName: "Title", NameRef: true})
	doc := decode(t, img)

	// "Crown" has the same UTF-16 byte length as "Title": the duplicate
	// reference is rewritten.
	plan, err := PlanRename(doc, 0, "Crown")
	require.NoError(t, err)
	require.True(t, plan.InPlace())
	assert.Empty(t, plan.Report.Skipped)

	out, err := plan.Apply(img)
	require.NoError(t, err)
	redecoded := decode(t, out)
	l := redecoded.LayerMask.Info.Layers[0]
	for _, b := range l.Extra.Blocks {
		if b.Key == format.KeyMetadata {
			refs := reader.FindNameRefs(out, b.Block)
			require.Len(t, refs, 1)
			assert.Equal(t, "Crown", refs[0].Text)
		}
	}
}

func TestRenameNameRefMismatchedWidthSkipped(t *testing.T) {
	img := testutil.BuildLayers(testutil.LayerSpec{Name: "Abc", UnicodeName: "Abc", NameRef: true})
	doc := decode(t, img)

	// Same padded Pascal width (pad4(4) == pad4(3)... both 4) but a longer
	// UTF-16 form: the name ref must be skipped, not corrupted.
	plan, err := PlanRename(doc, 0, "Ab")
	require.NoError(t, err)
	require.True(t, plan.InPlace())
	require.Len(t, plan.Report.Skipped, 1)
	assert.Equal(t, types.SkipSizeMismatch, plan.Report.Skipped[0].Reason)
	assert.Equal(t, types.ProvNameRef, plan.Report.Skipped[0].Location.Provenance)

	out, err := plan.Apply(img)
	require.NoError(t, err)
	redecoded := decode(t, out)
	l := redecoded.LayerMask.Info.Layers[0]
	assert.Equal(t, "Ab", l.Extra.Name)
	for _, b := range l.Extra.Blocks {
		if b.Key == format.KeyMetadata {
			refs := reader.FindNameRefs(out, b.Block)
			require.Len(t, refs, 1)
			assert.Equal(t, "Abc", refs[0].Text, "skipped ref keeps old bytes")
		}
	}
}

func TestReconstructIdentity(t *testing.T) {
	img := testutil.BuildLayers(
		testutil.LayerSpec{Name: "Background", UnicodeName: "Background"},
		testutil.LayerSpec{Name: "Text", UnicodeName: "Text", Text: "Hello", EngineLiteral: true},
	)
	// Reconstructing with the unchanged name reproduces the input
	// byte-for-byte.
	out, err := Reconstruct(img, 0, "Background", nil)
	require.NoError(t, err)
	assert.Equal(t, img, out)
}

func TestEmptyPlanRoundTrip(t *testing.T) {
	img := testutil.BuildLayers(testutil.LayerSpec{Name: "L", UnicodeName: "L"})
	plan := &PatchPlan{}
	out, err := plan.Apply(img)
	require.NoError(t, err)
	assert.Equal(t, img, out)
	assert.NotSame(t, &img[0], &out[0], "apply must not alias the source")
}

func u32at(b []byte, off int) uint32 {
	return uint32(b[off])<<24 | uint32(b[off+1])<<16 | uint32(b[off+2])<<8 | uint32(b[off+3])
}
