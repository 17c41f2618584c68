package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psdtool/psdkit/internal/format"
	"github.com/psdtool/psdkit/internal/testutil"
)

func decodeSingle(t *testing.T, spec testutil.LayerSpec) (*Document, *Layer) {
	t.Helper()
	img := testutil.BuildLayers(spec)
	doc, err := Decode(img)
	require.NoError(t, err)
	require.Len(t, doc.LayerMask.Info.Layers, 1)
	return doc, &doc.LayerMask.Info.Layers[0]
}

func TestFindDescriptorText(t *testing.T) {
	doc, l := decodeSingle(t, testutil.LayerSpec{Name: "T", Text: "Headline"})
	tb := l.TextBlock()
	require.NotNil(t, tb)
	assert.Equal(t, "Headline", tb.Text.Text)

	// The recorded range must point at the UTF-16BE payload exactly.
	img := doc.Bytes()
	raw := img[tb.Text.TextStart:tb.Text.TextEnd]
	assert.Equal(t, format.EncodeUTF16BE("Headline"), raw)
}

func TestFindDescriptorTextAbsent(t *testing.T) {
	blkImg := append(format.EncodeBlockHeader(format.KeyTypeTool, 8), make([]byte, 8)...)
	blk, _, ok := format.NextBlock(blkImg, 0, len(blkImg))
	require.True(t, ok)
	_, found := FindDescriptorText(blkImg, blk)
	assert.False(t, found)
}

func TestFindDescriptorTextSkipsMalformedHit(t *testing.T) {
	// First marker is followed by a count that runs past the payload; the
	// scanner must move on and settle on the well-formed item.
	var payload []byte
	payload = append(payload, 0, 0, 0, 0)
	payload = append(payload, "Txt TEXT"...)
	payload = append(payload, 0xff, 0xff, 0xff, 0xff) // absurd count
	payload = append(payload, 0, 0, 0, 0)
	payload = append(payload, "Txt TEXT"...)
	utf := format.EncodeUTF16BE("ok")
	payload = append(payload, 0, 0, 0, 2)
	payload = append(payload, utf...)

	img := append(format.EncodeBlockHeader(format.KeyTypeTool, len(payload)), payload...)
	blk, _, ok := format.NextBlock(img, 0, len(img))
	require.True(t, ok)

	u, found := FindDescriptorText(img, blk)
	require.True(t, found)
	assert.Equal(t, "ok", u.Text)
}

func TestFindNameRefs(t *testing.T) {
	doc, l := decodeSingle(t, testutil.LayerSpec{Name: "Title", NameRef: true})
	var refs []format.UnicodeString
	for _, b := range l.Extra.Blocks {
		if b.Key == format.KeyMetadata {
			refs = FindNameRefs(doc.Bytes(), b.Block)
		}
	}
	require.Len(t, refs, 1)
	assert.Equal(t, "Title", refs[0].Text)
}

func TestFindNameRefsNone(t *testing.T) {
	img := append(format.EncodeBlockHeader(format.KeyRawData, 6), 1, 2, 3, 4, 5, 6)
	blk, _, ok := format.NextBlock(img, 0, len(img))
	require.True(t, ok)
	assert.Empty(t, FindNameRefs(img, blk))
}
