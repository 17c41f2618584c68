package reader

import (
	"errors"
	"fmt"

	"github.com/psdtool/psdkit/internal/buf"
	"github.com/psdtool/psdkit/internal/format"
	"github.com/psdtool/psdkit/pkg/types"
)

func isSignature(err error) bool {
	return errors.Is(err, format.ErrSignatureMismatch)
}

// decodeLayerRecord parses one layer record at the cursor: bounding
// rectangle, channel table, blend mode, flag bytes, then the extra-data
// section. The channel table is skipped, not interpreted — channel pixel
// semantics are outside the scope of this codec.
func decodeLayerRecord(c *buf.Cursor, img []byte, index int) (Layer, error) {
	l := Layer{Index: index}
	l.Record.Start = c.Pos()

	var err error
	if l.Top, err = c.ReadI32(); err != nil {
		return l, truncated(layerField(index, "rectangle"), err)
	}
	if l.Left, err = c.ReadI32(); err != nil {
		return l, truncated(layerField(index, "rectangle"), err)
	}
	if l.Bottom, err = c.ReadI32(); err != nil {
		return l, truncated(layerField(index, "rectangle"), err)
	}
	if l.Right, err = c.ReadI32(); err != nil {
		return l, truncated(layerField(index, "rectangle"), err)
	}

	channelCount, err := c.ReadU16()
	if err != nil {
		return l, truncated(layerField(index, "channel count"), err)
	}
	if _, err := buf.CheckListBounds(c.Len(), c.Pos(), int(channelCount), format.ChannelEntrySize); err != nil {
		return l, truncated(layerField(index, "channel table"), buf.ErrShortRead)
	}
	l.Channels = make([]ChannelEntry, channelCount)
	for i := range l.Channels {
		id, _ := c.ReadI16()
		length, _ := c.ReadU32()
		l.Channels[i] = ChannelEntry{ID: id, Length: length}
	}

	sig, err := c.ReadBytes(4)
	if err != nil {
		return l, truncated(layerField(index, "blend signature"), err)
	}
	if string(sig) != string(format.BlockSignature) {
		return l, types.Wrap(types.ErrTruncated,
			fmt.Errorf("%s: %w", layerField(index, "blend signature"), format.ErrSignatureMismatch))
	}
	l.BlendSig = string(sig)
	key, err := c.ReadBytes(4)
	if err != nil {
		return l, truncated(layerField(index, "blend key"), err)
	}
	l.BlendKey = string(key)

	flagBytes, err := c.ReadBytes(4)
	if err != nil {
		return l, truncated(layerField(index, "flags"), err)
	}
	l.Opacity, l.Clipping, l.Flags, l.Filler = flagBytes[0], flagBytes[1], flagBytes[2], flagBytes[3]

	if err := decodeExtraData(c, img, index, &l.Extra); err != nil {
		return l, err
	}
	l.Record.End = c.Pos()
	return l, nil
}

func decodeExtraData(c *buf.Cursor, img []byte, index int, ex *ExtraData) error {
	ex.LenOffset = c.Pos()
	payload, err := readSizedSection(c, layerField(index, "extra data"))
	if err != nil {
		return err
	}
	ex.Payload = payload
	c.Seek(payload.Start)

	// Mask data, blending ranges, and the name field are mandatory; their
	// declared sizes must stay inside the extra-data section.
	if ex.Mask, err = readSizedSection(c, layerField(index, "mask data")); err != nil {
		return err
	}
	if ex.BlendingRanges, err = readSizedSection(c, layerField(index, "blending ranges")); err != nil {
		return err
	}
	if ex.BlendingRanges.End > payload.End {
		return truncated(layerField(index, "extra data"), buf.ErrShortRead)
	}

	ex.NameOffset = c.Pos()
	name, fieldSize, err := format.ParsePascalName(img, ex.NameOffset)
	if err != nil {
		return truncated(layerField(index, "name"), err)
	}
	if ex.NameOffset+fieldSize > payload.End {
		return truncated(layerField(index, "name"), buf.ErrShortRead)
	}
	ex.Name = name
	ex.NameFieldSize = fieldSize
	c.Seek(ex.NameOffset + fieldSize)

	decodeInfoBlocks(img, c.Pos(), payload.End, ex)
	c.Seek(payload.End)
	return nil
}

// decodeInfoBlocks scans [off, bound) for additional-info blocks. Recognized
// keys get an interpretation attached; everything else is retained as an
// opaque range. A block whose interpretation fails to parse stays opaque —
// per-block damage never fails the document.
func decodeInfoBlocks(img []byte, off, bound int, ex *ExtraData) {
	for {
		blk, next, ok := format.NextBlock(img, off, bound)
		if !ok {
			return
		}
		ib := InfoBlock{Block: blk}
		switch blk.Key {
		case format.KeyUnicodeName:
			if u, err := format.ParseUnicodeString(img[:blk.PayloadEnd], blk.PayloadStart); err == nil {
				ib.Unicode = &u
			}
		case format.KeyTypeTool:
			if u, ok := FindDescriptorText(img, blk); ok {
				ib.Text = &u
			}
		}
		ex.Blocks = append(ex.Blocks, ib)
		off = next
	}
}

func layerField(index int, what string) string {
	return fmt.Sprintf("layer %d %s", index, what)
}
