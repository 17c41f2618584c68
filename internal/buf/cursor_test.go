package buf

import (
	"bytes"
	"errors"
	"testing"
)

func TestCursorReads(t *testing.T) {
	data := []byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x02, 0xff, 0xfe, 'a', 'b'}
	c := NewCursor(data)

	v16, err := c.ReadU16()
	if err != nil || v16 != 1 {
		t.Fatalf("ReadU16 = %d, %v", v16, err)
	}
	v32, err := c.ReadU32()
	if err != nil || v32 != 2 {
		t.Fatalf("ReadU32 = %d, %v", v32, err)
	}
	i16, err := c.ReadI16()
	if err != nil || i16 != -2 {
		t.Fatalf("ReadI16 = %d, %v", i16, err)
	}
	bs, err := c.ReadBytes(2)
	if err != nil || !bytes.Equal(bs, []byte("ab")) {
		t.Fatalf("ReadBytes = %q, %v", bs, err)
	}
	if c.Remaining() != 0 {
		t.Fatalf("Remaining = %d, want 0", c.Remaining())
	}
	if _, err := c.ReadByte(); !errors.Is(err, ErrShortRead) {
		t.Fatalf("read past end: %v, want ErrShortRead", err)
	}
}

func TestCursorSeekUnchecked(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3})
	// Seeking to (or past) the end is legal; the read reports the failure.
	c.Seek(3)
	if c.Remaining() != 0 {
		t.Fatalf("Remaining = %d, want 0", c.Remaining())
	}
	if _, err := c.ReadByte(); !errors.Is(err, ErrShortRead) {
		t.Fatalf("expected ErrShortRead, got %v", err)
	}
	c.Seek(1)
	b, err := c.ReadByte()
	if err != nil || b != 2 {
		t.Fatalf("ReadByte after seek = %d, %v", b, err)
	}
}

func TestCursorWrites(t *testing.T) {
	data := make([]byte, 8)
	c := NewCursor(data)
	if err := c.WriteBytes([]byte{0xaa, 0xbb}); err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}
	if c.Pos() != 2 {
		t.Fatalf("Pos = %d, want 2", c.Pos())
	}
	if err := c.WriteU32At(4, 0x01020304); err != nil {
		t.Fatalf("WriteU32At: %v", err)
	}
	if U32BE(data[4:]) != 0x01020304 {
		t.Fatalf("backpatch missed: % x", data)
	}
	if err := c.WriteU32At(6, 1); !errors.Is(err, ErrShortRead) {
		t.Fatalf("out-of-bounds backpatch: %v, want ErrShortRead", err)
	}
}

func TestCursorSkip(t *testing.T) {
	c := NewCursor(make([]byte, 4))
	if err := c.Skip(4); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if err := c.Skip(1); !errors.Is(err, ErrShortRead) {
		t.Fatalf("Skip past end: %v, want ErrShortRead", err)
	}
	if err := c.Skip(-1); !errors.Is(err, ErrShortRead) {
		t.Fatalf("negative Skip: %v, want ErrShortRead", err)
	}
}
