package buf

import "errors"

// ErrShortRead indicates a cursor read extended past the end of the data.
var ErrShortRead = errors.New("buf: read past end of data")

// Cursor is a position-tracked big-endian reader/writer over an in-memory
// image. All multi-byte integers are big-endian; the container format
// requires this throughout, so little-endian accessors are deliberately
// absent. Seek is unchecked against the image size because zero-length
// sections legally place the cursor exactly at a section boundary; reads
// perform the bounds check instead.
type Cursor struct {
	b   []byte
	off int
}

// NewCursor returns a cursor positioned at the start of b.
func NewCursor(b []byte) *Cursor {
	return &Cursor{b: b}
}

// Pos returns the current absolute offset.
func (c *Cursor) Pos() int { return c.off }

// Seek moves the cursor to the absolute offset off.
func (c *Cursor) Seek(off int) { c.off = off }

// Remaining returns the number of bytes between the cursor and end of data.
func (c *Cursor) Remaining() int {
	if c.off >= len(c.b) {
		return 0
	}
	return len(c.b) - c.off
}

// Len returns the total size of the underlying image.
func (c *Cursor) Len() int { return len(c.b) }

// Bytes returns the underlying image.
func (c *Cursor) Bytes() []byte { return c.b }

// Skip advances the cursor n bytes without reading them.
func (c *Cursor) Skip(n int) error {
	if n < 0 || !Has(c.b, c.off, n) {
		return ErrShortRead
	}
	c.off += n
	return nil
}

// ReadByte reads a single byte.
func (c *Cursor) ReadByte() (byte, error) {
	if !Has(c.b, c.off, 1) {
		return 0, ErrShortRead
	}
	v := c.b[c.off]
	c.off++
	return v, nil
}

// ReadBytes reads n bytes and returns a sub-slice of the image (no copy).
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	s, ok := Slice(c.b, c.off, n)
	if !ok {
		return nil, ErrShortRead
	}
	c.off += n
	return s, nil
}

// ReadU16 reads a big-endian uint16.
func (c *Cursor) ReadU16() (uint16, error) {
	s, err := c.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return U16BE(s), nil
}

// ReadI16 reads a big-endian int16.
func (c *Cursor) ReadI16() (int16, error) {
	v, err := c.ReadU16()
	return int16(v), err
}

// ReadU32 reads a big-endian uint32.
func (c *Cursor) ReadU32() (uint32, error) {
	s, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return U32BE(s), nil
}

// ReadI32 reads a big-endian int32.
func (c *Cursor) ReadI32() (int32, error) {
	v, err := c.ReadU32()
	return int32(v), err
}

// WriteBytes overwrites len(p) bytes at the cursor and advances past them.
func (c *Cursor) WriteBytes(p []byte) error {
	if !Has(c.b, c.off, len(p)) {
		return ErrShortRead
	}
	copy(c.b[c.off:], p)
	c.off += len(p)
	return nil
}

// WriteU32At overwrites the big-endian uint32 at the absolute offset off
// without moving the cursor. Used for backpatching length fields.
func (c *Cursor) WriteU32At(off int, v uint32) error {
	s, ok := Slice(c.b, off, 4)
	if !ok {
		return ErrShortRead
	}
	PutU32BE(s, v)
	return nil
}
