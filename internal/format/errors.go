package format

import "errors"

var (
	// ErrSignatureMismatch indicates a structure had an unexpected magic.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrBlockBounds indicates a block's declared length extends past its
	// enclosing section. The block scanner treats this as a per-block decode
	// failure and resynchronizes.
	ErrBlockBounds = errors.New("format: block length exceeds section bound")
	// ErrNameTooLong indicates an ASCII layer name exceeds the 255-byte
	// Pascal string limit.
	ErrNameTooLong = errors.New("format: layer name exceeds 255 bytes")
	// ErrNotASCII indicates a string cannot be represented in the requested
	// single-byte encoding.
	ErrNotASCII = errors.New("format: string is not single-byte representable")
)
