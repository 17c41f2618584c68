// Package buf contains helpers for endian-safe decoding routines and the
// position-tracked cursor used by the container decoder.
package buf

import "encoding/binary"

// U16BE reads a big-endian uint16 from b. Returns 0 when b is too short.
func U16BE(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

// U32BE reads a big-endian uint32 from b. Returns 0 when b is too short.
func U32BE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// U64BE reads a big-endian uint64 from b. Returns 0 when b is too short.
func U64BE(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

// I16BE reads a big-endian int16 from b. Returns 0 when b is too short.
func I16BE(b []byte) int16 {
	if len(b) < 2 {
		return 0
	}
	return int16(binary.BigEndian.Uint16(b))
}

// I32BE reads a big-endian int32 from b. Returns 0 when b is too short.
func I32BE(b []byte) int32 {
	if len(b) < 4 {
		return 0
	}
	return int32(binary.BigEndian.Uint32(b))
}

// PutU16BE writes a big-endian uint16 into b when it fits.
func PutU16BE(b []byte, v uint16) {
	if len(b) >= 2 {
		binary.BigEndian.PutUint16(b, v)
	}
}

// PutU32BE writes a big-endian uint32 into b when it fits.
func PutU32BE(b []byte, v uint32) {
	if len(b) >= 4 {
		binary.BigEndian.PutUint32(b, v)
	}
}
