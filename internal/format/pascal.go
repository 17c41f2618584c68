package format

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"

	"github.com/psdtool/psdkit/internal/buf"
)

// Pascal name field: one length byte, then the name bytes, then zero filler
// so the whole field is a multiple of 4 bytes. The name itself is in the
// legacy single-byte system encoding; Windows-1252 covers every sample we
// have seen.

// ParsePascalName decodes the Pascal name field at off in b. It returns the
// decoded name, the padded on-disk field size, or an error when the field
// runs past the end of b.
func ParsePascalName(b []byte, off int) (string, int, error) {
	if !buf.Has(b, off, 1) {
		return "", 0, fmt.Errorf("pascal name: %w", ErrTruncated)
	}
	nameLen := int(b[off])
	fieldSize := PascalFieldSize(nameLen)
	raw, ok := buf.Slice(b, off+1, nameLen)
	if !ok || !buf.Has(b, off, fieldSize) {
		return "", 0, fmt.Errorf("pascal name: %w", ErrTruncated)
	}
	name, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		// Windows-1252 decoding is total; keep the raw bytes if it ever fails.
		return string(raw), fieldSize, nil
	}
	return string(name), fieldSize, nil
}

// EncodePascalName emits the padded Pascal name field for name. The emitted
// field always satisfies len(field) % 4 == 0.
func EncodePascalName(name string) ([]byte, error) {
	raw, err := charmap.Windows1252.NewEncoder().Bytes([]byte(name))
	if err != nil {
		return nil, fmt.Errorf("pascal name %q: %w", name, ErrNotASCII)
	}
	if len(raw) > MaxPascalName {
		return nil, fmt.Errorf("pascal name %q: %w", name, ErrNameTooLong)
	}
	field := make([]byte, PascalFieldSize(len(raw)))
	field[0] = byte(len(raw))
	copy(field[1:], raw)
	return field, nil
}
