// Package edit plans and applies byte-level patches to a decoded document.
// A patch is computed first as a pure PatchPlan value — same-width splices,
// size-changing resizes with their enclosing length fields, or a full
// reconstruction request — and only then applied, so the structural
// invariants are testable without file I/O.
package edit

import (
	"github.com/psdtool/psdkit/internal/buf"
	"github.com/psdtool/psdkit/pkg/types"
)

// Splice overwrites len(Data) bytes at Offset. Width-preserving: no length
// field anywhere changes.
type Splice struct {
	Offset int
	Data   []byte
}

// Resize replaces the OldLen bytes at Offset with Data, whose length may
// differ. LengthFields lists the absolute offsets of every enclosing 4-byte
// big-endian length field; each is adjusted by the size delta so the
// length == payload-size invariant holds after the splice. All listed fields
// precede Offset (length prefixes always precede their payload), so their
// own offsets never move.
type Resize struct {
	Offset       int
	OldLen       int
	Data         []byte
	LengthFields []int
}

// Delta returns the signed size change.
func (r Resize) Delta() int { return len(r.Data) - r.OldLen }

// RebuildRequest asks for full reconstruction of the layer-and-mask section
// with one layer's name substituted. Everything else is copied byte-exact.
type RebuildRequest struct {
	LayerIndex int
	NewName    string
}

// PatchPlan is the computed edit: either in-place work (Splices then
// Resizes) or a full Rebuild. Report carries the partial-success outcome for
// every location considered.
type PatchPlan struct {
	Splices []Splice
	Resizes []Resize
	Rebuild *RebuildRequest
	Report  types.PatchReport
}

// InPlace reports whether the plan avoids reconstruction.
func (p *PatchPlan) InPlace() bool { return p.Rebuild == nil }

// Apply executes the plan against img and returns the patched image. The
// source slice is never mutated. Splices are applied first, on source
// geometry; resizes are then applied in descending offset order so earlier
// absolute offsets stay valid, with each resize's enclosing length fields
// adjusted by its delta.
func (p *PatchPlan) Apply(img []byte) ([]byte, error) {
	if p.Rebuild != nil {
		return Reconstruct(img, p.Rebuild.LayerIndex, p.Rebuild.NewName, &p.Report)
	}

	out := make([]byte, len(img))
	copy(out, img)
	for _, s := range p.Splices {
		if !buf.Has(out, s.Offset, len(s.Data)) {
			return nil, types.Wrap(types.ErrTruncated, buf.ErrShortRead)
		}
		copy(out[s.Offset:], s.Data)
	}

	resizes := make([]Resize, len(p.Resizes))
	copy(resizes, p.Resizes)
	for i := 1; i < len(resizes); i++ {
		for j := i; j > 0 && resizes[j].Offset > resizes[j-1].Offset; j-- {
			resizes[j], resizes[j-1] = resizes[j-1], resizes[j]
		}
	}
	for _, r := range resizes {
		if !buf.Has(out, r.Offset, r.OldLen) {
			return nil, types.Wrap(types.ErrTruncated, buf.ErrShortRead)
		}
		next := make([]byte, 0, len(out)+r.Delta())
		next = append(next, out[:r.Offset]...)
		next = append(next, r.Data...)
		next = append(next, out[r.Offset+r.OldLen:]...)
		out = next
		for _, f := range r.LengthFields {
			s, ok := buf.Slice(out, f, 4)
			if !ok {
				return nil, types.Wrap(types.ErrTruncated, buf.ErrShortRead)
			}
			buf.PutU32BE(s, uint32(int(buf.U32BE(s))+r.Delta()))
		}
	}
	return out, nil
}
