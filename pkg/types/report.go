package types

// SkipReason explains why a location was left untouched by a patch.
type SkipReason string

const (
	// SkipSizeMismatch: the replacement does not fit the location's fixed
	// slot, or a strict-width encoding saw a length change.
	SkipSizeMismatch SkipReason = "size-mismatch"
	// SkipNotEncodable: the replacement cannot be expressed in the
	// location's encoding (non-ASCII text into a single-byte slot).
	SkipNotEncodable SkipReason = "not-encodable"
)

// PatchedLocation records one successfully rewritten location.
type PatchedLocation struct {
	Location TextLocation
}

// SkippedLocation records one location deliberately left unchanged.
// Its byte range in the output is identical to the input.
type SkippedLocation struct {
	Location TextLocation
	Reason   SkipReason
}

// PatchReport is the partial-success result of a patch: which redundant
// copies were updated and which were skipped. A skip is not an error — a
// single unsupported duplicate must not block updating the rest — but
// callers have to inspect the report to know which copies still carry the
// old bytes.
type PatchReport struct {
	LayerIndex int
	Rebuilt    bool // true when the edit required full reconstruction
	Updated    []PatchedLocation
	Skipped    []SkippedLocation
}

// Clean reports whether every discovered location was updated.
func (r PatchReport) Clean() bool { return len(r.Skipped) == 0 }
