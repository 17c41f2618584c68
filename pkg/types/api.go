// Package types defines the shared API surface: error taxonomy, layer and
// text-layer summaries, text locations, and patch reports. Internal packages
// produce these values; pkg/psd re-exports them so callers import one package.
package types

import "fmt"

// ErrKind classifies API errors so callers can branch without string matching.
type ErrKind int

const (
	// ErrKindFormat covers structural format violations (bad magic).
	ErrKindFormat ErrKind = iota
	// ErrKindTruncated covers required fields missing at their expected offset.
	ErrKindTruncated
	// ErrKindRange covers layer indexes past the decoded layer count.
	ErrKindRange
	// ErrKindSize covers replacements that do not fit a fixed-width slot.
	ErrKindSize
	// ErrKindNotFound covers searches that matched nothing, structurally or
	// by whole-file scan.
	ErrKindNotFound
	// ErrKindName covers layer names that cannot be stored.
	ErrKindName
	// ErrKindState covers misuse of handles (closed, read-only).
	ErrKindState
)

// Error is the typed error returned across the public API boundary.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports kind equality so errors.Is works against the sentinels below
// even when an instance carries extra context.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels commonly returned by implementations.
var (
	// ErrBadSignature indicates the file lacks the 8BPS magic.
	ErrBadSignature = &Error{Kind: ErrKindFormat, Msg: "not a photoshop document (bad 8BPS signature)"}
	// ErrTruncated indicates a required field could not be read.
	ErrTruncated = &Error{Kind: ErrKindTruncated, Msg: "truncated document"}
	// ErrIndexOutOfRange indicates the requested layer index exceeds the layer count.
	ErrIndexOutOfRange = &Error{Kind: ErrKindRange, Msg: "layer index out of range"}
	// ErrSizeMismatch indicates a replacement does not fit a fixed-width slot.
	ErrSizeMismatch = &Error{Kind: ErrKindSize, Msg: "replacement does not fit fixed-width slot"}
	// ErrNotFound indicates no occurrence of the requested text exists.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "text not found"}
	// ErrInvalidName indicates a layer name that cannot be stored (longer
	// than 255 bytes or not representable in the legacy name encoding).
	ErrInvalidName = &Error{Kind: ErrKindName, Msg: "layer name not storable"}
)

// Wrap returns a copy of sentinel carrying err as its cause.
func Wrap(sentinel *Error, err error) *Error {
	return &Error{Kind: sentinel.Kind, Msg: sentinel.Msg, Err: err}
}

// Wrapf returns a copy of sentinel with a formatted context message.
func Wrapf(sentinel *Error, format string, args ...any) *Error {
	return &Error{Kind: sentinel.Kind, Msg: sentinel.Msg + ": " + fmt.Sprintf(format, args...)}
}
