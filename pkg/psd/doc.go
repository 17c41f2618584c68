/*
Package psd provides a high-level API for inspecting and patching layered
image files without re-encoding them.

# Quick Start

List the layers of a file:

	layers, err := psd.ListLayers("poster.psd")

Rename a layer, writing the result to a new file:

	report, err := psd.RenameLayer("poster.psd", "out.psd", 2, "Background", nil)

Replace the text of every matching text layer:

	report, err := psd.ReplaceText("poster.psd", "out.psd", "Hello", "Goodbye", nil)

# Patching Model

Edits are computed as a patch plan before anything is written. When every
change is width-preserving the plan applies in place; when a field must grow
or shrink, enclosing length fields are adjusted, or the layer section is
reconstructed with all untouched bytes copied verbatim. Either way the input
file is never modified unless it is also the output path.

Output files are written atomically (temp file + rename), so a failed
operation never leaves a truncated image behind. When the output path equals
the input path and the plan is width-preserving, the patch is applied through
a writable memory mapping and flushed with msync.

# Error Handling

Failures carry a stable kind reachable with errors.Is against the sentinels
in pkg/types:

	if errors.Is(err, types.ErrIndexOutOfRange) { ... }

# Partial Success

Text is usually stored in several byte-level encodings at once. Locations
that cannot accept the replacement (for example a fixed slot that is too
narrow) are skipped, not failed; the returned PatchReport lists every updated
and skipped location so callers can decide whether the result is acceptable.
*/
package psd
