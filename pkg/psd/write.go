package psd

import (
	"fmt"

	"github.com/psdtool/psdkit/internal/edit"
	"github.com/psdtool/psdkit/internal/mmfile"
	"github.com/psdtool/psdkit/internal/reader"
	"github.com/psdtool/psdkit/internal/writer"
	"github.com/psdtool/psdkit/pkg/types"
)

// RenameLayer renames the layer at layerIndex and writes the result to
// outPath. When the new name occupies the same padded width the patch is
// applied in place; otherwise the layer section is reconstructed and every
// untouched byte copied verbatim.
//
// Example:
//
//	report, err := psd.RenameLayer("in.psd", "out.psd", 2, "Background", nil)
func RenameLayer(inPath, outPath string, layerIndex int, newName string, opts *PatchOptions) (types.PatchReport, error) {
	return patchFile(inPath, outPath, opts, func(doc *reader.Document) (*edit.PatchPlan, error) {
		return edit.PlanRename(doc, layerIndex, newName)
	})
}

// RenameLayerBytes is RenameLayer against an in-memory image. The input
// slice is never mutated.
func RenameLayerBytes(img []byte, layerIndex int, newName string) ([]byte, types.PatchReport, error) {
	return patchBytes(img, func(doc *reader.Document) (*edit.PatchPlan, error) {
		return edit.PlanRename(doc, layerIndex, newName)
	})
}

// ReplaceText replaces the text of every text layer whose string equals
// search and writes the result to outPath. All byte-level copies of the
// string are patched together; locations that cannot accept the replacement
// are reported as skipped.
//
// Example:
//
//	report, err := psd.ReplaceText("in.psd", "out.psd", "Hello", "Goodbye", nil)
func ReplaceText(inPath, outPath, search, replace string, opts *PatchOptions) (types.PatchReport, error) {
	return patchFile(inPath, outPath, opts, func(doc *reader.Document) (*edit.PatchPlan, error) {
		return edit.PlanReplaceText(doc, search, replace)
	})
}

// ReplaceTextBytes is ReplaceText against an in-memory image.
func ReplaceTextBytes(img []byte, search, replace string) ([]byte, types.PatchReport, error) {
	return patchBytes(img, func(doc *reader.Document) (*edit.PatchPlan, error) {
		return edit.PlanReplaceText(doc, search, replace)
	})
}

// ReplaceTextByIndex sets the text of the layer at layerIndex and writes the
// result to outPath.
func ReplaceTextByIndex(inPath, outPath string, layerIndex int, newText string, opts *PatchOptions) (types.PatchReport, error) {
	return patchFile(inPath, outPath, opts, func(doc *reader.Document) (*edit.PatchPlan, error) {
		return edit.PlanReplaceTextByIndex(doc, layerIndex, newText)
	})
}

// ReplaceTextByIndexBytes is ReplaceTextByIndex against an in-memory image.
func ReplaceTextByIndexBytes(img []byte, layerIndex int, newText string) ([]byte, types.PatchReport, error) {
	return patchBytes(img, func(doc *reader.Document) (*edit.PatchPlan, error) {
		return edit.PlanReplaceTextByIndex(doc, layerIndex, newText)
	})
}

// patchBytes decodes img, plans the edit, and applies it to a fresh copy.
func patchBytes(img []byte, planFn func(*reader.Document) (*edit.PatchPlan, error)) ([]byte, types.PatchReport, error) {
	doc, err := reader.Decode(img)
	if err != nil {
		return nil, types.PatchReport{}, err
	}
	plan, err := planFn(doc)
	if err != nil {
		return nil, types.PatchReport{}, err
	}
	out, err := plan.Apply(img)
	if err != nil {
		return nil, types.PatchReport{}, err
	}
	return out, plan.Report, nil
}

// patchFile runs one plan-then-write cycle. The input file is left intact on
// every error path: output is written atomically, and the writable-mapping
// shortcut is taken only for plans that change no byte widths.
func patchFile(inPath, outPath string, opts *PatchOptions, planFn func(*reader.Document) (*edit.PatchPlan, error)) (types.PatchReport, error) {
	if opts == nil {
		opts = &PatchOptions{}
	}
	if !fileExists(inPath) {
		return types.PatchReport{}, fmt.Errorf("image file not found: %s", inPath)
	}

	img, cleanup, err := mmfile.Map(inPath)
	if err != nil {
		return types.PatchReport{}, fmt.Errorf("failed to open image %s: %w", inPath, err)
	}
	mapped := true
	defer func() {
		if mapped {
			_ = cleanup()
		}
	}()

	doc, err := reader.Decode(img)
	if err != nil {
		return types.PatchReport{}, err
	}
	plan, err := planFn(doc)
	if err != nil {
		return types.PatchReport{}, err
	}
	if opts.DryRun {
		return plan.Report, nil
	}

	if opts.CreateBackup && fileExists(outPath) {
		backupPath := outPath + ".bak"
		if err := copyFile(outPath, backupPath); err != nil {
			return types.PatchReport{}, fmt.Errorf("failed to create backup at %s: %w", backupPath, err)
		}
	}

	if samePath(inPath, outPath) && widthPreserving(plan) {
		mapped = false
		if err := cleanup(); err != nil {
			return types.PatchReport{}, fmt.Errorf("failed to release mapping of %s: %w", inPath, err)
		}
		if err := patchMapped(inPath, plan); err != nil {
			return types.PatchReport{}, err
		}
		return plan.Report, nil
	}

	out, err := plan.Apply(img)
	if err != nil {
		return types.PatchReport{}, err
	}
	fw := &writer.FileWriter{Path: outPath}
	if err := fw.WriteImage(out); err != nil {
		return types.PatchReport{}, fmt.Errorf("failed to write image %s: %w", outPath, err)
	}
	return plan.Report, nil
}

// widthPreserving reports whether the plan moves no byte: no rebuild and no
// resize with a nonzero delta. Such plans can be applied straight into a
// writable mapping.
func widthPreserving(plan *edit.PatchPlan) bool {
	if !plan.InPlace() {
		return false
	}
	for _, r := range plan.Resizes {
		if r.Delta() != 0 {
			return false
		}
	}
	return true
}

// patchMapped applies a width-preserving plan through a writable mapping of
// path and flushes it with msync.
func patchMapped(path string, plan *edit.PatchPlan) error {
	m, err := mmfile.OpenRW(path)
	if err != nil {
		return fmt.Errorf("failed to map image %s for writing: %w", path, err)
	}
	defer m.Close()

	for _, s := range plan.Splices {
		if s.Offset+len(s.Data) > len(m.Data) {
			return types.Wrapf(types.ErrTruncated, "splice at %d past end of %s", s.Offset, path)
		}
		copy(m.Data[s.Offset:], s.Data)
	}
	for _, r := range plan.Resizes {
		// Delta is zero here, so the data drops into the old slot and no
		// length field changes.
		if r.Offset+len(r.Data) > len(m.Data) {
			return types.Wrapf(types.ErrTruncated, "resize at %d past end of %s", r.Offset, path)
		}
		copy(m.Data[r.Offset:], r.Data)
	}

	if err := m.Sync(); err != nil {
		return fmt.Errorf("failed to flush image %s: %w", path, err)
	}
	return m.Close()
}
