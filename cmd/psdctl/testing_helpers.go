package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/psdtool/psdkit/internal/testutil"
)

// writeTestImage builds a fixture image and writes it to a temp file.
func writeTestImage(t *testing.T, specs ...testutil.LayerSpec) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.psd")
	if err := os.WriteFile(path, testutil.BuildLayers(specs...), 0o644); err != nil {
		t.Fatalf("failed to write test image: %v", err)
	}
	return path
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout

	// Read captured output
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	r.Close()

	return buf.String(), fnErr
}
