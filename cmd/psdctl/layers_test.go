package main

import (
	"strings"
	"testing"

	"github.com/psdtool/psdkit/internal/testutil"
)

func TestLayersCommand(t *testing.T) {
	tests := []struct {
		name           string
		textOnly       bool
		wantJSON       bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:        "list all layers",
			wantContain: []string{"Background", "Headline"},
		},
		{
			name:           "text only",
			textOnly:       true,
			wantContain:    []string{"Headline"},
			wantNotContain: []string{"Background"},
		},
		{
			name:        "json output",
			wantJSON:    true,
			wantContain: []string{`"Name": "Headline"`, `"IsText": true`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset flags
			quiet = false
			verbose = false
			jsonOut = tt.wantJSON
			layersTextOnly = tt.textOnly

			path := writeTestImage(t,
				testutil.LayerSpec{Name: "Background", UnicodeName: "Background"},
				testutil.LayerSpec{Name: "Headline", UnicodeName: "Headline", Text: "Hello"},
			)

			out, err := captureOutput(t, func() error {
				return runLayers([]string{path})
			})
			if err != nil {
				t.Fatalf("runLayers: %v", err)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, notWant := range tt.wantNotContain {
				if strings.Contains(out, notWant) {
					t.Errorf("output should not contain %q:\n%s", notWant, out)
				}
			}
		})
	}
}

func TestReplaceCommandRoundTrip(t *testing.T) {
	quiet = false
	verbose = false
	jsonOut = false
	replaceOut = ""
	replaceBackup = false
	replaceDryRun = false

	path := writeTestImage(t,
		testutil.LayerSpec{Name: "T", UnicodeName: "T", Text: "Hello"},
	)

	out, err := captureOutput(t, func() error {
		return runReplace([]string{path, "Hello", "Goodbye"})
	})
	if err != nil {
		t.Fatalf("runReplace: %v", err)
	}
	if !strings.Contains(out, "Updated") {
		t.Errorf("expected patch summary, got:\n%s", out)
	}

	textLocations = false
	out, err = captureOutput(t, func() error {
		return runText([]string{path})
	})
	if err != nil {
		t.Fatalf("runText: %v", err)
	}
	if !strings.Contains(out, `"Goodbye"`) {
		t.Errorf("expected replaced text, got:\n%s", out)
	}
}
