package psd_test

import (
	"fmt"

	"github.com/psdtool/psdkit/internal/testutil"
	"github.com/psdtool/psdkit/pkg/psd"
)

// Example shows basic layer enumeration.
func Example() {
	img := testutil.BuildLayers(
		testutil.LayerSpec{Name: "Background", UnicodeName: "Background"},
		testutil.LayerSpec{Name: "Title", UnicodeName: "Title", Text: "Hello"},
	)

	layers, err := psd.ListLayersBytes(img)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	for _, l := range layers {
		fmt.Printf("%d %s text=%v\n", l.Index, l.Name, l.IsText)
	}
	// Output:
	// 0 Background text=false
	// 1 Title text=true
}

// ExampleReplaceTextBytes demonstrates patching every copy of a text string.
func ExampleReplaceTextBytes() {
	img := testutil.BuildLayers(
		testutil.LayerSpec{Name: "Title", UnicodeName: "Title", Text: "Hello"},
	)

	out, report, err := psd.ReplaceTextBytes(img, "Hello", "Goodbye")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	infos, _ := psd.ListTextLayersBytes(out)
	fmt.Printf("layer %d now %q (%d locations updated)\n",
		report.LayerIndex, infos[0].Text, len(report.Updated))
	// Output:
	// layer 0 now "Goodbye" (1 locations updated)
}

// ExampleRenameLayer demonstrates renaming a layer on disk with a backup.
func ExampleRenameLayer() {
	opts := &psd.PatchOptions{CreateBackup: true}

	_, err := psd.RenameLayer("poster.psd", "poster.psd", 2, "Backdrop", opts)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
}
