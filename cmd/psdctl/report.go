package main

import (
	"github.com/psdtool/psdkit/pkg/types"
)

// printPatchReport prints the outcome of a patch operation.
func printPatchReport(report types.PatchReport) {
	if report.Rebuilt {
		printInfo("Layer section reconstructed\n")
	}
	printInfo("Updated %d location(s)\n", len(report.Updated))
	for _, u := range report.Updated {
		printVerbose("  0x%08x len=%-4d %-11s %s\n",
			u.Location.Offset, u.Location.Length, u.Location.Encoding, u.Location.Provenance)
	}
	if len(report.Skipped) > 0 {
		printInfo("Skipped %d location(s):\n", len(report.Skipped))
		for _, s := range report.Skipped {
			printInfo("  0x%08x len=%-4d %-11s %s: %s\n",
				s.Location.Offset, s.Location.Length, s.Location.Encoding,
				s.Location.Provenance, s.Reason)
		}
	}
}
