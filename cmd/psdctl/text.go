package main

import (
	"fmt"

	"github.com/psdtool/psdkit/pkg/psd"
	"github.com/spf13/cobra"
)

var textLocations bool

func init() {
	cmd := newTextCmd()
	cmd.Flags().BoolVar(&textLocations, "locations", false, "Show every byte-level location of each string")
	rootCmd.AddCommand(cmd)
}

func newTextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "text <image>",
		Short: "List the text layers of an image",
		Long: `The text command enumerates the text layers of a layered image file.
With --locations it also shows every byte-level copy of each string: a text
layer's content is typically stored several times in different encodings,
and all copies must be patched together.

Example:
  psdctl text poster.psd
  psdctl text poster.psd --locations
  psdctl text poster.psd --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runText(args)
		},
	}
	return cmd
}

func runText(args []string) error {
	imagePath := args[0]

	printVerbose("Opening image: %s\n", imagePath)

	infos, err := psd.ListTextLayers(imagePath)
	if err != nil {
		return fmt.Errorf("failed to list text layers: %w", err)
	}

	if jsonOut {
		return printJSON(infos)
	}

	for _, ti := range infos {
		printInfo("%3d %-24s %q\n", ti.Index, ti.Name, ti.Text)
		if !textLocations {
			continue
		}
		for _, loc := range ti.Locations {
			printInfo("      0x%08x len=%-4d %-11s %s\n",
				loc.Offset, loc.Length, loc.Encoding, loc.Provenance)
		}
	}

	return nil
}
