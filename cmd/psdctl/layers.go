package main

import (
	"fmt"

	"github.com/psdtool/psdkit/pkg/psd"
	"github.com/spf13/cobra"
)

var layersTextOnly bool

func init() {
	cmd := newLayersCmd()
	cmd.Flags().BoolVar(&layersTextOnly, "text-only", false, "Show only text layers")
	rootCmd.AddCommand(cmd)
}

func newLayersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layers <image>",
		Short: "List the layers of an image, bottom to top",
		Long: `The layers command enumerates every layer of a layered image file with
its index, name, blend mode, and bounds.

Example:
  psdctl layers poster.psd
  psdctl layers poster.psd --text-only
  psdctl layers poster.psd --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayers(args)
		},
	}
	return cmd
}

func runLayers(args []string) error {
	imagePath := args[0]

	printVerbose("Opening image: %s\n", imagePath)

	layers, err := psd.ListLayers(imagePath)
	if err != nil {
		return fmt.Errorf("failed to list layers: %w", err)
	}

	if layersTextOnly {
		filtered := layers[:0:0]
		for _, l := range layers {
			if l.IsText {
				filtered = append(filtered, l)
			}
		}
		layers = filtered
	}

	if jsonOut {
		return printJSON(layers)
	}

	for _, l := range layers {
		marker := " "
		if l.IsText {
			marker = "T"
		}
		printInfo("%3d %s %-24s blend=%s opacity=%d bounds=(%d,%d,%d,%d)\n",
			l.Index, marker, l.Name, l.BlendKey, l.Opacity,
			l.Top, l.Left, l.Bottom, l.Right)
		if verbose && l.UnicodeName != "" && l.UnicodeName != l.Name {
			printVerbose("      unicode name: %s\n", l.UnicodeName)
		}
	}

	return nil
}
