package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/psdtool/psdkit/pkg/psd"
	"github.com/spf13/cobra"
)

var dumpWindow int

func init() {
	cmd := newDumpCmd()
	cmd.Flags().IntVar(&dumpWindow, "window", 32, "Maximum bytes of each location to show")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <image>",
		Short: "Human-readable dump of image structure and text locations",
		Long: `The dump command prints the image's sections, every layer, and a hex
window of each byte-level text location. Useful for diagnosing files whose
text edits were skipped or only partially applied.

Example:
  psdctl dump poster.psd
  psdctl dump poster.psd --window 64`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
	imagePath := args[0]

	info, err := psd.Info(imagePath)
	if err != nil {
		return fmt.Errorf("failed to get image info: %w", err)
	}
	layers, err := psd.ListLayers(imagePath)
	if err != nil {
		return fmt.Errorf("failed to list layers: %w", err)
	}
	texts, err := psd.ListTextLayers(imagePath)
	if err != nil {
		return fmt.Errorf("failed to list text layers: %w", err)
	}

	printInfo("%s: version %d, %dx%d, %d channels, %d-bit %s\n",
		imagePath, info.Version, info.Width, info.Height,
		info.Channels, info.Depth, info.ColorModeName)
	printInfo("sections: color-mode=%d resources=%d layer-mask=%d image-data=%d\n",
		info.ColorModeLen, info.ResourcesLen, info.LayerMaskLen, info.ImageDataLen)

	for _, l := range layers {
		printInfo("\nlayer %d %q blend=%s opacity=%d bounds=(%d,%d,%d,%d)\n",
			l.Index, l.Name, l.BlendKey, l.Opacity, l.Top, l.Left, l.Bottom, l.Right)
	}

	if len(texts) == 0 {
		return nil
	}

	img, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	for _, ti := range texts {
		printInfo("\ntext layer %d %q\n", ti.Index, ti.Text)
		for _, loc := range ti.Locations {
			end := loc.Offset + loc.Length
			if end > len(img) {
				end = len(img)
			}
			window := img[loc.Offset:end]
			truncated := ""
			if len(window) > dumpWindow {
				window = window[:dumpWindow]
				truncated = "..."
			}
			printInfo("  0x%08x len=%-4d %-11s %-10s %s%s\n",
				loc.Offset, loc.Length, loc.Encoding, loc.Provenance,
				hex.EncodeToString(window), truncated)
		}
	}

	return nil
}
