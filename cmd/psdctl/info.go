package main

import (
	"fmt"
	"os"

	"github.com/psdtool/psdkit/pkg/psd"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <image>",
		Short: "Validate an image header and report basic metadata",
		Long: `The info command validates a layered image file and displays basic
metadata including dimensions, color mode, layer count, and section sizes.

Example:
  psdctl info poster.psd
  psdctl info poster.psd --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

func runInfo(args []string) error {
	imagePath := args[0]

	printVerbose("Opening image: %s\n", imagePath)

	info, err := psd.Info(imagePath)
	if err != nil {
		return fmt.Errorf("failed to get image info: %w", err)
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nImage Information:\n")
	printInfo("  File: %s\n", imagePath)

	if stat, err := os.Stat(imagePath); err == nil {
		size := stat.Size()
		if size < 1024 {
			printInfo("  Size: %d bytes\n", size)
		} else if size < 1024*1024 {
			printInfo("  Size: %.1f KB\n", float64(size)/1024)
		} else {
			printInfo("  Size: %.1f MB\n", float64(size)/(1024*1024))
		}
	}

	printInfo("  Version: %d\n", info.Version)
	printInfo("  Dimensions: %dx%d\n", info.Width, info.Height)
	printInfo("  Channels: %d\n", info.Channels)
	printInfo("  Depth: %d bits\n", info.Depth)
	printInfo("  Color mode: %s\n", info.ColorModeName)
	printInfo("  Layers: %d\n", info.LayerCount)
	printInfo("  Transparency: %v\n", info.HasTransparency)

	printVerbose("\nSections:\n")
	printVerbose("  Color mode data: %d bytes\n", info.ColorModeLen)
	printVerbose("  Image resources: %d bytes\n", info.ResourcesLen)
	printVerbose("  Layer and mask info: %d bytes\n", info.LayerMaskLen)
	printVerbose("  Image data: %d bytes\n", info.ImageDataLen)

	return nil
}
