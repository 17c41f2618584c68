package main

import (
	"fmt"
	"strconv"

	"github.com/psdtool/psdkit/pkg/psd"
	"github.com/spf13/cobra"
)

var (
	renameOut    string
	renameBackup bool
	renameDryRun bool
)

func init() {
	cmd := newRenameCmd()
	cmd.Flags().StringVarP(&renameOut, "out", "o", "", "Output path (default: patch the input in place)")
	cmd.Flags().BoolVar(&renameBackup, "backup", false, "Create a .bak copy before overwriting")
	cmd.Flags().BoolVar(&renameDryRun, "dry-run", false, "Plan the edit and report without writing")
	rootCmd.AddCommand(cmd)
}

func newRenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <image> <index> <new-name>",
		Short: "Rename a layer by index",
		Long: `The rename command renames the layer at the given index. When the new
name occupies the same padded width the patch is applied in place; otherwise
the layer section is reconstructed with every untouched byte copied verbatim.

Example:
  psdctl rename poster.psd 2 "Backdrop"
  psdctl rename poster.psd 2 "Backdrop" --out patched.psd
  psdctl rename poster.psd 2 "Backdrop" --dry-run`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRename(args)
		},
	}
	return cmd
}

func runRename(args []string) error {
	imagePath := args[0]
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid layer index %q: %w", args[1], err)
	}
	newName := args[2]

	outPath := renameOut
	if outPath == "" {
		outPath = imagePath
	}
	opts := &psd.PatchOptions{CreateBackup: renameBackup, DryRun: renameDryRun}

	printVerbose("Renaming layer %d of %s to %q\n", index, imagePath, newName)

	report, err := psd.RenameLayer(imagePath, outPath, index, newName, opts)
	if err != nil {
		return fmt.Errorf("failed to rename layer: %w", err)
	}

	if jsonOut {
		return printJSON(report)
	}

	printPatchReport(report)
	if renameDryRun {
		printInfo("Dry run: nothing written\n")
	}
	return nil
}
