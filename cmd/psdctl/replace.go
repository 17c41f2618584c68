package main

import (
	"fmt"
	"strconv"

	"github.com/psdtool/psdkit/pkg/psd"
	"github.com/spf13/cobra"
)

var (
	replaceOut    string
	replaceBackup bool
	replaceDryRun bool
)

func init() {
	cmd := newReplaceCmd()
	cmd.Flags().StringVarP(&replaceOut, "out", "o", "", "Output path (default: patch the input in place)")
	cmd.Flags().BoolVar(&replaceBackup, "backup", false, "Create a .bak copy before overwriting")
	cmd.Flags().BoolVar(&replaceDryRun, "dry-run", false, "Plan the edit and report without writing")
	rootCmd.AddCommand(cmd)

	setCmd := newSetTextCmd()
	setCmd.Flags().StringVarP(&replaceOut, "out", "o", "", "Output path (default: patch the input in place)")
	setCmd.Flags().BoolVar(&replaceBackup, "backup", false, "Create a .bak copy before overwriting")
	setCmd.Flags().BoolVar(&replaceDryRun, "dry-run", false, "Plan the edit and report without writing")
	rootCmd.AddCommand(setCmd)
}

func newReplaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replace <image> <search> <replace>",
		Short: "Replace the text of every matching text layer",
		Long: `The replace command rewrites the text of every text layer whose string
equals the search term. All byte-level copies of the string are patched
together; copies that cannot accept the replacement are reported as skipped.

Example:
  psdctl replace poster.psd "Hello" "Goodbye"
  psdctl replace poster.psd "Hello" "Goodbye" --out patched.psd
  psdctl replace poster.psd "Hello" "Goodbye" --dry-run --json`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplace(args)
		},
	}
	return cmd
}

func runReplace(args []string) error {
	imagePath, search, replace := args[0], args[1], args[2]

	outPath := replaceOut
	if outPath == "" {
		outPath = imagePath
	}
	opts := &psd.PatchOptions{CreateBackup: replaceBackup, DryRun: replaceDryRun}

	printVerbose("Replacing %q with %q in %s\n", search, replace, imagePath)

	report, err := psd.ReplaceText(imagePath, outPath, search, replace, opts)
	if err != nil {
		return fmt.Errorf("failed to replace text: %w", err)
	}

	if jsonOut {
		return printJSON(report)
	}

	printPatchReport(report)
	if replaceDryRun {
		printInfo("Dry run: nothing written\n")
	}
	return nil
}

func newSetTextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-text <image> <index> <text>",
		Short: "Set the text of one layer by index",
		Long: `The set-text command rewrites the text of the layer at the given index,
regardless of its current content.

Example:
  psdctl set-text poster.psd 1 "New headline"
  psdctl set-text poster.psd 1 "New headline" --out patched.psd`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetText(args)
		},
	}
	return cmd
}

func runSetText(args []string) error {
	imagePath := args[0]
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid layer index %q: %w", args[1], err)
	}
	newText := args[2]

	outPath := replaceOut
	if outPath == "" {
		outPath = imagePath
	}
	opts := &psd.PatchOptions{CreateBackup: replaceBackup, DryRun: replaceDryRun}

	printVerbose("Setting text of layer %d in %s\n", index, imagePath)

	report, err := psd.ReplaceTextByIndex(imagePath, outPath, index, newText, opts)
	if err != nil {
		return fmt.Errorf("failed to set text: %w", err)
	}

	if jsonOut {
		return printJSON(report)
	}

	printPatchReport(report)
	if replaceDryRun {
		printInfo("Dry run: nothing written\n")
	}
	return nil
}
