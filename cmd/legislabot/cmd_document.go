package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/DanieelRC/LegislaBot/internal/application/document"
)

var (
	exportFormat string
	exportOut    string
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check the structure of a bill",
	Long:  `Check a bill for its title, statement of reasons, articles and closing signature. Use "-" to read stdin.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export a bill as text, markdown or html",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

func runValidate(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	res := document.Validate(text)
	w := cmd.OutOrStdout()
	if res.Valid {
		fmt.Fprintln(w, "ok: the bill has the expected structure")
		return nil
	}
	for i, issue := range res.Issues {
		fmt.Fprintf(w, "- %s\n  %s\n", issue, res.Suggestions[i])
	}
	return fmt.Errorf("%d structural issue(s) found", len(res.Issues))
}

func runExport(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	format, err := document.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	exported, err := document.Export(text, format)
	if err != nil {
		return err
	}

	out := exportOut
	if out == "" {
		out = exported.Filename
	}
	if err := os.WriteFile(filepath.Clean(out), exported.Body, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
	return nil
}
