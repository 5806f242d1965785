package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/spf13/cobra"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Load and summarize a pattern library",
	Long:  "Load a pattern library (the built-in one unless --file is given), report any rule that fails to compile, and summarize its contents.",
	RunE:  runPatterns,
}

var (
	patternsFile     string
	patternsCategory string
)

func init() {
	patternsCmd.Flags().StringVarP(&patternsFile, "file", "f", "", "Path to a pattern library YAML file")
	patternsCmd.Flags().StringVarP(&patternsCategory, "category", "c", "", "List the default keywords of one category")

	rootCmd.AddCommand(patternsCmd)
}

func runPatterns(cmd *cobra.Command, _ []string) error {
	lib, err := loadLibrary(patternsFile)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if patternsCategory != "" {
		keywords, ok := lib.CategoryKeywords(patternsCategory)
		if !ok {
			return fmt.Errorf("unknown category %q (known: %s)", patternsCategory, strings.Join(lib.CategoryNames(), ", "))
		}
		for _, kw := range keywords {
			_, _ = fmt.Fprintln(out, kw)
		}
		return nil
	}

	observability.NewPrinter(out, lib).PrintLibrary(lib)
	return nil
}
