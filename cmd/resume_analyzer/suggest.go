package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest quantified rewrites for one sentence",
	Long:  "Print volume, efficiency and money rewrite candidates for a single resume bullet.",
	RunE:  runSuggest,
}

var (
	suggestSentence string
	suggestPatterns string
	suggestJSON     bool
)

func init() {
	suggestCmd.Flags().StringVarP(&suggestSentence, "sentence", "s", "", "Sentence to rewrite (required)")
	suggestCmd.Flags().StringVar(&suggestPatterns, "patterns", "", "Path to a pattern library YAML file")
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "Print the suggestion as JSON")

	_ = suggestCmd.MarkFlagRequired("sentence")

	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	lib, err := loadLibrary(suggestPatterns)
	if err != nil {
		return err
	}

	suggestion := analysis.New(lib).Suggest(suggestSentence)
	if suggestJSON {
		data, err := json.MarshalIndent(suggestion, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal suggestion: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	observability.NewPrinter(cmd.OutOrStdout(), lib).PrintSuggestions([]types.BulletSuggestion{suggestion})
	return nil
}
