package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Validate an analysis JSON file against the result schema",
	Long:  "Validate a saved analysis JSON file against the built-in result schema, or against --schema when given.",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

var validateSchema string

func init() {
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to a JSON schema file (defaults to the built-in analysis schema)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]

	var err error
	if validateSchema != "" {
		err = schemas.ValidateJSON(validateSchema, path)
	} else {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("failed to read %s: %w", path, readErr)
		}
		err = schemas.ValidateResultJSON(data)
	}

	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", path)
	return nil
}
