package main

import (
	"fmt"
	"path/filepath"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one resume",
	Long: `Analyze a resume text or HTML file and output the result as JSON.

Keywords come from the job description when one is given (--job or --job-html),
otherwise from the category defaults. Configuration can be loaded from a JSON file
using --config. Command-line arguments override config file values.`,
	RunE: runAnalyze,
}

var (
	analyzeFlags  inputFlags
	analyzeResume string
)

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeFlags.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	f.StringVarP(&analyzeResume, "resume", "r", "", "Path to resume text or HTML file")
	f.StringVarP(&analyzeFlags.job, "job", "j", "", "Path to job description text file (mutually exclusive with --job-html)")
	f.StringVar(&analyzeFlags.jobHTML, "job-html", "", "Path to saved job posting HTML page (mutually exclusive with --job)")
	f.StringVarP(&analyzeFlags.level, "level", "l", "", "Expected experience level: entry, junior, mid, senior, staff")
	f.IntVar(&analyzeFlags.years, "years", 0, "Years of experience (0-60)")
	f.StringVarP(&analyzeFlags.category, "category", "c", "", "Keyword category used when no job description is given")
	f.StringVar(&analyzeFlags.patterns, "patterns", "", "Path to a pattern library YAML file (defaults to the built-in library)")
	f.StringVarP(&analyzeFlags.outDir, "out", "o", "", "Output directory (prints JSON to stdout when empty)")
	f.BoolVarP(&analyzeFlags.verbose, "verbose", "v", false, "Print a readable report to stderr")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := analyzeFlags.resolveConfig(cmd.Flags().Changed)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("resume") {
		cfg.Resume = analyzeResume
	}
	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required (via flag or config)")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg.Verbose)
	lib, err := loadLibrary(cfg.PatternsFile)
	if err != nil {
		return err
	}

	text, metadata, err := ingestion.IngestFromFile(cfg.Resume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	jobDescription, err := readJobDescription(cfg)
	if err != nil {
		return err
	}
	logger.Debug("inputs loaded", "resume", cfg.Resume, "characters", metadata.Characters, "job_description", jobDescription != "")

	result, err := analysis.New(lib).Analyze(buildInput(cfg, text, jobDescription))
	if err != nil {
		return err
	}
	data, err := encodeResult(result)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.OutDir == "" {
		_, _ = fmt.Fprintln(out, string(data))
	} else {
		name := outputName(cfg.Resume)
		if err := ingestion.WriteOutput(cfg.OutDir, name, data, metadata); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		_, _ = fmt.Fprintf(out, "Analysis written to %s\n", filepath.Join(cfg.OutDir, name+".analysis.json"))
	}

	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr(), lib).PrintReport(result)
	}
	logger.Debug("analysis complete", "overall", result.Score.Overall, "grade", result.Grade)
	return nil
}
