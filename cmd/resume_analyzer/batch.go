package main

import (
	"fmt"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/pipeline"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze every resume in a directory",
	Long: `Analyze every .txt and .html file in a directory concurrently.

Each successful analysis is written to <out>/<name>.analysis.json with its
ingestion metadata. A failed file does not stop the others; the command exits
with an error when any file failed.`,
	RunE: runBatch,
}

var (
	batchFlags       inputFlags
	batchDir         string
	batchConcurrency int
)

func init() {
	f := batchCmd.Flags()
	f.StringVar(&batchFlags.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	f.StringVarP(&batchDir, "dir", "d", "", "Directory of resume files (required)")
	f.StringVarP(&batchFlags.outDir, "out", "o", "", "Output directory for analysis files")
	f.IntVar(&batchConcurrency, "concurrency", 0, "Parallel analyses (defaults to ANALYZER_CONCURRENCY or 4)")
	f.StringVarP(&batchFlags.job, "job", "j", "", "Path to job description text file applied to every resume")
	f.StringVar(&batchFlags.jobHTML, "job-html", "", "Path to saved job posting HTML page applied to every resume")
	f.StringVarP(&batchFlags.level, "level", "l", "", "Expected experience level: entry, junior, mid, senior, staff")
	f.IntVar(&batchFlags.years, "years", 0, "Years of experience (0-60)")
	f.StringVarP(&batchFlags.category, "category", "c", "", "Keyword category used when no job description is given")
	f.StringVar(&batchFlags.patterns, "patterns", "", "Path to a pattern library YAML file")
	f.BoolVarP(&batchFlags.verbose, "verbose", "v", false, "Log progress for every file")

	_ = batchCmd.MarkFlagRequired("dir")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	cfg, err := batchFlags.resolveConfig(cmd.Flags().Changed)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("concurrency") {
		if batchConcurrency < 1 {
			return fmt.Errorf("--concurrency must be at least 1")
		}
		cfg.Concurrency = batchConcurrency
	}

	logger := newLogger(cfg.Verbose)
	lib, err := loadLibrary(cfg.PatternsFile)
	if err != nil {
		return err
	}
	jobDescription, err := readJobDescription(cfg)
	if err != nil {
		return err
	}

	jobs, err := pipeline.LoadJobs(batchDir, buildInput(cfg, "", jobDescription))
	if err != nil {
		return err
	}
	logger.Info("batch starting", "files", len(jobs), "concurrency", cfg.Concurrency)

	outcomes, err := pipeline.AnalyzeBatch(cmd.Context(), analysis.New(lib), jobs, pipeline.RunOptions{
		Concurrency: cfg.Concurrency,
		Logger:      logger,
		OnProgress: func(e pipeline.ProgressEvent) {
			logger.Debug("progress", "job", e.Job, "index", e.Index, "total", e.Total, "status", e.Status)
		},
	})
	if err != nil {
		return err
	}

	rows := writeOutcomes(cfg.OutDir, outcomes)
	observability.NewPrinter(cmd.OutOrStdout(), lib).PrintBatch(rows)

	summary := pipeline.Summarize(outcomes)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Average score: %.1f\n", summary.AverageScore)

	failed := 0
	for _, row := range rows {
		if row.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d analyses failed", failed, len(rows))
	}
	return nil
}

// writeOutcomes writes each successful outcome to outDir when it is set and
// returns one summary row per outcome. Write failures are reported on the row.
func writeOutcomes(outDir string, outcomes []pipeline.Outcome) []observability.BatchRow {
	rows := make([]observability.BatchRow, 0, len(outcomes))
	for _, o := range outcomes {
		row := observability.BatchRow{Name: o.Name, Err: o.Err}
		if o.Err == nil && o.Result != nil {
			row.Overall = o.Result.Score.Overall
			row.Grade = o.Result.Grade
			if outDir != "" {
				row.Err = writeOutcome(outDir, o)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func writeOutcome(outDir string, o pipeline.Outcome) error {
	data, err := encodeResult(o.Result)
	if err != nil {
		return err
	}
	return ingestion.WriteOutput(outDir, o.Name, data, o.Metadata)
}
