// Package pipeline runs many independent resume analyses in parallel.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// DefaultConcurrency is the number of analyses run at once when unset
const DefaultConcurrency = 4

// Progress statuses
const (
	StatusStarted = "started"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

// Analyzer produces an analysis for one input. It must be safe for concurrent use.
type Analyzer interface {
	Analyze(in types.AnalysisInput) (*types.AnalysisResult, error)
}

// ProgressEvent represents a progress update during a batch run
type ProgressEvent struct {
	Job     string `json:"job"`
	Index   int    `json:"index"`
	Total   int    `json:"total"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ProgressCallback is called when batch progress occurs. It may be called
// from several goroutines at once.
type ProgressCallback func(event ProgressEvent)

// Job is one named resume to analyze
type Job struct {
	Name     string
	Input    types.AnalysisInput
	Metadata *ingestion.Metadata
}

// Outcome is the result of one job. Err holds a per-job failure such as
// invalid input; it never stops the rest of the batch.
type Outcome struct {
	Name     string
	Result   *types.AnalysisResult
	Metadata *ingestion.Metadata
	Err      error
}

// RunOptions holds configuration for a batch run
type RunOptions struct {
	Concurrency int
	Logger      *slog.Logger
	OnProgress  ProgressCallback
}

// Summary aggregates the outcomes of a batch
type Summary struct {
	Total        int     `json:"total"`
	Succeeded    int     `json:"succeeded"`
	Failed       int     `json:"failed"`
	AverageScore float64 `json:"average_score"`
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, event ProgressEvent) {
	if opts.OnProgress != nil {
		opts.OnProgress(event)
	}
}

// AnalyzeBatch analyzes every job with at most opts.Concurrency analyses in
// flight. Outcomes are returned in job order. The only error returned is
// cancellation of ctx.
func AnalyzeBatch(ctx context.Context, analyzer Analyzer, jobs []Job, opts RunOptions) ([]Outcome, error) {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	outcomes := make([]Outcome, len(jobs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			emitProgress(&opts, ProgressEvent{Job: job.Name, Index: i, Total: len(jobs), Status: StatusStarted})

			result, err := analyzer.Analyze(job.Input)
			outcomes[i] = Outcome{Name: job.Name, Result: result, Metadata: job.Metadata, Err: err}
			if err != nil {
				logger.Warn("analysis failed", "job", job.Name, "error", err)
				emitProgress(&opts, ProgressEvent{Job: job.Name, Index: i, Total: len(jobs), Status: StatusFailed, Message: err.Error()})
				return nil
			}

			logger.Debug("analysis complete", "job", job.Name, "overall", result.Score.Overall, "grade", result.Grade)
			emitProgress(&opts, ProgressEvent{
				Job:     job.Name,
				Index:   i,
				Total:   len(jobs),
				Status:  StatusDone,
				Message: fmt.Sprintf("score %d (%s)", result.Score.Overall, result.Grade),
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return outcomes, fmt.Errorf("batch cancelled: %w", err)
	}
	logger.Info("batch complete", "jobs", len(jobs))
	return outcomes, nil
}

// Summarize counts successes and failures and averages the overall score of
// the successful outcomes
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	total := 0
	for _, o := range outcomes {
		if o.Err != nil || o.Result == nil {
			s.Failed++
			continue
		}
		s.Succeeded++
		total += o.Result.Score.Overall
	}
	if s.Succeeded > 0 {
		s.AverageScore = float64(total) / float64(s.Succeeded)
	}
	return s
}

// LoadJobs ingests every .txt and .html file in dir, sorted by name. Each
// job copies template with its text replaced by the file contents.
func LoadJobs(dir string, template types.AnalysisInput) ([]Job, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &ingestion.FileReadError{Path: dir, Message: "failed to read directory", Cause: err}
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".txt" || ingestion.IsHTMLPath(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	jobs := make([]Job, 0, len(names))
	for _, name := range names {
		text, metadata, err := ingestion.IngestFromFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		input := template
		input.Text = text
		jobs = append(jobs, Job{
			Name:     strings.TrimSuffix(name, filepath.Ext(name)),
			Input:    input,
			Metadata: metadata,
		})
	}
	if len(jobs) == 0 {
		return nil, errors.New("no .txt or .html files found in " + dir)
	}
	return jobs, nil
}
