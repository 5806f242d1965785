package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/patterns"
	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// inputFlags are the analysis options shared by analyze and batch
type inputFlags struct {
	configPath string
	job        string
	jobHTML    string
	level      string
	years      int
	category   string
	patterns   string
	outDir     string
	verbose    bool
}

// resolveConfig loads the optional config file, applies explicitly set
// flags over it, then fills the rest from the environment and defaults
func (f *inputFlags) resolveConfig(changed func(string) bool) (config.Config, error) {
	var cfg config.Config
	if f.configPath != "" {
		loaded, err := config.LoadConfig(f.configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	if changed("job") {
		cfg.Job = f.job
	}
	if changed("job-html") {
		cfg.JobHTML = f.jobHTML
	}
	if changed("level") {
		cfg.ExperienceLevel = f.level
	}
	if changed("years") {
		years := f.years
		cfg.YearsOfExperience = &years
	}
	if changed("category") {
		cfg.Category = f.category
	}
	if changed("patterns") {
		cfg.PatternsFile = f.patterns
	}
	if changed("out") {
		cfg.OutDir = f.outDir
	}
	if changed("verbose") {
		cfg.Verbose = f.verbose
	}

	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	cfg = cfg.MergeWithDefaults(config.Config{})
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger returns the CLI logger, writing to stderr
func newLogger(verbose bool) *slog.Logger {
	return observability.NewColoredLogger(os.Stderr, verbose)
}

// loadLibrary returns the library at path, or the embedded one when path is empty
func loadLibrary(path string) (*patterns.Library, error) {
	if path == "" {
		return patterns.Default(), nil
	}
	lib, err := patterns.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load patterns: %w", err)
	}
	return lib, nil
}

// readJobDescription returns the cleaned job description named by cfg, if any
func readJobDescription(cfg config.Config) (string, error) {
	switch {
	case cfg.Job != "":
		text, _, err := ingestion.IngestFromFile(cfg.Job)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return text, nil
	case cfg.JobHTML != "":
		data, err := os.ReadFile(cfg.JobHTML)
		if err != nil {
			return "", &ingestion.FileReadError{Path: cfg.JobHTML, Message: "failed to read job posting", Cause: err}
		}
		text, err := ingestion.ExtractTextFromHTML(string(data))
		if err != nil {
			return "", fmt.Errorf("failed to extract job posting text: %w", err)
		}
		return text, nil
	default:
		return "", nil
	}
}

// buildInput assembles an engine request from cfg
func buildInput(cfg config.Config, text, jobDescription string) types.AnalysisInput {
	return types.AnalysisInput{
		Text:              text,
		JobDescription:    jobDescription,
		ExperienceLevel:   types.ExperienceLevel(cfg.ExperienceLevel),
		YearsOfExperience: cfg.YearsOfExperience,
		Category:          cfg.Category,
	}
}

// encodeResult marshals result and checks it against the result schema
func encodeResult(result *types.AnalysisResult) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis: %w", err)
	}
	if err := schemas.ValidateResultJSON(data); err != nil {
		return nil, fmt.Errorf("analysis failed schema validation: %w", err)
	}
	return data, nil
}

// outputName derives an output file stem from an input path
func outputName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
