// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Defaults applied by MergeWithDefaults when neither the file nor the
// environment sets a value
const (
	DefaultConcurrency = 4
	DefaultPort        = 8080
)

// Environment variables read by ApplyEnv
const (
	EnvDatabaseURL  = "DATABASE_URL"
	EnvPort         = "PORT"
	EnvConcurrency  = "ANALYZER_CONCURRENCY"
	EnvPatternsFile = "ANALYZER_PATTERNS_FILE"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Resume  string `json:"resume,omitempty"`   // Path to the resume text or HTML file
	Job     string `json:"job,omitempty"`      // Path to a job description text file
	JobHTML string `json:"job_html,omitempty"` // Path to a saved job posting page

	// Analysis options
	ExperienceLevel   string `json:"experience_level,omitempty"`
	YearsOfExperience *int   `json:"years_of_experience,omitempty"`
	Category          string `json:"category,omitempty"`
	PatternsFile      string `json:"patterns_file,omitempty"` // Replaces the embedded pattern library

	// Output and runtime
	OutDir      string `json:"out_dir,omitempty"`
	Concurrency int    `json:"concurrency,omitempty"` // Parallel analyses in batch mode
	Port        int    `json:"port,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required inputs are checked by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobHTML != "" {
		return fmt.Errorf("config error: 'job' and 'job_html' are mutually exclusive")
	}

	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.YearsOfExperience != nil && (*c.YearsOfExperience < 0 || *c.YearsOfExperience > 60) {
		return fmt.Errorf("config error: 'years_of_experience' must be between 0 and 60")
	}
	if c.ExperienceLevel != "" && types.ExperienceLevel(c.ExperienceLevel).Rank() < 0 {
		return fmt.Errorf("config error: unknown experience_level %q", c.ExperienceLevel)
	}

	files := []struct {
		name string
		path string
	}{
		{"resume", c.Resume},
		{"job", c.Job},
		{"job_html", c.JobHTML},
		{"patterns_file", c.PatternsFile},
	}
	for _, f := range files {
		if f.path == "" {
			continue
		}
		if _, err := os.Stat(f.path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", f.name, f.path)
		}
	}

	return nil
}

// ApplyEnv fills fields the config file left empty from the environment.
// A malformed numeric variable is an error rather than silently ignored.
func (c *Config) ApplyEnv() error {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv(EnvDatabaseURL)
	}
	if c.PatternsFile == "" {
		c.PatternsFile = os.Getenv(EnvPatternsFile)
	}

	ints := []struct {
		name   string
		target *int
	}{
		{EnvPort, &c.Port},
		{EnvConcurrency, &c.Concurrency},
	}
	for _, v := range ints {
		raw := os.Getenv(v.name)
		if raw == "" || *v.target != 0 {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("config error: %s must be an integer: %w", v.name, err)
		}
		*v.target = n
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	strs := []struct {
		value    *string
		fallback string
	}{
		{&result.Resume, defaults.Resume},
		{&result.Job, defaults.Job},
		{&result.JobHTML, defaults.JobHTML},
		{&result.ExperienceLevel, defaults.ExperienceLevel},
		{&result.Category, defaults.Category},
		{&result.PatternsFile, defaults.PatternsFile},
		{&result.OutDir, defaults.OutDir},
		{&result.DatabaseURL, defaults.DatabaseURL},
	}
	for _, s := range strs {
		if *s.value == "" {
			*s.value = s.fallback
		}
	}

	if result.YearsOfExperience == nil {
		result.YearsOfExperience = defaults.YearsOfExperience
	}

	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.Concurrency == 0 {
		result.Concurrency = DefaultConcurrency
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Port == 0 {
		result.Port = DefaultPort
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
