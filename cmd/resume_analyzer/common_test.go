package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/patterns"
	"github.com/jonathan/resume-analyzer/internal/pipeline"
	"github.com/jonathan/resume-analyzer/internal/types"
)

func flagsChanged(names ...string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func TestResolveConfig_FlagsOverrideFile(t *testing.T) {
	t.Setenv(config.EnvConcurrency, "")
	t.Setenv(config.EnvPort, "")
	t.Setenv(config.EnvPatternsFile, "")
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.json", `{"category": "data", "experience_level": "mid", "concurrency": 2}`)

	f := inputFlags{configPath: cfgPath, category: "marketing", years: 5}
	cfg, err := f.resolveConfig(flagsChanged("category", "years"))
	require.NoError(t, err)

	assert.Equal(t, "marketing", cfg.Category)
	assert.Equal(t, "mid", cfg.ExperienceLevel)
	require.NotNil(t, cfg.YearsOfExperience)
	assert.Equal(t, 5, *cfg.YearsOfExperience)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.Equal(t, config.DefaultPort, cfg.Port)
}

func TestResolveConfig_Errors(t *testing.T) {
	dir := t.TempDir()
	jobPath := writeFile(t, dir, "job.txt", "Python")

	tests := []struct {
		name    string
		flags   inputFlags
		changed []string
	}{
		{"missing config file", inputFlags{configPath: filepath.Join(dir, "nope.json")}, nil},
		{"bad level", inputFlags{level: "guru"}, []string{"level"}},
		{"years out of range", inputFlags{years: 99}, []string{"years"}},
		{"exclusive job flags", inputFlags{job: jobPath, jobHTML: jobPath}, []string{"job", "job-html"}},
		{"missing job file", inputFlags{job: filepath.Join(dir, "missing.txt")}, []string{"job"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.flags.resolveConfig(flagsChanged(tt.changed...))
			assert.Error(t, err)
		})
	}
}

func TestReadJobDescription(t *testing.T) {
	dir := t.TempDir()
	textPath := writeFile(t, dir, "job.txt", "We need   Python\r\nand AWS.")
	htmlPath := writeFile(t, dir, "posting.html", `<html><body><nav>Menu</nav><main><h1>Engineer</h1><ul><li>Kubernetes</li></ul></main></body></html>`)

	text, err := readJobDescription(config.Config{Job: textPath})
	require.NoError(t, err)
	assert.Equal(t, "We need Python\nand AWS.", text)

	html, err := readJobDescription(config.Config{JobHTML: htmlPath})
	require.NoError(t, err)
	assert.Contains(t, html, "Kubernetes")
	assert.NotContains(t, html, "Menu")

	none, err := readJobDescription(config.Config{})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = readJobDescription(config.Config{JobHTML: filepath.Join(dir, "missing.html")})
	assert.Error(t, err)
}

func TestBuildInput(t *testing.T) {
	years := 3
	cfg := config.Config{ExperienceLevel: "senior", YearsOfExperience: &years, Category: "data"}

	input := buildInput(cfg, "resume", "jd")
	assert.Equal(t, types.AnalysisInput{
		Text:              "resume",
		JobDescription:    "jd",
		ExperienceLevel:   types.LevelSenior,
		YearsOfExperience: &years,
		Category:          "data",
	}, input)
}

func TestEncodeResult(t *testing.T) {
	result, err := analysis.New(patterns.Default()).Analyze(types.AnalysisInput{Text: sampleResume})
	require.NoError(t, err)

	data, err := encodeResult(result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "score")
	assert.Contains(t, decoded, "suggestions")
}

func TestLoadLibrary(t *testing.T) {
	lib, err := loadLibrary("")
	require.NoError(t, err)
	assert.Same(t, patterns.Default(), lib)

	_, err = loadLibrary(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "jane", outputName("/tmp/resumes/jane.txt"))
	assert.Equal(t, "cv.final", outputName("cv.final.html"))
}

func TestWriteOutcomes(t *testing.T) {
	dir := t.TempDir()
	result, err := analysis.New(patterns.Default()).Analyze(types.AnalysisInput{Text: sampleResume})
	require.NoError(t, err)

	outcomes := []pipeline.Outcome{
		{Name: "jane", Result: result},
		{Name: "broken", Err: assert.AnError},
	}
	rows := writeOutcomes(dir, outcomes)

	require.Len(t, rows, 2)
	assert.NoError(t, rows[0].Err)
	assert.Equal(t, result.Score.Overall, rows[0].Overall)
	assert.ErrorIs(t, rows[1].Err, assert.AnError)

	_, err = os.Stat(filepath.Join(dir, "jane.analysis.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "broken.analysis.json"))
	assert.True(t, os.IsNotExist(err))
}
