// Package ingestion turns resume and job-description files into clean text.
package ingestion

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Input formats recorded in Metadata
const (
	FormatText = "text"
	FormatHTML = "html"
)

var (
	innerSpaceRe = regexp.MustCompile(`[ \t]+`)
	blankRunRe   = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes line endings and whitespace while keeping the line
// structure that segmentation relies on
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.TrimPrefix(content, "\ufeff")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = blankRunRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses runs of spaces inside a line. Leading indentation is
// kept so nested bullets stay nested.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	indent := len(line) - len(trimmed)
	if strings.HasPrefix(trimmed, "#") {
		indent = 0
	}
	return strings.Repeat(" ", indent) + innerSpaceRe.ReplaceAllString(trimmed, " ")
}

// IsHTMLPath reports whether path names an HTML document
func IsHTMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// IngestFromFile reads a text or HTML file and returns its cleaned text with
// metadata. HTML is detected by extension.
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, &FileReadError{Path: path, Message: "file not found", Cause: err}
		}
		return "", nil, &FileReadError{Path: path, Message: "failed to read file", Cause: err}
	}

	format := FormatText
	text := string(content)
	if IsHTMLPath(path) {
		format = FormatHTML
		text, err = ExtractTextFromHTML(text)
		if err != nil {
			return "", nil, &FileReadError{Path: path, Message: "failed to parse HTML", Cause: err}
		}
	}

	cleaned := CleanText(text)
	return cleaned, NewMetadata(cleaned, path, format), nil
}

// WriteOutput writes an analysis document and its metadata next to each
// other as <name>.analysis.json and <name>.meta.json
func WriteOutput(outDir, name string, analysisJSON []byte, metadata *Metadata) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return &FileReadError{Path: outDir, Message: "failed to create output directory", Cause: err}
	}

	analysisPath := filepath.Join(outDir, name+".analysis.json")
	if err := os.WriteFile(analysisPath, analysisJSON, 0644); err != nil {
		return &FileReadError{Path: analysisPath, Message: "failed to write analysis", Cause: err}
	}

	if metadata == nil {
		return nil
	}
	metaJSON, err := metadata.ToJSON()
	if err != nil {
		return err
	}
	metaPath := filepath.Join(outDir, name+".meta.json")
	if err := os.WriteFile(metaPath, metaJSON, 0644); err != nil {
		return &FileReadError{Path: metaPath, Message: "failed to write metadata", Cause: err}
	}
	return nil
}
