package main

import (
	"os"
	"path/filepath"
	"testing"
)

// writeFile creates a file with content under dir and returns its path
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

const sampleResume = `Jane Doe
jane@example.com | (555) 123-4567 | linkedin.com/in/janedoe

Experience
- Reduced API latency by 35% for 2M users using Go and PostgreSQL
- Responsible for the internal billing dashboard
- Launched a fraud scoring pipeline on AWS

Education
B.S. Computer Science, 2016

Skills
Go, Python, PostgreSQL, AWS, Docker`
