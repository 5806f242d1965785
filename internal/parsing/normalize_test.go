package parsing

import (
	"testing"

	"github.com/jonathan/resume-analyzer/internal/patterns"
	"github.com/stretchr/testify/assert"
)

func TestCanonicalTerm(t *testing.T) {
	lib := patterns.Default()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"known technology", "javascript", "JavaScript"},
		{"known technology upper", "AWS", "AWS"},
		{"golang alias", "golang", "Go"},
		{"mixed case kept", "gRPC", "gRPC"},
		{"single lowercase word", "terraform", "Terraform"},
		{"multi-word lowercase kept", "machine learning", "machine learning"},
		{"whitespace collapsed", "  node.js  ", "Node.js"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanonicalTerm(lib, tt.input))
		})
	}
}

func TestNormalizeTerm(t *testing.T) {
	assert.Equal(t, "machine learning", NormalizeTerm("  Machine   Learning "))
	assert.Equal(t, "", NormalizeTerm(""))
}
