package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextFromHTML(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name: "job board content selector",
			html: `<html><body><div class="sidebar">Sidebar</div>
<div class="job-description"><h1>Senior Engineer</h1><p>We need   Go   and SQL.</p></div>
<div class="advertisement">Ad</div></body></html>`,
			expected: "Senior Engineer\nWe need Go and SQL.",
		},
		{
			name:     "list items become bullets",
			html:     `<main><h2>Experience</h2><ul><li>Built APIs</li><li>Led a team of 4</li></ul></main>`,
			expected: "Experience\n- Built APIs\n- Led a team of 4",
		},
		{
			name:     "line breaks are kept",
			html:     `<body><p>Jane Doe<br>jane@example.com</p></body>`,
			expected: "Jane Doe\njane@example.com",
		},
		{
			name: "scripts and styles removed",
			html: `<html><head><style>body { color: red; }</style></head>
<body><main><p>Content here</p><script>alert('x');</script></main></body></html>`,
			expected: "Content here",
		},
		{
			name:     "falls back to body",
			html:     `<html><body><nav>Menu</nav><h1>Title</h1><p>Content</p><footer>Footer</footer></body></html>`,
			expected: "Title\nContent",
		},
		{
			name:     "resume container wins over main",
			html:     `<body><main><p>Outer</p><section class="resume"><p>Inner</p></section></main></body>`,
			expected: "Inner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := ExtractTextFromHTML(tt.html)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestExtractTextFromHTML_Empty(t *testing.T) {
	text, err := ExtractTextFromHTML("")
	require.NoError(t, err)
	assert.Empty(t, text)
}
