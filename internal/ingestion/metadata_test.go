package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_ToJSON(t *testing.T) {
	metadata := &Metadata{
		Source:     "resume.txt",
		Format:     FormatText,
		Timestamp:  "2024-01-01T00:00:00Z",
		Hash:       "abcd1234",
		Characters: 12,
	}

	jsonBytes, err := metadata.ToJSON()
	require.NoError(t, err)

	var decoded Metadata
	require.NoError(t, json.Unmarshal(jsonBytes, &decoded))
	assert.Equal(t, *metadata, decoded)
}

func TestComputeHash(t *testing.T) {
	hash1 := computeHash("test content")
	hash2 := computeHash("different content")

	assert.Len(t, hash1, 64)
	assert.NotEqual(t, hash1, hash2)
	assert.Equal(t, hash1, computeHash("test content"))
}

func TestNewMetadata(t *testing.T) {
	metadata := NewMetadata("résumé", "resume.txt", FormatText)

	assert.Equal(t, "resume.txt", metadata.Source)
	assert.Equal(t, FormatText, metadata.Format)
	assert.Equal(t, computeHash("résumé"), metadata.Hash)
	assert.Equal(t, 6, metadata.Characters)

	_, err := time.Parse(time.RFC3339, metadata.Timestamp)
	assert.NoError(t, err)
}
