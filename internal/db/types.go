package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// DefaultListLimit caps ListAnalyses when no limit is given
const DefaultListLimit = 50

// ErrAnalysisNotFound is returned when deleting an analysis that does not exist
var ErrAnalysisNotFound = errors.New("analysis not found")

// AnalysisRecord is one stored analysis of a resume
type AnalysisRecord struct {
	ID             uuid.UUID             `json:"id"`
	ResumeID       uuid.UUID             `json:"resume_id"`
	PatternVersion string                `json:"pattern_version"`
	OverallScore   int                   `json:"overall_score"`
	Grade          string                `json:"grade"`
	Input          types.AnalysisInput   `json:"input"`
	Result         *types.AnalysisResult `json:"result"`
	CreatedAt      time.Time             `json:"created_at"`
}

// newRecord builds an unsaved record with a fresh id
func newRecord(resumeID uuid.UUID, input types.AnalysisInput, result *types.AnalysisResult) (*AnalysisRecord, error) {
	if result == nil {
		return nil, fmt.Errorf("analysis result is required")
	}
	return &AnalysisRecord{
		ID:             uuid.New(),
		ResumeID:       resumeID,
		PatternVersion: result.PatternVersion,
		OverallScore:   result.Score.Overall,
		Grade:          result.Grade,
		Input:          input,
		Result:         result,
	}, nil
}

// encode returns the JSON columns of r
func (r *AnalysisRecord) encode() (input, result []byte, err error) {
	input, err = json.Marshal(r.Input)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal analysis input: %w", err)
	}
	result, err = json.Marshal(r.Result)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal analysis result: %w", err)
	}
	return input, result, nil
}

// decode fills the Input and Result of r from their JSON columns
func (r *AnalysisRecord) decode(input, result []byte) error {
	if err := json.Unmarshal(input, &r.Input); err != nil {
		return fmt.Errorf("failed to unmarshal analysis input: %w", err)
	}
	r.Result = &types.AnalysisResult{}
	if err := json.Unmarshal(result, r.Result); err != nil {
		return fmt.Errorf("failed to unmarshal analysis result: %w", err)
	}
	return nil
}
