package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-analyzer/internal/types"
)

const analysisColumns = `id, resume_id, pattern_version, overall_score, grade, input, result, created_at`

// SaveAnalysis stores an analysis of a resume and returns the stored record
func (db *DB) SaveAnalysis(ctx context.Context, resumeID uuid.UUID, input types.AnalysisInput, result *types.AnalysisResult) (*AnalysisRecord, error) {
	record, err := newRecord(resumeID, input, result)
	if err != nil {
		return nil, err
	}
	inputJSON, resultJSON, err := record.encode()
	if err != nil {
		return nil, err
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO resume_analyses (id, resume_id, pattern_version, overall_score, grade, input, result)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`,
		record.ID, record.ResumeID, record.PatternVersion, record.OverallScore, record.Grade, inputJSON, resultJSON,
	).Scan(&record.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	return record, nil
}

// GetAnalysis retrieves an analysis by ID. It returns nil without error when
// no analysis has that ID.
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*AnalysisRecord, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+analysisColumns+` FROM resume_analyses WHERE id = $1`, id)

	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return record, nil
}

// ListAnalyses retrieves the analyses of a resume, newest first
func (db *DB) ListAnalyses(ctx context.Context, resumeID uuid.UUID, limit int) ([]AnalysisRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+analysisColumns+` FROM resume_analyses
		 WHERE resume_id = $1 ORDER BY created_at DESC LIMIT $2`,
		resumeID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	records := []AnalysisRecord{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return records, nil
}

// DeleteAnalysis deletes one analysis
func (db *DB) DeleteAnalysis(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM resume_analyses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrAnalysisNotFound, id)
	}
	return nil
}

func scanRecord(row pgx.Row) (*AnalysisRecord, error) {
	var record AnalysisRecord
	var inputJSON, resultJSON []byte
	if err := row.Scan(&record.ID, &record.ResumeID, &record.PatternVersion, &record.OverallScore,
		&record.Grade, &inputJSON, &resultJSON, &record.CreatedAt); err != nil {
		return nil, err
	}
	if err := record.decode(inputJSON, resultJSON); err != nil {
		return nil, err
	}
	return &record, nil
}
