package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/db"
)

// ErrAnalysisNotFound indicates no analysis has the requested id
type ErrAnalysisNotFound struct {
	AnalysisID uuid.UUID
}

func (e *ErrAnalysisNotFound) Error() string {
	return fmt.Sprintf("analysis not found: %s", e.AnalysisID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrPayloadTooLarge indicates a request body over the size limit
type ErrPayloadTooLarge struct {
	Limit int64
}

func (e *ErrPayloadTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// ErrStorageUnavailable indicates the server runs without a store
type ErrStorageUnavailable struct{}

func (e *ErrStorageUnavailable) Error() string {
	return "analysis storage is not configured"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var invalid *analysis.InvalidInputError
	if errors.As(err, &invalid) {
		return http.StatusBadRequest
	}
	if errors.Is(err, db.ErrAnalysisNotFound) {
		return http.StatusNotFound
	}

	switch err.(type) {
	case *ErrAnalysisNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case *ErrStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
