package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// listQuery holds the query parameters of GET /resumes/{id}/analyses
type listQuery struct {
	Limit int `validate:"min=0,max=200"`
}

// suggestRequest is the body of POST /suggest
type suggestRequest struct {
	Sentence string `json:"sentence" validate:"required,max=2000"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"pattern_version": s.engine.Library().Version,
		"storage":         s.store != nil,
	})
}

// handleAnalyze analyzes the posted resume without storing anything
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	input, err := s.readInput(w, r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	result, err := s.engine.Analyze(input)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleSuggest returns rewrite candidates for one sentence
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.errorResponse(w, r, &ErrValidation{Field: "body", Message: "must be a JSON object with a sentence"})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, r, &ErrValidation{Field: "sentence", Message: "is required and at most 2000 characters"})
		return
	}
	s.jsonResponse(w, http.StatusOK, s.engine.Suggest(req.Sentence))
}

// handleCreateAnalysis analyzes the posted resume and stores the result
func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, r, &ErrStorageUnavailable{})
		return
	}
	resumeID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	input, err := s.readInput(w, r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	result, err := s.engine.Analyze(input)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	record, err := s.store.SaveAnalysis(r.Context(), resumeID, input, result)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	s.requestLogger(r.Context()).Info("analysis stored",
		"analysis_id", record.ID, "resume_id", resumeID, "overall", result.Score.Overall)
	s.jsonResponse(w, http.StatusCreated, record)
}

// handleListAnalyses lists the stored analyses of a resume, newest first
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, r, &ErrStorageUnavailable{})
		return
	}
	resumeID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	var query listQuery
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if query.Limit, err = strconv.Atoi(raw); err != nil {
			s.errorResponse(w, r, &ErrValidation{Field: "limit", Message: "must be an integer"})
			return
		}
	}
	if err := s.validate.Struct(query); err != nil {
		s.errorResponse(w, r, &ErrValidation{Field: "limit", Message: "must be between 0 and 200"})
		return
	}

	records, err := s.store.ListAnalyses(r.Context(), resumeID, query.Limit)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resume_id": resumeID,
		"analyses":  records,
		"count":     len(records),
	})
}

// handleGetAnalysis returns one stored analysis
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, r, &ErrStorageUnavailable{})
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	record, err := s.store.GetAnalysis(r.Context(), id)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if record == nil {
		s.errorResponse(w, r, &ErrAnalysisNotFound{AnalysisID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, record)
}

// handleDeleteAnalysis deletes one stored analysis
func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, r, &ErrStorageUnavailable{})
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	if err := s.store.DeleteAnalysis(r.Context(), id); err != nil {
		if errors.Is(err, db.ErrAnalysisNotFound) {
			err = &ErrAnalysisNotFound{AnalysisID: id}
		}
		s.errorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readInput reads and decodes an analysis request body
func (s *Server) readInput(w http.ResponseWriter, r *http.Request) (types.AnalysisInput, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return types.AnalysisInput{}, &ErrPayloadTooLarge{Limit: tooLarge.Limit}
		}
		return types.AnalysisInput{}, &ErrValidation{Field: "body", Message: "failed to read request body"}
	}
	return analysis.DecodeInput(body)
}

// pathUUID parses a path parameter as a UUID
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: name, Message: "must be a UUID"}
	}
	return id, nil
}
