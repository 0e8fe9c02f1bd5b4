package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/interview-coach/internal/db"
	"github.com/jonathan/interview-coach/internal/questions"
	"github.com/jonathan/interview-coach/internal/review"
)

// AnalyzeRequest represents the request body for /analyze
type AnalyzeRequest struct {
	Design string `json:"design" validate:"required"`
}

// AnalyzeResponse represents the response for /analyze
type AnalyzeResponse struct {
	Feedback review.CritiqueResult `json:"feedback"`
	Diagram  string                `json:"diagram"`
}

// EvaluateRequest represents the request body for /evaluate
type EvaluateRequest struct {
	Question    string `json:"question" validate:"required"`
	Response    string `json:"response"`
	DrawingData string `json:"drawingData"`
}

// EvaluateResponse represents the response for /evaluate
type EvaluateResponse struct {
	Evaluation *review.EvaluationResult `json:"evaluation"`
}

// FollowUpRequest represents the request body for /followup
type FollowUpRequest struct {
	Design   string `json:"design" validate:"required"`
	Question string `json:"question" validate:"required"`
}

// FollowUpResponse represents the response for /followup
type FollowUpResponse struct {
	Answer string `json:"answer"`
}

// QuestionResponse represents the response for /question
type QuestionResponse struct {
	Question string `json:"question"`
}

// CustomQuestionRequest represents the request body for POST /question
type CustomQuestionRequest struct {
	CustomQuestion string `json:"customQuestion" validate:"required"`
}

// handleGetQuestion returns a random question from the curated bank
func (s *Server) handleGetQuestion(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, QuestionResponse{Question: questions.Random()})
}

// handleCustomQuestion echoes a caller-supplied question after trimming
func (s *Server) handleCustomQuestion(w http.ResponseWriter, r *http.Request) {
	var req CustomQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	question, err := questions.Custom(req.CustomQuestion)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Custom question is required")
		return
	}

	s.jsonResponse(w, http.StatusOK, QuestionResponse{Question: question})
}

// handleAnalyze generates a critique and best-effort diagram for a design
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	report, err := s.service.Critique(r.Context(), req.Design)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), errorMessage(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, AnalyzeResponse{
		Feedback: report.Feedback,
		Diagram:  report.Diagram,
	})
}

// handleEvaluate scores a candidate response against the question
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	result, err := s.service.Evaluate(r.Context(), req.Question, req.Response, req.DrawingData)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), errorMessage(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, EvaluateResponse{Evaluation: result})
}

// handleFollowUp answers a follow-up question about a design
func (s *Server) handleFollowUp(w http.ResponseWriter, r *http.Request) {
	var req FollowUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	answer, err := s.service.FollowUp(r.Context(), req.Design, req.Question)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), errorMessage(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, FollowUpResponse{Answer: answer})
}

// handleListHistory returns stored interactions, newest first
func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusInternalServerError, "History store not configured")
		return
	}

	entries, err := s.db.ListHistory(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to read history")
		return
	}

	s.jsonResponse(w, http.StatusOK, entries)
}

// handleAppendHistory stores one interaction
func (s *Server) handleAppendHistory(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusInternalServerError, "History store not configured")
		return
	}

	var entry db.NewHistoryEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	stored, err := s.db.AppendHistory(r.Context(), entry)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save history")
		return
	}

	s.jsonResponse(w, http.StatusCreated, stored)
}

// handleClearHistory deletes all stored interactions
func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusInternalServerError, "History store not configured")
		return
	}

	if err := s.db.ClearHistory(r.Context()); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to clear history")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]bool{"ok": true})
}

// validationMessage renders the first struct validation failure as a
// user-facing message keyed by the JSON field name.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Sprintf("%s is required", strings.ToLower(verrs[0].Field()))
	}
	return "Invalid request body"
}
