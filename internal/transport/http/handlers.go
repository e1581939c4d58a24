package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"quiz-grading-service/internal/app"
	"quiz-grading-service/internal/domain"
)

// NewRouter wires the REST and WebSocket surface of the grading service.
func NewRouter(service *app.GradingService) chi.Router {
	h := &handlers{service: service}
	ws := NewFeedHandler(service)

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Route("/quizzes/{quizID}", func(r chi.Router) {
		r.Post("/submissions", h.submit)
		r.Get("/submissions/{studentID}", h.getSubmission)
		r.Post("/submissions/{studentID}/grades", h.grade)
		r.Get("/stats", h.stats)
		r.Get("/feed", ws.ServeFeed)
	})
	return r
}

type handlers struct {
	service *app.GradingService
}

type submitRequest struct {
	StudentID   string         `json:"studentId"`
	StudentName string         `json:"studentName"`
	Answers     map[int]string `json:"answers"` // question index -> raw response
}

type gradeRequest struct {
	Items map[int]domain.Judgment `json:"items"` // answer index -> judgment
}

func (h *handlers) submit(w http.ResponseWriter, r *http.Request) {
	quizID := strings.TrimSpace(chi.URLParam(r, "quizID"))

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	if req.StudentID == "" || req.StudentName == "" {
		writeError(w, http.StatusBadRequest, "studentId and studentName are required")
		return
	}

	sub, err := h.service.Submit(r.Context(), quizID, req.StudentID, req.StudentName, req.Answers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (h *handlers) getSubmission(w http.ResponseWriter, r *http.Request) {
	quizID := strings.TrimSpace(chi.URLParam(r, "quizID"))
	studentID := strings.TrimSpace(chi.URLParam(r, "studentID"))

	sub, err := h.service.GetSubmission(r.Context(), quizID, studentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *handlers) grade(w http.ResponseWriter, r *http.Request) {
	quizID := strings.TrimSpace(chi.URLParam(r, "quizID"))
	studentID := strings.TrimSpace(chi.URLParam(r, "studentID"))

	var req gradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}

	sub, err := h.service.Grade(r.Context(), quizID, studentID, req.Items)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *handlers) stats(w http.ResponseWriter, r *http.Request) {
	quizID := strings.TrimSpace(chi.URLParam(r, "quizID"))
	writeJSON(w, http.StatusOK, h.service.Stats(r.Context(), quizID))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrQuizNotFound), errors.Is(err, domain.ErrSubmissionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
