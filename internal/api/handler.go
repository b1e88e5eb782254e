// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/arcadeprep/backend/internal/domain/question"
	"github.com/arcadeprep/backend/internal/domain/studysession"
	"github.com/arcadeprep/backend/internal/service"
	"github.com/arcadeprep/backend/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers. Instead of relying
// on package-level globals, every handler method receives its dependencies
// through this struct.
type Handler struct {
	store    *store.SQLiteStore
	sessions *service.SessionService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(s *store.SQLiteStore, sessions *service.SessionService, logger *slog.Logger) *Handler {
	return &Handler{
		store:    s,
		sessions: sessions,
		validate: validator.New(),
		logger:   logger,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// decodeAndValidate decodes the request body into v and runs struct
// validation. Returns false if a response was already written.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// handleServiceError maps engine errors onto HTTP responses. Returns true if
// an error was handled (caller should return).
func (h *Handler) handleServiceError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, store.ErrQuestionNotInPool):
		respondError(w, http.StatusNotFound, "question not in session pool")
	case errors.Is(err, store.ErrAlreadyAnswered):
		respondError(w, http.StatusConflict, "question already answered")
	case errors.Is(err, studysession.ErrSessionNotActive):
		respondError(w, http.StatusConflict, "session is not active")
	case errors.Is(err, studysession.ErrEmptySelection):
		respondError(w, http.StatusBadRequest, "no questions match the selection")
	case errors.Is(err, question.ErrInvalidChoice):
		respondError(w, http.StatusBadRequest, "invalid choice")
	case errors.Is(err, service.ErrInvalidTimeSpent):
		respondError(w, http.StatusBadRequest, "time spent cannot be negative")
	default:
		h.logger.Error("internal error", "error", err, "entity", entity)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}

// userID resolves the calling user. Authentication itself is an external
// collaborator; the id arrives on a trusted header.
func userID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}
