// internal/api/router.go
package api

import "net/http"

// RegisterRoutes attaches every handler to the mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Chapters
	mux.HandleFunc("GET /chapters", h.listChapters)

	// Sessions
	mux.HandleFunc("POST /sessions", h.createSession)
	mux.HandleFunc("GET /sessions/active", h.getActiveSession)
	mux.HandleFunc("GET /sessions/{sessionID}", h.getSession)
	mux.HandleFunc("GET /sessions/{sessionID}/next-question", h.getNextQuestion)
	mux.HandleFunc("POST /sessions/{sessionID}/answers", h.submitAnswer)
	mux.HandleFunc("GET /sessions/{sessionID}/analytics", h.getAnalytics)
	mux.HandleFunc("GET /sessions/{sessionID}/review", h.getReview)
}
