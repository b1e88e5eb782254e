package api

import (
	"net/http"
)

// ── Request / Response types ────────────────────────────────────────────────

type ChapterResponse struct {
	Name          string `json:"name"`
	QuestionCount int    `json:"questionCount"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listChapters lists the chapters of the question bank.
// @Summary      List chapters
// @Tags         Chapters
// @Produce      json
// @Success      200  {array}  ChapterResponse
// @Router       /chapters [get]
func (h *Handler) listChapters(w http.ResponseWriter, r *http.Request) {
	chapters, err := h.store.ListChapters()
	if h.handleServiceError(w, err, "chapters") {
		return
	}

	response := make([]ChapterResponse, len(chapters))
	for i, c := range chapters {
		response[i] = ChapterResponse{
			Name:          c.Name,
			QuestionCount: c.QuestionCount,
		}
	}

	respondJSON(w, http.StatusOK, response)
}
