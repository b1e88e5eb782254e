package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/arcadeprep/backend/internal/domain/question"
	"github.com/arcadeprep/backend/internal/domain/studysession"
	"github.com/arcadeprep/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateSessionRequest struct {
	Chapters     []string `json:"chapters,omitempty"`
	MaxQuestions *int     `json:"max_questions,omitempty" validate:"omitempty,gt=0"`
}

type SessionResponse struct {
	SessionID          string     `json:"sessionId"`
	TotalQuestions     int        `json:"totalQuestions"`
	QuestionsCompleted int        `json:"questionsCompleted"`
	CorrectAnswers     int        `json:"correctAnswers"`
	TotalTimeSeconds   int        `json:"totalTimeSeconds"`
	Accuracy           int        `json:"accuracy"`
	IsActive           bool       `json:"isActive"`
	StartedAt          time.Time  `json:"startedAt"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
}

// QuestionPayload is a question as served to a client mid-session. The
// correct choice and explanation stay server-side until the answer is
// recorded.
type QuestionPayload struct {
	ID      string            `json:"id"`
	Chapter string            `json:"chapter"`
	Prompt  string            `json:"question"`
	Choices map[string]string `json:"choices"`
}

type NextQuestionResponse struct {
	Question   *QuestionPayload  `json:"question"`
	Progress   *service.Progress `json:"progress,omitempty"`
	IsComplete bool              `json:"isComplete"`
	Message    string            `json:"message,omitempty"`
}

type SubmitAnswerRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
	TimeSpent  int    `json:"time_spent"`
}

type SubmitAnswerResponse struct {
	IsCorrect     bool   `json:"isCorrect"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation,omitempty"`
	UserAnswer    string `json:"userAnswer"`
}

type ReviewQuestion struct {
	ID               string            `json:"id"`
	Chapter          string            `json:"chapter"`
	Prompt           string            `json:"question"`
	Choices          map[string]string `json:"choices"`
	CorrectAnswer    string            `json:"correctAnswer"`
	Explanation      string            `json:"explanation,omitempty"`
	UserAnswer       string            `json:"userAnswer"`
	IsCorrect        bool              `json:"isCorrect"`
	TimeSpentSeconds int               `json:"timeSpentSeconds"`
	AnsweredAt       time.Time         `json:"answeredAt"`
}

type ReviewResponse struct {
	SessionID string           `json:"sessionId"`
	Questions []ReviewQuestion `json:"questions"`
	Total     int              `json:"total"`
	Limit     int              `json:"limit"`
	Offset    int              `json:"offset"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// createSession starts a practice session over a randomized question pool.
// @Summary      Start a practice session
// @Description  Select questions (optionally by chapter, optionally capped), shuffle them into a pool, and open a session.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header    string                true  "Calling user id"
// @Param        body       body      CreateSessionRequest  true  "Selection criteria"
// @Success      201        {object}  SessionResponse
// @Failure      400        {object}  errorResponse  "no questions match the selection"
// @Failure      401        {object}  errorResponse
// @Router       /sessions [post]
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		respondError(w, http.StatusUnauthorized, "missing user id")
		return
	}

	var req CreateSessionRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	session, err := h.sessions.CreateSession(uid, service.SelectionCriteria{
		Chapters:     req.Chapters,
		MaxQuestions: req.MaxQuestions,
	})
	if h.handleServiceError(w, err, "session") {
		return
	}

	respondJSON(w, http.StatusCreated, sessionResponse(session))
}

// getActiveSession returns the caller's most recently started active session.
// @Summary      Get the active session
// @Tags         Sessions
// @Produce      json
// @Param        X-User-ID  header    string  true  "Calling user id"
// @Success      200        {object}  SessionResponse
// @Failure      401        {object}  errorResponse
// @Failure      404        {object}  errorResponse  "no active session"
// @Router       /sessions/active [get]
func (h *Handler) getActiveSession(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		respondError(w, http.StatusUnauthorized, "missing user id")
		return
	}

	session, err := h.sessions.ActiveSession(uid)
	if h.handleServiceError(w, err, "session") {
		return
	}

	respondJSON(w, http.StatusOK, sessionResponse(session))
}

// getSession returns a session's counters and accuracy.
// @Summary      Get a session summary
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session id"
// @Success      200        {object}  SessionResponse
// @Failure      404        {object}  errorResponse
// @Router       /sessions/{sessionID} [get]
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	summary, err := h.sessions.Summary(r.PathValue("sessionID"))
	if h.handleServiceError(w, err, "session") {
		return
	}

	respondJSON(w, http.StatusOK, sessionResponse(summary.Session))
}

// getNextQuestion serves the next unanswered question in randomized order.
// @Summary      Peek the next question
// @Description  Returns the question at the lowest unanswered pool position, or the completion signal once the pool is exhausted. Repeated calls return the same question until it is answered.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session id"
// @Success      200        {object}  NextQuestionResponse
// @Failure      404        {object}  errorResponse
// @Router       /sessions/{sessionID}/next-question [get]
func (h *Handler) getNextQuestion(w http.ResponseWriter, r *http.Request) {
	next, err := h.sessions.NextQuestion(r.PathValue("sessionID"))
	if h.handleServiceError(w, err, "session") {
		return
	}

	if next.IsComplete {
		respondJSON(w, http.StatusOK, NextQuestionResponse{
			IsComplete: true,
			Message:    "session complete",
		})
		return
	}

	respondJSON(w, http.StatusOK, NextQuestionResponse{
		Question: questionPayload(next.Question),
		Progress: &next.Progress,
	})
}

// submitAnswer records one answer for a pool question.
// @Summary      Submit an answer
// @Description  Consumes the pool entry and records the answer atomically. A question can be answered at most once per session.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string               true  "Session id"
// @Param        body       body      SubmitAnswerRequest  true  "Chosen answer"
// @Success      200        {object}  SubmitAnswerResponse
// @Failure      400        {object}  errorResponse  "invalid choice or negative time"
// @Failure      404        {object}  errorResponse  "session or question not found"
// @Failure      409        {object}  errorResponse  "already answered or session not active"
// @Router       /sessions/{sessionID}/answers [post]
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req SubmitAnswerRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.sessions.SubmitAnswer(r.PathValue("sessionID"), req.QuestionID, req.Answer, req.TimeSpent)
	if h.handleServiceError(w, err, "session") {
		return
	}

	respondJSON(w, http.StatusOK, SubmitAnswerResponse{
		IsCorrect:     result.IsCorrect,
		CorrectAnswer: result.CorrectChoice,
		Explanation:   result.Explanation,
		UserAnswer:    result.UserAnswer,
	})
}

// getAnalytics aggregates per-session statistics.
// @Summary      Get session analytics
// @Description  Overall stats, per-chapter performance, cumulative progress over time, and the time-spent distribution.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session id"
// @Success      200        {object}  analytics.Report
// @Failure      404        {object}  errorResponse
// @Router       /sessions/{sessionID}/analytics [get]
func (h *Handler) getAnalytics(w http.ResponseWriter, r *http.Request) {
	report, err := h.sessions.Analytics(r.PathValue("sessionID"))
	if h.handleServiceError(w, err, "session") {
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// getReview returns one page of answered questions with explanations.
// @Summary      Review answered questions
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true   "Session id"
// @Param        filter     query     string  false  "all, correct, or incorrect"  Enums(all, correct, incorrect)
// @Param        limit      query     int     false  "Page size (max 200)"
// @Param        offset     query     int     false  "Page offset"
// @Success      200        {object}  ReviewResponse
// @Failure      400        {object}  errorResponse  "bad filter or pagination"
// @Failure      404        {object}  errorResponse
// @Router       /sessions/{sessionID}/review [get]
func (h *Handler) getReview(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	filter := service.ReviewFilter(r.URL.Query().Get("filter"))
	switch filter {
	case "", service.ReviewAll:
		filter = service.ReviewAll
	case service.ReviewCorrect, service.ReviewIncorrect:
	default:
		respondError(w, http.StatusBadRequest, "filter must be all, correct, or incorrect")
		return
	}

	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)
	if limit <= 0 || limit > 200 || offset < 0 {
		respondError(w, http.StatusBadRequest, "invalid pagination")
		return
	}

	page, err := h.sessions.Review(sessionID, filter, limit, offset)
	if h.handleServiceError(w, err, "session") {
		return
	}

	questions := make([]ReviewQuestion, len(page.Questions))
	for i, a := range page.Questions {
		q := question.Question{
			ChoiceA: a.ChoiceA,
			ChoiceB: a.ChoiceB,
			ChoiceC: a.ChoiceC,
			ChoiceD: a.ChoiceD,
		}
		questions[i] = ReviewQuestion{
			ID:               a.QuestionID,
			Chapter:          a.Chapter,
			Prompt:           a.Prompt,
			Choices:          q.Choices(),
			CorrectAnswer:    a.CorrectChoice,
			Explanation:      a.Explanation,
			UserAnswer:       a.UserAnswer,
			IsCorrect:        a.IsCorrect,
			TimeSpentSeconds: a.TimeSpentSeconds,
			AnsweredAt:       a.AnsweredAt,
		}
	}

	respondJSON(w, http.StatusOK, ReviewResponse{
		SessionID: sessionID,
		Questions: questions,
		Total:     page.Total,
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
}

// ── Helpers ─────────────────────────────────────────────────────────────────

func sessionResponse(s *studysession.Session) SessionResponse {
	return SessionResponse{
		SessionID:          s.ID,
		TotalQuestions:     s.TotalQuestions,
		QuestionsCompleted: s.QuestionsCompleted,
		CorrectAnswers:     s.CorrectAnswers,
		TotalTimeSeconds:   s.TotalTimeSeconds,
		Accuracy:           s.Accuracy(),
		IsActive:           s.IsActive,
		StartedAt:          s.StartedAt,
		CompletedAt:        s.CompletedAt,
	}
}

func questionPayload(q *question.Question) *QuestionPayload {
	return &QuestionPayload{
		ID:      q.ID,
		Chapter: q.Chapter,
		Prompt:  q.Prompt,
		Choices: q.Choices(),
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return n
}
