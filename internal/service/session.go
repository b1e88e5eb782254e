// internal/service/session.go
package service

import (
	"errors"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/arcadeprep/backend/internal/analytics"
	"github.com/arcadeprep/backend/internal/domain/question"
	"github.com/arcadeprep/backend/internal/domain/studysession"
	"github.com/arcadeprep/backend/internal/metrics"
	"github.com/arcadeprep/backend/internal/store"
)

// ErrInvalidTimeSpent is returned when a submitted time-spent value is
// negative. Negative values are rejected, not clamped.
var ErrInvalidTimeSpent = errors.New("time spent cannot be negative")

// SelectionCriteria narrows the question bank for a new session. Empty
// Chapters means the whole bank; MaxQuestions caps the pool size after the
// shuffle.
type SelectionCriteria struct {
	Chapters     []string
	MaxQuestions *int
}

// Progress reports how far through the pool a session is.
type Progress struct {
	Current        int `json:"current"`
	Total          int `json:"total"`
	CorrectAnswers int `json:"correctAnswers"`
	Percentage     int `json:"percentage"`
}

// NextQuestion is what the sequencer serves: either the question at the
// lowest unconsumed position, or the completion signal.
type NextQuestion struct {
	Question   *question.Question
	Progress   Progress
	IsComplete bool
}

// AnswerResult is returned to the caller after a successful submission.
type AnswerResult struct {
	IsCorrect     bool
	CorrectChoice string
	Explanation   string
	UserAnswer    string
}

// Summary exposes a session's counters and accuracy.
type Summary struct {
	Session  *studysession.Session
	Accuracy int
}

// ReviewFilter selects which answered questions a review page includes.
type ReviewFilter string

const (
	ReviewAll       ReviewFilter = "all"
	ReviewCorrect   ReviewFilter = "correct"
	ReviewIncorrect ReviewFilter = "incorrect"
)

// ReviewPage is one page of answered questions with their stored correctness.
type ReviewPage struct {
	Questions []store.AnsweredQuestion
	Total     int
	Limit     int
	Offset    int
}

// SessionService drives practice sessions: pool creation, sequencing,
// answer recording, and the derived statistics.
type SessionService struct {
	store  *store.SQLiteStore
	logger *slog.Logger
}

// NewSessionService creates a SessionService.
func NewSessionService(s *store.SQLiteStore, logger *slog.Logger) *SessionService {
	return &SessionService{store: s, logger: logger}
}

// CreateSession selects questions per the criteria, builds a randomized pool,
// and persists the session atomically with its pool.
func (ss *SessionService) CreateSession(userID string, criteria SelectionCriteria) (*studysession.Session, error) {
	ids, err := ss.store.ListQuestionIDs(criteria.Chapters)
	if err != nil {
		return nil, err
	}

	// Cap via a shuffled prefix so every question has equal odds of making
	// the cut; the pool itself is shuffled again at construction.
	if criteria.MaxQuestions != nil && *criteria.MaxQuestions > 0 && *criteria.MaxQuestions < len(ids) {
		rand.Shuffle(len(ids), func(i, j int) {
			ids[i], ids[j] = ids[j], ids[i]
		})
		ids = ids[:*criteria.MaxQuestions]
	}

	session, err := studysession.New(userID, ids)
	if err != nil {
		return nil, err
	}

	if err := ss.store.SaveSession(session); err != nil {
		return nil, err
	}

	metrics.SessionsCreated.Inc()
	ss.logger.Info("session created",
		"session_id", session.ID,
		"user_id", userID,
		"total_questions", session.TotalQuestions,
	)
	return session, nil
}

// ActiveSession returns the user's most recently started active session.
func (ss *SessionService) ActiveSession(userID string) (*studysession.Session, error) {
	return ss.store.GetActiveSession(userID)
}

// NextQuestion serves the question at the lowest unconsumed pool position.
// When the pool is exhausted it soft-closes the session and returns the
// completion signal; repeat calls keep returning it without moving the
// completion time.
func (ss *SessionService) NextQuestion(sessionID string) (*NextQuestion, error) {
	session, err := ss.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	q, err := ss.store.NextUnusedQuestion(sessionID)
	if errors.Is(err, store.ErrNotFound) {
		if err := ss.store.CompleteSession(sessionID, time.Now().UTC()); err != nil {
			return nil, err
		}
		if session.IsActive {
			ss.logger.Info("session complete", "session_id", sessionID)
		}
		return &NextQuestion{IsComplete: true, Progress: progressOf(session, 0)}, nil
	}
	if err != nil {
		return nil, err
	}

	return &NextQuestion{Question: q, Progress: progressOf(session, 1)}, nil
}

// SubmitAnswer validates and records one answer. Correctness is derived here,
// once, and stored; the consume-and-count update is a single transaction in
// the store.
func (ss *SessionService) SubmitAnswer(sessionID, questionID, chosen string, timeSpentSeconds int) (*AnswerResult, error) {
	if timeSpentSeconds < 0 {
		return nil, ErrInvalidTimeSpent
	}

	session, err := ss.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsActive {
		return nil, studysession.ErrSessionNotActive
	}

	q, err := ss.store.GetQuestion(questionID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, store.ErrQuestionNotInPool
	}
	if err != nil {
		return nil, err
	}

	if !q.HasChoice(chosen) {
		return nil, question.ErrInvalidChoice
	}

	isCorrect := q.IsCorrect(chosen)
	event := &studysession.AnswerEvent{
		SessionID:        sessionID,
		QuestionID:       questionID,
		ChosenChoice:     question.Normalize(chosen),
		CorrectChoice:    q.CorrectChoice,
		IsCorrect:        isCorrect,
		TimeSpentSeconds: timeSpentSeconds,
		AnsweredAt:       time.Now().UTC(),
	}

	if err := ss.store.RecordAnswer(event); err != nil {
		return nil, err
	}

	result := "incorrect"
	if isCorrect {
		result = "correct"
	}
	metrics.AnswersRecorded.WithLabelValues(result).Inc()

	return &AnswerResult{
		IsCorrect:     isCorrect,
		CorrectChoice: q.CorrectChoice,
		Explanation:   q.Explanation,
		UserAnswer:    event.ChosenChoice,
	}, nil
}

// Summary returns a session's counters with its accuracy percentage.
func (ss *SessionService) Summary(sessionID string) (*Summary, error) {
	session, err := ss.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	return &Summary{Session: session, Accuracy: session.Accuracy()}, nil
}

// Analytics computes the full report over the session's answer history.
func (ss *SessionService) Analytics(sessionID string) (*analytics.Report, error) {
	session, err := ss.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	answered, err := ss.store.ListAnswered(sessionID)
	if err != nil {
		return nil, err
	}

	events := make([]analytics.Event, len(answered))
	for i, a := range answered {
		events[i] = analytics.Event{
			QuestionID:       a.QuestionID,
			Chapter:          a.Chapter,
			IsCorrect:        a.IsCorrect,
			TimeSpentSeconds: a.TimeSpentSeconds,
			AnsweredAt:       a.AnsweredAt,
		}
	}

	report := analytics.Compute(session, events)
	return &report, nil
}

// Review returns one page of answered questions in chronological order.
func (ss *SessionService) Review(sessionID string, filter ReviewFilter, limit, offset int) (*ReviewPage, error) {
	if _, err := ss.store.GetSession(sessionID); err != nil {
		return nil, err
	}

	var correct *bool
	switch filter {
	case ReviewCorrect:
		v := true
		correct = &v
	case ReviewIncorrect:
		v := false
		correct = &v
	}

	questions, err := ss.store.ListAnsweredPage(sessionID, correct, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := ss.store.CountAnswered(sessionID, correct)
	if err != nil {
		return nil, err
	}

	return &ReviewPage{Questions: questions, Total: total, Limit: limit, Offset: offset}, nil
}

func progressOf(session *studysession.Session, pending int) Progress {
	p := Progress{
		Current:        session.QuestionsCompleted + pending,
		Total:          session.TotalQuestions,
		CorrectAnswers: session.CorrectAnswers,
	}
	if session.TotalQuestions > 0 {
		p.Percentage = int(math.Round(float64(session.QuestionsCompleted) / float64(session.TotalQuestions) * 100))
	}
	return p
}
