package studysession

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrEmptySelection is returned when a session is requested over an
	// empty question selection. No session row may be created in that case.
	ErrEmptySelection = errors.New("empty question selection")

	// ErrSessionNotActive is returned when an answer is submitted to a
	// session that has already been completed.
	ErrSessionNotActive = errors.New("session is not active")
)

// Session is one practice run over a randomized question pool. Counters are
// mutated only by the answer-recording transaction; the active flag and
// completion time only when the pool is exhausted.
type Session struct {
	ID                 string
	UserID             string
	StartedAt          time.Time
	TotalQuestions     int
	QuestionsCompleted int
	CorrectAnswers     int
	TotalTimeSeconds   int
	IsActive           bool
	CompletedAt        *time.Time

	// Pool holds one entry per selected question, ordered by position.
	// Populated at creation; loaded lazily by the store afterwards.
	Pool []PoolEntry
}

// PoolEntry binds a session to one question at a randomized position.
// Positions form a permutation of 1..N. Used flips to true exactly once.
type PoolEntry struct {
	QuestionID string
	Position   int
	Used       bool
}

// AnswerEvent is the immutable record of a single submitted answer. The
// correct choice is denormalized at write time and the correctness boolean is
// authoritative for everything downstream.
type AnswerEvent struct {
	SessionID        string
	QuestionID       string
	ChosenChoice     string
	CorrectChoice    string
	IsCorrect        bool
	TimeSpentSeconds int
	AnsweredAt       time.Time
}

// New creates a session whose pool is a uniform random permutation of the
// given question ids, each appearing exactly once.
func New(userID string, questionIDs []string) (*Session, error) {
	if len(questionIDs) == 0 {
		return nil, ErrEmptySelection
	}

	pool := shufflePool(questionIDs)

	return &Session{
		ID:             uuid.NewString(),
		UserID:         userID,
		StartedAt:      time.Now().UTC(),
		TotalQuestions: len(pool),
		IsActive:       true,
		Pool:           pool,
	}, nil
}

// Accuracy returns the integer percentage of correct answers so far,
// 0 when nothing has been answered.
func (s *Session) Accuracy() int {
	if s.QuestionsCompleted == 0 {
		return 0
	}
	return int(float64(s.CorrectAnswers)/float64(s.QuestionsCompleted)*100 + 0.5)
}

// shufflePool assigns positions 1..N via an unbiased Fisher-Yates shuffle.
func shufflePool(questionIDs []string) []PoolEntry {
	shuffled := make([]string, len(questionIDs))
	copy(shuffled, questionIDs)

	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	pool := make([]PoolEntry, len(shuffled))
	for i, qid := range shuffled {
		pool[i] = PoolEntry{
			QuestionID: qid,
			Position:   i + 1,
		}
	}
	return pool
}
