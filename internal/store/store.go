package store

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrAlreadyAnswered is returned when the pool entry for a
	// (session, question) pair was already consumed. Retried submits surface
	// this instead of double-counting.
	ErrAlreadyAnswered = errors.New("question already answered")

	// ErrQuestionNotInPool is returned when a (session, question) pair has no
	// pool entry at all.
	ErrQuestionNotInPool = errors.New("question not in session pool")
)

// AnsweredQuestion is one recorded answer joined with its bank question, as
// served by the review and analytics queries. IsCorrect is the boolean stored
// at answer time; it is never re-derived from the labels.
type AnsweredQuestion struct {
	QuestionID       string
	Chapter          string
	Prompt           string
	ChoiceA          string
	ChoiceB          string
	ChoiceC          string
	ChoiceD          string
	CorrectChoice    string
	Explanation      string
	UserAnswer       string
	IsCorrect        bool
	TimeSpentSeconds int
	AnsweredAt       time.Time
}
