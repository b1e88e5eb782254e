package question

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrInvalidChoice is returned when a chosen label does not match any
	// non-empty choice on the question.
	ErrInvalidChoice = errors.New("invalid choice")
)

// Labels of the four multiple-choice slots. Not every question fills all four.
const (
	LabelA = "a"
	LabelB = "b"
	LabelC = "c"
	LabelD = "d"
)

// Question is one entry of the question bank. Immutable after creation.
type Question struct {
	ID            string
	Chapter       string
	Prompt        string
	ChoiceA       string
	ChoiceB       string
	ChoiceC       string
	ChoiceD       string
	CorrectChoice string // one of the labels a-d
	Explanation   string
}

// New validates and creates a bank question.
func New(chapter, prompt, choiceA, choiceB, choiceC, choiceD, correct, explanation string) (*Question, error) {
	q := &Question{
		ID:            uuid.NewString(),
		Chapter:       chapter,
		Prompt:        prompt,
		ChoiceA:       choiceA,
		ChoiceB:       choiceB,
		ChoiceC:       choiceC,
		ChoiceD:       choiceD,
		CorrectChoice: Normalize(correct),
		Explanation:   explanation,
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// Validate checks the structural invariants of a question.
func (q *Question) Validate() error {
	if q.Chapter == "" {
		return errors.New("question chapter cannot be empty")
	}
	if q.Prompt == "" {
		return errors.New("question prompt cannot be empty")
	}
	if len(q.Choices()) < 2 {
		return errors.New("question needs at least two choices")
	}
	if !q.HasChoice(q.CorrectChoice) {
		return errors.New("correct answer must name a non-empty choice")
	}
	return nil
}

// Choices returns the non-empty choices keyed by their label.
func (q *Question) Choices() map[string]string {
	choices := make(map[string]string, 4)
	for label, text := range map[string]string{
		LabelA: q.ChoiceA,
		LabelB: q.ChoiceB,
		LabelC: q.ChoiceC,
		LabelD: q.ChoiceD,
	} {
		if text != "" {
			choices[label] = text
		}
	}
	return choices
}

// HasChoice reports whether the label names a non-empty choice.
// The label is normalized before lookup.
func (q *Question) HasChoice(label string) bool {
	_, ok := q.Choices()[Normalize(label)]
	return ok
}

// IsCorrect compares a chosen label against the correct one. This is the
// single place correctness is derived; downstream consumers must reuse the
// stored boolean rather than re-compare.
func (q *Question) IsCorrect(chosen string) bool {
	return Normalize(chosen) == Normalize(q.CorrectChoice)
}

// Normalize trims whitespace and lowercases a choice label so that "B" and
// " b " judge the same answer.
func Normalize(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// ChapterCount pairs a chapter name with the number of bank questions in it.
type ChapterCount struct {
	Name          string
	QuestionCount int
}
