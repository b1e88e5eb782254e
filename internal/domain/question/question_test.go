package question_test

import (
	"errors"
	"testing"

	"github.com/arcadeprep/backend/internal/domain/question"
)

func newQuestion(t *testing.T) *question.Question {
	t.Helper()
	q, err := question.New(
		"ethics",
		"Which body publishes the ACA Code of Ethics?",
		"APA", "ACA", "NBCC", "CACREP",
		"b",
		"The American Counseling Association publishes the ACA Code of Ethics.",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return q
}

func TestNew_AssignsID(t *testing.T) {
	q := newQuestion(t)
	if q.ID == "" {
		t.Error("expected a generated id")
	}
}

func TestNew_EmptyPrompt(t *testing.T) {
	_, err := question.New("ethics", "", "A", "B", "", "", "a", "")
	if err == nil {
		t.Error("expected error for empty prompt, got nil")
	}
}

func TestNew_CorrectChoiceMustExist(t *testing.T) {
	_, err := question.New("ethics", "Prompt", "A", "B", "", "", "d", "")
	if err == nil {
		t.Fatal("expected error when correct choice names an empty slot")
	}
	// A malformed bank question is a construction failure, not the
	// submit-time sentinel.
	if errors.Is(err, question.ErrInvalidChoice) {
		t.Errorf("expected a distinct construction error, got %v", err)
	}
}

func TestChoices_SkipsEmptySlots(t *testing.T) {
	q, err := question.New("research", "Prompt", "Yes", "No", "", "", "a", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	choices := q.Choices()
	if len(choices) != 2 {
		t.Fatalf("expected 2 choices, got %d", len(choices))
	}
	if _, ok := choices["c"]; ok {
		t.Error("expected empty slot c to be absent")
	}
}

func TestHasChoice_NormalizesLabel(t *testing.T) {
	q := newQuestion(t)

	for _, label := range []string{"a", "A", " b ", "D"} {
		if !q.HasChoice(label) {
			t.Errorf("expected %q to be a valid choice", label)
		}
	}
	if q.HasChoice("e") {
		t.Error("expected e to be rejected")
	}
}

func TestIsCorrect_CaseAndWhitespaceInsensitive(t *testing.T) {
	q := newQuestion(t)

	for _, chosen := range []string{"b", "B", " b ", "\tB\n"} {
		if !q.IsCorrect(chosen) {
			t.Errorf("expected %q to be judged correct", chosen)
		}
	}
	if q.IsCorrect("a") {
		t.Error("expected a to be judged incorrect")
	}
}
