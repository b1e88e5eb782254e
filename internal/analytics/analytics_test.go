package analytics_test

import (
	"testing"
	"time"

	"github.com/arcadeprep/backend/internal/analytics"
	"github.com/arcadeprep/backend/internal/domain/studysession"
)

func event(chapter string, correct bool, seconds int, offset int) analytics.Event {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return analytics.Event{
		Chapter:          chapter,
		IsCorrect:        correct,
		TimeSpentSeconds: seconds,
		AnsweredAt:       base.Add(time.Duration(offset) * time.Minute),
	}
}

func TestCompute_EmptySession(t *testing.T) {
	session := &studysession.Session{
		TotalQuestions: 100,
		IsActive:       true,
		StartedAt:      time.Now().UTC(),
	}

	report := analytics.Compute(session, nil)

	if report.Session.Accuracy != 0 {
		t.Errorf("expected accuracy 0, got %d", report.Session.Accuracy)
	}
	if report.Session.AverageTimePerQuestion != 0 {
		t.Errorf("expected average time 0, got %d", report.Session.AverageTimePerQuestion)
	}
	if report.Session.RecentAccuracy != 0 {
		t.Errorf("expected recent accuracy 0, got %d", report.Session.RecentAccuracy)
	}
	if len(report.ChapterPerformance) != 0 {
		t.Error("expected empty chapter performance")
	}
	if len(report.ProgressOverTime) != 0 {
		t.Error("expected empty progress series")
	}
	if len(report.TimeDistribution) != 0 {
		t.Error("expected empty time distribution")
	}
}

// Nine correct ethics answers plus one wrong research answer: overall 90,
// ethics 100, research 0.
func TestCompute_ChapterScenario(t *testing.T) {
	var events []analytics.Event
	for i := 0; i < 9; i++ {
		events = append(events, event("ethics", true, 20, i))
	}
	events = append(events, event("research", false, 20, 9))

	session := &studysession.Session{
		TotalQuestions:     10,
		QuestionsCompleted: 10,
		CorrectAnswers:     9,
		TotalTimeSeconds:   200,
	}

	report := analytics.Compute(session, events)

	if report.Session.Accuracy != 90 {
		t.Errorf("expected overall accuracy 90, got %d", report.Session.Accuracy)
	}
	if report.Session.CompletionPercentage != 100 {
		t.Errorf("expected completion 100, got %d", report.Session.CompletionPercentage)
	}

	if len(report.ChapterPerformance) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(report.ChapterPerformance))
	}
	ethics, research := report.ChapterPerformance[0], report.ChapterPerformance[1]
	if ethics.Chapter != "ethics" || ethics.Accuracy != 100 || ethics.CorrectAnswers != 9 {
		t.Errorf("unexpected ethics stats: %+v", ethics)
	}
	if research.Chapter != "research" || research.Accuracy != 0 || research.TotalQuestions != 1 {
		t.Errorf("unexpected research stats: %+v", research)
	}
}

func TestCompute_AccuracyRoundsHalfUp(t *testing.T) {
	// 1 of 8 correct = 12.5% → rounds to 13.
	events := []analytics.Event{event("ethics", true, 5, 0)}
	for i := 0; i < 7; i++ {
		events = append(events, event("ethics", false, 5, i+1))
	}

	session := &studysession.Session{
		TotalQuestions:     8,
		QuestionsCompleted: 8,
		CorrectAnswers:     1,
		TotalTimeSeconds:   40,
	}

	report := analytics.Compute(session, events)
	if report.Session.Accuracy != 13 {
		t.Errorf("expected accuracy 13, got %d", report.Session.Accuracy)
	}
	if report.ChapterPerformance[0].Accuracy != 13 {
		t.Errorf("expected chapter accuracy 13, got %d", report.ChapterPerformance[0].Accuracy)
	}
}

func TestCompute_ProgressOverTimeIsCumulative(t *testing.T) {
	events := []analytics.Event{
		event("ethics", true, 5, 0),
		event("ethics", false, 5, 1),
		event("ethics", true, 5, 2),
		event("ethics", true, 5, 3),
	}

	session := &studysession.Session{
		TotalQuestions:     4,
		QuestionsCompleted: 4,
		CorrectAnswers:     3,
		TotalTimeSeconds:   20,
	}

	report := analytics.Compute(session, events)

	want := []float64{100, 50, 100.0 * 2 / 3, 75}
	if len(report.ProgressOverTime) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(report.ProgressOverTime))
	}
	for i, point := range report.ProgressOverTime {
		if point.QuestionNumber != i+1 {
			t.Errorf("point %d: expected question number %d, got %d", i, i+1, point.QuestionNumber)
		}
		if diff := point.Accuracy - want[i]; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("point %d: expected accuracy %.4f, got %.4f", i, want[i], point.Accuracy)
		}
	}
	if report.ProgressOverTime[1].IsCorrect {
		t.Error("expected second point to record an incorrect answer")
	}
}

func TestCompute_RecentAccuracyUsesLastFifty(t *testing.T) {
	// 60 events: first 10 correct, last 50 all incorrect.
	var events []analytics.Event
	for i := 0; i < 10; i++ {
		events = append(events, event("ethics", true, 5, i))
	}
	for i := 0; i < 50; i++ {
		events = append(events, event("ethics", false, 5, 10+i))
	}

	session := &studysession.Session{
		TotalQuestions:     100,
		QuestionsCompleted: 60,
		CorrectAnswers:     10,
		TotalTimeSeconds:   300,
		IsActive:           true,
	}

	report := analytics.Compute(session, events)
	if report.Session.RecentAccuracy != 0 {
		t.Errorf("expected recent accuracy 0, got %d", report.Session.RecentAccuracy)
	}
	if report.Session.Accuracy != 17 {
		t.Errorf("expected overall accuracy 17, got %d", report.Session.Accuracy)
	}
}

func TestCompute_TimeDistributionBuckets(t *testing.T) {
	events := []analytics.Event{
		event("ethics", true, 0, 0),   // < 10s
		event("ethics", true, 9, 1),   // < 10s
		event("ethics", true, 10, 2),  // 10-30s
		event("ethics", true, 29, 3),  // 10-30s
		event("ethics", true, 30, 4),  // 30-60s
		event("ethics", true, 59, 5),  // 30-60s
		event("ethics", true, 60, 6),  // 1-2m
		event("ethics", true, 119, 7), // 1-2m
		event("ethics", true, 120, 8), // > 2m
		event("ethics", true, 600, 9), // > 2m
	}

	session := &studysession.Session{
		TotalQuestions:     10,
		QuestionsCompleted: 10,
		CorrectAnswers:     10,
		TotalTimeSeconds:   1036,
	}

	report := analytics.Compute(session, events)

	want := map[string]int{"< 10s": 2, "10-30s": 2, "30-60s": 2, "1-2m": 2, "> 2m": 2}
	for bucket, count := range want {
		if report.TimeDistribution[bucket] != count {
			t.Errorf("bucket %q: expected %d, got %d", bucket, count, report.TimeDistribution[bucket])
		}
	}
}
