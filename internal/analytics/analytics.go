// Package analytics reduces a session's answer history into summary
// statistics. Everything here is a pure function over the recorded events;
// correctness is read from the stored boolean, never re-derived.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/arcadeprep/backend/internal/domain/studysession"
)

// recentWindow is the number of trailing answers used for the short-term
// accuracy signal.
const recentWindow = 50

// Time-spent buckets, in ascending order.
var bucketNames = []string{"< 10s", "10-30s", "30-60s", "1-2m", "> 2m"}

// Event is one answer joined with the chapter of its question, in
// chronological answer order.
type Event struct {
	QuestionID       string
	Chapter          string
	IsCorrect        bool
	TimeSpentSeconds int
	AnsweredAt       time.Time
}

// Report bundles every statistic derived from a session's answer history.
type Report struct {
	Session            OverallStats         `json:"session"`
	ChapterPerformance []ChapterPerformance `json:"chapterPerformance"`
	ProgressOverTime   []ProgressPoint      `json:"progressOverTime"`
	TimeDistribution   map[string]int       `json:"timeDistribution"`
}

type OverallStats struct {
	TotalQuestions         int        `json:"totalQuestions"`
	CorrectAnswers         int        `json:"correctAnswers"`
	Accuracy               int        `json:"accuracy"`
	TotalTimeSeconds       int        `json:"totalTimeSeconds"`
	AverageTimePerQuestion int        `json:"averageTimePerQuestion"`
	QuestionsRemaining     int        `json:"questionsRemaining"`
	CompletionPercentage   int        `json:"completionPercentage"`
	RecentAccuracy         int        `json:"recentAccuracy"`
	IsActive               bool       `json:"isActive"`
	StartedAt              time.Time  `json:"startedAt"`
	CompletedAt            *time.Time `json:"completedAt,omitempty"`
}

type ChapterPerformance struct {
	Chapter        string `json:"chapter"`
	TotalQuestions int    `json:"totalQuestions"`
	CorrectAnswers int    `json:"correctAnswers"`
	Accuracy       int    `json:"accuracy"`
	AverageTime    int    `json:"averageTime"`
}

// ProgressPoint is the running accuracy after the i-th answer.
type ProgressPoint struct {
	QuestionNumber int       `json:"questionNumber"`
	Accuracy       float64   `json:"accuracy"`
	Timestamp      time.Time `json:"timestamp"`
	IsCorrect      bool      `json:"isCorrect"`
}

// Compute derives the full report from a session and its answer events.
// Events must be in chronological answer order. A session with no answers
// yields zeroed stats and empty collections.
func Compute(session *studysession.Session, events []Event) Report {
	return Report{
		Session:            overallStats(session, events),
		ChapterPerformance: chapterPerformance(events),
		ProgressOverTime:   progressOverTime(events),
		TimeDistribution:   timeDistribution(events),
	}
}

func overallStats(session *studysession.Session, events []Event) OverallStats {
	stats := OverallStats{
		TotalQuestions:     session.QuestionsCompleted,
		CorrectAnswers:     session.CorrectAnswers,
		TotalTimeSeconds:   session.TotalTimeSeconds,
		QuestionsRemaining: session.TotalQuestions - session.QuestionsCompleted,
		RecentAccuracy:     recentAccuracy(events),
		IsActive:           session.IsActive,
		StartedAt:          session.StartedAt,
		CompletedAt:        session.CompletedAt,
	}
	if session.QuestionsCompleted > 0 {
		stats.Accuracy = roundPct(session.CorrectAnswers, session.QuestionsCompleted)
		stats.AverageTimePerQuestion = roundDiv(session.TotalTimeSeconds, session.QuestionsCompleted)
	}
	if session.TotalQuestions > 0 {
		stats.CompletionPercentage = roundPct(session.QuestionsCompleted, session.TotalQuestions)
	}
	return stats
}

func chapterPerformance(events []Event) []ChapterPerformance {
	type acc struct {
		total   int
		correct int
		seconds int
	}
	byChapter := make(map[string]*acc)
	for _, e := range events {
		a := byChapter[e.Chapter]
		if a == nil {
			a = &acc{}
			byChapter[e.Chapter] = a
		}
		a.total++
		if e.IsCorrect {
			a.correct++
		}
		a.seconds += e.TimeSpentSeconds
	}

	performance := make([]ChapterPerformance, 0, len(byChapter))
	for chapter, a := range byChapter {
		performance = append(performance, ChapterPerformance{
			Chapter:        chapter,
			TotalQuestions: a.total,
			CorrectAnswers: a.correct,
			Accuracy:       roundPct(a.correct, a.total),
			AverageTime:    roundDiv(a.seconds, a.total),
		})
	}
	sort.Slice(performance, func(i, j int) bool {
		return performance[i].Chapter < performance[j].Chapter
	})
	return performance
}

func progressOverTime(events []Event) []ProgressPoint {
	points := make([]ProgressPoint, len(events))
	correct := 0
	for i, e := range events {
		if e.IsCorrect {
			correct++
		}
		points[i] = ProgressPoint{
			QuestionNumber: i + 1,
			Accuracy:       float64(correct) / float64(i+1) * 100,
			Timestamp:      e.AnsweredAt,
			IsCorrect:      e.IsCorrect,
		}
	}
	return points
}

func recentAccuracy(events []Event) int {
	if len(events) == 0 {
		return 0
	}
	recent := events
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}
	correct := 0
	for _, e := range recent {
		if e.IsCorrect {
			correct++
		}
	}
	return roundPct(correct, len(recent))
}

func timeDistribution(events []Event) map[string]int {
	distribution := make(map[string]int)
	for _, e := range events {
		distribution[bucketFor(e.TimeSpentSeconds)]++
	}
	return distribution
}

func bucketFor(seconds int) string {
	switch {
	case seconds < 10:
		return bucketNames[0]
	case seconds < 30:
		return bucketNames[1]
	case seconds < 60:
		return bucketNames[2]
	case seconds < 120:
		return bucketNames[3]
	default:
		return bucketNames[4]
	}
}

func roundPct(part, whole int) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}

func roundDiv(sum, count int) int {
	return int(math.Round(float64(sum) / float64(count)))
}
