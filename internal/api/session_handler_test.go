package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/arcadeprep/backend/internal/api"
	"github.com/arcadeprep/backend/internal/domain/question"
	"github.com/arcadeprep/backend/internal/service"
	"github.com/arcadeprep/backend/internal/store"
)

func newServer(t *testing.T) (*http.ServeMux, *store.SQLiteStore) {
	t.Helper()
	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := service.NewSessionService(s, logger)
	handler := api.NewHandler(s, sessions, logger)

	mux := http.NewServeMux()
	api.RegisterRoutes(mux, handler)
	return mux, s
}

func seedBank(t *testing.T, s *store.SQLiteStore, n int, chapter string) {
	t.Helper()
	questions := make([]*question.Question, n)
	for i := range questions {
		q, err := question.New(chapter, fmt.Sprintf("Prompt %d", i), "Yes", "No", "", "", "a", "Because.")
		if err != nil {
			t.Fatalf("failed to build question: %v", err)
		}
		questions[i] = q
	}
	if err := s.SaveQuestions(questions); err != nil {
		t.Fatalf("failed to seed bank: %v", err)
	}
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec
}

func TestCreateSession(t *testing.T) {
	mux, s := newServer(t)
	seedBank(t, s, 5, "ethics")

	var created api.SessionResponse
	rec := doJSON(t, mux, http.MethodPost, "/sessions", api.CreateSessionRequest{}, &created)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if created.SessionID == "" || created.TotalQuestions != 5 || !created.IsActive {
		t.Errorf("unexpected session response: %+v", created)
	}
}

func TestCreateSession_NoMatchingQuestions(t *testing.T) {
	mux, s := newServer(t)
	seedBank(t, s, 5, "ethics")

	rec := doJSON(t, mux, http.MethodPost, "/sessions",
		api.CreateSessionRequest{Chapters: []string{"nope"}}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateSession_RequiresUser(t *testing.T) {
	mux, s := newServer(t)
	seedBank(t, s, 1, "ethics")

	req := httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewReader([]byte("{}")))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user header, got %d", rec.Code)
	}
}

func TestSessionFlow(t *testing.T) {
	mux, s := newServer(t)
	seedBank(t, s, 2, "ethics")

	var created api.SessionResponse
	doJSON(t, mux, http.MethodPost, "/sessions", api.CreateSessionRequest{}, &created)
	base := "/sessions/" + created.SessionID

	for i := 0; i < 2; i++ {
		var next api.NextQuestionResponse
		rec := doJSON(t, mux, http.MethodGet, base+"/next-question", nil, &next)
		if rec.Code != http.StatusOK {
			t.Fatalf("next-question: expected 200, got %d", rec.Code)
		}
		if next.IsComplete {
			t.Fatalf("unexpected completion at question %d", i+1)
		}
		if next.Progress.Current != i+1 || next.Progress.Total != 2 {
			t.Errorf("unexpected progress: %+v", next.Progress)
		}

		var answered api.SubmitAnswerResponse
		rec = doJSON(t, mux, http.MethodPost, base+"/answers", api.SubmitAnswerRequest{
			QuestionID: next.Question.ID,
			Answer:     "a",
			TimeSpent:  5,
		}, &answered)
		if rec.Code != http.StatusOK {
			t.Fatalf("answers: expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !answered.IsCorrect || answered.CorrectAnswer != "a" {
			t.Errorf("unexpected answer response: %+v", answered)
		}
	}

	var done api.NextQuestionResponse
	doJSON(t, mux, http.MethodGet, base+"/next-question", nil, &done)
	if !done.IsComplete {
		t.Fatal("expected completion signal after answering everything")
	}

	var summary api.SessionResponse
	doJSON(t, mux, http.MethodGet, base, nil, &summary)
	if summary.QuestionsCompleted != 2 || summary.Accuracy != 100 || summary.IsActive {
		t.Errorf("unexpected summary: %+v", summary)
	}
}

func TestSubmitAnswer_DuplicateConflict(t *testing.T) {
	mux, s := newServer(t)
	seedBank(t, s, 1, "ethics")

	var created api.SessionResponse
	doJSON(t, mux, http.MethodPost, "/sessions", api.CreateSessionRequest{}, &created)
	base := "/sessions/" + created.SessionID

	var next api.NextQuestionResponse
	doJSON(t, mux, http.MethodGet, base+"/next-question", nil, &next)

	payload := api.SubmitAnswerRequest{QuestionID: next.Question.ID, Answer: "a", TimeSpent: 5}
	if rec := doJSON(t, mux, http.MethodPost, base+"/answers", payload, nil); rec.Code != http.StatusOK {
		t.Fatalf("first submit: expected 200, got %d", rec.Code)
	}
	if rec := doJSON(t, mux, http.MethodPost, base+"/answers", payload, nil); rec.Code != http.StatusConflict {
		t.Fatalf("second submit: expected 409, got %d", rec.Code)
	}
}

func TestSubmitAnswer_InvalidChoice(t *testing.T) {
	mux, s := newServer(t)
	seedBank(t, s, 1, "ethics")

	var created api.SessionResponse
	doJSON(t, mux, http.MethodPost, "/sessions", api.CreateSessionRequest{}, &created)
	base := "/sessions/" + created.SessionID

	var next api.NextQuestionResponse
	doJSON(t, mux, http.MethodGet, base+"/next-question", nil, &next)

	rec := doJSON(t, mux, http.MethodPost, base+"/answers", api.SubmitAnswerRequest{
		QuestionID: next.Question.ID,
		Answer:     "e",
		TimeSpent:  5,
	}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid choice, got %d", rec.Code)
	}
}

func TestGetSession_NotFound(t *testing.T) {
	mux, _ := newServer(t)

	rec := doJSON(t, mux, http.MethodGet, "/sessions/missing", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetAnalytics(t *testing.T) {
	mux, s := newServer(t)
	seedBank(t, s, 2, "ethics")

	var created api.SessionResponse
	doJSON(t, mux, http.MethodPost, "/sessions", api.CreateSessionRequest{}, &created)
	base := "/sessions/" + created.SessionID

	var next api.NextQuestionResponse
	doJSON(t, mux, http.MethodGet, base+"/next-question", nil, &next)
	doJSON(t, mux, http.MethodPost, base+"/answers", api.SubmitAnswerRequest{
		QuestionID: next.Question.ID, Answer: "b", TimeSpent: 45,
	}, nil)

	var report struct {
		Session struct {
			Accuracy             int `json:"accuracy"`
			CompletionPercentage int `json:"completionPercentage"`
		} `json:"session"`
		TimeDistribution map[string]int `json:"timeDistribution"`
	}
	rec := doJSON(t, mux, http.MethodGet, base+"/analytics", nil, &report)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if report.Session.Accuracy != 0 {
		t.Errorf("expected accuracy 0, got %d", report.Session.Accuracy)
	}
	if report.Session.CompletionPercentage != 50 {
		t.Errorf("expected completion 50, got %d", report.Session.CompletionPercentage)
	}
	if report.TimeDistribution["30-60s"] != 1 {
		t.Errorf("unexpected time distribution: %+v", report.TimeDistribution)
	}
}

func TestGetReview_BadFilter(t *testing.T) {
	mux, s := newServer(t)
	seedBank(t, s, 1, "ethics")

	var created api.SessionResponse
	doJSON(t, mux, http.MethodPost, "/sessions", api.CreateSessionRequest{}, &created)

	rec := doJSON(t, mux, http.MethodGet, "/sessions/"+created.SessionID+"/review?filter=wrong", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListChapters(t *testing.T) {
	mux, s := newServer(t)
	seedBank(t, s, 3, "ethics")
	seedBank(t, s, 2, "research")

	var chapters []api.ChapterResponse
	rec := doJSON(t, mux, http.MethodGet, "/chapters", nil, &chapters)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(chapters))
	}
	if chapters[0].Name != "ethics" || chapters[0].QuestionCount != 3 {
		t.Errorf("unexpected chapter: %+v", chapters[0])
	}
}
