package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/arcadeprep/backend/internal/domain/question"
	"github.com/arcadeprep/backend/internal/domain/studysession"
)

const schema = `
CREATE TABLE IF NOT EXISTS questions (
    id TEXT PRIMARY KEY,
    chapter TEXT NOT NULL,
    prompt TEXT NOT NULL,
    choice_a TEXT NOT NULL DEFAULT '',
    choice_b TEXT NOT NULL DEFAULT '',
    choice_c TEXT NOT NULL DEFAULT '',
    choice_d TEXT NOT NULL DEFAULT '',
    correct_choice TEXT NOT NULL,
    explanation TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    started_at TEXT NOT NULL,
    total_questions INTEGER NOT NULL,
    questions_completed INTEGER NOT NULL DEFAULT 0,
    correct_answers INTEGER NOT NULL DEFAULT 0,
    total_time_seconds INTEGER NOT NULL DEFAULT 0,
    is_active INTEGER NOT NULL DEFAULT 1,
    completed_at TEXT
);

CREATE TABLE IF NOT EXISTS session_pool (
    session_id TEXT NOT NULL,
    question_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    is_used INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (session_id, question_id),
    UNIQUE (session_id, position),
    FOREIGN KEY (session_id) REFERENCES sessions(id),
    FOREIGN KEY (question_id) REFERENCES questions(id)
);

CREATE TABLE IF NOT EXISTS answers (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT NOT NULL,
    question_id TEXT NOT NULL,
    chosen_choice TEXT NOT NULL,
    correct_choice TEXT NOT NULL,
    is_correct INTEGER NOT NULL,
    time_spent_seconds INTEGER NOT NULL,
    answered_at TEXT NOT NULL,
    FOREIGN KEY (session_id) REFERENCES sessions(id),
    FOREIGN KEY (question_id) REFERENCES questions(id)
);

CREATE INDEX IF NOT EXISTS idx_session_pool_next
    ON session_pool (session_id, is_used, position);

CREATE INDEX IF NOT EXISTS idx_answers_session
    ON answers (session_id, id);
`

const timeFormat = time.RFC3339Nano

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// SQLite allows a single writer. Serializing all access through one
	// connection turns concurrent transactions into queued ones instead of
	// SQLITE_BUSY failures, which is what makes the consume-and-count
	// transaction safe under concurrent submits.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Questions
// ============================================================================

func (s *SQLiteStore) SaveQuestions(questions []*question.Question) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range questions {
		_, err = tx.Exec(
			`INSERT INTO questions (id, chapter, prompt, choice_a, choice_b, choice_c, choice_d, correct_choice, explanation)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			q.ID, q.Chapter, q.Prompt, q.ChoiceA, q.ChoiceB, q.ChoiceC, q.ChoiceD, q.CorrectChoice, q.Explanation,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetQuestion(id string) (*question.Question, error) {
	var q question.Question
	err := s.db.QueryRow(
		`SELECT id, chapter, prompt, choice_a, choice_b, choice_c, choice_d, correct_choice, explanation
		 FROM questions WHERE id = ?`, id,
	).Scan(&q.ID, &q.Chapter, &q.Prompt, &q.ChoiceA, &q.ChoiceB, &q.ChoiceC, &q.ChoiceD, &q.CorrectChoice, &q.Explanation)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *SQLiteStore) CountQuestions() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM questions").Scan(&count)
	return count, err
}

// ListQuestionIDs returns the ids of every bank question, optionally filtered
// to a set of chapters.
func (s *SQLiteStore) ListQuestionIDs(chapters []string) ([]string, error) {
	query := "SELECT id FROM questions"
	var args []any
	if len(chapters) > 0 {
		placeholders := strings.Repeat("?,", len(chapters))
		query += fmt.Sprintf(" WHERE chapter IN (%s)", placeholders[:len(placeholders)-1])
		for _, c := range chapters {
			args = append(args, c)
		}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLiteStore) ListChapters() ([]question.ChapterCount, error) {
	rows, err := s.db.Query(
		"SELECT chapter, COUNT(*) FROM questions GROUP BY chapter ORDER BY chapter",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chapters []question.ChapterCount
	for rows.Next() {
		var c question.ChapterCount
		if err := rows.Scan(&c.Name, &c.QuestionCount); err != nil {
			return nil, err
		}
		chapters = append(chapters, c)
	}
	return chapters, rows.Err()
}

// ============================================================================
// Sessions
// ============================================================================

// SaveSession persists a session together with its full question pool in one
// transaction. A failed pool insert rolls back the session row, so no session
// exists without a pool.
func (s *SQLiteStore) SaveSession(session *studysession.Session) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO sessions (id, user_id, started_at, total_questions, questions_completed, correct_answers, total_time_seconds, is_active)
		 VALUES (?, ?, ?, ?, 0, 0, 0, 1)`,
		session.ID, session.UserID, session.StartedAt.Format(timeFormat), session.TotalQuestions,
	)
	if err != nil {
		return err
	}

	for _, entry := range session.Pool {
		_, err = tx.Exec(
			"INSERT INTO session_pool (session_id, question_id, position, is_used) VALUES (?, ?, ?, 0)",
			session.ID, entry.QuestionID, entry.Position,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetSession(id string) (*studysession.Session, error) {
	row := s.db.QueryRow(
		`SELECT id, user_id, started_at, total_questions, questions_completed, correct_answers, total_time_seconds, is_active, completed_at
		 FROM sessions WHERE id = ?`, id,
	)
	return scanSession(row)
}

// GetActiveSession returns the user's most recently started active session.
func (s *SQLiteStore) GetActiveSession(userID string) (*studysession.Session, error) {
	row := s.db.QueryRow(
		`SELECT id, user_id, started_at, total_questions, questions_completed, correct_answers, total_time_seconds, is_active, completed_at
		 FROM sessions WHERE user_id = ? AND is_active = 1
		 ORDER BY started_at DESC LIMIT 1`, userID,
	)
	return scanSession(row)
}

func scanSession(row *sql.Row) (*studysession.Session, error) {
	var (
		session     studysession.Session
		startedAt   string
		isActive    int
		completedAt sql.NullString
	)
	err := row.Scan(
		&session.ID, &session.UserID, &startedAt, &session.TotalQuestions,
		&session.QuestionsCompleted, &session.CorrectAnswers, &session.TotalTimeSeconds,
		&isActive, &completedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	session.IsActive = isActive != 0
	if session.StartedAt, err = time.Parse(timeFormat, startedAt); err != nil {
		return nil, err
	}
	if completedAt.Valid {
		t, err := time.Parse(timeFormat, completedAt.String)
		if err != nil {
			return nil, err
		}
		session.CompletedAt = &t
	}
	return &session, nil
}

// GetPool returns a session's pool entries in position order.
func (s *SQLiteStore) GetPool(sessionID string) ([]studysession.PoolEntry, error) {
	rows, err := s.db.Query(
		"SELECT question_id, position, is_used FROM session_pool WHERE session_id = ? ORDER BY position",
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pool []studysession.PoolEntry
	for rows.Next() {
		var entry studysession.PoolEntry
		var used int
		if err := rows.Scan(&entry.QuestionID, &entry.Position, &used); err != nil {
			return nil, err
		}
		entry.Used = used != 0
		pool = append(pool, entry)
	}
	return pool, rows.Err()
}

// NextUnusedQuestion returns the question at the lowest unconsumed pool
// position, or ErrNotFound when the pool is exhausted.
func (s *SQLiteStore) NextUnusedQuestion(sessionID string) (*question.Question, error) {
	var q question.Question
	err := s.db.QueryRow(
		`SELECT q.id, q.chapter, q.prompt, q.choice_a, q.choice_b, q.choice_c, q.choice_d, q.correct_choice, q.explanation
		 FROM session_pool p
		 JOIN questions q ON q.id = p.question_id
		 WHERE p.session_id = ? AND p.is_used = 0
		 ORDER BY p.position LIMIT 1`, sessionID,
	).Scan(&q.ID, &q.Chapter, &q.Prompt, &q.ChoiceA, &q.ChoiceB, &q.ChoiceC, &q.ChoiceD, &q.CorrectChoice, &q.Explanation)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// CompleteSession soft-closes a session. The completion time is written only
// on the first call; repeat calls leave the row untouched.
func (s *SQLiteStore) CompleteSession(sessionID string, completedAt time.Time) error {
	_, err := s.db.Exec(
		"UPDATE sessions SET is_active = 0, completed_at = ? WHERE id = ? AND completed_at IS NULL",
		completedAt.Format(timeFormat), sessionID,
	)
	return err
}

// ============================================================================
// Answers
// ============================================================================

// RecordAnswer applies one answer as a single atomic unit: consume the pool
// entry, insert the answer event, and bump the session counters. The consume
// is a compare-and-set on is_used, so of two concurrent submissions for the
// same question exactly one succeeds and the other observes
// ErrAlreadyAnswered.
func (s *SQLiteStore) RecordAnswer(event *studysession.AnswerEvent) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		"UPDATE session_pool SET is_used = 1 WHERE session_id = ? AND question_id = ? AND is_used = 0",
		event.SessionID, event.QuestionID,
	)
	if err != nil {
		return err
	}
	consumed, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if consumed == 0 {
		var used int
		err := tx.QueryRow(
			"SELECT is_used FROM session_pool WHERE session_id = ? AND question_id = ?",
			event.SessionID, event.QuestionID,
		).Scan(&used)
		if err == sql.ErrNoRows {
			return ErrQuestionNotInPool
		}
		if err != nil {
			return err
		}
		return ErrAlreadyAnswered
	}

	correct := 0
	if event.IsCorrect {
		correct = 1
	}

	_, err = tx.Exec(
		`INSERT INTO answers (session_id, question_id, chosen_choice, correct_choice, is_correct, time_spent_seconds, answered_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.SessionID, event.QuestionID, event.ChosenChoice, event.CorrectChoice,
		correct, event.TimeSpentSeconds, event.AnsweredAt.Format(timeFormat),
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(
		`UPDATE sessions
		 SET questions_completed = questions_completed + 1,
		     correct_answers = correct_answers + ?,
		     total_time_seconds = total_time_seconds + ?
		 WHERE id = ?`,
		correct, event.TimeSpentSeconds, event.SessionID,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

const answeredColumns = `a.question_id, q.chapter, q.prompt, q.choice_a, q.choice_b, q.choice_c, q.choice_d,
	a.correct_choice, q.explanation, a.chosen_choice, a.is_correct, a.time_spent_seconds, a.answered_at`

// ListAnswered returns every recorded answer for a session joined with its
// question, in chronological answer order.
func (s *SQLiteStore) ListAnswered(sessionID string) ([]AnsweredQuestion, error) {
	rows, err := s.db.Query(
		`SELECT `+answeredColumns+`
		 FROM answers a
		 JOIN questions q ON q.id = a.question_id
		 WHERE a.session_id = ?
		 ORDER BY a.id`, sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAnswered(rows)
}

// ListAnsweredPage returns one page of recorded answers, optionally filtered
// by stored correctness. correct is nil for no filter.
func (s *SQLiteStore) ListAnsweredPage(sessionID string, correct *bool, limit, offset int) ([]AnsweredQuestion, error) {
	query := `SELECT ` + answeredColumns + `
		 FROM answers a
		 JOIN questions q ON q.id = a.question_id
		 WHERE a.session_id = ?`
	args := []any{sessionID}
	if correct != nil {
		query += " AND a.is_correct = ?"
		if *correct {
			args = append(args, 1)
		} else {
			args = append(args, 0)
		}
	}
	query += " ORDER BY a.id LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAnswered(rows)
}

// CountAnswered counts recorded answers, optionally filtered by stored
// correctness.
func (s *SQLiteStore) CountAnswered(sessionID string, correct *bool) (int, error) {
	query := "SELECT COUNT(*) FROM answers WHERE session_id = ?"
	args := []any{sessionID}
	if correct != nil {
		query += " AND is_correct = ?"
		if *correct {
			args = append(args, 1)
		} else {
			args = append(args, 0)
		}
	}

	var count int
	err := s.db.QueryRow(query, args...).Scan(&count)
	return count, err
}

func scanAnswered(rows *sql.Rows) ([]AnsweredQuestion, error) {
	var answered []AnsweredQuestion
	for rows.Next() {
		var (
			a          AnsweredQuestion
			isCorrect  int
			answeredAt string
		)
		err := rows.Scan(
			&a.QuestionID, &a.Chapter, &a.Prompt, &a.ChoiceA, &a.ChoiceB, &a.ChoiceC, &a.ChoiceD,
			&a.CorrectChoice, &a.Explanation, &a.UserAnswer, &isCorrect, &a.TimeSpentSeconds, &answeredAt,
		)
		if err != nil {
			return nil, err
		}
		a.IsCorrect = isCorrect != 0
		if a.AnsweredAt, err = time.Parse(timeFormat, answeredAt); err != nil {
			return nil, err
		}
		answered = append(answered, a)
	}
	return answered, rows.Err()
}
