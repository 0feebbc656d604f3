package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// QuizDocument is the database row for a quiz document.
type QuizDocument struct {
	ID                  string    `db:"id"`
	Title               string    `db:"title"`
	TimeLimitMinutes    int       `db:"time_limit_minutes"`
	PassingScorePercent int       `db:"passing_score_percent"`
	Visibility          string    `db:"visibility"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

// QuizQuestion is the database row for a question. Position preserves the
// document's question order.
type QuizQuestion struct {
	ID       string `db:"id"`
	QuizID   string `db:"quiz_id"`
	Kind     string `db:"kind"`
	Text     string `db:"text"`
	Points   int    `db:"points"`
	Position int    `db:"position"`
}

// QuizOption is the database row for an option.
type QuizOption struct {
	ID         string `db:"id"`
	QuestionID string `db:"question_id"`
	Text       string `db:"text"`
	IsCorrect  int    `db:"is_correct"` // Oracle has no boolean column type
	Position   int    `db:"position"`
}

// StringMap stores a map[string]string as a JSON column.
type StringMap map[string]string

// Value implements the driver.Valuer interface.
func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface.
func (m *StringMap) Scan(value interface{}) error {
	if value == nil {
		*m = StringMap{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("StringMap Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(data) == 0 || string(data) == "null" {
		*m = StringMap{}
		return nil
	}
	return json.Unmarshal(data, m)
}

// QuizAttempt is the database row for a completed assessment attempt.
type QuizAttempt struct {
	ID           string    `db:"id"`
	QuizID       string    `db:"quiz_id"`
	TakerID      string    `db:"taker_id"`
	Status       string    `db:"status"`
	Answers      StringMap `db:"answers"`
	TotalScore   int       `db:"total_score"`
	ScorePercent int       `db:"score_percent"`
	Passed       int       `db:"passed"`
	StartedAt    time.Time `db:"started_at"`
	FinishedAt   time.Time `db:"finished_at"`
}
