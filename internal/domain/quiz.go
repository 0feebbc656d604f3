package domain

import (
	"fmt"
	"time"
)

// Visibility controls whether a quiz document can be reached through a
// public share link.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// IsValid reports whether the visibility value is known.
func (v Visibility) IsValid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// Default quiz settings, matching what a freshly created assessment starts
// with in the authoring flow.
const (
	DefaultTimeLimitMinutes    = 45
	DefaultPassingScorePercent = 70
)

// QuizSettings holds quiz-level configuration.
type QuizSettings struct {
	TimeLimitMinutes    int        `json:"time_limit_minutes"`
	PassingScorePercent int        `json:"passing_score_percent"`
	Visibility          Visibility `json:"visibility"`
}

// Validate checks the settings ranges.
func (s QuizSettings) Validate() error {
	if s.TimeLimitMinutes <= 0 {
		return NewError(CodeInvalidSettings,
			fmt.Sprintf("time limit must be positive, got %d", s.TimeLimitMinutes), nil)
	}
	if s.PassingScorePercent < 0 || s.PassingScorePercent > 100 {
		return NewError(CodeInvalidSettings,
			fmt.Sprintf("passing score must be within 0-100, got %d", s.PassingScorePercent), nil)
	}
	if !s.Visibility.IsValid() {
		return NewError(CodeInvalidSettings,
			fmt.Sprintf("invalid visibility: %s", s.Visibility), nil)
	}
	return nil
}

// QuizDocument is the authoring aggregate: an ordered sequence of questions
// plus quiz-level settings. It is mutated only through the editor
// operations; takers work against snapshots produced by Clone.
type QuizDocument struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Questions []Question   `json:"questions"`
	Settings  QuizSettings `json:"settings"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewQuizDocument creates an empty document with default settings.
func NewQuizDocument(id, title string) *QuizDocument {
	now := time.Now()
	return &QuizDocument{
		ID:    id,
		Title: title,
		Settings: QuizSettings{
			TimeLimitMinutes:    DefaultTimeLimitMinutes,
			PassingScorePercent: DefaultPassingScorePercent,
			Visibility:          VisibilityPublic,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy of the document. Assessment sessions hold such
// a copy as their immutable snapshot so concurrent authoring edits never
// reach an in-flight attempt.
func (d *QuizDocument) Clone() *QuizDocument {
	clone := *d
	clone.Questions = make([]Question, len(d.Questions))
	for i := range d.Questions {
		clone.Questions[i] = d.Questions[i].Clone()
	}
	return &clone
}

// QuestionByID returns the question with the given id, or nil.
func (d *QuizDocument) QuestionByID(questionID string) *Question {
	for i := range d.Questions {
		if d.Questions[i].ID == questionID {
			return &d.Questions[i]
		}
	}
	return nil
}

// TotalAutoPoints sums the point values of automatically scorable
// questions. Short-answer questions have no correctness check and do not
// contribute to the total.
func (d *QuizDocument) TotalAutoPoints() int {
	total := 0
	for _, q := range d.Questions {
		if q.Kind != KindShortAnswer {
			total += q.Points
		}
	}
	return total
}

// ValidateDocument checks the document and all of its questions. An empty
// quiz is rejected: publishing a quiz with zero questions is not permitted.
func ValidateDocument(d *QuizDocument) error {
	if len(d.Questions) == 0 {
		return NewError(CodeEmptyQuiz, fmt.Sprintf("quiz %s has no questions", d.ID), nil)
	}
	if err := d.Settings.Validate(); err != nil {
		return err
	}
	for i := range d.Questions {
		if err := ValidateQuestion(&d.Questions[i]); err != nil {
			return err
		}
	}
	return nil
}
