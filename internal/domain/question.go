package domain

import "fmt"

// QuestionKind is the closed set of supported question types.
type QuestionKind string

const (
	KindMultipleChoice QuestionKind = "mcq"
	KindTrueFalse      QuestionKind = "true_false"
	KindShortAnswer    QuestionKind = "short_answer"
)

// IsValid reports whether the kind belongs to the closed set.
func (k QuestionKind) IsValid() bool {
	switch k {
	case KindMultipleChoice, KindTrueFalse, KindShortAnswer:
		return true
	}
	return false
}

const (
	// MinMCQOptions is the floor below which an mcq question may not shrink.
	MinMCQOptions = 2

	// DefaultQuestionPoints is assigned to newly added questions.
	DefaultQuestionPoints = 10

	// Fixed option labels for true/false questions.
	TrueOptionText  = "TRUE"
	FalseOptionText = "FALSE"
)

// Option represents a selectable answer within a question.
type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Question represents a single quiz question. Options is empty for
// short_answer questions; for mcq and true_false exactly one option
// carries IsCorrect.
type Question struct {
	ID      string       `json:"id"`
	Kind    QuestionKind `json:"kind"`
	Text    string       `json:"text"`
	Options []Option     `json:"options"`
	Points  int          `json:"points"`
}

// Clone returns a deep copy of the question.
func (q *Question) Clone() Question {
	clone := *q
	clone.Options = make([]Option, len(q.Options))
	copy(clone.Options, q.Options)
	return clone
}

// OptionByID returns the option with the given id, or nil.
func (q *Question) OptionByID(optionID string) *Option {
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			return &q.Options[i]
		}
	}
	return nil
}

// CorrectOptionID returns the id of the correct option, or "" for
// short_answer questions.
func (q *Question) CorrectOptionID() string {
	for _, o := range q.Options {
		if o.IsCorrect {
			return o.ID
		}
	}
	return ""
}

// NewQuestion creates a question of the given kind with kind-appropriate
// default options: two placeholder options for mcq (first one correct), the
// fixed TRUE/FALSE pair for true_false, none for short_answer.
func NewQuestion(id string, kind QuestionKind, optionIDs func() string) (*Question, error) {
	if !kind.IsValid() {
		return nil, NewError(CodeInvalidQuestionKind, fmt.Sprintf("invalid question kind: %s", kind), nil)
	}

	q := &Question{
		ID:     id,
		Kind:   kind,
		Points: DefaultQuestionPoints,
	}

	switch kind {
	case KindMultipleChoice:
		q.Options = []Option{
			{ID: optionIDs(), Text: "Option 1", IsCorrect: true},
			{ID: optionIDs(), Text: "Option 2", IsCorrect: false},
		}
	case KindTrueFalse:
		q.Options = []Option{
			{ID: optionIDs(), Text: TrueOptionText, IsCorrect: true},
			{ID: optionIDs(), Text: FalseOptionText, IsCorrect: false},
		}
	case KindShortAnswer:
		q.Options = nil
	}

	return q, nil
}

// ValidateQuestion checks the structural invariants of a question.
func ValidateQuestion(q *Question) error {
	if !q.Kind.IsValid() {
		return NewError(CodeInvalidQuestionKind, fmt.Sprintf("invalid question kind: %s", q.Kind), nil)
	}
	if q.Points < 0 {
		return NewError(CodeInvalidPoints, fmt.Sprintf("points must be non-negative, got %d", q.Points), nil)
	}

	switch q.Kind {
	case KindMultipleChoice:
		if len(q.Options) < MinMCQOptions {
			return NewError(CodeInsufficientOptions,
				fmt.Sprintf("multiple choice question %s needs at least %d options", q.ID, MinMCQOptions), nil)
		}
		if n := correctCount(q); n != 1 {
			return NewError(CodeInvalidCorrectAnswerCount,
				fmt.Sprintf("question %s has %d correct options, want exactly 1", q.ID, n), nil)
		}
	case KindTrueFalse:
		if len(q.Options) != 2 {
			return NewError(CodeInsufficientOptions,
				fmt.Sprintf("true/false question %s must have exactly 2 options", q.ID), nil)
		}
		if n := correctCount(q); n != 1 {
			return NewError(CodeInvalidCorrectAnswerCount,
				fmt.Sprintf("question %s has %d correct options, want exactly 1", q.ID, n), nil)
		}
	case KindShortAnswer:
		// No options to validate; short answers are graded manually, if at all.
	}

	return nil
}

func correctCount(q *Question) int {
	n := 0
	for _, o := range q.Options {
		if o.IsCorrect {
			n++
		}
	}
	return n
}
