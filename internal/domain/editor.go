package domain

import (
	"fmt"
	"time"
)

// Editor operations mutate a QuizDocument in place while enforcing the
// kind-specific invariants centrally, so callers never have to reason about
// correct-answer counts or option floors themselves. The editor service
// applies these to a clone and persists before exposing the result.

// AddQuestion appends a new question of the given kind with default options
// and points. idGen supplies identifiers for the question and its options.
func (d *QuizDocument) AddQuestion(kind QuestionKind, idGen func() string) (*Question, error) {
	q, err := NewQuestion(idGen(), kind, idGen)
	if err != nil {
		return nil, err
	}
	d.Questions = append(d.Questions, *q)
	d.touch()
	return &d.Questions[len(d.Questions)-1], nil
}

// RemoveQuestion deletes the question with the given id, preserving the
// order of the remaining questions.
func (d *QuizDocument) RemoveQuestion(questionID string) error {
	for i := range d.Questions {
		if d.Questions[i].ID == questionID {
			d.Questions = append(d.Questions[:i], d.Questions[i+1:]...)
			d.touch()
			return nil
		}
	}
	return NewQuestionNotFoundError(questionID)
}

// ReorderQuestion moves the question at fromIndex to toIndex as a stable
// single-element move: the relative order of all other questions is kept.
func (d *QuizDocument) ReorderQuestion(fromIndex, toIndex int) error {
	n := len(d.Questions)
	if fromIndex < 0 || fromIndex >= n || toIndex < 0 || toIndex >= n {
		return NewError(CodeIndexOutOfRange,
			fmt.Sprintf("reorder indexes (%d, %d) out of range for %d questions", fromIndex, toIndex, n), nil)
	}
	if fromIndex == toIndex {
		return nil
	}

	moved := d.Questions[fromIndex]
	d.Questions = append(d.Questions[:fromIndex], d.Questions[fromIndex+1:]...)

	rest := make([]Question, 0, n)
	rest = append(rest, d.Questions[:toIndex]...)
	rest = append(rest, moved)
	rest = append(rest, d.Questions[toIndex:]...)
	d.Questions = rest
	d.touch()
	return nil
}

// SetQuestionText updates the prompt of a question.
func (d *QuizDocument) SetQuestionText(questionID, text string) error {
	q := d.QuestionByID(questionID)
	if q == nil {
		return NewQuestionNotFoundError(questionID)
	}
	q.Text = text
	d.touch()
	return nil
}

// SetQuestionPoints updates the point value of a question. Points must be
// non-negative.
func (d *QuizDocument) SetQuestionPoints(questionID string, points int) error {
	q := d.QuestionByID(questionID)
	if q == nil {
		return NewQuestionNotFoundError(questionID)
	}
	if points < 0 {
		return NewError(CodeInvalidPoints,
			fmt.Sprintf("points must be non-negative, got %d", points), nil)
	}
	q.Points = points
	d.touch()
	return nil
}

// AddOption appends a new placeholder option to a multiple choice question.
// Other kinds have a fixed option shape and reject the operation.
func (d *QuizDocument) AddOption(questionID string, idGen func() string) (*Option, error) {
	q := d.QuestionByID(questionID)
	if q == nil {
		return nil, NewQuestionNotFoundError(questionID)
	}
	if q.Kind != KindMultipleChoice {
		return nil, NewError(CodeUnsupportedForKind,
			fmt.Sprintf("cannot add options to a %s question", q.Kind), nil)
	}
	opt := Option{
		ID:   idGen(),
		Text: fmt.Sprintf("Option %d", len(q.Options)+1),
	}
	q.Options = append(q.Options, opt)
	d.touch()
	return &q.Options[len(q.Options)-1], nil
}

// RemoveOption deletes an option from a multiple choice question. The
// operation is rejected when it would drop the question below the option
// floor, and is never allowed for true/false questions. Removing the
// correct option promotes the first remaining option so the single-correct
// invariant keeps holding.
func (d *QuizDocument) RemoveOption(questionID, optionID string) error {
	q := d.QuestionByID(questionID)
	if q == nil {
		return NewQuestionNotFoundError(questionID)
	}
	if q.Kind != KindMultipleChoice {
		return NewError(CodeUnsupportedForKind,
			fmt.Sprintf("cannot remove options from a %s question", q.Kind), nil)
	}
	if len(q.Options) <= MinMCQOptions {
		return NewError(CodeBelowMinimumOptions,
			fmt.Sprintf("question %s must keep at least %d options", questionID, MinMCQOptions), nil)
	}

	for i := range q.Options {
		if q.Options[i].ID == optionID {
			wasCorrect := q.Options[i].IsCorrect
			q.Options = append(q.Options[:i], q.Options[i+1:]...)
			if wasCorrect && len(q.Options) > 0 {
				q.Options[0].IsCorrect = true
			}
			d.touch()
			return nil
		}
	}
	return NewOptionNotFoundError(optionID)
}

// SetOptionText updates the text of an option. True/false option labels are
// fixed and cannot be edited.
func (d *QuizDocument) SetOptionText(questionID, optionID, text string) error {
	q := d.QuestionByID(questionID)
	if q == nil {
		return NewQuestionNotFoundError(questionID)
	}
	if q.Kind == KindTrueFalse {
		return NewError(CodeUnsupportedForKind, "true/false option text is fixed", nil)
	}
	opt := q.OptionByID(optionID)
	if opt == nil {
		return NewOptionNotFoundError(optionID)
	}
	opt.Text = text
	d.touch()
	return nil
}

// SetCorrectOption marks exactly the given option as correct and clears all
// of its siblings. This is where the single-correct-answer invariant is
// enforced.
func (d *QuizDocument) SetCorrectOption(questionID, optionID string) error {
	q := d.QuestionByID(questionID)
	if q == nil {
		return NewQuestionNotFoundError(questionID)
	}
	if q.Kind == KindShortAnswer {
		return NewError(CodeUnsupportedForKind, "short answer questions have no options", nil)
	}
	if q.OptionByID(optionID) == nil {
		return NewOptionNotFoundError(optionID)
	}
	for i := range q.Options {
		q.Options[i].IsCorrect = q.Options[i].ID == optionID
	}
	d.touch()
	return nil
}

// SetVisibility flips the share visibility of the document. Empty quizzes
// are gated at share-link issuance and session start instead, so the toggle
// itself never fails on content.
func (d *QuizDocument) SetVisibility(v Visibility) error {
	if !v.IsValid() {
		return NewError(CodeInvalidSettings, fmt.Sprintf("invalid visibility: %s", v), nil)
	}
	d.Settings.Visibility = v
	d.touch()
	return nil
}

func (d *QuizDocument) touch() {
	d.UpdatedAt = time.Now()
}
