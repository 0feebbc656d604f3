package domain

// PreviewRunner lets an author rehearse the taking flow against the live,
// mutable document rather than a frozen snapshot, so edits made between
// preview steps show up immediately. Nothing is timed authoritatively,
// scored or persisted. The navigation index is clamped on every access
// because the question count can shrink underneath it.
type PreviewRunner struct {
	ID      string
	load    func() (*QuizDocument, error)
	index   int
	answers map[string]string
}

// NewPreviewRunner creates a runner over the document returned by load,
// which is consulted on every step to observe the latest edits.
func NewPreviewRunner(id string, load func() (*QuizDocument, error)) *PreviewRunner {
	return &PreviewRunner{
		ID:      id,
		load:    load,
		answers: make(map[string]string),
	}
}

// Document returns the current live document with the runner's index
// clamped to its question count.
func (p *PreviewRunner) Document() (*QuizDocument, error) {
	doc, err := p.load()
	if err != nil {
		return nil, err
	}
	p.clamp(doc)
	return doc, nil
}

// Index returns the current question position.
func (p *PreviewRunner) Index() int {
	return p.index
}

// Answers returns the rehearsal answers captured so far.
func (p *PreviewRunner) Answers() map[string]string {
	return p.answers
}

// Answer records a rehearsal answer. Unlike a real session, a question that
// was deleted mid-preview simply reports QUESTION_NOT_FOUND against the
// live document.
func (p *PreviewRunner) Answer(questionID, value string) error {
	doc, err := p.load()
	if err != nil {
		return err
	}
	p.clamp(doc)
	if doc.QuestionByID(questionID) == nil {
		return NewQuestionNotFoundError(questionID)
	}
	p.answers[questionID] = value
	return nil
}

// Advance moves forward one question, clamped to the current count.
func (p *PreviewRunner) Advance() error {
	doc, err := p.load()
	if err != nil {
		return err
	}
	if p.index < len(doc.Questions)-1 {
		p.index++
	}
	p.clamp(doc)
	return nil
}

// Retreat moves back one question, clamped at the first.
func (p *PreviewRunner) Retreat() error {
	doc, err := p.load()
	if err != nil {
		return err
	}
	if p.index > 0 {
		p.index--
	}
	p.clamp(doc)
	return nil
}

func (p *PreviewRunner) clamp(doc *QuizDocument) {
	if n := len(doc.Questions); p.index >= n {
		p.index = n - 1
	}
	if p.index < 0 {
		p.index = 0
	}
}
