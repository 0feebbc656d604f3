package domain

import (
	"context"
	"time"
)

// QuizRepository is the persistence port for quiz documents. Save must be
// atomic per document: readers never observe a partially written question
// set.
type QuizRepository interface {
	// GetQuizByID retrieves a document by id. It returns (nil, nil) when
	// the document does not exist.
	GetQuizByID(ctx context.Context, id string) (*QuizDocument, error)

	// SaveQuiz persists the document, replacing any previous version in a
	// single transaction.
	SaveQuiz(ctx context.Context, doc *QuizDocument) error

	// DeleteQuiz removes the document and its questions. Deleting an absent
	// document is not an error.
	DeleteQuiz(ctx context.Context, id string) error
}

// Attempt is the persisted record of a terminal assessment session.
type Attempt struct {
	ID           string
	QuizID       string
	TakerID      string
	Status       SessionStatus
	Answers      map[string]string
	TotalScore   int
	ScorePercent int
	Passed       bool
	StartedAt    time.Time
	FinishedAt   time.Time
}

// AttemptRepository persists completed (submitted or expired) attempts.
type AttemptRepository interface {
	SaveAttempt(ctx context.Context, attempt *Attempt) error

	// GetAttemptByID returns (nil, nil) when no attempt exists.
	GetAttemptByID(ctx context.Context, id string) (*Attempt, error)
}
