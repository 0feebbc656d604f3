package domain

import (
	"fmt"
	"time"
)

// SessionStatus is the lifecycle state of an assessment attempt.
type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionSubmitted  SessionStatus = "submitted"
	SessionExpired    SessionStatus = "expired"
)

// IsTerminal reports whether the status permits no further mutation.
func (s SessionStatus) IsTerminal() bool {
	return s == SessionSubmitted || s == SessionExpired
}

// AnonymousTaker marks attempts started through a public share link without
// a caller-supplied identity.
const AnonymousTaker = "anonymous"

// SessionResult is the immutable scoring outcome of a terminal session.
type SessionResult struct {
	TotalScore     int  `json:"total_score"`
	PossiblePoints int  `json:"possible_points"`
	ScorePercent   int  `json:"score_percent"`
	Passed         bool `json:"passed"`
}

// AssessmentSession drives a single timed attempt through a quiz. It
// operates against an immutable snapshot of the quiz document captured at
// start time; concurrent authoring edits never reach it. The session itself
// carries no locking: callers must apply all mutations through a single
// writer at a time.
type AssessmentSession struct {
	ID               string            `json:"id"`
	Snapshot         *QuizDocument     `json:"snapshot"`
	TakerID          string            `json:"taker_id"`
	Index            int               `json:"index"`
	Answers          map[string]string `json:"answers"`
	RemainingSeconds int               `json:"remaining_seconds"`
	Status           SessionStatus     `json:"status"`
	StartedAt        time.Time         `json:"started_at"`
	FinishedAt       time.Time         `json:"finished_at,omitempty"`
	Result           *SessionResult    `json:"result,omitempty"`
}

// StartSession captures an immutable copy of the quiz and opens an attempt
// on it. The taker id may be empty, in which case the attempt is anonymous.
func StartSession(id string, doc *QuizDocument, takerID string) (*AssessmentSession, error) {
	if len(doc.Questions) == 0 {
		return nil, NewError(CodeQuizHasNoQuestions,
			fmt.Sprintf("quiz %s has no questions", doc.ID), nil)
	}
	if takerID == "" {
		takerID = AnonymousTaker
	}
	return &AssessmentSession{
		ID:               id,
		Snapshot:         doc.Clone(),
		TakerID:          takerID,
		Answers:          make(map[string]string),
		RemainingSeconds: doc.Settings.TimeLimitMinutes * 60,
		Status:           SessionInProgress,
		StartedAt:        time.Now(),
	}, nil
}

// Answer records the taker's answer for a question. Resubmission is
// allowed; the last value wins. The value is an option id for mcq and
// true/false questions, free text for short answers.
func (s *AssessmentSession) Answer(questionID, value string) error {
	if s.Status != SessionInProgress {
		return NewError(CodeSessionNotActive,
			fmt.Sprintf("session %s is %s", s.ID, s.Status), nil)
	}
	if s.Snapshot.QuestionByID(questionID) == nil {
		return NewError(CodeQuestionNotInSnapshot,
			fmt.Sprintf("question %s is not part of session %s", questionID, s.ID), nil)
	}
	s.Answers[questionID] = value
	return nil
}

// Advance moves to the next question, clamped at the last one. Hitting the
// boundary is a legitimate navigation state, not an error.
func (s *AssessmentSession) Advance() error {
	if s.Status != SessionInProgress {
		return NewError(CodeSessionNotActive,
			fmt.Sprintf("session %s is %s", s.ID, s.Status), nil)
	}
	if s.Index < len(s.Snapshot.Questions)-1 {
		s.Index++
	}
	return nil
}

// Retreat moves to the previous question, clamped at the first one.
func (s *AssessmentSession) Retreat() error {
	if s.Status != SessionInProgress {
		return NewError(CodeSessionNotActive,
			fmt.Sprintf("session %s is %s", s.ID, s.Status), nil)
	}
	if s.Index > 0 {
		s.Index--
	}
	return nil
}

// Tick decrements the countdown by one second. Reaching zero expires the
// session and freezes its result; further answer and navigation calls fail
// with SESSION_NOT_ACTIVE. Tick is an explicit step function so any
// scheduler, including a test harness, can drive it.
func (s *AssessmentSession) Tick() {
	if s.Status != SessionInProgress {
		return
	}
	s.RemainingSeconds--
	if s.RemainingSeconds <= 0 {
		s.RemainingSeconds = 0
		s.finalize(SessionExpired)
	}
}

// Submit closes the attempt and computes its result. It is only valid while
// the session is in progress; a session that is already terminal (submitted
// earlier, or expired by the timer) reports SESSION_ALREADY_TERMINAL rather
// than silently recomputing.
func (s *AssessmentSession) Submit() (*SessionResult, error) {
	if s.Status.IsTerminal() {
		return nil, NewError(CodeSessionAlreadyTerminal,
			fmt.Sprintf("session %s is already %s", s.ID, s.Status), nil)
	}
	s.finalize(SessionSubmitted)
	return s.Result, nil
}

// finalize scores the attempt and moves it to a terminal status. Expiry
// scores with whatever answers were captured before time ran out.
func (s *AssessmentSession) finalize(status SessionStatus) {
	s.Status = status
	s.FinishedAt = time.Now()
	s.Result = s.score()
}

// score sums the points of questions whose stored answer names the correct
// option. Short-answer questions have no automatic correctness check and
// are excluded from both the score and the possible total. A quiz with no
// automatically scorable points passes trivially.
func (s *AssessmentSession) score() *SessionResult {
	total := 0
	possible := 0
	for _, q := range s.Snapshot.Questions {
		if q.Kind == KindShortAnswer {
			continue
		}
		possible += q.Points
		answer, ok := s.Answers[q.ID]
		if !ok {
			continue
		}
		if opt := q.OptionByID(answer); opt != nil && opt.IsCorrect {
			total += q.Points
		}
	}

	result := &SessionResult{
		TotalScore:     total,
		PossiblePoints: possible,
	}
	if possible == 0 {
		result.ScorePercent = 100
		result.Passed = true
		return result
	}
	result.ScorePercent = 100 * total / possible
	result.Passed = result.ScorePercent >= s.Snapshot.Settings.PassingScorePercent
	return result
}
