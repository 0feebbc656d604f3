package dto

import "quizforge/internal/domain"

// StartSessionRequest opens an attempt against a quiz by id. The taker id
// comes from the identity middleware, not the body.
type StartSessionRequest struct {
	QuizID string `json:"quiz_id"`
}

// AnswerRequest records an answer for one question. Value is an option id
// for mcq and true/false questions, free text for short answers.
type AnswerRequest struct {
	QuestionID string `json:"question_id"`
	Value      string `json:"value"`
}

// SessionResultResponse is the scoring outcome of a terminal session.
type SessionResultResponse struct {
	TotalScore     int  `json:"total_score"`
	PossiblePoints int  `json:"possible_points"`
	ScorePercent   int  `json:"score_percent"`
	Passed         bool `json:"passed"`
}

// SessionResponse is the taker's view of an attempt. The embedded quiz view
// never exposes correctness flags.
type SessionResponse struct {
	ID               string                 `json:"id"`
	Quiz             *PublicQuizResponse    `json:"quiz"`
	TakerID          string                 `json:"taker_id"`
	Index            int                    `json:"index"`
	Answers          map[string]string      `json:"answers"`
	RemainingSeconds int                    `json:"remaining_seconds"`
	Status           string                 `json:"status"`
	Result           *SessionResultResponse `json:"result,omitempty"`
}

// PreviewResponse is the author's rehearsal view. Unlike SessionResponse it
// exposes the live document including correctness flags, since the author
// owns the rubric anyway.
type PreviewResponse struct {
	ID      string            `json:"id"`
	Quiz    *QuizResponse     `json:"quiz"`
	Index   int               `json:"index"`
	Answers map[string]string `json:"answers"`
}

// ToSessionResponse maps a domain session to the taker-facing DTO.
func ToSessionResponse(sess *domain.AssessmentSession) *SessionResponse {
	resp := &SessionResponse{
		ID:               sess.ID,
		Quiz:             ToPublicQuizResponse(sess.Snapshot),
		TakerID:          sess.TakerID,
		Index:            sess.Index,
		Answers:          sess.Answers,
		RemainingSeconds: sess.RemainingSeconds,
		Status:           string(sess.Status),
	}
	if sess.Result != nil {
		resp.Result = &SessionResultResponse{
			TotalScore:     sess.Result.TotalScore,
			PossiblePoints: sess.Result.PossiblePoints,
			ScorePercent:   sess.Result.ScorePercent,
			Passed:         sess.Result.Passed,
		}
	}
	return resp
}
