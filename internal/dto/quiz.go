package dto

import "quizforge/internal/domain"

// CreateQuizRequest creates a new, empty quiz document.
type CreateQuizRequest struct {
	Title string `json:"title"`
}

// UpdateSettingsRequest adjusts quiz-level settings. Nil fields are left
// unchanged.
type UpdateSettingsRequest struct {
	TimeLimitMinutes    *int    `json:"time_limit_minutes,omitempty"`
	PassingScorePercent *int    `json:"passing_score_percent,omitempty"`
	Visibility          *string `json:"visibility,omitempty"`
}

// AddQuestionRequest appends a question of the given kind.
type AddQuestionRequest struct {
	Kind string `json:"kind"`
}

// UpdateQuestionRequest edits a question's prompt and/or points.
type UpdateQuestionRequest struct {
	Text   *string `json:"text,omitempty"`
	Points *int    `json:"points,omitempty"`
}

// ReorderQuestionRequest moves one question to a new position.
type ReorderQuestionRequest struct {
	FromIndex int `json:"from_index"`
	ToIndex   int `json:"to_index"`
}

// UpdateOptionRequest edits an option's text.
type UpdateOptionRequest struct {
	Text string `json:"text"`
}

// OptionResponse is an option as seen by the authoring surface.
type OptionResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionResponse is a question as seen by the authoring surface.
type QuestionResponse struct {
	ID      string           `json:"id"`
	Kind    string           `json:"kind"`
	Text    string           `json:"text"`
	Options []OptionResponse `json:"options"`
	Points  int              `json:"points"`
}

// QuizSettingsResponse mirrors domain.QuizSettings.
type QuizSettingsResponse struct {
	TimeLimitMinutes    int    `json:"time_limit_minutes"`
	PassingScorePercent int    `json:"passing_score_percent"`
	Visibility          string `json:"visibility"`
}

// QuizResponse is the full authoring view of a quiz document.
type QuizResponse struct {
	ID        string               `json:"id"`
	Title     string               `json:"title"`
	Questions []QuestionResponse   `json:"questions"`
	Settings  QuizSettingsResponse `json:"settings"`
}

// ShareLinkResponse carries a freshly issued public access token.
type ShareLinkResponse struct {
	QuizID string `json:"quiz_id"`
	Token  string `json:"token"`
}

// PublicOptionResponse deliberately omits the correctness flag: anonymous
// takers must never see the rubric.
type PublicOptionResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// PublicQuestionResponse is a question as served to anonymous takers.
type PublicQuestionResponse struct {
	ID      string                 `json:"id"`
	Kind    string                 `json:"kind"`
	Text    string                 `json:"text"`
	Options []PublicOptionResponse `json:"options"`
	Points  int                    `json:"points"`
}

// PublicQuizResponse is the anonymous view of a shared quiz snapshot.
type PublicQuizResponse struct {
	ID                  string                   `json:"id"`
	Title               string                   `json:"title"`
	Questions           []PublicQuestionResponse `json:"questions"`
	TimeLimitMinutes    int                      `json:"time_limit_minutes"`
	PassingScorePercent int                      `json:"passing_score_percent"`
}

// ErrorResponse represents an error in the API response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToQuizResponse maps a domain document to its authoring DTO.
func ToQuizResponse(doc *domain.QuizDocument) *QuizResponse {
	questions := make([]QuestionResponse, 0, len(doc.Questions))
	for _, q := range doc.Questions {
		options := make([]OptionResponse, 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, OptionResponse{ID: o.ID, Text: o.Text, IsCorrect: o.IsCorrect})
		}
		questions = append(questions, QuestionResponse{
			ID:      q.ID,
			Kind:    string(q.Kind),
			Text:    q.Text,
			Options: options,
			Points:  q.Points,
		})
	}
	return &QuizResponse{
		ID:        doc.ID,
		Title:     doc.Title,
		Questions: questions,
		Settings: QuizSettingsResponse{
			TimeLimitMinutes:    doc.Settings.TimeLimitMinutes,
			PassingScorePercent: doc.Settings.PassingScorePercent,
			Visibility:          string(doc.Settings.Visibility),
		},
	}
}

// ToPublicQuizResponse maps a snapshot to the anonymous view, stripping
// correctness flags.
func ToPublicQuizResponse(doc *domain.QuizDocument) *PublicQuizResponse {
	questions := make([]PublicQuestionResponse, 0, len(doc.Questions))
	for _, q := range doc.Questions {
		options := make([]PublicOptionResponse, 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, PublicOptionResponse{ID: o.ID, Text: o.Text})
		}
		questions = append(questions, PublicQuestionResponse{
			ID:      q.ID,
			Kind:    string(q.Kind),
			Text:    q.Text,
			Options: options,
			Points:  q.Points,
		})
	}
	return &PublicQuizResponse{
		ID:                  doc.ID,
		Title:               doc.Title,
		Questions:           questions,
		TimeLimitMinutes:    doc.Settings.TimeLimitMinutes,
		PassingScorePercent: doc.Settings.PassingScorePercent,
	}
}
