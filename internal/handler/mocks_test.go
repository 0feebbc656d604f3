package handler_test

import (
	"context"

	"quizforge/internal/domain"
	"quizforge/internal/dto"
)

// --- Manual Mocks ---

// MockEditorService
type MockEditorService struct {
	CreateQuizFunc       func(ctx context.Context, title string) (*dto.QuizResponse, error)
	GetQuizFunc          func(ctx context.Context, quizID string) (*dto.QuizResponse, error)
	DeleteQuizFunc       func(ctx context.Context, quizID string) error
	UpdateSettingsFunc   func(ctx context.Context, quizID string, req *dto.UpdateSettingsRequest) (*dto.QuizResponse, error)
	AddQuestionFunc      func(ctx context.Context, quizID string, kind domain.QuestionKind) (*dto.QuizResponse, error)
	RemoveQuestionFunc   func(ctx context.Context, quizID, questionID string) (*dto.QuizResponse, error)
	ReorderQuestionFunc  func(ctx context.Context, quizID string, fromIndex, toIndex int) (*dto.QuizResponse, error)
	UpdateQuestionFunc   func(ctx context.Context, quizID, questionID string, req *dto.UpdateQuestionRequest) (*dto.QuizResponse, error)
	AddOptionFunc        func(ctx context.Context, quizID, questionID string) (*dto.QuizResponse, error)
	RemoveOptionFunc     func(ctx context.Context, quizID, questionID, optionID string) (*dto.QuizResponse, error)
	SetOptionTextFunc    func(ctx context.Context, quizID, questionID, optionID, text string) (*dto.QuizResponse, error)
	SetCorrectOptionFunc func(ctx context.Context, quizID, questionID, optionID string) (*dto.QuizResponse, error)
}

func (m *MockEditorService) CreateQuiz(ctx context.Context, title string) (*dto.QuizResponse, error) {
	if m.CreateQuizFunc != nil {
		return m.CreateQuizFunc(ctx, title)
	}
	panic("MockEditorService.CreateQuizFunc not implemented")
}
func (m *MockEditorService) GetQuiz(ctx context.Context, quizID string) (*dto.QuizResponse, error) {
	if m.GetQuizFunc != nil {
		return m.GetQuizFunc(ctx, quizID)
	}
	panic("MockEditorService.GetQuizFunc not implemented")
}
func (m *MockEditorService) DeleteQuiz(ctx context.Context, quizID string) error {
	if m.DeleteQuizFunc != nil {
		return m.DeleteQuizFunc(ctx, quizID)
	}
	panic("MockEditorService.DeleteQuizFunc not implemented")
}
func (m *MockEditorService) UpdateSettings(ctx context.Context, quizID string, req *dto.UpdateSettingsRequest) (*dto.QuizResponse, error) {
	if m.UpdateSettingsFunc != nil {
		return m.UpdateSettingsFunc(ctx, quizID, req)
	}
	panic("MockEditorService.UpdateSettingsFunc not implemented")
}
func (m *MockEditorService) AddQuestion(ctx context.Context, quizID string, kind domain.QuestionKind) (*dto.QuizResponse, error) {
	if m.AddQuestionFunc != nil {
		return m.AddQuestionFunc(ctx, quizID, kind)
	}
	panic("MockEditorService.AddQuestionFunc not implemented")
}
func (m *MockEditorService) RemoveQuestion(ctx context.Context, quizID, questionID string) (*dto.QuizResponse, error) {
	if m.RemoveQuestionFunc != nil {
		return m.RemoveQuestionFunc(ctx, quizID, questionID)
	}
	panic("MockEditorService.RemoveQuestionFunc not implemented")
}
func (m *MockEditorService) ReorderQuestion(ctx context.Context, quizID string, fromIndex, toIndex int) (*dto.QuizResponse, error) {
	if m.ReorderQuestionFunc != nil {
		return m.ReorderQuestionFunc(ctx, quizID, fromIndex, toIndex)
	}
	panic("MockEditorService.ReorderQuestionFunc not implemented")
}
func (m *MockEditorService) UpdateQuestion(ctx context.Context, quizID, questionID string, req *dto.UpdateQuestionRequest) (*dto.QuizResponse, error) {
	if m.UpdateQuestionFunc != nil {
		return m.UpdateQuestionFunc(ctx, quizID, questionID, req)
	}
	panic("MockEditorService.UpdateQuestionFunc not implemented")
}
func (m *MockEditorService) AddOption(ctx context.Context, quizID, questionID string) (*dto.QuizResponse, error) {
	if m.AddOptionFunc != nil {
		return m.AddOptionFunc(ctx, quizID, questionID)
	}
	panic("MockEditorService.AddOptionFunc not implemented")
}
func (m *MockEditorService) RemoveOption(ctx context.Context, quizID, questionID, optionID string) (*dto.QuizResponse, error) {
	if m.RemoveOptionFunc != nil {
		return m.RemoveOptionFunc(ctx, quizID, questionID, optionID)
	}
	panic("MockEditorService.RemoveOptionFunc not implemented")
}
func (m *MockEditorService) SetOptionText(ctx context.Context, quizID, questionID, optionID, text string) (*dto.QuizResponse, error) {
	if m.SetOptionTextFunc != nil {
		return m.SetOptionTextFunc(ctx, quizID, questionID, optionID, text)
	}
	panic("MockEditorService.SetOptionTextFunc not implemented")
}
func (m *MockEditorService) SetCorrectOption(ctx context.Context, quizID, questionID, optionID string) (*dto.QuizResponse, error) {
	if m.SetCorrectOptionFunc != nil {
		return m.SetCorrectOptionFunc(ctx, quizID, questionID, optionID)
	}
	panic("MockEditorService.SetCorrectOptionFunc not implemented")
}

// MockShareService
type MockShareService struct {
	IssueFunc   func(ctx context.Context, quizID string) (string, error)
	ResolveFunc func(ctx context.Context, token string) (*domain.QuizDocument, error)
}

func (m *MockShareService) Issue(ctx context.Context, quizID string) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, quizID)
	}
	panic("MockShareService.IssueFunc not implemented")
}
func (m *MockShareService) Resolve(ctx context.Context, token string) (*domain.QuizDocument, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, token)
	}
	panic("MockShareService.ResolveFunc not implemented")
}

// MockSessionService
type MockSessionService struct {
	StartFunc          func(ctx context.Context, quizID, takerID string) (*dto.SessionResponse, error)
	StartFromTokenFunc func(ctx context.Context, token, takerID string) (*dto.SessionResponse, error)
	GetFunc            func(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	AnswerFunc         func(ctx context.Context, sessionID string, req *dto.AnswerRequest) (*dto.SessionResponse, error)
	AdvanceFunc        func(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	RetreatFunc        func(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	TickFunc           func(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	SubmitFunc         func(ctx context.Context, sessionID string) (*dto.SessionResultResponse, error)
	AbandonFunc        func(ctx context.Context, sessionID string) error
}

func (m *MockSessionService) Start(ctx context.Context, quizID, takerID string) (*dto.SessionResponse, error) {
	if m.StartFunc != nil {
		return m.StartFunc(ctx, quizID, takerID)
	}
	panic("MockSessionService.StartFunc not implemented")
}
func (m *MockSessionService) StartFromToken(ctx context.Context, token, takerID string) (*dto.SessionResponse, error) {
	if m.StartFromTokenFunc != nil {
		return m.StartFromTokenFunc(ctx, token, takerID)
	}
	panic("MockSessionService.StartFromTokenFunc not implemented")
}
func (m *MockSessionService) Get(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, sessionID)
	}
	panic("MockSessionService.GetFunc not implemented")
}
func (m *MockSessionService) Answer(ctx context.Context, sessionID string, req *dto.AnswerRequest) (*dto.SessionResponse, error) {
	if m.AnswerFunc != nil {
		return m.AnswerFunc(ctx, sessionID, req)
	}
	panic("MockSessionService.AnswerFunc not implemented")
}
func (m *MockSessionService) Advance(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	if m.AdvanceFunc != nil {
		return m.AdvanceFunc(ctx, sessionID)
	}
	panic("MockSessionService.AdvanceFunc not implemented")
}
func (m *MockSessionService) Retreat(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	if m.RetreatFunc != nil {
		return m.RetreatFunc(ctx, sessionID)
	}
	panic("MockSessionService.RetreatFunc not implemented")
}
func (m *MockSessionService) Tick(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	if m.TickFunc != nil {
		return m.TickFunc(ctx, sessionID)
	}
	panic("MockSessionService.TickFunc not implemented")
}
func (m *MockSessionService) Submit(ctx context.Context, sessionID string) (*dto.SessionResultResponse, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, sessionID)
	}
	panic("MockSessionService.SubmitFunc not implemented")
}
func (m *MockSessionService) Abandon(ctx context.Context, sessionID string) error {
	if m.AbandonFunc != nil {
		return m.AbandonFunc(ctx, sessionID)
	}
	panic("MockSessionService.AbandonFunc not implemented")
}
