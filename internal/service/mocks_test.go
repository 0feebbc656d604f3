package service

import (
	"context"
	"os"
	"testing"
	"time"

	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/logger"

	"github.com/stretchr/testify/mock"
)

// TestMain initializes the logger for all tests in this package.
func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Env: "development", Level: "info"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

// --- MockQuizRepository ---

type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) GetQuizByID(ctx context.Context, id string) (*domain.QuizDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizDocument), args.Error(1)
}

func (m *MockQuizRepository) SaveQuiz(ctx context.Context, doc *domain.QuizDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockQuizRepository) DeleteQuiz(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- MockAttemptRepository ---

type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) SaveAttempt(ctx context.Context, attempt *domain.Attempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetAttemptByID(ctx context.Context, id string) (*domain.Attempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attempt), args.Error(1)
}

// --- MockCache ---

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// newStoredDoc builds a persisted-looking document with one mcq question
// (option B correct, 10 points) and one true/false question (TRUE correct,
// 5 points).
func newStoredDoc(id string) *domain.QuizDocument {
	doc := domain.NewQuizDocument(id, "Networking Basics")
	doc.Questions = []domain.Question{
		{
			ID:   "q-mcq",
			Kind: domain.KindMultipleChoice,
			Text: "Which layer does TCP live on?",
			Options: []domain.Option{
				{ID: "opt-a", Text: "Layer 3"},
				{ID: "opt-b", Text: "Layer 4", IsCorrect: true},
			},
			Points: 10,
		},
		{
			ID:   "q-tf",
			Kind: domain.KindTrueFalse,
			Text: "UDP is connectionless.",
			Options: []domain.Option{
				{ID: "opt-true", Text: domain.TrueOptionText, IsCorrect: true},
				{ID: "opt-false", Text: domain.FalseOptionText},
			},
			Points: 5,
		},
	}
	return doc
}
