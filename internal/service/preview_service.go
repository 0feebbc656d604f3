package service

import (
	"context"
	"sync"

	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/logger"
	"quizforge/internal/util"

	"go.uber.org/zap"
)

// PreviewService lets an author step through a quiz exactly as a taker
// would, but against the live document so mid-preview edits are visible.
// Previews are ephemeral process-local state; nothing is scored or stored.
type PreviewService interface {
	// Start opens a preview over an existing quiz.
	Start(ctx context.Context, quizID string) (*dto.PreviewResponse, error)

	Get(ctx context.Context, previewID string) (*dto.PreviewResponse, error)
	Answer(ctx context.Context, previewID string, req *dto.AnswerRequest) (*dto.PreviewResponse, error)
	Advance(ctx context.Context, previewID string) (*dto.PreviewResponse, error)
	Retreat(ctx context.Context, previewID string) (*dto.PreviewResponse, error)

	// Stop discards a preview. Stopping an unknown preview is not an error.
	Stop(ctx context.Context, previewID string) error
}

// previewService implements PreviewService.
type previewService struct {
	repo domain.QuizRepository

	mu      sync.Mutex
	runners map[string]*domain.PreviewRunner
}

// NewPreviewService creates a new instance of previewService.
func NewPreviewService(repo domain.QuizRepository) PreviewService {
	return &previewService{
		repo:    repo,
		runners: make(map[string]*domain.PreviewRunner),
	}
}

// Start implements PreviewService.
func (s *previewService) Start(ctx context.Context, quizID string) (*dto.PreviewResponse, error) {
	// Fail fast on a missing quiz instead of on the first step.
	doc, err := s.repo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewPersistenceError("failed to load quiz", err)
	}
	if doc == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}

	runner := domain.NewPreviewRunner(util.NewULID(), s.loader(quizID))
	s.mu.Lock()
	s.runners[runner.ID] = runner
	s.mu.Unlock()

	logger.Get().Info("Preview started", zap.String("preview_id", runner.ID), zap.String("quiz_id", quizID))
	return s.render(runner)
}

// Get implements PreviewService.
func (s *previewService) Get(ctx context.Context, previewID string) (*dto.PreviewResponse, error) {
	runner, err := s.find(previewID)
	if err != nil {
		return nil, err
	}
	return s.render(runner)
}

// Answer implements PreviewService.
func (s *previewService) Answer(ctx context.Context, previewID string, req *dto.AnswerRequest) (*dto.PreviewResponse, error) {
	runner, err := s.find(previewID)
	if err != nil {
		return nil, err
	}
	if err := runner.Answer(req.QuestionID, req.Value); err != nil {
		return nil, err
	}
	return s.render(runner)
}

// Advance implements PreviewService.
func (s *previewService) Advance(ctx context.Context, previewID string) (*dto.PreviewResponse, error) {
	runner, err := s.find(previewID)
	if err != nil {
		return nil, err
	}
	if err := runner.Advance(); err != nil {
		return nil, err
	}
	return s.render(runner)
}

// Retreat implements PreviewService.
func (s *previewService) Retreat(ctx context.Context, previewID string) (*dto.PreviewResponse, error) {
	runner, err := s.find(previewID)
	if err != nil {
		return nil, err
	}
	if err := runner.Retreat(); err != nil {
		return nil, err
	}
	return s.render(runner)
}

// Stop implements PreviewService.
func (s *previewService) Stop(ctx context.Context, previewID string) error {
	s.mu.Lock()
	delete(s.runners, previewID)
	s.mu.Unlock()
	return nil
}

// loader builds the live-document accessor a runner consults on every step.
// It outlives the request that started the preview, so it cannot hold on to
// that request's context.
func (s *previewService) loader(quizID string) func() (*domain.QuizDocument, error) {
	return func() (*domain.QuizDocument, error) {
		doc, err := s.repo.GetQuizByID(context.Background(), quizID)
		if err != nil {
			return nil, domain.NewPersistenceError("failed to load quiz", err)
		}
		if doc == nil {
			// The quiz was deleted mid-preview.
			return nil, domain.NewQuizNotFoundError(quizID)
		}
		return doc, nil
	}
}

func (s *previewService) find(previewID string) (*domain.PreviewRunner, error) {
	s.mu.Lock()
	runner, ok := s.runners[previewID]
	s.mu.Unlock()
	if !ok {
		return nil, domain.NewError(domain.CodeNotFound, "preview "+previewID+" not found", nil)
	}
	return runner, nil
}

func (s *previewService) render(runner *domain.PreviewRunner) (*dto.PreviewResponse, error) {
	doc, err := runner.Document()
	if err != nil {
		return nil, err
	}
	return &dto.PreviewResponse{
		ID:      runner.ID,
		Quiz:    dto.ToQuizResponse(doc),
		Index:   runner.Index(),
		Answers: runner.Answers(),
	}, nil
}
