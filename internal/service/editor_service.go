package service

import (
	"context"
	"quizforge/internal/cache"
	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/logger"
	"quizforge/internal/util"

	"go.uber.org/zap"
)

// EditorService is the authoring API over quiz documents. Every mutation
// loads the stored document, applies the edit to a private copy and
// persists that copy before anything becomes visible, so a failed save
// never leaves the in-memory and stored document diverging.
type EditorService interface {
	CreateQuiz(ctx context.Context, title string) (*dto.QuizResponse, error)
	GetQuiz(ctx context.Context, quizID string) (*dto.QuizResponse, error)
	DeleteQuiz(ctx context.Context, quizID string) error
	UpdateSettings(ctx context.Context, quizID string, req *dto.UpdateSettingsRequest) (*dto.QuizResponse, error)

	AddQuestion(ctx context.Context, quizID string, kind domain.QuestionKind) (*dto.QuizResponse, error)
	RemoveQuestion(ctx context.Context, quizID, questionID string) (*dto.QuizResponse, error)
	ReorderQuestion(ctx context.Context, quizID string, fromIndex, toIndex int) (*dto.QuizResponse, error)
	UpdateQuestion(ctx context.Context, quizID, questionID string, req *dto.UpdateQuestionRequest) (*dto.QuizResponse, error)

	AddOption(ctx context.Context, quizID, questionID string) (*dto.QuizResponse, error)
	RemoveOption(ctx context.Context, quizID, questionID, optionID string) (*dto.QuizResponse, error)
	SetOptionText(ctx context.Context, quizID, questionID, optionID, text string) (*dto.QuizResponse, error)
	SetCorrectOption(ctx context.Context, quizID, questionID, optionID string) (*dto.QuizResponse, error)
}

// editorService implements EditorService.
type editorService struct {
	repo     domain.QuizRepository
	docCache domain.Cache
}

// NewEditorService creates a new instance of editorService. The cache is
// optional; when present, saved documents evict their public snapshot
// entry.
func NewEditorService(repo domain.QuizRepository, docCache domain.Cache) EditorService {
	return &editorService{repo: repo, docCache: docCache}
}

func (s *editorService) loadDocument(ctx context.Context, quizID string) (*domain.QuizDocument, error) {
	doc, err := s.repo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewPersistenceError("failed to load quiz", err)
	}
	if doc == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}
	return doc, nil
}

// mutate runs fn against a copy of the stored document and persists the
// result. The copy is discarded when the save fails.
func (s *editorService) mutate(ctx context.Context, quizID string, fn func(doc *domain.QuizDocument) error) (*dto.QuizResponse, error) {
	stored, err := s.loadDocument(ctx, quizID)
	if err != nil {
		return nil, err
	}

	doc := stored.Clone()
	if err := fn(doc); err != nil {
		return nil, err
	}

	if err := s.repo.SaveQuiz(ctx, doc); err != nil {
		return nil, domain.NewPersistenceError("failed to save quiz", err)
	}
	s.evictSnapshot(ctx, quizID)
	return dto.ToQuizResponse(doc), nil
}

// evictSnapshot drops the cached public snapshot after a successful save so
// anonymous takers never start from a stale question set.
func (s *editorService) evictSnapshot(ctx context.Context, quizID string) {
	if s.docCache == nil {
		return
	}
	if err := s.docCache.Delete(ctx, cache.SnapshotKey(quizID)); err != nil {
		logger.Get().Warn("Failed to evict quiz snapshot from cache",
			zap.String("quiz_id", quizID),
			zap.Error(err))
	}
}

// CreateQuiz implements EditorService.
func (s *editorService) CreateQuiz(ctx context.Context, title string) (*dto.QuizResponse, error) {
	doc := domain.NewQuizDocument(util.NewULID(), title)
	if err := s.repo.SaveQuiz(ctx, doc); err != nil {
		return nil, domain.NewPersistenceError("failed to save quiz", err)
	}
	logger.Get().Info("Quiz created", zap.String("quiz_id", doc.ID), zap.String("title", title))
	return dto.ToQuizResponse(doc), nil
}

// GetQuiz implements EditorService.
func (s *editorService) GetQuiz(ctx context.Context, quizID string) (*dto.QuizResponse, error) {
	doc, err := s.loadDocument(ctx, quizID)
	if err != nil {
		return nil, err
	}
	return dto.ToQuizResponse(doc), nil
}

// DeleteQuiz implements EditorService. Deletion is explicit; loading the id
// afterwards reports QUIZ_NOT_FOUND.
func (s *editorService) DeleteQuiz(ctx context.Context, quizID string) error {
	if _, err := s.loadDocument(ctx, quizID); err != nil {
		return err
	}
	if err := s.repo.DeleteQuiz(ctx, quizID); err != nil {
		return domain.NewPersistenceError("failed to delete quiz", err)
	}
	s.evictSnapshot(ctx, quizID)
	logger.Get().Info("Quiz deleted", zap.String("quiz_id", quizID))
	return nil
}

// UpdateSettings implements EditorService. Absent fields keep their stored
// values.
func (s *editorService) UpdateSettings(ctx context.Context, quizID string, req *dto.UpdateSettingsRequest) (*dto.QuizResponse, error) {
	return s.mutate(ctx, quizID, func(doc *domain.QuizDocument) error {
		settings := doc.Settings
		if req.TimeLimitMinutes != nil {
			settings.TimeLimitMinutes = *req.TimeLimitMinutes
		}
		if req.PassingScorePercent != nil {
			settings.PassingScorePercent = *req.PassingScorePercent
		}
		if req.Visibility != nil {
			settings.Visibility = domain.Visibility(*req.Visibility)
		}
		if err := settings.Validate(); err != nil {
			return err
		}
		if settings.Visibility != doc.Settings.Visibility {
			if err := doc.SetVisibility(settings.Visibility); err != nil {
				return err
			}
		}
		doc.Settings = settings
		return nil
	})
}

// AddQuestion implements EditorService.
func (s *editorService) AddQuestion(ctx context.Context, quizID string, kind domain.QuestionKind) (*dto.QuizResponse, error) {
	return s.mutate(ctx, quizID, func(doc *domain.QuizDocument) error {
		_, err := doc.AddQuestion(kind, util.NewULID)
		return err
	})
}

// RemoveQuestion implements EditorService.
func (s *editorService) RemoveQuestion(ctx context.Context, quizID, questionID string) (*dto.QuizResponse, error) {
	return s.mutate(ctx, quizID, func(doc *domain.QuizDocument) error {
		return doc.RemoveQuestion(questionID)
	})
}

// ReorderQuestion implements EditorService.
func (s *editorService) ReorderQuestion(ctx context.Context, quizID string, fromIndex, toIndex int) (*dto.QuizResponse, error) {
	return s.mutate(ctx, quizID, func(doc *domain.QuizDocument) error {
		return doc.ReorderQuestion(fromIndex, toIndex)
	})
}

// UpdateQuestion implements EditorService.
func (s *editorService) UpdateQuestion(ctx context.Context, quizID, questionID string, req *dto.UpdateQuestionRequest) (*dto.QuizResponse, error) {
	return s.mutate(ctx, quizID, func(doc *domain.QuizDocument) error {
		if req.Text != nil {
			if err := doc.SetQuestionText(questionID, *req.Text); err != nil {
				return err
			}
		}
		if req.Points != nil {
			if err := doc.SetQuestionPoints(questionID, *req.Points); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddOption implements EditorService.
func (s *editorService) AddOption(ctx context.Context, quizID, questionID string) (*dto.QuizResponse, error) {
	return s.mutate(ctx, quizID, func(doc *domain.QuizDocument) error {
		_, err := doc.AddOption(questionID, util.NewULID)
		return err
	})
}

// RemoveOption implements EditorService.
func (s *editorService) RemoveOption(ctx context.Context, quizID, questionID, optionID string) (*dto.QuizResponse, error) {
	return s.mutate(ctx, quizID, func(doc *domain.QuizDocument) error {
		return doc.RemoveOption(questionID, optionID)
	})
}

// SetOptionText implements EditorService.
func (s *editorService) SetOptionText(ctx context.Context, quizID, questionID, optionID, text string) (*dto.QuizResponse, error) {
	return s.mutate(ctx, quizID, func(doc *domain.QuizDocument) error {
		return doc.SetOptionText(questionID, optionID, text)
	})
}

// SetCorrectOption implements EditorService.
func (s *editorService) SetCorrectOption(ctx context.Context, quizID, questionID, optionID string) (*dto.QuizResponse, error) {
	return s.mutate(ctx, quizID, func(doc *domain.QuizDocument) error {
		return doc.SetCorrectOption(questionID, optionID)
	})
}
