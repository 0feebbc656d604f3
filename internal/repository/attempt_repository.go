package repository

import (
	"context"
	"database/sql"
	"fmt"
	"quizforge/internal/domain"
	"quizforge/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxAttemptRepository implements domain.AttemptRepository using sqlx.
type sqlxAttemptRepository struct {
	db *sqlx.DB
}

// NewSQLXAttemptRepository creates a new instance of sqlxAttemptRepository.
func NewSQLXAttemptRepository(db *sqlx.DB) domain.AttemptRepository {
	return &sqlxAttemptRepository{db: db}
}

// SaveAttempt implements domain.AttemptRepository.
func (r *sqlxAttemptRepository) SaveAttempt(ctx context.Context, attempt *domain.Attempt) error {
	if attempt == nil {
		return fmt.Errorf("cannot save nil attempt")
	}
	modelAttempt := fromDomainAttempt(attempt)

	query := `INSERT INTO quiz_attempts (
		id, quiz_id, taker_id, status, answers,
		total_score, score_percent, passed, started_at, finished_at
	) VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9, :10)`

	_, err := r.db.ExecContext(ctx, query,
		modelAttempt.ID,
		modelAttempt.QuizID,
		modelAttempt.TakerID,
		modelAttempt.Status,
		modelAttempt.Answers,
		modelAttempt.TotalScore,
		modelAttempt.ScorePercent,
		modelAttempt.Passed,
		modelAttempt.StartedAt,
		modelAttempt.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save attempt %s: %w", attempt.ID, err)
	}
	return nil
}

// GetAttemptByID implements domain.AttemptRepository. It returns (nil, nil)
// when no attempt exists.
func (r *sqlxAttemptRepository) GetAttemptByID(ctx context.Context, id string) (*domain.Attempt, error) {
	var modelAttempt models.QuizAttempt
	query := `SELECT
		id "id",
		quiz_id "quiz_id",
		taker_id "taker_id",
		status "status",
		answers "answers",
		total_score "total_score",
		score_percent "score_percent",
		passed "passed",
		started_at "started_at",
		finished_at "finished_at"
	FROM quiz_attempts
	WHERE id = :1`

	err := r.db.GetContext(ctx, &modelAttempt, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attempt %s: %w", id, err)
	}
	return toDomainAttempt(&modelAttempt), nil
}

func fromDomainAttempt(attempt *domain.Attempt) *models.QuizAttempt {
	passed := 0
	if attempt.Passed {
		passed = 1
	}
	answers := models.StringMap(attempt.Answers)
	if answers == nil {
		answers = models.StringMap{}
	}
	return &models.QuizAttempt{
		ID:           attempt.ID,
		QuizID:       attempt.QuizID,
		TakerID:      attempt.TakerID,
		Status:       string(attempt.Status),
		Answers:      answers,
		TotalScore:   attempt.TotalScore,
		ScorePercent: attempt.ScorePercent,
		Passed:       passed,
		StartedAt:    attempt.StartedAt,
		FinishedAt:   attempt.FinishedAt,
	}
}

func toDomainAttempt(modelAttempt *models.QuizAttempt) *domain.Attempt {
	return &domain.Attempt{
		ID:           modelAttempt.ID,
		QuizID:       modelAttempt.QuizID,
		TakerID:      modelAttempt.TakerID,
		Status:       domain.SessionStatus(modelAttempt.Status),
		Answers:      map[string]string(modelAttempt.Answers),
		TotalScore:   modelAttempt.TotalScore,
		ScorePercent: modelAttempt.ScorePercent,
		Passed:       modelAttempt.Passed != 0,
		StartedAt:    modelAttempt.StartedAt,
		FinishedAt:   modelAttempt.FinishedAt,
	}
}
