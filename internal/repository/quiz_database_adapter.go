package repository

import (
	"context"
	"database/sql"
	"fmt"
	"quizforge/internal/domain"
	"quizforge/internal/repository/models"
	"sort"

	"github.com/jmoiron/sqlx"
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.DB.
// SaveQuiz rewrites the whole document inside one transaction so readers
// never observe a partially written question set.
type QuizDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter.
func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

// GetQuizByID implements domain.QuizRepository. It returns (nil, nil) when
// the document does not exist.
func (a *QuizDatabaseAdapter) GetQuizByID(ctx context.Context, id string) (*domain.QuizDocument, error) {
	var modelDoc models.QuizDocument
	query := `SELECT
		id "id",
		title "title",
		time_limit_minutes "time_limit_minutes",
		passing_score_percent "passing_score_percent",
		visibility "visibility",
		created_at "created_at",
		updated_at "updated_at"
	FROM quiz_documents
	WHERE id = :1`

	err := a.db.GetContext(ctx, &modelDoc, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz document %s: %w", id, err)
	}

	var modelQuestions []models.QuizQuestion
	questionQuery := `SELECT
		id "id",
		quiz_id "quiz_id",
		kind "kind",
		text "text",
		points "points",
		position "position"
	FROM quiz_questions
	WHERE quiz_id = :1
	ORDER BY position`

	if err := a.db.SelectContext(ctx, &modelQuestions, questionQuery, id); err != nil {
		return nil, fmt.Errorf("failed to get questions for quiz %s: %w", id, err)
	}

	var modelOptions []models.QuizOption
	optionQuery := `SELECT
		o.id "id",
		o.question_id "question_id",
		o.text "text",
		o.is_correct "is_correct",
		o.position "position"
	FROM quiz_options o
	JOIN quiz_questions q ON q.id = o.question_id
	WHERE q.quiz_id = :1
	ORDER BY o.position`

	if err := a.db.SelectContext(ctx, &modelOptions, optionQuery, id); err != nil {
		return nil, fmt.Errorf("failed to get options for quiz %s: %w", id, err)
	}

	return toDomainQuizDocument(&modelDoc, modelQuestions, modelOptions), nil
}

// SaveQuiz implements domain.QuizRepository.
func (a *QuizDatabaseAdapter) SaveQuiz(ctx context.Context, doc *domain.QuizDocument) error {
	if doc == nil {
		return fmt.Errorf("cannot save nil quiz document")
	}

	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteQuizRows(ctx, tx, doc.ID); err != nil {
		return err
	}

	docInsert := `INSERT INTO quiz_documents (
		id, title, time_limit_minutes, passing_score_percent, visibility, created_at, updated_at
	) VALUES (:1, :2, :3, :4, :5, :6, :7)`
	_, err = tx.ExecContext(ctx, docInsert,
		doc.ID,
		doc.Title,
		doc.Settings.TimeLimitMinutes,
		doc.Settings.PassingScorePercent,
		string(doc.Settings.Visibility),
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert quiz document %s: %w", doc.ID, err)
	}

	questionInsert := `INSERT INTO quiz_questions (
		id, quiz_id, kind, text, points, position
	) VALUES (:1, :2, :3, :4, :5, :6)`
	optionInsert := `INSERT INTO quiz_options (
		id, question_id, text, is_correct, position
	) VALUES (:1, :2, :3, :4, :5)`

	for qi, q := range doc.Questions {
		if _, err := tx.ExecContext(ctx, questionInsert, q.ID, doc.ID, string(q.Kind), q.Text, q.Points, qi); err != nil {
			return fmt.Errorf("failed to insert question %s: %w", q.ID, err)
		}
		for oi, o := range q.Options {
			isCorrect := 0
			if o.IsCorrect {
				isCorrect = 1
			}
			if _, err := tx.ExecContext(ctx, optionInsert, o.ID, q.ID, o.Text, isCorrect, oi); err != nil {
				return fmt.Errorf("failed to insert option %s: %w", o.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit quiz document %s: %w", doc.ID, err)
	}
	return nil
}

// DeleteQuiz implements domain.QuizRepository.
func (a *QuizDatabaseAdapter) DeleteQuiz(ctx context.Context, id string) error {
	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteQuizRows(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete of quiz %s: %w", id, err)
	}
	return nil
}

func deleteQuizRows(ctx context.Context, tx *sqlx.Tx, quizID string) error {
	deletes := []string{
		`DELETE FROM quiz_options WHERE question_id IN (SELECT id FROM quiz_questions WHERE quiz_id = :1)`,
		`DELETE FROM quiz_questions WHERE quiz_id = :1`,
		`DELETE FROM quiz_documents WHERE id = :1`,
	}
	for _, q := range deletes {
		if _, err := tx.ExecContext(ctx, q, quizID); err != nil {
			return fmt.Errorf("failed to clear quiz rows for %s: %w", quizID, err)
		}
	}
	return nil
}

func toDomainQuizDocument(modelDoc *models.QuizDocument, modelQuestions []models.QuizQuestion, modelOptions []models.QuizOption) *domain.QuizDocument {
	optionsByQuestion := make(map[string][]models.QuizOption)
	for _, o := range modelOptions {
		optionsByQuestion[o.QuestionID] = append(optionsByQuestion[o.QuestionID], o)
	}

	sort.SliceStable(modelQuestions, func(i, j int) bool {
		return modelQuestions[i].Position < modelQuestions[j].Position
	})

	questions := make([]domain.Question, 0, len(modelQuestions))
	for _, mq := range modelQuestions {
		opts := optionsByQuestion[mq.ID]
		options := make([]domain.Option, 0, len(opts))
		for _, mo := range opts {
			options = append(options, domain.Option{
				ID:        mo.ID,
				Text:      mo.Text,
				IsCorrect: mo.IsCorrect != 0,
			})
		}
		question := domain.Question{
			ID:      mq.ID,
			Kind:    domain.QuestionKind(mq.Kind),
			Text:    mq.Text,
			Points:  mq.Points,
			Options: options,
		}
		if len(options) == 0 {
			question.Options = nil
		}
		questions = append(questions, question)
	}

	return &domain.QuizDocument{
		ID:        modelDoc.ID,
		Title:     modelDoc.Title,
		Questions: questions,
		Settings: domain.QuizSettings{
			TimeLimitMinutes:    modelDoc.TimeLimitMinutes,
			PassingScorePercent: modelDoc.PassingScorePercent,
			Visibility:          domain.Visibility(modelDoc.Visibility),
		},
		CreatedAt: modelDoc.CreatedAt,
		UpdatedAt: modelDoc.UpdatedAt,
	}
}
