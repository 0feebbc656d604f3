package handler

import (
	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/service"

	"github.com/gofiber/fiber/v2"
)

// EditorHandler handles authoring HTTP requests.
type EditorHandler struct {
	editor service.EditorService
	share  service.ShareService
}

// NewEditorHandler creates a new EditorHandler instance.
func NewEditorHandler(editor service.EditorService, share service.ShareService) *EditorHandler {
	return &EditorHandler{editor: editor, share: share}
}

// CreateQuiz handles POST /api/quizzes
func (h *EditorHandler) CreateQuiz(c *fiber.Ctx) error {
	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", "json")}
	}
	if req.Title == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("title")}
	}

	resp, err := h.editor.CreateQuiz(c.Context(), req.Title)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetQuiz handles GET /api/quizzes/:id
func (h *EditorHandler) GetQuiz(c *fiber.Ctx) error {
	resp, err := h.editor.GetQuiz(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteQuiz handles DELETE /api/quizzes/:id
func (h *EditorHandler) DeleteQuiz(c *fiber.Ctx) error {
	if err := h.editor.DeleteQuiz(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateSettings handles PATCH /api/quizzes/:id/settings
func (h *EditorHandler) UpdateSettings(c *fiber.Ctx) error {
	var req dto.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", "json")}
	}

	resp, err := h.editor.UpdateSettings(c.Context(), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// AddQuestion handles POST /api/quizzes/:id/questions
func (h *EditorHandler) AddQuestion(c *fiber.Ctx) error {
	var req dto.AddQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", "json")}
	}
	if req.Kind == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("kind")}
	}

	resp, err := h.editor.AddQuestion(c.Context(), c.Params("id"), domain.QuestionKind(req.Kind))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateQuestion handles PATCH /api/quizzes/:id/questions/:questionId
func (h *EditorHandler) UpdateQuestion(c *fiber.Ctx) error {
	var req dto.UpdateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", "json")}
	}

	resp, err := h.editor.UpdateQuestion(c.Context(), c.Params("id"), c.Params("questionId"), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// RemoveQuestion handles DELETE /api/quizzes/:id/questions/:questionId
func (h *EditorHandler) RemoveQuestion(c *fiber.Ctx) error {
	resp, err := h.editor.RemoveQuestion(c.Context(), c.Params("id"), c.Params("questionId"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ReorderQuestion handles POST /api/quizzes/:id/questions/reorder
func (h *EditorHandler) ReorderQuestion(c *fiber.Ctx) error {
	var req dto.ReorderQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", "json")}
	}

	resp, err := h.editor.ReorderQuestion(c.Context(), c.Params("id"), req.FromIndex, req.ToIndex)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// AddOption handles POST /api/quizzes/:id/questions/:questionId/options
func (h *EditorHandler) AddOption(c *fiber.Ctx) error {
	resp, err := h.editor.AddOption(c.Context(), c.Params("id"), c.Params("questionId"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// RemoveOption handles DELETE /api/quizzes/:id/questions/:questionId/options/:optionId
func (h *EditorHandler) RemoveOption(c *fiber.Ctx) error {
	resp, err := h.editor.RemoveOption(c.Context(), c.Params("id"), c.Params("questionId"), c.Params("optionId"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SetOptionText handles PATCH /api/quizzes/:id/questions/:questionId/options/:optionId
func (h *EditorHandler) SetOptionText(c *fiber.Ctx) error {
	var req dto.UpdateOptionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", "json")}
	}

	resp, err := h.editor.SetOptionText(c.Context(), c.Params("id"), c.Params("questionId"), c.Params("optionId"), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SetCorrectOption handles POST /api/quizzes/:id/questions/:questionId/options/:optionId/correct
func (h *EditorHandler) SetCorrectOption(c *fiber.Ctx) error {
	resp, err := h.editor.SetCorrectOption(c.Context(), c.Params("id"), c.Params("questionId"), c.Params("optionId"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// IssueShareLink handles POST /api/quizzes/:id/share
func (h *EditorHandler) IssueShareLink(c *fiber.Ctx) error {
	quizID := c.Params("id")
	token, err := h.share.Issue(c.Context(), quizID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ShareLinkResponse{QuizID: quizID, Token: token})
}
