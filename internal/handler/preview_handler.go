package handler

import (
	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/service"

	"github.com/gofiber/fiber/v2"
)

// PreviewHandler handles author preview HTTP requests.
type PreviewHandler struct {
	previews service.PreviewService
}

// NewPreviewHandler creates a new PreviewHandler instance.
func NewPreviewHandler(previews service.PreviewService) *PreviewHandler {
	return &PreviewHandler{previews: previews}
}

// StartPreview handles POST /api/quizzes/:id/preview
func (h *PreviewHandler) StartPreview(c *fiber.Ctx) error {
	resp, err := h.previews.Start(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetPreview handles GET /api/previews/:id
func (h *PreviewHandler) GetPreview(c *fiber.Ctx) error {
	resp, err := h.previews.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Answer handles POST /api/previews/:id/answers
func (h *PreviewHandler) Answer(c *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", "json")}
	}

	resp, err := h.previews.Answer(c.Context(), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Advance handles POST /api/previews/:id/advance
func (h *PreviewHandler) Advance(c *fiber.Ctx) error {
	resp, err := h.previews.Advance(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Retreat handles POST /api/previews/:id/retreat
func (h *PreviewHandler) Retreat(c *fiber.Ctx) error {
	resp, err := h.previews.Retreat(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// StopPreview handles DELETE /api/previews/:id
func (h *PreviewHandler) StopPreview(c *fiber.Ctx) error {
	if err := h.previews.Stop(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
