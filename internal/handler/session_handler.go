package handler

import (
	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/middleware"
	"quizforge/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler handles assessment session HTTP requests.
type SessionHandler struct {
	sessions service.SessionService
}

// NewSessionHandler creates a new SessionHandler instance.
func NewSessionHandler(sessions service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// StartSession handles POST /api/sessions
func (h *SessionHandler) StartSession(c *fiber.Ctx) error {
	var req dto.StartSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", "json")}
	}
	if req.QuizID == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("quiz_id")}
	}

	resp, err := h.sessions.Start(c.Context(), req.QuizID, middleware.TakerID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetSession handles GET /api/sessions/:id
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	resp, err := h.sessions.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Answer handles POST /api/sessions/:id/answers
func (h *SessionHandler) Answer(c *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", "json")}
	}
	if req.QuestionID == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("question_id")}
	}

	resp, err := h.sessions.Answer(c.Context(), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Advance handles POST /api/sessions/:id/advance
func (h *SessionHandler) Advance(c *fiber.Ctx) error {
	resp, err := h.sessions.Advance(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Retreat handles POST /api/sessions/:id/retreat
func (h *SessionHandler) Retreat(c *fiber.Ctx) error {
	resp, err := h.sessions.Retreat(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Submit handles POST /api/sessions/:id/submit
func (h *SessionHandler) Submit(c *fiber.Ctx) error {
	resp, err := h.sessions.Submit(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Abandon handles DELETE /api/sessions/:id
func (h *SessionHandler) Abandon(c *fiber.Ctx) error {
	if err := h.sessions.Abandon(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
