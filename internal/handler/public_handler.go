package handler

import (
	"quizforge/internal/dto"
	"quizforge/internal/middleware"
	"quizforge/internal/service"

	"github.com/gofiber/fiber/v2"
)

// PublicHandler serves anonymous takers coming in through share links. It
// only ever returns the public quiz view with correctness flags stripped.
type PublicHandler struct {
	share    service.ShareService
	sessions service.SessionService
}

// NewPublicHandler creates a new PublicHandler instance.
func NewPublicHandler(share service.ShareService, sessions service.SessionService) *PublicHandler {
	return &PublicHandler{share: share, sessions: sessions}
}

// GetSharedQuiz handles GET /api/public/quizzes/:token
func (h *PublicHandler) GetSharedQuiz(c *fiber.Ctx) error {
	doc, err := h.share.Resolve(c.Context(), c.Params("token"))
	if err != nil {
		return err
	}
	return c.JSON(dto.ToPublicQuizResponse(doc))
}

// StartSharedSession handles POST /api/public/quizzes/:token/sessions
func (h *PublicHandler) StartSharedSession(c *fiber.Ctx) error {
	resp, err := h.sessions.StartFromToken(c.Context(), c.Params("token"), middleware.TakerID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
