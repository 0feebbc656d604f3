package middleware

import (
	"quizforge/internal/domain"

	"github.com/gofiber/fiber/v2"
)

const (
	// TakerIDHeader optionally names the taker starting an attempt.
	TakerIDHeader = "X-Taker-ID"
	// TakerIDKey is the fiber locals key the identity is stored under.
	TakerIDKey = "takerID"
)

// TakerIdentity extracts the optional taker identity from the request
// header. Assessment delivery is open to anonymous takers; an absent header
// simply marks the attempt as anonymous.
func TakerIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		takerID := c.Get(TakerIDHeader)
		if takerID == "" {
			takerID = domain.AnonymousTaker
		}
		c.Locals(TakerIDKey, takerID)
		return c.Next()
	}
}

// TakerID reads the identity placed by TakerIdentity, defaulting to
// anonymous when the middleware did not run.
func TakerID(c *fiber.Ctx) string {
	if v, ok := c.Locals(TakerIDKey).(string); ok && v != "" {
		return v
	}
	return domain.AnonymousTaker
}
