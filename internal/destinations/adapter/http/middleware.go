package http

import (
	"context"

	"love-journey/internal/shared/contextkeys"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with an ID, honoring one supplied by the
// reverse proxy, and makes it available to context-aware loggers.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)

		ctx := context.WithValue(c.UserContext(), contextkeys.RequestIDKey, id)
		c.SetUserContext(ctx)
		return c.Next()
	}
}
