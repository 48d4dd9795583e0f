package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// InternalOnly guards endpoints meant for trusted scheduling infrastructure.
// These bypass per-user authorization, so they require the shared internal
// key instead of a staff token.
func InternalOnly(internalKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if internalKey == "" {
			return Forbidden("Internal endpoints are disabled")
		}

		provided := c.Get("X-Internal-Key")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(internalKey)) != 1 {
			return Forbidden("Invalid internal key")
		}

		return c.Next()
	}
}
