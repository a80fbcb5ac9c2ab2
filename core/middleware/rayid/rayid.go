package rayid

import (
	"intake-reconciler/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header carries the ray ID on requests and responses.
const Header = "X-Ray-ID"

// New returns a middleware that reuses an incoming ray ID or generates one,
// stores it in the request locals and echoes it in the response header.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Locals(logger.RayIDKey, rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
