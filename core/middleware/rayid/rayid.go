package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// HeaderName is the header echoing the request id.
	HeaderName = "X-Ray-ID"
	// LocalsKey is the fiber.Ctx locals key holding the request id.
	LocalsKey = "ray_id"
)

// New returns a middleware assigning every request a RayID. An incoming
// X-Ray-ID header is reused so ids survive proxies.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalsKey, id)
		c.Set(HeaderName, id)
		return c.Next()
	}
}
