package handlers

import (
	"possystem/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireTerminal lets a request through only when its session has an open
// terminal; otherwise it goes back to the login page.
func RequireTerminal(terms *services.TerminalService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		username, fullName, ok := terms.Cashier(sid)
		if !ok {
			return c.Redirect("/login")
		}
		c.Locals("username", username)
		c.Locals("full_name", fullName)
		return c.Next()
	}
}
