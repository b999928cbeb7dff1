package handlers

import (
	"errors"
	"time"

	"possystem/internal/config"
	"possystem/internal/log"
	"possystem/internal/pos"
	"possystem/internal/services"
	"possystem/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Terminals *services.TerminalService
	Cfg       config.Config
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

func (h *AuthHandler) loginPage(c *fiber.Ctx, status int, msg string) error {
	return render(c.Status(status), "login", fiber.Map{
		"Err":   msg,
		"Title": h.Cfg.LoginInstanceTitle,
		"Icon":  h.Cfg.LoginInstanceIcon,
	})
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return h.loginPage(c, fiber.StatusOK, "")
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	username := c.FormValue("username")
	pass := c.FormValue("password")
	if username != "" {
		trimmed, ok := validate.Username(username)
		if !ok {
			log.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
			return h.loginPage(c, fiber.StatusUnauthorized, "No username found!")
		}
		username = trimmed
	}

	u, err := h.Terminals.Login(sid, username, pass)
	switch {
	case errors.Is(err, services.ErrEmptyField):
		log.Security(c, "auth.login.fail", map[string]any{"username": username, "reason": "empty_field"})
		return h.loginPage(c, fiber.StatusUnauthorized, "Fields cannot be empty")
	case errors.Is(err, services.ErrUserNotFound):
		log.Security(c, "auth.login.fail", map[string]any{"username": username, "reason": "user_not_found"})
		return h.loginPage(c, fiber.StatusUnauthorized, "No username found!")
	case errors.Is(err, services.ErrWrongPassword):
		log.Security(c, "auth.login.fail", map[string]any{"username": username, "reason": "wrong_password"})
		return h.loginPage(c, fiber.StatusUnauthorized, "Password is incorrect")
	case err != nil:
		return err
	}

	log.Audit(c, "auth.login.success", map[string]any{"username": u.Username})
	return c.Redirect("/")
}

// Logout asks for confirmation first, as the cashier window does.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	switch c.FormValue("confirm") {
	case "yes":
	case "no":
		return c.Redirect("/")
	default:
		return renderTerminal(c, h.Terminals, sid, fiber.StatusOK, fiber.Map{
			"Prompt":       pos.PromptLogout,
			"PromptAction": "/logout",
		})
	}

	h.Terminals.Logout(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", nil)
	return c.Redirect("/login")
}
