package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	applog "possystem/internal/log"
)

// AdminHandler serves the back-office skeleton pages. They carry no
// business logic yet.
type AdminHandler struct {
	DB  *sqlx.DB
	Now func() time.Time
}

// GET /
func (h *AdminHandler) Index(c *fiber.Ctx) error {
	return render(c, "admin_index", fiber.Map{})
}

// GET /transaction
func (h *AdminHandler) Transaction(c *fiber.Ctx) error {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	t := now()
	return render(c, "admin_transaction", fiber.Map{
		"Date": fmt.Sprintf("%02d-%02d-%d", t.Day(), int(t.Month()), t.Year()),
	})
}

// GET /product_management
func (h *AdminHandler) ProductManagement(c *fiber.Ctx) error {
	return render(c, "admin_product_management", fiber.Map{})
}

// GET /healthz
func (h *AdminHandler) Health(c *fiber.Ctx) error {
	if err := h.DB.Ping(); err != nil {
		applog.Error(c, "db.ping.fail", err, nil)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"ok": false})
	}
	return c.JSON(fiber.Map{"ok": true})
}

// MountAdmin registers the admin routes.
func MountAdmin(app *fiber.App, h *AdminHandler) {
	app.Get("/", h.Index)
	app.Get("/transaction", h.Transaction)
	app.Get("/product_management", h.ProductManagement)
	app.Get("/healthz", h.Health)
}
