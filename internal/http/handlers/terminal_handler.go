package handlers

import (
	"errors"

	applog "possystem/internal/log"
	"possystem/internal/pos"
	"possystem/internal/services"
	"possystem/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// TerminalHandler turns button presses and key strokes into terminal
// operations. Every handler does one operation, then shows the new state.
type TerminalHandler struct {
	Terminals *services.TerminalService
}

// keypad layout, top row first; erase, 0 and OK make the bottom row
var keypadDigits = []int{7, 8, 9, 4, 5, 6, 1, 2, 3}

func renderTerminal(c *fiber.Ctx, terms *services.TerminalService, sid string, status int, extra fiber.Map) error {
	var v pos.View
	err := terms.Do(sid, func(t *pos.Terminal) error {
		v = t.View()
		return nil
	})
	if errors.Is(err, services.ErrNoTerminal) {
		return c.Redirect("/login")
	}
	data := fiber.Map{"View": v, "Digits": keypadDigits}
	for k, val := range extra {
		data[k] = val
	}
	return render(c.Status(status), "terminal", data)
}

func (h *TerminalHandler) View(c *fiber.Ctx) error {
	return renderTerminal(c, h.Terminals, c.Cookies("sid"), fiber.StatusOK, nil)
}

// apply runs op on the session's terminal and maps the outcome to a page.
func (h *TerminalHandler) apply(c *fiber.Ctx, action string, op func(t *pos.Terminal) error) error {
	sid := c.Cookies("sid")
	var (
		before, after pos.Panel
		done          *pos.Completion
		cashier       string
		rows          int
	)
	err := h.Terminals.Do(sid, func(t *pos.Terminal) error {
		before = t.Panel()
		opErr := op(t)
		after = t.Panel()
		if before == pos.PanelPaymentKeypad && after == pos.PanelComplete {
			done = t.View().Completion
			cashier = t.Username
			rows = t.Cart().Len()
		}
		return opErr
	})

	if done != nil {
		fields := map[string]any{
			"transaction_id": done.ReceiptNo,
			"total":          done.Total,
			"paid":           done.Paid,
			"cashier":        cashier,
			"lines":          rows,
		}
		if done.PersistErr != nil {
			// the sale stands on screen; only the operator sees this
			applog.Error(c, "transaction.persist.fail", done.PersistErr, fields)
		} else {
			applog.Audit(c, "transaction.complete", fields)
		}
		return c.Redirect("/receipt")
	}

	switch {
	case err == nil:
		return c.Redirect("/")
	case errors.Is(err, services.ErrNoTerminal):
		return c.Redirect("/login")
	case errors.Is(err, pos.ErrInsufficientPayment):
		applog.Info(c, "payment.insufficient", nil)
		return renderTerminal(c, h.Terminals, sid, fiber.StatusUnprocessableEntity, fiber.Map{
			"Warning": "Payment insufficient",
		})
	case errors.Is(err, pos.ErrNotFound):
		applog.Info(c, "cart.scan.miss", nil)
	case errors.Is(err, pos.ErrNotInCart):
		applog.Info(c, "cart.remove.miss", nil)
	case errors.Is(err, pos.ErrEmptyCart), errors.Is(err, pos.ErrWrongPanel):
		// nothing to do: stale page or an empty cart
	default:
		applog.Error(c, action+".fail", err, nil)
	}
	return c.Redirect("/")
}

// POST /scan
func (h *TerminalHandler) Scan(c *fiber.Ctx) error {
	code := c.FormValue("ean13")
	return h.apply(c, "cart.scan", func(t *pos.Terminal) error { return t.Scan(code) })
}

// POST /removal
func (h *TerminalHandler) ToggleRemoval(c *fiber.Ctx) error {
	return h.apply(c, "cart.removal", func(t *pos.Terminal) error {
		_, err := t.ToggleRemoval()
		return err
	})
}

// POST /clear asks for confirmation unless confirm=yes is posted.
func (h *TerminalHandler) Clear(c *fiber.Ctx) error {
	answer := c.FormValue("confirm")
	if answer == "" {
		return renderTerminal(c, h.Terminals, c.Cookies("sid"), fiber.StatusOK, fiber.Map{
			"Prompt":       pos.PromptClearCart,
			"PromptAction": "/clear",
		})
	}
	return h.apply(c, "cart.clear", func(t *pos.Terminal) error {
		_, err := t.Clear(false, func(string) bool { return answer == "yes" })
		return err
	})
}

// POST /pay
func (h *TerminalHandler) Pay(c *fiber.Ctx) error {
	return h.apply(c, "payment.open", func(t *pos.Terminal) error { return t.OpenPayment() })
}

// POST /back
func (h *TerminalHandler) Back(c *fiber.Ctx) error {
	return h.apply(c, "payment.back", func(t *pos.Terminal) error { return t.Back() })
}

// POST /keypad/digit
func (h *TerminalHandler) Digit(c *fiber.Ctx) error {
	d, ok := validate.Digit(c.FormValue("d"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "d"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid digit")
	}
	return h.apply(c, "payment.digit", func(t *pos.Terminal) error { return t.EnterDigit(d) })
}

// POST /keypad/erase
func (h *TerminalHandler) Erase(c *fiber.Ctx) error {
	return h.apply(c, "payment.erase", func(t *pos.Terminal) error { return t.EraseDigit() })
}

// POST /keypad/exact
func (h *TerminalHandler) Exact(c *fiber.Ctx) error {
	return h.apply(c, "payment.exact", func(t *pos.Terminal) error {
		_, err := t.ExactAmount()
		return err
	})
}

// POST /keypad/ok
func (h *TerminalHandler) Confirm(c *fiber.Ctx) error {
	return h.apply(c, "payment.confirm", func(t *pos.Terminal) error {
		_, err := t.ConfirmPayment()
		return err
	})
}

// POST /new
func (h *TerminalHandler) NewTransaction(c *fiber.Ctx) error {
	return h.apply(c, "transaction.new", func(t *pos.Terminal) error { return t.NewTransaction() })
}

// POST /key
func (h *TerminalHandler) Key(c *fiber.Ctx) error {
	key, ok := validate.Key(c.FormValue("key"))
	if !ok {
		return c.Redirect("/")
	}
	return h.apply(c, "terminal.key", func(t *pos.Terminal) error { return t.HandleKey(key) })
}

// GET /receipt shows the held receipt; this is also "Reprint Receipt".
func (h *TerminalHandler) Receipt(c *fiber.Ctx) error {
	var r pos.Receipt
	err := h.Terminals.Do(c.Cookies("sid"), func(t *pos.Terminal) error {
		var err error
		r, err = t.Receipt()
		return err
	})
	if err != nil {
		return c.Redirect("/")
	}
	return render(c, "receipt", fiber.Map{"Receipt": r})
}
