package handlers

import (
	"possystem/internal/config"
	"possystem/internal/pos"
	"possystem/internal/repos"
	"possystem/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Terminals       *services.TerminalService
	AuthHandler     *AuthHandler
	TerminalHandler *TerminalHandler
	Health          *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	userRepo := repos.NewUserRepo(db)
	prodRepo := repos.NewProductRepo(db)
	txRepo := repos.NewTransactionRepo(db)

	authSvc := &services.AuthService{Users: userRepo}
	terms := services.NewTerminalService(authSvc, prodRepo, txRepo, pos.Options{
		Currency:     cfg.Currency,
		StoreName:    cfg.StoreName,
		StoreAddress: cfg.StoreAddress,
		Footer:       cfg.ReceiptFooter,
	})

	return &Deps{
		Terminals:       terms,
		AuthHandler:     &AuthHandler{Terminals: terms, Cfg: cfg},
		TerminalHandler: &TerminalHandler{Terminals: terms},
		Health:          &AdminHandler{DB: db},
	}
}

// Mount registers the cashier routes.
func (d *Deps) Mount(app *fiber.App) {
	app.Get("/login", d.AuthHandler.LoginForm)
	app.Post("/login", d.AuthHandler.Login)
	app.Get("/healthz", d.Health.Health)

	th := d.TerminalHandler
	req := RequireTerminal(d.Terminals)
	app.Get("/", req, th.View)
	app.Post("/logout", req, d.AuthHandler.Logout)
	app.Post("/scan", req, th.Scan)
	app.Post("/removal", req, th.ToggleRemoval)
	app.Post("/clear", req, th.Clear)
	app.Post("/pay", req, th.Pay)
	app.Post("/back", req, th.Back)
	app.Post("/keypad/digit", req, th.Digit)
	app.Post("/keypad/erase", req, th.Erase)
	app.Post("/keypad/exact", req, th.Exact)
	app.Post("/keypad/ok", req, th.Confirm)
	app.Post("/new", req, th.NewTransaction)
	app.Post("/key", req, th.Key)
	app.Get("/receipt", req, th.Receipt)
}
