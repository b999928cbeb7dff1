package main

import (
	"flag"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"possystem/internal/config"
	"possystem/internal/http/handlers"
	applog "possystem/internal/log"
	"possystem/internal/repos"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the JSON or YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	defer applog.Sync()

	db, err := repos.OpenDB(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatalf("Unable to connect to database '%s' on host '%s': %v", cfg.DBDatabase, cfg.DBHost, err)
	}
	defer db.Close()

	engine := html.New("./web/templates", ".html")
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppTitle + " admin",
		Views:        engine,
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("AppTitle", cfg.AppTitle)
		return c.Next()
	})
	app.Static("/static", "./web/static")

	handlers.MountAdmin(app, &handlers.AdminHandler{DB: db})

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Printf("[admin] listening on %s", cfg.AdminListenAddr)
	log.Fatal(app.Listen(cfg.AdminListenAddr))
}
