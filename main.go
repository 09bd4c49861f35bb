package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/template/html/v2"
	"github.com/sanpii/sav/app/config"
	"github.com/sanpii/sav/app/database"
	"github.com/sanpii/sav/app/flash"
	"github.com/sanpii/sav/app/routes/auth"
	"github.com/sanpii/sav/app/routes/expenses"
	"github.com/sanpii/sav/app/storage"
)

// customErrorHandler renders HTTP errors with the error templates.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	switch code {
	case 404:
		return c.Status(404).Render("404", fiber.Map{
			"Title":        "Not found",
			"ErrorMessage": err.Error(),
		})
	case 500:
		return c.Status(500).Render("500", fiber.Map{
			"Title":        "Server error",
			"ErrorMessage": "We're experiencing technical difficulties. Please try again later.",
		})
	default:
		return c.Status(code).Render("error", fiber.Map{
			"Title":        "Error",
			"ErrorCode":    code,
			"ErrorMessage": err.Error(),
		})
	}
}

func main() {
	config.Init()
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	flash.Init(config.AppConfig.SecretKey)
	media := storage.New(config.AppConfig.DataDir)

	engine := html.New("./app/templates", ".html")
	engine.Reload(false)

	app := fiber.New(fiber.Config{
		Views:        engine,
		ViewsLayout:  "layouts/main",
		ErrorHandler: customErrorHandler,
	})

	app.Use(logger.New())

	app.Static("/static", "./static")

	auth.SetupAuthRoutes(app)
	expenses.SetupExpensesRoutes(app, media)

	log.Printf("Listening on %s", config.AppConfig.ListenAddr)
	log.Fatal(app.Listen(config.AppConfig.ListenAddr))
}
