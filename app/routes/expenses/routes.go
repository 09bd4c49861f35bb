package expenses

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sanpii/sav/app/routes/auth"
	"github.com/sanpii/sav/app/storage"
)

var media *storage.Store

func SetupExpensesRoutes(app *fiber.App, store *storage.Store) {
	media = store

	app.Get("/", auth.Middleware, IndexHandler)

	web := app.Group("/expenses")
	web.Use(auth.Middleware)
	web.Get("/add", AddHandler)
	web.Post("/add", CreateHandler)
	web.Get("/:id/edit", EditHandler)
	web.Post("/:id/edit", SaveHandler)
	web.Get("/:id/delete", DeleteHandler)
	web.Get("/:id/trash", TrashHandler)
	web.Get("/:id/untrash", UntrashHandler)
	// Registered last so the literal routes above take precedence.
	web.Get("/:id/:type", MediaHandler)
}
