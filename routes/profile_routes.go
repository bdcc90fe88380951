package routes

import (
	"github.com/craftfolio/api/handlers"
	"github.com/craftfolio/api/middleware"
	"github.com/gofiber/fiber/v2"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile/me", middleware.Protected())
	profile.Get("", handlers.GetProfile)
	profile.Put("", handlers.UpdateProfile)
	profile.Put("/message-settings", handlers.UpdateMessageSettings)
}
