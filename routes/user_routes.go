package routes

import (
	"github.com/craftfolio/api/handlers"
	"github.com/craftfolio/api/middleware"
	"github.com/gofiber/fiber/v2"
)

func UserRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	users := api.Group("/users")
	users.Get("/:username", middleware.OptionalAuth(), handlers.GetUserProfile)
	users.Get("/:username/followers", handlers.ListFollowers)
	users.Get("/:username/following", handlers.ListFollowing)

	users.Post("/:username/follow", middleware.Protected(), handlers.FollowUser)
	users.Delete("/:username/follow", middleware.Protected(), handlers.UnfollowUser)
	users.Post("/:username/block", middleware.Protected(), handlers.BlockUser)
	users.Delete("/:username/block", middleware.Protected(), handlers.UnblockUser)
}
