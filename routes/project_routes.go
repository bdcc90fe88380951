package routes

import (
	"github.com/craftfolio/api/handlers"
	"github.com/craftfolio/api/middleware"
	"github.com/gofiber/fiber/v2"
)

func ProjectRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/categories", handlers.ListCategories)

	projects := api.Group("/projects")
	projects.Get("", handlers.ListProjects)
	projects.Get("/:projectId", middleware.OptionalAuth(), handlers.GetProject)
	projects.Get("/:projectId/reviews", handlers.ListProjectReviews)

	projects.Post("", middleware.Protected(), handlers.CreateProject)
	projects.Put("/:projectId", middleware.Protected(), handlers.UpdateProject)
	projects.Delete("/:projectId", middleware.Protected(), handlers.DeleteProject)
	projects.Post("/:projectId/like", middleware.Protected(), handlers.ToggleProjectLike)
	projects.Post("/:projectId/reviews", middleware.Protected(), handlers.SubmitReview)

	api.Delete("/reviews/:reviewId", middleware.Protected(), handlers.DeleteReview)
}
