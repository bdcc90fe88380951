package routes

import (
	"github.com/craftfolio/api/handlers"
	"github.com/craftfolio/api/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func MessagingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/conversations", middleware.Protected(), handlers.GetUserConversations)

	conversation := api.Group("/conversation", middleware.Protected())
	conversation.Get("/:userId", handlers.GetOrCreateConversation)
	conversation.Delete("/:conversationId", handlers.DeleteConversation)
	conversation.Get("/:conversationId/messages", handlers.GetConversationMessages)
	conversation.Post("/:conversationId/messages", handlers.SendMessage)
	conversation.Put("/:conversationId/read", handlers.MarkConversationRead)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws", websocket.New(handlers.ServeWs))
}
