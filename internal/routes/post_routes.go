package routes

import (
	"github.com/gofiber/fiber/v2"

	"campus-backend/internal/handlers"
)

func PostRoutes(app *fiber.App, h *handlers.PostHandler) {
	g := app.Group("/api/posts")

	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Post("/:id/like", h.ToggleLike)
	g.Post("/:id/comment", h.AddComment)
}
