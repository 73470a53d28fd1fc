package routes

import (
	"github.com/gofiber/fiber/v2"

	"campus-backend/internal/handlers"
)

func CourseRoutes(app *fiber.App, h *handlers.CourseHandler) {
	g := app.Group("/api/courses")

	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Get("/:id", h.Get)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}
