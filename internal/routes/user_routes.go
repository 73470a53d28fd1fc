package routes

import (
	"github.com/gofiber/fiber/v2"

	"campus-backend/internal/handlers"
)

func UserRoutes(app *fiber.App, h *handlers.UserHandler) {
	g := app.Group("/api/users")

	g.Get("/", h.List)
	g.Post("/", h.Create)
	// Registered before /:uid so the literal segment wins.
	g.Get("/verify-email", h.VerifyEmail)
	g.Get("/:uid", h.Get)
	g.Put("/:uid", h.Update)
}
