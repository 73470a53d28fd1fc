package routes

import (
	"github.com/gofiber/fiber/v2"

	"campus-backend/internal/handlers"
)

type Deps struct {
	Courses *handlers.CourseHandler
	Posts   *handlers.PostHandler
	Users   *handlers.UserHandler
}

func Register(app *fiber.App, d Deps) {
	CourseRoutes(app, d.Courses)
	PostRoutes(app, d.Posts)
	UserRoutes(app, d.Users)
}
