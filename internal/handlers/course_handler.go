package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"campus-backend/dto"
	"campus-backend/internal/repository"
	"campus-backend/model"
)

type CourseHandler struct {
	Repo repository.CourseStore
}

// GET /api/courses
func (h *CourseHandler) List(c *fiber.Ctx) error {
	ctx, cancel := dbCtx()
	defer cancel()

	courses, err := h.Repo.List(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.JSON(courses)
}

// GET /api/courses/:id
func (h *CourseHandler) Get(c *fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		// A malformed id can never name a stored course.
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Course not found"})
	}

	ctx, cancel := dbCtx()
	defer cancel()

	course, err := h.Repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Course not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.JSON(course)
}

// POST /api/courses
func (h *CourseHandler) Create(c *fiber.Ctx) error {
	var body dto.CreateCourseDTO
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
	}

	course := &model.Course{
		Title:       body.Title,
		Description: body.Description,
		Instructor:  body.Instructor,
		Credits:     body.Credits,
	}

	ctx, cancel := dbCtx()
	defer cancel()

	if err := h.Repo.Create(ctx, course); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(course)
}

// PUT /api/courses/:id
func (h *CourseHandler) Update(c *fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Course not found"})
	}

	var body dto.UpdateCourseDTO
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
	}

	ctx, cancel := dbCtx()
	defer cancel()

	err = h.Repo.Update(ctx, id, body)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Course not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "Course updated successfully"})
}

// DELETE /api/courses/:id
func (h *CourseHandler) Delete(c *fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Course not found"})
	}

	ctx, cancel := dbCtx()
	defer cancel()

	err = h.Repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Course not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "Course deleted successfully"})
}
