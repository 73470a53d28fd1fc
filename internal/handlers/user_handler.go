package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"campus-backend/dto"
	"campus-backend/internal/mailer"
	"campus-backend/internal/repository"
	"campus-backend/internal/storage"
	"campus-backend/model"
)

type UserHandler struct {
	Repo   repository.UserStore
	Images *storage.Saver
	Mail   mailer.Mailer
}

// GET /api/users
func (h *UserHandler) List(c *fiber.Ctx) error {
	ctx, cancel := dbCtx()
	defer cancel()

	users, err := h.Repo.List(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.JSON(users)
}

// GET /api/users/:uid
func (h *UserHandler) Get(c *fiber.Ctx) error {
	ctx, cancel := dbCtx()
	defer cancel()

	user, err := h.Repo.Get(ctx, c.Params("uid"))
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "User not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.JSON(user)
}

// POST /api/users
//
// Called after the identity provider has authenticated the user, so an
// existing uid is success, not a conflict. New accounts start unverified
// with a fresh token, and the verification mail goes out best-effort.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var body dto.CreateUserDTO
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
	}
	if body.UID == "" || body.Name == "" || body.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "uid, name, and email are required"})
	}

	role := body.Role
	if role == "" {
		role = model.DefaultRole
	}

	user := &model.User{
		UID:               body.UID,
		Name:              body.Name,
		Email:             body.Email,
		Role:              role,
		Image:             body.Image,
		IsVerified:        false,
		VerificationToken: uuid.NewString(),
	}

	ctx, cancel := dbCtx()
	defer cancel()

	created, err := h.Repo.Create(ctx, user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	if !created {
		return c.JSON(dto.MessageResponse{Message: "User already exists"})
	}

	if err := h.Mail.SendVerification(user.Email, user.VerificationToken); err != nil {
		// The account exists either way; the user can ask for the mail again.
		log.Printf("send verification to %s: %v", user.Email, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "User saved successfully"})
}

// PUT /api/users/:uid (multipart: name, role, optional image)
func (h *UserHandler) Update(c *fiber.Ctx) error {
	uid := c.Params("uid")

	var name, role, image *string
	if v := c.FormValue("name"); v != "" {
		name = &v
	}
	if v := c.FormValue("role"); v != "" {
		role = &v
	}
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		url, _, err := h.Images.Save(fh)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
		}
		image = &url
	}

	ctx, cancel := dbCtx()
	defer cancel()

	err := h.Repo.Update(ctx, uid, name, role, image)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "User not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "User updated successfully"})
}

// GET /api/users/verify-email?token=
func (h *UserHandler) VerifyEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid or expired verification link.")
	}

	ctx, cancel := dbCtx()
	defer cancel()

	err := h.Repo.ConsumeVerificationToken(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid or expired verification link.")
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong.")
	}
	return c.SendString("Email successfully verified!")
}
