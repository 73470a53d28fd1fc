package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"campus-backend/dto"
	"campus-backend/internal/repository"
	"campus-backend/internal/storage"
	"campus-backend/model"
)

type PostHandler struct {
	Repo  repository.PostStore
	Files *storage.Saver
}

// POST /api/posts (multipart: caption, author, optional file)
func (h *PostHandler) Create(c *fiber.Ctx) error {
	caption := c.FormValue("caption")
	author := c.FormValue("author")
	if caption == "" || author == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Caption and author are required."})
	}

	post := &model.Post{
		Caption: caption,
		Author:  author,
	}

	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		url, mime, err := h.Files.Save(fh)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
		}
		post.FileURL = &url
		post.FileType = &mime
	}

	ctx, cancel := dbCtx()
	defer cancel()

	if err := h.Repo.Create(ctx, post); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GET /api/posts
func (h *PostHandler) List(c *fiber.Ctx) error {
	ctx, cancel := dbCtx()
	defer cancel()

	posts, err := h.Repo.ListNewestFirst(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.JSON(posts)
}

// POST /api/posts/:id/like
func (h *PostHandler) ToggleLike(c *fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid post ID"})
	}

	var body dto.LikeRequestDTO
	if err := c.BodyParser(&body); err != nil || body.UserEmail == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "User email required"})
	}

	ctx, cancel := dbCtx()
	defer cancel()

	liked, err := h.Repo.ToggleLike(ctx, id, body.UserEmail)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Post not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.JSON(dto.LikeResponse{Message: "Like toggled", Liked: liked})
}

// POST /api/posts/:id/comment
func (h *PostHandler) AddComment(c *fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid post ID"})
	}

	var body dto.CommentRequestDTO
	if err := c.BodyParser(&body); err != nil || body.UserEmail == "" || body.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "User and text required"})
	}

	comment := model.Comment{
		User: body.UserEmail,
		Text: body.Text,
		Time: time.Now().UTC(),
	}

	ctx, cancel := dbCtx()
	defer cancel()

	if _, err := h.Repo.AddComment(ctx, id, comment); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "Comment added"})
}
