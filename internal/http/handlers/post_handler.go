package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jobive/backend/internal/http/dto"
	"github.com/jobive/backend/internal/middleware"
	"github.com/jobive/backend/internal/models"
	"github.com/jobive/backend/internal/services"
	"go.uber.org/zap"
)

type PostHandler struct {
	posts *services.PostService
	log   *zap.Logger
}

func NewPostHandler(posts *services.PostService, log *zap.Logger) *PostHandler {
	return &PostHandler{posts: posts, log: log}
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePostRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	post := &models.Post{
		Content:   req.Content,
		Tags:      req.Tags,
		ImageURLs: req.ImageURLs,
	}
	if err := h.posts.Create(c.Context(), middleware.GetUserID(c), post); err != nil {
		return fail(c, err)
	}
	return created(c, "post created", post)
}

func (h *PostHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid post id"})
	}
	post, err := h.posts.Get(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", post)
}

func (h *PostHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	posts, err := h.posts.List(c.Context(), limit, offset)
	if err != nil {
		h.log.Error("list posts failed", zap.Error(err))
		return fail(c, err)
	}
	return ok(c, "", posts)
}

func (h *PostHandler) ListByAuthor(c *fiber.Ctx) error {
	authorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid user id"})
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	posts, err := h.posts.ListByAuthor(c.Context(), authorID, limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", posts)
}

func (h *PostHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid post id"})
	}
	var req dto.CreatePostRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	post, err := h.posts.Update(c.Context(), id, middleware.GetUserID(c), &models.Post{
		Content:   req.Content,
		Tags:      req.Tags,
		ImageURLs: req.ImageURLs,
	})
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "post updated", post)
}

func (h *PostHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid post id"})
	}
	if err := h.posts.Delete(c.Context(), id, middleware.GetUserID(c), middleware.GetRole(c)); err != nil {
		return fail(c, err)
	}
	return ok(c, "post deleted", nil)
}

func (h *PostHandler) ToggleLike(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid post id"})
	}
	liked, err := h.posts.ToggleLike(c.Context(), id, middleware.GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", fiber.Map{"liked": liked})
}

func (h *PostHandler) AddComment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid post id"})
	}
	var req dto.CommentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	comment, err := h.posts.AddComment(c.Context(), id, middleware.GetUserID(c), req.Text)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "comment added", comment)
}

func (h *PostHandler) DeleteComment(c *fiber.Ctx) error {
	commentID, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid comment id"})
	}
	if err := h.posts.DeleteComment(c.Context(), commentID, middleware.GetUserID(c), middleware.GetRole(c)); err != nil {
		return fail(c, err)
	}
	return ok(c, "comment deleted", nil)
}

func (h *PostHandler) ListComments(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid post id"})
	}
	comments, err := h.posts.ListComments(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", comments)
}
