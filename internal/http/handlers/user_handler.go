package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jobive/backend/internal/http/dto"
	"github.com/jobive/backend/internal/middleware"
	"github.com/jobive/backend/internal/models"
	"github.com/jobive/backend/internal/services"
	"go.uber.org/zap"
)

type UserHandler struct {
	users   *services.UserService
	reviews *services.ReviewService
	log     *zap.Logger
}

func NewUserHandler(users *services.UserService, reviews *services.ReviewService, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, reviews: reviews, log: log}
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid user id"})
	}
	user, err := h.users.Get(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", user)
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.users.UpdateProfile(c.Context(), middleware.GetUserID(c), &models.User{
		Name:     req.Name,
		Skills:   req.Skills,
		Company:  req.Company,
		Phone:    req.Phone,
		Location: req.Location,
		Avatar:   req.Avatar,
	})
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "profile updated", user)
}

func (h *UserHandler) ListReviews(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid user id"})
	}
	reviews, err := h.reviews.ListByFreelancer(c.Context(), id)
	if err != nil {
		h.log.Error("list reviews failed", zap.Error(err))
		return fail(c, err)
	}
	return ok(c, "", reviews)
}
