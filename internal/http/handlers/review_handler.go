package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jobive/backend/internal/http/dto"
	"github.com/jobive/backend/internal/middleware"
	"github.com/jobive/backend/internal/services"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	reviews *services.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(reviews *services.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, log: log}
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateReviewRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid job id"})
	}

	review, err := h.reviews.Create(c.Context(), middleware.GetUserID(c), jobID, req.Rating, req.Comment)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "review created", review)
}

func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid review id"})
	}
	if err := h.reviews.Delete(c.Context(), id, middleware.GetUserID(c)); err != nil {
		return fail(c, err)
	}
	return ok(c, "review deleted", nil)
}
