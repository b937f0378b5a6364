package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jobive/backend/internal/http/dto"
	"github.com/jobive/backend/internal/middleware"
	"github.com/jobive/backend/internal/models"
	"github.com/jobive/backend/internal/repositories"
	"github.com/jobive/backend/internal/services"
	"go.uber.org/zap"
)

type TrainingHandler struct {
	trainings *services.TrainingService
	log       *zap.Logger
}

func NewTrainingHandler(trainings *services.TrainingService, log *zap.Logger) *TrainingHandler {
	return &TrainingHandler{trainings: trainings, log: log}
}

func (h *TrainingHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTrainingRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	training := &models.Training{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Duration:    req.Duration,
		Level:       req.Level,
		Chapters:    req.Chapters,
		Status:      req.Status,
	}
	if err := h.trainings.Create(c.Context(), middleware.GetUserID(c), training); err != nil {
		return fail(c, err)
	}
	return created(c, "training created", training)
}

func (h *TrainingHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid training id"})
	}
	training, err := h.trainings.Get(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", training)
}

func (h *TrainingHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	maxPrice, _ := strconv.ParseInt(c.Query("max_price", "0"), 10, 64)

	trainings, err := h.trainings.List(c.Context(), repositories.ListFilter{
		Category: c.Query("category"),
		Level:    c.Query("level"),
		Status:   c.Query("status", models.TrainingStatusPublished),
		MaxPrice: maxPrice,
		Sort:     c.Query("sort"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		h.log.Error("list trainings failed", zap.Error(err))
		return fail(c, err)
	}
	return ok(c, "", trainings)
}

func (h *TrainingHandler) ListByInstructor(c *fiber.Ctx) error {
	instructorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid user id"})
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	trainings, err := h.trainings.ListByInstructor(c.Context(), instructorID, limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", trainings)
}

func (h *TrainingHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid training id"})
	}
	var req dto.CreateTrainingRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	training, err := h.trainings.Update(c.Context(), id, middleware.GetUserID(c), &models.Training{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Duration:    req.Duration,
		Level:       req.Level,
		Chapters:    req.Chapters,
		Status:      req.Status,
	})
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "training updated", training)
}

func (h *TrainingHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid training id"})
	}
	if err := h.trainings.Delete(c.Context(), id, middleware.GetUserID(c), middleware.GetRole(c)); err != nil {
		return fail(c, err)
	}
	return ok(c, "training deleted", nil)
}

// Purchase starts a paid enrollment through the payment gateway. Free
// trainings enroll immediately and return no payment.
func (h *TrainingHandler) Purchase(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid training id"})
	}
	var req dto.PurchaseTrainingRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	payment, err := h.trainings.Purchase(c.Context(), id, middleware.GetUserID(c), req.Phone, req.Medium, req.Name, req.Email)
	if err != nil {
		return fail(c, err)
	}
	if payment == nil {
		return ok(c, "enrolled", nil)
	}
	return created(c, "payment initiated, enrollment completes on settlement", payment)
}

func (h *TrainingHandler) CompleteChapter(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid training id"})
	}
	chapterID := c.Params("chapterId")
	if chapterID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "chapter id required"})
	}

	completed, err := h.trainings.CompleteChapter(c.Context(), id, middleware.GetUserID(c), chapterID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "chapter completed", fiber.Map{"completed_chapters": completed})
}

func (h *TrainingHandler) Rate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid training id"})
	}
	var req dto.RateTrainingRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	rating, err := h.trainings.Rate(c.Context(), id, middleware.GetUserID(c), req.Rating, req.Review)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "rating saved", rating)
}

func (h *TrainingHandler) ListEnrolled(c *fiber.Ctx) error {
	trainings, err := h.trainings.ListEnrolled(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", trainings)
}
