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

type JobHandler struct {
	jobs *services.JobService
	log  *zap.Logger
}

func NewJobHandler(jobs *services.JobService, log *zap.Logger) *JobHandler {
	return &JobHandler{jobs: jobs, log: log}
}

func (h *JobHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateJobRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	job := &models.Job{
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Deadline:    req.Deadline,
		Image:       req.Image,
	}
	if err := h.jobs.Create(c.Context(), middleware.GetUserID(c), middleware.GetRole(c), job); err != nil {
		return fail(c, err)
	}
	return created(c, "job created", job)
}

func (h *JobHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid job id"})
	}
	job, err := h.jobs.Get(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", job)
}

func (h *JobHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	jobs, err := h.jobs.List(c.Context(), limit, offset)
	if err != nil {
		h.log.Error("list jobs failed", zap.Error(err))
		return fail(c, err)
	}
	return ok(c, "", jobs)
}

func (h *JobHandler) Apply(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid job id"})
	}
	if err := h.jobs.Apply(c.Context(), id, middleware.GetUserID(c), middleware.GetRole(c)); err != nil {
		return fail(c, err)
	}
	return ok(c, "application submitted", nil)
}

func (h *JobHandler) Assign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid job id"})
	}
	var req dto.AssignJobRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	freelancerID, err := uuid.Parse(req.FreelancerID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid freelancer id"})
	}

	if err := h.jobs.Assign(c.Context(), id, middleware.GetUserID(c), freelancerID); err != nil {
		return fail(c, err)
	}
	return ok(c, "freelancer assigned", nil)
}
