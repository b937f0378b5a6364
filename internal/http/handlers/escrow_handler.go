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

type EscrowHandler struct {
	escrows *services.EscrowService
	log     *zap.Logger
}

func NewEscrowHandler(escrows *services.EscrowService, log *zap.Logger) *EscrowHandler {
	return &EscrowHandler{escrows: escrows, log: log}
}

// Deposit opens an escrow for a job and returns the gateway checkout link.
func (h *EscrowHandler) Deposit(c *fiber.Ctx) error {
	var req dto.DepositEscrowRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid job id"})
	}

	escrow, err := h.escrows.Deposit(c.Context(), jobID, middleware.GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, "escrow created", escrow)
}

func (h *EscrowHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("escrowId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid escrow id"})
	}
	escrow, err := h.escrows.Get(c.Context(), id, middleware.GetUserID(c), middleware.GetRole(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", escrow)
}

func (h *EscrowHandler) Confirm(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("escrowId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid escrow id"})
	}

	escrow, err := h.escrows.ConfirmCompletion(c.Context(), id, middleware.GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	message := "completion confirmed, awaiting other party"
	if escrow.Status == models.EscrowStatusCompleted {
		message = "both parties confirmed, payment released"
	}
	return ok(c, message, escrow)
}

func (h *EscrowHandler) Dispute(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("escrowId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid escrow id"})
	}
	var req dto.DisputeEscrowRequest
	if err := c.BodyParser(&req); err != nil {
		req = dto.DisputeEscrowRequest{}
	}

	escrow, err := h.escrows.Dispute(c.Context(), id, middleware.GetUserID(c), req.Reason)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "dispute opened", escrow)
}
