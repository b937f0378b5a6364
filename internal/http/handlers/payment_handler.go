package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jobive/backend/internal/http/dto"
	"github.com/jobive/backend/internal/middleware"
	"github.com/jobive/backend/internal/services"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	payments *services.PaymentService
	log      *zap.Logger
}

func NewPaymentHandler(payments *services.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, log: log}
}

func (h *PaymentHandler) Initiate(c *fiber.Ctx) error {
	var req dto.InitiatePaymentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	payment, err := h.payments.Initiate(c.Context(), middleware.GetUserID(c), services.InitiatePaymentInput{
		Amount:     req.Amount,
		Phone:      req.Phone,
		Medium:     req.Medium,
		Name:       req.Name,
		Email:      req.Email,
		ExternalID: req.ExternalID,
		Message:    req.Message,
	})
	if err != nil {
		return fail(c, err)
	}
	return created(c, "payment initiated", payment)
}

func (h *PaymentHandler) ListMine(c *fiber.Ctx) error {
	payments, err := h.payments.ListMine(c.Context(), middleware.GetUserID(c), c.QueryInt("limit", 50))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", payments)
}

func (h *PaymentHandler) Status(c *fiber.Ctx) error {
	transID := c.Params("transactionId")
	if transID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "transaction id required"})
	}

	payment, err := h.payments.CheckStatus(c.Context(), transID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", payment)
}
