package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jobive/backend/internal/http/dto"
	"github.com/jobive/backend/internal/middleware"
	"github.com/jobive/backend/internal/services"
	"go.uber.org/zap"
)

type MessageHandler struct {
	messages *services.MessageService
	log      *zap.Logger
}

func NewMessageHandler(messages *services.MessageService, log *zap.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, log: log}
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid receiver id"})
	}

	msg, err := h.messages.Send(c.Context(), middleware.GetUserID(c), receiverID, req.Content)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "message sent", msg)
}

func (h *MessageHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid message id"})
	}
	if err := h.messages.Delete(c.Context(), id, middleware.GetUserID(c)); err != nil {
		return fail(c, err)
	}
	return ok(c, "message deleted", nil)
}

func (h *MessageHandler) Conversation(c *fiber.Ctx) error {
	otherID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid user id"})
	}
	limit, _ := strconv.Atoi(c.Query("limit", "100"))

	msgs, err := h.messages.Conversation(c.Context(), middleware.GetUserID(c), otherID, limit)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", msgs)
}
