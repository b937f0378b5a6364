package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jobive/backend/internal/gateway"
	"github.com/jobive/backend/internal/http/dto"
	"github.com/jobive/backend/internal/services"
)

var validate = validator.New()

// parseBody decodes and validates a request body. A non-nil return already
// wrote the 400 response.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "invalid request body"})
	}
	if err := validate.Struct(out); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: err.Error()})
	}
	return nil
}

func ok(c *fiber.Ctx, message string, data any) error {
	return c.JSON(dto.Response{Success: true, Message: message, Data: data})
}

func created(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(dto.Response{Success: true, Message: message, Data: data})
}

// fail maps service errors to status codes. Gateway errors keep the
// gateway's own status code so clients see the upstream verdict.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal error"

	var gwErr *gateway.Error
	switch {
	case errors.As(err, &gwErr):
		status = gwErr.StatusCode
		message = gwErr.Message
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
		message = err.Error()
	case errors.Is(err, services.ErrUnauthorized):
		status = fiber.StatusForbidden
		message = err.Error()
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrAlreadyEnrolled):
		status = fiber.StatusBadRequest
		message = err.Error()
	case errors.Is(err, services.ErrAlreadyExists):
		status = fiber.StatusConflict
		message = err.Error()
	}

	return c.Status(status).JSON(dto.Response{Success: false, Message: message})
}
