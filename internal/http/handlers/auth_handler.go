package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jobive/backend/internal/http/dto"
	"github.com/jobive/backend/internal/middleware"
	"github.com/jobive/backend/internal/services"
	"go.uber.org/zap"
)

type AuthHandler struct {
	users *services.UserService
	log   *zap.Logger
}

func NewAuthHandler(users *services.UserService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, log: log}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, token, err := h.users.Register(c.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Skills:   req.Skills,
		Company:  req.Company,
		Phone:    req.Phone,
		Location: req.Location,
	})
	if err != nil {
		return fail(c, err)
	}

	h.setTokenCookie(c, token)
	return created(c, "registered", dto.AuthResponse{Token: token, User: user})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, token, err := h.users.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		// 401 for bad credentials, not the generic 403 mapping.
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Response{Success: false, Message: "invalid credentials"})
	}

	h.setTokenCookie(c, token)
	return ok(c, "logged in", dto.AuthResponse{Token: token, User: user})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return ok(c, "logged out", nil)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.users.Get(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", user)
}

func (h *AuthHandler) setTokenCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(h.users.TokenTTL()),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}
