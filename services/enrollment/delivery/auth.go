package delivery

import (
	"errors"

	"enrollment/config"
	"enrollment/domain"
	"enrollment/middleware"
	"enrollment/services/enrollment/usecase"

	"github.com/gofiber/fiber/v2"
)

type authHandler struct {
	auc domain.AuthUseCase
}

func NewAuthDelivery(app *fiber.App, uc domain.AuthUseCase) {
	handler := &authHandler{
		auc: uc,
	}

	route := app.Group("/api")
	route.Post("/login", middleware.LoginRateLimiter(), handler.Login)
	route.Post("/signup", handler.Signup)
}

func (ah *authHandler) Login(c *fiber.Ctx) error {
	var req domain.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return sendError(c, fiber.StatusBadRequest, domain.NewValidationError("Invalid request body"), nil, "Login")
	}
	who := &req.Email

	resp, err := ah.auc.Login(c.Context(), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			return sendError(c, fiber.StatusUnauthorized, err, who, "Login")
		}
		return sendError(c, errorStatus(err), err, who, "Login")
	}

	config.PrintLogInfo(who, fiber.StatusOK, "Login")
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (ah *authHandler) Signup(c *fiber.Ctx) error {
	var req domain.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return sendError(c, fiber.StatusBadRequest, domain.NewValidationError("Invalid request body"), nil, "Signup")
	}
	who := &req.Email

	user, err := ah.auc.Signup(c.Context(), &req)
	if err != nil {
		return sendError(c, errorStatus(err), err, who, "Signup")
	}

	config.PrintLogInfo(who, fiber.StatusCreated, "Signup")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Account created successfully",
		"user":    user,
	})
}
