package delivery

import (
	"errors"
	"strconv"

	"enrollment/config"
	"enrollment/domain"

	"github.com/gofiber/fiber/v2"
)

var (
	roleAdmin  = domain.RoleName(domain.RoleAdmin)
	roleParent = domain.RoleName(domain.RoleParent)
)

// errorStatus maps the domain error taxonomy to an HTTP status.
func errorStatus(err error) int {
	switch {
	case domain.IsValidation(err):
		return fiber.StatusBadRequest
	case domain.IsNotFound(err):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// sendError writes {success:false, error, detail?} and logs the outcome.
func sendError(c *fiber.Ctx, status int, err error, who *string, function string) error {
	body := fiber.Map{
		"success": false,
		"error":   err.Error(),
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) && len(ve.Fields) > 0 {
		body["fields"] = ve.Fields
	}
	var te *domain.TransactionError
	if errors.As(err, &te) && te.Detail != "" {
		body["detail"] = te.Detail
	}

	if status >= fiber.StatusInternalServerError {
		config.GetLogrusInstance().WithError(err).WithField("function", function).Error("request failed")
	}
	config.PrintLogInfo(who, status, function)
	return c.Status(status).JSON(body)
}

func claimsOf(c *fiber.Ctx) *domain.Claims {
	claims, _ := c.Locals("user").(*domain.Claims)
	return claims
}

// caller names the requester for logs.
func caller(claims *domain.Claims) *string {
	name := "anonymous"
	if claims != nil {
		name = claims.Email
	}
	return &name
}

func childIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("childId"), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.NewValidationError("Invalid child id", "childId")
	}
	return uint(id), nil
}
