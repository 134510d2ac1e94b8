package delivery

import (
	"strings"

	"enrollment/config"
	"enrollment/domain"
	"enrollment/middleware"

	"github.com/gofiber/fiber/v2"
)

type registrationHandler struct {
	ruc domain.RegistrationUseCase
	suc domain.StudentUseCase
}

func NewRegistrationDelivery(app *fiber.App, ruc domain.RegistrationUseCase, suc domain.StudentUseCase) {
	handler := &registrationHandler{
		ruc: ruc,
		suc: suc,
	}

	route := app.Group("/api/registrations", middleware.AuthRequired(), middleware.RoleRequired(roleAdmin, roleParent))
	route.Post("/", handler.CreateRegistration)
	route.Get("/:childId", handler.GetRegistration)
	route.Put("/:childId", handler.UpdateRegistration)
	route.Patch("/:childId", handler.UpdateRegistration)
	route.Put("/:childId/enrollment", handler.UpdateEnrollment)
}

func (rh *registrationHandler) CreateRegistration(c *fiber.Ctx) error {
	userToken := claimsOf(c)
	who := caller(userToken)

	var req domain.RegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return sendError(c, fiber.StatusBadRequest, domain.NewValidationError("Invalid request body"), who, "CreateRegistration")
	}

	if !userToken.IsAdmin() && (userToken == nil || !strings.EqualFold(domain.NormalizeEmail(req.Email), userToken.Email)) {
		config.PrintLogInfo(who, fiber.StatusForbidden, "CreateRegistration")
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"error":   "Parents may only register children under their own account",
		})
	}

	childID, err := rh.ruc.CreateRegistration(c.Context(), &req)
	if err != nil {
		status := errorStatus(err)
		// An unknown owning user is a bad request here, not a missing resource.
		if status == fiber.StatusNotFound {
			status = fiber.StatusBadRequest
		}
		return sendError(c, status, err, who, "CreateRegistration")
	}

	config.PrintLogInfo(who, fiber.StatusCreated, "CreateRegistration")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Registration submitted successfully",
		"childId": childID,
	})
}

func (rh *registrationHandler) GetRegistration(c *fiber.Ctx) error {
	userToken := claimsOf(c)
	who := caller(userToken)

	childID, err := childIDParam(c)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err, who, "GetRegistration")
	}
	if ok, err := canAccessChild(c, rh.ruc, userToken, childID, "GetRegistration"); !ok {
		return err
	}

	student, err := rh.suc.GetStudentByID(c.Context(), childID)
	if err != nil {
		return sendError(c, errorStatus(err), err, who, "GetRegistration")
	}

	config.PrintLogInfo(who, fiber.StatusOK, "GetRegistration")
	return c.Status(fiber.StatusOK).JSON(student)
}

func (rh *registrationHandler) UpdateRegistration(c *fiber.Ctx) error {
	userToken := claimsOf(c)
	who := caller(userToken)

	childID, err := childIDParam(c)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err, who, "UpdateRegistration")
	}

	var req domain.RegistrationUpdate
	if err := c.BodyParser(&req); err != nil {
		return sendError(c, fiber.StatusBadRequest, domain.NewValidationError("Invalid request body"), who, "UpdateRegistration")
	}

	if ok, err := canAccessChild(c, rh.ruc, userToken, childID, "UpdateRegistration"); !ok {
		return err
	}

	if err := rh.ruc.UpdateRegistration(c.Context(), childID, &req); err != nil {
		return sendError(c, errorStatus(err), err, who, "UpdateRegistration")
	}

	config.PrintLogInfo(who, fiber.StatusOK, "UpdateRegistration")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Registration updated successfully",
	})
}

func (rh *registrationHandler) UpdateEnrollment(c *fiber.Ctx) error {
	userToken := claimsOf(c)
	who := caller(userToken)

	childID, err := childIDParam(c)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err, who, "UpdateEnrollment")
	}

	var sel domain.EnrollmentSelection
	if err := c.BodyParser(&sel); err != nil {
		return sendError(c, fiber.StatusBadRequest, domain.NewValidationError("Invalid request body"), who, "UpdateEnrollment")
	}

	if ok, err := canAccessChild(c, rh.ruc, userToken, childID, "UpdateEnrollment"); !ok {
		return err
	}

	if err := rh.ruc.UpdateEnrollment(c.Context(), childID, &sel); err != nil {
		return sendError(c, errorStatus(err), err, who, "UpdateEnrollment")
	}

	config.PrintLogInfo(who, fiber.StatusOK, "UpdateEnrollment")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Enrollment updated successfully",
	})
}

// canAccessChild lets admins through and limits parents to their own children.
// When it returns false the response has already been written.
func canAccessChild(c *fiber.Ctx, ruc domain.RegistrationUseCase, userToken *domain.Claims, childID uint, function string) (bool, error) {
	if userToken.IsAdmin() {
		return true, nil
	}

	who := caller(userToken)
	owner, err := ruc.GetChildOwner(c.Context(), childID)
	if err != nil {
		return false, sendError(c, errorStatus(err), err, who, function)
	}
	if userToken == nil || owner == nil || *owner != userToken.UserID {
		config.PrintLogInfo(who, fiber.StatusForbidden, function)
		return false, c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"error":   "Access denied",
		})
	}
	return true, nil
}
