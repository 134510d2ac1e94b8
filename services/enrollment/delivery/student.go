package delivery

import (
	"strconv"

	"enrollment/config"
	"enrollment/domain"
	"enrollment/middleware"

	"github.com/gofiber/fiber/v2"
)

type studentHandler struct {
	suc domain.StudentUseCase
	ruc domain.RegistrationUseCase
}

func NewStudentDelivery(app *fiber.App, suc domain.StudentUseCase, ruc domain.RegistrationUseCase) {
	handler := &studentHandler{
		suc: suc,
		ruc: ruc,
	}

	route := app.Group("/api/students", middleware.AuthRequired(), middleware.RoleRequired(roleAdmin, roleParent))
	route.Get("/", handler.GetAllStudents)
	route.Get("/:childId", handler.GetStudentByID)
	route.Patch("/:childId", handler.UpdateStudent)
}

func (sh *studentHandler) GetAllStudents(c *fiber.Ctx) error {
	userToken := claimsOf(c)
	who := caller(userToken)

	var filter domain.StudentFilter
	if raw := c.Query("parentUserId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return sendError(c, fiber.StatusBadRequest, domain.NewValidationError("Invalid parentUserId", "parentUserId"), who, "GetAllStudents")
		}
		parentID := uint(id)
		filter.ParentUserID = &parentID
	}
	if !userToken.IsAdmin() {
		if userToken == nil {
			return sendError(c, fiber.StatusUnauthorized, domain.NewValidationError("Unauthorized"), who, "GetAllStudents")
		}
		own := userToken.UserID
		filter.ParentUserID = &own
	}

	students, err := sh.suc.GetAllStudents(c.Context(), filter)
	if err != nil {
		return sendError(c, errorStatus(err), err, who, "GetAllStudents")
	}

	config.PrintLogInfo(who, fiber.StatusOK, "GetAllStudents")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"message":    "Students retrieved successfully",
		"totalCount": len(*students),
		"data":       students,
	})
}

func (sh *studentHandler) GetStudentByID(c *fiber.Ctx) error {
	userToken := claimsOf(c)
	who := caller(userToken)

	childID, err := childIDParam(c)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err, who, "GetStudentByID")
	}
	if ok, err := canAccessChild(c, sh.ruc, userToken, childID, "GetStudentByID"); !ok {
		return err
	}

	student, err := sh.suc.GetStudentByID(c.Context(), childID)
	if err != nil {
		return sendError(c, errorStatus(err), err, who, "GetStudentByID")
	}

	config.PrintLogInfo(who, fiber.StatusOK, "GetStudentByID")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    student,
	})
}

// UpdateStudent applies the same partial update as the registration route and
// answers with the refreshed student.
func (sh *studentHandler) UpdateStudent(c *fiber.Ctx) error {
	userToken := claimsOf(c)
	who := caller(userToken)

	childID, err := childIDParam(c)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err, who, "UpdateStudent")
	}

	var req domain.RegistrationUpdate
	if err := c.BodyParser(&req); err != nil {
		return sendError(c, fiber.StatusBadRequest, domain.NewValidationError("Invalid request body"), who, "UpdateStudent")
	}

	if ok, err := canAccessChild(c, sh.ruc, userToken, childID, "UpdateStudent"); !ok {
		return err
	}

	if err := sh.ruc.UpdateRegistration(c.Context(), childID, &req); err != nil {
		return sendError(c, errorStatus(err), err, who, "UpdateStudent")
	}

	student, err := sh.suc.GetStudentByID(c.Context(), childID)
	if err != nil {
		return sendError(c, errorStatus(err), err, who, "UpdateStudent")
	}

	config.PrintLogInfo(who, fiber.StatusOK, "UpdateStudent")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Student updated successfully",
		"data":    student,
	})
}
