package delivery

import (
	"enrollment/config"
	"enrollment/domain"

	"github.com/gofiber/fiber/v2"
)

type lookupHandler struct {
	luc domain.LookupUseCase
}

// NewLookupDelivery serves the public dropdown lists. Each returns a bare JSON array.
func NewLookupDelivery(app *fiber.App, uc domain.LookupUseCase) {
	handler := &lookupHandler{
		luc: uc,
	}

	route := app.Group("/api")
	route.Get("/programs", handler.GetPrograms)
	route.Get("/room-types", handler.GetRoomTypes)
	route.Get("/payment-plans", handler.GetPaymentPlans)
	route.Get("/enrollment-plans", handler.GetEnrollmentPlans)
}

func (lh *lookupHandler) GetPrograms(c *fiber.Ctx) error {
	programs, err := lh.luc.GetPrograms(c.Context())
	if err != nil {
		return sendError(c, errorStatus(err), err, nil, "GetPrograms")
	}
	config.PrintLogInfo(nil, fiber.StatusOK, "GetPrograms")
	return c.Status(fiber.StatusOK).JSON(programs)
}

func (lh *lookupHandler) GetRoomTypes(c *fiber.Ctx) error {
	rooms, err := lh.luc.GetRoomTypes(c.Context())
	if err != nil {
		return sendError(c, errorStatus(err), err, nil, "GetRoomTypes")
	}
	config.PrintLogInfo(nil, fiber.StatusOK, "GetRoomTypes")
	return c.Status(fiber.StatusOK).JSON(rooms)
}

func (lh *lookupHandler) GetPaymentPlans(c *fiber.Ctx) error {
	plans, err := lh.luc.GetPaymentPlans(c.Context())
	if err != nil {
		return sendError(c, errorStatus(err), err, nil, "GetPaymentPlans")
	}
	config.PrintLogInfo(nil, fiber.StatusOK, "GetPaymentPlans")
	return c.Status(fiber.StatusOK).JSON(plans)
}

func (lh *lookupHandler) GetEnrollmentPlans(c *fiber.Ctx) error {
	plans, err := lh.luc.GetEnrollmentPlans(c.Context())
	if err != nil {
		return sendError(c, errorStatus(err), err, nil, "GetEnrollmentPlans")
	}
	config.PrintLogInfo(nil, fiber.StatusOK, "GetEnrollmentPlans")
	return c.Status(fiber.StatusOK).JSON(plans)
}
