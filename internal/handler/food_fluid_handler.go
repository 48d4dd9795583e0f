package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"carehome-backend/internal/domain"
	"carehome-backend/internal/middleware"
	"carehome-backend/internal/service/foodfluid"
)

type FoodFluidHandler struct {
	foodFluidService foodfluid.Service
}

func NewFoodFluidHandler(foodFluidService foodfluid.Service) *FoodFluidHandler {
	return &FoodFluidHandler{foodFluidService: foodFluidService}
}

func (h *FoodFluidHandler) CheckAlerts(c *fiber.Ctx) error {
	residentID, err := uuid.Parse(c.Params("residentId"))
	if err != nil {
		return middleware.BadRequest("Invalid resident ID")
	}

	result, err := h.foodFluidService.CheckAlerts(c.Context(), residentID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *FoodFluidHandler) CreateLog(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return middleware.Unauthorized("Not authenticated")
	}

	residentID, err := uuid.Parse(c.Params("residentId"))
	if err != nil {
		return middleware.BadRequest("Invalid resident ID")
	}

	var input domain.CreateFoodFluidLogInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	log, err := h.foodFluidService.CreateLog(c.Context(), residentID, claims.OrganizationID, claims.TeamID, claims.StaffID, input)
	if err != nil {
		if errors.Is(err, foodfluid.ErrInvalidSection) {
			return middleware.BadRequest(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(log)
}

func (h *FoodFluidHandler) ListToday(c *fiber.Ctx) error {
	residentID, err := uuid.Parse(c.Params("residentId"))
	if err != nil {
		return middleware.BadRequest("Invalid resident ID")
	}

	logs, err := h.foodFluidService.ListForToday(c.Context(), residentID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": logs})
}
