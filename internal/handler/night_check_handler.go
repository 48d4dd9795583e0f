package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"carehome-backend/internal/domain"
	"carehome-backend/internal/middleware"
	"carehome-backend/internal/service/nightcheck"
)

type NightCheckHandler struct {
	nightCheckService nightcheck.Service
}

func NewNightCheckHandler(nightCheckService nightcheck.Service) *NightCheckHandler {
	return &NightCheckHandler{nightCheckService: nightCheckService}
}

func (h *NightCheckHandler) CreateConfiguration(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return middleware.Unauthorized("Not authenticated")
	}

	residentID, err := uuid.Parse(c.Params("residentId"))
	if err != nil {
		return middleware.BadRequest("Invalid resident ID")
	}

	var input domain.CreateNightCheckConfigurationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.CheckType == "" || input.IntervalMinutes <= 0 {
		return middleware.BadRequest("Check type and a positive interval are required")
	}

	cfg, err := h.nightCheckService.CreateConfiguration(c.Context(), residentID, claims.OrganizationID, claims.TeamID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(cfg)
}

func (h *NightCheckHandler) RecordCheck(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return middleware.Unauthorized("Not authenticated")
	}

	residentID, err := uuid.Parse(c.Params("residentId"))
	if err != nil {
		return middleware.BadRequest("Invalid resident ID")
	}

	var input domain.RecordNightCheckInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	rec, err := h.nightCheckService.RecordCheck(c.Context(), residentID, claims.StaffID, input)
	if err != nil {
		if errors.Is(err, nightcheck.ErrConfigurationNotFound) {
			return middleware.NotFound("Night check configuration not found")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(rec)
}

func (h *NightCheckHandler) ListRecordings(c *fiber.Ctx) error {
	residentID, err := uuid.Parse(c.Params("residentId"))
	if err != nil {
		return middleware.BadRequest("Invalid resident ID")
	}

	params := domain.DefaultPagination()
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid pagination parameters")
	}

	result, err := h.nightCheckService.ListRecordings(c.Context(), residentID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
