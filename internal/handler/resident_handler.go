package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"carehome-backend/internal/domain"
	"carehome-backend/internal/middleware"
	"carehome-backend/internal/service/resident"
)

type ResidentHandler struct {
	residentService resident.Service
}

func NewResidentHandler(residentService resident.Service) *ResidentHandler {
	return &ResidentHandler{residentService: residentService}
}

func (h *ResidentHandler) Create(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return middleware.Unauthorized("Not authenticated")
	}

	var input domain.CreateResidentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.FirstName == "" || input.LastName == "" {
		return middleware.BadRequest("First and last name are required")
	}

	created, err := h.residentService.Create(c.Context(), claims.OrganizationID, claims.TeamID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *ResidentHandler) Get(c *fiber.Ctx) error {
	residentID, err := uuid.Parse(c.Params("residentId"))
	if err != nil {
		return middleware.BadRequest("Invalid resident ID")
	}

	found, err := h.residentService.GetByID(c.Context(), residentID)
	if err != nil {
		if errors.Is(err, resident.ErrResidentNotFound) {
			return middleware.NotFound("Resident not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *ResidentHandler) List(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return middleware.Unauthorized("Not authenticated")
	}

	params := domain.DefaultPagination()
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid pagination parameters")
	}

	result, err := h.residentService.List(c.Context(), claims.OrganizationID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
