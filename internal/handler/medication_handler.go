package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"carehome-backend/internal/domain"
	"carehome-backend/internal/middleware"
	"carehome-backend/internal/service/medication"
)

type MedicationHandler struct {
	medicationService medication.Service
}

func NewMedicationHandler(medicationService medication.Service) *MedicationHandler {
	return &MedicationHandler{medicationService: medicationService}
}

type createIntakeRequest struct {
	MedicationName string    `json:"medication_name"`
	Dosage         string    `json:"dosage"`
	ScheduledAt    time.Time `json:"scheduled_at"`
}

func (h *MedicationHandler) CreateIntake(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return middleware.Unauthorized("Not authenticated")
	}

	residentID, err := uuid.Parse(c.Params("residentId"))
	if err != nil {
		return middleware.BadRequest("Invalid resident ID")
	}

	var req createIntakeRequest
	if err := c.BodyParser(&req); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if req.MedicationName == "" || req.Dosage == "" {
		return middleware.BadRequest("Medication name and dosage are required")
	}

	intake, err := h.medicationService.CreateIntake(c.Context(), residentID, claims.OrganizationID, claims.TeamID, req.MedicationName, req.Dosage, req.ScheduledAt)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(intake)
}

func (h *MedicationHandler) UpdateIntakeStatus(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return middleware.Unauthorized("Not authenticated")
	}

	intakeID, err := uuid.Parse(c.Params("intakeId"))
	if err != nil {
		return middleware.BadRequest("Invalid intake ID")
	}

	var input domain.UpdateIntakeStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	intake, err := h.medicationService.UpdateIntakeStatus(c.Context(), intakeID, claims.StaffID, input)
	if err != nil {
		if errors.Is(err, medication.ErrIntakeNotFound) {
			return middleware.NotFound("Medication intake not found")
		}
		if errors.Is(err, medication.ErrInvalidStatus) {
			return middleware.BadRequest(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(intake)
}

func (h *MedicationHandler) ListForResident(c *fiber.Ctx) error {
	residentID, err := uuid.Parse(c.Params("residentId"))
	if err != nil {
		return middleware.BadRequest("Invalid resident ID")
	}

	params := domain.DefaultPagination()
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid pagination parameters")
	}

	result, err := h.medicationService.ListByResident(c.Context(), residentID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
