package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"carehome-backend/internal/domain"
	"carehome-backend/internal/middleware"
	"carehome-backend/internal/service/alert"
)

type AlertHandler struct {
	alertService alert.Service
}

func NewAlertHandler(alertService alert.Service) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

func (h *AlertHandler) ListForResident(c *fiber.Ctx) error {
	residentID, err := uuid.Parse(c.Params("residentId"))
	if err != nil {
		return middleware.BadRequest("Invalid resident ID")
	}

	alerts, err := h.alertService.ListByResident(c.Context(), residentID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": alerts})
}

func (h *AlertHandler) CountsForResident(c *fiber.Ctx) error {
	residentID, err := uuid.Parse(c.Params("residentId"))
	if err != nil {
		return middleware.BadRequest("Invalid resident ID")
	}

	counts, err := h.alertService.CountsForResident(c.Context(), residentID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(counts)
}

type countsRequest struct {
	ResidentIDs []uuid.UUID `json:"resident_ids"`
}

func (h *AlertHandler) CountsForResidents(c *fiber.Ctx) error {
	var req countsRequest
	if err := c.BodyParser(&req); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	counts, err := h.alertService.CountsForResidents(c.Context(), req.ResidentIDs)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"counts": counts})
}

func (h *AlertHandler) ListForOrganization(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return middleware.Unauthorized("Not authenticated")
	}

	includeResolved := c.Query("include_resolved") == "true"
	params := domain.DefaultPagination()
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid pagination parameters")
	}

	result, err := h.alertService.ListByOrganization(c.Context(), claims.OrganizationID, includeResolved, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// Create is reachable only through the internal-key guard; the scheduler is
// the sole intended caller.
func (h *AlertHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateAlertInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	result, err := h.alertService.Create(c.Context(), input)
	if err != nil {
		if errors.Is(err, alert.ErrInvalidInput) {
			return middleware.BadRequest(err.Error())
		}
		return err
	}

	status := fiber.StatusOK
	if result.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(result)
}

func (h *AlertHandler) Resolve(c *fiber.Ctx) error {
	alertID, err := uuid.Parse(c.Params("alertId"))
	if err != nil {
		return middleware.BadRequest("Invalid alert ID")
	}

	var input domain.ResolveAlertInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if input.ResolvedBy == nil {
		if claims := middleware.GetClaims(c); claims != nil {
			input.ResolvedBy = &claims.StaffID
		}
	}

	if err := h.alertService.Resolve(c.Context(), alertID, input); err != nil {
		if errors.Is(err, alert.ErrAlertNotFound) {
			return middleware.NotFound("Alert not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func (h *AlertHandler) ClearAll(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return middleware.Unauthorized("Not authenticated")
	}

	count, err := h.alertService.ClearAllUnresolved(c.Context(), claims.OrganizationID, &claims.StaffID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"cleared_count": count})
}
