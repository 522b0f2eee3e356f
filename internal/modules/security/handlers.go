package security

import (
	"errors"

	"github.com/estateops/backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IncidentHandler struct {
	service *IncidentService
}

func NewIncidentHandler(service *IncidentService) *IncidentHandler {
	return &IncidentHandler{service: service}
}

func (h *IncidentHandler) Create(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)

	var req CreateIncidentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	incident, err := h.service.Create(orgID, &req)
	if err != nil {
		if errors.Is(err, ErrTitleRequired) || errors.Is(err, ErrInvalidSeverity) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to create incident"})
	}

	return c.Status(fiber.StatusCreated).JSON(incident)
}

func (h *IncidentHandler) List(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)

	var buildingID *uuid.UUID
	if raw := c.Query("building_id", ""); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid building ID"})
		}
		buildingID = &id
	}

	incidents, err := h.service.List(orgID, c.Query("status", ""), c.Query("severity", ""), buildingID)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) || errors.Is(err, ErrInvalidSeverity) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch incidents"})
	}

	return c.JSON(incidents)
}

func (h *IncidentHandler) Get(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid incident ID"})
	}

	incident, err := h.service.Get(orgID, id)
	if err != nil {
		if errors.Is(err, ErrIncidentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch incident"})
	}

	return c.JSON(incident)
}

func (h *IncidentHandler) Close(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid incident ID"})
	}

	var req CloseIncidentRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
		}
	}

	incident, err := h.service.Close(orgID, id, &req)
	if err != nil {
		if errors.Is(err, ErrIncidentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrAlreadyClosed) {
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to close incident"})
	}

	return c.JSON(incident)
}

func (h *IncidentHandler) Delete(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid incident ID"})
	}

	if err := h.service.Delete(orgID, id); err != nil {
		if errors.Is(err, ErrIncidentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to delete incident"})
	}

	return c.JSON(fiber.Map{"message": "Incident deleted"})
}
