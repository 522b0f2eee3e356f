package parking

import (
	"errors"

	"github.com/estateops/backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SpotHandler struct {
	service *SpotService
}

func NewSpotHandler(service *SpotService) *SpotHandler {
	return &SpotHandler{service: service}
}

func (h *SpotHandler) Create(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)

	var req CreateSpotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	spot, err := h.service.Create(orgID, &req)
	if err != nil {
		if errors.Is(err, ErrBuildingRequired) || errors.Is(err, ErrNumberRequired) || errors.Is(err, ErrNegativeFee) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to create parking spot"})
	}

	return c.Status(fiber.StatusCreated).JSON(spot)
}

func (h *SpotHandler) List(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)

	var buildingID *uuid.UUID
	if raw := c.Query("building_id", ""); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid building_id filter"})
		}
		buildingID = &id
	}

	spots, err := h.service.List(orgID, buildingID, c.QueryBool("free", false))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch parking spots"})
	}

	return c.JSON(spots)
}

func (h *SpotHandler) Get(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid spot ID"})
	}

	spot, err := h.service.Get(orgID, id)
	if err != nil {
		if errors.Is(err, ErrSpotNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch parking spot"})
	}

	return c.JSON(spot)
}

func (h *SpotHandler) Assign(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid spot ID"})
	}

	var req AssignSpotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	spot, err := h.service.Assign(orgID, id, req.RenterID)
	if err != nil {
		if errors.Is(err, ErrSpotNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrRenterRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrSpotTaken) {
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to assign parking spot"})
	}

	return c.JSON(spot)
}

func (h *SpotHandler) Release(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid spot ID"})
	}

	spot, err := h.service.Release(orgID, id)
	if err != nil {
		if errors.Is(err, ErrSpotNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrSpotNotAssigned) {
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to release parking spot"})
	}

	return c.JSON(spot)
}

func (h *SpotHandler) Delete(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid spot ID"})
	}

	if err := h.service.Delete(orgID, id); err != nil {
		if errors.Is(err, ErrSpotNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to delete parking spot"})
	}

	return c.JSON(fiber.Map{"message": "Parking spot deleted"})
}
