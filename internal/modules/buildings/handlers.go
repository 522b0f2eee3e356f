package buildings

import (
	"errors"
	"strconv"

	"github.com/estateops/backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type BuildingHandler struct {
	buildingService *BuildingService
	unitService     *UnitService
}

func NewBuildingHandler(buildingService *BuildingService, unitService *UnitService) *BuildingHandler {
	return &BuildingHandler{buildingService: buildingService, unitService: unitService}
}

func (h *BuildingHandler) CreateBuilding(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)

	var req CreateBuildingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	building, err := h.buildingService.Create(orgID, &req)
	if err != nil {
		if errors.Is(err, ErrNameRequired) || errors.Is(err, ErrAddressRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to create building"})
	}

	return c.Status(fiber.StatusCreated).JSON(building)
}

func (h *BuildingHandler) ListBuildings(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	search := c.Query("search", "")

	resp, err := h.buildingService.List(orgID, page, limit, search)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch buildings"})
	}

	return c.JSON(resp)
}

func (h *BuildingHandler) GetBuilding(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid building ID"})
	}

	building, err := h.buildingService.Get(orgID, id)
	if err != nil {
		if errors.Is(err, ErrBuildingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch building"})
	}

	return c.JSON(building)
}

func (h *BuildingHandler) UpdateBuilding(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid building ID"})
	}

	var req UpdateBuildingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	building, err := h.buildingService.Update(orgID, id, &req)
	if err != nil {
		if errors.Is(err, ErrBuildingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrNameRequired) || errors.Is(err, ErrAddressRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to update building"})
	}

	return c.JSON(building)
}

func (h *BuildingHandler) DeleteBuilding(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid building ID"})
	}

	if err := h.buildingService.Delete(orgID, id); err != nil {
		if errors.Is(err, ErrBuildingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to delete building"})
	}

	return c.JSON(fiber.Map{"message": "Building deleted"})
}

func (h *BuildingHandler) CreateUnit(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)
	buildingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid building ID"})
	}

	var req CreateUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	unit, err := h.unitService.Create(orgID, buildingID, &req)
	if err != nil {
		if errors.Is(err, ErrBuildingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrNumberRequired) || errors.Is(err, ErrNegativeRent) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to create unit"})
	}

	return c.Status(fiber.StatusCreated).JSON(unit)
}

func (h *BuildingHandler) ListUnits(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)
	buildingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid building ID"})
	}

	units, err := h.unitService.ListByBuilding(orgID, buildingID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch units"})
	}

	return c.JSON(units)
}

func (h *BuildingHandler) GetUnit(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid unit ID"})
	}

	unit, err := h.unitService.Get(orgID, id)
	if err != nil {
		if errors.Is(err, ErrUnitNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch unit"})
	}

	return c.JSON(unit)
}

func (h *BuildingHandler) UpdateUnit(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid unit ID"})
	}

	var req UpdateUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	unit, err := h.unitService.Update(orgID, id, &req)
	if err != nil {
		if errors.Is(err, ErrUnitNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrNumberRequired) || errors.Is(err, ErrNegativeRent) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to update unit"})
	}

	return c.JSON(unit)
}

func (h *BuildingHandler) DeleteUnit(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid unit ID"})
	}

	if err := h.unitService.Delete(orgID, id); err != nil {
		if errors.Is(err, ErrUnitNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to delete unit"})
	}

	return c.JSON(fiber.Map{"message": "Unit deleted"})
}
