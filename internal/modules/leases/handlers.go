package leases

import (
	"errors"

	"github.com/estateops/backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type LeaseHandler struct {
	renterService *RenterService
	leaseService  *LeaseService
}

func NewLeaseHandler(renterService *RenterService, leaseService *LeaseService) *LeaseHandler {
	return &LeaseHandler{renterService: renterService, leaseService: leaseService}
}

func (h *LeaseHandler) CreateRenter(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)

	var req CreateRenterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	renter, err := h.renterService.Create(orgID, &req)
	if err != nil {
		if errors.Is(err, ErrFullNameRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to create renter"})
	}

	return c.Status(fiber.StatusCreated).JSON(renter)
}

func (h *LeaseHandler) ListRenters(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)

	renters, err := h.renterService.List(orgID, c.Query("search", ""))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch renters"})
	}

	return c.JSON(renters)
}

func (h *LeaseHandler) GetRenter(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid renter ID"})
	}

	renter, err := h.renterService.Get(orgID, id)
	if err != nil {
		if errors.Is(err, ErrRenterNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch renter"})
	}

	return c.JSON(renter)
}

func (h *LeaseHandler) UpdateRenter(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid renter ID"})
	}

	var req UpdateRenterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	renter, err := h.renterService.Update(orgID, id, &req)
	if err != nil {
		if errors.Is(err, ErrRenterNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrFullNameRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to update renter"})
	}

	return c.JSON(renter)
}

func (h *LeaseHandler) DeleteRenter(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid renter ID"})
	}

	if err := h.renterService.Delete(orgID, id); err != nil {
		if errors.Is(err, ErrRenterNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to delete renter"})
	}

	return c.JSON(fiber.Map{"message": "Renter deleted"})
}

func (h *LeaseHandler) CreateLease(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)

	var req CreateLeaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	lease, err := h.leaseService.Create(orgID, &req)
	if err != nil {
		if errors.Is(err, ErrRenterNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrUnitRequired) || errors.Is(err, ErrRenterRequired) || errors.Is(err, ErrNegativeRent) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to create lease"})
	}

	return c.Status(fiber.StatusCreated).JSON(lease)
}

func (h *LeaseHandler) ListLeases(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)

	var unitID, renterID *uuid.UUID
	if raw := c.Query("unit_id", ""); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid unit_id filter"})
		}
		unitID = &id
	}
	if raw := c.Query("renter_id", ""); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid renter_id filter"})
		}
		renterID = &id
	}

	leases, err := h.leaseService.List(orgID, c.Query("status", ""), unitID, renterID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch leases"})
	}

	return c.JSON(leases)
}

func (h *LeaseHandler) GetLease(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid lease ID"})
	}

	lease, err := h.leaseService.Get(orgID, id)
	if err != nil {
		if errors.Is(err, ErrLeaseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch lease"})
	}

	return c.JSON(lease)
}

func (h *LeaseHandler) UpdateLease(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid lease ID"})
	}

	var req UpdateLeaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	lease, err := h.leaseService.Update(orgID, id, &req)
	if err != nil {
		if errors.Is(err, ErrLeaseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrNegativeRent) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to update lease"})
	}

	return c.JSON(lease)
}

func (h *LeaseHandler) EndLease(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid lease ID"})
	}

	var req EndLeaseRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
		}
	}

	lease, err := h.leaseService.End(orgID, id, &req)
	if err != nil {
		if errors.Is(err, ErrLeaseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrLeaseNotActive) {
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to end lease"})
	}

	return c.JSON(lease)
}
