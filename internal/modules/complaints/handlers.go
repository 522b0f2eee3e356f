package complaints

import (
	"errors"

	"github.com/estateops/backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ComplaintHandler struct {
	service *ComplaintService
}

func NewComplaintHandler(service *ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{service: service}
}

func (h *ComplaintHandler) Create(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)

	var req CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	complaint, err := h.service.Create(orgID, &req)
	if err != nil {
		if errors.Is(err, ErrSubjectRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to create complaint"})
	}

	return c.Status(fiber.StatusCreated).JSON(complaint)
}

func (h *ComplaintHandler) List(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)

	complaints, err := h.service.List(orgID, c.Query("status", ""))
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch complaints"})
	}

	return c.JSON(complaints)
}

func (h *ComplaintHandler) Get(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid complaint ID"})
	}

	complaint, err := h.service.Get(orgID, id)
	if err != nil {
		if errors.Is(err, ErrComplaintNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch complaint"})
	}

	return c.JSON(complaint)
}

func (h *ComplaintHandler) Resolve(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid complaint ID"})
	}

	var req ResolveComplaintRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
		}
	}

	complaint, err := h.service.Resolve(orgID, id, &req)
	if err != nil {
		if errors.Is(err, ErrComplaintNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrAlreadySettled) {
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to resolve complaint"})
	}

	return c.JSON(complaint)
}

func (h *ComplaintHandler) Delete(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid complaint ID"})
	}

	if err := h.service.Delete(orgID, id); err != nil {
		if errors.Is(err, ErrComplaintNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to delete complaint"})
	}

	return c.JSON(fiber.Map{"message": "Complaint deleted"})
}
