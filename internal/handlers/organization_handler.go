package handlers

import (
	"strings"

	"github.com/estateops/backend/internal/dto"
	"github.com/estateops/backend/internal/models"
	"github.com/estateops/backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrganizationHandler manages tenant organizations (admin only). Newly
// created organizations are registered in the in-memory registry so the
// tenant middleware accepts them without a restart.
type OrganizationHandler struct {
	db       *gorm.DB
	registry *tenant.Registry
}

func NewOrganizationHandler(db *gorm.DB, registry *tenant.Registry) *OrganizationHandler {
	return &OrganizationHandler{db: db, registry: registry}
}

type createOrganizationRequest struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ContactEmail string `json:"contact_email"`
}

func (h *OrganizationHandler) Create(c *fiber.Ctx) error {
	var req createOrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	name := strings.TrimSpace(req.Name)
	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if name == "" || slug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Name and slug are required",
		})
	}

	org := models.Organization{
		ID:           uuid.New(),
		Name:         name,
		Slug:         slug,
		ContactEmail: req.ContactEmail,
		Active:       true,
	}

	if err := h.db.Create(&org).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: "Organization slug already in use",
		})
	}

	h.registry.Register(&org)
	return c.Status(fiber.StatusCreated).JSON(org)
}

func (h *OrganizationHandler) List(c *fiber.Ctx) error {
	var orgs []models.Organization
	if err := h.db.Order("created_at DESC").Find(&orgs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch organizations",
		})
	}

	return c.JSON(orgs)
}

func (h *OrganizationHandler) Deactivate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid organization id",
		})
	}

	var org models.Organization
	if err := h.db.First(&org, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Organization not found",
		})
	}

	org.Active = false
	if err := h.db.Save(&org).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to deactivate organization",
		})
	}

	h.registry.Register(&org)
	return c.JSON(org)
}
