package handlers

import (
	"errors"

	"github.com/estateops/backend/internal/dto"
	"github.com/estateops/backend/internal/models"
	"github.com/estateops/backend/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// InvoiceHandler exposes the invoice ledger the billing runner writes.
// Invoices are read-only apart from status bookkeeping; documents and
// payment collection live outside this system.
type InvoiceHandler struct {
	repo repository.InvoiceRepository
}

func NewInvoiceHandler(repo repository.InvoiceRepository) *InvoiceHandler {
	return &InvoiceHandler{repo: repo}
}

func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	invoices, err := h.repo.FindAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list invoices",
		})
	}

	return c.JSON(invoices)
}

func (h *InvoiceHandler) ListByOrganization(c *fiber.Ctx) error {
	orgID, err := uuid.Parse(c.Params("org_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid organization id",
		})
	}

	invoices, err := h.repo.FindByOrganization(c.Context(), orgID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list invoices",
		})
	}

	return c.JSON(invoices)
}

func (h *InvoiceHandler) MarkPaid(c *fiber.Ctx) error {
	return h.setStatus(c, models.InvoiceStatusPaid)
}

func (h *InvoiceHandler) Void(c *fiber.Ctx) error {
	return h.setStatus(c, models.InvoiceStatusVoid)
}

func (h *InvoiceHandler) setStatus(c *fiber.Ctx, status string) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Invoice not found",
		})
	}

	if err := h.repo.UpdateStatus(c.Context(), id, status); err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Invoice not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update invoice",
		})
	}

	inv, err := h.repo.FindByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch invoice",
		})
	}
	return c.JSON(inv)
}
