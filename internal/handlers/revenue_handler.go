package handlers

import (
	"github.com/estateops/backend/internal/dto"
	"github.com/estateops/backend/internal/jobs"
	"github.com/estateops/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// RevenueHandler exposes the admin revenue dashboard endpoints: the
// MRR/ARR snapshot and a manual trigger for the billing runner.
type RevenueHandler struct {
	service *services.SubscriptionService
	runner  *jobs.BillingRunner
}

func NewRevenueHandler(service *services.SubscriptionService, runner *jobs.BillingRunner) *RevenueHandler {
	return &RevenueHandler{service: service, runner: runner}
}

func (h *RevenueHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.RevenueStats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to aggregate revenue",
		})
	}

	return c.JSON(stats)
}

func (h *RevenueHandler) RunBilling(c *fiber.Ctx) error {
	result, err := h.runner.RunOnce(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Billing run failed",
		})
	}

	return c.JSON(result)
}
