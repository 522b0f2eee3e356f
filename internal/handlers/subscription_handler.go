package handlers

import (
	"errors"

	"github.com/estateops/backend/internal/billing"
	"github.com/estateops/backend/internal/dto"
	"github.com/estateops/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SubscriptionHandler struct {
	service *services.SubscriptionService
}

func NewSubscriptionHandler(service *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

func (h *SubscriptionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	sub, err := h.service.CreateSubscription(c.Context(), &req)
	if err != nil {
		return subscriptionError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(sub)
}

func (h *SubscriptionHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Subscription not found",
		})
	}

	sub, err := h.service.GetSubscription(c.Context(), id)
	if err != nil {
		return subscriptionError(c, err)
	}

	return c.JSON(sub)
}

func (h *SubscriptionHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Subscription not found",
		})
	}

	var req dto.UpdateSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	sub, err := h.service.UpdateSubscription(c.Context(), id, &req)
	if err != nil {
		return subscriptionError(c, err)
	}

	return c.JSON(sub)
}

func (h *SubscriptionHandler) Cancel(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Subscription not found",
		})
	}

	var req dto.CancelSubscriptionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid request body",
			})
		}
	}

	sub, err := h.service.CancelSubscription(c.Context(), id, req.Reason)
	if err != nil {
		return subscriptionError(c, err)
	}

	return c.JSON(sub)
}

func (h *SubscriptionHandler) ListByOrganization(c *fiber.Ctx) error {
	orgID, err := uuid.Parse(c.Params("org_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid organization id",
		})
	}

	subs, err := h.service.ListByOrganization(c.Context(), orgID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list subscriptions",
		})
	}

	return c.JSON(subs)
}

func (h *SubscriptionHandler) Quote(c *fiber.Ctx) error {
	var req dto.QuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	result, err := h.service.Quote(&req)
	if err != nil {
		return subscriptionError(c, err)
	}

	return c.JSON(result)
}

// subscriptionError maps service and billing sentinels to HTTP statuses.
// Anything unrecognized is treated as a client error only if it came from
// input validation; unknown failures stay 500.
func subscriptionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrSubscriptionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, billing.ErrInvalidDiscount),
		errors.Is(err, billing.ErrNegativeBasePrice),
		errors.Is(err, billing.ErrPlanNotConfigured),
		errors.Is(err, billing.ErrTrialLength):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, billing.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}
