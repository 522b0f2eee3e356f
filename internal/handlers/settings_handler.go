package handlers

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/estateops/backend/internal/dto"
	"github.com/estateops/backend/internal/models"
	"github.com/estateops/backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SettingsHandler serves per-organization configuration for the back-office
// UI. Reads are tenant-scoped; writes are admin only.
type SettingsHandler struct {
	db       *gorm.DB
	registry *tenant.Registry
}

func NewSettingsHandler(db *gorm.DB, registry *tenant.Registry) *SettingsHandler {
	return &SettingsHandler{db: db, registry: registry}
}

// GetSettings returns the calling organization's settings as a typed map.
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	orgID := tenant.GetOrgID(c)
	if orgID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Organization context is required",
		})
	}

	var settings []models.Setting
	if err := h.db.Scopes(tenant.ForTenant(orgID)).Find(&settings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch settings",
		})
	}

	result := make(map[string]interface{})
	for _, setting := range settings {
		var value interface{}
		switch setting.Type {
		case "bool":
			value, _ = strconv.ParseBool(setting.Value)
		case "int":
			value, _ = strconv.Atoi(setting.Value)
		case "json":
			json.Unmarshal([]byte(setting.Value), &value)
		default:
			value = setting.Value
		}
		result[setting.Key] = value
	}

	return c.JSON(result)
}

// SetSettingKey creates or updates one setting for an organization.
func (h *SettingsHandler) SetSettingKey(c *fiber.Ctx) error {
	orgID, err := uuid.Parse(c.Params("org_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid organization id",
		})
	}

	key := c.Params("key", "")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Key parameter is required",
		})
	}

	var payload struct {
		Value string `json:"value"`
		Type  string `json:"type"` // string, bool, int, json
	}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if payload.Value == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Value is required",
		})
	}
	if payload.Type == "" {
		payload.Type = "string"
	}

	if !h.registry.Exists(orgID) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Unknown organization: " + orgID.String(),
		})
	}

	var setting models.Setting
	err = h.db.Where("organization_id = ? AND key = ?", orgID, key).First(&setting).Error
	if err == gorm.ErrRecordNotFound {
		setting = models.Setting{
			ID:             uuid.New(),
			OrganizationID: orgID,
			Key:            key,
			Value:          payload.Value,
			Type:           payload.Type,
		}
		if err := h.db.Create(&setting).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to create setting",
			})
		}
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch setting",
		})
	} else {
		setting.Value = payload.Value
		setting.Type = payload.Type
		setting.UpdatedAt = time.Now()
		if err := h.db.Save(&setting).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to update setting",
			})
		}
	}

	return c.JSON(setting)
}

// DeleteSettingKey removes one setting for an organization.
func (h *SettingsHandler) DeleteSettingKey(c *fiber.Ctx) error {
	orgID, err := uuid.Parse(c.Params("org_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid organization id",
		})
	}

	key := c.Params("key", "")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Key parameter is required",
		})
	}

	result := h.db.Where("organization_id = ? AND key = ?", orgID, key).Delete(&models.Setting{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete setting",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Setting not found",
		})
	}

	return c.JSON(fiber.Map{"message": "Setting deleted"})
}
