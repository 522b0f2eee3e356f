package middleware

import (
	"strings"

	"github.com/estateops/backend/internal/dto"
	"github.com/estateops/backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Paths that don't require tenant identification.
var tenantSkipPaths = []string{
	"/api/health",
	"/api/admin/", // platform admin endpoints address organizations explicitly
}

// TenantMiddleware resolves the organization from JWT claims or the
// X-Org-ID header and stores the UUID in context locals.
func TenantMiddleware(registry *tenant.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()

		for _, skip := range tenantSkipPaths {
			if strings.HasPrefix(path, skip) {
				return c.Next()
			}
		}

		// 1. Try JWT claim (already authenticated)
		if token, ok := c.Locals("user").(*jwt.Token); ok {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if raw, ok := claims["org_id"].(string); ok && raw != "" {
					orgID, err := uuid.Parse(raw)
					if err == nil {
						c.Locals("org_id", orgID)
						return c.Next()
					}
				}
			}
		}

		// 2. Try X-Org-ID header
		if raw := c.Get("X-Org-ID"); raw != "" {
			orgID, err := uuid.Parse(raw)
			if err != nil || !registry.Exists(orgID) {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
					Error:   true,
					Message: "Invalid X-Org-ID: " + raw,
				})
			}
			c.Locals("org_id", orgID)
			return c.Next()
		}

		// 3. Missing organization
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "X-Org-ID header is required",
		})
	}
}
