package security

import (
	"github.com/estateops/backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SecurityPlugin struct{}

func New() *SecurityPlugin {
	return &SecurityPlugin{}
}

func (p *SecurityPlugin) ID() string { return "security" }

func (p *SecurityPlugin) Models() []interface{} {
	return []interface{}{
		&Incident{},
	}
}

func (p *SecurityPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	service := NewIncidentService(db)
	handler := NewIncidentHandler(service)

	router.Post("/incidents", handler.Create)
	router.Get("/incidents", handler.List)
	router.Get("/incidents/:id", handler.Get)
	router.Post("/incidents/:id/close", handler.Close)
	router.Delete("/incidents/:id", handler.Delete)
}
