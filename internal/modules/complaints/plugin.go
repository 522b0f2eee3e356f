package complaints

import (
	"github.com/estateops/backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ComplaintsPlugin struct{}

func New() *ComplaintsPlugin {
	return &ComplaintsPlugin{}
}

func (p *ComplaintsPlugin) ID() string { return "complaints" }

func (p *ComplaintsPlugin) Models() []interface{} {
	return []interface{}{
		&Complaint{},
	}
}

func (p *ComplaintsPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	service := NewComplaintService(db)
	handler := NewComplaintHandler(service)

	router.Post("/complaints", handler.Create)
	router.Get("/complaints", handler.List)
	router.Get("/complaints/:id", handler.Get)
	router.Post("/complaints/:id/resolve", handler.Resolve)
	router.Delete("/complaints/:id", handler.Delete)
}
