package parking

import (
	"github.com/estateops/backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ParkingPlugin struct{}

func New() *ParkingPlugin {
	return &ParkingPlugin{}
}

func (p *ParkingPlugin) ID() string { return "parking" }

func (p *ParkingPlugin) Models() []interface{} {
	return []interface{}{
		&Spot{},
	}
}

func (p *ParkingPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	service := NewSpotService(db)
	handler := NewSpotHandler(service)

	router.Post("/parking", handler.Create)
	router.Get("/parking", handler.List)
	router.Get("/parking/:id", handler.Get)
	router.Post("/parking/:id/assign", handler.Assign)
	router.Post("/parking/:id/release", handler.Release)
	router.Delete("/parking/:id", handler.Delete)
}
