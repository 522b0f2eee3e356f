package workorders

import (
	"github.com/estateops/backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type WorkOrdersPlugin struct{}

func New() *WorkOrdersPlugin {
	return &WorkOrdersPlugin{}
}

func (p *WorkOrdersPlugin) ID() string { return "workorders" }

func (p *WorkOrdersPlugin) Models() []interface{} {
	return []interface{}{
		&WorkOrder{},
	}
}

func (p *WorkOrdersPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	service := NewWorkOrderService(db)
	handler := NewWorkOrderHandler(service)

	router.Post("/workorders", handler.Create)
	router.Get("/workorders", handler.List)
	router.Get("/workorders/:id", handler.Get)
	router.Put("/workorders/:id", handler.Update)
	router.Post("/workorders/:id/transition", handler.Transition)
	router.Delete("/workorders/:id", handler.Delete)
}
