package buildings

import (
	"github.com/estateops/backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BuildingsPlugin struct{}

func New() *BuildingsPlugin {
	return &BuildingsPlugin{}
}

func (p *BuildingsPlugin) ID() string { return "buildings" }

func (p *BuildingsPlugin) Models() []interface{} {
	return []interface{}{
		&Building{},
		&Unit{},
	}
}

func (p *BuildingsPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	buildingService := NewBuildingService(db)
	unitService := NewUnitService(db)
	handler := NewBuildingHandler(buildingService, unitService)

	// Building routes
	router.Post("/buildings", handler.CreateBuilding)
	router.Get("/buildings", handler.ListBuildings)
	router.Get("/buildings/:id", handler.GetBuilding)
	router.Put("/buildings/:id", handler.UpdateBuilding)
	router.Delete("/buildings/:id", handler.DeleteBuilding)

	// Unit routes
	router.Post("/buildings/:id/units", handler.CreateUnit)
	router.Get("/buildings/:id/units", handler.ListUnits)
	router.Get("/units/:id", handler.GetUnit)
	router.Put("/units/:id", handler.UpdateUnit)
	router.Delete("/units/:id", handler.DeleteUnit)
}
