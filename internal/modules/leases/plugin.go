package leases

import (
	"github.com/estateops/backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LeasesPlugin struct{}

func New() *LeasesPlugin {
	return &LeasesPlugin{}
}

func (p *LeasesPlugin) ID() string { return "leases" }

func (p *LeasesPlugin) Models() []interface{} {
	return []interface{}{
		&Renter{},
		&Lease{},
	}
}

func (p *LeasesPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	renterService := NewRenterService(db)
	leaseService := NewLeaseService(db)
	handler := NewLeaseHandler(renterService, leaseService)

	// Renter routes
	router.Post("/renters", handler.CreateRenter)
	router.Get("/renters", handler.ListRenters)
	router.Get("/renters/:id", handler.GetRenter)
	router.Put("/renters/:id", handler.UpdateRenter)
	router.Delete("/renters/:id", handler.DeleteRenter)

	// Lease routes
	router.Post("/leases", handler.CreateLease)
	router.Get("/leases", handler.ListLeases)
	router.Get("/leases/:id", handler.GetLease)
	router.Put("/leases/:id", handler.UpdateLease)
	router.Post("/leases/:id/end", handler.EndLease)
}
