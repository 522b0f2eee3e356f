package tenant

import (
	"fmt"
	"sync"

	"github.com/estateops/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Registry is an in-memory cache of organizations used by the tenant
// middleware to validate incoming org identifiers without a DB round trip
// per request. Register must be called when a new organization is created.
type Registry struct {
	mu   sync.RWMutex
	orgs map[uuid.UUID]*models.Organization
}

func NewRegistry() *Registry {
	return &Registry{
		orgs: make(map[uuid.UUID]*models.Organization),
	}
}

// LoadFromDB populates the registry from the organizations table.
func LoadFromDB(db *gorm.DB) (*Registry, error) {
	var orgs []models.Organization
	if err := db.Find(&orgs).Error; err != nil {
		return nil, fmt.Errorf("failed to load organizations: %w", err)
	}

	registry := NewRegistry()
	for i := range orgs {
		registry.Register(&orgs[i])
	}
	return registry, nil
}

func (r *Registry) Register(org *models.Organization) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orgs[org.ID] = org
}

func (r *Registry) Get(orgID uuid.UUID) *models.Organization {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.orgs[orgID]
}

func (r *Registry) Exists(orgID uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	org, ok := r.orgs[orgID]
	return ok && org.Active
}

func (r *Registry) All() []*models.Organization {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*models.Organization, 0, len(r.orgs))
	for _, org := range r.orgs {
		result = append(result, org)
	}
	return result
}
