package repository

import (
	"context"
	"errors"

	"github.com/estateops/backend/internal/models"
	"github.com/google/uuid"
)

// ErrNotFound signals that no subscription row resolves to the given id.
var ErrNotFound = errors.New("subscription not found")

// SubscriptionRepository defines access for subscription persistence. The
// lifecycle service depends on this interface so tests can substitute an
// in-memory fake.
type SubscriptionRepository interface {
	Insert(ctx context.Context, sub *models.Subscription) error
	Update(ctx context.Context, sub *models.Subscription) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Subscription, error)
	FindByOrganization(ctx context.Context, orgID uuid.UUID) ([]models.Subscription, error)
	FindAll(ctx context.Context) ([]models.Subscription, error)
}
