package repository

import (
	"context"
	"errors"

	"github.com/estateops/backend/internal/models"
	"github.com/google/uuid"
)

// ErrInvoiceNotFound signals that no invoice row resolves to the given id.
var ErrInvoiceNotFound = errors.New("invoice not found")

// InvoiceRepository defines access for invoice persistence. The billing
// runner writes through this interface so tests can capture issued invoices.
type InvoiceRepository interface {
	Insert(ctx context.Context, inv *models.Invoice) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	FindByOrganization(ctx context.Context, orgID uuid.UUID) ([]models.Invoice, error)
	FindAll(ctx context.Context) ([]models.Invoice, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}
