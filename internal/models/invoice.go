package models

import (
	"time"

	"github.com/estateops/backend/internal/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice statuses.
const (
	InvoiceStatusIssued = "issued"
	InvoiceStatusPaid   = "paid"
	InvoiceStatusVoid   = "void"
)

// Invoice is a charge record issued for one billing period of a
// subscription. Document rendering and payment collection happen outside
// this system; this is the ledger row the back office shows.
type Invoice struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID       `gorm:"type:uuid;not null;index" json:"organization_id"`
	SubscriptionID uuid.UUID       `gorm:"type:uuid;not null;index" json:"subscription_id"`
	Number         string          `gorm:"size:50;uniqueIndex;not null" json:"number"`
	Amount         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Currency       string          `gorm:"size:3;not null;default:'USD'" json:"currency"`
	PeriodStart    time.Time       `gorm:"not null" json:"period_start"`
	PeriodEnd      time.Time       `gorm:"not null" json:"period_end"`
	Status         string          `gorm:"size:20;not null;default:'issued';index" json:"status"`
	IssuedAt       time.Time       `gorm:"not null" json:"issued_at"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoiceForPeriod builds an issued invoice covering one billing period
// of the subscription at its current price.
func NewInvoiceForPeriod(sub *Subscription, periodStart, periodEnd, issuedAt time.Time) Invoice {
	id := uuid.New()
	return Invoice{
		ID:             id,
		OrganizationID: sub.OrganizationID,
		SubscriptionID: sub.ID,
		Number:         invoiceNumber(issuedAt, id),
		Amount:         sub.Price,
		Currency:       currencyOrDefault(sub.Currency),
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		Status:         InvoiceStatusIssued,
		IssuedAt:       issuedAt,
	}
}

func currencyOrDefault(c string) string {
	if c == "" {
		return billing.DefaultCurrency
	}
	return c
}

// invoiceNumber is unique per invoice and sortable by issue date:
// INV-YYYYMM-<first uuid block>.
func invoiceNumber(issuedAt time.Time, id uuid.UUID) string {
	return "INV-" + issuedAt.UTC().Format("200601") + "-" + id.String()[:8]
}
