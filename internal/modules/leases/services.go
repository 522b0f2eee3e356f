package leases

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/estateops/backend/internal/tenant"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrRenterNotFound   = errors.New("renter not found")
	ErrLeaseNotFound    = errors.New("lease not found")
	ErrFullNameRequired = errors.New("full name is required")
	ErrUnitRequired     = errors.New("unit_id is required")
	ErrRenterRequired   = errors.New("renter_id is required")
	ErrNegativeRent     = errors.New("monthly rent must not be negative")
	ErrLeaseNotActive   = errors.New("lease is not active")
)

type RenterService struct {
	db *gorm.DB
}

func NewRenterService(db *gorm.DB) *RenterService {
	return &RenterService{db: db}
}

func (s *RenterService) Create(orgID uuid.UUID, req *CreateRenterRequest) (*Renter, error) {
	if strings.TrimSpace(req.FullName) == "" {
		return nil, ErrFullNameRequired
	}

	renter := Renter{
		ID:             uuid.New(),
		OrganizationID: orgID,
		FullName:       strings.TrimSpace(req.FullName),
		Email:          req.Email,
		Phone:          req.Phone,
		Notes:          req.Notes,
	}

	if err := s.db.Create(&renter).Error; err != nil {
		return nil, fmt.Errorf("failed to create renter: %w", err)
	}
	return &renter, nil
}

func (s *RenterService) List(orgID uuid.UUID, search string) ([]Renter, error) {
	query := s.db.Scopes(tenant.ForTenant(orgID))
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("(LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?)", like, like)
	}

	var renters []Renter
	err := query.Order("full_name ASC").Find(&renters).Error
	return renters, err
}

func (s *RenterService) Get(orgID, id uuid.UUID) (*Renter, error) {
	var renter Renter
	if err := s.db.Scopes(tenant.ForTenant(orgID)).First(&renter, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRenterNotFound
		}
		return nil, err
	}
	return &renter, nil
}

func (s *RenterService) Update(orgID, id uuid.UUID, req *UpdateRenterRequest) (*Renter, error) {
	updates := map[string]interface{}{}

	if req.FullName != nil {
		trimmed := strings.TrimSpace(*req.FullName)
		if trimmed == "" {
			return nil, ErrFullNameRequired
		}
		updates["full_name"] = trimmed
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) == 0 {
		return s.Get(orgID, id)
	}

	result := s.db.Model(&Renter{}).Scopes(tenant.ForTenant(orgID)).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRenterNotFound
	}
	return s.Get(orgID, id)
}

func (s *RenterService) Delete(orgID, id uuid.UUID) error {
	result := s.db.Scopes(tenant.ForTenant(orgID)).Where("id = ?", id).Delete(&Renter{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRenterNotFound
	}
	return nil
}

type LeaseService struct {
	db *gorm.DB
}

func NewLeaseService(db *gorm.DB) *LeaseService {
	return &LeaseService{db: db}
}

func (s *LeaseService) Create(orgID uuid.UUID, req *CreateLeaseRequest) (*Lease, error) {
	if req.UnitID == uuid.Nil {
		return nil, ErrUnitRequired
	}
	if req.RenterID == uuid.Nil {
		return nil, ErrRenterRequired
	}

	rent := decimal.NewFromFloat(req.MonthlyRent)
	if rent.IsNegative() {
		return nil, ErrNegativeRent
	}

	var renter Renter
	if err := s.db.Scopes(tenant.ForTenant(orgID)).First(&renter, "id = ?", req.RenterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRenterNotFound
		}
		return nil, err
	}

	lease := Lease{
		ID:             uuid.New(),
		OrganizationID: orgID,
		UnitID:         req.UnitID,
		RenterID:       req.RenterID,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		MonthlyRent:    rent.Round(2),
		Status:         LeaseStatusActive,
	}
	if lease.StartDate.IsZero() {
		lease.StartDate = time.Now().UTC()
	}
	if req.DepositAmount != nil {
		deposit := decimal.NewFromFloat(*req.DepositAmount)
		if deposit.IsNegative() {
			return nil, ErrNegativeRent
		}
		lease.DepositAmount = deposit.Round(2)
	}

	if err := s.db.Create(&lease).Error; err != nil {
		return nil, fmt.Errorf("failed to create lease: %w", err)
	}
	return &lease, nil
}

func (s *LeaseService) List(orgID uuid.UUID, status string, unitID, renterID *uuid.UUID) ([]Lease, error) {
	query := s.db.Scopes(tenant.ForTenant(orgID))
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if unitID != nil {
		query = query.Where("unit_id = ?", *unitID)
	}
	if renterID != nil {
		query = query.Where("renter_id = ?", *renterID)
	}

	var leases []Lease
	err := query.Order("start_date DESC").Find(&leases).Error
	return leases, err
}

func (s *LeaseService) Get(orgID, id uuid.UUID) (*Lease, error) {
	var lease Lease
	if err := s.db.Scopes(tenant.ForTenant(orgID)).First(&lease, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaseNotFound
		}
		return nil, err
	}
	return &lease, nil
}

func (s *LeaseService) Update(orgID, id uuid.UUID, req *UpdateLeaseRequest) (*Lease, error) {
	updates := map[string]interface{}{}

	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}
	if req.MonthlyRent != nil {
		rent := decimal.NewFromFloat(*req.MonthlyRent)
		if rent.IsNegative() {
			return nil, ErrNegativeRent
		}
		updates["monthly_rent"] = rent.Round(2)
	}
	if req.DepositAmount != nil {
		deposit := decimal.NewFromFloat(*req.DepositAmount)
		if deposit.IsNegative() {
			return nil, ErrNegativeRent
		}
		updates["deposit_amount"] = deposit.Round(2)
	}

	if len(updates) == 0 {
		return s.Get(orgID, id)
	}

	result := s.db.Model(&Lease{}).Scopes(tenant.ForTenant(orgID)).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrLeaseNotFound
	}
	return s.Get(orgID, id)
}

// End closes an active lease as ended or terminated. The end date defaults
// to now when not supplied.
func (s *LeaseService) End(orgID, id uuid.UUID, req *EndLeaseRequest) (*Lease, error) {
	lease, err := s.Get(orgID, id)
	if err != nil {
		return nil, err
	}
	if lease.Status != LeaseStatusActive {
		return nil, ErrLeaseNotActive
	}

	end := time.Now().UTC()
	if req.EndDate != nil {
		end = *req.EndDate
	}

	status := LeaseStatusEnded
	if req.Terminated {
		status = LeaseStatusTerminated
	}

	updates := map[string]interface{}{
		"status":   status,
		"end_date": end,
	}
	if err := s.db.Model(&Lease{}).Scopes(tenant.ForTenant(orgID)).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(orgID, id)
}
