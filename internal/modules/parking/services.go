package parking

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
	ErrSpotNotFound     = errors.New("parking spot not found")
	ErrBuildingRequired = errors.New("building_id is required")
	ErrNumberRequired   = errors.New("spot number is required")
	ErrRenterRequired   = errors.New("renter_id is required")
	ErrNegativeFee      = errors.New("monthly fee must not be negative")
	ErrSpotTaken        = errors.New("parking spot is already assigned")
	ErrSpotNotAssigned  = errors.New("parking spot is not assigned")
)

type SpotService struct {
	db *gorm.DB
}

func NewSpotService(db *gorm.DB) *SpotService {
	return &SpotService{db: db}
}

func (s *SpotService) Create(orgID uuid.UUID, req *CreateSpotRequest) (*Spot, error) {
	if req.BuildingID == uuid.Nil {
		return nil, ErrBuildingRequired
	}
	if strings.TrimSpace(req.Number) == "" {
		return nil, ErrNumberRequired
	}

	spot := Spot{
		ID:             uuid.New(),
		OrganizationID: orgID,
		BuildingID:     req.BuildingID,
		Number:         strings.TrimSpace(req.Number),
		Level:          req.Level,
	}
	if req.MonthlyFee != nil {
		fee := decimal.NewFromFloat(*req.MonthlyFee)
		if fee.IsNegative() {
			return nil, ErrNegativeFee
		}
		spot.MonthlyFee = fee.Round(2)
	}

	if err := s.db.Create(&spot).Error; err != nil {
		return nil, fmt.Errorf("failed to create parking spot: %w", err)
	}
	return &spot, nil
}

func (s *SpotService) List(orgID uuid.UUID, buildingID *uuid.UUID, freeOnly bool) ([]Spot, error) {
	query := s.db.Scopes(tenant.ForTenant(orgID))
	if buildingID != nil {
		query = query.Where("building_id = ?", *buildingID)
	}
	if freeOnly {
		query = query.Where("renter_id IS NULL")
	}

	var spots []Spot
	err := query.Order("number ASC").Find(&spots).Error
	return spots, err
}

func (s *SpotService) Get(orgID, id uuid.UUID) (*Spot, error) {
	var spot Spot
	if err := s.db.Scopes(tenant.ForTenant(orgID)).First(&spot, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpotNotFound
		}
		return nil, err
	}
	return &spot, nil
}

// Assign gives a free spot to a renter. Assigning a taken spot is a conflict;
// the existing assignment must be released first.
func (s *SpotService) Assign(orgID, id, renterID uuid.UUID) (*Spot, error) {
	if renterID == uuid.Nil {
		return nil, ErrRenterRequired
	}

	spot, err := s.Get(orgID, id)
	if err != nil {
		return nil, err
	}
	if spot.RenterID != nil {
		return nil, ErrSpotTaken
	}

	updates := map[string]interface{}{
		"renter_id":   renterID,
		"assigned_at": time.Now().UTC(),
	}
	if err := s.db.Model(&Spot{}).Scopes(tenant.ForTenant(orgID)).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(orgID, id)
}

func (s *SpotService) Release(orgID, id uuid.UUID) (*Spot, error) {
	spot, err := s.Get(orgID, id)
	if err != nil {
		return nil, err
	}
	if spot.RenterID == nil {
		return nil, ErrSpotNotAssigned
	}

	updates := map[string]interface{}{
		"renter_id":   nil,
		"assigned_at": nil,
	}
	if err := s.db.Model(&Spot{}).Scopes(tenant.ForTenant(orgID)).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(orgID, id)
}

func (s *SpotService) Delete(orgID, id uuid.UUID) error {
	result := s.db.Scopes(tenant.ForTenant(orgID)).Where("id = ?", id).Delete(&Spot{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSpotNotFound
	}
	return nil
}
