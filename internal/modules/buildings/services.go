package buildings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/estateops/backend/internal/tenant"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrBuildingNotFound = errors.New("building not found")
	ErrUnitNotFound     = errors.New("unit not found")
	ErrNameRequired     = errors.New("name is required")
	ErrAddressRequired  = errors.New("address is required")
	ErrNumberRequired   = errors.New("unit number is required")
	ErrNegativeRent     = errors.New("monthly rent must not be negative")
)

type BuildingService struct {
	db *gorm.DB
}

func NewBuildingService(db *gorm.DB) *BuildingService {
	return &BuildingService{db: db}
}

func (s *BuildingService) Create(orgID uuid.UUID, req *CreateBuildingRequest) (*Building, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Address) == "" {
		return nil, ErrAddressRequired
	}

	building := Building{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Name:           strings.TrimSpace(req.Name),
		Address:        strings.TrimSpace(req.Address),
		City:           req.City,
		PostalCode:     req.PostalCode,
		YearBuilt:      req.YearBuilt,
		Notes:          req.Notes,
	}

	if err := s.db.Create(&building).Error; err != nil {
		return nil, fmt.Errorf("failed to create building: %w", err)
	}
	return &building, nil
}

func (s *BuildingService) List(orgID uuid.UUID, page, limit int, search string) (*BuildingListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := s.db.Model(&Building{}).Scopes(tenant.ForTenant(orgID))
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(address) LIKE ?)", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var buildings []Building
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&buildings).Error; err != nil {
		return nil, err
	}

	return &BuildingListResponse{
		Buildings: buildings,
		Total:     total,
		Page:      page,
		Limit:     limit,
	}, nil
}

func (s *BuildingService) Get(orgID, id uuid.UUID) (*Building, error) {
	var building Building
	if err := s.db.Scopes(tenant.ForTenant(orgID)).First(&building, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBuildingNotFound
		}
		return nil, err
	}
	return &building, nil
}

func (s *BuildingService) Update(orgID, id uuid.UUID, req *UpdateBuildingRequest) (*Building, error) {
	updates := map[string]interface{}{}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return nil, ErrNameRequired
		}
		updates["name"] = trimmed
	}
	if req.Address != nil {
		trimmed := strings.TrimSpace(*req.Address)
		if trimmed == "" {
			return nil, ErrAddressRequired
		}
		updates["address"] = trimmed
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.PostalCode != nil {
		updates["postal_code"] = *req.PostalCode
	}
	if req.YearBuilt != nil {
		updates["year_built"] = *req.YearBuilt
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) == 0 {
		return s.Get(orgID, id)
	}

	result := s.db.Model(&Building{}).Scopes(tenant.ForTenant(orgID)).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrBuildingNotFound
	}
	return s.Get(orgID, id)
}

func (s *BuildingService) Delete(orgID, id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(tenant.ForTenant(orgID)).Where("building_id = ?", id).Delete(&Unit{}).Error; err != nil {
			return err
		}
		result := tx.Scopes(tenant.ForTenant(orgID)).Where("id = ?", id).Delete(&Building{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrBuildingNotFound
		}
		return nil
	})
}

type UnitService struct {
	db *gorm.DB
}

func NewUnitService(db *gorm.DB) *UnitService {
	return &UnitService{db: db}
}

func (s *UnitService) Create(orgID, buildingID uuid.UUID, req *CreateUnitRequest) (*Unit, error) {
	if strings.TrimSpace(req.Number) == "" {
		return nil, ErrNumberRequired
	}

	var building Building
	if err := s.db.Scopes(tenant.ForTenant(orgID)).First(&building, "id = ?", buildingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBuildingNotFound
		}
		return nil, err
	}

	unit := Unit{
		ID:             uuid.New(),
		OrganizationID: orgID,
		BuildingID:     buildingID,
		Number:         strings.TrimSpace(req.Number),
		Floor:          req.Floor,
		Bedrooms:       req.Bedrooms,
		AreaSqm:        req.AreaSqm,
	}
	if unit.Bedrooms < 1 {
		unit.Bedrooms = 1
	}
	if req.MonthlyRent != nil {
		rent := decimal.NewFromFloat(*req.MonthlyRent)
		if rent.IsNegative() {
			return nil, ErrNegativeRent
		}
		unit.MonthlyRent = rent.Round(2)
	}

	if err := s.db.Create(&unit).Error; err != nil {
		return nil, fmt.Errorf("failed to create unit: %w", err)
	}
	return &unit, nil
}

func (s *UnitService) ListByBuilding(orgID, buildingID uuid.UUID) ([]Unit, error) {
	var units []Unit
	err := s.db.Scopes(tenant.ForTenant(orgID)).
		Where("building_id = ?", buildingID).
		Order("number ASC").
		Find(&units).Error
	return units, err
}

func (s *UnitService) Get(orgID, id uuid.UUID) (*Unit, error) {
	var unit Unit
	if err := s.db.Scopes(tenant.ForTenant(orgID)).First(&unit, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, err
	}
	return &unit, nil
}

func (s *UnitService) Update(orgID, id uuid.UUID, req *UpdateUnitRequest) (*Unit, error) {
	updates := map[string]interface{}{}

	if req.Number != nil {
		trimmed := strings.TrimSpace(*req.Number)
		if trimmed == "" {
			return nil, ErrNumberRequired
		}
		updates["number"] = trimmed
	}
	if req.Floor != nil {
		updates["floor"] = *req.Floor
	}
	if req.Bedrooms != nil && *req.Bedrooms >= 1 {
		updates["bedrooms"] = *req.Bedrooms
	}
	if req.AreaSqm != nil {
		updates["area_sqm"] = *req.AreaSqm
	}
	if req.MonthlyRent != nil {
		rent := decimal.NewFromFloat(*req.MonthlyRent)
		if rent.IsNegative() {
			return nil, ErrNegativeRent
		}
		updates["monthly_rent"] = rent.Round(2)
	}
	if req.Occupied != nil {
		updates["occupied"] = *req.Occupied
	}

	if len(updates) == 0 {
		return s.Get(orgID, id)
	}

	result := s.db.Model(&Unit{}).Scopes(tenant.ForTenant(orgID)).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrUnitNotFound
	}
	return s.Get(orgID, id)
}

func (s *UnitService) Delete(orgID, id uuid.UUID) error {
	result := s.db.Scopes(tenant.ForTenant(orgID)).Where("id = ?", id).Delete(&Unit{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUnitNotFound
	}
	return nil
}
