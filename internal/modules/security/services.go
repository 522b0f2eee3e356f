package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/estateops/backend/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrIncidentNotFound = errors.New("incident not found")
	ErrTitleRequired    = errors.New("title is required")
	ErrInvalidSeverity  = errors.New("severity must be low, medium, high, or critical")
	ErrInvalidStatus    = errors.New("status must be open or closed")
	ErrAlreadyClosed    = errors.New("incident is already closed")
)

type IncidentService struct {
	db *gorm.DB
}

func NewIncidentService(db *gorm.DB) *IncidentService {
	return &IncidentService{db: db}
}

func (s *IncidentService) Create(orgID uuid.UUID, req *CreateIncidentRequest) (*Incident, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}

	severity := req.Severity
	if severity == "" {
		severity = SeverityLow
	}
	if !validSeverity(severity) {
		return nil, ErrInvalidSeverity
	}

	occurredAt := time.Now().UTC()
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	incident := Incident{
		ID:             uuid.New(),
		OrganizationID: orgID,
		BuildingID:     req.BuildingID,
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		Severity:       severity,
		Status:         StatusOpen,
		ReportedBy:     req.ReportedBy,
		OccurredAt:     occurredAt,
	}

	if err := s.db.Create(&incident).Error; err != nil {
		return nil, fmt.Errorf("failed to create incident: %w", err)
	}
	return &incident, nil
}

func (s *IncidentService) List(orgID uuid.UUID, status, severity string, buildingID *uuid.UUID) ([]Incident, error) {
	query := s.db.Scopes(tenant.ForTenant(orgID))
	if status != "" {
		if status != StatusOpen && status != StatusClosed {
			return nil, ErrInvalidStatus
		}
		query = query.Where("status = ?", status)
	}
	if severity != "" {
		if !validSeverity(severity) {
			return nil, ErrInvalidSeverity
		}
		query = query.Where("severity = ?", severity)
	}
	if buildingID != nil {
		query = query.Where("building_id = ?", *buildingID)
	}

	var incidents []Incident
	err := query.Order("occurred_at DESC").Find(&incidents).Error
	return incidents, err
}

func (s *IncidentService) Get(orgID, id uuid.UUID) (*Incident, error) {
	var incident Incident
	if err := s.db.Scopes(tenant.ForTenant(orgID)).First(&incident, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIncidentNotFound
		}
		return nil, err
	}
	return &incident, nil
}

// Close settles an open incident with an optional closure note.
func (s *IncidentService) Close(orgID, id uuid.UUID, req *CloseIncidentRequest) (*Incident, error) {
	incident, err := s.Get(orgID, id)
	if err != nil {
		return nil, err
	}
	if incident.Status != StatusOpen {
		return nil, ErrAlreadyClosed
	}

	updates := map[string]interface{}{
		"status":       StatusClosed,
		"closure_note": req.ClosureNote,
		"closed_at":    time.Now().UTC(),
	}
	if err := s.db.Model(&Incident{}).Scopes(tenant.ForTenant(orgID)).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(orgID, id)
}

func (s *IncidentService) Delete(orgID, id uuid.UUID) error {
	result := s.db.Scopes(tenant.ForTenant(orgID)).Where("id = ?", id).Delete(&Incident{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrIncidentNotFound
	}
	return nil
}

func validSeverity(s string) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}
