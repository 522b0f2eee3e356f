package complaints

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
	ErrComplaintNotFound = errors.New("complaint not found")
	ErrSubjectRequired   = errors.New("subject is required")
	ErrAlreadySettled    = errors.New("complaint is already settled")
	ErrInvalidStatus     = errors.New("status must be open, resolved, or dismissed")
)

type ComplaintService struct {
	db *gorm.DB
}

func NewComplaintService(db *gorm.DB) *ComplaintService {
	return &ComplaintService{db: db}
}

func (s *ComplaintService) Create(orgID uuid.UUID, req *CreateComplaintRequest) (*Complaint, error) {
	if strings.TrimSpace(req.Subject) == "" {
		return nil, ErrSubjectRequired
	}

	complaint := Complaint{
		ID:             uuid.New(),
		OrganizationID: orgID,
		UnitID:         req.UnitID,
		RenterID:       req.RenterID,
		Subject:        strings.TrimSpace(req.Subject),
		Body:           req.Body,
		Status:         StatusOpen,
	}

	if err := s.db.Create(&complaint).Error; err != nil {
		return nil, fmt.Errorf("failed to create complaint: %w", err)
	}
	return &complaint, nil
}

func (s *ComplaintService) List(orgID uuid.UUID, status string) ([]Complaint, error) {
	query := s.db.Scopes(tenant.ForTenant(orgID))
	if status != "" {
		switch status {
		case StatusOpen, StatusResolved, StatusDismissed:
		default:
			return nil, ErrInvalidStatus
		}
		query = query.Where("status = ?", status)
	}

	var complaints []Complaint
	err := query.Order("created_at DESC").Find(&complaints).Error
	return complaints, err
}

func (s *ComplaintService) Get(orgID, id uuid.UUID) (*Complaint, error) {
	var complaint Complaint
	if err := s.db.Scopes(tenant.ForTenant(orgID)).First(&complaint, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}
	return &complaint, nil
}

// Resolve settles an open complaint as resolved or dismissed.
func (s *ComplaintService) Resolve(orgID, id uuid.UUID, req *ResolveComplaintRequest) (*Complaint, error) {
	complaint, err := s.Get(orgID, id)
	if err != nil {
		return nil, err
	}
	if complaint.Status != StatusOpen {
		return nil, ErrAlreadySettled
	}

	status := StatusResolved
	if req.Dismissed {
		status = StatusDismissed
	}

	updates := map[string]interface{}{
		"status":          status,
		"resolution_note": req.ResolutionNote,
		"resolved_at":     time.Now().UTC(),
	}
	if err := s.db.Model(&Complaint{}).Scopes(tenant.ForTenant(orgID)).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(orgID, id)
}

func (s *ComplaintService) Delete(orgID, id uuid.UUID) error {
	result := s.db.Scopes(tenant.ForTenant(orgID)).Where("id = ?", id).Delete(&Complaint{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrComplaintNotFound
	}
	return nil
}
