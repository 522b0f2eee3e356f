package workorders

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
	ErrWorkOrderNotFound = errors.New("work order not found")
	ErrTitleRequired     = errors.New("title is required")
	ErrInvalidPriority   = errors.New("priority must be low, medium, high, or urgent")
	ErrInvalidStatus     = errors.New("status must be open, in_progress, done, or cancelled")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// transitions lists the allowed next states per status. Done and cancelled
// are terminal.
var transitions = map[string][]string{
	StatusOpen:       {StatusInProgress, StatusDone, StatusCancelled},
	StatusInProgress: {StatusDone, StatusCancelled},
}

func validPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func validStatus(s string) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusDone, StatusCancelled:
		return true
	}
	return false
}

type WorkOrderService struct {
	db *gorm.DB
}

func NewWorkOrderService(db *gorm.DB) *WorkOrderService {
	return &WorkOrderService{db: db}
}

func (s *WorkOrderService) Create(orgID uuid.UUID, req *CreateWorkOrderRequest) (*WorkOrder, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !validPriority(priority) {
		return nil, ErrInvalidPriority
	}

	order := WorkOrder{
		ID:             uuid.New(),
		OrganizationID: orgID,
		BuildingID:     req.BuildingID,
		UnitID:         req.UnitID,
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		Priority:       priority,
		Status:         StatusOpen,
		AssignedTo:     req.AssignedTo,
	}

	if err := s.db.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to create work order: %w", err)
	}
	return &order, nil
}

func (s *WorkOrderService) List(orgID uuid.UUID, status, priority string, buildingID *uuid.UUID) ([]WorkOrder, error) {
	query := s.db.Scopes(tenant.ForTenant(orgID))
	if status != "" {
		if !validStatus(status) {
			return nil, ErrInvalidStatus
		}
		query = query.Where("status = ?", status)
	}
	if priority != "" {
		if !validPriority(priority) {
			return nil, ErrInvalidPriority
		}
		query = query.Where("priority = ?", priority)
	}
	if buildingID != nil {
		query = query.Where("building_id = ?", *buildingID)
	}

	var orders []WorkOrder
	err := query.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (s *WorkOrderService) Get(orgID, id uuid.UUID) (*WorkOrder, error) {
	var order WorkOrder
	if err := s.db.Scopes(tenant.ForTenant(orgID)).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *WorkOrderService) Update(orgID, id uuid.UUID, req *UpdateWorkOrderRequest) (*WorkOrder, error) {
	updates := map[string]interface{}{}

	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if trimmed == "" {
			return nil, ErrTitleRequired
		}
		updates["title"] = trimmed
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Priority != nil {
		if !validPriority(*req.Priority) {
			return nil, ErrInvalidPriority
		}
		updates["priority"] = *req.Priority
	}
	if req.AssignedTo != nil {
		updates["assigned_to"] = *req.AssignedTo
	}

	if len(updates) == 0 {
		return s.Get(orgID, id)
	}

	result := s.db.Model(&WorkOrder{}).Scopes(tenant.ForTenant(orgID)).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrWorkOrderNotFound
	}
	return s.Get(orgID, id)
}

// Transition moves a work order along the status flow. CompletedAt is set
// when entering done and cleared otherwise.
func (s *WorkOrderService) Transition(orgID, id uuid.UUID, target string) (*WorkOrder, error) {
	if !validStatus(target) {
		return nil, ErrInvalidStatus
	}

	order, err := s.Get(orgID, id)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range transitions[order.Status] {
		if next == target {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, target)
	}

	updates := map[string]interface{}{"status": target}
	if target == StatusDone {
		updates["completed_at"] = time.Now().UTC()
	}

	if err := s.db.Model(&WorkOrder{}).Scopes(tenant.ForTenant(orgID)).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(orgID, id)
}

func (s *WorkOrderService) Delete(orgID, id uuid.UUID) error {
	result := s.db.Scopes(tenant.ForTenant(orgID)).Where("id = ?", id).Delete(&WorkOrder{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWorkOrderNotFound
	}
	return nil
}
