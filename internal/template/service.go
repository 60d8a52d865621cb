package template

import (
	"fmt"

	"droneops/internal/catalog"
	"droneops/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service maintains the compatibility templates. The derived name is
// recomputed on every save; a duplicate name among non-deleted templates
// (excluding the one being edited) is rejected.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ===== Power templates =====

// ListPowerTemplates returns non-deleted power templates.
func (s *Service) ListPowerTemplates() ([]PowerTemplate, error) {
	var templates []PowerTemplate
	err := s.db.Where("is_deleted = ?", false).Order("name ASC").Find(&templates).Error
	return templates, err
}

func (s *Service) GetPowerTemplate(id uuid.UUID) (*PowerTemplate, error) {
	var t PowerTemplate
	if err := s.db.First(&t, "id = ?", id).Error; err != nil {
		return nil, common.WrapNotFound(err, "power template")
	}
	return &t, nil
}

// CreatePowerTemplate derives the name and saves a new template.
func (s *Service) CreatePowerTemplate(connector, configuration string, capacity int) (*PowerTemplate, error) {
	t := PowerTemplate{Connector: connector, Configuration: configuration, Capacity: capacity}
	if err := s.validatePower(&t); err != nil {
		return nil, err
	}
	t.Name = t.DeriveName()
	if err := s.checkDuplicateName(&PowerTemplate{}, t.Name, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.db.Create(&t).Error; err != nil {
		return nil, fmt.Errorf("failed to create power template: %w", err)
	}
	return &t, nil
}

// UpdatePowerTemplate re-derives the name from the new field values.
func (s *Service) UpdatePowerTemplate(id uuid.UUID, connector, configuration string, capacity int) (*PowerTemplate, error) {
	var t PowerTemplate
	if err := s.db.Where("is_deleted = ?", false).First(&t, "id = ?", id).Error; err != nil {
		return nil, common.WrapNotFound(err, "power template")
	}
	t.Connector = connector
	t.Configuration = configuration
	t.Capacity = capacity
	if err := s.validatePower(&t); err != nil {
		return nil, err
	}
	t.Name = t.DeriveName()
	if err := s.checkDuplicateName(&PowerTemplate{}, t.Name, id); err != nil {
		return nil, err
	}
	if err := s.db.Save(&t).Error; err != nil {
		return nil, fmt.Errorf("failed to update power template: %w", err)
	}
	return &t, nil
}

// SoftDeletePowerTemplate hides the template from active pickers. Hard
// deletion is never offered for templates.
func (s *Service) SoftDeletePowerTemplate(id uuid.UUID) error {
	res := s.db.Model(&PowerTemplate{}).Where("id = ?", id).Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.NewNotFoundError("power template")
	}
	return nil
}

func (s *Service) validatePower(t *PowerTemplate) error {
	switch t.Connector {
	case ConnectorXT30, ConnectorXT60, ConnectorXT90, ConnectorDeans, ConnectorEC5:
	default:
		return common.NewValidationError("unknown connector type %q", t.Connector)
	}
	valid := false
	for _, cfg := range Configurations {
		if t.Configuration == cfg {
			valid = true
			break
		}
	}
	if !valid {
		return common.NewValidationError("unknown cell configuration %q", t.Configuration)
	}
	if t.Capacity <= 0 {
		return common.NewValidationError("capacity must be positive")
	}
	return nil
}

// ===== Video templates =====

// ListVideoTemplates returns non-deleted video templates.
func (s *Service) ListVideoTemplates() ([]VideoTemplate, error) {
	var templates []VideoTemplate
	err := s.db.Preload("DroneModel").Where("is_deleted = ?", false).Order("name ASC").Find(&templates).Error
	return templates, err
}

func (s *Service) GetVideoTemplate(id uuid.UUID) (*VideoTemplate, error) {
	var t VideoTemplate
	if err := s.db.Preload("DroneModel").First(&t, "id = ?", id).Error; err != nil {
		return nil, common.WrapNotFound(err, "video template")
	}
	return &t, nil
}

func (s *Service) CreateVideoTemplate(droneModelID *uuid.UUID, isAnalog bool, maxDistance int) (*VideoTemplate, error) {
	t := VideoTemplate{DroneModelID: droneModelID, IsAnalog: isAnalog, MaxDistance: maxDistance}
	if maxDistance <= 0 {
		return nil, common.NewValidationError("max distance must be positive")
	}
	if err := s.loadVideoModel(&t); err != nil {
		return nil, err
	}
	t.Name = t.DeriveName()
	if err := s.checkDuplicateName(&VideoTemplate{}, t.Name, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.db.Create(&t).Error; err != nil {
		return nil, fmt.Errorf("failed to create video template: %w", err)
	}
	return &t, nil
}

func (s *Service) UpdateVideoTemplate(id uuid.UUID, droneModelID *uuid.UUID, isAnalog bool, maxDistance int) (*VideoTemplate, error) {
	var t VideoTemplate
	if err := s.db.Where("is_deleted = ?", false).First(&t, "id = ?", id).Error; err != nil {
		return nil, common.WrapNotFound(err, "video template")
	}
	if maxDistance <= 0 {
		return nil, common.NewValidationError("max distance must be positive")
	}
	t.DroneModelID = droneModelID
	t.DroneModel = nil
	t.IsAnalog = isAnalog
	t.MaxDistance = maxDistance
	if err := s.loadVideoModel(&t); err != nil {
		return nil, err
	}
	t.Name = t.DeriveName()
	if err := s.checkDuplicateName(&VideoTemplate{}, t.Name, id); err != nil {
		return nil, err
	}
	if err := s.db.Save(&t).Error; err != nil {
		return nil, fmt.Errorf("failed to update video template: %w", err)
	}
	return &t, nil
}

func (s *Service) SoftDeleteVideoTemplate(id uuid.UUID) error {
	res := s.db.Model(&VideoTemplate{}).Where("id = ?", id).Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.NewNotFoundError("video template")
	}
	return nil
}

func (s *Service) loadVideoModel(t *VideoTemplate) error {
	if t.DroneModelID == nil {
		return nil
	}
	var model catalog.DroneModel
	if err := s.db.First(&model, "id = ?", *t.DroneModelID).Error; err != nil {
		return common.WrapNotFound(err, "drone model")
	}
	t.DroneModel = &model
	return nil
}

// checkDuplicateName rejects a derived name already used by another
// non-deleted template of the same table.
func (s *Service) checkDuplicateName(model interface{}, name string, excludeID uuid.UUID) error {
	query := s.db.Model(model).Where("name = ? AND is_deleted = ?", name, false)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return common.NewValidationError("template %q already exists", name)
	}
	return nil
}
