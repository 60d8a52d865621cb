package dronetype

import (
	"errors"
	"fmt"

	"droneops/internal/catalog"
	"droneops/internal/common"
	"droneops/internal/template"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service handles the drone type catalog and resolves polymorphic type
// references for the registry and the assignment engine.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Resolve turns a TypeRef into the common TypeView. An unresolvable
// reference is a validation error: callers pass it straight from user input.
func (s *Service) Resolve(ref TypeRef) (*TypeView, error) {
	switch ref.Kind {
	case KindFPV:
		var t FPVDroneType
		err := s.db.Preload("Model.Manufacturer").First(&t, "id = ?", ref.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewValidationError("drone type %s does not exist", ref)
		}
		if err != nil {
			return nil, err
		}
		return &TypeView{
			Kind:            KindFPV,
			ID:              t.ID,
			Label:           t.DisplayName(),
			ModelID:         t.ModelID,
			PowerTemplateID: t.PowerTemplateID,
			HasThermal:      t.HasThermal,
		}, nil
	case KindOptical:
		var t OpticalDroneType
		err := s.db.Preload("Model.Manufacturer").Preload("VideoTemplate").First(&t, "id = ?", ref.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewValidationError("drone type %s does not exist", ref)
		}
		if err != nil {
			return nil, err
		}
		vt := t.VideoTemplate
		return &TypeView{
			Kind:            KindOptical,
			ID:              t.ID,
			Label:           t.DisplayName(),
			ModelID:         t.ModelID,
			PowerTemplateID: t.PowerTemplateID,
			VideoTemplate:   &vt,
			HasThermal:      t.HasThermal,
		}, nil
	default:
		return nil, common.NewValidationError("unknown drone type kind %q", ref.Kind)
	}
}

// FPVTypeInput carries the fields for creating or updating an FPV type.
type FPVTypeInput struct {
	ModelID             uuid.UUID
	PurposeID           *uuid.UUID
	PropSize            string
	ControlFrequencyIDs []uuid.UUID
	VideoFrequencyID    uuid.UUID
	PowerTemplateID     uuid.UUID
	HasThermal          bool
	Notes               string
}

// OpticalTypeInput carries the fields for creating or updating an optical type.
type OpticalTypeInput struct {
	ModelID             uuid.UUID
	PurposeID           *uuid.UUID
	PropSize            string
	ControlFrequencyIDs []uuid.UUID
	VideoTemplateID     uuid.UUID
	PowerTemplateID     uuid.UUID
	HasThermal          bool
	Notes               string
}

func (s *Service) ListFPVTypes() ([]FPVDroneType, error) {
	var types []FPVDroneType
	err := s.db.Preload("Model.Manufacturer").Preload("Purpose").
		Preload("ControlFrequencies").Preload("VideoFrequency").Preload("PowerTemplate").
		Find(&types).Error
	return types, err
}

func (s *Service) ListOpticalTypes() ([]OpticalDroneType, error) {
	var types []OpticalDroneType
	err := s.db.Preload("Model.Manufacturer").Preload("Purpose").
		Preload("ControlFrequencies").Preload("VideoTemplate").Preload("PowerTemplate").
		Find(&types).Error
	return types, err
}

func (s *Service) CreateFPVType(in FPVTypeInput) (*FPVDroneType, error) {
	if err := s.validatePropSize(in.PropSize); err != nil {
		return nil, err
	}
	frequencies, err := s.loadFrequencies(in.ControlFrequencyIDs)
	if err != nil {
		return nil, err
	}
	if err := s.checkPowerTemplate(in.PowerTemplateID); err != nil {
		return nil, err
	}
	t := FPVDroneType{
		ModelID:            in.ModelID,
		PurposeID:          in.PurposeID,
		PropSize:           in.PropSize,
		ControlFrequencies: frequencies,
		VideoFrequencyID:   in.VideoFrequencyID,
		PowerTemplateID:    in.PowerTemplateID,
		HasThermal:         in.HasThermal,
		Notes:              in.Notes,
	}
	if err := s.db.Create(&t).Error; err != nil {
		return nil, fmt.Errorf("failed to create FPV drone type: %w", err)
	}
	return &t, nil
}

func (s *Service) CreateOpticalType(in OpticalTypeInput) (*OpticalDroneType, error) {
	if err := s.validatePropSize(in.PropSize); err != nil {
		return nil, err
	}
	frequencies, err := s.loadFrequencies(in.ControlFrequencyIDs)
	if err != nil {
		return nil, err
	}
	if err := s.checkPowerTemplate(in.PowerTemplateID); err != nil {
		return nil, err
	}
	var vt template.VideoTemplate
	if err := s.db.First(&vt, "id = ?", in.VideoTemplateID).Error; err != nil {
		return nil, common.WrapNotFound(err, "video template")
	}
	t := OpticalDroneType{
		ModelID:            in.ModelID,
		PurposeID:          in.PurposeID,
		PropSize:           in.PropSize,
		ControlFrequencies: frequencies,
		VideoTemplateID:    in.VideoTemplateID,
		PowerTemplateID:    in.PowerTemplateID,
		HasThermal:         in.HasThermal,
		Notes:              in.Notes,
	}
	if err := s.db.Create(&t).Error; err != nil {
		return nil, fmt.Errorf("failed to create optical drone type: %w", err)
	}
	return &t, nil
}

// DeleteFPVType hard-deletes an FPV type unless UAV instances reference it.
func (s *Service) DeleteFPVType(id uuid.UUID) error {
	return s.deleteType(KindFPV, id, &FPVDroneType{}, "FPV drone type")
}

// DeleteOpticalType hard-deletes an optical type unless UAV instances reference it.
func (s *Service) DeleteOpticalType(id uuid.UUID) error {
	return s.deleteType(KindOptical, id, &OpticalDroneType{}, "optical drone type")
}

func (s *Service) deleteType(kind Kind, id uuid.UUID, model interface{}, entity string) error {
	res := s.db.First(model, "id = ?", id)
	if res.Error != nil {
		return common.WrapNotFound(res.Error, entity)
	}
	var refs int64
	if err := s.db.Table("uav_instances").
		Where("drone_type_kind = ? AND drone_type_id = ?", kind, id).
		Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return common.NewValidationError("cannot delete %s: it is referenced by other records", entity)
	}
	if err := s.db.Delete(model, "id = ?", id).Error; err != nil {
		return common.TranslateDeleteError(err, entity)
	}
	return nil
}

func (s *Service) validatePropSize(size string) error {
	for _, v := range PropSizes {
		if v == size {
			return nil
		}
	}
	return common.NewValidationError("unknown propeller size %q", size)
}

func (s *Service) loadFrequencies(ids []uuid.UUID) ([]catalog.Frequency, error) {
	if len(ids) == 0 {
		return nil, common.NewValidationError("at least one control frequency is required")
	}
	var frequencies []catalog.Frequency
	if err := s.db.Where("id IN ?", ids).Find(&frequencies).Error; err != nil {
		return nil, err
	}
	if len(frequencies) != len(ids) {
		return nil, common.NewValidationError("one or more control frequencies do not exist")
	}
	return frequencies, nil
}

func (s *Service) checkPowerTemplate(id uuid.UUID) error {
	var count int64
	if err := s.db.Model(&template.PowerTemplate{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return common.NewNotFoundError("power template")
	}
	return nil
}
