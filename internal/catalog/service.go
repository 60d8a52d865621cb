package catalog

import (
	"fmt"
	"strings"

	"droneops/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service handles the reference catalog (manufacturers, models, purposes,
// roles, frequencies). These entities are edited rarely and never cascade:
// deleting a referenced row fails with a user-facing error.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ===== Manufacturers =====

func (s *Service) ListManufacturers() ([]Manufacturer, error) {
	var manufacturers []Manufacturer
	err := s.db.Order("name ASC").Find(&manufacturers).Error
	return manufacturers, err
}

func (s *Service) CreateManufacturer(name string) (*Manufacturer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.NewValidationError("manufacturer name is required")
	}
	var count int64
	if err := s.db.Model(&Manufacturer{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, common.NewValidationError("manufacturer %q already exists", name)
	}
	m := Manufacturer{Name: name}
	if err := s.db.Create(&m).Error; err != nil {
		return nil, fmt.Errorf("failed to create manufacturer: %w", err)
	}
	return &m, nil
}

func (s *Service) UpdateManufacturer(id uuid.UUID, name string) (*Manufacturer, error) {
	var m Manufacturer
	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		return nil, common.WrapNotFound(err, "manufacturer")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.NewValidationError("manufacturer name is required")
	}
	var count int64
	if err := s.db.Model(&Manufacturer{}).Where("name = ? AND id <> ?", name, id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, common.NewValidationError("manufacturer %q already exists", name)
	}
	m.Name = name
	if err := s.db.Save(&m).Error; err != nil {
		return nil, fmt.Errorf("failed to update manufacturer: %w", err)
	}
	return &m, nil
}

func (s *Service) DeleteManufacturer(id uuid.UUID) error {
	var m Manufacturer
	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		return common.WrapNotFound(err, "manufacturer")
	}
	var refs int64
	if err := s.db.Model(&DroneModel{}).Where("manufacturer_id = ?", id).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return common.NewValidationError("cannot delete manufacturer: it is referenced by other records")
	}
	if err := s.db.Delete(&m).Error; err != nil {
		return common.TranslateDeleteError(err, "manufacturer")
	}
	return nil
}

// ===== Drone models =====

func (s *Service) ListDroneModels() ([]DroneModel, error) {
	var models []DroneModel
	err := s.db.Preload("Manufacturer").
		Joins("JOIN manufacturers ON manufacturers.id = drone_models.manufacturer_id").
		Order("manufacturers.name ASC, drone_models.name ASC").
		Find(&models).Error
	return models, err
}

func (s *Service) CreateDroneModel(name string, manufacturerID uuid.UUID) (*DroneModel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.NewValidationError("drone model name is required")
	}
	var manufacturer Manufacturer
	if err := s.db.First(&manufacturer, "id = ?", manufacturerID).Error; err != nil {
		return nil, common.WrapNotFound(err, "manufacturer")
	}
	var count int64
	if err := s.db.Model(&DroneModel{}).
		Where("name = ? AND manufacturer_id = ?", name, manufacturerID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, common.NewValidationError("drone model %q already exists for this manufacturer", name)
	}
	m := DroneModel{Name: name, ManufacturerID: manufacturerID}
	if err := s.db.Create(&m).Error; err != nil {
		return nil, fmt.Errorf("failed to create drone model: %w", err)
	}
	m.Manufacturer = manufacturer
	return &m, nil
}

func (s *Service) DeleteDroneModel(id uuid.UUID) error {
	var m DroneModel
	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		return common.WrapNotFound(err, "drone model")
	}
	if err := s.db.Delete(&m).Error; err != nil {
		return common.TranslateDeleteError(err, "drone model")
	}
	return nil
}

// ===== Purposes and roles =====

func (s *Service) ListPurposes() ([]DronePurpose, error) {
	var purposes []DronePurpose
	err := s.db.Order("name ASC").Find(&purposes).Error
	return purposes, err
}

func (s *Service) CreatePurpose(name string) (*DronePurpose, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.NewValidationError("purpose name is required")
	}
	p := DronePurpose{Name: name}
	if err := s.db.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("failed to create purpose: %w", err)
	}
	return &p, nil
}

func (s *Service) ListRoles() ([]DroneRole, error) {
	var roles []DroneRole
	err := s.db.Order("name ASC").Find(&roles).Error
	return roles, err
}

func (s *Service) CreateRole(name string) (*DroneRole, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.NewValidationError("role name is required")
	}
	r := DroneRole{Name: name}
	if err := s.db.Create(&r).Error; err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}
	return &r, nil
}

// ===== Frequencies =====

func (s *Service) ListFrequencies() ([]Frequency, error) {
	var frequencies []Frequency
	err := s.db.Order("value ASC").Find(&frequencies).Error
	return frequencies, err
}

func (s *Service) CreateFrequency(value float64, unit string) (*Frequency, error) {
	if unit != UnitMHz && unit != UnitGHz {
		return nil, common.NewValidationError("unknown frequency unit %q", unit)
	}
	if value <= 0 {
		return nil, common.NewValidationError("frequency value must be positive")
	}
	var count int64
	if err := s.db.Model(&Frequency{}).Where("value = ? AND unit = ?", value, unit).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, common.NewValidationError("frequency %g %s already exists", value, unit)
	}
	f := Frequency{Value: value, Unit: unit}
	if err := s.db.Create(&f).Error; err != nil {
		return nil, fmt.Errorf("failed to create frequency: %w", err)
	}
	return &f, nil
}
