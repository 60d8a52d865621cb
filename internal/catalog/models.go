package catalog

import (
	"fmt"

	"droneops/internal/common"

	"github.com/google/uuid"
)

// Manufacturer represents a drone manufacturer
type Manufacturer struct {
	common.BaseModel
	Name string `json:"name" gorm:"size:100;not null;uniqueIndex"`
}

func (Manufacturer) TableName() string {
	return "manufacturers"
}

// DroneModel represents an airframe model (Вирій, Шрайк, Бомбус)
type DroneModel struct {
	common.BaseModel
	Name           string       `json:"name" gorm:"size:100;not null;uniqueIndex:idx_drone_models_manufacturer_name"`
	ManufacturerID uuid.UUID    `json:"manufacturer_id" gorm:"type:uuid;not null;uniqueIndex:idx_drone_models_manufacturer_name"`
	Manufacturer   Manufacturer `json:"manufacturer,omitempty" gorm:"foreignKey:ManufacturerID;constraint:OnDelete:RESTRICT"`
}

func (DroneModel) TableName() string {
	return "drone_models"
}

func (m DroneModel) DisplayName() string {
	if m.Manufacturer.Name != "" {
		return fmt.Sprintf("%s %s", m.Manufacturer.Name, m.Name)
	}
	return m.Name
}

// DronePurpose represents what a drone type is built for
type DronePurpose struct {
	common.BaseModel
	Name string `json:"name" gorm:"size:100;not null;uniqueIndex"`
}

func (DronePurpose) TableName() string {
	return "drone_purposes"
}

// DroneRole represents the operational role assigned to a UAV instance
type DroneRole struct {
	common.BaseModel
	Name string `json:"name" gorm:"size:100;not null;uniqueIndex"`
}

func (DroneRole) TableName() string {
	return "drone_roles"
}

// Frequency units
const (
	UnitMHz = "mhz"
	UnitGHz = "ghz"
)

// Frequency represents a control or video link frequency
type Frequency struct {
	common.BaseModel
	Value float64 `json:"value" gorm:"not null;uniqueIndex:idx_frequencies_value_unit"`
	Unit  string  `json:"unit" gorm:"size:10;not null;uniqueIndex:idx_frequencies_value_unit"`
}

func (Frequency) TableName() string {
	return "frequencies"
}

func (f Frequency) DisplayName() string {
	unit := "MHz"
	if f.Unit == UnitGHz {
		unit = "GHz"
	}
	return fmt.Sprintf("%g %s", f.Value, unit)
}
