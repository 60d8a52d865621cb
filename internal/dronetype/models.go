package dronetype

import (
	"fmt"

	"droneops/internal/catalog"
	"droneops/internal/common"
	"droneops/internal/template"

	"github.com/google/uuid"
)

// Propeller sizes (inches)
var PropSizes = []string{"7", "8", "10", "11", "13", "15", "16"}

// FPVDroneType is a radio-video drone specification.
type FPVDroneType struct {
	common.BaseModel
	ModelID            uuid.UUID              `json:"model_id" gorm:"type:uuid;not null"`
	Model              catalog.DroneModel     `json:"model,omitempty" gorm:"foreignKey:ModelID;constraint:OnDelete:RESTRICT"`
	PurposeID          *uuid.UUID             `json:"purpose_id,omitempty" gorm:"type:uuid"`
	Purpose            *catalog.DronePurpose  `json:"purpose,omitempty" gorm:"foreignKey:PurposeID;constraint:OnDelete:RESTRICT"`
	PropSize           string                 `json:"prop_size" gorm:"size:3;not null"`
	ControlFrequencies []catalog.Frequency    `json:"control_frequencies,omitempty" gorm:"many2many:fpv_type_control_frequencies"`
	VideoFrequencyID   uuid.UUID              `json:"video_frequency_id" gorm:"type:uuid;not null"`
	VideoFrequency     catalog.Frequency      `json:"video_frequency,omitempty" gorm:"foreignKey:VideoFrequencyID;constraint:OnDelete:RESTRICT"`
	PowerTemplateID    uuid.UUID              `json:"power_template_id" gorm:"type:uuid;not null"`
	PowerTemplate      template.PowerTemplate `json:"power_template,omitempty" gorm:"foreignKey:PowerTemplateID;constraint:OnDelete:RESTRICT"`
	HasThermal         bool                   `json:"has_thermal" gorm:"not null;default:false"`
	Notes              string                 `json:"notes" gorm:"type:text"`
}

func (FPVDroneType) TableName() string {
	return "fpv_drone_types"
}

func (t FPVDroneType) DisplayName() string {
	return fmt.Sprintf("%s (%s\")", t.Model.DisplayName(), t.PropSize)
}

// OpticalDroneType is a fiber-optic drone specification.
type OpticalDroneType struct {
	common.BaseModel
	ModelID            uuid.UUID              `json:"model_id" gorm:"type:uuid;not null"`
	Model              catalog.DroneModel     `json:"model,omitempty" gorm:"foreignKey:ModelID;constraint:OnDelete:RESTRICT"`
	PurposeID          *uuid.UUID             `json:"purpose_id,omitempty" gorm:"type:uuid"`
	Purpose            *catalog.DronePurpose  `json:"purpose,omitempty" gorm:"foreignKey:PurposeID;constraint:OnDelete:RESTRICT"`
	PropSize           string                 `json:"prop_size" gorm:"size:3;not null"`
	ControlFrequencies []catalog.Frequency    `json:"control_frequencies,omitempty" gorm:"many2many:optical_type_control_frequencies"`
	VideoTemplateID    uuid.UUID              `json:"video_template_id" gorm:"type:uuid;not null"`
	VideoTemplate      template.VideoTemplate `json:"video_template,omitempty" gorm:"foreignKey:VideoTemplateID;constraint:OnDelete:RESTRICT"`
	PowerTemplateID    uuid.UUID              `json:"power_template_id" gorm:"type:uuid;not null"`
	PowerTemplate      template.PowerTemplate `json:"power_template,omitempty" gorm:"foreignKey:PowerTemplateID;constraint:OnDelete:RESTRICT"`
	HasThermal         bool                   `json:"has_thermal" gorm:"not null;default:false"`
	Notes              string                 `json:"notes" gorm:"type:text"`
}

func (OpticalDroneType) TableName() string {
	return "optical_drone_types"
}

func (t OpticalDroneType) DisplayName() string {
	return fmt.Sprintf("%s (%s\")", t.Model.DisplayName(), t.PropSize)
}
