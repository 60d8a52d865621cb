package template

import (
	"fmt"
	"strconv"
	"strings"

	"droneops/internal/catalog"
	"droneops/internal/common"

	"github.com/google/uuid"
)

// Connector types
const (
	ConnectorXT30  = "xt30"
	ConnectorXT60  = "xt60"
	ConnectorXT90  = "xt90"
	ConnectorDeans = "deans"
	ConnectorEC5   = "ec5"
)

// Cell configurations
var Configurations = []string{
	"3s1p", "3s2p", "3s3p",
	"4s1p", "4s2p", "4s3p", "4s4p",
	"6s1p", "6s2p", "6s3p",
}

// PowerTemplate is the battery electrical profile shared between drone types
// and battery components. Templates are never hard-deleted: components keep
// referencing them for historical compatibility checks, so retirement only
// sets IsDeleted.
type PowerTemplate struct {
	common.BaseModel
	Name          string `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Connector     string `json:"connector" gorm:"size:20;not null"`
	Configuration string `json:"configuration" gorm:"size:10;not null"`
	Capacity      int    `json:"capacity" gorm:"not null"`
	IsDeleted     bool   `json:"is_deleted" gorm:"not null;default:false"`
}

func (PowerTemplate) TableName() string {
	return "power_templates"
}

// DeriveName builds the template name from its fields, e.g. "4S2P 1300mAh XT60".
// The name is a pure function of (configuration, capacity, connector).
func (t PowerTemplate) DeriveName() string {
	return fmt.Sprintf("%s %dmAh %s",
		strings.ToUpper(t.Configuration), t.Capacity, strings.ToUpper(t.Connector))
}

// Voltage returns the nominal Li-Ion pack voltage (3.7V per cell).
func (t PowerTemplate) Voltage() float64 {
	cells, err := strconv.Atoi(strings.SplitN(t.Configuration, "s", 2)[0])
	if err != nil {
		return 0
	}
	return float64(cells) * 3.7
}

// VideoTemplate is the video-link profile for fiber-optic spools, optionally
// scoped to a drone model. Same soft-delete-only lifecycle as PowerTemplate.
type VideoTemplate struct {
	common.BaseModel
	Name         string              `json:"name" gorm:"size:100;not null;uniqueIndex"`
	DroneModelID *uuid.UUID          `json:"drone_model_id,omitempty" gorm:"type:uuid"`
	DroneModel   *catalog.DroneModel `json:"drone_model,omitempty" gorm:"foreignKey:DroneModelID;constraint:OnDelete:RESTRICT"`
	IsAnalog     bool                `json:"is_analog" gorm:"not null;default:true"`
	MaxDistance  int                 `json:"max_distance" gorm:"not null"`
	IsDeleted    bool                `json:"is_deleted" gorm:"not null;default:false"`
}

func (VideoTemplate) TableName() string {
	return "video_templates"
}

// DeriveName builds the template name from its fields, e.g. "Analog 10km"
// or "Digital 20km (Вирій)" when scoped to a drone model.
func (t VideoTemplate) DeriveName() string {
	signal := "Analog"
	if !t.IsAnalog {
		signal = "Digital"
	}
	name := fmt.Sprintf("%s %dkm", signal, t.MaxDistance)
	if t.DroneModel != nil {
		name = fmt.Sprintf("%s (%s)", name, t.DroneModel.Name)
	}
	return name
}
