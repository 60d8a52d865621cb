package inventory

import (
	"droneops/internal/catalog"
	"droneops/internal/common"
	"droneops/internal/dronetype"
	"droneops/internal/movement"
	"droneops/internal/template"

	"github.com/google/uuid"
)

// UAV instance statuses. given and deleted are excluded from active
// listings; deleted is terminal.
const (
	UAVStatusInspection = "inspection"
	UAVStatusReady      = "ready"
	UAVStatusRepair     = "repair"
	UAVStatusDeferred   = "deferred"
	UAVStatusGiven      = "given"
	UAVStatusDeleted    = "deleted"
)

// UAVActiveStatuses are the statuses shown in default listings.
var UAVActiveStatuses = []string{UAVStatusInspection, UAVStatusReady, UAVStatusRepair, UAVStatusDeferred}

// ValidUAVStatus reports whether s is one of the known UAV statuses.
func ValidUAVStatus(s string) bool {
	switch s {
	case UAVStatusInspection, UAVStatusReady, UAVStatusRepair, UAVStatusDeferred, UAVStatusGiven, UAVStatusDeleted:
		return true
	}
	return false
}

// Kit completeness, computed from assigned components on every read.
const (
	KitFull    = "full"
	KitPartial = "partial"
	KitNone    = "none"
)

// Component kinds
const (
	KindBattery = "battery"
	KindSpool   = "spool"
	KindOther   = "other"
)

// Component statuses
const (
	ComponentStatusInUse        = "in_use"
	ComponentStatusDamaged      = "damaged"
	ComponentStatusDisassembled = "disassembled"
	ComponentStatusGiven        = "given"
)

// Other component categories
const (
	CategoryController = "controller"
	CategoryCharger    = "charger"
	CategoryPropeller  = "propeller"
	CategoryOther      = "other"
)

// UAVInstance is one physical drone unit in the inventory.
type UAVInstance struct {
	common.BaseModel
	DroneTypeKind     dronetype.Kind     `json:"drone_type_kind" gorm:"size:10;not null;index:idx_uav_instances_type"`
	DroneTypeID       uuid.UUID          `json:"drone_type_id" gorm:"type:uuid;not null;index:idx_uav_instances_type"`
	Status            string             `json:"status" gorm:"size:20;not null;default:'inspection';index"`
	CurrentLocationID *uuid.UUID         `json:"current_location_id,omitempty" gorm:"type:uuid"`
	CurrentLocation   *movement.Location `json:"current_location,omitempty" gorm:"foreignKey:CurrentLocationID"`
	RoleID            *uuid.UUID         `json:"role_id,omitempty" gorm:"type:uuid"`
	Role              *catalog.DroneRole `json:"role,omitempty" gorm:"foreignKey:RoleID;constraint:OnDelete:RESTRICT"`
	CreatedByID       *uuid.UUID         `json:"created_by_id,omitempty" gorm:"type:uuid"`
	Notes             string             `json:"notes" gorm:"type:text"`

	// Relations
	Components []Component `json:"components,omitempty" gorm:"foreignKey:AssignedToUAVID"`
}

func (UAVInstance) TableName() string {
	return "uav_instances"
}

// TypeRef returns the polymorphic drone-type reference of this instance.
func (u UAVInstance) TypeRef() dronetype.TypeRef {
	return dronetype.TypeRef{Kind: u.DroneTypeKind, ID: u.DroneTypeID}
}

// NeedsSpool reports whether a complete kit for this instance includes a
// fiber-optic spool.
func (u UAVInstance) NeedsSpool() bool {
	return u.DroneTypeKind == dronetype.KindOptical
}

// KitStatus is a pure projection of the assigned components: none when no
// component is assigned, full when a battery (and, for optical types, a
// spool) is assigned, partial otherwise. Never persisted.
func (u UAVInstance) KitStatus() string {
	if len(u.Components) == 0 {
		return KitNone
	}
	hasBattery, hasSpool := false, false
	for _, c := range u.Components {
		switch c.Kind {
		case KindBattery:
			hasBattery = true
		case KindSpool:
			hasSpool = true
		}
	}
	if hasBattery && (!u.NeedsSpool() || hasSpool) {
		return KitFull
	}
	return KitPartial
}

// OtherComponentType is the catalog entry for "other" components
// (controllers, chargers, propellers and similar).
type OtherComponentType struct {
	common.BaseModel
	Model    string `json:"model" gorm:"size:100;not null"`
	Category string `json:"category" gorm:"size:20;not null"`
	Notes    string `json:"notes" gorm:"type:text"`
}

func (OtherComponentType) TableName() string {
	return "other_component_types"
}

// Component is one physical interchangeable part. Exactly one of
// PowerTemplateID / VideoTemplateID / OtherTypeID is set, matching Kind.
type Component struct {
	common.BaseModel
	Kind            string                  `json:"kind" gorm:"size:10;not null;index"`
	PowerTemplateID *uuid.UUID              `json:"power_template_id,omitempty" gorm:"type:uuid"`
	PowerTemplate   *template.PowerTemplate `json:"power_template,omitempty" gorm:"foreignKey:PowerTemplateID;constraint:OnDelete:RESTRICT"`
	VideoTemplateID *uuid.UUID              `json:"video_template_id,omitempty" gorm:"type:uuid"`
	VideoTemplate   *template.VideoTemplate `json:"video_template,omitempty" gorm:"foreignKey:VideoTemplateID;constraint:OnDelete:RESTRICT"`
	OtherTypeID     *uuid.UUID              `json:"other_type_id,omitempty" gorm:"type:uuid"`
	OtherType       *OtherComponentType     `json:"other_type,omitempty" gorm:"foreignKey:OtherTypeID;constraint:OnDelete:RESTRICT"`
	Status          string                  `json:"status" gorm:"size:20;not null;default:'disassembled';index"`
	AssignedToUAVID *uuid.UUID              `json:"assigned_to_uav_id,omitempty" gorm:"type:uuid;index"`
	Notes           string                  `json:"notes" gorm:"type:text"`
}

func (Component) TableName() string {
	return "components"
}

// validateShape enforces that the component's template reference matches
// its kind.
func (c Component) validateShape() error {
	switch c.Kind {
	case KindBattery:
		if c.PowerTemplateID == nil || c.VideoTemplateID != nil || c.OtherTypeID != nil {
			return common.NewValidationError("battery components require exactly a power template")
		}
	case KindSpool:
		if c.VideoTemplateID == nil || c.PowerTemplateID != nil || c.OtherTypeID != nil {
			return common.NewValidationError("spool components require exactly a video template")
		}
	case KindOther:
		if c.OtherTypeID == nil || c.PowerTemplateID != nil || c.VideoTemplateID != nil {
			return common.NewValidationError("other components require exactly an other-component type")
		}
	default:
		return common.NewValidationError("unknown component kind %q", c.Kind)
	}
	return nil
}
