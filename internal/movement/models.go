package movement

import (
	"time"

	"droneops/internal/common"

	"github.com/google/uuid"
)

// Location types
const (
	LocationWorkshop     = "workshop"
	LocationManufacturer = "manufacturer"
	LocationBrigade      = "brigade"
	LocationDusha        = "dusha"
	LocationPosition     = "position"
)

// Location is one of the fixed set of physical places a UAV can be at.
type Location struct {
	common.BaseModel
	Name         string `json:"name" gorm:"size:100;not null;uniqueIndex"`
	LocationType string `json:"location_type" gorm:"size:20;not null"`
}

func (Location) TableName() string {
	return "locations"
}

// Movement reasons
const (
	ReasonCreated  = "created"
	ReasonGiven    = "given"
	ReasonReturned = "returned"
	ReasonRepair   = "repair"
	ReasonMoved    = "moved"
)

// UAVMovement is one append-only ledger row. Rows are never updated or
// deleted after insert.
type UAVMovement struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UAVID          uuid.UUID  `json:"uav_id" gorm:"type:uuid;not null;index"`
	FromLocationID *uuid.UUID `json:"from_location_id,omitempty" gorm:"type:uuid"`
	FromLocation   *Location  `json:"from_location,omitempty" gorm:"foreignKey:FromLocationID"`
	ToLocationID   uuid.UUID  `json:"to_location_id" gorm:"type:uuid;not null"`
	ToLocation     Location   `json:"to_location,omitempty" gorm:"foreignKey:ToLocationID"`
	MovedByID      *uuid.UUID `json:"moved_by_id,omitempty" gorm:"type:uuid"`
	Reason         string     `json:"reason" gorm:"size:20;not null"`
	MovedAt        time.Time  `json:"moved_at" gorm:"not null;index"`
}

func (UAVMovement) TableName() string {
	return "uav_movements"
}
