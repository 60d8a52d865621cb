package movement

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ledger is the append-only audit trail of UAV location changes. Record is
// the only mutation; rows are never updated or deleted.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Record appends one movement row inside the caller's transaction. Callers
// that also update UAVInstance.current_location must pass the same tx so
// the denormalization and the ledger commit together.
func (l *Ledger) Record(tx *gorm.DB, uavID uuid.UUID, from *uuid.UUID, to uuid.UUID, movedBy *uuid.UUID, reason string) error {
	row := UAVMovement{
		ID:             uuid.New(),
		UAVID:          uavID,
		FromLocationID: from,
		ToLocationID:   to,
		MovedByID:      movedBy,
		Reason:         reason,
		MovedAt:        time.Now(),
	}
	if err := tx.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to record movement: %w", err)
	}
	return nil
}

// ListByUAV returns the full movement history of one UAV, oldest first.
func (l *Ledger) ListByUAV(uavID uuid.UUID) ([]UAVMovement, error) {
	var movements []UAVMovement
	err := l.db.Preload("FromLocation").Preload("ToLocation").
		Where("uav_id = ?", uavID).
		Order("moved_at ASC").
		Find(&movements).Error
	return movements, err
}

// Batch groups movements sharing (reason, from, to, moved_by) within one day.
type Batch struct {
	Reason         string        `json:"reason"`
	FromLocationID *uuid.UUID    `json:"from_location_id,omitempty"`
	FromLocation   *Location     `json:"from_location,omitempty"`
	ToLocationID   uuid.UUID     `json:"to_location_id"`
	ToLocation     Location      `json:"to_location"`
	MovedByID      *uuid.UUID    `json:"moved_by_id,omitempty"`
	Count          int           `json:"count"`
	Movements      []UAVMovement `json:"movements"`
}

// DayGroup is all movement batches of one calendar day.
type DayGroup struct {
	Date    string  `json:"date"` // YYYY-MM-DD
	Batches []Batch `json:"batches"`
}

type batchKey struct {
	reason  string
	from    uuid.UUID // uuid.Nil when from is unset
	to      uuid.UUID
	movedBy uuid.UUID // uuid.Nil when moved_by is unset
}

// QueryByDateAndBatch groups movements by calendar day, then by the
// (reason, from_location, to_location, moved_by) batch key. Days are newest
// first; batches keep the order of their newest movement; movements inside a
// batch are newest first. perPage limits the number of day groups returned.
func (l *Ledger) QueryByDateAndBatch(page, perPage int) ([]DayGroup, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 30
	}

	var movements []UAVMovement
	if err := l.db.Preload("FromLocation").Preload("ToLocation").
		Order("moved_at DESC").
		Find(&movements).Error; err != nil {
		return nil, 0, err
	}

	var days []DayGroup
	dayIndex := map[string]int{}
	batchIndex := map[string]map[batchKey]int{}

	for _, m := range movements {
		date := m.MovedAt.Format("2006-01-02")
		di, ok := dayIndex[date]
		if !ok {
			di = len(days)
			dayIndex[date] = di
			days = append(days, DayGroup{Date: date})
			batchIndex[date] = map[batchKey]int{}
		}

		key := batchKey{reason: m.Reason, to: m.ToLocationID}
		if m.FromLocationID != nil {
			key.from = *m.FromLocationID
		}
		if m.MovedByID != nil {
			key.movedBy = *m.MovedByID
		}

		bi, ok := batchIndex[date][key]
		if !ok {
			bi = len(days[di].Batches)
			batchIndex[date][key] = bi
			days[di].Batches = append(days[di].Batches, Batch{
				Reason:         m.Reason,
				FromLocationID: m.FromLocationID,
				FromLocation:   m.FromLocation,
				ToLocationID:   m.ToLocationID,
				ToLocation:     m.ToLocation,
				MovedByID:      m.MovedByID,
			})
		}
		b := &days[di].Batches[bi]
		b.Count++
		b.Movements = append(b.Movements, m)
	}

	totalDays := int64(len(days))
	start := (page - 1) * perPage
	if start >= len(days) {
		return []DayGroup{}, totalDays, nil
	}
	end := start + perPage
	if end > len(days) {
		end = len(days)
	}
	return days[start:end], totalDays, nil
}

// Locations returns the fixed location set ordered by name.
func (l *Ledger) Locations() ([]Location, error) {
	var locations []Location
	err := l.db.Order("name ASC").Find(&locations).Error
	return locations, err
}

// LocationByType returns the first location with the given type tag.
func (l *Ledger) LocationByType(locationType string) (*Location, error) {
	var loc Location
	if err := l.db.First(&loc, "location_type = ?", locationType).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}
