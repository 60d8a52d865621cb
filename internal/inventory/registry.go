package inventory

import (
	"fmt"
	"time"

	"droneops/internal/common"
	"droneops/internal/dronetype"
	"droneops/internal/movement"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Registry creates, transitions and queries UAV instances. Every location
// change goes through relocate, which updates the current-location
// denormalization and appends the movement row in one transaction.
type Registry struct {
	db     *gorm.DB
	types  *dronetype.Service
	ledger *movement.Ledger
}

func NewRegistry(db *gorm.DB, types *dronetype.Service, ledger *movement.Ledger) *Registry {
	return &Registry{db: db, types: types, ledger: ledger}
}

// CreateInput carries the bulk-create parameters.
type CreateInput struct {
	TypeRef        dronetype.TypeRef
	Quantity       int
	RoleID         *uuid.UUID
	FromLocationID *uuid.UUID
	WithBattery    bool
	WithSpool      bool
	Notes          string
	CreatedBy      *uuid.UUID
}

// Create makes Quantity instances with status=inspection at the workshop,
// optionally with their kit components, and records one created-movement per
// instance. The whole batch is one transaction.
func (r *Registry) Create(in CreateInput) ([]UAVInstance, error) {
	if in.Quantity < 1 || in.Quantity > 100 {
		return nil, common.NewValidationError("quantity must be between 1 and 100")
	}
	view, err := r.types.Resolve(in.TypeRef)
	if err != nil {
		return nil, err
	}
	workshop, err := r.ledger.LocationByType(movement.LocationWorkshop)
	if err != nil {
		return nil, fmt.Errorf("workshop location missing: %w", err)
	}

	var created []UAVInstance
	err = r.db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < in.Quantity; i++ {
			uav := UAVInstance{
				DroneTypeKind:     view.Kind,
				DroneTypeID:       view.ID,
				Status:            UAVStatusInspection,
				CurrentLocationID: &workshop.ID,
				RoleID:            in.RoleID,
				CreatedByID:       in.CreatedBy,
				Notes:             in.Notes,
			}
			if err := tx.Create(&uav).Error; err != nil {
				return fmt.Errorf("failed to create UAV instance: %w", err)
			}
			if in.WithBattery {
				battery := Component{
					Kind:            KindBattery,
					PowerTemplateID: &view.PowerTemplateID,
					Status:          ComponentStatusInUse,
					AssignedToUAVID: &uav.ID,
				}
				if err := tx.Create(&battery).Error; err != nil {
					return fmt.Errorf("failed to create kit battery: %w", err)
				}
			}
			if in.WithSpool && view.NeedsSpool() {
				spool := Component{
					Kind:            KindSpool,
					VideoTemplateID: &view.VideoTemplate.ID,
					Status:          ComponentStatusInUse,
					AssignedToUAVID: &uav.ID,
				}
				if err := tx.Create(&spool).Error; err != nil {
					return fmt.Errorf("failed to create kit spool: %w", err)
				}
			}
			if err := r.ledger.Record(tx, uav.ID, in.FromLocationID, workshop.ID, in.CreatedBy, movement.ReasonCreated); err != nil {
				return err
			}
			created = append(created, uav)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Get loads one instance with its components and location.
func (r *Registry) Get(id uuid.UUID) (*UAVInstance, error) {
	var uav UAVInstance
	err := r.db.
		Preload("CurrentLocation").
		Preload("Role").
		Preload("Components.PowerTemplate").
		Preload("Components.VideoTemplate").
		Preload("Components.OtherType").
		First(&uav, "id = ?", id).Error
	if err != nil {
		return nil, common.WrapNotFound(err, "UAV instance")
	}
	return &uav, nil
}

// Update edits status, role and notes of one instance. given and deleted
// are reachable only through ToggleGiven, BulkTransition and Delete.
func (r *Registry) Update(id uuid.UUID, status string, roleID *uuid.UUID, notes *string) (*UAVInstance, error) {
	var uav UAVInstance
	if err := r.db.First(&uav, "id = ?", id).Error; err != nil {
		return nil, common.WrapNotFound(err, "UAV instance")
	}
	if status != "" {
		if !ValidUAVStatus(status) {
			return nil, common.NewValidationError("unknown UAV status %q", status)
		}
		if status == UAVStatusGiven || status == UAVStatusDeleted {
			return nil, common.NewValidationError("status %s cannot be set directly", status)
		}
		uav.Status = status
	}
	if roleID != nil {
		uav.RoleID = roleID
	}
	if notes != nil {
		uav.Notes = *notes
	}
	if err := r.db.Save(&uav).Error; err != nil {
		return nil, err
	}
	return r.Get(uav.ID)
}

// BulkResult reports what a bulk transition did.
type BulkResult struct {
	Action   string `json:"action"`
	Affected int    `json:"affected"`
	Skipped  int    `json:"skipped"`
}

// BulkTransition applies one action to the selected instances. given is
// restricted to ready instances (others are skipped and counted); repair
// optionally relocates; delete soft-deletes; any other known status is a
// plain status set. The whole batch commits or rolls back together.
func (r *Registry) BulkTransition(ids []uuid.UUID, action string, toLocationID *uuid.UUID, actor *uuid.UUID) (*BulkResult, error) {
	if len(ids) == 0 {
		return nil, common.NewValidationError("nothing selected")
	}

	result := &BulkResult{Action: action}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var uavs []UAVInstance
		if err := tx.Where("id IN ?", ids).Find(&uavs).Error; err != nil {
			return err
		}

		switch action {
		case "delete":
			for i := range uavs {
				if err := tx.Model(&uavs[i]).Update("status", UAVStatusDeleted).Error; err != nil {
					return err
				}
				result.Affected++
			}
			return nil

		case UAVStatusGiven:
			if toLocationID == nil {
				return common.NewValidationError("destination location is required to give away UAVs")
			}
			for i := range uavs {
				if uavs[i].Status != UAVStatusReady {
					result.Skipped++
					continue
				}
				if err := r.giveAway(tx, &uavs[i], *toLocationID, actor); err != nil {
					return err
				}
				result.Affected++
			}
			return nil

		case UAVStatusRepair:
			for i := range uavs {
				if err := tx.Model(&uavs[i]).Update("status", UAVStatusRepair).Error; err != nil {
					return err
				}
				if toLocationID != nil {
					if err := r.relocate(tx, &uavs[i], *toLocationID, actor, movement.ReasonRepair); err != nil {
						return err
					}
				}
				result.Affected++
			}
			return nil

		default:
			if !ValidUAVStatus(action) {
				return common.NewValidationError("unknown bulk action %q", action)
			}
			for i := range uavs {
				if err := tx.Model(&uavs[i]).Update("status", action).Error; err != nil {
					return err
				}
				result.Affected++
			}
			return nil
		}
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ToggleGiven gives a ready instance away or returns a given one to the
// workshop. Any other current status is rejected.
func (r *Registry) ToggleGiven(id uuid.UUID, toLocationID *uuid.UUID, actor *uuid.UUID) (*UAVInstance, error) {
	var uav UAVInstance
	if err := r.db.First(&uav, "id = ?", id).Error; err != nil {
		return nil, common.WrapNotFound(err, "UAV instance")
	}

	switch uav.Status {
	case UAVStatusGiven:
		workshop, err := r.ledger.LocationByType(movement.LocationWorkshop)
		if err != nil {
			return nil, fmt.Errorf("workshop location missing: %w", err)
		}
		err = r.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&uav).Update("status", UAVStatusInspection).Error; err != nil {
				return err
			}
			uav.Status = UAVStatusInspection
			return r.relocate(tx, &uav, workshop.ID, actor, movement.ReasonReturned)
		})
		if err != nil {
			return nil, err
		}
		return &uav, nil

	case UAVStatusReady:
		if toLocationID == nil {
			return nil, common.NewValidationError("destination location is required to give away a UAV")
		}
		err := r.db.Transaction(func(tx *gorm.DB) error {
			return r.giveAway(tx, &uav, *toLocationID, actor)
		})
		if err != nil {
			return nil, err
		}
		return &uav, nil

	default:
		return nil, common.NewValidationError("only ready UAVs can be given away and only given UAVs can be returned")
	}
}

// Delete soft-deletes the instance. Its components are either removed
// permanently or detached to disassembled, the caller's choice.
func (r *Registry) Delete(id uuid.UUID, deleteComponents bool) error {
	var uav UAVInstance
	if err := r.db.First(&uav, "id = ?", id).Error; err != nil {
		return common.WrapNotFound(err, "UAV instance")
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if deleteComponents {
			if err := tx.Where("assigned_to_uav_id = ?", uav.ID).Delete(&Component{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Model(&Component{}).
				Where("assigned_to_uav_id = ?", uav.ID).
				Updates(map[string]interface{}{
					"assigned_to_uav_id": nil,
					"status":             ComponentStatusDisassembled,
				}).Error; err != nil {
				return err
			}
		}
		return tx.Model(&uav).Update("status", UAVStatusDeleted).Error
	})
}

// giveAway detaches all components as given, marks the instance given and
// relocates it. Caller guarantees the instance is ready.
func (r *Registry) giveAway(tx *gorm.DB, uav *UAVInstance, toLocationID uuid.UUID, actor *uuid.UUID) error {
	if err := tx.Model(&Component{}).
		Where("assigned_to_uav_id = ?", uav.ID).
		Updates(map[string]interface{}{
			"assigned_to_uav_id": nil,
			"status":             ComponentStatusGiven,
		}).Error; err != nil {
		return err
	}
	if err := tx.Model(uav).Update("status", UAVStatusGiven).Error; err != nil {
		return err
	}
	uav.Status = UAVStatusGiven
	return r.relocate(tx, uav, toLocationID, actor, movement.ReasonGiven)
}

// relocate is the single legal way to change current_location: the
// denormalized column and the ledger row commit in the same transaction.
func (r *Registry) relocate(tx *gorm.DB, uav *UAVInstance, toLocationID uuid.UUID, actor *uuid.UUID, reason string) error {
	from := uav.CurrentLocationID
	if err := tx.Model(uav).Update("current_location_id", toLocationID).Error; err != nil {
		return err
	}
	uav.CurrentLocationID = &toLocationID
	return r.ledger.Record(tx, uav.ID, from, toLocationID, actor, reason)
}

// ListFilter narrows the UAV list view.
type ListFilter struct {
	Status     string
	Category   string // "fpv" or "optical"
	TypeRef    string // "<kind>-<uuid>"
	Kit        string // full / partial / none
	LocationID *uuid.UUID
	DateFrom   string // YYYY-MM-DD
	DateTo     string
	Search     string // free text over notes
	Page       int
	PerPage    int
}

// List returns active instances matching the filter, newest first,
// paginated. The kit filter is evaluated per instance after loading since
// kit status is a computed projection.
func (r *Registry) List(f ListFilter) ([]UAVInstance, int64, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = 20
	}

	query := r.db.Model(&UAVInstance{}).
		Preload("CurrentLocation").
		Preload("Role").
		Preload("Components").
		Where("status IN ?", UAVActiveStatuses)

	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Category == string(dronetype.KindFPV) || f.Category == string(dronetype.KindOptical) {
		query = query.Where("drone_type_kind = ?", f.Category)
	}
	if f.TypeRef != "" {
		if ref, err := dronetype.ParseTypeRef(f.TypeRef); err == nil {
			query = query.Where("drone_type_kind = ? AND drone_type_id = ?", ref.Kind, ref.ID)
		}
	}
	if f.LocationID != nil {
		query = query.Where("current_location_id = ?", *f.LocationID)
	}
	if f.DateFrom != "" {
		if from, err := time.Parse("2006-01-02", f.DateFrom); err == nil {
			query = query.Where("created_at >= ?", from)
		}
	}
	if f.DateTo != "" {
		if to, err := time.Parse("2006-01-02", f.DateTo); err == nil {
			query = query.Where("created_at < ?", to.AddDate(0, 0, 1))
		}
	}
	if f.Search != "" {
		query = query.Where("notes LIKE ?", "%"+f.Search+"%")
	}

	kitFiltered := f.Kit == KitFull || f.Kit == KitPartial || f.Kit == KitNone
	if !kitFiltered {
		var total int64
		if err := query.Count(&total).Error; err != nil {
			return nil, 0, err
		}
		var uavs []UAVInstance
		err := query.Order("created_at DESC").
			Offset((f.Page - 1) * f.PerPage).
			Limit(f.PerPage).
			Find(&uavs).Error
		if err != nil {
			return nil, 0, err
		}
		return uavs, total, nil
	}

	// Kit status is computed from the loaded components, so the kit filter
	// needs the full candidate set before paginating.
	var uavs []UAVInstance
	if err := query.Order("created_at DESC").Find(&uavs).Error; err != nil {
		return nil, 0, err
	}
	filtered := uavs[:0]
	for _, u := range uavs {
		if u.KitStatus() == f.Kit {
			filtered = append(filtered, u)
		}
	}
	uavs = filtered

	total := int64(len(uavs))
	start := (f.Page - 1) * f.PerPage
	if start >= len(uavs) {
		return []UAVInstance{}, total, nil
	}
	end := start + f.PerPage
	if end > len(uavs) {
		end = len(uavs)
	}
	return uavs[start:end], total, nil
}

// StatusCounts returns per-status counts over active instances for the list
// view summary.
func (r *Registry) StatusCounts() (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, status := range UAVActiveStatuses {
		var n int64
		if err := r.db.Model(&UAVInstance{}).Where("status = ?", status).Count(&n).Error; err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, nil
}
