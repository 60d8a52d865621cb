package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"

	"droneops/internal/common"
	"droneops/internal/dronetype"
	"droneops/internal/inventory"

	"gorm.io/gorm"
)

// Column names selectable for the inventory export.
const (
	ColType     = "type"
	ColStatus   = "status"
	ColKit      = "kit"
	ColLocation = "location"
	ColRole     = "role"
	ColNotes    = "notes"
	ColCreated  = "created_at"
)

// DefaultColumns is the column set used when the caller picks none.
var DefaultColumns = []string{ColType, ColStatus, ColKit, ColLocation, ColRole, ColCreated}

var columnHeaders = map[string]string{
	ColType:     "Drone Type",
	ColStatus:   "Status",
	ColKit:      "Kit",
	ColLocation: "Location",
	ColRole:     "Role",
	ColNotes:    "Notes",
	ColCreated:  "Created",
}

// Service renders inventory snapshots as CSV.
type Service struct {
	db    *gorm.DB
	types *dronetype.Service
}

func NewService(db *gorm.DB, types *dronetype.Service) *Service {
	return &Service{db: db, types: types}
}

// Options select the grouping and columns of an export.
type Options struct {
	GroupBy string   // "role", "category" or empty for a flat list
	Columns []string // subset of the Col* names
}

// Inventory renders all active UAVs as CSV. When grouping, each group is
// preceded by a header row with the group label and instance count.
func (s *Service) Inventory(opts Options) ([]byte, error) {
	columns := opts.Columns
	if len(columns) == 0 {
		columns = DefaultColumns
	}
	for _, col := range columns {
		if _, ok := columnHeaders[col]; !ok {
			return nil, common.NewValidationError("unknown export column %q", col)
		}
	}
	if opts.GroupBy != "" && opts.GroupBy != "role" && opts.GroupBy != "category" {
		return nil, common.NewValidationError("group_by must be role or category")
	}

	var uavs []inventory.UAVInstance
	err := s.db.
		Preload("CurrentLocation").
		Preload("Role").
		Preload("Components").
		Where("status IN ?", inventory.UAVActiveStatuses).
		Order("created_at ASC").
		Find(&uavs).Error
	if err != nil {
		return nil, err
	}

	// Resolve type labels once per distinct type.
	labels := map[dronetype.TypeRef]string{}
	for _, u := range uavs {
		ref := u.TypeRef()
		if _, ok := labels[ref]; ok {
			continue
		}
		view, err := s.types.Resolve(ref)
		if err != nil {
			labels[ref] = ref.String()
			continue
		}
		labels[ref] = view.Label
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = columnHeaders[col]
	}

	writeRows := func(group []inventory.UAVInstance) error {
		for _, u := range group {
			row := make([]string, len(columns))
			for i, col := range columns {
				row[i] = s.cell(u, col, labels)
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	}

	if opts.GroupBy == "" {
		if err := w.Write(header); err != nil {
			return nil, err
		}
		if err := writeRows(uavs); err != nil {
			return nil, err
		}
	} else {
		groups := map[string][]inventory.UAVInstance{}
		for _, u := range uavs {
			groups[s.groupKey(u, opts.GroupBy)] = append(groups[s.groupKey(u, opts.GroupBy)], u)
		}
		names := make([]string, 0, len(groups))
		for name := range groups {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			if err := w.Write([]string{fmt.Sprintf("%s (%d)", name, len(groups[name]))}); err != nil {
				return nil, err
			}
			if err := w.Write(header); err != nil {
				return nil, err
			}
			if err := writeRows(groups[name]); err != nil {
				return nil, err
			}
			if err := w.Write([]string{}); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Service) groupKey(u inventory.UAVInstance, groupBy string) string {
	switch groupBy {
	case "role":
		if u.Role != nil {
			return u.Role.Name
		}
		return "No role"
	case "category":
		return string(u.DroneTypeKind)
	}
	return ""
}

func (s *Service) cell(u inventory.UAVInstance, col string, labels map[dronetype.TypeRef]string) string {
	switch col {
	case ColType:
		return labels[u.TypeRef()]
	case ColStatus:
		return u.Status
	case ColKit:
		return u.KitStatus()
	case ColLocation:
		if u.CurrentLocation != nil {
			return u.CurrentLocation.Name
		}
		return ""
	case ColRole:
		if u.Role != nil {
			return u.Role.Name
		}
		return ""
	case ColNotes:
		return u.Notes
	case ColCreated:
		return u.CreatedAt.Format("2006-01-02")
	}
	return ""
}
