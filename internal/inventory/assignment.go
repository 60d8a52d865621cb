package inventory

import (
	"droneops/internal/common"
	"droneops/internal/dronetype"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assignment manages components and their attachment to UAV instances.
type Assignment struct {
	db    *gorm.DB
	types *dronetype.Service
}

func NewAssignment(db *gorm.DB, types *dronetype.Service) *Assignment {
	return &Assignment{db: db, types: types}
}

// ComponentInput carries the create/update parameters for a component.
type ComponentInput struct {
	Kind            string
	PowerTemplateID *uuid.UUID
	VideoTemplateID *uuid.UUID
	OtherTypeID     *uuid.UUID
	Status          string
	Notes           string
}

// CreateComponent makes Quantity identical components, unassigned.
func (a *Assignment) CreateComponent(in ComponentInput, quantity int) ([]Component, error) {
	if quantity < 1 || quantity > 100 {
		return nil, common.NewValidationError("quantity must be between 1 and 100")
	}
	status := in.Status
	if status == "" {
		status = ComponentStatusDisassembled
	}
	if !validComponentStatus(status) {
		return nil, common.NewValidationError("unknown component status %q", status)
	}

	proto := Component{
		Kind:            in.Kind,
		PowerTemplateID: in.PowerTemplateID,
		VideoTemplateID: in.VideoTemplateID,
		OtherTypeID:     in.OtherTypeID,
		Status:          status,
		Notes:           in.Notes,
	}
	if err := proto.validateShape(); err != nil {
		return nil, err
	}
	if err := a.checkTemplateExists(proto); err != nil {
		return nil, err
	}

	var created []Component
	err := a.db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < quantity; i++ {
			c := proto
			c.ID = uuid.Nil
			if err := tx.Create(&c).Error; err != nil {
				return err
			}
			created = append(created, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateComponent edits status and notes. Kind and template references are
// immutable after creation.
func (a *Assignment) UpdateComponent(id uuid.UUID, status, notes string) (*Component, error) {
	var c Component
	if err := a.db.First(&c, "id = ?", id).Error; err != nil {
		return nil, common.WrapNotFound(err, "component")
	}
	if status != "" {
		if !validComponentStatus(status) {
			return nil, common.NewValidationError("unknown component status %q", status)
		}
		c.Status = status
	}
	c.Notes = notes
	if err := a.db.Save(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteComponent removes an unassigned component.
func (a *Assignment) DeleteComponent(id uuid.UUID) error {
	var c Component
	if err := a.db.First(&c, "id = ?", id).Error; err != nil {
		return common.WrapNotFound(err, "component")
	}
	if c.AssignedToUAVID != nil {
		return common.NewValidationError("cannot delete a component while it is assigned to a UAV")
	}
	return a.db.Delete(&c).Error
}

// Attach assigns a free component to an active UAV. Batteries and spools are
// singletons per UAV and must be compatible with the UAV's drone type. The
// final claim is a conditional update so two concurrent attaches of the same
// component cannot both succeed.
func (a *Assignment) Attach(componentID, uavID uuid.UUID) error {
	var c Component
	if err := a.db.First(&c, "id = ?", componentID).Error; err != nil {
		return common.WrapNotFound(err, "component")
	}
	if c.AssignedToUAVID != nil {
		return common.NewValidationError("component is already assigned to a UAV")
	}

	var uav UAVInstance
	if err := a.db.First(&uav, "id = ?", uavID).Error; err != nil {
		return common.WrapNotFound(err, "UAV instance")
	}
	if uav.Status == UAVStatusGiven || uav.Status == UAVStatusDeleted {
		return common.NewValidationError("cannot attach components to a %s UAV", uav.Status)
	}

	if c.Kind == KindBattery || c.Kind == KindSpool {
		var occupied int64
		if err := a.db.Model(&Component{}).
			Where("assigned_to_uav_id = ? AND kind = ?", uavID, c.Kind).
			Count(&occupied).Error; err != nil {
			return err
		}
		if occupied > 0 {
			return common.NewValidationError("UAV already has a %s assigned", c.Kind)
		}
		if err := a.checkCompatible(&c, &uav); err != nil {
			return err
		}
	}

	res := a.db.Model(&Component{}).
		Where("id = ? AND assigned_to_uav_id IS NULL", componentID).
		Updates(map[string]interface{}{
			"assigned_to_uav_id": uavID,
			"status":             ComponentStatusInUse,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.NewValidationError("component was assigned concurrently, try again")
	}
	return nil
}

// checkCompatible enforces the template compatibility rules. A battery must
// carry exactly the power template of the UAV's drone type. A spool fits only
// optical types, and its video template must match the type's template on
// drone model and analog/digital, not necessarily be the same template row.
func (a *Assignment) checkCompatible(c *Component, uav *UAVInstance) error {
	view, err := a.types.Resolve(uav.TypeRef())
	if err != nil {
		return err
	}

	switch c.Kind {
	case KindBattery:
		if c.PowerTemplateID == nil || *c.PowerTemplateID != view.PowerTemplateID {
			return common.NewValidationError("battery power template does not match the UAV's drone type")
		}
	case KindSpool:
		if !view.NeedsSpool() || view.VideoTemplate == nil {
			return common.NewValidationError("spools can only be attached to fiber-optic UAVs")
		}
		var spoolTpl struct {
			DroneModelID *uuid.UUID
			IsAnalog     bool
		}
		if err := a.db.Table("video_templates").
			Select("drone_model_id, is_analog").
			Where("id = ?", c.VideoTemplateID).
			Take(&spoolTpl).Error; err != nil {
			return common.WrapNotFound(err, "video template")
		}
		typeTpl := view.VideoTemplate
		sameModel := (spoolTpl.DroneModelID == nil && typeTpl.DroneModelID == nil) ||
			(spoolTpl.DroneModelID != nil && typeTpl.DroneModelID != nil && *spoolTpl.DroneModelID == *typeTpl.DroneModelID)
		if !sameModel || spoolTpl.IsAnalog != typeTpl.IsAnalog {
			return common.NewValidationError("spool video template does not match the UAV's drone type")
		}
	}
	return nil
}

// Detach removes the component from the given UAV and marks it disassembled.
func (a *Assignment) Detach(componentID, uavID uuid.UUID) error {
	var c Component
	if err := a.db.First(&c, "id = ?", componentID).Error; err != nil {
		return common.WrapNotFound(err, "component")
	}
	if c.AssignedToUAVID == nil || *c.AssignedToUAVID != uavID {
		return common.NewValidationError("component is not assigned to this UAV")
	}
	return a.db.Model(&c).Updates(map[string]interface{}{
		"assigned_to_uav_id": nil,
		"status":             ComponentStatusDisassembled,
	}).Error
}

// MarkDamaged flags a component damaged and detaches it if assigned.
func (a *Assignment) MarkDamaged(componentID uuid.UUID) error {
	var c Component
	if err := a.db.First(&c, "id = ?", componentID).Error; err != nil {
		return common.WrapNotFound(err, "component")
	}
	return a.db.Model(&c).Updates(map[string]interface{}{
		"assigned_to_uav_id": nil,
		"status":             ComponentStatusDamaged,
	}).Error
}

// Restore brings a damaged component back to service. It stays unassigned;
// reattaching is a separate Attach call.
func (a *Assignment) Restore(componentID uuid.UUID) error {
	var c Component
	if err := a.db.First(&c, "id = ?", componentID).Error; err != nil {
		return common.WrapNotFound(err, "component")
	}
	if c.Status != ComponentStatusDamaged {
		return common.NewValidationError("only damaged components can be restored")
	}
	return a.db.Model(&c).Update("status", ComponentStatusInUse).Error
}

// AvailableUAVsForKind lists active UAVs that could take a component of the
// given kind: no component of that kind assigned yet, and a drone type whose
// templates fit. When editing an existing component, pass its id as
// excludeComponentID so its current host UAV still shows up. Unknown kinds
// yield an empty list.
func (a *Assignment) AvailableUAVsForKind(kind string, excludeComponentID, powerTemplateID, videoTemplateID *uuid.UUID) ([]UAVInstance, error) {
	if kind != KindBattery && kind != KindSpool && kind != KindOther {
		return []UAVInstance{}, nil
	}

	query := a.db.Model(&UAVInstance{}).
		Preload("CurrentLocation").
		Where("status IN ?", UAVActiveStatuses)

	if kind == KindBattery || kind == KindSpool {
		occupied := a.db.Model(&Component{}).Select("assigned_to_uav_id").
			Where("kind = ? AND assigned_to_uav_id IS NOT NULL", kind)
		if excludeComponentID != nil {
			occupied = occupied.Where("id <> ?", *excludeComponentID)
		}
		query = query.Where("id NOT IN (?)", occupied)
	}

	switch kind {
	case KindBattery:
		if powerTemplateID != nil {
			fpvIDs := a.db.Table("fpv_drone_types").Select("id").Where("power_template_id = ?", *powerTemplateID)
			opticalIDs := a.db.Table("optical_drone_types").Select("id").Where("power_template_id = ?", *powerTemplateID)
			query = query.Where(
				"(drone_type_kind = ? AND drone_type_id IN (?)) OR (drone_type_kind = ? AND drone_type_id IN (?))",
				dronetype.KindFPV, fpvIDs, dronetype.KindOptical, opticalIDs,
			)
		}
	case KindSpool:
		query = query.Where("drone_type_kind = ?", dronetype.KindOptical)
		if videoTemplateID != nil {
			var spoolTpl struct {
				DroneModelID *uuid.UUID
				IsAnalog     bool
			}
			if err := a.db.Table("video_templates").
				Select("drone_model_id, is_analog").
				Where("id = ?", *videoTemplateID).
				Take(&spoolTpl).Error; err != nil {
				return nil, common.WrapNotFound(err, "video template")
			}
			matching := a.db.Table("video_templates").Select("id").Where("is_analog = ?", spoolTpl.IsAnalog)
			if spoolTpl.DroneModelID != nil {
				matching = matching.Where("drone_model_id = ?", *spoolTpl.DroneModelID)
			} else {
				matching = matching.Where("drone_model_id IS NULL")
			}
			opticalIDs := a.db.Table("optical_drone_types").Select("id").Where("video_template_id IN (?)", matching)
			query = query.Where("drone_type_id IN (?)", opticalIDs)
		}
	}

	var uavs []UAVInstance
	if err := query.Order("created_at DESC").Find(&uavs).Error; err != nil {
		return nil, err
	}
	return uavs, nil
}

// ComponentFilter narrows the component list view.
type ComponentFilter struct {
	Kind     string
	Status   string
	Assigned string // "yes", "no" or empty
	Page     int
	PerPage  int
}

// ListComponents returns components matching the filter, newest first.
func (a *Assignment) ListComponents(f ComponentFilter) ([]Component, int64, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = 20
	}

	query := a.db.Model(&Component{}).
		Preload("PowerTemplate").
		Preload("VideoTemplate").
		Preload("OtherType")

	if f.Kind != "" {
		query = query.Where("kind = ?", f.Kind)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	switch f.Assigned {
	case "yes":
		query = query.Where("assigned_to_uav_id IS NOT NULL")
	case "no":
		query = query.Where("assigned_to_uav_id IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var components []Component
	err := query.Order("created_at DESC").
		Offset((f.Page - 1) * f.PerPage).
		Limit(f.PerPage).
		Find(&components).Error
	if err != nil {
		return nil, 0, err
	}
	return components, total, nil
}

// GetComponent loads one component with its template and host UAV.
func (a *Assignment) GetComponent(id uuid.UUID) (*Component, error) {
	var c Component
	err := a.db.
		Preload("PowerTemplate").
		Preload("VideoTemplate").
		Preload("OtherType").
		First(&c, "id = ?", id).Error
	if err != nil {
		return nil, common.WrapNotFound(err, "component")
	}
	return &c, nil
}

// OtherComponentType catalog

func (a *Assignment) ListOtherTypes() ([]OtherComponentType, error) {
	var types []OtherComponentType
	err := a.db.Order("category ASC, model ASC").Find(&types).Error
	return types, err
}

func (a *Assignment) CreateOtherType(model, category, notes string) (*OtherComponentType, error) {
	if model == "" {
		return nil, common.NewValidationError("model is required")
	}
	if !validOtherCategory(category) {
		return nil, common.NewValidationError("unknown category %q", category)
	}
	t := OtherComponentType{Model: model, Category: category, Notes: notes}
	if err := a.db.Create(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (a *Assignment) DeleteOtherType(id uuid.UUID) error {
	var count int64
	if err := a.db.Model(&Component{}).Where("other_type_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return common.NewValidationError("cannot delete a component type that is in use")
	}
	res := a.db.Delete(&OtherComponentType{}, "id = ?", id)
	if res.Error != nil {
		return common.TranslateDeleteError(res.Error, "component type")
	}
	if res.RowsAffected == 0 {
		return common.NewNotFoundError("component type")
	}
	return nil
}

// checkTemplateExists verifies the component's template reference points at a
// live row. Retired (soft-deleted) templates cannot back new components.
func (a *Assignment) checkTemplateExists(c Component) error {
	switch c.Kind {
	case KindBattery:
		var count int64
		a.db.Table("power_templates").Where("id = ? AND is_deleted = ?", c.PowerTemplateID, false).Count(&count)
		if count == 0 {
			return common.NewValidationError("power template does not exist")
		}
	case KindSpool:
		var count int64
		a.db.Table("video_templates").Where("id = ? AND is_deleted = ?", c.VideoTemplateID, false).Count(&count)
		if count == 0 {
			return common.NewValidationError("video template does not exist")
		}
	case KindOther:
		var count int64
		a.db.Model(&OtherComponentType{}).Where("id = ?", c.OtherTypeID).Count(&count)
		if count == 0 {
			return common.NewValidationError("component type does not exist")
		}
	}
	return nil
}

func validComponentStatus(s string) bool {
	switch s {
	case ComponentStatusInUse, ComponentStatusDamaged, ComponentStatusDisassembled, ComponentStatusGiven:
		return true
	}
	return false
}

func validOtherCategory(c string) bool {
	switch c {
	case CategoryController, CategoryCharger, CategoryPropeller, CategoryOther:
		return true
	}
	return false
}
