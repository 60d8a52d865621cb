package database

import (
	"droneops/internal/auth"
	"droneops/internal/catalog"
	"droneops/internal/dronetype"
	"droneops/internal/expense"
	"droneops/internal/inventory"
	"droneops/internal/movement"
	"droneops/internal/template"
	"droneops/internal/wiki"

	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		// Auth
		&auth.User{},
		// Catalog models
		&catalog.Manufacturer{},
		&catalog.DroneModel{},
		&catalog.DronePurpose{},
		&catalog.DroneRole{},
		&catalog.Frequency{},
		// Template models
		&template.PowerTemplate{},
		&template.VideoTemplate{},
		// Drone type models
		&dronetype.FPVDroneType{},
		&dronetype.OpticalDroneType{},
		// Inventory models
		&inventory.OtherComponentType{},
		&inventory.UAVInstance{},
		&inventory.Component{},
		// Movement models
		&movement.Location{},
		&movement.UAVMovement{},
		// Expense log
		&expense.Expense{},
		// Knowledge base
		&wiki.Topic{},
		&wiki.Article{},
		&wiki.Attachment{},
	)
	if err != nil {
		return err
	}

	if err := createInventoryIndexes(db); err != nil {
		return err
	}

	return SeedLocations(db)
}

func createInventoryIndexes(db *gorm.DB) error {
	// Combined index for the active-inventory list view
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_uav_instances_status_created
		ON uav_instances (status, created_at DESC)
	`).Error; err != nil {
		return err
	}

	// Index for components by host and kind (singleton checks)
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_components_uav_kind
		ON components (assigned_to_uav_id, kind)
	`).Error; err != nil {
		return err
	}

	// Index for the movement history by day
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_uav_movements_moved_at
		ON uav_movements (moved_at DESC)
	`).Error; err != nil {
		return err
	}

	return nil
}

// SeedLocations inserts the fixed location set if missing. Idempotent, safe
// to run on every startup.
func SeedLocations(db *gorm.DB) error {
	locations := []movement.Location{
		{Name: "Майстерня", LocationType: movement.LocationWorkshop},
		{Name: "Виробник", LocationType: movement.LocationManufacturer},
		{Name: "Бригада", LocationType: movement.LocationBrigade},
		{Name: "Дюша", LocationType: movement.LocationDusha},
		{Name: "Позиція", LocationType: movement.LocationPosition},
	}
	for _, loc := range locations {
		var count int64
		if err := db.Model(&movement.Location{}).Where("name = ?", loc.Name).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&loc).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
