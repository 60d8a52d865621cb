package export

import (
	"strings"
	"testing"

	"droneops/internal/catalog"
	"droneops/internal/common"
	"droneops/internal/dronetype"
	"droneops/internal/inventory"
	"droneops/internal/movement"
	"droneops/internal/template"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupExportEnv(t *testing.T) (*Service, *inventory.Registry, dronetype.TypeRef, dronetype.TypeRef) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalog.Manufacturer{},
		&catalog.DroneModel{},
		&catalog.DroneRole{},
		&catalog.Frequency{},
		&template.PowerTemplate{},
		&template.VideoTemplate{},
		&dronetype.FPVDroneType{},
		&dronetype.OpticalDroneType{},
		&inventory.UAVInstance{},
		&inventory.Component{},
		&inventory.OtherComponentType{},
		&movement.Location{},
		&movement.UAVMovement{},
	))
	require.NoError(t, db.Create(&movement.Location{Name: "Майстерня", LocationType: movement.LocationWorkshop}).Error)

	catalogService := catalog.NewService(db)
	manufacturer, err := catalogService.CreateManufacturer("Вирій")
	require.NoError(t, err)
	model, err := catalogService.CreateDroneModel("Mark-1", manufacturer.ID)
	require.NoError(t, err)
	control, err := catalogService.CreateFrequency(915, catalog.UnitMHz)
	require.NoError(t, err)
	video, err := catalogService.CreateFrequency(5.8, catalog.UnitGHz)
	require.NoError(t, err)

	templateService := template.NewService(db)
	powerTpl, err := templateService.CreatePowerTemplate(template.ConnectorXT60, "6s2p", 8000)
	require.NoError(t, err)
	videoTpl, err := templateService.CreateVideoTemplate(nil, true, 10)
	require.NoError(t, err)

	typeService := dronetype.NewService(db)
	fpvType, err := typeService.CreateFPVType(dronetype.FPVTypeInput{
		ModelID:             model.ID,
		PropSize:            "10",
		ControlFrequencyIDs: []uuid.UUID{control.ID},
		VideoFrequencyID:    video.ID,
		PowerTemplateID:     powerTpl.ID,
	})
	require.NoError(t, err)
	opticalType, err := typeService.CreateOpticalType(dronetype.OpticalTypeInput{
		ModelID:             model.ID,
		PropSize:            "10",
		ControlFrequencyIDs: []uuid.UUID{control.ID},
		VideoTemplateID:     videoTpl.ID,
		PowerTemplateID:     powerTpl.ID,
	})
	require.NoError(t, err)

	registry := inventory.NewRegistry(db, typeService, movement.NewLedger(db))
	service := NewService(db, typeService)

	return service, registry,
		dronetype.TypeRef{Kind: dronetype.KindFPV, ID: fpvType.ID},
		dronetype.TypeRef{Kind: dronetype.KindOptical, ID: opticalType.ID}
}

func TestInventoryExportFlat(t *testing.T) {
	service, registry, fpvRef, _ := setupExportEnv(t)

	_, err := registry.Create(inventory.CreateInput{TypeRef: fpvRef, Quantity: 2, WithBattery: true})
	require.NoError(t, err)

	data, err := service.Inventory(Options{})
	require.NoError(t, err)
	csv := string(data)

	lines := strings.Split(strings.TrimSpace(csv), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Drone Type")
	assert.Contains(t, lines[1], "Mark-1")
	assert.Contains(t, lines[1], "inspection")
	assert.Contains(t, lines[1], "full")
	assert.Contains(t, lines[1], "Майстерня")
}

func TestInventoryExportGroupedByCategory(t *testing.T) {
	service, registry, fpvRef, opticalRef := setupExportEnv(t)

	_, err := registry.Create(inventory.CreateInput{TypeRef: fpvRef, Quantity: 2})
	require.NoError(t, err)
	_, err = registry.Create(inventory.CreateInput{TypeRef: opticalRef, Quantity: 1})
	require.NoError(t, err)

	data, err := service.Inventory(Options{GroupBy: "category", Columns: []string{ColType, ColStatus}})
	require.NoError(t, err)
	csv := string(data)

	assert.Contains(t, csv, "fpv (2)")
	assert.Contains(t, csv, "optical (1)")
	assert.NotContains(t, csv, "Kit")
}

func TestInventoryExportValidation(t *testing.T) {
	service, _, _, _ := setupExportEnv(t)

	_, err := service.Inventory(Options{Columns: []string{"weight"}})
	assert.True(t, common.IsValidation(err))

	_, err = service.Inventory(Options{GroupBy: "color"})
	assert.True(t, common.IsValidation(err))
}
