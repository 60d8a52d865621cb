package inventory

import (
	"testing"

	"droneops/internal/catalog"
	"droneops/internal/dronetype"
	"droneops/internal/movement"
	"droneops/internal/template"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fixture wires the full service stack against an in-memory database with
// one FPV and one optical drone type ready to use.
type fixture struct {
	db         *gorm.DB
	registry   *Registry
	assignment *Assignment
	types      *dronetype.Service
	ledger     *movement.Ledger

	powerTpl    *template.PowerTemplate
	altPowerTpl *template.PowerTemplate
	videoTpl    *template.VideoTemplate
	fpvType     *dronetype.FPVDroneType
	opticalType *dronetype.OpticalDroneType
	workshop    movement.Location
	brigade     movement.Location
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalog.Manufacturer{},
		&catalog.DroneModel{},
		&catalog.DronePurpose{},
		&catalog.DroneRole{},
		&catalog.Frequency{},
		&template.PowerTemplate{},
		&template.VideoTemplate{},
		&dronetype.FPVDroneType{},
		&dronetype.OpticalDroneType{},
		&OtherComponentType{},
		&UAVInstance{},
		&Component{},
		&movement.Location{},
		&movement.UAVMovement{},
	))
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)

	f := &fixture{
		db:     db,
		types:  dronetype.NewService(db),
		ledger: movement.NewLedger(db),
	}
	f.registry = NewRegistry(db, f.types, f.ledger)
	f.assignment = NewAssignment(db, f.types)

	f.workshop = movement.Location{Name: "Майстерня", LocationType: movement.LocationWorkshop}
	f.brigade = movement.Location{Name: "Бригада", LocationType: movement.LocationBrigade}
	require.NoError(t, db.Create(&f.workshop).Error)
	require.NoError(t, db.Create(&f.brigade).Error)

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
	f.powerTpl, err = templateService.CreatePowerTemplate(template.ConnectorXT60, "6s2p", 8000)
	require.NoError(t, err)
	f.altPowerTpl, err = templateService.CreatePowerTemplate(template.ConnectorXT30, "4s1p", 1300)
	require.NoError(t, err)
	f.videoTpl, err = templateService.CreateVideoTemplate(nil, true, 10)
	require.NoError(t, err)

	f.fpvType, err = f.types.CreateFPVType(dronetype.FPVTypeInput{
		ModelID:             model.ID,
		PropSize:            "10",
		ControlFrequencyIDs: []uuid.UUID{control.ID},
		VideoFrequencyID:    video.ID,
		PowerTemplateID:     f.powerTpl.ID,
	})
	require.NoError(t, err)

	f.opticalType, err = f.types.CreateOpticalType(dronetype.OpticalTypeInput{
		ModelID:             model.ID,
		PropSize:            "10",
		ControlFrequencyIDs: []uuid.UUID{control.ID},
		VideoTemplateID:     f.videoTpl.ID,
		PowerTemplateID:     f.powerTpl.ID,
	})
	require.NoError(t, err)

	return f
}

func (f *fixture) fpvRef() dronetype.TypeRef {
	return dronetype.TypeRef{Kind: dronetype.KindFPV, ID: f.fpvType.ID}
}

func (f *fixture) opticalRef() dronetype.TypeRef {
	return dronetype.TypeRef{Kind: dronetype.KindOptical, ID: f.opticalType.ID}
}
