package template

import (
	"testing"

	"droneops/internal/catalog"
	"droneops/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalog.Manufacturer{},
		&catalog.DroneModel{},
		&PowerTemplate{},
		&VideoTemplate{},
	))
	return db
}

func TestPowerTemplateNameDerivation(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)

	tpl, err := service.CreatePowerTemplate(ConnectorXT60, "4s2p", 1300)
	require.NoError(t, err)
	assert.Equal(t, "4S2P 1300mAh XT60", tpl.Name)
	assert.InDelta(t, 14.8, tpl.Voltage(), 0.001)
}

func TestPowerTemplateValidation(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)

	_, err := service.CreatePowerTemplate("usb-c", "4s2p", 1300)
	assert.True(t, common.IsValidation(err))

	_, err = service.CreatePowerTemplate(ConnectorXT60, "9s9p", 1300)
	assert.True(t, common.IsValidation(err))

	_, err = service.CreatePowerTemplate(ConnectorXT60, "4s2p", 0)
	assert.True(t, common.IsValidation(err))
}

func TestPowerTemplateDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)

	_, err := service.CreatePowerTemplate(ConnectorXT60, "4s2p", 1300)
	require.NoError(t, err)

	_, err = service.CreatePowerTemplate(ConnectorXT60, "4s2p", 1300)
	assert.True(t, common.IsValidation(err))
}

func TestPowerTemplateUpdateRederivesName(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)

	tpl, err := service.CreatePowerTemplate(ConnectorXT60, "4s2p", 1300)
	require.NoError(t, err)

	updated, err := service.UpdatePowerTemplate(tpl.ID, ConnectorXT90, "6s1p", 8000)
	require.NoError(t, err)
	assert.Equal(t, "6S1P 8000mAh XT90", updated.Name)

	// Updating without changes keeps its own name without a duplicate error.
	_, err = service.UpdatePowerTemplate(tpl.ID, ConnectorXT90, "6s1p", 8000)
	require.NoError(t, err)
}

func TestPowerTemplateSoftDelete(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)

	tpl, err := service.CreatePowerTemplate(ConnectorXT60, "4s2p", 1300)
	require.NoError(t, err)
	require.NoError(t, service.SoftDeletePowerTemplate(tpl.ID))

	listed, err := service.ListPowerTemplates()
	require.NoError(t, err)
	assert.Empty(t, listed)

	// The row survives for historical references.
	var count int64
	require.NoError(t, db.Model(&PowerTemplate{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// A retired name is free for reuse.
	_, err = service.CreatePowerTemplate(ConnectorXT60, "4s2p", 1300)
	require.NoError(t, err)
}

func TestVideoTemplateNameDerivation(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)

	analog, err := service.CreateVideoTemplate(nil, true, 10)
	require.NoError(t, err)
	assert.Equal(t, "Analog 10km", analog.Name)

	catalogService := catalog.NewService(db)
	manufacturer, err := catalogService.CreateManufacturer("Вирій")
	require.NoError(t, err)
	model, err := catalogService.CreateDroneModel("Mark-1", manufacturer.ID)
	require.NoError(t, err)

	digital, err := service.CreateVideoTemplate(&model.ID, false, 20)
	require.NoError(t, err)
	assert.Equal(t, "Digital 20km (Mark-1)", digital.Name)
}

func TestVideoTemplateUnknownModel(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)

	id := uuid.New()
	_, err := service.CreateVideoTemplate(&id, true, 10)
	assert.True(t, common.IsNotFound(err))
}

func TestVideoTemplateSoftDelete(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)

	tpl, err := service.CreateVideoTemplate(nil, true, 10)
	require.NoError(t, err)
	require.NoError(t, service.SoftDeleteVideoTemplate(tpl.ID))

	listed, err := service.ListVideoTemplates()
	require.NoError(t, err)
	assert.Empty(t, listed)
}
