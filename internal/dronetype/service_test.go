package dronetype

import (
	"testing"

	"droneops/internal/catalog"
	"droneops/internal/common"
	"droneops/internal/template"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db       *gorm.DB
	service  *Service
	model    *catalog.DroneModel
	control  *catalog.Frequency
	video    *catalog.Frequency
	powerTpl *template.PowerTemplate
	videoTpl *template.VideoTemplate
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalog.Manufacturer{},
		&catalog.DroneModel{},
		&catalog.DronePurpose{},
		&catalog.Frequency{},
		&template.PowerTemplate{},
		&template.VideoTemplate{},
		&FPVDroneType{},
		&OpticalDroneType{},
	))
	// Referenced by deleteType; no inventory code runs in these tests.
	require.NoError(t, db.Exec(`CREATE TABLE uav_instances (id text, drone_type_kind text, drone_type_id text)`).Error)

	env := &testEnv{db: db, service: NewService(db)}

	catalogService := catalog.NewService(db)
	manufacturer, err := catalogService.CreateManufacturer("Вирій")
	require.NoError(t, err)
	env.model, err = catalogService.CreateDroneModel("Mark-1", manufacturer.ID)
	require.NoError(t, err)
	env.control, err = catalogService.CreateFrequency(915, catalog.UnitMHz)
	require.NoError(t, err)
	env.video, err = catalogService.CreateFrequency(5.8, catalog.UnitGHz)
	require.NoError(t, err)

	templateService := template.NewService(db)
	env.powerTpl, err = templateService.CreatePowerTemplate(template.ConnectorXT60, "6s2p", 8000)
	require.NoError(t, err)
	env.videoTpl, err = templateService.CreateVideoTemplate(nil, true, 10)
	require.NoError(t, err)

	return env
}

func TestParseTypeRef(t *testing.T) {
	id := uuid.New()

	ref, err := ParseTypeRef("fpv-" + id.String())
	require.NoError(t, err)
	assert.Equal(t, KindFPV, ref.Kind)
	assert.Equal(t, id, ref.ID)
	assert.Equal(t, "fpv-"+id.String(), ref.String())

	ref, err = ParseTypeRef("optical-" + id.String())
	require.NoError(t, err)
	assert.Equal(t, KindOptical, ref.Kind)

	_, err = ParseTypeRef("submarine-" + id.String())
	assert.True(t, common.IsValidation(err))

	_, err = ParseTypeRef("fpv-not-a-uuid")
	assert.True(t, common.IsValidation(err))

	_, err = ParseTypeRef("")
	assert.True(t, common.IsValidation(err))
}

func TestCreateAndResolveFPVType(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.service.CreateFPVType(FPVTypeInput{
		ModelID:             env.model.ID,
		PropSize:            "10",
		ControlFrequencyIDs: []uuid.UUID{env.control.ID},
		VideoFrequencyID:    env.video.ID,
		PowerTemplateID:     env.powerTpl.ID,
		HasThermal:          true,
	})
	require.NoError(t, err)

	view, err := env.service.Resolve(TypeRef{Kind: KindFPV, ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, KindFPV, view.Kind)
	assert.Equal(t, env.powerTpl.ID, view.PowerTemplateID)
	assert.True(t, view.HasThermal)
	assert.False(t, view.NeedsSpool())
	assert.Contains(t, view.Label, "Mark-1")
}

func TestCreateAndResolveOpticalType(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.service.CreateOpticalType(OpticalTypeInput{
		ModelID:             env.model.ID,
		PropSize:            "10",
		ControlFrequencyIDs: []uuid.UUID{env.control.ID},
		VideoTemplateID:     env.videoTpl.ID,
		PowerTemplateID:     env.powerTpl.ID,
	})
	require.NoError(t, err)

	view, err := env.service.Resolve(TypeRef{Kind: KindOptical, ID: created.ID})
	require.NoError(t, err)
	assert.True(t, view.NeedsSpool())
	require.NotNil(t, view.VideoTemplate)
	assert.Equal(t, env.videoTpl.ID, view.VideoTemplate.ID)
}

func TestResolveUnknownTypeIsValidationError(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.Resolve(TypeRef{Kind: KindFPV, ID: uuid.New()})
	assert.True(t, common.IsValidation(err))

	_, err = env.service.Resolve(TypeRef{Kind: "submarine", ID: uuid.New()})
	assert.True(t, common.IsValidation(err))
}

func TestCreateTypeValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.CreateFPVType(FPVTypeInput{
		ModelID:             env.model.ID,
		PropSize:            "11.5",
		ControlFrequencyIDs: []uuid.UUID{env.control.ID},
		VideoFrequencyID:    env.video.ID,
		PowerTemplateID:     env.powerTpl.ID,
	})
	assert.True(t, common.IsValidation(err))

	_, err = env.service.CreateFPVType(FPVTypeInput{
		ModelID:          env.model.ID,
		PropSize:         "10",
		VideoFrequencyID: env.video.ID,
		PowerTemplateID:  env.powerTpl.ID,
	})
	assert.True(t, common.IsValidation(err))

	_, err = env.service.CreateFPVType(FPVTypeInput{
		ModelID:             env.model.ID,
		PropSize:            "10",
		ControlFrequencyIDs: []uuid.UUID{uuid.New()},
		VideoFrequencyID:    env.video.ID,
		PowerTemplateID:     env.powerTpl.ID,
	})
	assert.True(t, common.IsValidation(err))
}

func TestDeleteTypeBlockedByInstances(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.service.CreateFPVType(FPVTypeInput{
		ModelID:             env.model.ID,
		PropSize:            "10",
		ControlFrequencyIDs: []uuid.UUID{env.control.ID},
		VideoFrequencyID:    env.video.ID,
		PowerTemplateID:     env.powerTpl.ID,
	})
	require.NoError(t, err)

	require.NoError(t, env.db.Exec(
		`INSERT INTO uav_instances (id, drone_type_kind, drone_type_id) VALUES (?, ?, ?)`,
		uuid.New().String(), string(KindFPV), created.ID.String(),
	).Error)

	err = env.service.DeleteFPVType(created.ID)
	assert.True(t, common.IsValidation(err))

	require.NoError(t, env.db.Exec(`DELETE FROM uav_instances`).Error)
	require.NoError(t, env.service.DeleteFPVType(created.ID))
}
