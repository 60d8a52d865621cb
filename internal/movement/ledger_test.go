package movement

import (
	"testing"

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
	require.NoError(t, db.AutoMigrate(&Location{}, &UAVMovement{}))
	return db
}

func seedLocations(t *testing.T, db *gorm.DB) (Location, Location) {
	t.Helper()
	workshop := Location{Name: "Майстерня", LocationType: LocationWorkshop}
	brigade := Location{Name: "Бригада", LocationType: LocationBrigade}
	require.NoError(t, db.Create(&workshop).Error)
	require.NoError(t, db.Create(&brigade).Error)
	return workshop, brigade
}

func TestRecordAndListByUAV(t *testing.T) {
	db := setupTestDB(t)
	workshop, brigade := seedLocations(t, db)
	ledger := NewLedger(db)
	uavID := uuid.New()

	require.NoError(t, ledger.Record(db, uavID, nil, workshop.ID, nil, ReasonCreated))
	require.NoError(t, ledger.Record(db, uavID, &workshop.ID, brigade.ID, nil, ReasonGiven))
	require.NoError(t, ledger.Record(db, uuid.New(), nil, workshop.ID, nil, ReasonCreated))

	history, err := ledger.ListByUAV(uavID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, ReasonCreated, history[0].Reason)
	assert.Nil(t, history[0].FromLocationID)
	assert.Equal(t, ReasonGiven, history[1].Reason)
	assert.Equal(t, workshop.ID, *history[1].FromLocationID)
	assert.Equal(t, brigade.Name, history[1].ToLocation.Name)
}

func TestQueryByDateAndBatchGroupsSameDayMoves(t *testing.T) {
	db := setupTestDB(t)
	workshop, brigade := seedLocations(t, db)
	ledger := NewLedger(db)

	// Three created-moves and two give-aways, all today.
	for i := 0; i < 3; i++ {
		require.NoError(t, ledger.Record(db, uuid.New(), nil, workshop.ID, nil, ReasonCreated))
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, ledger.Record(db, uuid.New(), &workshop.ID, brigade.ID, nil, ReasonGiven))
	}

	days, totalDays, err := ledger.QueryByDateAndBatch(1, 30)
	require.NoError(t, err)
	assert.EqualValues(t, 1, totalDays)
	require.Len(t, days, 1)
	require.Len(t, days[0].Batches, 2)

	counts := map[string]int{}
	for _, b := range days[0].Batches {
		counts[b.Reason] = b.Count
	}
	assert.Equal(t, 3, counts[ReasonCreated])
	assert.Equal(t, 2, counts[ReasonGiven])
}

func TestQueryByDateAndBatchPagination(t *testing.T) {
	db := setupTestDB(t)
	workshop, _ := seedLocations(t, db)
	ledger := NewLedger(db)
	require.NoError(t, ledger.Record(db, uuid.New(), nil, workshop.ID, nil, ReasonCreated))

	days, totalDays, err := ledger.QueryByDateAndBatch(2, 30)
	require.NoError(t, err)
	assert.EqualValues(t, 1, totalDays)
	assert.Empty(t, days)
}

func TestLocationByType(t *testing.T) {
	db := setupTestDB(t)
	workshop, _ := seedLocations(t, db)
	ledger := NewLedger(db)

	loc, err := ledger.LocationByType(LocationWorkshop)
	require.NoError(t, err)
	assert.Equal(t, workshop.ID, loc.ID)

	_, err = ledger.LocationByType("orbit")
	assert.Error(t, err)
}
