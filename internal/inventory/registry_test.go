package inventory

import (
	"testing"

	"droneops/internal/common"
	"droneops/internal/dronetype"
	"droneops/internal/movement"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBatchWithBatteries(t *testing.T) {
	f := newFixture(t)

	created, err := f.registry.Create(CreateInput{
		TypeRef:     f.fpvRef(),
		Quantity:    3,
		WithBattery: true,
	})
	require.NoError(t, err)
	require.Len(t, created, 3)

	for _, u := range created {
		got, err := f.registry.Get(u.ID)
		require.NoError(t, err)
		assert.Equal(t, UAVStatusInspection, got.Status)
		require.NotNil(t, got.CurrentLocation)
		assert.Equal(t, movement.LocationWorkshop, got.CurrentLocation.LocationType)
		assert.Equal(t, KitFull, got.KitStatus())
		require.Len(t, got.Components, 1)
		assert.Equal(t, KindBattery, got.Components[0].Kind)
		require.NotNil(t, got.Components[0].PowerTemplateID)
		assert.Equal(t, f.powerTpl.ID, *got.Components[0].PowerTemplateID)
		assert.Equal(t, ComponentStatusInUse, got.Components[0].Status)

		history, err := f.ledger.ListByUAV(u.ID)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, movement.ReasonCreated, history[0].Reason)
		assert.Equal(t, f.workshop.ID, history[0].ToLocationID)
	}
}

func TestCreateOpticalWithSpool(t *testing.T) {
	f := newFixture(t)

	created, err := f.registry.Create(CreateInput{
		TypeRef:     f.opticalRef(),
		Quantity:    1,
		WithBattery: true,
		WithSpool:   true,
	})
	require.NoError(t, err)

	got, err := f.registry.Get(created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, KitFull, got.KitStatus())
	require.Len(t, got.Components, 2)
}

func TestCreateOpticalBatteryOnlyIsPartialKit(t *testing.T) {
	f := newFixture(t)

	created, err := f.registry.Create(CreateInput{
		TypeRef:     f.opticalRef(),
		Quantity:    1,
		WithBattery: true,
	})
	require.NoError(t, err)

	got, err := f.registry.Get(created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, KitPartial, got.KitStatus())
}

func TestCreateQuantityBounds(t *testing.T) {
	f := newFixture(t)

	_, err := f.registry.Create(CreateInput{TypeRef: f.fpvRef(), Quantity: 0})
	assert.True(t, common.IsValidation(err))

	_, err = f.registry.Create(CreateInput{TypeRef: f.fpvRef(), Quantity: 101})
	assert.True(t, common.IsValidation(err))
}

func TestCreateUnknownTypeRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.registry.Create(CreateInput{
		TypeRef:  dronetype.TypeRef{Kind: dronetype.KindFPV, ID: uuid.New()},
		Quantity: 1,
	})
	assert.True(t, common.IsValidation(err))
}

func TestBulkGivenSkipsNotReady(t *testing.T) {
	f := newFixture(t)

	created, err := f.registry.Create(CreateInput{
		TypeRef:     f.fpvRef(),
		Quantity:    5,
		WithBattery: true,
	})
	require.NoError(t, err)

	ids := make([]uuid.UUID, 0, len(created))
	for i, u := range created {
		ids = append(ids, u.ID)
		if i < 3 {
			require.NoError(t, f.db.Model(&UAVInstance{}).Where("id = ?", u.ID).Update("status", UAVStatusReady).Error)
		}
	}

	result, err := f.registry.BulkTransition(ids, UAVStatusGiven, &f.brigade.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Affected)
	assert.Equal(t, 2, result.Skipped)

	for i, u := range created {
		got, err := f.registry.Get(u.ID)
		require.NoError(t, err)
		if i < 3 {
			assert.Equal(t, UAVStatusGiven, got.Status)
			assert.Equal(t, f.brigade.ID, *got.CurrentLocationID)
			assert.Empty(t, got.Components)

			var battery Component
			require.NoError(t, f.db.Where("kind = ? AND assigned_to_uav_id IS NULL AND status = ?", KindBattery, ComponentStatusGiven).First(&battery).Error)
		} else {
			assert.Equal(t, UAVStatusInspection, got.Status)
			assert.Equal(t, KitFull, got.KitStatus())
		}
	}
}

func TestBulkGivenRequiresLocation(t *testing.T) {
	f := newFixture(t)
	created, err := f.registry.Create(CreateInput{TypeRef: f.fpvRef(), Quantity: 1})
	require.NoError(t, err)

	_, err = f.registry.BulkTransition([]uuid.UUID{created[0].ID}, UAVStatusGiven, nil, nil)
	assert.True(t, common.IsValidation(err))
}

func TestBulkUnknownActionRejected(t *testing.T) {
	f := newFixture(t)
	created, err := f.registry.Create(CreateInput{TypeRef: f.fpvRef(), Quantity: 1})
	require.NoError(t, err)

	_, err = f.registry.BulkTransition([]uuid.UUID{created[0].ID}, "explode", nil, nil)
	assert.True(t, common.IsValidation(err))

	_, err = f.registry.BulkTransition(nil, UAVStatusReady, nil, nil)
	assert.True(t, common.IsValidation(err))
}

func TestBulkRepairWithRelocation(t *testing.T) {
	f := newFixture(t)
	created, err := f.registry.Create(CreateInput{TypeRef: f.fpvRef(), Quantity: 2})
	require.NoError(t, err)

	ids := []uuid.UUID{created[0].ID, created[1].ID}
	result, err := f.registry.BulkTransition(ids, UAVStatusRepair, &f.brigade.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Affected)

	for _, id := range ids {
		got, err := f.registry.Get(id)
		require.NoError(t, err)
		assert.Equal(t, UAVStatusRepair, got.Status)
		assert.Equal(t, f.brigade.ID, *got.CurrentLocationID)

		history, err := f.ledger.ListByUAV(id)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, movement.ReasonRepair, history[1].Reason)
	}
}

func TestToggleGivenRoundTrip(t *testing.T) {
	f := newFixture(t)
	created, err := f.registry.Create(CreateInput{TypeRef: f.fpvRef(), Quantity: 1})
	require.NoError(t, err)
	id := created[0].ID
	require.NoError(t, f.db.Model(&UAVInstance{}).Where("id = ?", id).Update("status", UAVStatusReady).Error)

	uav, err := f.registry.ToggleGiven(id, &f.brigade.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, UAVStatusGiven, uav.Status)
	assert.Equal(t, f.brigade.ID, *uav.CurrentLocationID)

	uav, err = f.registry.ToggleGiven(id, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, UAVStatusInspection, uav.Status)
	assert.Equal(t, f.workshop.ID, *uav.CurrentLocationID)

	history, err := f.ledger.ListByUAV(id)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, movement.ReasonGiven, history[1].Reason)
	assert.Equal(t, movement.ReasonReturned, history[2].Reason)
}

func TestToggleGivenRejectsOtherStatuses(t *testing.T) {
	f := newFixture(t)
	created, err := f.registry.Create(CreateInput{TypeRef: f.fpvRef(), Quantity: 1})
	require.NoError(t, err)

	_, err = f.registry.ToggleGiven(created[0].ID, &f.brigade.ID, nil)
	assert.True(t, common.IsValidation(err))
}

func TestDeleteKeepsComponentsDisassembled(t *testing.T) {
	f := newFixture(t)
	created, err := f.registry.Create(CreateInput{TypeRef: f.fpvRef(), Quantity: 1, WithBattery: true})
	require.NoError(t, err)
	id := created[0].ID

	require.NoError(t, f.registry.Delete(id, false))

	got, err := f.registry.Get(id)
	require.NoError(t, err)
	assert.Equal(t, UAVStatusDeleted, got.Status)

	var battery Component
	require.NoError(t, f.db.Where("kind = ?", KindBattery).First(&battery).Error)
	assert.Nil(t, battery.AssignedToUAVID)
	assert.Equal(t, ComponentStatusDisassembled, battery.Status)
}

func TestDeleteWithComponents(t *testing.T) {
	f := newFixture(t)
	created, err := f.registry.Create(CreateInput{TypeRef: f.fpvRef(), Quantity: 1, WithBattery: true})
	require.NoError(t, err)

	require.NoError(t, f.registry.Delete(created[0].ID, true))

	var count int64
	require.NoError(t, f.db.Model(&Component{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateRejectsDirectGiven(t *testing.T) {
	f := newFixture(t)
	created, err := f.registry.Create(CreateInput{TypeRef: f.fpvRef(), Quantity: 1})
	require.NoError(t, err)

	_, err = f.registry.Update(created[0].ID, UAVStatusGiven, nil, nil)
	assert.True(t, common.IsValidation(err))

	uav, err := f.registry.Update(created[0].ID, UAVStatusReady, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, UAVStatusReady, uav.Status)
}

func TestListFiltersAndPagination(t *testing.T) {
	f := newFixture(t)

	_, err := f.registry.Create(CreateInput{TypeRef: f.fpvRef(), Quantity: 3, WithBattery: true})
	require.NoError(t, err)
	_, err = f.registry.Create(CreateInput{TypeRef: f.opticalRef(), Quantity: 2})
	require.NoError(t, err)

	// Deleted instances stay out of active listings.
	bare, err := f.registry.Create(CreateInput{TypeRef: f.fpvRef(), Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, f.registry.Delete(bare[0].ID, false))

	all, total, err := f.registry.List(ListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, all, 5)

	fpvOnly, total, err := f.registry.List(ListFilter{Category: "fpv"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	for _, u := range fpvOnly {
		assert.Equal(t, dronetype.KindFPV, u.DroneTypeKind)
	}

	fullKits, total, err := f.registry.List(ListFilter{Kit: KitFull})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	for _, u := range fullKits {
		assert.Equal(t, KitFull, u.KitStatus())
	}

	noKits, _, err := f.registry.List(ListFilter{Kit: KitNone})
	require.NoError(t, err)
	assert.Len(t, noKits, 2)

	page, total, err := f.registry.List(ListFilter{Page: 2, PerPage: 3})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, page, 2)

	// Pagination applies after the kit filter, total counts all matches.
	kitPage, total, err := f.registry.List(ListFilter{Kit: KitFull, Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, kitPage, 1)

	empty, total, err := f.registry.List(ListFilter{Page: 3, PerPage: 3})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Empty(t, empty)
}
