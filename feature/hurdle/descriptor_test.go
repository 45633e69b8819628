package hurdle

import (
	"context"
	"testing"
	"time"

	"store-ops/core/permission"
	"store-ops/core/reconcile"
	"store-ops/feature/masterdata/masterdatatest"
	"store-ops/feature/masterdata/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestImport(t *testing.T) {
	db := masterdatatest.NewDB(t)
	north := masterdatatest.Location(t, db, "NORTH", "North")
	s01 := masterdatatest.Warehouse(t, db, "S01", north)

	existing := models.WarehouseHurdle{
		WarehouseID:  s01.ID,
		HurdleDate:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		HurdleAmount: decimal.RequireFromString("100"),
		Status:       models.StatusActive,
	}
	masterdatatest.Create(t, db, &existing)

	rows := masterdatatest.Rows(
		map[string]any{"Store IFS": "S01", "Hurdle Date": 45306.0, "Hurdle Amount": "2,500.75"},
		map[string]any{"Store IFS": "S01", "Hurdle Date": "2024-01-16", "Hurdle Amount": 900},
		map[string]any{"Store IFS": "S01", "Hurdle Date": "2024-01-16", "Hurdle Amount": 950},
		map[string]any{"Store IFS": "S01", "Hurdle Date": "someday", "Hurdle Amount": 1},
		map[string]any{"Store IFS": "S01", "Hurdle Date": "2024-01-17", "Hurdle Amount": "-5"},
		map[string]any{"Store IFS": "S01", "Hurdle Date": "2024-01-18"},
	)
	result := masterdatatest.Run(t, masterdatatest.Engine(db), NewDescriptor(), rows)

	assert.Equal(t, []int{2}, result.UpdatedRowNumbers)
	assert.Equal(t, []int{3}, result.InsertedRowNumbers)
	assert.Equal(t, []reconcile.RowFailure{
		{Row: 4, Error: "Duplicate Store IFS / Hurdle Date 'S01 / 2024-01-16' within this import (already on row 3)"},
		{Row: 5, Error: "Invalid Hurdle Date 'someday'"},
		{Row: 6, Error: "Hurdle Amount must not be negative"},
		{Row: 7, Error: "Hurdle Amount is required"},
	}, result.Errors)

	var updated models.WarehouseHurdle
	require.NoError(t, db.First(&updated, existing.ID).Error)
	assert.True(t, updated.HurdleAmount.Equal(decimal.RequireFromString("2500.75")), updated.HurdleAmount.String())
	assert.Equal(t, int64(2), masterdatatest.Count(t, db, &models.WarehouseHurdle{}))
}

func TestImport_FoldedStoreCodeUpdates(t *testing.T) {
	db := masterdatatest.NewDB(t)
	north := masterdatatest.Location(t, db, "NORTH", "North")
	s01 := masterdatatest.Warehouse(t, db, "S01", north)
	existing := models.WarehouseHurdle{
		WarehouseID:  s01.ID,
		HurdleDate:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		HurdleAmount: decimal.RequireFromString("100"),
		Status:       models.StatusActive,
	}
	masterdatatest.Create(t, db, &existing)

	rows := masterdatatest.Rows(
		map[string]any{"Store IFS": "Ｓ０１", "Hurdle Date": "2024-01-15", "Hurdle Amount": 300},
		map[string]any{"Store IFS": " s01 ", "Hurdle Date": "2024-01-16", "Hurdle Amount": 400},
	)
	result := masterdatatest.Run(t, masterdatatest.Engine(db), NewDescriptor(), rows)

	assert.Empty(t, result.Errors)
	assert.Equal(t, []int{2}, result.UpdatedRowNumbers)
	assert.Equal(t, []int{3}, result.InsertedRowNumbers)
	assert.Equal(t, int64(2), masterdatatest.Count(t, db, &models.WarehouseHurdle{}, "warehouse_id = ?", s01.ID))
}

func TestImport_DenyPolicyWithRoles(t *testing.T) {
	db := masterdatatest.NewDB(t)
	north := masterdatatest.Location(t, db, "NORTH", "North")
	masterdatatest.Warehouse(t, db, "S01", north)
	masterdatatest.Create(t, db, []*permission.Role{
		{ID: 1, Name: "Store Manager"},
		{ID: 2, Name: "Administrator", AllLocations: true},
	})

	engine := reconcile.NewEngine(db, permission.NewStore(db), reconcile.Config{EmptyScopePolicy: "deny"}, zap.NewNop())
	run := func(t *testing.T, roleID uint, date string) *reconcile.BatchResult {
		rows := masterdatatest.Rows(map[string]any{"Store IFS": "S01", "Hurdle Date": date, "Hurdle Amount": 10})
		result, err := engine.Run(context.Background(), NewDescriptor(), rows, reconcile.Actor{UserID: 7, RoleID: roleID}, reconcile.Options{})
		require.NoError(t, err)
		return result
	}

	t.Run("AllLocationsRole", func(t *testing.T) {
		result := run(t, 2, "2024-02-01")
		assert.Empty(t, result.Errors)
		assert.Equal(t, 1, result.InsertedCount)
	})

	t.Run("RoleWithoutAssignments", func(t *testing.T) {
		result := run(t, 1, "2024-02-02")
		assert.Equal(t, 0, result.InsertedCount)
		assert.Equal(t, []reconcile.RowFailure{
			{Row: 2, Error: "Location 'NORTH' is outside your assigned locations (Store IFS / Hurdle Date 'S01 / 2024-02-02')"},
		}, result.Errors)
	})

	t.Run("AssignedRole", func(t *testing.T) {
		masterdatatest.Create(t, db, &permission.UserLocation{UserID: 7, RoleID: 1, LocationID: north.ID, Status: 1})
		result := run(t, 1, "2024-02-03")
		assert.Empty(t, result.Errors)
		assert.Equal(t, 1, result.InsertedCount)
	})
}
