package budget

import (
	"context"
	"testing"
	"time"

	"store-ops/core/reconcile"
	"store-ops/feature/masterdata/masterdatatest"
	"store-ops/feature/masterdata/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImport(t *testing.T) {
	db := masterdatatest.NewDB(t)
	north := masterdatatest.Location(t, db, "NORTH", "North")
	s01 := masterdatatest.Warehouse(t, db, "S01", north)
	grocery := masterdatatest.Category(t, db, "GRO", "Grocery")
	toys := masterdatatest.Category(t, db, "TOY", "Toys")

	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	manual := models.SalesBudget{WarehouseID: s01.ID, ItemCategoryID: grocery.ID, BudgetMonth: jan, Amount: decimal.NewFromInt(100), Status: models.StatusActive}
	synced := models.SalesBudget{WarehouseID: s01.ID, ItemCategoryID: toys.ID, BudgetMonth: jan, Amount: decimal.NewFromInt(50), FromRepo: true, Status: models.StatusActive}
	masterdatatest.Create(t, db, &manual)
	masterdatatest.Create(t, db, &synced)

	rows := masterdatatest.Rows(
		map[string]any{"Store IFS": "S01", "Item Category": "GRO", "Budget Month": "2024-01-20", "Amount": 150},
		map[string]any{"Store IFS": "S01", "Item Category": "TOY", "Budget Month": "2024-01-01", "Amount": 60},
		map[string]any{"Store IFS": "S01", "Item Category": "GRO", "Budget Month": "2024-02-03", "Amount": 80},
	)
	result := masterdatatest.Run(t, masterdatatest.Engine(db), NewDescriptor(), rows)

	assert.Equal(t, []int{2}, result.UpdatedRowNumbers)
	assert.Equal(t, []int{4}, result.InsertedRowNumbers)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Error, "originates from an upstream system and cannot be altered via import")

	var retired models.SalesBudget
	require.NoError(t, db.First(&retired, manual.ID).Error)
	assert.Equal(t, models.StatusInactive, retired.Status)
	assert.Equal(t, uint(7), retired.UpdatedBy)

	var replacement models.SalesBudget
	require.NoError(t, db.First(&replacement, result.Success[0].ID).Error)
	assert.NotEqual(t, manual.ID, replacement.ID)
	assert.Equal(t, models.StatusActive, replacement.Status)
	assert.True(t, replacement.Amount.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, "2024-01-01", replacement.BudgetMonth.UTC().Format("2006-01-02"))
	assert.False(t, replacement.FromRepo)

	var inserted models.SalesBudget
	require.NoError(t, db.First(&inserted, result.Success[1].ID).Error)
	assert.Equal(t, feb, inserted.BudgetMonth.UTC())

	var untouched models.SalesBudget
	require.NoError(t, db.First(&untouched, synced.ID).Error)
	assert.True(t, untouched.Amount.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, models.StatusActive, untouched.Status)

	assert.Equal(t, int64(4), masterdatatest.Count(t, db, &models.SalesBudget{}))
}

func TestImport_CorrectionsChain(t *testing.T) {
	db := masterdatatest.NewDB(t)
	north := masterdatatest.Location(t, db, "NORTH", "North")
	masterdatatest.Warehouse(t, db, "S01", north)
	masterdatatest.Category(t, db, "GRO", "Grocery")
	engine := masterdatatest.Engine(db)

	for _, amount := range []int{10, 20, 30} {
		rows := masterdatatest.Rows(map[string]any{"Store IFS": "S01", "Item Category": "GRO", "Budget Month": "2024-03-15", "Amount": amount})
		result := masterdatatest.Run(t, engine, NewDescriptor(), rows)
		require.Empty(t, result.Errors)
	}

	assert.Equal(t, int64(3), masterdatatest.Count(t, db, &models.SalesBudget{}))
	assert.Equal(t, int64(1), masterdatatest.Count(t, db, &models.SalesBudget{}, "status = ?", models.StatusActive))
	assert.Equal(t, int64(1), masterdatatest.Count(t, db, &models.SalesBudget{}, "status = ? AND amount = ?", models.StatusActive, 30))
}

func TestUpdate_IsRefused(t *testing.T) {
	err := NewDescriptor().Update(context.Background(), nil, 1, &record{}, reconcile.Actor{})
	assert.ErrorIs(t, err, errAppendOnly)
}
