package budget

import (
	"context"
	"errors"

	"store-ops/core/reconcile"
	"store-ops/core/utils"
	"store-ops/feature/masterdata"
	"store-ops/feature/masterdata/models"

	"gorm.io/gorm"
)

// Column labels.
const (
	MonthColumn  = "Budget Month"
	AmountColumn = "Amount"
)

var errAppendOnly = errors.New("sales budgets are append-only")

type record struct {
	models.SalesBudget
	store string
}

// Descriptor imports sales budgets.
type Descriptor struct{}

// NewDescriptor creates the budget descriptor.
func NewDescriptor() *Descriptor {
	return &Descriptor{}
}

func (d *Descriptor) Name() string   { return "budget" }
func (d *Descriptor) Module() string { return "sales_budgets" }

func (d *Descriptor) Columns() []reconcile.Column {
	return []reconcile.Column{
		{Label: masterdata.StoreColumn, Required: true, Description: "Warehouse IFS code"},
		{Label: masterdata.CategoryColumn, Required: true, Description: "Item category name or code"},
		{Label: MonthColumn, Required: true, Description: "Any date in the month"},
		{Label: AmountColumn, Required: true, Description: "Non-negative amount"},
	}
}

func (d *Descriptor) NaturalKeys() []reconcile.NaturalKey {
	return []reconcile.NaturalKey{{
		Name:  "store_category_month",
		Label: "Store IFS / Item Category / Budget Month",
		Parts: func(rec reconcile.Record) []string {
			r := rec.(*record)
			return []string{r.store, masterdata.IDKey(r.ItemCategoryID), masterdata.DateKey(r.BudgetMonth)}
		},
	}}
}

func (d *Descriptor) Loaders(rows []reconcile.Row) []reconcile.Loader {
	codes := reconcile.DistinctFolded(rows, masterdata.StoreColumn)
	active := masterdata.StoreScope("sales_budgets", codes, "item_category_id", "budget_month AS day", "from_repo")

	return []reconcile.Loader{
		masterdata.WarehouseLoader(codes),
		masterdata.CategoryLoader(),
		masterdata.ExistingLoader("store_category_month", func(db *gorm.DB) *gorm.DB {
			return active(db).Where("t.status = ?", models.StatusActive)
		}, func(b masterdata.StoreRow) (reconcile.Existing, []string) {
			return reconcile.Existing{ID: b.ID, Protected: b.FromRepo},
				[]string{b.Store, masterdata.IDKey(b.ItemCategoryID), masterdata.DateKey(utils.MonthStart(b.Day))}
		}),
	}
}

func (d *Descriptor) Resolve(row reconcile.Row, cache *reconcile.Cache) (reconcile.Resolved, error) {
	w, err := masterdata.ResolveWarehouse(row, cache)
	if err != nil {
		return reconcile.Resolved{}, err
	}

	categoryID, err := masterdata.ResolveCategory(row, cache)
	if err != nil {
		return reconcile.Resolved{}, err
	}

	month, err := masterdata.ParseDate(row, MonthColumn)
	if err != nil {
		return reconcile.Resolved{}, err
	}

	amount, err := masterdata.ParseAmount(row, AmountColumn)
	if err != nil {
		return reconcile.Resolved{}, err
	}

	return reconcile.Resolved{
		Record: &record{
			SalesBudget: models.SalesBudget{
				WarehouseID:    w.ID,
				ItemCategoryID: categoryID,
				BudgetMonth:    utils.MonthStart(month),
				Amount:         amount,
				Status:         models.StatusActive,
			},
			store: w.Code,
		},
		Locations: []reconcile.LocationRef{w.Location()},
	}, nil
}

func (d *Descriptor) UpdateMode() reconcile.UpdateMode { return reconcile.RetireAndInsert }

func (d *Descriptor) Insert(ctx context.Context, tx *gorm.DB, records []reconcile.Record, actor reconcile.Actor) error {
	rows := make([]reconcile.Record, len(records))
	for i, r := range records {
		b := &r.(*record).SalesBudget
		b.FromRepo = false
		rows[i] = b
	}
	return masterdata.CreateAll[models.SalesBudget](ctx, tx, rows, actor)
}

func (d *Descriptor) Update(ctx context.Context, tx *gorm.DB, id uint, rec reconcile.Record, actor reconcile.Actor) error {
	return errAppendOnly
}

// Retire flips the active budget id to inactive.
func (d *Descriptor) Retire(ctx context.Context, tx *gorm.DB, id uint, actor reconcile.Actor) error {
	return masterdata.UpdateByID(ctx, tx, &models.SalesBudget{}, id, actor, map[string]any{
		"status": models.StatusInactive,
	})
}
