package rate

import (
	"context"

	"store-ops/core/reconcile"
	"store-ops/feature/masterdata"
	"store-ops/feature/masterdata/models"

	"gorm.io/gorm"
)

// RateColumn is the rate column label.
const RateColumn = "Rate"

type record struct {
	models.WarehouseRate
	store string
}

// Descriptor imports warehouse rates.
type Descriptor struct{}

// NewDescriptor creates the rate descriptor.
func NewDescriptor() *Descriptor {
	return &Descriptor{}
}

func (d *Descriptor) Name() string   { return "rate" }
func (d *Descriptor) Module() string { return "warehouse_rates" }

func (d *Descriptor) Columns() []reconcile.Column {
	return []reconcile.Column{
		{Label: masterdata.StoreColumn, Required: true, Description: "Warehouse IFS code"},
		{Label: masterdata.CategoryColumn, Required: true, Description: "Item category name or code"},
		{Label: RateColumn, Required: true, Description: "Non-negative rate"},
		{Label: masterdata.StatusColumn, Description: "ACTIVE, INACTIVE or a status name; defaults to ACTIVE"},
	}
}

func (d *Descriptor) NaturalKeys() []reconcile.NaturalKey {
	return []reconcile.NaturalKey{{
		Name:  "store_category",
		Label: "Store IFS / Item Category",
		Parts: func(rec reconcile.Record) []string {
			r := rec.(*record)
			return []string{r.store, masterdata.IDKey(r.ItemCategoryID)}
		},
	}}
}

func (d *Descriptor) Loaders(rows []reconcile.Row) []reconcile.Loader {
	codes := reconcile.DistinctFolded(rows, masterdata.StoreColumn)
	return []reconcile.Loader{
		masterdata.WarehouseLoader(codes),
		masterdata.CategoryLoader(),
		masterdata.StatusLoader(),
		masterdata.ExistingLoader("store_category", masterdata.StoreScope("warehouse_rates", codes, "item_category_id"),
			func(r masterdata.StoreRow) (reconcile.Existing, []string) {
				return reconcile.Existing{ID: r.ID}, []string{r.Store, masterdata.IDKey(r.ItemCategoryID)}
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

	rate, err := masterdata.ParseAmount(row, RateColumn)
	if err != nil {
		return reconcile.Resolved{}, err
	}

	status, ok, err := reconcile.ResolveStatus(row, masterdata.StatusColumn, cache)
	if err != nil {
		return reconcile.Resolved{}, err
	}
	if !ok {
		status = models.StatusActive
	}

	return reconcile.Resolved{
		Record: &record{
			WarehouseRate: models.WarehouseRate{
				WarehouseID:    w.ID,
				ItemCategoryID: categoryID,
				Rate:           rate,
				Status:         status,
			},
			store: w.Code,
		},
		Locations: []reconcile.LocationRef{w.Location()},
	}, nil
}

func (d *Descriptor) UpdateMode() reconcile.UpdateMode { return reconcile.UpdateInPlace }

func (d *Descriptor) Insert(ctx context.Context, tx *gorm.DB, records []reconcile.Record, actor reconcile.Actor) error {
	rows := make([]reconcile.Record, len(records))
	for i, r := range records {
		rows[i] = &r.(*record).WarehouseRate
	}
	return masterdata.CreateAll[models.WarehouseRate](ctx, tx, rows, actor)
}

func (d *Descriptor) Update(ctx context.Context, tx *gorm.DB, id uint, rec reconcile.Record, actor reconcile.Actor) error {
	r := rec.(*record)
	return masterdata.UpdateByID(ctx, tx, &models.WarehouseRate{}, id, actor, map[string]any{
		"rate":   r.Rate,
		"status": r.Status,
	})
}
