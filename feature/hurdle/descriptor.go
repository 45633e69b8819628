package hurdle

import (
	"context"

	"store-ops/core/reconcile"
	"store-ops/feature/masterdata"
	"store-ops/feature/masterdata/models"

	"gorm.io/gorm"
)

// Column labels.
const (
	DateColumn   = "Hurdle Date"
	AmountColumn = "Hurdle Amount"
)

type record struct {
	models.WarehouseHurdle
	store string
}

// Descriptor imports warehouse hurdles.
type Descriptor struct{}

// NewDescriptor creates the hurdle descriptor.
func NewDescriptor() *Descriptor {
	return &Descriptor{}
}

func (d *Descriptor) Name() string   { return "hurdle" }
func (d *Descriptor) Module() string { return "warehouse_hurdles" }

func (d *Descriptor) Columns() []reconcile.Column {
	return []reconcile.Column{
		{Label: masterdata.StoreColumn, Required: true, Description: "Warehouse IFS code"},
		{Label: DateColumn, Required: true, Description: "YYYY-MM-DD or an Excel date"},
		{Label: AmountColumn, Required: true, Description: "Non-negative amount"},
	}
}

func (d *Descriptor) NaturalKeys() []reconcile.NaturalKey {
	return []reconcile.NaturalKey{{
		Name:  "store_date",
		Label: "Store IFS / Hurdle Date",
		Parts: func(rec reconcile.Record) []string {
			r := rec.(*record)
			return []string{r.store, masterdata.DateKey(r.HurdleDate)}
		},
	}}
}

func (d *Descriptor) Loaders(rows []reconcile.Row) []reconcile.Loader {
	codes := reconcile.DistinctFolded(rows, masterdata.StoreColumn)
	return []reconcile.Loader{
		masterdata.WarehouseLoader(codes),
		masterdata.ExistingLoader("store_date", masterdata.StoreScope("warehouse_hurdles", codes, "hurdle_date AS day"),
			func(h masterdata.StoreRow) (reconcile.Existing, []string) {
				return reconcile.Existing{ID: h.ID}, []string{h.Store, masterdata.DateKey(h.Day)}
			}),
	}
}

func (d *Descriptor) Resolve(row reconcile.Row, cache *reconcile.Cache) (reconcile.Resolved, error) {
	w, err := masterdata.ResolveWarehouse(row, cache)
	if err != nil {
		return reconcile.Resolved{}, err
	}

	date, err := masterdata.ParseDate(row, DateColumn)
	if err != nil {
		return reconcile.Resolved{}, err
	}

	amount, err := masterdata.ParseAmount(row, AmountColumn)
	if err != nil {
		return reconcile.Resolved{}, err
	}

	return reconcile.Resolved{
		Record: &record{
			WarehouseHurdle: models.WarehouseHurdle{
				WarehouseID:  w.ID,
				HurdleDate:   date,
				HurdleAmount: amount,
				Status:       models.StatusActive,
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
		rows[i] = &r.(*record).WarehouseHurdle
	}
	return masterdata.CreateAll[models.WarehouseHurdle](ctx, tx, rows, actor)
}

func (d *Descriptor) Update(ctx context.Context, tx *gorm.DB, id uint, rec reconcile.Record, actor reconcile.Actor) error {
	h := rec.(*record)
	return masterdata.UpdateByID(ctx, tx, &models.WarehouseHurdle{}, id, actor, map[string]any{
		"hurdle_amount": h.HurdleAmount,
		"status":        h.Status,
	})
}
