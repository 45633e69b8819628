package storeemployee

import (
	"context"
	"slices"

	"store-ops/core/reconcile"
	"store-ops/feature/masterdata"
	"store-ops/feature/masterdata/models"

	"gorm.io/gorm"
)

// Slot is one hierarchy column.
type Slot struct {
	// Label is both the column label and the position abbreviation of the slot.
	Label    string
	Required bool
	// Allowed lists the position abbreviations that may fill the slot.
	Allowed []string
	// LocationBound slots need an employee assigned to the store's location.
	LocationBound bool
}

// Slots returns the hierarchy slots in column order.
func Slots() []Slot {
	return []Slot{
		{Label: "SS", Required: true, Allowed: []string{"SS", "AH", "BCH", "RH"}, LocationBound: true},
		{Label: "AH", Required: true, Allowed: []string{"AH", "BCH", "RH"}, LocationBound: true},
		{Label: "BCH", Allowed: []string{"BCH", "RH"}},
		{Label: "GBCH", Allowed: []string{"GBCH", "GRH"}},
		{Label: "RH", Allowed: []string{"RH"}},
		{Label: "GRH", Allowed: []string{"GRH"}},
	}
}

// Descriptor imports warehouse hierarchies.
type Descriptor struct {
	slots []Slot
}

// NewDescriptor creates the store-employee descriptor.
func NewDescriptor() *Descriptor {
	return &Descriptor{slots: Slots()}
}

func (d *Descriptor) Name() string   { return "store-employee" }
func (d *Descriptor) Module() string { return "warehouse_employees" }

func (d *Descriptor) Columns() []reconcile.Column {
	columns := []reconcile.Column{{Label: masterdata.StoreColumn, Required: true, Description: "Warehouse IFS code"}}
	for _, s := range d.slots {
		columns = append(columns, reconcile.Column{Label: s.Label, Required: s.Required, Description: "Employee number"})
	}
	return columns
}

// NaturalKeys keys hierarchies by store. IFS codes are unique, so this is the
// warehouse_id key expressed in the operator's terms.
func (d *Descriptor) NaturalKeys() []reconcile.NaturalKey {
	return []reconcile.NaturalKey{{
		Name:  "store",
		Label: masterdata.StoreColumn,
		Parts: func(rec reconcile.Record) []string {
			return []string{rec.(*record).store}
		},
	}}
}

func (d *Descriptor) Loaders(rows []reconcile.Row) []reconcile.Loader {
	codes := reconcile.DistinctFolded(rows, masterdata.StoreColumn)

	var numbers []string
	seen := make(map[string]struct{})
	for _, s := range d.slots {
		for _, n := range reconcile.DistinctFolded(rows, s.Label) {
			if _, dup := seen[n]; !dup {
				seen[n] = struct{}{}
				numbers = append(numbers, n)
			}
		}
	}

	return []reconcile.Loader{
		masterdata.WarehouseLoader(codes),
		masterdata.EmployeeLoader(numbers),
		masterdata.ExistingLoader("store", masterdata.StoreScope("warehouse_employees", codes),
			func(we masterdata.StoreRow) (reconcile.Existing, []string) {
				return reconcile.Existing{ID: we.ID}, []string{we.Store}
			}),
	}
}

type record struct {
	models.WarehouseEmployee
	store string
}

func (d *Descriptor) Resolve(row reconcile.Row, cache *reconcile.Cache) (reconcile.Resolved, error) {
	w, err := masterdata.ResolveWarehouse(row, cache)
	if err != nil {
		return reconcile.Resolved{}, err
	}

	filled := make(map[string]*uint, len(d.slots))
	for _, s := range d.slots {
		id, err := d.resolveSlot(row, s, w, cache)
		if err != nil {
			return reconcile.Resolved{}, err
		}
		filled[s.Label] = id
	}
	if filled["SS"] == nil || filled["AH"] == nil {
		return reconcile.Resolved{}, reconcile.Reject("", "", "SS and AH are required")
	}

	return reconcile.Resolved{
		Record: &record{
			WarehouseEmployee: models.WarehouseEmployee{
				WarehouseID: w.ID,
				SSID:        *filled["SS"],
				AHID:        *filled["AH"],
				BCHID:       filled["BCH"],
				GBCHID:      filled["GBCH"],
				RHID:        filled["RH"],
				GRHID:       filled["GRH"],
				Status:      models.StatusActive,
			},
			store: w.Code,
		},
		Locations: []reconcile.LocationRef{w.Location()},
	}, nil
}

// resolveSlot returns the employee ID filling s, or nil when the cell is blank.
func (d *Descriptor) resolveSlot(row reconcile.Row, s Slot, w masterdata.WarehouseRef, cache *reconcile.Cache) (*uint, error) {
	number, ok := row.String(s.Label)
	if !ok {
		return nil, nil
	}

	e, ok, err := reconcile.Find[masterdata.EmployeeRef](cache, masterdata.IndexEmployees, number)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, reconcile.Reject(s.Label, number, "Invalid or inactive employee '%s' for %s", number, s.Label)
	}
	if !slices.Contains(s.Allowed, e.Abbreviation) {
		return nil, reconcile.Reject(s.Label, number,
			"Employee '%s' holds position '%s', which cannot fill %s", number, e.Abbreviation, s.Label)
	}
	if s.LocationBound && !e.AssignedTo(w.LocationID) {
		return nil, reconcile.Reject(s.Label, number,
			"Employee '%s' (%s) is not assigned to location '%s' of STORE IFS '%s'", number, s.Label, w.LocationCode, w.Code)
	}

	id := e.ID
	return &id, nil
}

func (d *Descriptor) UpdateMode() reconcile.UpdateMode { return reconcile.UpdateInPlace }

func (d *Descriptor) Insert(ctx context.Context, tx *gorm.DB, records []reconcile.Record, actor reconcile.Actor) error {
	rows := make([]reconcile.Record, len(records))
	for i, r := range records {
		rows[i] = &r.(*record).WarehouseEmployee
	}
	return masterdata.CreateAll[models.WarehouseEmployee](ctx, tx, rows, actor)
}

func (d *Descriptor) Update(ctx context.Context, tx *gorm.DB, id uint, rec reconcile.Record, actor reconcile.Actor) error {
	we := rec.(*record)
	return masterdata.UpdateByID(ctx, tx, &models.WarehouseEmployee{}, id, actor, map[string]any{
		"ss_id":   we.SSID,
		"ah_id":   we.AHID,
		"bch_id":  we.BCHID,
		"gbch_id": we.GBCHID,
		"rh_id":   we.RHID,
		"grh_id":  we.GRHID,
		"status":  we.Status,
	})
}
