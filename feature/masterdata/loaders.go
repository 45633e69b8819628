package masterdata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"store-ops/core/reconcile"
	"store-ops/feature/masterdata/models"

	"gorm.io/gorm"
)

// Index names shared by the import descriptors.
const (
	IndexWarehouses = "warehouses"
	IndexLocations  = "locations"
	IndexPositions  = "positions"
	IndexCategories = "item_categories"
	IndexEmployees  = "employees"
)

// Common column labels.
const (
	StoreColumn    = "Store IFS"
	CategoryColumn = "Item Category"
	StatusColumn   = "Status"
)

// WarehouseRef is an active warehouse with its location.
type WarehouseRef struct {
	ID           uint
	Code         string
	LocationID   uint
	LocationCode string
}

// Location returns the warehouse location as a scope reference.
func (w WarehouseRef) Location() reconcile.LocationRef {
	return reconcile.LocationRef{ID: w.LocationID, Code: w.LocationCode}
}

// PositionRef is an active position.
type PositionRef struct {
	ID           uint
	Name         string
	Abbreviation string
}

// EmployeeRef is an active employee with its position and active locations.
type EmployeeRef struct {
	ID           uint
	Number       string
	Abbreviation string
	Locations    map[uint]struct{}
}

// AssignedTo reports whether the employee holds an active assignment at locationID.
func (e EmployeeRef) AssignedTo(locationID uint) bool {
	_, ok := e.Locations[locationID]
	return ok
}

// WarehouseLoader indexes active warehouses by IFS code, limited to codes (lower-cased).
func WarehouseLoader(codes []string) reconcile.Loader {
	return reconcile.Loader{
		Name:     IndexWarehouses,
		Required: true,
		Load: func(ctx context.Context, db *gorm.DB) (reconcile.Index, error) {
			ix := reconcile.Index{}
			if len(codes) == 0 {
				return ix, nil
			}

			var rows []struct {
				ID           uint
				Code         string
				LocationID   uint
				LocationCode string
			}
			err := db.WithContext(ctx).
				Table("warehouses AS w").
				Select("w.id, w.ifs_code AS code, w.location_id, l.code AS location_code").
				Joins("JOIN locations AS l ON l.id = w.location_id").
				Where("w.status = ? AND LOWER(w.ifs_code) IN ?", models.StatusActive, codes).
				Scan(&rows).Error
			if err != nil {
				return nil, err
			}

			for _, r := range rows {
				ix.Put(WarehouseRef{ID: r.ID, Code: r.Code, LocationID: r.LocationID, LocationCode: r.LocationCode}, r.Code)
			}
			return ix, nil
		},
	}
}

// LocationLoader indexes active locations by code and by name.
func LocationLoader() reconcile.Loader {
	return reconcile.Loader{
		Name:     IndexLocations,
		Required: true,
		Load: func(ctx context.Context, db *gorm.DB) (reconcile.Index, error) {
			var locations []models.Location
			if err := db.WithContext(ctx).Where("status = ?", models.StatusActive).Find(&locations).Error; err != nil {
				return nil, err
			}
			ix := reconcile.Index{}
			for _, l := range locations {
				ix.Put(reconcile.LocationRef{ID: l.ID, Code: l.Code}, l.Code)
			}
			// Codes win over names when both collide.
			for _, l := range locations {
				ix.Put(reconcile.LocationRef{ID: l.ID, Code: l.Code}, l.Name)
			}
			return ix, nil
		},
	}
}

// PositionLoader indexes active positions by name and by abbreviation.
func PositionLoader() reconcile.Loader {
	return reconcile.Loader{
		Name:     IndexPositions,
		Required: true,
		Load: func(ctx context.Context, db *gorm.DB) (reconcile.Index, error) {
			var positions []models.Position
			if err := db.WithContext(ctx).Where("status = ?", models.StatusActive).Find(&positions).Error; err != nil {
				return nil, err
			}
			ix := reconcile.Index{}
			for _, p := range positions {
				ref := PositionRef{ID: p.ID, Name: p.Name, Abbreviation: strings.ToUpper(strings.TrimSpace(p.Abbreviation))}
				ix.Put(ref, p.Name)
				ix.Put(ref, p.Abbreviation)
			}
			return ix, nil
		},
	}
}

// CategoryLoader indexes active item category IDs by name and by code.
func CategoryLoader() reconcile.Loader {
	return reconcile.Loader{
		Name:     IndexCategories,
		Required: true,
		Load: func(ctx context.Context, db *gorm.DB) (reconcile.Index, error) {
			var categories []models.ItemCategory
			if err := db.WithContext(ctx).Where("status = ?", models.StatusActive).Find(&categories).Error; err != nil {
				return nil, err
			}
			ix := reconcile.Index{}
			for _, c := range categories {
				ix.Put(c.ID, c.Name)
				ix.Put(c.ID, c.Code)
			}
			return ix, nil
		},
	}
}

// StatusLoader indexes status codes by name. It is optional: ACTIVE and INACTIVE
// resolve without it.
func StatusLoader() reconcile.Loader {
	return reconcile.Loader{
		Name: reconcile.StatusIndex,
		Load: func(ctx context.Context, db *gorm.DB) (reconcile.Index, error) {
			var statuses []models.Status
			if err := db.WithContext(ctx).Find(&statuses).Error; err != nil {
				return nil, err
			}
			ix := reconcile.Index{}
			for _, s := range statuses {
				ix.Put(s.Code, s.Name)
			}
			return ix, nil
		},
	}
}

// EmployeeLoader indexes active employees by employee number, limited to numbers
// (lower-cased), with their position abbreviation and active location assignments.
func EmployeeLoader(numbers []string) reconcile.Loader {
	return reconcile.Loader{
		Name:     IndexEmployees,
		Required: true,
		Load: func(ctx context.Context, db *gorm.DB) (reconcile.Index, error) {
			ix := reconcile.Index{}
			if len(numbers) == 0 {
				return ix, nil
			}
			db = db.WithContext(ctx)

			var rows []struct {
				ID             uint
				EmployeeNumber string
				Abbreviation   string
			}
			err := db.Table("employees AS e").
				Select("e.id, e.employee_number, COALESCE(p.abbreviation, '') AS abbreviation").
				Joins("LEFT JOIN positions AS p ON p.id = e.position_id").
				Where("e.status = ? AND LOWER(e.employee_number) IN ?", models.StatusActive, numbers).
				Scan(&rows).Error
			if err != nil {
				return nil, err
			}
			if len(rows) == 0 {
				return ix, nil
			}

			ids := make([]uint, len(rows))
			for i, r := range rows {
				ids[i] = r.ID
			}
			var assignments []models.EmployeeLocation
			err = db.Where("employee_id IN ? AND status = ?", ids, models.StatusActive).Find(&assignments).Error
			if err != nil {
				return nil, fmt.Errorf("load employee locations: %w", err)
			}
			byEmployee := make(map[uint]map[uint]struct{}, len(rows))
			for _, a := range assignments {
				if byEmployee[a.EmployeeID] == nil {
					byEmployee[a.EmployeeID] = make(map[uint]struct{})
				}
				byEmployee[a.EmployeeID][a.LocationID] = struct{}{}
			}

			for _, r := range rows {
				ix.Put(EmployeeRef{
					ID:           r.ID,
					Number:       r.EmployeeNumber,
					Abbreviation: strings.ToUpper(strings.TrimSpace(r.Abbreviation)),
					Locations:    byEmployee[r.ID],
				}, r.EmployeeNumber)
			}
			return ix, nil
		},
	}
}

// ExistingLoader indexes persisted rows of T under reconcile.ExistingIndex(name).
// scope narrows the query; index returns the match and its natural-key parts.
func ExistingLoader[T any](name string, scope func(*gorm.DB) *gorm.DB, index func(T) (reconcile.Existing, []string)) reconcile.Loader {
	return reconcile.Loader{
		Name:     reconcile.ExistingIndex(name),
		Required: true,
		Load: func(ctx context.Context, db *gorm.DB) (reconcile.Index, error) {
			var rows []T
			q := db.WithContext(ctx)
			if scope != nil {
				q = scope(q)
			}
			if err := q.Find(&rows).Error; err != nil {
				return nil, err
			}
			ix := reconcile.Index{}
			for _, r := range rows {
				ex, parts := index(r)
				ix.Put(ex, parts...)
			}
			return ix, nil
		},
	}
}

// ResolveWarehouse resolves the Store IFS column against active warehouses.
func ResolveWarehouse(row reconcile.Row, cache *reconcile.Cache) (WarehouseRef, error) {
	code, _ := row.String(StoreColumn)
	w, ok, err := reconcile.Find[WarehouseRef](cache, IndexWarehouses, code)
	if err != nil {
		return WarehouseRef{}, err
	}
	if !ok {
		return WarehouseRef{}, reconcile.Reject(StoreColumn, code, "Invalid or inactive STORE IFS '%s'", code)
	}
	return w, nil
}

// ResolveCategory resolves the Item Category column by name or code.
func ResolveCategory(row reconcile.Row, cache *reconcile.Cache) (uint, error) {
	value, _ := row.String(CategoryColumn)
	id, ok, err := reconcile.Find[uint](cache, IndexCategories, value)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, reconcile.Reject(CategoryColumn, value, "Invalid or inactive Item Category '%s'", value)
	}
	return id, nil
}

// DateKey renders a date natural-key part.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
