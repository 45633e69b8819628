package reconcile

import (
	"context"

	"gorm.io/gorm"
)

// Descriptor defines the entity-specific part of a batch import.
// Each descriptor implements how to load lookups, resolve a row into a record,
// identify it, and write it (e.g., employees, store hierarchies, hurdles).
type Descriptor interface {
	// Name returns the entity type (e.g., "employee", "hurdle").
	Name() string

	// Module returns the permission module guarding the import.
	Module() string

	// Columns lists the expected spreadsheet columns. Required columns are
	// checked by the engine before Resolve is called.
	Columns() []Column

	// NaturalKeys lists the uniqueness rules in fallback order.
	NaturalKeys() []NaturalKey

	// Loaders returns the lookup loaders for this batch. Indices of existing
	// target rows must be named ExistingIndex(key.Name) and hold Existing values.
	Loaders(rows []Row) []Loader

	// Resolve turns a row into a record, resolving references through the cache.
	// Business-rule failures are returned as *RowError.
	Resolve(row Row, cache *Cache) (Resolved, error)

	// UpdateMode reports how matched rows are changed.
	UpdateMode() UpdateMode

	// Insert creates records in one statement and writes their IDs back.
	Insert(ctx context.Context, tx *gorm.DB, records []Record, actor Actor) error

	// Update overwrites the row id with the values of record.
	Update(ctx context.Context, tx *gorm.DB, id uint, record Record, actor Actor) error
}

// Retirer is implemented by RetireAndInsert descriptors.
type Retirer interface {
	// Retire flips the row id to inactive.
	Retire(ctx context.Context, tx *gorm.DB, id uint, actor Actor) error
}

// Cascader is implemented by descriptors owning sub-resources.
// AfterSave runs in the same transaction as the parent write.
type Cascader interface {
	AfterSave(ctx context.Context, tx *gorm.DB, id uint, record Record, actor Actor) error
}
