package masterdata

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"store-ops/core/reconcile"

	"gorm.io/gorm"
)

type stamper interface {
	Stamp(userID uint, created bool)
}

// CreateAll inserts records, which must all be *T, in one statement.
// Generated IDs are written back into the records.
func CreateAll[T any](ctx context.Context, tx *gorm.DB, records []reconcile.Record, actor reconcile.Actor) error {
	rows := make([]*T, 0, len(records))
	for _, r := range records {
		row, ok := any(r).(*T)
		if !ok {
			return fmt.Errorf("unexpected record type %T", r)
		}
		if s, ok := any(row).(stamper); ok {
			s.Stamp(actor.UserID, true)
		}
		rows = append(rows, row)
	}
	return tx.WithContext(ctx).Create(&rows).Error
}

// UpdateByID overwrites columns on the row of model with id.
func UpdateByID(ctx context.Context, tx *gorm.DB, model any, id uint, actor reconcile.Actor, columns map[string]any) error {
	columns["updated_by"] = actor.UserID
	return tx.WithContext(ctx).Model(model).Where("id = ?", id).Updates(columns).Error
}

// StoreRow is a persisted warehouse-keyed row with its store code.
// Columns selected beyond id and store fill the remaining fields.
type StoreRow struct {
	ID             uint
	Store          string
	ItemCategoryID uint
	Day            time.Time
	FromRepo       bool
}

// StoreScope selects id and the store IFS code from a warehouse-keyed table,
// limited to the IFS codes of a batch. Extra columns are added to the select list.
// Active rows come first so they win over inactive ones for the same key.
func StoreScope(table string, codes []string, columns ...string) func(*gorm.DB) *gorm.DB {
	sel := "t.id, w.ifs_code AS store"
	for _, c := range columns {
		sel += ", t." + c
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Table(table+" AS t").
			Select(sel).
			Joins("JOIN warehouses AS w ON w.id = t.warehouse_id").
			Where("LOWER(w.ifs_code) IN ?", codes).
			Order("t.status DESC, t.id")
	}
}

// IDKey renders an ID natural-key part.
func IDKey(id uint) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(id), 10)
}
