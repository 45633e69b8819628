package models

import "time"

// Status codes stored in every status column.
const (
	StatusInactive = 0
	StatusActive   = 1
)

// Model is the common surrogate key and timestamps.
// Pointers to embedding structs satisfy reconcile.Record.
type Model struct {
	ID        uint      `gorm:"primaryKey;column:id"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// GetID returns the primary key.
func (m *Model) GetID() uint {
	return m.ID
}

// SetID sets the primary key. Zero lets the database assign one on insert.
func (m *Model) SetID(id uint) {
	m.ID = id
}

// Audit tracks who last wrote an imported row.
type Audit struct {
	CreatedBy uint `gorm:"column:created_by"`
	UpdatedBy uint `gorm:"column:updated_by"`
}

// All returns every master-data model, in migration order.
func All() []any {
	return []any{
		&Location{},
		&Position{},
		&ItemCategory{},
		&Status{},
		&Warehouse{},
		&Employee{},
		&EmployeeLocation{},
		&WarehouseEmployee{},
		&WarehouseHurdle{},
		&WarehouseRate{},
		&SalesBudget{},
	}
}

// Stamp records userID as the writer. created also sets CreatedBy.
func (a *Audit) Stamp(userID uint, created bool) {
	if created {
		a.CreatedBy = userID
	}
	a.UpdatedBy = userID
}
