package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WarehouseEmployee is the management hierarchy of one warehouse.
type WarehouseEmployee struct {
	Model
	Audit
	WarehouseID uint  `gorm:"column:warehouse_id;not null;uniqueIndex"`
	SSID        uint  `gorm:"column:ss_id;not null"`
	AHID        uint  `gorm:"column:ah_id;not null"`
	BCHID       *uint `gorm:"column:bch_id"`
	GBCHID      *uint `gorm:"column:gbch_id"`
	RHID        *uint `gorm:"column:rh_id"`
	GRHID       *uint `gorm:"column:grh_id"`
	Status      int   `gorm:"column:status;not null"`
}

func (WarehouseEmployee) TableName() string {
	return "warehouse_employees"
}

// WarehouseHurdle is a daily sales target.
type WarehouseHurdle struct {
	Model
	Audit
	WarehouseID  uint            `gorm:"column:warehouse_id;not null;index"`
	HurdleDate   time.Time       `gorm:"column:hurdle_date;type:date;not null"`
	HurdleAmount decimal.Decimal `gorm:"column:hurdle_amount;type:decimal(15,2);not null"`
	Status       int             `gorm:"column:status;not null"`
}

func (WarehouseHurdle) TableName() string {
	return "warehouse_hurdles"
}

// WarehouseRate is the rate applied to an item category in a warehouse.
type WarehouseRate struct {
	Model
	Audit
	WarehouseID    uint            `gorm:"column:warehouse_id;not null;index"`
	ItemCategoryID uint            `gorm:"column:item_category_id;not null"`
	Rate           decimal.Decimal `gorm:"column:rate;type:decimal(10,4);not null"`
	Status         int             `gorm:"column:status;not null"`
}

func (WarehouseRate) TableName() string {
	return "warehouse_rates"
}

// SalesBudget is a monthly budget. Rows synced from the upstream repository
// (FromRepo) are read-only to imports; corrections retire the old row.
type SalesBudget struct {
	Model
	Audit
	WarehouseID    uint            `gorm:"column:warehouse_id;not null;index"`
	ItemCategoryID uint            `gorm:"column:item_category_id;not null"`
	BudgetMonth    time.Time       `gorm:"column:budget_month;type:date;not null"`
	Amount         decimal.Decimal `gorm:"column:amount;type:decimal(15,2);not null"`
	FromRepo       bool            `gorm:"column:from_repo;not null;default:false"`
	Status         int             `gorm:"column:status;not null"`
}

func (SalesBudget) TableName() string {
	return "sales_budgets"
}
