package models

// Location is a physical site employees and warehouses belong to.
type Location struct {
	Model
	Code   string `gorm:"column:code;type:varchar(50);uniqueIndex;not null"`
	Name   string `gorm:"column:name;type:varchar(150);not null"`
	Status int    `gorm:"column:status;not null"`
}

func (Location) TableName() string {
	return "locations"
}

// Position is a job title. Abbreviation drives the store hierarchy (SS, AH, BCH, ...).
type Position struct {
	Model
	Name         string `gorm:"column:name;type:varchar(150);not null"`
	Abbreviation string `gorm:"column:abbreviation;type:varchar(20)"`
	Status       int    `gorm:"column:status;not null"`
}

func (Position) TableName() string {
	return "positions"
}

// ItemCategory groups merchandise for rates and budgets.
type ItemCategory struct {
	Model
	Code   string `gorm:"column:code;type:varchar(50)"`
	Name   string `gorm:"column:name;type:varchar(150);not null"`
	Status int    `gorm:"column:status;not null"`
}

func (ItemCategory) TableName() string {
	return "item_categories"
}

// Status maps a status name to its code.
type Status struct {
	Model
	Name string `gorm:"column:name;type:varchar(50);uniqueIndex;not null"`
	Code int    `gorm:"column:code;not null"`
}

func (Status) TableName() string {
	return "statuses"
}

// Warehouse is a store, identified on spreadsheets by its IFS code.
type Warehouse struct {
	Model
	IFSCode    string `gorm:"column:ifs_code;type:varchar(50);uniqueIndex;not null"`
	Name       string `gorm:"column:name;type:varchar(150)"`
	LocationID uint   `gorm:"column:location_id;not null;index"`
	Status     int    `gorm:"column:status;not null"`
}

func (Warehouse) TableName() string {
	return "warehouses"
}
