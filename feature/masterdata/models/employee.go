package models

// Employee is a roster entry.
type Employee struct {
	Model
	Audit
	EmployeeNumber string `gorm:"column:employee_number;type:varchar(50);not null;index"`
	FirstName      string `gorm:"column:first_name;type:varchar(100);not null"`
	LastName       string `gorm:"column:last_name;type:varchar(100);not null"`
	Email          string `gorm:"column:email;type:varchar(150);index"`
	PositionID     uint   `gorm:"column:position_id;not null"`
	Status         int    `gorm:"column:status;not null"`
}

func (Employee) TableName() string {
	return "employees"
}

// EmployeeLocation assigns an employee to a location. Inactive rows are kept as history.
type EmployeeLocation struct {
	Model
	EmployeeID uint `gorm:"column:employee_id;not null;index:idx_employee_locations_pair"`
	LocationID uint `gorm:"column:location_id;not null;index:idx_employee_locations_pair"`
	Status     int  `gorm:"column:status;not null"`
}

func (EmployeeLocation) TableName() string {
	return "employee_locations"
}
