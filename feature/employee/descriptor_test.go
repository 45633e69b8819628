package employee

import (
	"testing"

	"store-ops/core/reconcile"
	"store-ops/feature/masterdata/masterdatatest"
	"store-ops/feature/masterdata/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db           *gorm.DB
	north, south models.Location
	ss, ah       models.Position
}

func setup(t *testing.T) fixture {
	db := masterdatatest.NewDB(t)
	return fixture{
		db:    db,
		north: masterdatatest.Location(t, db, "NORTH", "North Region"),
		south: masterdatatest.Location(t, db, "SOUTH", "South Region"),
		ss:    masterdatatest.Position(t, db, "Store Supervisor", "SS"),
		ah:    masterdatatest.Position(t, db, "Assistant Head", "AH"),
	}
}

func employeeRow(number, position, locations string) map[string]any {
	return map[string]any{
		"Employee Number": number,
		"First Name":      "Ana",
		"Last Name":       "Cruz",
		"Position":        position,
		"Locations":       locations,
	}
}

func activeLocations(t *testing.T, db *gorm.DB, employeeID uint) []uint {
	var ids []uint
	require.NoError(t, db.Model(&models.EmployeeLocation{}).
		Where("employee_id = ? AND status = ?", employeeID, models.StatusActive).
		Order("location_id").Pluck("location_id", &ids).Error)
	return ids
}

func TestImport_InsertsWithLocations(t *testing.T) {
	f := setup(t)
	row := employeeRow("E100", "ss", "NORTH; South Region")
	row["Email"] = "Ana.Cruz@example.com"

	result := masterdatatest.Run(t, masterdatatest.Engine(f.db), NewDescriptor(), masterdatatest.Rows(row))

	require.Equal(t, 1, result.InsertedCount, result.Errors)
	var e models.Employee
	require.NoError(t, f.db.Where("employee_number = ?", "E100").First(&e).Error)
	assert.Equal(t, result.Success[0].ID, e.ID)
	assert.Equal(t, f.ss.ID, e.PositionID)
	assert.Equal(t, "ana.cruz@example.com", e.Email)
	assert.Equal(t, models.StatusActive, e.Status)
	assert.Equal(t, uint(7), e.CreatedBy)
	assert.Equal(t, []uint{f.north.ID, f.south.ID}, activeLocations(t, f.db, e.ID))
}

func TestImport_UpdateReplacesLocations(t *testing.T) {
	f := setup(t)
	existing := masterdatatest.Employee(t, f.db, "E100", f.ss, f.north)
	masterdatatest.Create(t, f.db, &models.EmployeeLocation{EmployeeID: existing.ID, LocationID: f.south.ID, Status: models.StatusInactive})

	row := employeeRow("e100", "Assistant Head", "SOUTH")
	row["Status"] = "inactive"
	result := masterdatatest.Run(t, masterdatatest.Engine(f.db), NewDescriptor(), masterdatatest.Rows(row))

	require.Equal(t, []int{2}, result.UpdatedRowNumbers, result.Errors)
	var e models.Employee
	require.NoError(t, f.db.First(&e, existing.ID).Error)
	assert.Equal(t, "e100", e.EmployeeNumber)
	assert.Equal(t, f.ah.ID, e.PositionID)
	assert.Equal(t, models.StatusInactive, e.Status)
	assert.Equal(t, uint(7), e.UpdatedBy)

	assert.Equal(t, []uint{f.south.ID}, activeLocations(t, f.db, existing.ID))
	assert.Equal(t, int64(2), masterdatatest.Count(t, f.db, &models.EmployeeLocation{}, "employee_id = ?", existing.ID),
		"the inactive south assignment is reactivated, not duplicated")
}

func TestImport_MatchesByEmailFallback(t *testing.T) {
	f := setup(t)
	existing := models.Employee{EmployeeNumber: "OLD-1", FirstName: "Ana", LastName: "Cruz", Email: "ana@example.com", PositionID: f.ss.ID, Status: models.StatusActive}
	masterdatatest.Create(t, f.db, &existing)

	row := employeeRow("NEW-1", "SS", "NORTH")
	row["Email"] = "ana@example.com"
	result := masterdatatest.Run(t, masterdatatest.Engine(f.db), NewDescriptor(), masterdatatest.Rows(row))

	require.Equal(t, 1, result.UpdatedCount, result.Errors)
	assert.Equal(t, existing.ID, result.Success[0].ID)
	assert.Equal(t, int64(1), masterdatatest.Count(t, f.db, &models.Employee{}))
}

func TestImport_RejectsInvalidRows(t *testing.T) {
	f := setup(t)
	badEmail := employeeRow("E5", "SS", "NORTH")
	badEmail["Email"] = "not-an-email"
	badStatus := employeeRow("E6", "SS", "NORTH")
	badStatus["Status"] = "Retired"

	rows := masterdatatest.Rows(
		employeeRow("E1", "SS", "NORTH"),
		employeeRow("E2", "Cashier", "NORTH"),
		employeeRow("E3", "SS", "NORTH, WEST"),
		employeeRow("E1", "AH", "SOUTH"),
		badEmail,
		badStatus,
		employeeRow("E7", "SS", " ; "),
	)
	result := masterdatatest.Run(t, masterdatatest.Engine(f.db), NewDescriptor(), rows)

	assert.Equal(t, []int{2}, result.InsertedRowNumbers)
	assert.Equal(t, []reconcile.RowFailure{
		{Row: 3, Error: "Invalid or inactive Position 'Cashier'"},
		{Row: 4, Error: "Invalid or inactive Location 'WEST'"},
		{Row: 5, Error: "Duplicate Employee Number 'E1' within this import (already on row 2)"},
		{Row: 6, Error: "Invalid Email 'not-an-email'"},
		{Row: 7, Error: "Invalid Status 'Retired'"},
		{Row: 8, Error: "Locations is required"},
	}, result.Errors)
}

func TestImport_LocationScope(t *testing.T) {
	f := setup(t)
	rows := masterdatatest.Rows(
		employeeRow("E1", "SS", "NORTH"),
		employeeRow("E2", "SS", "NORTH, SOUTH"),
	)

	result := masterdatatest.Run(t, masterdatatest.Engine(f.db, f.north.ID), NewDescriptor(), rows)

	assert.Equal(t, []int{2}, result.InsertedRowNumbers)
	assert.Equal(t, []reconcile.RowFailure{
		{Row: 3, Error: "Location 'SOUTH' is outside your assigned locations (Employee Number 'E2')"},
	}, result.Errors)
	assert.Equal(t, int64(0), masterdatatest.Count(t, f.db, &models.Employee{}, "employee_number = ?", "E2"))
}

func TestImport_Idempotent(t *testing.T) {
	f := setup(t)
	rows := masterdatatest.Rows(employeeRow("E1", "SS", "NORTH"), employeeRow("E2", "AH", "SOUTH"))
	engine := masterdatatest.Engine(f.db)

	first := masterdatatest.Run(t, engine, NewDescriptor(), rows)
	second := masterdatatest.Run(t, engine, NewDescriptor(), rows)

	assert.Equal(t, 2, first.InsertedCount)
	assert.Equal(t, 2, second.UpdatedCount)
	assert.Equal(t, int64(2), masterdatatest.Count(t, f.db, &models.Employee{}))
	assert.Equal(t, int64(2), masterdatatest.Count(t, f.db, &models.EmployeeLocation{}))
}
