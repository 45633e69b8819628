package employee

import (
	"context"
	"net/mail"
	"strings"

	"store-ops/core/reconcile"
	"store-ops/feature/masterdata"
	"store-ops/feature/masterdata/models"

	"gorm.io/gorm"
)

// Column labels.
const (
	NumberColumn    = "Employee Number"
	FirstNameColumn = "First Name"
	LastNameColumn  = "Last Name"
	PositionColumn  = "Position"
	LocationsColumn = "Locations"
	EmailColumn     = "Email"
)

// record is an employee with the locations submitted for it.
type record struct {
	models.Employee
	locations []uint
}

// Descriptor imports employees.
type Descriptor struct{}

// NewDescriptor creates the employee descriptor.
func NewDescriptor() *Descriptor {
	return &Descriptor{}
}

func (d *Descriptor) Name() string   { return "employee" }
func (d *Descriptor) Module() string { return "employees" }

func (d *Descriptor) Columns() []reconcile.Column {
	return []reconcile.Column{
		{Label: NumberColumn, Required: true},
		{Label: FirstNameColumn, Required: true},
		{Label: LastNameColumn, Required: true},
		{Label: PositionColumn, Required: true, Description: "Position name or abbreviation"},
		{Label: LocationsColumn, Required: true, Description: "Location codes or names, separated by commas"},
		{Label: EmailColumn},
		{Label: masterdata.StatusColumn, Description: "ACTIVE, INACTIVE or a status name; defaults to ACTIVE"},
	}
}

func (d *Descriptor) NaturalKeys() []reconcile.NaturalKey {
	return []reconcile.NaturalKey{
		{Name: "employee_number", Label: NumberColumn, Parts: func(rec reconcile.Record) []string {
			return []string{rec.(*record).EmployeeNumber}
		}},
		{Name: "employee_name", Label: "Employee", Parts: func(rec reconcile.Record) []string {
			r := rec.(*record)
			return []string{r.EmployeeNumber, r.FirstName, r.LastName}
		}},
		{Name: "email", Label: EmailColumn, Parts: func(rec reconcile.Record) []string {
			return []string{rec.(*record).Email}
		}},
	}
}

func (d *Descriptor) Loaders(rows []reconcile.Row) []reconcile.Loader {
	numbers := reconcile.DistinctFolded(rows, NumberColumn)
	emails := reconcile.DistinctFolded(rows, EmailColumn)

	byNumber := func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(employee_number) IN ?", numbers).Order("status DESC, id")
	}

	return []reconcile.Loader{
		masterdata.LocationLoader(),
		masterdata.PositionLoader(),
		masterdata.StatusLoader(),
		masterdata.ExistingLoader("employee_number", byNumber, func(e models.Employee) (reconcile.Existing, []string) {
			return reconcile.Existing{ID: e.ID}, []string{e.EmployeeNumber}
		}),
		masterdata.ExistingLoader("employee_name", byNumber, func(e models.Employee) (reconcile.Existing, []string) {
			return reconcile.Existing{ID: e.ID}, []string{e.EmployeeNumber, e.FirstName, e.LastName}
		}),
		masterdata.ExistingLoader("email", func(db *gorm.DB) *gorm.DB {
			return db.Where("LOWER(email) IN ?", emails).Order("status DESC, id")
		}, func(e models.Employee) (reconcile.Existing, []string) {
			return reconcile.Existing{ID: e.ID}, []string{e.Email}
		}),
	}
}

func (d *Descriptor) Resolve(row reconcile.Row, cache *reconcile.Cache) (reconcile.Resolved, error) {
	number, _ := row.String(NumberColumn)
	first, _ := row.String(FirstNameColumn)
	last, _ := row.String(LastNameColumn)

	email, _ := row.String(EmailColumn)
	if email != "" {
		addr, err := mail.ParseAddress(email)
		if err != nil || addr.Address != email {
			return reconcile.Resolved{}, reconcile.Reject(EmailColumn, email, "Invalid Email '%s'", email)
		}
	}

	positionName, _ := row.String(PositionColumn)
	position, ok, err := reconcile.Find[masterdata.PositionRef](cache, masterdata.IndexPositions, positionName)
	if err != nil {
		return reconcile.Resolved{}, err
	}
	if !ok {
		return reconcile.Resolved{}, reconcile.Reject(PositionColumn, positionName, "Invalid or inactive Position '%s'", positionName)
	}

	var (
		refs []reconcile.LocationRef
		ids  []uint
	)
	seen := make(map[uint]struct{})
	for _, value := range row.List(LocationsColumn) {
		loc, ok, err := reconcile.Find[reconcile.LocationRef](cache, masterdata.IndexLocations, value)
		if err != nil {
			return reconcile.Resolved{}, err
		}
		if !ok {
			return reconcile.Resolved{}, reconcile.Reject(LocationsColumn, value, "Invalid or inactive Location '%s'", value)
		}
		if _, dup := seen[loc.ID]; dup {
			continue
		}
		seen[loc.ID] = struct{}{}
		refs = append(refs, loc)
		ids = append(ids, loc.ID)
	}
	if len(ids) == 0 {
		return reconcile.Resolved{}, reconcile.Reject(LocationsColumn, "", "%s is required", LocationsColumn)
	}

	status, ok, err := reconcile.ResolveStatus(row, masterdata.StatusColumn, cache)
	if err != nil {
		return reconcile.Resolved{}, err
	}
	if !ok {
		status = models.StatusActive
	}

	return reconcile.Resolved{
		Record: &record{
			Employee: models.Employee{
				EmployeeNumber: number,
				FirstName:      first,
				LastName:       last,
				Email:          strings.ToLower(email),
				PositionID:     position.ID,
				Status:         status,
			},
			locations: ids,
		},
		Locations: refs,
	}, nil
}

func (d *Descriptor) UpdateMode() reconcile.UpdateMode { return reconcile.UpdateInPlace }

func (d *Descriptor) Insert(ctx context.Context, tx *gorm.DB, records []reconcile.Record, actor reconcile.Actor) error {
	employees := make([]reconcile.Record, len(records))
	for i, r := range records {
		employees[i] = &r.(*record).Employee
	}
	return masterdata.CreateAll[models.Employee](ctx, tx, employees, actor)
}

func (d *Descriptor) Update(ctx context.Context, tx *gorm.DB, id uint, rec reconcile.Record, actor reconcile.Actor) error {
	e := rec.(*record)
	return masterdata.UpdateByID(ctx, tx, &models.Employee{}, id, actor, map[string]any{
		"employee_number": e.EmployeeNumber,
		"first_name":      e.FirstName,
		"last_name":       e.LastName,
		"email":           e.Email,
		"position_id":     e.PositionID,
		"status":          e.Status,
	})
}

// AfterSave makes the submitted locations the employee's only active assignments.
// Existing rows are reactivated or retired; missing ones are created.
func (d *Descriptor) AfterSave(ctx context.Context, tx *gorm.DB, id uint, rec reconcile.Record, actor reconcile.Actor) error {
	tx = tx.WithContext(ctx)

	var current []models.EmployeeLocation
	if err := tx.Where("employee_id = ?", id).Order("id").Find(&current).Error; err != nil {
		return err
	}

	want := make(map[uint]bool, len(rec.(*record).locations))
	for _, locationID := range rec.(*record).locations {
		want[locationID] = true
	}

	covered := make(map[uint]bool)
	for _, assignment := range current {
		status := models.StatusInactive
		if want[assignment.LocationID] && !covered[assignment.LocationID] {
			status = models.StatusActive
			covered[assignment.LocationID] = true
		}
		if assignment.Status == status {
			continue
		}
		err := tx.Model(&models.EmployeeLocation{}).Where("id = ?", assignment.ID).Update("status", status).Error
		if err != nil {
			return err
		}
	}

	for _, locationID := range rec.(*record).locations {
		if covered[locationID] {
			continue
		}
		err := tx.Create(&models.EmployeeLocation{EmployeeID: id, LocationID: locationID, Status: models.StatusActive}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
