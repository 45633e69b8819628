// Package masterdatatest provides an in-memory database with the full schema and
// seed helpers for import tests.
package masterdatatest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"store-ops/core/reconcile"
	"store-ops/feature/masterdata"
	"store-ops/feature/masterdata/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with every table migrated.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(masterdata.Tables()...))
	return db
}

// Create inserts v or fails the test.
func Create(t testing.TB, db *gorm.DB, v any) {
	t.Helper()
	require.NoError(t, db.Create(v).Error)
}

// Location seeds an active location.
func Location(t testing.TB, db *gorm.DB, code, name string) models.Location {
	l := models.Location{Code: code, Name: name, Status: models.StatusActive}
	Create(t, db, &l)
	return l
}

// Position seeds an active position.
func Position(t testing.TB, db *gorm.DB, name, abbreviation string) models.Position {
	p := models.Position{Name: name, Abbreviation: abbreviation, Status: models.StatusActive}
	Create(t, db, &p)
	return p
}

// Category seeds an active item category.
func Category(t testing.TB, db *gorm.DB, code, name string) models.ItemCategory {
	c := models.ItemCategory{Code: code, Name: name, Status: models.StatusActive}
	Create(t, db, &c)
	return c
}

// Warehouse seeds an active warehouse at location.
func Warehouse(t testing.TB, db *gorm.DB, code string, location models.Location) models.Warehouse {
	w := models.Warehouse{IFSCode: code, Name: "Store " + code, LocationID: location.ID, Status: models.StatusActive}
	Create(t, db, &w)
	return w
}

// Employee seeds an active employee holding position, assigned to locations.
func Employee(t testing.TB, db *gorm.DB, number string, position models.Position, locations ...models.Location) models.Employee {
	e := models.Employee{
		EmployeeNumber: number,
		FirstName:      "First " + number,
		LastName:       "Last " + number,
		PositionID:     position.ID,
		Status:         models.StatusActive,
	}
	Create(t, db, &e)
	for _, l := range locations {
		Create(t, db, &models.EmployeeLocation{EmployeeID: e.ID, LocationID: l.ID, Status: models.StatusActive})
	}
	return e
}

// Deactivate sets status to inactive on the row of model with id.
func Deactivate(t testing.TB, db *gorm.DB, model any, id uint) {
	t.Helper()
	require.NoError(t, db.Model(model).Where("id = ?", id).Update("status", models.StatusInactive).Error)
}

// Count returns the number of rows of model matching the optional condition.
func Count(t testing.TB, db *gorm.DB, model any, query ...any) int64 {
	t.Helper()
	q := db.Model(model)
	if len(query) > 0 {
		q = q.Where(query[0], query[1:]...)
	}
	var n int64
	require.NoError(t, q.Count(&n).Error)
	return n
}

// Scope is a fixed location scope.
type Scope []uint

// ResolveScope grants the fixed location IDs, or every location when there are none.
func (s Scope) ResolveScope(ctx context.Context, userID, roleID uint) (reconcile.Grant, error) {
	if len(s) == 0 {
		return reconcile.Grant{All: true}, nil
	}
	return reconcile.Grant{Locations: s}, nil
}

// Engine returns an engine on db restricted to scope; no IDs means unrestricted.
func Engine(db *gorm.DB, scope ...uint) *reconcile.Engine {
	return reconcile.NewEngine(db, Scope(scope), reconcile.Config{}, zap.NewNop())
}

// Rows numbers cells as spreadsheet lines, starting below the header on line 2.
func Rows(cells ...map[string]any) []reconcile.Row {
	rows := make([]reconcile.Row, len(cells))
	for i, c := range cells {
		rows[i] = reconcile.NewRow(i+2, c)
	}
	return rows
}

// Run imports rows through desc as user 7 and fails the test on a batch-level error.
func Run(t testing.TB, engine *reconcile.Engine, desc reconcile.Descriptor, rows []reconcile.Row) *reconcile.BatchResult {
	t.Helper()
	result, err := engine.Run(context.Background(), desc, rows, reconcile.Actor{UserID: 7}, reconcile.Options{})
	require.NoError(t, err)
	return result
}
