package masterdata

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"store-ops/core/database"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// SchemaReport is the result of comparing the models with the live database.
type SchemaReport struct {
	Driver  string                 `json:"driver"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport is the comparison result of one table.
type TableReport struct {
	Missing        bool     `json:"missing"`
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "error"
}

// typeAliases maps declared base types to how some catalogues report them.
var typeAliases = map[string]string{
	"varchar": "character varying",
	"decimal": "numeric",
}

// CheckSchema verifies the database schema using the GORM models as the source of truth.
func CheckSchema(db *gorm.DB, tables []any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Driver:  db.Dialector.Name(),
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	cache := &sync.Map{}
	for _, model := range tables {
		s, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}

		actual, err := database.GetTableColumns(db, s.Table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", s.Table, err))
			report.Matched = false
			continue
		}

		tbl := compareTable(s, actual)
		if tbl.Status != "ok" {
			report.Matched = false
		}
		report.Tables[s.Table] = tbl
	}

	return report, nil
}

func compareTable(s *schema.Schema, actual []database.ColumnInfo) TableReport {
	tbl := TableReport{
		MissingColumns: []string{},
		TypeMismatches: []string{},
		Status:         "ok",
	}
	if len(actual) == 0 {
		tbl.Missing = true
		tbl.Status = "error"
		return tbl
	}

	byName := make(map[string]database.ColumnInfo, len(actual))
	for _, c := range actual {
		byName[c.Field] = c
	}

	for _, f := range s.Fields {
		if f.DBName == "" {
			continue
		}
		col, ok := byName[strings.ToLower(f.DBName)]
		if !ok {
			tbl.MissingColumns = append(tbl.MissingColumns, f.DBName)
			continue
		}
		// Only columns with an explicit type are checked.
		expected := f.TagSettings["TYPE"]
		if expected != "" && !typeMatches(expected, col.Type) {
			tbl.TypeMismatches = append(tbl.TypeMismatches,
				fmt.Sprintf("%s: expected %s, got %s", f.DBName, strings.ToLower(expected), col.Type))
		}
	}

	sort.Strings(tbl.MissingColumns)
	if len(tbl.MissingColumns) > 0 || len(tbl.TypeMismatches) > 0 {
		tbl.Status = "error"
	}
	return tbl
}

func typeMatches(expected, actual string) bool {
	expected = strings.ToLower(expected)
	if strings.Contains(actual, expected) {
		return true
	}
	base := expected
	if i := strings.IndexByte(base, '('); i >= 0 {
		base = base[:i]
	}
	if base == actual {
		return true
	}
	alias, ok := typeAliases[base]
	return ok && strings.Contains(actual, alias)
}
