package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo is one column of a live table, names and types lower-cased.
type ColumnInfo struct {
	Field string
	Type  string
	Null  string
	Key   string
	// Default is nil when the column has no default.
	Default *string
	Extra   string
}

// GetTableColumns retrieves the column definitions for a given table.
// A missing table yields no columns and no error.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var (
		columns []ColumnInfo
		err     error
	)

	switch db.Dialector.Name() {
	case DriverSQLite:
		columns, err = sqliteColumns(db, tableName)
	case DriverPostgres:
		columns, err = postgresColumns(db, tableName)
	default:
		columns, err = mysqlColumns(db, tableName)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}

	for i := range columns {
		columns[i].Field = strings.ToLower(columns[i].Field)
		columns[i].Type = strings.ToLower(columns[i].Type)
	}
	return columns, nil
}

func sqliteColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	type pragmaColumn struct {
		Cid       int
		Name      string
		Type      string
		Notnull   int
		DfltValue *string
		Pk        int
	}
	var rows []pragmaColumn
	if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&rows).Error; err != nil {
		return nil, err
	}

	columns := make([]ColumnInfo, 0, len(rows))
	for _, r := range rows {
		col := ColumnInfo{Field: r.Name, Type: r.Type, Null: "YES", Default: r.DfltValue}
		if r.Notnull == 1 {
			col.Null = "NO"
		}
		if r.Pk > 0 {
			col.Key = "PRI"
		}
		columns = append(columns, col)
	}
	return columns, nil
}

func postgresColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo
	err := db.Raw(`SELECT column_name AS field, data_type AS type, is_nullable AS null, column_default AS "default"
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = ?
		ORDER BY ordinal_position`, tableName).Scan(&columns).Error
	return columns, err
}

func mysqlColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo
	err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error
	return columns, err
}
