// Package database handles database connections and schema inspection.
//
// Connect opens a GORM connection for the configured driver (MySQL, PostgreSQL or
// SQLite), applies pool settings and pings the server within TimeoutSeconds.
// Timestamps are exchanged in UTC.
//
// # Schema Inspection
//
// GetTableColumns reads live column definitions with the dialect's own catalogue
// (SHOW COLUMNS, information_schema, PRAGMA table_info). The master-data schema
// check uses it to report drift between the models and the deployed database.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "warehouses")
package database
