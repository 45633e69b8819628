// Package masterdata owns the reference data every import resolves against.
//
// It provides the shared lookup loaders (warehouses by IFS code, locations,
// positions, item categories, statuses, employees with their active locations),
// the helpers that turn a Store IFS or Item Category cell into an ID, schema
// migration, and a schema check comparing the models with the live database
// (GET /masterdata/schema, `store-ops migrate --check`).
package masterdata
