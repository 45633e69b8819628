// Package imports exposes the spreadsheet uploads.
//
// A Registry maps entity types (employee, store-employee, hurdle, rate, budget)
// to their reconcile descriptors. The Service checks the actor's upload
// permission for the entity's module, parses and archives files, and runs the
// batch through the reconcile engine. The Handler serves it over HTTP:
//
//	POST /imports/:entity          multipart "file" (xlsx/csv) or JSON {"rows": [...]}
//	GET  /imports                  entity types and their columns
//	GET  /imports/:entity/archives archived uploads of an entity
package imports
