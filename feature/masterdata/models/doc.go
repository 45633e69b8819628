// Package models contains the GORM models of the master-data tables the imports
// read and write: locations, positions, item categories, statuses, warehouses,
// employees and their location assignments, warehouse hierarchies, hurdles, rates
// and sales budgets.
//
// Every model embeds Model, so pointers to them satisfy reconcile.Record.
package models
