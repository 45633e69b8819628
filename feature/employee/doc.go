// Package employee imports the employee roster. Rows are matched by employee
// number, then by number and name, then by email, and updated in place; the
// Locations column replaces the employee's active location assignments.
package employee
