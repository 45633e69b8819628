// Package audit persists the audit trail.
//
// Recorder implements reconcile.Auditor: one row in audit_trails per import batch,
// carrying the module, the acting user, a bounded raw-row dump and the outcome.
package audit
