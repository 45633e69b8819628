package reconcile

import (
	"errors"
	"fmt"
)

// ErrNoRows is returned when a batch carries no data rows.
var ErrNoRows = errors.New("batch contains no data rows")

// Status codes shared by every imported entity.
const (
	StatusInactive = 0
	StatusActive   = 1
)

// Actor identifies who runs a batch.
type Actor struct {
	UserID      uint `json:"user_id"`
	RoleID      uint `json:"role_id"`
	AccessKeyID uint `json:"access_key_id"`
}

// Options tunes a single run. Zero values fall back to the engine Config.
type Options struct {
	// BatchSize is the number of decisions persisted per chunk.
	BatchSize int
	// Workers bounds the per-row persistence fan-out inside a chunk.
	Workers int
}

// Column describes one expected spreadsheet column.
type Column struct {
	Label       string `json:"label"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

// Record is a resolved row payload ready for persistence.
// Descriptors use pointers to gorm models.
type Record interface {
	GetID() uint
	SetID(id uint)
}

// LocationRef is a location a row affects.
type LocationRef struct {
	ID   uint
	Code string
}

// Resolved is the output of a successful row validation.
type Resolved struct {
	Record    Record
	Locations []LocationRef
}

// Existing is a persisted row matched by a natural key.
type Existing struct {
	ID uint
	// Protected marks rows owned by an upstream system of record.
	Protected bool
}

// UpdateMode controls how a matched, unprotected row is changed.
type UpdateMode int

const (
	// UpdateInPlace mutates the existing row.
	UpdateInPlace UpdateMode = iota
	// RetireAndInsert flips the existing row to inactive and inserts a new one.
	RetireAndInsert
)

// DecisionKind is the persistence decision for a validated row.
type DecisionKind string

const (
	DecisionInsert DecisionKind = "insert"
	DecisionUpdate DecisionKind = "update"
)

// Decision is a validated row waiting for persistence.
type Decision struct {
	Row        Row
	Kind       DecisionKind
	Record     Record
	ExistingID uint
}

// OutcomeKind is the final classification of an input row.
type OutcomeKind string

const (
	OutcomeInserted OutcomeKind = "inserted"
	OutcomeUpdated  OutcomeKind = "updated"
	OutcomeRejected OutcomeKind = "rejected"
)

// Outcome is the result for exactly one input row.
type Outcome struct {
	Row    Row
	Kind   OutcomeKind
	ID     uint
	Reason string
}

func rejected(row Row, reason string) Outcome {
	return Outcome{Row: row, Kind: OutcomeRejected, Reason: reason}
}

// RowError is a recoverable, row-level validation failure.
type RowError struct {
	// Field is the human label of the offending column, if any.
	Field string
	// Value is the attempted value.
	Value   string
	Message string
}

func (e *RowError) Error() string {
	return e.Message
}

// Reject builds a RowError for the given column and value.
func Reject(field, value, format string, args ...any) *RowError {
	return &RowError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)}
}
