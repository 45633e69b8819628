package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"unicode/utf8"
)

// Batch statuses handed to the audit trail.
const (
	BatchSuccess = "success"
	BatchPartial = "partial"
	BatchFailed  = "failed"
)

const truncatedSuffix = "...(truncated)"

// RowFailure is a rejected row in a BatchResult.
type RowFailure struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// RowSuccess is an inserted or updated row in a BatchResult.
type RowSuccess struct {
	RowNumber int            `json:"row_number"`
	Action    OutcomeKind    `json:"action"`
	ID        uint           `json:"id"`
	Data      map[string]any `json:"data"`
}

// BatchResult is the caller-facing summary of a run.
// It is the response body of every upload endpoint.
type BatchResult struct {
	Entity             string       `json:"entity"`
	TotalRows          int          `json:"total_rows"`
	InsertedCount      int          `json:"inserted_count"`
	UpdatedCount       int          `json:"updated_count"`
	RejectedCount      int          `json:"rejected_count"`
	InsertedRowNumbers []int        `json:"inserted_row_numbers"`
	UpdatedRowNumbers  []int        `json:"updated_row_numbers"`
	Errors             []RowFailure `json:"errors"`
	Success            []RowSuccess `json:"success"`
}

// BuildResult assembles a BatchResult from outcomes. All lists are ordered by row number.
func BuildResult(entity string, outcomes []Outcome) *BatchResult {
	sorted := make([]Outcome, len(outcomes))
	copy(sorted, outcomes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Row.Number < sorted[j].Row.Number
	})

	res := &BatchResult{
		Entity:             entity,
		TotalRows:          len(sorted),
		InsertedRowNumbers: []int{},
		UpdatedRowNumbers:  []int{},
		Errors:             []RowFailure{},
		Success:            []RowSuccess{},
	}

	for _, o := range sorted {
		switch o.Kind {
		case OutcomeInserted:
			res.InsertedCount++
			res.InsertedRowNumbers = append(res.InsertedRowNumbers, o.Row.Number)
		case OutcomeUpdated:
			res.UpdatedCount++
			res.UpdatedRowNumbers = append(res.UpdatedRowNumbers, o.Row.Number)
		default:
			res.RejectedCount++
			res.Errors = append(res.Errors, RowFailure{Row: o.Row.Number, Error: o.Reason})
			continue
		}
		res.Success = append(res.Success, RowSuccess{
			RowNumber: o.Row.Number,
			Action:    o.Kind,
			ID:        o.ID,
			Data:      o.Row.Raw(),
		})
	}

	return res
}

// Status classifies the batch for the audit trail.
func (r *BatchResult) Status() string {
	if r.RejectedCount == 0 {
		return BatchSuccess
	}
	if r.InsertedCount+r.UpdatedCount == 0 {
		return BatchFailed
	}
	return BatchPartial
}

// Describe renders a one-line summary.
func (r *BatchResult) Describe() string {
	return fmt.Sprintf("%s import: %d inserted, %d updated, %d rejected of %d rows",
		r.Entity, r.InsertedCount, r.UpdatedCount, r.RejectedCount, r.TotalRows)
}

// AuditEntry is the single audit-trail record written per batch.
type AuditEntry struct {
	Service     string
	Method      string
	UserID      uint
	RawData     string
	Description string
	Status      string
}

// Auditor persists audit entries.
type Auditor interface {
	Record(ctx context.Context, entry AuditEntry) error
}

// NewAuditEntry builds the audit record of a run. runErr is set for batch-level failures.
func NewAuditEntry(desc Descriptor, actor Actor, rows []Row, result *BatchResult, runErr error, rawLimit int) AuditEntry {
	entry := AuditEntry{
		Service: desc.Module(),
		Method:  "upload",
		UserID:  actor.UserID,
		RawData: TruncateRaw(rows, rawLimit),
	}
	if runErr != nil {
		entry.Status = BatchFailed
		entry.Description = fmt.Sprintf("%s import failed: %v", desc.Name(), runErr)
		return entry
	}
	entry.Status = result.Status()
	entry.Description = result.Describe()
	return entry
}

// TruncateRaw encodes rows as JSON and cuts the dump to at most limit bytes.
// A limit of zero or less disables truncation.
func TruncateRaw(rows []Row, limit int) string {
	data, err := json.Marshal(rows)
	if err != nil {
		return ""
	}
	if limit <= 0 || len(data) <= limit {
		return string(data)
	}

	// Below the suffix length there is no room for the marker.
	suffix := truncatedSuffix
	if limit < len(suffix) {
		suffix = ""
	}
	cut := limit - len(suffix)
	for cut > 0 && !utf8.RuneStart(data[cut]) {
		cut--
	}
	return string(data[:cut]) + suffix
}
