package audit

import (
	"context"
	"fmt"
	"time"

	"store-ops/core/reconcile"

	"gorm.io/gorm"
)

// Trail is one audit-trail record.
type Trail struct {
	ID          uint   `gorm:"primaryKey"`
	Service     string `gorm:"size:100;not null;index"`
	Method      string `gorm:"size:50;not null"`
	UserID      uint   `gorm:"index"`
	RawData     string `gorm:"type:text"`
	Description string `gorm:"size:500"`
	Status      string `gorm:"size:20;not null"`
	CreatedAt   time.Time
}

// TableName overrides the table name.
func (Trail) TableName() string {
	return "audit_trails"
}

// Recorder writes audit entries to the database.
type Recorder struct {
	db *gorm.DB
}

// NewRecorder creates a new recorder.
func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Record implements reconcile.Auditor.
func (r *Recorder) Record(ctx context.Context, entry reconcile.AuditEntry) error {
	trail := Trail{
		Service:     entry.Service,
		Method:      entry.Method,
		UserID:      entry.UserID,
		RawData:     entry.RawData,
		Description: truncate(entry.Description, 500),
		Status:      entry.Status,
	}
	if err := r.db.WithContext(ctx).Create(&trail).Error; err != nil {
		return fmt.Errorf("record audit trail: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
