package masterdata

import (
	"context"
	"fmt"

	"store-ops/core/audit"
	"store-ops/core/permission"
	"store-ops/feature/masterdata/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Tables returns every model the application owns: master data, permissions and
// the audit trail.
func Tables() []any {
	tables := models.All()
	tables = append(tables, permission.Models()...)
	return append(tables, &audit.Trail{})
}

// Service migrates and inspects the master-data schema.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new master-data service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Migrate creates or updates every table.
func (s *Service) Migrate(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	if err := s.db.WithContext(ctx).AutoMigrate(Tables()...); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	s.logger.Info("Schema migrated", zap.Int("tables", len(Tables())))
	return nil
}

// CheckSchema compares the models with the live database.
func (s *Service) CheckSchema(ctx context.Context) (*SchemaReport, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return CheckSchema(s.db.WithContext(ctx), Tables())
}
