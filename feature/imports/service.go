package imports

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"store-ops/core/reconcile"
	"store-ops/core/spreadsheet"
	"store-ops/core/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Permission actions checked by the service.
const (
	// UploadAction is checked before an import.
	UploadAction = "upload"
	// ViewAction is checked before archived uploads are listed.
	ViewAction = "view"
)

var (
	// ErrUnknownEntity is returned for entity types without a descriptor.
	ErrUnknownEntity = errors.New("unknown entity type")
	// ErrForbidden is returned when the actor lacks the permission for the entity.
	ErrForbidden = errors.New("permission denied")
	// ErrUnauthenticated is returned when no acting user is known.
	ErrUnauthenticated = errors.New("acting user is required")
	// ErrInvalidFile wraps spreadsheet parse failures.
	ErrInvalidFile = errors.New("invalid spreadsheet")
	// ErrArchiveDisabled is returned by archive operations when storage is off.
	ErrArchiveDisabled = errors.New("upload archive is disabled")
)

// PermissionChecker decides whether a user may perform action on module.
type PermissionChecker interface {
	CheckPermission(ctx context.Context, userID uint, module, action string, accessKeyID uint) (bool, error)
}

// Service runs batch imports.
type Service struct {
	engine      *reconcile.Engine
	registry    *Registry
	permissions PermissionChecker
	archive     *storage.Archive
	logger      *zap.Logger
}

// NewService creates a new import service. permissions and archive may be nil:
// without permissions every authenticated actor may upload, without an archive
// files are not kept.
func NewService(engine *reconcile.Engine, registry *Registry, permissions PermissionChecker, archive *storage.Archive, logger *zap.Logger) *Service {
	return &Service{
		engine:      engine,
		registry:    registry,
		permissions: permissions,
		archive:     archive,
		logger:      logger,
	}
}

// Entities lists the importable entity types.
func (s *Service) Entities() []Entity {
	return s.registry.Entities()
}

// RunBatchImport reconciles rows of entity on behalf of actor.
func (s *Service) RunBatchImport(ctx context.Context, entity string, rows []reconcile.Row, actor reconcile.Actor, opts reconcile.Options) (*reconcile.BatchResult, error) {
	desc, err := s.authorize(ctx, entity, actor, UploadAction)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, reconcile.ErrNoRows
	}
	return s.engine.Run(ctx, desc, rows, actor, opts)
}

// ImportFile parses a spreadsheet upload, archives it under rayID and imports its rows.
// A blank rayID gets a generated one.
func (s *Service) ImportFile(ctx context.Context, entity, filename string, data []byte, actor reconcile.Actor, opts reconcile.Options, rayID string) (*reconcile.BatchResult, error) {
	desc, err := s.authorize(ctx, entity, actor, UploadAction)
	if err != nil {
		return nil, err
	}

	rows, err := spreadsheet.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	if s.archive != nil {
		if rayID == "" {
			rayID = uuid.NewString()
		}
		key, err := s.archive.Save(ctx, desc.Name(), rayID, filename, data, spreadsheet.ContentType(filename))
		if err != nil {
			// The upload is still imported; only the archived copy is lost.
			s.logger.Error("Failed to archive upload", zap.String("entity", desc.Name()), zap.String("file", filename), zap.Error(err))
		} else {
			s.logger.Debug("Upload archived", zap.String("key", key))
		}
	}

	return s.engine.Run(ctx, desc, rows, actor, opts)
}

// ImportObject imports a spreadsheet already stored in the archive bucket.
func (s *Service) ImportObject(ctx context.Context, entity, key string, actor reconcile.Actor, opts reconcile.Options) (*reconcile.BatchResult, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	desc, err := s.authorize(ctx, entity, actor, UploadAction)
	if err != nil {
		return nil, err
	}

	data, err := s.archive.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	rows, err := spreadsheet.Parse(bytes.NewReader(data), key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	return s.engine.Run(ctx, desc, rows, actor, opts)
}

// Archives lists the archived uploads of entity the actor may view.
func (s *Service) Archives(ctx context.Context, entity string, actor reconcile.Actor) ([]storage.ArchivedObject, error) {
	desc, err := s.authorize(ctx, entity, actor, ViewAction)
	if err != nil {
		return nil, err
	}
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	return s.archive.List(ctx, desc.Name())
}

func (s *Service) authorize(ctx context.Context, entity string, actor reconcile.Actor, action string) (reconcile.Descriptor, error) {
	desc, ok := s.registry.Get(entity)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, entity)
	}
	if actor.UserID == 0 {
		return nil, ErrUnauthenticated
	}
	if s.permissions == nil {
		return desc, nil
	}

	allowed, err := s.permissions.CheckPermission(ctx, actor.UserID, desc.Module(), action, actor.AccessKeyID)
	if err != nil {
		return nil, fmt.Errorf("check permission: %w", err)
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s on %s", ErrForbidden, action, desc.Module())
	}
	return desc, nil
}
