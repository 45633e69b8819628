package imports

import (
	"store-ops/core/reconcile"
	"store-ops/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new imports feature. engine may be nil when no database
// is connected, which disables the feature.
func NewFeature(engine *reconcile.Engine, registry *Registry, permissions PermissionChecker, archive *storage.Archive, logger *zap.Logger) *Feature {
	svc := NewService(engine, registry, permissions, archive, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "imports"
}

// IsEnabled reports whether an engine is configured.
func (f *Feature) IsEnabled() bool {
	return f.service.engine != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
