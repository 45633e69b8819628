package cmd

import (
	"context"
	"fmt"

	"store-ops/core/audit"
	"store-ops/core/config"
	"store-ops/core/database"
	"store-ops/core/logger"
	"store-ops/core/metrics"
	"store-ops/core/permission"
	"store-ops/core/reconcile"
	"store-ops/core/storage"
	"store-ops/feature/imports"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// deps are the collaborators shared by the commands.
type deps struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	archive *storage.Archive
	metrics *metrics.Recorder
}

// bootstrap loads configuration, builds the logger and connects the database.
// Storage is connected only when archiving is enabled.
func bootstrap(ctx context.Context) (*deps, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	d := &deps{cfg: cfg, logger: l}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		l.Warn("Database connection failed", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	} else {
		d.db = db
		l.Info("Connected to database", zap.String("driver", cfg.Database.Driver), zap.String("name", cfg.Database.Name))
	}

	if cfg.Storage.Enabled {
		archive, err := connectArchive(ctx, cfg.Storage)
		if err != nil {
			l.Warn("Upload archive unavailable", zap.String("endpoint", cfg.Storage.Endpoint), zap.Error(err))
		} else {
			d.archive = archive
		}
	}

	if cfg.Metrics.Enabled {
		d.metrics = metrics.NewRecorder()
	}
	return d, nil
}

func connectArchive(ctx context.Context, cfg storage.Config) (*storage.Archive, error) {
	client, err := storage.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	archive := storage.NewArchive(client, cfg)

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()
	if err := archive.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return archive, nil
}

// engine wires the reconcile engine with scopes, the audit trail and metrics.
// It returns nil without a database.
func (d *deps) engine() *reconcile.Engine {
	if d.db == nil {
		return nil
	}
	engine := reconcile.NewEngine(d.db, permission.NewStore(d.db), d.cfg.Import, d.logger)
	engine.SetAuditor(audit.NewRecorder(d.db))
	if d.metrics != nil {
		engine.SetObserver(d.metrics)
	}
	return engine
}

// permissions returns the permission store, or nil without a database.
func (d *deps) permissions() imports.PermissionChecker {
	if d.db == nil {
		return nil
	}
	return permission.NewStore(d.db)
}
