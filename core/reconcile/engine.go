package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Observer receives one notification per finished batch (metrics).
type Observer interface {
	ObserveBatch(entity, status string, result *BatchResult, elapsed time.Duration)
}

// Engine runs spreadsheet batches through validation, duplicate resolution and persistence.
type Engine struct {
	db       *gorm.DB
	scopes   ScopeResolver
	auditor  Auditor
	observer Observer
	logger   *zap.Logger
	cfg      Config
	locks    *entityLocks
}

// NewEngine creates an engine. scopes may be nil, in which case every batch is unrestricted.
func NewEngine(db *gorm.DB, scopes ScopeResolver, cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		db:     db,
		scopes: scopes,
		logger: logger,
		cfg:    cfg.withDefaults(),
		locks:  newEntityLocks(),
	}
}

// SetAuditor sets the collaborator receiving one audit entry per batch.
func (e *Engine) SetAuditor(a Auditor) {
	e.auditor = a
}

// SetObserver sets the batch observer.
func (e *Engine) SetObserver(o Observer) {
	e.observer = o
}

// Run reconciles rows for desc on behalf of actor.
// Row-level problems are reported in the result; a returned error means the
// batch failed as a whole and nothing was written.
func (e *Engine) Run(ctx context.Context, desc Descriptor, rows []Row, actor Actor, opts Options) (*BatchResult, error) {
	start := time.Now()
	l := e.logger.With(zap.String("entity", desc.Name()), zap.Uint("user_id", actor.UserID))

	batchSize, workers := e.cfg.BatchSize, e.cfg.Workers
	if opts.BatchSize > 0 {
		batchSize = opts.BatchSize
	}
	if opts.Workers > 0 {
		workers = opts.Workers
	}

	result, err := e.runExclusive(ctx, desc, rows, actor, batchSize, workers)
	elapsed := time.Since(start)

	e.audit(ctx, desc, actor, rows, result, err)
	if e.observer != nil {
		status := BatchFailed
		if err == nil {
			status = result.Status()
		}
		e.observer.ObserveBatch(desc.Name(), status, result, elapsed)
	}

	if err != nil {
		l.Error("Import failed", zap.Int("rows", len(rows)), zap.Error(err))
		return nil, err
	}

	l.Info("Import finished",
		zap.Int("rows", result.TotalRows),
		zap.Int("inserted", result.InsertedCount),
		zap.Int("updated", result.UpdatedCount),
		zap.Int("rejected", result.RejectedCount),
		zap.Duration("elapsed", elapsed))
	return result, nil
}

// runExclusive holds the entity lock for the run. Overlapping imports of one
// entity type would race on natural keys.
func (e *Engine) runExclusive(ctx context.Context, desc Descriptor, rows []Row, actor Actor, batchSize, workers int) (*BatchResult, error) {
	unlock, err := e.locks.lock(ctx, desc.Name())
	if err != nil {
		return nil, fmt.Errorf("wait for running %s import: %w", desc.Name(), err)
	}
	defer unlock()
	return e.run(ctx, desc, rows, actor, batchSize, workers)
}

func (e *Engine) run(ctx context.Context, desc Descriptor, rows []Row, actor Actor, batchSize, workers int) (*BatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	grant := Grant{All: true}
	if e.scopes != nil {
		var err error
		grant, err = e.scopes.ResolveScope(ctx, actor.UserID, actor.RoleID)
		if err != nil {
			return nil, fmt.Errorf("resolve location scope: %w", err)
		}
	}
	scope := NewScope(grant, e.cfg.Policy())

	cache, err := BuildCache(ctx, e.db, desc.Loaders(rows))
	if err != nil {
		return nil, fmt.Errorf("build lookup cache: %w", err)
	}
	if failed := cache.Failed(); len(failed) > 0 {
		e.logger.Warn("Optional reference data unavailable",
			zap.String("entity", desc.Name()),
			zap.Strings("indexes", failed))
	}

	outcomes, decisions := e.validate(desc, rows, cache, scope)
	outcomes = append(outcomes, e.persist(ctx, desc, decisions, actor, batchSize, workers)...)

	return BuildResult(desc.Name(), outcomes), nil
}

// validate runs every row through the validator and the duplicate resolver.
// It is sequential so that natural keys are claimed in row order.
func (e *Engine) validate(desc Descriptor, rows []Row, cache *Cache, scope Scope) ([]Outcome, []Decision) {
	var outcomes []Outcome
	decisions := make([]Decision, 0, len(rows))
	dups := newDuplicates(desc.NaturalKeys())
	columns := desc.Columns()

	for _, row := range rows {
		if err := checkRequired(columns, row); err != nil {
			outcomes = append(outcomes, rejected(row, err.Error()))
			continue
		}

		res, err := desc.Resolve(row, cache)
		if err != nil {
			outcomes = append(outcomes, rejected(row, rowReason(err)))
			continue
		}

		if err := checkScope(scope, res, dups); err != nil {
			outcomes = append(outcomes, rejected(row, err.Error()))
			continue
		}

		d, err := dups.decide(row, res.Record, cache)
		if err != nil {
			outcomes = append(outcomes, rejected(row, rowReason(err)))
			continue
		}
		decisions = append(decisions, d)
	}

	return outcomes, decisions
}

func checkRequired(columns []Column, row Row) error {
	for _, c := range columns {
		if c.Required && !row.Has(c.Label) {
			return Reject(c.Label, "", "%s is required", c.Label)
		}
	}
	return nil
}

func checkScope(scope Scope, res Resolved, dups *duplicates) error {
	if !scope.Restricted() {
		return nil
	}
	for _, loc := range res.Locations {
		if scope.Allows(loc.ID) {
			continue
		}
		if kv, ok := dups.primary(res.Record); ok {
			return Reject("", loc.Code, "Location '%s' is outside your assigned locations (%s)", loc.Code, describeKey(kv))
		}
		return Reject("", loc.Code, "Location '%s' is outside your assigned locations", loc.Code)
	}
	return nil
}

func rowReason(err error) string {
	var rowErr *RowError
	if errors.As(err, &rowErr) {
		return rowErr.Message
	}
	return err.Error()
}

func (e *Engine) audit(ctx context.Context, desc Descriptor, actor Actor, rows []Row, result *BatchResult, runErr error) {
	if e.auditor == nil {
		return
	}
	entry := NewAuditEntry(desc, actor, rows, result, runErr, e.cfg.AuditRawLimit)
	// The batch outcome stands even when the audit write fails.
	if err := e.auditor.Record(context.WithoutCancel(ctx), entry); err != nil {
		e.logger.Error("Failed to record audit trail", zap.String("entity", desc.Name()), zap.Error(err))
	}
}

// entityLocks serialises runs per entity type. Each lock is a one-slot channel
// so waiting can be abandoned when the caller's context ends.
type entityLocks struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func newEntityLocks() *entityLocks {
	return &entityLocks{locks: make(map[string]chan struct{})}
}

func (l *entityLocks) lock(ctx context.Context, name string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	slot, ok := l.locks[name]
	if !ok {
		slot = make(chan struct{}, 1)
		l.locks[name] = slot
	}
	l.mu.Unlock()

	select {
	case slot <- struct{}{}:
		return func() { <-slot }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
