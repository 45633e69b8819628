// Package reconcile provides the generic spreadsheet upsert engine used by every
// bulk upload (employee rosters, store hierarchies, hurdles, rates, budgets).
//
// A batch of untyped rows is turned into validated, permission-scoped and
// deduplicated database mutations, with a per-row success or error report.
//
// # Architecture
//
// The engine consists of the following components:
//
// 1. Cache: batch-scoped lookup indices (locations, positions, warehouses,
//    existing target rows, ...) loaded concurrently once per run.
//
// 2. Scope: the set of location IDs the actor may act on, with an explicit
//    policy for the empty set (unrestricted or deny).
//
// 3. Descriptor: the per-entity part. It declares columns, natural keys in
//    fallback order, loaders, row resolution and the write operations.
//
// 4. Duplicate resolver: rejects rows repeating a natural key within the batch,
//    rejects protected persisted rows and decides insert or update.
//
// 5. Reconciler: persists decisions in chunks, insert-many first, falling back
//    to per-row transactions so one bad row never aborts the batch.
//
// 6. Reporter: BatchResult plus a single audit entry per batch.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(db, permissionStore, cfg.Import, logger)
//	engine.SetAuditor(audit.NewRecorder(db))
//
//	result, err := engine.Run(ctx, employee.NewDescriptor(), rows, actor, reconcile.Options{})
//	if err != nil {
//	    // batch-level failure: nothing was written
//	}
//	fmt.Println(result.InsertedCount, result.UpdatedCount, result.RejectedCount)
//
// # Creating Descriptors
//
// To support a new entity, implement the Descriptor interface and, when needed,
// Retirer (append-only updates) and Cascader (sub-resources).
// See feature/employee for a complete example.
package reconcile
