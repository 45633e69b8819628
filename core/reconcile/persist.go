package reconcile

// Batch persistence of decided rows.

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// persist writes decisions chunk by chunk. Chunks run sequentially; rows inside a
// chunk fan out over at most workers goroutines. Every decision yields one outcome.
func (e *Engine) persist(ctx context.Context, desc Descriptor, decisions []Decision, actor Actor, batchSize, workers int) []Outcome {
	outcomes := make([]Outcome, 0, len(decisions))

	for start := 0; start < len(decisions); start += batchSize {
		end := min(start+batchSize, len(decisions))

		if err := ctx.Err(); err != nil {
			for _, d := range decisions[start:] {
				outcomes = append(outcomes, rejected(d.Row, fmt.Sprintf("import aborted: %v", err)))
			}
			e.logger.Warn("Import aborted before all chunks were saved",
				zap.String("entity", desc.Name()),
				zap.Int("unsaved", len(decisions)-start),
				zap.Error(err))
			break
		}

		outcomes = append(outcomes, e.persistChunk(ctx, desc, decisions[start:end], actor, workers)...)
		e.logger.Debug("Chunk saved",
			zap.String("entity", desc.Name()),
			zap.Int("from", start),
			zap.Int("to", end))
	}

	return outcomes
}

func (e *Engine) persistChunk(ctx context.Context, desc Descriptor, chunk []Decision, actor Actor, workers int) []Outcome {
	results := make([]Outcome, len(chunk))

	var inserts, single []int
	for i, d := range chunk {
		if d.Kind == DecisionInsert {
			inserts = append(inserts, i)
		} else {
			single = append(single, i)
		}
	}

	// Inserts go out as one statement; any failure sends them down the per-row path
	// so the offending row can be isolated.
	if len(inserts) > 0 {
		if err := e.insertMany(ctx, desc, chunk, inserts, actor); err != nil {
			e.logger.Warn("Bulk insert failed, retrying rows one by one",
				zap.String("entity", desc.Name()),
				zap.Int("rows", len(inserts)),
				zap.Error(err))
			for _, i := range inserts {
				chunk[i].Record.SetID(0)
			}
			single = append(single, inserts...)
		} else {
			for _, i := range inserts {
				results[i] = Outcome{Row: chunk[i].Row, Kind: OutcomeInserted, ID: chunk[i].Record.GetID()}
			}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, i := range single {
		g.Go(func() error {
			results[i] = e.persistOne(gctx, desc, chunk[i], actor)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (e *Engine) insertMany(ctx context.Context, desc Descriptor, chunk []Decision, idx []int, actor Actor) error {
	records := make([]Record, len(idx))
	for n, i := range idx {
		records[n] = chunk[i].Record
	}

	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := desc.Insert(ctx, tx, records, actor); err != nil {
			return err
		}
		cascader, ok := desc.(Cascader)
		if !ok {
			return nil
		}
		for _, rec := range records {
			if err := cascader.AfterSave(ctx, tx, rec.GetID(), rec, actor); err != nil {
				return err
			}
		}
		return nil
	})
}

func (e *Engine) persistOne(ctx context.Context, desc Descriptor, d Decision, actor Actor) Outcome {
	var id uint
	kind := OutcomeInserted
	if d.Kind == DecisionUpdate {
		kind = OutcomeUpdated
	}

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch {
		case d.Kind == DecisionInsert:
			if err := desc.Insert(ctx, tx, []Record{d.Record}, actor); err != nil {
				return err
			}
			id = d.Record.GetID()

		case desc.UpdateMode() == RetireAndInsert:
			retirer, ok := desc.(Retirer)
			if !ok {
				return fmt.Errorf("descriptor %s cannot retire rows", desc.Name())
			}
			if err := retirer.Retire(ctx, tx, d.ExistingID, actor); err != nil {
				return err
			}
			d.Record.SetID(0)
			if err := desc.Insert(ctx, tx, []Record{d.Record}, actor); err != nil {
				return err
			}
			id = d.Record.GetID()

		default:
			if err := desc.Update(ctx, tx, d.ExistingID, d.Record, actor); err != nil {
				return err
			}
			id = d.ExistingID
		}

		if cascader, ok := desc.(Cascader); ok {
			return cascader.AfterSave(ctx, tx, id, d.Record, actor)
		}
		return nil
	})
	if err != nil {
		return rejected(d.Row, fmt.Sprintf("failed to save row: %v", err))
	}

	return Outcome{Row: d.Row, Kind: kind, ID: id}
}
