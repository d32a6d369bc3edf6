// parallel.go - Executor mit Ebenen-Plan und Worker-Pool
//
// Enthaelt:
// - Parallel: fuehrt konfliktfreie Aggregate eines Batches gleichzeitig aus
//
// Pro Batch wird mit schedule ein Ebenen-Plan berechnet. Jede Ebene laeuft
// in einer errgroup mit Workers Goroutinen; die naechste Ebene startet erst,
// wenn die vorige komplett ist. Ein Semaphore begrenzt die Anzahl
// gleichzeitig laufender Batches.
package executor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/ollama/aggregates/aggregate"
)

func init() {
	Register("parallel", func(opts Options) (Executioner, error) {
		return NewParallel(opts), nil
	})
}

// Parallel runs non-conflicting aggregates of a batch concurrently.
type Parallel struct {
	workers int
	batches *semaphore.Weighted
}

// NewParallel creates a parallel executor.
func NewParallel(opts Options) *Parallel {
	opts = opts.normalize()
	return &Parallel{
		workers: opts.Workers,
		batches: semaphore.NewWeighted(int64(opts.MaxBatches)),
	}
}

func (*Parallel) Name() string { return "parallel" }

// Workers gibt die Anzahl paralleler Kernel-Aufrufe pro Batch zurueck
func (p *Parallel) Workers() int { return p.workers }

func (*Parallel) Exec(ctx context.Context, a aggregate.Aggregate) error {
	return exec(ctx, a)
}

func (p *Parallel) ExecBatch(ctx context.Context, b *aggregate.Batch) error {
	aggs, err := b.Consume()
	if err != nil {
		return err
	}

	if err := p.batches.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("batch %s: %w", b.ID(), err)
	}
	defer p.batches.Release(1)

	start := time.Now()
	levels := schedule(aggs)
	slog.Debug("exec batch", "executor", "parallel", "batch", b.ID(), "aggregates", len(aggs), "levels", len(levels), "workers", p.workers)

	failures := make([]*ExecError, len(aggs))
	for n, level := range levels {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("batch %s: stopped at level %d: %w", b.ID(), n, err)
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(p.workers)
		for _, i := range level {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				// jede Goroutine schreibt nur ihren eigenen Eintrag
				failures[i] = execOne(b.ID(), i, aggs[i])
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return fmt.Errorf("batch %s: stopped at level %d: %w", b.ID(), n, err)
		}
	}

	slog.Debug("batch done", "batch", b.ID(), "duration", time.Since(start))
	return batchError(b.ID(), failures)
}
