// sequential.go - Executor ohne Parallelitaet
package executor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ollama/aggregates/aggregate"
)

func init() {
	Register("sequential", func(Options) (Executioner, error) {
		return &Sequential{}, nil
	})
}

// Sequential runs the aggregates of a batch one after another in
// insertion order. It is the reference for every other executor.
type Sequential struct{}

func (*Sequential) Name() string { return "sequential" }

func (*Sequential) Exec(ctx context.Context, a aggregate.Aggregate) error {
	return exec(ctx, a)
}

func (*Sequential) ExecBatch(ctx context.Context, b *aggregate.Batch) error {
	aggs, err := b.Consume()
	if err != nil {
		return err
	}

	slog.Debug("exec batch", "executor", "sequential", "batch", b.ID(), "aggregates", len(aggs))

	failures := make([]*ExecError, len(aggs))
	for i, a := range aggs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("batch %s: stopped at aggregate %d: %w", b.ID(), i, err)
		}
		failures[i] = execOne(b.ID(), i, a)
	}

	return batchError(b.ID(), failures)
}
