// Package executor - Ausfuehrung von Aggregaten und Batches
//
// Dieses Modul enthaelt:
// - Executioner: Interface fuer Exec (ein Aggregat) und ExecBatch (ein Batch)
// - Options: Worker- und Batch-Limits, Defaults aus envconfig
// - Register/New/Names: Registry der Executor-Implementierungen
// - ExecAll: teilt lange Aggregat-Listen in Batches auf
//
// Jeder Executor garantiert sequentielle Aequivalenz: der Endzustand aller
// Arrays nach ExecBatch ist identisch mit der Ausfuehrung der Aggregate
// einzeln in Einfuegereihenfolge.
package executor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/agnivade/levenshtein"

	"github.com/ollama/aggregates/aggregate"
	"github.com/ollama/aggregates/envconfig"
	"github.com/ollama/aggregates/types/errtypes"
)

// Executioner runs aggregates.
type Executioner interface {
	// Name returns the name the executor is registered under.
	Name() string

	// Exec runs a to completion. Failures are returned as *ExecError.
	Exec(ctx context.Context, a aggregate.Aggregate) error

	// ExecBatch consumes b and runs every aggregate in it. The final state
	// of every array equals running the aggregates one at a time in
	// insertion order. Failed aggregates mutate nothing and do not stop
	// independent ones; they are reported together as *BatchError.
	ExecBatch(ctx context.Context, b *aggregate.Batch) error
}

// Options configure a new executor.
type Options struct {
	// Workers is the number of aggregates run concurrently within a batch.
	Workers int

	// MaxBatches is the number of batches run concurrently by one executor.
	MaxBatches int
}

// DefaultOptions liest die Optionen aus der Umgebung
func DefaultOptions() Options {
	return Options{
		Workers:    envconfig.NumParallel(),
		MaxBatches: int(envconfig.MaxBatches()),
	}
}

func (o Options) normalize() Options {
	return Options{
		Workers:    max(o.Workers, 1),
		MaxBatches: max(o.MaxBatches, 1),
	}
}

var executors = make(map[string]func(Options) (Executioner, error))

// Register registers an executor factory under name.
func Register(name string, f func(Options) (Executioner, error)) {
	if _, ok := executors[name]; ok {
		panic("executor: executor already registered")
	}

	executors[name] = f
}

// New creates the executor registered under name.
func New(name string, opts Options) (Executioner, error) {
	f, ok := executors[name]
	if !ok {
		if s := suggest(name); s != "" {
			return nil, fmt.Errorf("%w %q, did you mean %q?", errtypes.ErrUnknownExecutor, name, s)
		}
		return nil, fmt.Errorf("%w %q", errtypes.ErrUnknownExecutor, name)
	}

	return f(opts.normalize())
}

// Default creates the executor named by AGG_EXECUTOR.
func Default() (Executioner, error) {
	return New(envconfig.Executor(), DefaultOptions())
}

// Names gibt alle registrierten Executor-Namen sortiert zurueck
func Names() []string {
	names := make([]string, 0, len(executors))
	for name := range executors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// suggest returns the registered name closest to name, or "" if none is
// close enough to be a plausible typo.
func suggest(name string) string {
	best, bestDist := "", math.MaxInt
	for _, n := range Names() {
		if d := levenshtein.ComputeDistance(name, n); d < bestDist {
			best, bestDist = n, d
		}
	}

	if bestDist > max(len(name)/2, 2) {
		return ""
	}
	return best
}

// ExecAll dispatches aggs to e in batches of at most limit aggregates,
// one batch after the other. limit <= 0 uses AGG_BATCH_LIMIT. Failures of
// all batches are joined; cancellation stops at the next batch boundary.
func ExecAll(ctx context.Context, e Executioner, aggs []aggregate.Aggregate, limit int) error {
	if limit <= 0 {
		limit = int(envconfig.BatchLimit())
	}
	if limit <= 0 {
		limit = max(len(aggs), 1)
	}

	var errs []error
	for chunk := range slices.Chunk(aggs, limit) {
		b := aggregate.NewBatch(aggregate.WithLimit(limit))
		for _, a := range chunk {
			if err := b.Enqueue(a); err != nil {
				return err
			}
		}

		if err := e.ExecBatch(ctx, b); err != nil {
			if ctx.Err() != nil {
				return err
			}
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
