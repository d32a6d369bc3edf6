// batch.go - Batch-Container fuer heterogene Aggregate
//
// Enthaelt:
// - Batch: geordnete, nur anhaengbare Sammlung von Aggregaten
// - WithLimit: Batch-Option fuer die maximale Groesse
// - Consume: einmalige Uebergabe an einen Executor
//
// Die Einfuegereihenfolge ist die Programmreihenfolge. Ein Batch wird genau
// einmal ausgefuehrt; danach liefern Enqueue und Consume ErrBatchConsumed.
// Enqueue ist nicht fuer gleichzeitige Aufrufe ausgelegt.
package aggregate

import (
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/ollama/aggregates/envconfig"
	"github.com/ollama/aggregates/types/errtypes"
)

// Batch is an ordered, append-only group of aggregates for one dispatch.
type Batch struct {
	id         uuid.UUID
	limit      int
	aggregates []Aggregate
	consumed   atomic.Bool
}

// BatchOption konfiguriert einen neuen Batch
type BatchOption func(*Batch)

// WithLimit caps the number of aggregates; 0 removes the cap.
func WithLimit(n int) BatchOption {
	return func(b *Batch) {
		b.limit = n
	}
}

// NewBatch creates an empty batch limited to AGG_BATCH_LIMIT aggregates
// unless overridden with WithLimit.
func NewBatch(opts ...BatchOption) *Batch {
	b := &Batch{
		id:    uuid.New(),
		limit: int(envconfig.BatchLimit()),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ID gibt die Batch-ID fuer Logs und Fehler zurueck
func (b *Batch) ID() uuid.UUID { return b.id }

// Limit gibt die maximale Groesse zurueck (0 = unbegrenzt)
func (b *Batch) Limit() int { return b.limit }

func (b *Batch) Len() int { return len(b.aggregates) }

// Aggregates returns the queued aggregates in insertion order.
func (b *Batch) Aggregates() []Aggregate {
	return slices.Clone(b.aggregates)
}

// Enqueue appends a to the batch.
func (b *Batch) Enqueue(a Aggregate) error {
	if b.consumed.Load() {
		return fmt.Errorf("batch %s: %w", b.id, errtypes.ErrBatchConsumed)
	}

	if a == nil {
		return fmt.Errorf("batch %s: nil aggregate: %w", b.id, errtypes.ErrArgumentShapeMismatch)
	}

	if b.limit > 0 && len(b.aggregates) >= b.limit {
		return fmt.Errorf("batch %s: %d aggregates: %w", b.id, b.limit, errtypes.ErrBatchFull)
	}

	b.aggregates = append(b.aggregates, a)
	return nil
}

// Consume marks the batch as dispatched and returns its aggregates. Only
// the first call succeeds.
func (b *Batch) Consume() ([]Aggregate, error) {
	if !b.consumed.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("batch %s: %w", b.id, errtypes.ErrBatchConsumed)
	}

	return b.aggregates, nil
}

// Consumed meldet ob der Batch bereits ausgefuehrt wurde
func (b *Batch) Consumed() bool {
	return b.consumed.Load()
}
