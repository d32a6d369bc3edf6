// errors.go - Fehlertypen des Executors
//
// Enthaelt:
// - ExecError: Fehler eines einzelnen Aggregats (mit Batch-ID und Position)
// - BatchError: alle fehlgeschlagenen Aggregate eines Batches
package executor

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ollama/aggregates/aggregate"
)

// ExecError reports the failure of one aggregate. Err is one of the
// errtypes sentinels or an executor-level error.
type ExecError struct {
	// BatchID is uuid.Nil for aggregates run with Exec.
	BatchID uuid.UUID

	// Index is the position in the batch, -1 outside a batch.
	Index int

	Op  aggregate.Opcode
	Err error
}

func (e *ExecError) Error() string {
	if e.BatchID == uuid.Nil {
		return fmt.Sprintf("exec %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("batch %s: aggregate %d (%s): %v", e.BatchID, e.Index, e.Op, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// BatchError lists every failed aggregate of a batch in batch order.
type BatchError struct {
	BatchID  uuid.UUID
	Failures []*ExecError
}

func (e *BatchError) Error() string {
	if len(e.Failures) == 1 {
		return e.Failures[0].Error()
	}
	return fmt.Sprintf("batch %s: %d aggregates failed, first: %v", e.BatchID, len(e.Failures), e.Failures[0].Err)
}

// Unwrap exposes every failure to errors.Is and errors.As.
func (e *BatchError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// Indices gibt die Positionen der fehlgeschlagenen Aggregate zurueck
func (e *BatchError) Indices() []int {
	idx := make([]int, len(e.Failures))
	for i, f := range e.Failures {
		idx[i] = f.Index
	}
	return idx
}

// batchError sammelt die nicht-nil Fehler in Batch-Reihenfolge
func batchError(id uuid.UUID, failures []*ExecError) error {
	var out []*ExecError
	for _, f := range failures {
		if f != nil {
			out = append(out, f)
		}
	}

	if len(out) == 0 {
		return nil
	}
	return &BatchError{BatchID: id, Failures: out}
}
