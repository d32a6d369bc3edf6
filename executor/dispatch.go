// dispatch.go - Zuordnung Aggregat -> Kernel
package executor

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ollama/aggregates/aggregate"
	"github.com/ollama/aggregates/kernels"
	"github.com/ollama/aggregates/logutil"
	"github.com/ollama/aggregates/types/errtypes"
)

// run re-validates a and invokes its kernel. Validation happens
// immediately before the kernel so a failing aggregate never writes.
func run(a aggregate.Aggregate) error {
	if err := a.Validate(); err != nil {
		return err
	}

	switch a := a.(type) {
	case *aggregate.Axpy:
		return kernels.Axpy(float32(a.Alpha()), a.X().Floats(), a.Y().Floats())
	case *aggregate.SkipGram:
		return kernels.SkipGram(a.Params())
	default:
		return fmt.Errorf("%s: no kernel: %w", a.Opcode(), errtypes.ErrArgumentShapeMismatch)
	}
}

// execOne fuehrt ein Aggregat aus und verpackt den Fehler als ExecError
func execOne(id uuid.UUID, index int, a aggregate.Aggregate) *ExecError {
	if a == nil {
		return &ExecError{BatchID: id, Index: index, Err: fmt.Errorf("nil aggregate: %w", errtypes.ErrArgumentShapeMismatch)}
	}

	logutil.Trace("exec aggregate", "batch", id, "index", index, "op", a.Opcode())
	if err := run(a); err != nil {
		return &ExecError{BatchID: id, Index: index, Op: a.Opcode(), Err: err}
	}
	return nil
}

// exec ist die gemeinsame Exec-Implementierung aller Executoren
func exec(ctx context.Context, a aggregate.Aggregate) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if e := execOne(uuid.Nil, -1, a); e != nil {
		return e
	}
	return nil
}
