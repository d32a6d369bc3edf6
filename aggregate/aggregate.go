// aggregate.go - Aggregate-Interface und generischer Konstruktor
//
// Enthaelt:
// - Aggregate: geschlossener Summentyp (*Axpy, *SkipGram)
// - New: baut ein Aggregate aus Opcode und Operandenlisten
//
// Aggregate sind nach der Konstruktion unveraenderlich. Sie leihen sich
// ihre Arrays nur; Lebensdauer und Speicher gehoeren dem Aufrufer.
package aggregate

import (
	"fmt"

	"github.com/ollama/aggregates/ml"
	"github.com/ollama/aggregates/types/errtypes"
)

// Aggregate is one self-describing unit of numeric work.
//
// The set of implementations is closed; executors dispatch with a type
// switch over *Axpy and *SkipGram.
type Aggregate interface {
	Opcode() Opcode

	// Arrays, Scalars, Indices and Windows are the operand lists in the
	// positional layout declared by the opcode's Arity.
	Arrays() []ml.Array
	Scalars() []float64
	Indices() []int
	Windows() [][]int

	// Reads and Writes enumerate every region the kernel touches, at row
	// granularity for matrices.
	Reads() []ml.Region
	Writes() []ml.Region

	// Validate re-checks every precondition without touching any array.
	Validate() error

	sealed()
}

// New builds an aggregate for op from raw operand lists. It fails with
// ErrArgumentShapeMismatch when the lists do not match op's arity, and with
// the kernel's precondition errors otherwise.
func New(op Opcode, arrays []ml.Array, scalars []float64, indices []int, windows [][]int) (Aggregate, error) {
	arity, ok := Lookup(op)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, errtypes.ErrArgumentShapeMismatch)
	}

	if err := arity.check(arrays, scalars, indices, windows); err != nil {
		return nil, err
	}

	switch op {
	case OpAxpy:
		return NewAxpy(arrays[0], arrays[1], scalars[0])
	case OpSkipGram:
		return NewSkipGram(SkipGramArgs{
			Syn0:         arrays[0],
			Syn1:         arrays[1],
			Syn1Neg:      arrays[2],
			ExpTable:     arrays[3],
			Target:       indices[0],
			NegStart:     indices[1],
			NegCount:     indices[2],
			Dim:          indices[3],
			Context:      windows[0],
			Codes:        windows[1],
			LearningRate: scalars[0],
		})
	default:
		return nil, fmt.Errorf("%s: no constructor: %w", op, errtypes.ErrArgumentShapeMismatch)
	}
}

// rowRegion gibt die Region von Zeile row einer row-major Matrix zurueck
func rowRegion(m ml.Array, row int) ml.Region {
	cols := m.Shape()[1]
	return m.Region().Slice(row*cols, (row+1)*cols)
}
