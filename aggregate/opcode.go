// Package aggregate - Opcodes und Aritaets-Tabelle
//
// Dieses Modul enthaelt:
// - Opcode: Kennung des Kernels, der die Operanden interpretiert
// - Arity: erwartete Anzahl und Form der Operanden je Opcode
// - Lookup/Opcodes: Zugriff auf die geordnete Opcode-Tabelle
package aggregate

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/ollama/aggregates/ml"
	"github.com/ollama/aggregates/types/errtypes"
)

// Opcode identifies the kernel that interprets an aggregate's operands.
type Opcode uint8

const (
	OpAxpy     Opcode = 1
	OpSkipGram Opcode = 2
)

func (op Opcode) String() string {
	if a, ok := opcodes.Get(op); ok {
		return a.Name
	}
	return fmt.Sprintf("opcode(%d)", uint8(op))
}

// Arity describes the operand lists an opcode expects.
type Arity struct {
	Name string

	// Arrays holds the required rank of each array operand; 0 accepts any rank.
	Arrays []int

	// ArrayNames labels each array operand for error messages and listings.
	ArrayNames []string

	Scalars int
	Indices int
	Windows int
}

var opcodes = orderedmap.New[Opcode, Arity]()

func init() {
	register(OpAxpy, Arity{
		Name:       "axpy",
		Arrays:     []int{0, 0},
		ArrayNames: []string{"x", "y"},
		Scalars:    1,
	})
	register(OpSkipGram, Arity{
		Name:       "skipgram",
		Arrays:     []int{2, 2, 2, 1},
		ArrayNames: []string{"syn0", "syn1", "syn1Neg", "expTable"},
		Scalars:    1,
		Indices:    4,
		Windows:    2,
	})
}

func register(op Opcode, a Arity) {
	if _, ok := opcodes.Get(op); ok {
		panic("aggregate: opcode already registered")
	}
	opcodes.Set(op, a)
}

// Lookup gibt die Aritaet eines Opcodes zurueck
func Lookup(op Opcode) (Arity, bool) {
	return opcodes.Get(op)
}

// Opcodes gibt alle Opcodes in Registrierungsreihenfolge zurueck
func Opcodes() []Opcode {
	ops := make([]Opcode, 0, opcodes.Len())
	for pair := opcodes.Oldest(); pair != nil; pair = pair.Next() {
		ops = append(ops, pair.Key)
	}
	return ops
}

// check vergleicht die Operandenlisten mit der Aritaet
func (a Arity) check(arrays []ml.Array, scalars []float64, indices []int, windows [][]int) error {
	if len(arrays) != len(a.Arrays) {
		return fmt.Errorf("%s: %d arrays, want %d: %w", a.Name, len(arrays), len(a.Arrays), errtypes.ErrArgumentShapeMismatch)
	}

	for i, arr := range arrays {
		if arr == nil {
			return fmt.Errorf("%s: %s is nil: %w", a.Name, a.ArrayNames[i], errtypes.ErrArgumentShapeMismatch)
		}
		if arr.DType() != ml.DTypeF32 {
			return fmt.Errorf("%s: %s has dtype %s, want %s: %w", a.Name, a.ArrayNames[i], arr.DType(), ml.DTypeF32, errtypes.ErrArgumentShapeMismatch)
		}
		if rank := len(arr.Shape()); a.Arrays[i] != 0 && rank != a.Arrays[i] {
			return fmt.Errorf("%s: %s has rank %d, want %d: %w", a.Name, a.ArrayNames[i], rank, a.Arrays[i], errtypes.ErrArgumentShapeMismatch)
		}
	}

	if len(scalars) != a.Scalars {
		return fmt.Errorf("%s: %d scalars, want %d: %w", a.Name, len(scalars), a.Scalars, errtypes.ErrArgumentShapeMismatch)
	}
	if len(indices) != a.Indices {
		return fmt.Errorf("%s: %d indices, want %d: %w", a.Name, len(indices), a.Indices, errtypes.ErrArgumentShapeMismatch)
	}
	if len(windows) != a.Windows {
		return fmt.Errorf("%s: %d index windows, want %d: %w", a.Name, len(windows), a.Windows, errtypes.ErrArgumentShapeMismatch)
	}

	return nil
}
