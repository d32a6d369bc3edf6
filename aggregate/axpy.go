// axpy.go - Axpy-Aggregat: y += alpha * x
package aggregate

import (
	"fmt"

	"github.com/ollama/aggregates/ml"
	"github.com/ollama/aggregates/types/errtypes"
)

// Axpy accumulates alpha*x into y. Operands: arrays [x, y], scalars [alpha].
type Axpy struct {
	x, y  ml.Array
	alpha float64
}

// NewAxpy baut ein Axpy-Aggregat; x und y muessen gleich lang sein
func NewAxpy(x, y ml.Array, alpha float64) (*Axpy, error) {
	arity, _ := Lookup(OpAxpy)
	if err := arity.check([]ml.Array{x, y}, []float64{alpha}, nil, nil); err != nil {
		return nil, err
	}

	a := &Axpy{x: x, y: y, alpha: alpha}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *Axpy) Opcode() Opcode { return OpAxpy }

func (a *Axpy) Arrays() []ml.Array { return []ml.Array{a.x, a.y} }

func (a *Axpy) Scalars() []float64 { return []float64{a.alpha} }

func (a *Axpy) Indices() []int { return nil }

func (a *Axpy) Windows() [][]int { return nil }

// X, Y und Alpha sind die benannten Operanden
func (a *Axpy) X() ml.Array { return a.x }

func (a *Axpy) Y() ml.Array { return a.y }

func (a *Axpy) Alpha() float64 { return a.alpha }

func (a *Axpy) Reads() []ml.Region {
	return []ml.Region{a.x.Region(), a.y.Region()}
}

func (a *Axpy) Writes() []ml.Region {
	return []ml.Region{a.y.Region()}
}

func (a *Axpy) Validate() error {
	if a.x.Len() != a.y.Len() {
		return fmt.Errorf("axpy: len(x)=%d len(y)=%d: %w", a.x.Len(), a.y.Len(), errtypes.ErrLengthMismatch)
	}
	return nil
}

func (a *Axpy) sealed() {}
