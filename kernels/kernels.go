// Package kernels - numerische Kernels fuer Aggregate
//
// Dieses Modul enthaelt die gemeinsamen Typen:
// - Matrix: zeilenweise float32-Matrix ohne eigenen Speicher
// - vec: Adapter auf blas32.Vector
// - Scratch-Pool fuer Akkumulatoren
//
// Kernels sind reine Funktionen: sie pruefen alle Vorbedingungen bevor sie
// irgendetwas schreiben, mutieren nur die benannten Ausgaben und tragen
// keinen Zustand zwischen Aufrufen.
package kernels

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/blas/blas32"

	"github.com/ollama/aggregates/types/errtypes"
)

// Matrix is a borrowed row-major float32 matrix.
type Matrix struct {
	Data       []float32
	Rows, Cols int
}

// Row returns row i of m, sharing storage.
func (m Matrix) Row(i int) []float32 {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}

func (m Matrix) validate(name string) error {
	if m.Rows < 0 || m.Cols < 0 || len(m.Data) != m.Rows*m.Cols {
		return fmt.Errorf("%s: %d elements for %dx%d matrix: %w", name, len(m.Data), m.Rows, m.Cols, errtypes.ErrLengthMismatch)
	}
	return nil
}

func (m Matrix) checkRow(name string, i int) error {
	if i < 0 || i >= m.Rows {
		return fmt.Errorf("%s row %d not in [0, %d): %w", name, i, m.Rows, errtypes.ErrIndexOutOfRange)
	}
	return nil
}

func vec(s []float32) blas32.Vector {
	return blas32.Vector{N: len(s), Data: s, Inc: 1}
}

// scratch haelt wiederverwendbare Akkumulator-Puffer
var scratch = sync.Pool{
	New: func() any {
		s := make([]float32, 0, 128)
		return &s
	},
}

// getScratch liefert einen genullten Puffer der Laenge n
func getScratch(n int) *[]float32 {
	p := scratch.Get().(*[]float32)
	if cap(*p) < n {
		*p = make([]float32, n)
	} else {
		*p = (*p)[:n]
		clear(*p)
	}
	return p
}

func putScratch(p *[]float32) {
	scratch.Put(p)
}
