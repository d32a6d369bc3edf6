// skipgram.go - Skip-Gram-Update mit Negative Sampling
//
// Enthaelt:
// - SkipGramParams: Operanden eines Update-Schritts
// - SkipGram: fuehrt den Schritt aus (Codes-Pfad, dann Negative, dann syn0)
// - Validate: prueft alle Vorbedingungen vor der ersten Mutation
package kernels

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas32"

	"github.com/ollama/aggregates/types/errtypes"
)

// SkipGramParams are the operands of one skip-gram negative-sampling step.
type SkipGramParams struct {
	Syn0, Syn1, Syn1Neg Matrix
	ExpTable            []float32

	// Target is the syn0 row being trained.
	Target int

	// Context rows of Syn1 are paired one to one with Codes (0 or 1).
	Context []int
	Codes   []int

	// NegStart and NegCount select the rows [NegStart, NegStart+NegCount)
	// of Syn1Neg contrasted with label 0.
	NegStart, NegCount int

	Dim          int
	LearningRate float32
}

// NegativeRows returns the Syn1Neg rows visited by the step, in order.
func (p *SkipGramParams) NegativeRows() []int {
	if p.NegCount <= 0 {
		return nil
	}

	rows := make([]int, p.NegCount)
	for i := range rows {
		rows[i] = p.NegStart + i
	}
	return rows
}

// Validate checks every precondition of the step without writing anything.
func (p *SkipGramParams) Validate() error {
	if p.Dim <= 0 {
		return fmt.Errorf("skipgram: dim %d: %w", p.Dim, errtypes.ErrLengthMismatch)
	}

	if len(p.ExpTable) == 0 {
		return fmt.Errorf("skipgram: empty exp table: %w", errtypes.ErrLengthMismatch)
	}

	for _, m := range []struct {
		name string
		m    Matrix
	}{
		{"syn0", p.Syn0},
		{"syn1", p.Syn1},
		{"syn1Neg", p.Syn1Neg},
	} {
		if err := m.m.validate(m.name); err != nil {
			return fmt.Errorf("skipgram: %w", err)
		}
		if m.m.Cols != p.Dim {
			return fmt.Errorf("skipgram: %s has %d columns, dim is %d: %w", m.name, m.m.Cols, p.Dim, errtypes.ErrLengthMismatch)
		}
	}

	if len(p.Context) != len(p.Codes) {
		return fmt.Errorf("skipgram: %d context indices, %d codes: %w", len(p.Context), len(p.Codes), errtypes.ErrLengthMismatch)
	}

	if err := p.Syn0.checkRow("syn0", p.Target); err != nil {
		return fmt.Errorf("skipgram: %w", err)
	}

	for i, c := range p.Context {
		if err := p.Syn1.checkRow("syn1", c); err != nil {
			return fmt.Errorf("skipgram: context %d: %w", i, err)
		}
		if code := p.Codes[i]; code != 0 && code != 1 {
			return fmt.Errorf("skipgram: code %d at %d not in {0, 1}: %w", code, i, errtypes.ErrIndexOutOfRange)
		}
	}

	if p.NegCount < 0 {
		return fmt.Errorf("skipgram: negative sample count %d: %w", p.NegCount, errtypes.ErrIndexOutOfRange)
	}

	if p.NegCount > 0 {
		// ohne Summe vergleichen, NegStart+NegCount kann ueberlaufen
		if p.NegStart < 0 || p.NegStart > p.Syn1Neg.Rows || p.NegCount > p.Syn1Neg.Rows-p.NegStart {
			return fmt.Errorf("skipgram: negative window of %d rows at %d not in [0, %d): %w",
				p.NegCount, p.NegStart, p.Syn1Neg.Rows, errtypes.ErrIndexOutOfRange)
		}
	}

	return nil
}

// SkipGram runs one training step. All preconditions are checked before
// any row is written. The gradient for Syn0[Target] is accumulated in
// neu1e and applied once at the end, so every Syn1 and Syn1Neg update
// reads the pre-step Syn0 row.
func SkipGram(p SkipGramParams) error {
	if err := p.Validate(); err != nil {
		return err
	}

	buf := getScratch(p.Dim)
	defer putScratch(buf)
	neu1e := vec(*buf)

	l1 := vec(p.Syn0.Row(p.Target))
	for i, c := range p.Context {
		step(l1, vec(p.Syn1.Row(c)), neu1e, p.ExpTable, float32(1-p.Codes[i]), p.LearningRate)
	}

	for _, r := range p.NegativeRows() {
		step(l1, vec(p.Syn1Neg.Row(r)), neu1e, p.ExpTable, 0, p.LearningRate)
	}

	blas32.Axpy(1, neu1e, l1)
	return nil
}

// step vergleicht l1 mit einer Ausgabezeile gegen label und aktualisiert
// neu1e sowie die Ausgabezeile
func step(l1, l2, neu1e blas32.Vector, table []float32, label, lr float32) {
	f := blas32.Dot(l1, l2)
	g := (label - Sigmoid(table, f)) * lr

	// neu1e vor l2 aktualisieren: der Gradient nutzt die alte Ausgabezeile
	axpy(g, l2, neu1e)
	axpy(g, l1, l2)
}

func axpy(alpha float32, x, y blas32.Vector) {
	if alpha == 0 {
		for i, v := range x.Data[:x.N] {
			y.Data[i] += alpha * v
		}
		return
	}
	blas32.Axpy(alpha, x, y)
}
