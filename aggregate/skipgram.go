// skipgram.go - SkipGram-Aggregat (word2vec Negative Sampling)
//
// Enthaelt:
// - SkipGramArgs: benannte Operanden fuer NewSkipGram
// - SkipGram: Aggregat mit Lese-/Schreibmengen auf Zeilenebene
// - Params: Uebersetzung in kernels.SkipGramParams
//
// Operanden-Layout:
//
//	arrays  [syn0, syn1, syn1Neg, expTable]
//	scalars [learningRate]
//	indices [target, negStart, negCount, dim]
//	windows [context, codes]
package aggregate

import (
	"slices"

	"github.com/ollama/aggregates/kernels"
	"github.com/ollama/aggregates/ml"
)

// SkipGramArgs are the named operands of a skip-gram step.
type SkipGramArgs struct {
	Syn0, Syn1, Syn1Neg, ExpTable ml.Array

	Target             int
	Context, Codes     []int
	NegStart, NegCount int
	Dim                int
	LearningRate       float64
}

// SkipGram is one skip-gram negative-sampling update of syn0[Target].
type SkipGram struct {
	args SkipGramArgs
}

// NewSkipGram validates args and builds the aggregate. Context and Codes
// are copied.
func NewSkipGram(args SkipGramArgs) (*SkipGram, error) {
	arity, _ := Lookup(OpSkipGram)
	err := arity.check(
		[]ml.Array{args.Syn0, args.Syn1, args.Syn1Neg, args.ExpTable},
		[]float64{args.LearningRate},
		[]int{args.Target, args.NegStart, args.NegCount, args.Dim},
		[][]int{args.Context, args.Codes},
	)
	if err != nil {
		return nil, err
	}

	args.Context = slices.Clone(args.Context)
	args.Codes = slices.Clone(args.Codes)

	s := &SkipGram{args: args}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *SkipGram) Opcode() Opcode { return OpSkipGram }

func (s *SkipGram) Arrays() []ml.Array {
	return []ml.Array{s.args.Syn0, s.args.Syn1, s.args.Syn1Neg, s.args.ExpTable}
}

func (s *SkipGram) Scalars() []float64 { return []float64{s.args.LearningRate} }

func (s *SkipGram) Indices() []int {
	return []int{s.args.Target, s.args.NegStart, s.args.NegCount, s.args.Dim}
}

func (s *SkipGram) Windows() [][]int {
	return [][]int{slices.Clone(s.args.Context), slices.Clone(s.args.Codes)}
}

// Target gibt die trainierte syn0-Zeile zurueck
func (s *SkipGram) Target() int { return s.args.Target }

// Context gibt die syn1-Zeilen des Code-Pfads zurueck
func (s *SkipGram) Context() []int { return slices.Clone(s.args.Context) }

// Params returns the kernel operands, borrowing the aggregate's arrays.
func (s *SkipGram) Params() kernels.SkipGramParams {
	return kernels.SkipGramParams{
		Syn0:         matrix(s.args.Syn0),
		Syn1:         matrix(s.args.Syn1),
		Syn1Neg:      matrix(s.args.Syn1Neg),
		ExpTable:     s.args.ExpTable.Floats(),
		Target:       s.args.Target,
		Context:      s.args.Context,
		Codes:        s.args.Codes,
		NegStart:     s.args.NegStart,
		NegCount:     s.args.NegCount,
		Dim:          s.args.Dim,
		LearningRate: float32(s.args.LearningRate),
	}
}

func (s *SkipGram) rows() (syn0 []ml.Region, syn1 []ml.Region, syn1Neg []ml.Region) {
	p := s.Params()

	syn0 = []ml.Region{rowRegion(s.args.Syn0, p.Target)}
	for _, c := range p.Context {
		syn1 = append(syn1, rowRegion(s.args.Syn1, c))
	}
	for _, r := range p.NegativeRows() {
		syn1Neg = append(syn1Neg, rowRegion(s.args.Syn1Neg, r))
	}
	return syn0, syn1, syn1Neg
}

func (s *SkipGram) Reads() []ml.Region {
	syn0, syn1, syn1Neg := s.rows()
	return slices.Concat(syn0, syn1, syn1Neg, []ml.Region{s.args.ExpTable.Region()})
}

func (s *SkipGram) Writes() []ml.Region {
	syn0, syn1, syn1Neg := s.rows()
	return slices.Concat(syn0, syn1, syn1Neg)
}

func (s *SkipGram) Validate() error {
	p := s.Params()
	return p.Validate()
}

func (s *SkipGram) sealed() {}

func matrix(a ml.Array) kernels.Matrix {
	shape := a.Shape()
	return kernels.Matrix{Data: a.Floats(), Rows: shape[0], Cols: shape[1]}
}
