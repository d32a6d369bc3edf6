package kernels

import (
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ollama/aggregates/types/errtypes"
)

func matrix(rows, cols int, v float32) Matrix {
	return Matrix{Data: filled(rows*cols, v), Rows: rows, Cols: cols}
}

func cloneMatrix(m Matrix) Matrix {
	return Matrix{Data: slices.Clone(m.Data), Rows: m.Rows, Cols: m.Cols}
}

func literalParams() SkipGramParams {
	return SkipGramParams{
		Syn0:         matrix(10, 10, 0.01),
		Syn1:         matrix(10, 10, 0.02),
		Syn1Neg:      matrix(10, 10, 0.03),
		ExpTable:     filled(10000, 0.5),
		Target:       0,
		Context:      []int{1, 2},
		Codes:        []int{0, 1},
		Dim:          10,
		LearningRate: 0.001,
	}
}

var approx = cmpopts.EquateApprox(0, 1e-6)

func TestSkipGramLiteral(t *testing.T) {
	p := literalParams()
	if err := SkipGram(p); err != nil {
		t.Fatal(err)
	}

	// syn0 bleibt unveraendert: beide Gradienten heben sich in neu1e auf
	if diff := cmp.Diff(filled(10, 0.01), p.Syn0.Row(0), approx); diff != "" {
		t.Errorf("syn0[0] (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(filled(10, 0.020005), p.Syn1.Row(1), approx); diff != "" {
		t.Errorf("syn1[1] (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(filled(10, 0.019995), p.Syn1.Row(2), approx); diff != "" {
		t.Errorf("syn1[2] (-want +got):\n%s", diff)
	}

	// unbenannte Zeilen bleiben exakt
	for _, r := range []int{0, 3, 9} {
		if diff := cmp.Diff(filled(10, 0.02), p.Syn1.Row(r)); diff != "" {
			t.Errorf("syn1[%d] wurde veraendert (-want +got):\n%s", r, diff)
		}
	}
	if diff := cmp.Diff(filled(100, 0.03), p.Syn1Neg.Data); diff != "" {
		t.Errorf("syn1Neg wurde ohne Negative veraendert (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(filled(10000, 0.5), p.ExpTable); diff != "" {
		t.Error("expTable wurde veraendert")
	}
}

func TestSkipGramZeroGradient(t *testing.T) {
	// mit uniformer Tabelle und balancierten Codes ist neu1e exakt null
	p := literalParams()
	p.ExpTable = filled(100, 0.5)
	p.Context = []int{4, 5, 6, 7}
	p.Codes = []int{1, 0, 0, 1}

	if err := SkipGram(p); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(filled(10, 0.01), p.Syn0.Row(0)); diff != "" {
		t.Errorf("syn0[0] sollte exakt unveraendert sein (-want +got):\n%s", diff)
	}
}

func TestSkipGramNegatives(t *testing.T) {
	p := literalParams()
	p.Context, p.Codes = nil, nil
	p.NegStart, p.NegCount = 2, 3

	if err := SkipGram(p); err != nil {
		t.Fatal(err)
	}

	// label 0, sigmoid 0.5: g = -0.5 * lr
	g := float32(-0.5 * 0.001)
	for r := range 10 {
		want := filled(10, 0.03)
		if r >= 2 && r < 5 {
			want = filled(10, 0.03+g*0.01)
		}
		if diff := cmp.Diff(want, p.Syn1Neg.Row(r), approx); diff != "" {
			t.Errorf("syn1Neg[%d] (-want +got):\n%s", r, diff)
		}
	}

	// neu1e = 3 * g * 0.03
	if diff := cmp.Diff(filled(10, 0.01+3*g*0.03), p.Syn0.Row(0), approx); diff != "" {
		t.Errorf("syn0[0] (-want +got):\n%s", diff)
	}
}

// reference ist eine direkte Umsetzung ohne blas
func reference(p SkipGramParams) {
	l1 := p.Syn0.Row(p.Target)
	neu1e := make([]float32, p.Dim)
	update := func(l2 []float32, label float32) {
		var f float32
		for j := range l1 {
			f += l1[j] * l2[j]
		}
		g := (label - Sigmoid(p.ExpTable, f)) * p.LearningRate
		for j := range l2 {
			neu1e[j] += g * l2[j]
		}
		for j := range l2 {
			l2[j] += g * l1[j]
		}
	}

	for i, c := range p.Context {
		update(p.Syn1.Row(c), float32(1-p.Codes[i]))
	}
	for _, r := range p.NegativeRows() {
		update(p.Syn1Neg.Row(r), 0)
	}
	for j := range l1 {
		l1[j] += neu1e[j]
	}
}

func randomMatrix(r *rand.Rand, rows, cols int) Matrix {
	m := Matrix{Data: make([]float32, rows*cols), Rows: rows, Cols: cols}
	for i := range m.Data {
		m.Data[i] = (r.Float32() - 0.5) / float32(cols)
	}
	return m
}

func TestSkipGramMatchesReference(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	table := NewExpTable(DefaultExpTableSize)

	for range 25 {
		dim := r.IntN(64) + 1
		vocab := r.IntN(40) + 5
		n := r.IntN(6)

		p := SkipGramParams{
			Syn0:         randomMatrix(r, vocab, dim),
			Syn1:         randomMatrix(r, vocab, dim),
			Syn1Neg:      randomMatrix(r, vocab, dim),
			ExpTable:     table,
			Target:       r.IntN(vocab),
			Context:      make([]int, n),
			Codes:        make([]int, n),
			Dim:          dim,
			LearningRate: 0.025,
		}
		for i := range n {
			p.Context[i] = r.IntN(vocab)
			p.Codes[i] = r.IntN(2)
		}
		p.NegCount = r.IntN(4)
		p.NegStart = r.IntN(vocab - p.NegCount + 1)

		want := p
		want.Syn0, want.Syn1, want.Syn1Neg = cloneMatrix(p.Syn0), cloneMatrix(p.Syn1), cloneMatrix(p.Syn1Neg)
		reference(want)

		if err := SkipGram(p); err != nil {
			t.Fatal(err)
		}

		for _, c := range []struct {
			name      string
			want, got Matrix
		}{
			{"syn0", want.Syn0, p.Syn0},
			{"syn1", want.Syn1, p.Syn1},
			{"syn1Neg", want.Syn1Neg, p.Syn1Neg},
		} {
			if diff := cmp.Diff(c.want.Data, c.got.Data, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
				t.Fatalf("%s weicht von der Referenz ab (-want +got):\n%s", c.name, diff)
			}
		}
	}
}

func TestSkipGramIdempotent(t *testing.T) {
	base := literalParams()
	base.ExpTable = NewExpTable(DefaultExpTableSize)
	base.NegStart, base.NegCount = 5, 4

	run := func() SkipGramParams {
		p := base
		p.Syn0, p.Syn1, p.Syn1Neg = cloneMatrix(base.Syn0), cloneMatrix(base.Syn1), cloneMatrix(base.Syn1Neg)
		if err := SkipGram(p); err != nil {
			t.Fatal(err)
		}
		return p
	}

	first, second := run(), run()
	for _, pair := range [][2]Matrix{
		{first.Syn0, second.Syn0},
		{first.Syn1, second.Syn1},
		{first.Syn1Neg, second.Syn1Neg},
	} {
		if diff := cmp.Diff(pair[0].Data, pair[1].Data); diff != "" {
			t.Fatalf("zweiter Lauf weicht ab (-first +second):\n%s", diff)
		}
	}
}

func TestSkipGramPreconditions(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*SkipGramParams)
		want   error
	}{
		{"codes laenger als context", func(p *SkipGramParams) { p.Codes = []int{0, 1, 0} }, errtypes.ErrLengthMismatch},
		{"dim passt nicht", func(p *SkipGramParams) { p.Dim = 8 }, errtypes.ErrLengthMismatch},
		{"dim null", func(p *SkipGramParams) { p.Dim = 0 }, errtypes.ErrLengthMismatch},
		{"syn1Neg breite", func(p *SkipGramParams) { p.Syn1Neg = matrix(10, 9, 0.03) }, errtypes.ErrLengthMismatch},
		{"leere tabelle", func(p *SkipGramParams) { p.ExpTable = nil }, errtypes.ErrLengthMismatch},
		{"target negativ", func(p *SkipGramParams) { p.Target = -1 }, errtypes.ErrIndexOutOfRange},
		{"target zu gross", func(p *SkipGramParams) { p.Target = 10 }, errtypes.ErrIndexOutOfRange},
		{"context zu gross", func(p *SkipGramParams) { p.Context = []int{1, 10} }, errtypes.ErrIndexOutOfRange},
		{"code 2", func(p *SkipGramParams) { p.Codes = []int{0, 2} }, errtypes.ErrIndexOutOfRange},
		{"negative window", func(p *SkipGramParams) { p.NegStart, p.NegCount = 8, 3 }, errtypes.ErrIndexOutOfRange},
		{"negative count", func(p *SkipGramParams) { p.NegCount = -1 }, errtypes.ErrIndexOutOfRange},
		{"negative start negativ", func(p *SkipGramParams) { p.NegStart, p.NegCount = -1, 1 }, errtypes.ErrIndexOutOfRange},
		{"negative start maximal", func(p *SkipGramParams) { p.NegStart, p.NegCount = math.MaxInt, 1 }, errtypes.ErrIndexOutOfRange},
		{"negative count maximal", func(p *SkipGramParams) { p.NegStart, p.NegCount = 1, math.MaxInt }, errtypes.ErrIndexOutOfRange},
		{"beide maximal", func(p *SkipGramParams) { p.NegStart, p.NegCount = math.MaxInt, math.MaxInt }, errtypes.ErrIndexOutOfRange},
		{"target maximal", func(p *SkipGramParams) { p.Target = math.MaxInt }, errtypes.ErrIndexOutOfRange},
		{"context minimal", func(p *SkipGramParams) { p.Context = []int{1, math.MinInt} }, errtypes.ErrIndexOutOfRange},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			p := literalParams()
			tt.modify(&p)

			syn0, syn1, syn1Neg := slices.Clone(p.Syn0.Data), slices.Clone(p.Syn1.Data), slices.Clone(p.Syn1Neg.Data)

			err := SkipGram(p)
			if !errors.Is(err, tt.want) {
				t.Fatalf("erwartet %v, bekommen %v", tt.want, err)
			}

			// kein Schreibzugriff vor der Validierung
			if !slices.Equal(syn0, p.Syn0.Data) || !slices.Equal(syn1, p.Syn1.Data) || !slices.Equal(syn1Neg, p.Syn1Neg.Data) {
				t.Error("Matrizen wurden trotz Fehler veraendert")
			}
		})
	}
}

func TestExpTable(t *testing.T) {
	table := NewExpTable(DefaultExpTableSize)

	if table[0] >= table[len(table)-1] {
		t.Fatal("Tabelle sollte monoton steigen")
	}
	for i := 1; i < len(table); i++ {
		if table[i] < table[i-1] {
			t.Fatalf("Tabelle faellt bei %d", i)
		}
	}

	cases := []struct {
		name string
		f    float32
		want float32
		tol  float64
	}{
		{"null", 0, 0.5, 0.01},
		{"positiv", 2, float32(1 / (1 + math.Exp(-2))), 0.01},
		{"negativ", -2, float32(1 / (1 + math.Exp(2))), 0.01},
		{"oberhalb", 100, table[len(table)-1], 0},
		{"unterhalb", -100, table[0], 0},
		{"+Inf", float32(math.Inf(1)), table[len(table)-1], 0},
		{"-Inf", float32(math.Inf(-1)), table[0], 0},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got := Sigmoid(table, tt.f)
			if math.Abs(float64(got-tt.want)) > tt.tol {
				t.Errorf("Sigmoid(%v): erwartet %v, bekommen %v", tt.f, tt.want, got)
			}
		})
	}

	if got := Sigmoid(table, float32(math.NaN())); !math.IsNaN(float64(got)) {
		t.Errorf("Sigmoid(NaN): erwartet NaN, bekommen %v", got)
	}
}
