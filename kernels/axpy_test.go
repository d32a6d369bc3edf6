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

func filled(n int, v float32) []float32 {
	s := make([]float32, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func TestAxpy(t *testing.T) {
	cases := []struct {
		name  string
		alpha float32
		x, y  []float32
		want  []float32
	}{
		{"ones into zeros", 1, filled(10, 1), filled(10, 0), filled(10, 1)},
		{"alpha 2", 2, filled(10, 1), filled(10, 2), filled(10, 4)},
		{"negative alpha", -0.5, []float32{2, 4, 6}, []float32{1, 1, 1}, []float32{0, -1, -2}},
		{"empty", 3, nil, nil, nil},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			x := slices.Clone(tt.x)
			if err := Axpy(tt.alpha, x, tt.y); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, tt.y, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("y (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.x, x, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("x wurde veraendert (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAxpyRandom(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 20 {
		n := r.IntN(300) + 1
		alpha := r.Float32()*4 - 2
		x, y := make([]float32, n), make([]float32, n)
		for i := range n {
			x[i], y[i] = r.Float32(), r.Float32()
		}

		want := make([]float32, n)
		for i := range n {
			want[i] = y[i] + alpha*x[i]
		}

		if err := Axpy(alpha, x, y); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want, y, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
			t.Fatalf("n=%d alpha=%v (-want +got):\n%s", n, alpha, diff)
		}
	}
}

func TestAxpyLengthMismatch(t *testing.T) {
	y := filled(9, 2)
	err := Axpy(1, filled(10, 1), y)
	if !errors.Is(err, errtypes.ErrLengthMismatch) {
		t.Fatalf("erwartet ErrLengthMismatch, bekommen %v", err)
	}
	if diff := cmp.Diff(filled(9, 2), y); diff != "" {
		t.Errorf("y wurde trotz Fehler veraendert (-want +got):\n%s", diff)
	}
}

func TestAxpyPropagatesNonFinite(t *testing.T) {
	inf := float32(math.Inf(1))
	y := []float32{1, 1}
	if err := Axpy(0, []float32{inf, 1}, y); err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(float64(y[0])) {
		t.Errorf("0*Inf sollte NaN ergeben, bekommen %v", y[0])
	}
	if y[1] != 1 {
		t.Errorf("y[1]: erwartet 1, bekommen %v", y[1])
	}

	y = []float32{1, 1}
	nan := float32(math.NaN())
	if err := Axpy(nan, []float32{1, 1}, y); err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(float64(y[0])) || !math.IsNaN(float64(y[1])) {
		t.Errorf("NaN alpha sollte propagieren, bekommen %v", y)
	}
}
