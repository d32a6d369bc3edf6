// exptable.go - Sigmoid-Lookup-Tabelle fuer Skip-Gram
//
// Enthaelt:
// - MaxExp: symmetrischer Definitionsbereich [-MaxExp, MaxExp] der Tabelle
// - NewExpTable: baut die word2vec-Tabelle sigmoid(x) fuer x im Bereich
// - Sigmoid: Lookup mit Clamping auf die Randeintraege
package kernels

import "math"

// MaxExp bounds the dot products covered by an exp table.
const MaxExp = 6

// DefaultExpTableSize is the table size used when none is configured.
const DefaultExpTableSize = 1000

// NewExpTable returns size precomputed sigmoid values spanning
// [-MaxExp, MaxExp). Entry i holds sigmoid((2i/size - 1) * MaxExp).
func NewExpTable(size int) []float32 {
	table := make([]float32, size)
	for i := range table {
		e := math.Exp((float64(i)/float64(size)*2 - 1) * MaxExp)
		table[i] = float32(e / (e + 1))
	}
	return table
}

// Sigmoid looks f up in table. Values outside [-MaxExp, MaxExp) are clamped
// to the boundary entries; NaN yields NaN. table must not be empty.
func Sigmoid(table []float32, f float32) float32 {
	if f != f {
		return f
	}

	n := len(table)
	x := (float64(f) + MaxExp) * (float64(n) / MaxExp / 2)
	switch {
	case x < 0:
		return table[0]
	case x >= float64(n):
		return table[n-1]
	}

	return table[int(x)]
}
