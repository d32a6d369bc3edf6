// array.go - Array-Interface und Dense-Speicher fuer Aggregate-Operanden
//
// Enthaelt:
// - Array: adressierbare Sicht auf einen float32-Puffer fester Laenge
// - Region: Speicher-Fussabdruck einer Sicht (fuer Konflikterkennung)
// - Dense: zeilenweise (row-major) Speicherung mit Zeilen-Sichten
//
// Sichten teilen sich den Speicher; Schreiben ueber eine Sicht ist fuer
// alle ueberlappenden Sichten sichtbar. Es gibt kein Copy-on-Write.
package ml

import (
	"fmt"
	"slices"
	"unsafe"
)

// Array is an addressable, fixed-length view onto float32 storage.
type Array interface {
	DType() DType

	// Shape returns the dimensions of the view; a vector has one
	// dimension, a matrix two (rows, cols).
	Shape() []int
	Len() int

	// Floats returns the live backing slice of the view. Writes through
	// it mutate the underlying storage.
	Floats() []float32

	// Region reports which memory the view covers.
	Region() Region
}

// Region ist ein halboffenes Adress-Intervall [Start, End) in Bytes.
//
// Regionen beschreiben den Speicher selbst, nicht das Array: zwei Arrays, die
// denselben Puffer unabhaengig voneinander umhuellen (z.B. zwei FromFloats
// auf demselben Slice), ueberlappen.
type Region struct {
	Start, End uintptr
}

const elemSize = unsafe.Sizeof(float32(0))

func regionOf(s []float32) Region {
	if len(s) == 0 {
		return Region{}
	}

	start := uintptr(unsafe.Pointer(unsafe.SliceData(s)))
	return Region{Start: start, End: start + uintptr(len(s))*elemSize}
}

// Overlaps prueft ob zwei Regionen gemeinsame Elemente haben
func (r Region) Overlaps(o Region) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.Start < o.End && o.Start < r.End
}

// Len gibt die Anzahl der float32-Elemente zurueck
func (r Region) Len() int {
	if r.Empty() {
		return 0
	}
	return int((r.End - r.Start) / elemSize)
}

// Slice returns the elements [i, j) of r. It panics if the bounds are out of
// range, like slice indexing.
func (r Region) Slice(i, j int) Region {
	if i < 0 || j < i || j > r.Len() {
		panic(fmt.Sprintf("ml: region slice [%d:%d] out of range [0:%d]", i, j, r.Len()))
	}
	if i == j {
		return Region{}
	}
	return Region{Start: r.Start + uintptr(i)*elemSize, End: r.Start + uintptr(j)*elemSize}
}

// Empty meldet ob die Region keine Elemente umfasst
func (r Region) Empty() bool {
	return r.End <= r.Start
}

func (r Region) String() string {
	return fmt.Sprintf("[%#x:%#x]", r.Start, r.End)
}

// Dense is row-major float32 storage, or a view into one.
type Dense struct {
	data  []float32
	shape []int
}

func newDense(data []float32, shape []int) *Dense {
	return &Dense{data: data, shape: shape}
}

func elements(shape []int) (int, error) {
	if len(shape) == 0 || len(shape) > 2 {
		return 0, fmt.Errorf("unsupported rank %d", len(shape))
	}

	n := 1
	for _, d := range shape {
		if d < 0 {
			return 0, fmt.Errorf("negative dimension in shape %v", shape)
		}
		n *= d
	}

	return n, nil
}

// Zeros allocates a zero-filled array of the given shape. Shapes of rank
// other than 1 or 2 panic.
func Zeros(shape ...int) *Dense {
	n, err := elements(shape)
	if err != nil {
		panic(err)
	}

	return newDense(make([]float32, n), slices.Clone(shape))
}

// Full allocates an array with every element set to v.
func Full(v float32, shape ...int) *Dense {
	return Zeros(shape...).Assign(v)
}

// Ones allocates an array with every element set to 1.
func Ones(shape ...int) *Dense {
	return Full(1, shape...)
}

// FromFloats wraps s without copying; the caller keeps ownership of s and
// sees every mutation made through the returned array.
func FromFloats(s []float32, shape ...int) (*Dense, error) {
	if len(shape) == 0 {
		shape = []int{len(s)}
	}

	n, err := elements(shape)
	if err != nil {
		return nil, err
	}

	if n != len(s) {
		return nil, fmt.Errorf("shape %v needs %d elements, got %d", shape, n, len(s))
	}

	return newDense(s[:n:n], slices.Clone(shape)), nil
}

func (d *Dense) DType() DType { return DTypeF32 }

func (d *Dense) Shape() []int { return slices.Clone(d.shape) }

func (d *Dense) Len() int { return len(d.data) }

func (d *Dense) Floats() []float32 { return d.data }

func (d *Dense) Region() Region { return regionOf(d.data) }

// Rows gibt die Zeilenanzahl zurueck (1 fuer Vektoren)
func (d *Dense) Rows() int {
	if len(d.shape) == 1 {
		return 1
	}
	return d.shape[0]
}

// Cols gibt die Zeilenbreite zurueck (Laenge fuer Vektoren)
func (d *Dense) Cols() int {
	return d.shape[len(d.shape)-1]
}

// Row returns row i as a vector view sharing storage with d. It panics if
// i is out of range, like slice indexing.
func (d *Dense) Row(i int) *Dense {
	rows, cols := d.Rows(), d.Cols()
	if i < 0 || i >= rows {
		panic(fmt.Sprintf("ml: row %d out of range [0, %d)", i, rows))
	}

	return &Dense{
		data:  d.data[i*cols : (i+1)*cols : (i+1)*cols],
		shape: []int{cols},
	}
}

// Assign setzt alle Elemente der Sicht auf v und gibt d zurueck
func (d *Dense) Assign(v float32) *Dense {
	for i := range d.data {
		d.data[i] = v
	}
	return d
}

// Clone copies the view into fresh storage.
func (d *Dense) Clone() *Dense {
	return newDense(slices.Clone(d.data), slices.Clone(d.shape))
}

// Equal vergleicht Form und Inhalt elementweise mit Toleranz eps
func (d *Dense) Equal(o Array, eps float32) bool {
	if !slices.Equal(d.shape, o.Shape()) {
		return false
	}

	for i, v := range o.Floats() {
		diff := d.data[i] - v
		if diff > eps || diff < -eps || diff != diff {
			return false
		}
	}

	return true
}
