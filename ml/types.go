// types.go - Datentypen und Konstanten fuer Array-Operanden
// Dieses Modul definiert DType und die Byte-Groessen der unterstuetzten Typen.
package ml

import "fmt"

// DType represents the data type of array elements.
type DType int

const (
	DTypeOther DType = iota
	DTypeF32
	DTypeF16
	DTypeBF16
)

// Size gibt die Byte-Groesse eines Elements zurueck (0 fuer DTypeOther)
func (t DType) Size() int {
	switch t {
	case DTypeF32:
		return 4
	case DTypeF16, DTypeBF16:
		return 2
	default:
		return 0
	}
}

func (t DType) String() string {
	switch t {
	case DTypeF32:
		return "f32"
	case DTypeF16:
		return "f16"
	case DTypeBF16:
		return "bf16"
	default:
		return fmt.Sprintf("dtype(%d)", int(t))
	}
}
