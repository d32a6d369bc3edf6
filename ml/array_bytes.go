// array_bytes.go - Import von Roh-Bytes in Dense-Arrays
// Enthaelt: FromBytes (f32 little-endian, f16 via x448/float16, bf16 via go-bfloat16)
// und Bytes fuer den Export als f32/f16
package ml

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/d4l3k/go-bfloat16"
	"github.com/x448/float16"
)

// FromBytes decodes little-endian elements of the given dtype into new
// float32 storage. F16 and BF16 input is widened to float32.
func FromBytes(dtype DType, b []byte, shape ...int) (*Dense, error) {
	size := dtype.Size()
	if size == 0 {
		return nil, fmt.Errorf("unsupported dtype %s", dtype)
	}

	if len(b)%size != 0 {
		return nil, fmt.Errorf("%d bytes is not a multiple of %s element size %d", len(b), dtype, size)
	}

	var f32s []float32
	switch dtype {
	case DTypeF32:
		f32s = make([]float32, len(b)/size)
		for i := range f32s {
			f32s[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
		}
	case DTypeF16:
		f32s = make([]float32, len(b)/size)
		for i := range f32s {
			f32s[i] = float16.Frombits(binary.LittleEndian.Uint16(b[i*2:])).Float32()
		}
	case DTypeBF16:
		f32s = bfloat16.DecodeFloat32(b)
	}

	return FromFloats(f32s, shape...)
}

// Bytes kodiert die Sicht als little-endian Elemente des gegebenen Typs
// (nur f32 und f16)
func Bytes(a Array, dtype DType) ([]byte, error) {
	size := dtype.Size()
	if dtype != DTypeF32 && dtype != DTypeF16 {
		return nil, fmt.Errorf("unsupported dtype %s", dtype)
	}

	f32s := a.Floats()
	b := make([]byte, len(f32s)*size)
	switch dtype {
	case DTypeF32:
		for i, f := range f32s {
			binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(f))
		}
	case DTypeF16:
		for i, f := range f32s {
			binary.LittleEndian.PutUint16(b[i*2:], float16.Fromfloat32(f).Bits())
		}
	}

	return b, nil
}
