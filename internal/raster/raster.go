// Package raster stores decoded image samples and converts them between
// numeric types.
package raster

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Number is any integer or floating point type a sample can be converted to.
type Number interface {
	constraints.Integer | constraints.Float
}

// Kind identifies the storage type of samples.
type Kind int

const (
	Invalid Kind = iota
	Uint8
	Uint16
	Uint32
	Uint64
	Int8
	Int16
	Int32
	Int64
	Float32
	Float64
)

// String returns the Go name of the storage type.
func (k Kind) String() string {
	switch k {
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "invalid"
	}
}

// Size returns the number of bytes one sample occupies.
func (k Kind) Size() int {
	switch k {
	case Uint8, Int8:
		return 1
	case Uint16, Int16:
		return 2
	case Uint32, Int32, Float32:
		return 4
	case Uint64, Int64, Float64:
		return 8
	default:
		return 0
	}
}

func (k Kind) isFloat() bool    { return k == Float32 || k == Float64 }
func (k Kind) isUnsigned() bool { return k >= Uint8 && k <= Uint64 }

// Data is the decoded sample storage of an image, in pixel interleaved
// order: index (y*width + x)*samplesPerPixel + sample.
//
// The only implementations are the Samples types of this package.
type Data interface {
	Kind() Kind
	Len() int
	At(i int) Value

	isData()
}

// Samples is typed sample storage.
type Samples[T Number] []T

// Kind returns the storage type of the samples.
func (s Samples[T]) Kind() Kind {
	return kindOf[T]()
}

// Len returns the number of samples.
func (s Samples[T]) Len() int {
	return len(s)
}

// At returns sample i. It panics if i is out of range.
func (s Samples[T]) At(i int) Value {
	return ValueOf(s[i])
}

func (Samples[T]) isData() {}

var (
	_ Data = Samples[uint8](nil)
	_ Data = Samples[float64](nil)
)

func kindOf[T Number]() Kind {
	var z T
	switch any(z).(type) {
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case float32:
		return Float32
	case float64:
		return Float64
	default:
		return Invalid
	}
}

// Decode interprets buf as packed samples of the given kind.
func Decode(kind Kind, order binary.ByteOrder, buf []byte) (Data, error) {
	size := kind.Size()
	if size == 0 {
		return nil, fmt.Errorf("cannot decode samples of kind %v", kind)
	}
	if len(buf)%size != 0 {
		return nil, fmt.Errorf("%d bytes is not a whole number of %v samples", len(buf), kind)
	}
	n := len(buf) / size

	switch kind {
	case Uint8:
		return Samples[uint8](append([]uint8(nil), buf...)), nil
	case Int8:
		s := make(Samples[int8], n)
		for i, b := range buf {
			s[i] = int8(b)
		}
		return s, nil
	case Uint16:
		return decodeWith(n, size, buf, func(b []byte) uint16 { return order.Uint16(b) }), nil
	case Int16:
		return decodeWith(n, size, buf, func(b []byte) int16 { return int16(order.Uint16(b)) }), nil
	case Uint32:
		return decodeWith(n, size, buf, func(b []byte) uint32 { return order.Uint32(b) }), nil
	case Int32:
		return decodeWith(n, size, buf, func(b []byte) int32 { return int32(order.Uint32(b)) }), nil
	case Uint64:
		return decodeWith(n, size, buf, func(b []byte) uint64 { return order.Uint64(b) }), nil
	case Int64:
		return decodeWith(n, size, buf, func(b []byte) int64 { return int64(order.Uint64(b)) }), nil
	case Float32:
		return decodeWith(n, size, buf, func(b []byte) float32 { return math.Float32frombits(order.Uint32(b)) }), nil
	default:
		return decodeWith(n, size, buf, func(b []byte) float64 { return math.Float64frombits(order.Uint64(b)) }), nil
	}
}

func decodeWith[T Number](n, size int, buf []byte, read func([]byte) T) Samples[T] {
	s := make(Samples[T], n)
	for i := range s {
		s[i] = read(buf[i*size : (i+1)*size])
	}
	return s
}
