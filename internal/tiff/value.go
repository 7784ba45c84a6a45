package tiff

import (
	"bytes"
	"encoding/binary"
	"math"

	"golang.org/x/text/encoding/charmap"
)

// Value is the payload of one IFD entry, kept in file byte order and decoded on access.
type Value struct {
	Type  FieldType
	Count uint64

	raw   []byte
	order binary.ByteOrder
}

// Uints returns the payload of an unsigned integer entry (BYTE, SHORT, LONG,
// LONG8, IFD, IFD8). It reports false for other types.
func (v Value) Uints() ([]uint64, bool) {
	switch v.Type {
	case Byte, Short, Long, Long8, IFD, IFD8:
	default:
		return nil, false
	}
	size := v.Type.Size()
	out := make([]uint64, v.Count)
	for i := range out {
		b := v.raw[i*size:]
		switch v.Type {
		case Byte:
			out[i] = uint64(b[0])
		case Short:
			out[i] = uint64(v.order.Uint16(b))
		case Long, IFD:
			out[i] = uint64(v.order.Uint32(b))
		case Long8, IFD8:
			out[i] = v.order.Uint64(b)
		default:
			return nil, false
		}
	}
	return out, true
}

// Floats returns any numeric payload widened to float64. Rationals are
// divided out. It reports false for ASCII and UNDEFINED entries.
func (v Value) Floats() ([]float64, bool) {
	if v.Type == ASCII || v.Type == Undefined {
		return nil, false
	}
	size := v.Type.Size()
	out := make([]float64, v.Count)
	for i := range out {
		b := v.raw[i*size:]
		switch v.Type {
		case Byte:
			out[i] = float64(b[0])
		case SByte:
			out[i] = float64(int8(b[0]))
		case Short:
			out[i] = float64(v.order.Uint16(b))
		case SShort:
			out[i] = float64(int16(v.order.Uint16(b)))
		case Long, IFD:
			out[i] = float64(v.order.Uint32(b))
		case SLong:
			out[i] = float64(int32(v.order.Uint32(b)))
		case Long8, IFD8:
			out[i] = float64(v.order.Uint64(b))
		case SLong8:
			out[i] = float64(int64(v.order.Uint64(b)))
		case Rational:
			out[i] = float64(v.order.Uint32(b)) / float64(v.order.Uint32(b[4:]))
		case SRational:
			out[i] = float64(int32(v.order.Uint32(b))) / float64(int32(v.order.Uint32(b[4:])))
		case Float:
			out[i] = float64(math.Float32frombits(v.order.Uint32(b)))
		case Double:
			out[i] = math.Float64frombits(v.order.Uint64(b))
		default:
			return nil, false
		}
	}
	return out, true
}

// Bytes returns the raw payload of a BYTE, ASCII or UNDEFINED entry.
func (v Value) Bytes() ([]byte, bool) {
	switch v.Type {
	case Byte, ASCII, Undefined:
		return v.raw, true
	default:
		return nil, false
	}
}

// Text decodes an ASCII payload as ISO 8859-1 with trailing NULs removed.
// Byte values above 127 are not valid TIFF ASCII but occur in practice.
func (v Value) Text() string {
	s, _ := charmap.ISO8859_1.NewDecoder().Bytes(bytes.TrimRight(v.raw, "\x00"))
	return string(s)
}
