package raster

import (
	"math"
	"strconv"
)

// Value is a single sample together with its storage type.
type Value struct {
	kind Kind
	u    uint64  // unsigned kinds
	i    int64   // signed kinds
	f    float64 // float kinds
}

// ValueOf wraps x in a Value.
func ValueOf[T Number](x T) Value {
	switch k := kindOf[T](); {
	case k.isFloat():
		return Value{kind: k, f: float64(x)}
	case k.isUnsigned():
		return Value{kind: k, u: uint64(x)}
	case k != Invalid:
		return Value{kind: k, i: int64(x)}
	}

	// Named or platform sized types keep their class but no storage kind.
	switch {
	case isFloat[T]():
		return Value{kind: Float64, f: float64(x)}
	case isSigned[T]():
		return Value{kind: Int64, i: int64(x)}
	default:
		return Value{kind: Uint64, u: uint64(x)}
	}
}

// Kind returns the storage type of the sample.
func (v Value) Kind() Kind {
	return v.kind
}

// Float64 returns the sample widened to float64. Integers beyond 2^53 lose precision.
func (v Value) Float64() float64 {
	switch {
	case v.kind.isFloat():
		return v.f
	case v.kind.isUnsigned():
		return float64(v.u)
	default:
		return float64(v.i)
	}
}

func (v Value) String() string {
	switch {
	case v.kind == Float32:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case v.kind == Float64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case v.kind.isUnsigned():
		return strconv.FormatUint(v.u, 10)
	default:
		return strconv.FormatInt(v.i, 10)
	}
}

// Convert returns v as a T. It reports false when the value cannot be
// represented: negative values as unsigned integers, integers outside the
// range of T, fractional or non-finite floats as integers, and finite
// floats that overflow a narrower float type. Integers converted to floats
// may be rounded.
func Convert[T Number](v Value) (T, bool) {
	switch {
	case v.kind.isFloat():
		return fromFloat[T](v.f)
	case v.kind.isUnsigned():
		return fromUint[T](v.u)
	default:
		return fromInt[T](v.i)
	}
}

func fromUint[T Number](u uint64) (T, bool) {
	t := T(u)
	if isFloat[T]() {
		return t, true
	}
	return t, t >= 0 && uint64(t) == u
}

func fromInt[T Number](i int64) (T, bool) {
	t := T(i)
	if isFloat[T]() {
		return t, true
	}
	return t, int64(t) == i && (t < 0) == (i < 0)
}

func fromFloat[T Number](f float64) (T, bool) {
	if isFloat[T]() {
		t := T(f)
		if math.IsInf(float64(t), 0) && !math.IsInf(f, 0) {
			return t, false
		}
		return t, true
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
		return 0, false
	}
	if f < 0 {
		if f < math.MinInt64 {
			return 0, false
		}
		return fromInt[T](int64(f))
	}
	if f >= math.MaxUint64 {
		return 0, false
	}
	return fromUint[T](uint64(f))
}

func isFloat[T Number]() bool {
	half := 0.5
	return T(half) != 0
}

func isSigned[T Number]() bool {
	minusOne := -1
	return T(minusOne) < 0
}
