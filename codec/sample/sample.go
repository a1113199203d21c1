/*
NAME
  sample.go

DESCRIPTION
  sample.go provides bidirectional conversion between the library's
  generic in-memory sample type and the packed integer representations
  used on disk at 8, 16, 24 and 32 bit widths, plus the clamping and
  sign-conversion primitives the format codecs build on.

AUTHOR
  David Sutton <davidsutton@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package sample converts between the generic sample scalar (float32,
// float64, int8, int16, int32 or uint8) and the packed integer sample
// widths WAVE and AIFF encode on disk (8, 16, 24 and 32 bits).
package sample

import (
	"cmp"
	"math"
)

// Type is the set of scalar types a sample buffer may hold.
type Type interface {
	~float32 | ~float64 | ~int8 | ~int16 | ~int32 | ~uint8
}

// Fullscale magnitudes for each supported packed width, per spec: the
// maximum representable positive magnitude, one less than the
// corresponding power of two so the encoding is symmetric around zero.
const (
	FullScale8  = 127
	FullScale16 = 32767
	FullScale24 = 8388607
	FullScale32 = 2147483647
)

func fullScaleFor(width int) int64 {
	switch width {
	case 8:
		return FullScale8
	case 16:
		return FullScale16
	case 24:
		return FullScale24
	case 32:
		return FullScale32
	default:
		panic("sample: unsupported width")
	}
}

// Clamp restricts v to the closed interval [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ToPacked converts a sample of type S to its signed on-disk
// representation at the given bit width (8, 16, 24 or 32).
func ToPacked[S Type](s S, width int) int32 {
	switch v := any(s).(type) {
	case float32:
		if width == 32 {
			return int32(float32ToSigned32(v))
		}
		return int32(floatToSigned(float64(v), width))
	case float64:
		return int32(floatToSigned(v, width))
	case int8:
		return int32(clampSigned(int64(v), width))
	case int16:
		return int32(clampSigned(int64(v), width))
	case int32:
		return int32(clampSigned(int64(v), width))
	case uint8:
		return int32(unsignedToSigned(uint64(v), width))
	default:
		panic("sample: unsupported sample type")
	}
}

// FromPacked converts a signed on-disk value v, already sign-extended
// from the given bit width, back to a sample of type S.
func FromPacked[S Type](v int32, width int) S {
	var zero S
	switch any(zero).(type) {
	case float32:
		return any(float32(signedToFloat(int64(v), width))).(S)
	case float64:
		return any(signedToFloat(int64(v), width)).(S)
	case int8:
		return any(int8(v)).(S)
	case int16:
		return any(int16(v)).(S)
	case int32:
		return any(v).(S)
	case uint8:
		return any(uint8(signedToUnsigned(int64(v), width))).(S)
	default:
		panic("sample: unsupported sample type")
	}
}

// ToUnsignedByte converts a sample to WAVE's unsigned 8 bit
// representation (bias 128). A floating point sample at or below -1.0
// maps to 0, the bottom of the unsigned range.
func ToUnsignedByte[S Type](s S) uint8 {
	packed := ToPacked(s, 8)
	switch any(s).(type) {
	case float32, float64:
		if packed <= -FullScale8 {
			return 0
		}
	}
	return uint8(signedToUnsigned(int64(packed), 8))
}

// FromUnsignedByte converts a WAVE unsigned 8 bit byte back to a
// sample.
func FromUnsignedByte[S Type](b uint8) S {
	return FromPacked[S](int32(unsignedToSigned(uint64(b), 8)), 8)
}

// ToSignedByte converts a sample to AIFF's signed 8 bit two's
// complement representation.
func ToSignedByte[S Type](s S) int8 {
	return int8(ToPacked(s, 8))
}

// FromSignedByte converts an AIFF signed byte back to a sample.
func FromSignedByte[S Type](b int8) S {
	return FromPacked[S](int32(b), 8)
}

// widthOf reports the natural packed bit width a sample type maps to
// when it is itself the source or destination of an IEEE 754 binary32
// on-disk value (WAVE's format code 3).
func widthOf[S Type]() int {
	var zero S
	switch any(zero).(type) {
	case int8, uint8:
		return 8
	case int16:
		return 16
	default:
		return 32
	}
}

// FromFloatSample converts an on-disk IEEE 754 binary32 value (WAVE
// format code 3) to a sample of type S. Float destinations are cast
// directly, without re-clamping; integer destinations are scaled by
// the fullscale of their natural width, using the same rules as
// FromPacked.
func FromFloatSample[S Type](v float32) S {
	var zero S
	switch any(zero).(type) {
	case float32:
		return any(v).(S)
	case float64:
		return any(float64(v)).(S)
	case uint8:
		packed := floatToSigned(float64(v), 8)
		return any(uint8(signedToUnsigned(packed, 8))).(S)
	case int32:
		return any(int32(float32ToSigned32(v))).(S)
	default:
		width := widthOf[S]()
		return FromPacked[S](int32(floatToSigned(float64(v), width)), width)
	}
}

// ToFloatSample converts a sample of type S to an IEEE 754 binary32
// value suitable for WAVE format code 3 encoding.
func ToFloatSample[S Type](s S) float32 {
	switch v := any(s).(type) {
	case float32:
		return v
	case float64:
		return float32(v)
	case uint8:
		return float32(signedToFloat(int64(ToPacked(s, 8)), 8))
	default:
		width := widthOf[S]()
		return float32(signedToFloat(int64(ToPacked(s, width)), width))
	}
}

// floatToSigned implements the float-to-integer conversion contract:
// clamp to [-1, 1], multiply by the width's fullscale, truncate toward
// zero (Go's float-to-int conversion already truncates toward zero).
func floatToSigned(v float64, width int) int64 {
	clamped := Clamp(v, -1.0, 1.0)
	return int64(clamped * float64(fullScaleFor(width)))
}

// float32ToSigned32 special-cases 32 bit float to 32 bit integer
// conversion: FullScale32 (2147483647) is not exactly representable as
// a float32, so naive clamp-and-multiply can round up past
// math.MaxInt32 for inputs at or beyond +1.0/-1.0. The on-disk range
// is kept symmetric around zero by returning MinInt32+1 rather than
// MinInt32 for the negative extreme.
func float32ToSigned32(v float32) int64 {
	if v >= 1.0 {
		return math.MaxInt32
	}
	if v <= -1.0 {
		return math.MinInt32 + 1
	}
	return int64(v * float32(FullScale32))
}

// clampSigned clamps a signed integer value into the signed range
// representable at the given bit width.
func clampSigned(v int64, width int) int64 {
	hi := fullScaleFor(width)
	lo := -hi - 1
	return Clamp(v, lo, hi)
}

// unsignedToSigned clamps an unsigned value to the given bit width's
// unsigned range, then shifts it down by 2^(width-1) to produce the
// signed on-disk value.
func unsignedToSigned(v uint64, width int) int64 {
	hi := uint64(1)<<uint(width) - 1
	if v > hi {
		v = hi
	}
	return int64(v) - (int64(1) << uint(width-1))
}

// signedToFloat divides an on-disk signed value by the width's
// fullscale. The result is not re-clamped: a pathological input can
// decode to a value marginally outside [-1, 1].
func signedToFloat(v int64, width int) float64 {
	return float64(v) / float64(fullScaleFor(width))
}

// signedToUnsigned is the inverse of unsignedToSigned: it shifts a
// signed on-disk value up by 2^(width-1) to recover the unsigned
// value.
func signedToUnsigned(v int64, width int) uint64 {
	return uint64(v + (int64(1) << uint(width-1)))
}
