/*
NAME
  extfloat80.go

DESCRIPTION
  extfloat80.go encodes and decodes the 80-bit IEEE 754 extended
  precision floating point field AIFF's COMM chunk uses to carry an
  integer sample rate.

AUTHOR
  David Sutton <davidsutton@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package extfloat80 encodes and decodes the 80-bit IEEE 754 extended
// precision sample rate field used by AIFF's COMM chunk: a two-byte
// big-endian sign+exponent (biased by 16383) followed by eight bytes
// of big-endian mantissa with an explicit leading one bit.
package extfloat80

import (
	"encoding/binary"
	"math"
	"math/bits"
)

// Size is the on-disk size in bytes of the extended-precision field.
const Size = 10

const bias = 16383

// standardRates mirrors a common AIFF-writer convention of emitting a
// fixed literal for a handful of well known sample rates. Since the
// literal these writers emit is exactly what our own Encode produces
// (both follow the same IEEE 754 80-bit extended layout), the
// compatibility fast path below recognises these ten-byte sequences
// by comparing against our own encoding rather than transcribing a
// separate hand-written table.
var standardRates = []uint32{
	8000, 11025, 16000, 22050, 32000, 37800, 44056, 44100, 47250, 48000,
	50000, 50400, 88200, 96000, 176400, 192000, 352800, 2822400, 5644800,
}

// Encode returns the 10-byte extended-precision encoding of rate. A
// rate of zero encodes as ten zero bytes.
func Encode(rate uint32) [Size]byte {
	var out [Size]byte
	if rate == 0 {
		return out
	}
	exp := bits.Len32(rate) - 1 // position of the high set bit
	shift := 63 - exp
	mantissa := uint64(rate) << uint(shift)
	biased := uint16(bias + exp)
	out[0] = byte(biased >> 8)
	out[1] = byte(biased)
	binary.BigEndian.PutUint64(out[2:], mantissa)
	return out
}

// Decode extracts the integer sample rate from a 10-byte
// extended-precision field. Out-of-range exponents that would
// overflow 32 bits yield zero.
func Decode(data []byte) uint32 {
	if len(data) < Size {
		return 0
	}
	for _, r := range standardRates {
		enc := Encode(r)
		if [Size]byte(data[:Size:Size]) == enc {
			return r
		}
	}
	biased := uint16(data[0])<<8 | uint16(data[1])
	exp := int(biased) - bias
	if exp < 0 || exp > 31 {
		return 0
	}
	mantissa := binary.BigEndian.Uint64(data[2:Size])
	shift := 63 - exp
	v := mantissa >> uint(shift)
	if v > math.MaxUint32 {
		return 0
	}
	return uint32(v)
}
