/*
NAME
  chunk.go

DESCRIPTION
  chunk.go provides low level byte-slice navigation for RIFF-family
  container formats: reading and writing little- or big-endian 16 and
  32 bit integers, fixed ASCII tags, and locating a named chunk within
  a buffer starting from a given offset.

AUTHOR
  David Sutton <davidsutton@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package chunk provides endian-aware byte-slice navigation for the
// chunk-oriented envelope shared by WAVE and AIFF: a four-byte ASCII
// identifier followed by a length-prefixed payload.
package chunk

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Endianness selects the byte order a chunk's multi-byte fields are
// encoded in. WAVE is little-endian throughout; AIFF is big-endian
// throughout.
type Endianness int

const (
	Little Endianness = iota
	Big
)

func (e Endianness) order() binary.ByteOrder {
	if e == Big {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// HeaderSize is the size in bytes of a chunk's identifier plus its
// size field.
const HeaderSize = 8

// ErrOutOfRange is returned when a read or chunk lookup would run past
// the end of the supplied buffer.
var ErrOutOfRange = errors.New("chunk: read out of range")

// ErrNotFound is returned by FindChunk when no chunk with the
// requested identifier exists in the buffer.
var ErrNotFound = errors.New("chunk: not found")

// ReadTag returns the four-byte ASCII identifier at offset.
func ReadTag(data []byte, offset int) (string, error) {
	if offset < 0 || offset+4 > len(data) {
		return "", errors.Wrapf(ErrOutOfRange, "tag at offset %d", offset)
	}
	return string(data[offset : offset+4]), nil
}

// ReadU16 reads an unsigned 16 bit integer at offset in the given
// endianness.
func ReadU16(data []byte, offset int, end Endianness) (uint16, error) {
	if offset < 0 || offset+2 > len(data) {
		return 0, errors.Wrapf(ErrOutOfRange, "u16 at offset %d", offset)
	}
	return end.order().Uint16(data[offset : offset+2]), nil
}

// ReadU32 reads an unsigned 32 bit integer at offset in the given
// endianness.
func ReadU32(data []byte, offset int, end Endianness) (uint32, error) {
	if offset < 0 || offset+4 > len(data) {
		return 0, errors.Wrapf(ErrOutOfRange, "u32 at offset %d", offset)
	}
	return end.order().Uint32(data[offset : offset+4]), nil
}

// ReadI16 reads a signed 16 bit integer at offset in the given
// endianness.
func ReadI16(data []byte, offset int, end Endianness) (int16, error) {
	v, err := ReadU16(data, offset, end)
	return int16(v), err
}

// ReadI32 reads a signed 32 bit integer at offset in the given
// endianness.
func ReadI32(data []byte, offset int, end Endianness) (int32, error) {
	v, err := ReadU32(data, offset, end)
	return int32(v), err
}

// WriteU16 writes v at offset in the given endianness. dst must have
// at least offset+2 bytes.
func WriteU16(dst []byte, offset int, v uint16, end Endianness) {
	end.order().PutUint16(dst[offset:offset+2], v)
}

// WriteU32 writes v at offset in the given endianness. dst must have
// at least offset+4 bytes.
func WriteU32(dst []byte, offset int, v uint32, end Endianness) {
	end.order().PutUint32(dst[offset:offset+4], v)
}

// WriteI16 writes v at offset in the given endianness.
func WriteI16(dst []byte, offset int, v int16, end Endianness) {
	WriteU16(dst, offset, uint16(v), end)
}

// WriteI32 writes v at offset in the given endianness.
func WriteI32(dst []byte, offset int, v int32, end Endianness) {
	WriteU32(dst, offset, uint32(v), end)
}

// FindChunk scans data for a chunk with the given four-byte
// identifier, starting the search at startIndex, and returns the
// offset of the identifier field (not the payload). The size field of
// every chunk scanned over is validated against the remaining length
// of data; a chunk whose declared size would run past the end of data
// is reported as ErrOutOfRange rather than silently skipped.
func FindChunk(data []byte, id string, startIndex int, end Endianness) (int, error) {
	off := startIndex
	for off+HeaderSize <= len(data) {
		tag, err := ReadTag(data, off)
		if err != nil {
			return 0, err
		}
		size, err := ReadU32(data, off+4, end)
		if err != nil {
			return 0, err
		}
		payload := int(size)
		if off+HeaderSize+payload > len(data) {
			return 0, errors.Wrapf(ErrOutOfRange, "chunk %q declares size %d beyond buffer", tag, size)
		}
		if tag == id {
			return off, nil
		}
		// Chunk payloads are padded to an even length on disk but the
		// size field reflects the unpadded length; step over the pad
		// byte too when present.
		if payload%2 != 0 {
			payload++
		}
		off += HeaderSize + payload
	}
	return 0, errors.Wrapf(ErrNotFound, "chunk %q", id)
}

// AppendString appends the bytes of s verbatim (used for four-byte
// ASCII tags and fixed identifiers).
func AppendString(dst []byte, s string) []byte {
	return append(dst, []byte(s)...)
}

// AppendU16 appends v in the given endianness.
func AppendU16(dst []byte, v uint16, end Endianness) []byte {
	var buf [2]byte
	end.order().PutUint16(buf[:], v)
	return append(dst, buf[:]...)
}

// AppendU32 appends v in the given endianness.
func AppendU32(dst []byte, v uint32, end Endianness) []byte {
	var buf [4]byte
	end.order().PutUint32(buf[:], v)
	return append(dst, buf[:]...)
}

// AppendI16 appends v in the given endianness.
func AppendI16(dst []byte, v int16, end Endianness) []byte {
	return AppendU16(dst, uint16(v), end)
}

// AppendI32 appends v in the given endianness.
func AppendI32(dst []byte, v int32, end Endianness) []byte {
	return AppendU32(dst, uint32(v), end)
}
