/*
NAME
  chunk_test.go

DESCRIPTION
  chunk_test.go provides testing for functionality found in chunk.go.

AUTHOR
  David Sutton <davidsutton@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package chunk

import (
	"testing"
)

func TestReadWriteU16(t *testing.T) {
	tests := []struct {
		name string
		v    uint16
		end  Endianness
		want []byte
	}{
		{name: "little", v: 0x0102, end: Little, want: []byte{0x02, 0x01}},
		{name: "big", v: 0x0102, end: Big, want: []byte{0x01, 0x02}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, 2)
			WriteU16(buf, 0, tt.v, tt.end)
			for i := range buf {
				if buf[i] != tt.want[i] {
					t.Fatalf("WriteU16() = %v, want %v", buf, tt.want)
				}
			}
			got, err := ReadU16(buf, 0, tt.end)
			if err != nil {
				t.Fatalf("ReadU16() error = %v", err)
			}
			if got != tt.v {
				t.Errorf("ReadU16() = %v, want %v", got, tt.v)
			}
		})
	}
}

func TestReadOutOfRange(t *testing.T) {
	data := []byte{0x01}
	if _, err := ReadU16(data, 0, Little); errCause(err) != ErrOutOfRange {
		t.Errorf("ReadU16() error = %v, want ErrOutOfRange", err)
	}
	if _, err := ReadU32(data, 0, Little); errCause(err) != ErrOutOfRange {
		t.Errorf("ReadU32() error = %v, want ErrOutOfRange", err)
	}
	if _, err := ReadTag(data, 0); errCause(err) != ErrOutOfRange {
		t.Errorf("ReadTag() error = %v, want ErrOutOfRange", err)
	}
}

func TestFindChunk(t *testing.T) {
	var data []byte
	data = AppendString(data, "RIFF")
	data = AppendU32(data, 0, Little) // placeholder size
	data = AppendString(data, "WAVE")
	data = AppendString(data, "fmt ")
	data = AppendU32(data, 4, Little)
	data = AppendU32(data, 0xdeadbeef, Little)
	data = AppendString(data, "data")
	data = AppendU32(data, 2, Little)
	data = append(data, 0x01, 0x02, 0x00) // two-byte payload, one trailing byte

	off, err := FindChunk(data, "fmt ", 12, Little)
	if err != nil {
		t.Fatalf("FindChunk(fmt ) error = %v", err)
	}
	if off != 12 {
		t.Errorf("FindChunk(fmt ) offset = %d, want 12", off)
	}

	off, err = FindChunk(data, "data", 12, Little)
	if err != nil {
		t.Fatalf("FindChunk(data) error = %v", err)
	}
	if off != 24 {
		t.Errorf("FindChunk(data) offset = %d, want 24", off)
	}

	if _, err := FindChunk(data, "nope", 12, Little); errCause(err) != ErrNotFound {
		t.Errorf("FindChunk(nope) error = %v, want ErrNotFound", err)
	}
}

func TestFindChunkRejectsOversizedChunk(t *testing.T) {
	var data []byte
	data = AppendString(data, "fmt ")
	data = AppendU32(data, 1000, Little)
	data = append(data, 0x00)

	if _, err := FindChunk(data, "fmt ", 0, Little); errCause(err) != ErrOutOfRange {
		t.Errorf("FindChunk() error = %v, want ErrOutOfRange", err)
	}
}

// errCause unwraps a github.com/pkg/errors-wrapped error to its root
// cause for comparison against a sentinel.
func errCause(err error) error {
	type causer interface{ Cause() error }
	for err != nil {
		c, ok := err.(causer)
		if !ok {
			return err
		}
		err = c.Cause()
	}
	return err
}
