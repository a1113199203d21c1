/*
NAME
  wav.go

DESCRIPTION
  wav.go parses and emits complete WAVE streams: the RIFF envelope,
  the "fmt " chunk, the "data" chunk, and an optional "iXML" metadata
  chunk.

AUTHOR
  David Sutton <davidsutton@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package wav provides functions for converting wav audio.
package wav

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"github.com/ausocean/audiofile/codec/audioerr"
	"github.com/ausocean/audiofile/codec/chunk"
	"github.com/ausocean/audiofile/codec/sample"
)

// Audio format codes carried in the "fmt " chunk.
const (
	PCMFormat   = 1
	FloatFormat = 3
)

// ConvertFormat converts the common name for a format in a string type to the specific
// integer required by the wav encoder.
var ConvertFormat = map[string]int{"pcm": PCMFormat, "float": FloatFormat}

// order is the byte order of every multi-byte field in a WAVE stream.
const order = chunk.Little

// Metadata describes the format of a WAVE file, independent of its
// sample data.
type Metadata struct {
	AudioFormat int
	Channels    int
	SampleRate  uint32
	BitDepth    int
}

// Decoded holds the result of parsing a WAVE stream: its format
// metadata, its planar sample buffer (Samples[channel][index]) and an
// optional iXML payload.
type Decoded[S sample.Type] struct {
	Metadata Metadata
	Samples  [][]S
	IXML     string
}

func allowedBitDepth(d int) bool {
	switch d {
	case 8, 16, 24, 32:
		return true
	default:
		return false
	}
}

// Parse decodes a complete WAVE stream into a Decoded value carrying
// samples of type S.
func Parse[S sample.Type](data []byte) (Decoded[S], error) {
	var zero Decoded[S]

	if len(data) < 12 {
		return zero, errors.Wrap(audioerr.IO, "wav: buffer shorter than minimum envelope")
	}
	tag, _ := chunk.ReadTag(data, 0)
	if tag != "RIFF" {
		return zero, errors.Wrap(audioerr.UnknownFormat, "wav: missing RIFF signature")
	}
	wave, _ := chunk.ReadTag(data, 8)
	if wave != "WAVE" {
		return zero, errors.Wrap(audioerr.UnknownFormat, "wav: missing WAVE signature")
	}

	fmtOff, err := chunk.FindChunk(data, "fmt ", 12, order)
	if err != nil {
		return zero, errors.Wrap(audioerr.MalformedChunk, "wav: fmt chunk not found")
	}
	body := fmtOff + chunk.HeaderSize

	audioFormat, err := chunk.ReadU16(data, body, order)
	if err != nil {
		return zero, errors.Wrap(audioerr.MalformedChunk, "wav: truncated fmt chunk")
	}
	if audioFormat != PCMFormat && audioFormat != FloatFormat {
		return zero, errors.Wrapf(audioerr.UnsupportedEncoding, "wav: unsupported audio format code %d", audioFormat)
	}

	channels, err := chunk.ReadU16(data, body+2, order)
	if err != nil {
		return zero, errors.Wrap(audioerr.MalformedChunk, "wav: truncated fmt chunk")
	}
	if channels == 0 {
		return zero, errors.Wrap(audioerr.MalformedChunk, "wav: zero channels in fmt chunk")
	}

	sampleRate, err := chunk.ReadU32(data, body+4, order)
	if err != nil {
		return zero, errors.Wrap(audioerr.MalformedChunk, "wav: truncated fmt chunk")
	}

	bitDepth, err := chunk.ReadU16(data, body+14, order)
	if err != nil {
		return zero, errors.Wrap(audioerr.MalformedChunk, "wav: truncated fmt chunk")
	}
	if !allowedBitDepth(int(bitDepth)) {
		return zero, errors.Wrapf(audioerr.UnsupportedEncoding, "wav: unsupported bit depth %d", bitDepth)
	}
	if audioFormat == FloatFormat && bitDepth != 32 {
		return zero, errors.Wrapf(audioerr.UnsupportedEncoding, "wav: float format requires 32 bit depth, got %d", bitDepth)
	}

	dataOff, err := chunk.FindChunk(data, "data", 12, order)
	if err != nil {
		return zero, errors.Wrap(audioerr.MalformedChunk, "wav: data chunk not found")
	}
	dataSize, err := chunk.ReadU32(data, dataOff+4, order)
	if err != nil {
		return zero, errors.Wrap(audioerr.MalformedChunk, "wav: truncated data chunk")
	}
	dataStart := dataOff + chunk.HeaderSize

	bytesPerSample := int(bitDepth) / 8
	frameSize := int(channels) * bytesPerSample
	sampleCount := int(dataSize) / frameSize

	samples := make([][]S, channels)
	for c := range samples {
		samples[c] = make([]S, sampleCount)
	}

	for i := 0; i < sampleCount; i++ {
		for c := 0; c < int(channels); c++ {
			off := dataStart + (i*int(channels)+c)*bytesPerSample
			switch bitDepth {
			case 8:
				samples[c][i] = sample.FromUnsignedByte[S](data[off])
			case 16:
				v, err := chunk.ReadI16(data, off, order)
				if err != nil {
					return zero, errors.Wrap(audioerr.MalformedChunk, "wav: truncated sample data")
				}
				samples[c][i] = sample.FromPacked[S](int32(v), 16)
			case 24:
				v, err := read24(data, off, order)
				if err != nil {
					return zero, errors.Wrap(audioerr.MalformedChunk, "wav: truncated sample data")
				}
				samples[c][i] = sample.FromPacked[S](v, 24)
			case 32:
				if audioFormat == FloatFormat {
					if off+4 > len(data) {
						return zero, errors.Wrap(audioerr.MalformedChunk, "wav: truncated sample data")
					}
					bits := binary.LittleEndian.Uint32(data[off : off+4])
					samples[c][i] = sample.FromFloatSample[S](math.Float32frombits(bits))
				} else {
					v, err := chunk.ReadI32(data, off, order)
					if err != nil {
						return zero, errors.Wrap(audioerr.MalformedChunk, "wav: truncated sample data")
					}
					samples[c][i] = sample.FromPacked[S](v, 32)
				}
			}
		}
	}

	ixml := ""
	if ixmlOff, err := chunk.FindChunk(data, "iXML", 12, order); err == nil {
		size, err := chunk.ReadU32(data, ixmlOff+4, order)
		if err == nil {
			start := ixmlOff + chunk.HeaderSize
			if end := start + int(size); end <= len(data) {
				ixml = string(data[start:end])
			}
		}
	}

	return Decoded[S]{
		Metadata: Metadata{
			AudioFormat: int(audioFormat),
			Channels:    int(channels),
			SampleRate:  sampleRate,
			BitDepth:    int(bitDepth),
		},
		Samples: samples,
		IXML:    ixml,
	}, nil
}

// Emit encodes a planar sample buffer and format metadata into a
// complete WAVE byte stream, optionally carrying an iXML chunk.
func Emit[S sample.Type](md Metadata, samples [][]S, ixml string) ([]byte, error) {
	if !allowedBitDepth(md.BitDepth) {
		return nil, errors.Wrapf(audioerr.UnsupportedEncoding, "wav: unsupported bit depth %d", md.BitDepth)
	}

	channels := len(samples)
	sampleCount := 0
	if channels > 0 {
		sampleCount = len(samples[0])
	}
	bytesPerSample := md.BitDepth / 8
	dataSize := channels * sampleCount * bytesPerSample

	var zeroS S
	_, isF32 := any(zeroS).(float32)
	_, isF64 := any(zeroS).(float64)
	floatFormat := (isF32 || isF64) && md.BitDepth == 32
	audioFormat := PCMFormat
	if floatFormat {
		audioFormat = FloatFormat
	}

	buf := make([]byte, 0, 44+dataSize+8)
	buf = chunk.AppendString(buf, "RIFF")
	buf = chunk.AppendU32(buf, 0, order) // size back-patched below
	buf = chunk.AppendString(buf, "WAVE")

	buf = chunk.AppendString(buf, "fmt ")
	buf = chunk.AppendU32(buf, 16, order)
	buf = chunk.AppendU16(buf, uint16(audioFormat), order)
	buf = chunk.AppendU16(buf, uint16(channels), order)
	buf = chunk.AppendU32(buf, md.SampleRate, order)
	blockAlign := channels * bytesPerSample
	byteRate := md.SampleRate * uint32(blockAlign)
	buf = chunk.AppendU32(buf, byteRate, order)
	buf = chunk.AppendU16(buf, uint16(blockAlign), order)
	buf = chunk.AppendU16(buf, uint16(md.BitDepth), order)

	buf = chunk.AppendString(buf, "data")
	buf = chunk.AppendU32(buf, uint32(dataSize), order)
	dataStart := len(buf)
	buf = append(buf, make([]byte, dataSize)...)

	for i := 0; i < sampleCount; i++ {
		for c := 0; c < channels; c++ {
			off := dataStart + (i*channels+c)*bytesPerSample
			s := samples[c][i]
			switch md.BitDepth {
			case 8:
				buf[off] = sample.ToUnsignedByte(s)
			case 16:
				chunk.WriteI16(buf, off, int16(sample.ToPacked(s, 16)), order)
			case 24:
				write24(buf, off, sample.ToPacked(s, 24), order)
			case 32:
				if floatFormat {
					binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(sample.ToFloatSample(s)))
				} else {
					chunk.WriteI32(buf, off, sample.ToPacked(s, 32), order)
				}
			}
		}
	}
	if dataSize%2 != 0 {
		buf = append(buf, 0)
	}

	if ixml != "" {
		buf = chunk.AppendString(buf, "iXML")
		buf = chunk.AppendU32(buf, uint32(len(ixml)), order)
		buf = chunk.AppendString(buf, ixml)
		if len(ixml)%2 != 0 {
			buf = append(buf, 0)
		}
	}

	chunk.WriteU32(buf, 4, uint32(len(buf)-8), order)
	return buf, nil
}

// read24 reads a little-endian 24 bit sample at off into the low
// three bytes of a 32 bit accumulator, sign-extending bit 23.
func read24(data []byte, off int, end chunk.Endianness) (int32, error) {
	if off+3 > len(data) {
		return 0, audioerr.MalformedChunk
	}
	v := int32(data[off]) | int32(data[off+1])<<8 | int32(data[off+2])<<16
	if v&0x800000 != 0 {
		v |= ^int32(0xFFFFFF)
	}
	return v, nil
}

// write24 emits the three low-order bytes of v at off, little-endian.
func write24(dst []byte, off int, v int32, end chunk.Endianness) {
	dst[off] = byte(v)
	dst[off+1] = byte(v >> 8)
	dst[off+2] = byte(v >> 16)
}
