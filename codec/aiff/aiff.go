/*
NAME
  aiff.go

DESCRIPTION
  aiff.go parses and emits complete AIFF/AIFC streams: the FORM
  envelope, the COMM chunk (including its 80-bit extended-precision
  sample rate field), the SSND chunk, and an optional iXML metadata
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

// Package aiff provides functions for converting AIFF/AIFC audio.
package aiff

import (
	"github.com/pkg/errors"

	"github.com/ausocean/audiofile/codec/audioerr"
	"github.com/ausocean/audiofile/codec/chunk"
	"github.com/ausocean/audiofile/codec/extfloat80"
	"github.com/ausocean/audiofile/codec/sample"
)

// order is the byte order of every multi-byte field in an AIFF
// stream.
const order = chunk.Big

// noneCompression is the only AIFC compression identifier this
// library's reader accepts.
const noneCompression = "NONE"

// Metadata describes the format of an AIFF file, independent of its
// sample data.
type Metadata struct {
	Channels   int
	SampleRate uint32
	BitDepth   int
}

// Decoded holds the result of parsing an AIFF/AIFC stream: its format
// metadata, its planar sample buffer (Samples[channel][index]) and an
// optional iXML payload.
type Decoded[S sample.Type] struct {
	Metadata Metadata
	Samples  [][]S
	IXML     string
}

// allowedBitDepth reports whether d is one of the sample sizes this
// library reads and writes for AIFF. 32-bit AIFF is neither emitted
// nor read by this library.
func allowedBitDepth(d int) bool {
	switch d {
	case 8, 16, 24:
		return true
	default:
		return false
	}
}

// Parse decodes a complete AIFF or AIFC stream into a Decoded value
// carrying samples of type S.
func Parse[S sample.Type](data []byte) (Decoded[S], error) {
	var zero Decoded[S]

	if len(data) < 12 {
		return zero, errors.Wrap(audioerr.IO, "aiff: buffer shorter than minimum envelope")
	}
	form, _ := chunk.ReadTag(data, 0)
	if form != "FORM" {
		return zero, errors.Wrap(audioerr.UnknownFormat, "aiff: missing FORM signature")
	}
	kind, _ := chunk.ReadTag(data, 8)
	isAifc := kind == "AIFC"
	if kind != "AIFF" && !isAifc {
		return zero, errors.Wrap(audioerr.UnknownFormat, "aiff: missing AIFF/AIFC signature")
	}

	commOff, err := chunk.FindChunk(data, "COMM", 12, order)
	if err != nil {
		return zero, errors.Wrap(audioerr.MalformedChunk, "aiff: COMM chunk not found")
	}
	body := commOff + chunk.HeaderSize

	channels, err := chunk.ReadU16(data, body, order)
	if err != nil {
		return zero, errors.Wrap(audioerr.MalformedChunk, "aiff: truncated COMM chunk")
	}
	if channels == 0 {
		return zero, errors.Wrap(audioerr.MalformedChunk, "aiff: zero channels in COMM chunk")
	}
	// numSampleFrames at body+2 (4 bytes) duplicates the frame count
	// derivable from SSND's payload size; SSND is authoritative here,
	// matching the original AudioFile reader's behaviour.
	bitDepthField, err := chunk.ReadU16(data, body+6, order)
	if err != nil {
		return zero, errors.Wrap(audioerr.MalformedChunk, "aiff: truncated COMM chunk")
	}
	bitDepth := int(bitDepthField)
	if !allowedBitDepth(bitDepth) {
		return zero, errors.Wrapf(audioerr.UnsupportedEncoding, "aiff: unsupported bit depth %d", bitDepth)
	}
	if body+8+extfloat80.Size > len(data) {
		return zero, errors.Wrap(audioerr.MalformedChunk, "aiff: truncated COMM chunk")
	}
	sampleRate := extfloat80.Decode(data[body+8 : body+8+extfloat80.Size])

	if isAifc {
		compOff := body + 8 + extfloat80.Size
		comp, err := chunk.ReadTag(data, compOff)
		if err != nil {
			return zero, errors.Wrap(audioerr.MalformedChunk, "aiff: truncated AIFC compression identifier")
		}
		if comp != noneCompression {
			return zero, errors.Wrapf(audioerr.UnsupportedEncoding, "aiff: unsupported AIFC compression %q", comp)
		}
	}

	ssndOff, err := chunk.FindChunk(data, "SSND", 12, order)
	if err != nil {
		return zero, errors.Wrap(audioerr.MalformedChunk, "aiff: SSND chunk not found")
	}
	ssndSize, err := chunk.ReadU32(data, ssndOff+4, order)
	if err != nil {
		return zero, errors.Wrap(audioerr.MalformedChunk, "aiff: truncated SSND chunk")
	}
	if ssndSize < 8 {
		return zero, errors.Wrap(audioerr.MalformedChunk, "aiff: SSND payload shorter than its offset/blockSize header")
	}
	// The leading 8 bytes are (offset, blockSize); both are read then
	// ignored, as writers always emit zero for both.
	dataStart := ssndOff + chunk.HeaderSize + 8
	payload := int(ssndSize) - 8

	bytesPerSample := bitDepth / 8
	frameSize := int(channels) * bytesPerSample
	sampleCount := payload / frameSize

	samples := make([][]S, channels)
	for c := range samples {
		samples[c] = make([]S, sampleCount)
	}

	for i := 0; i < sampleCount; i++ {
		for c := 0; c < int(channels); c++ {
			off := dataStart + (i*int(channels)+c)*bytesPerSample
			switch bitDepth {
			case 8:
				if off >= len(data) {
					return zero, errors.Wrap(audioerr.MalformedChunk, "aiff: truncated sample data")
				}
				samples[c][i] = sample.FromSignedByte[S](int8(data[off]))
			case 16:
				v, err := chunk.ReadI16(data, off, order)
				if err != nil {
					return zero, errors.Wrap(audioerr.MalformedChunk, "aiff: truncated sample data")
				}
				samples[c][i] = sample.FromPacked[S](int32(v), 16)
			case 24:
				v, err := read24(data, off)
				if err != nil {
					return zero, errors.Wrap(audioerr.MalformedChunk, "aiff: truncated sample data")
				}
				samples[c][i] = sample.FromPacked[S](v, 24)
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
		Metadata: Metadata{Channels: int(channels), SampleRate: sampleRate, BitDepth: bitDepth},
		Samples:  samples,
		IXML:     ixml,
	}, nil
}

// Emit encodes a planar sample buffer and format metadata into a
// complete AIFF byte stream, optionally carrying an iXML chunk. The
// writer always emits the "AIFF" form type; AIFC is not produced.
func Emit[S sample.Type](md Metadata, samples [][]S, ixml string) ([]byte, error) {
	if !allowedBitDepth(md.BitDepth) {
		return nil, errors.Wrapf(audioerr.UnsupportedEncoding, "aiff: unsupported bit depth %d", md.BitDepth)
	}

	channels := len(samples)
	sampleCount := 0
	if channels > 0 {
		sampleCount = len(samples[0])
	}
	bytesPerSample := md.BitDepth / 8
	payload := channels * sampleCount * bytesPerSample

	buf := make([]byte, 0, 12+26+8+8+payload)
	buf = chunk.AppendString(buf, "FORM")
	buf = chunk.AppendU32(buf, 0, order) // size back-patched below
	buf = chunk.AppendString(buf, "AIFF")

	buf = chunk.AppendString(buf, "COMM")
	buf = chunk.AppendU32(buf, 18, order)
	buf = chunk.AppendU16(buf, uint16(channels), order)
	buf = chunk.AppendU32(buf, uint32(sampleCount), order)
	buf = chunk.AppendU16(buf, uint16(md.BitDepth), order)
	rate := extfloat80.Encode(md.SampleRate)
	buf = append(buf, rate[:]...)

	buf = chunk.AppendString(buf, "SSND")
	buf = chunk.AppendU32(buf, uint32(8+payload), order)
	buf = chunk.AppendU32(buf, 0, order) // offset
	buf = chunk.AppendU32(buf, 0, order) // blockSize
	dataStart := len(buf)
	buf = append(buf, make([]byte, payload)...)

	for i := 0; i < sampleCount; i++ {
		for c := 0; c < channels; c++ {
			off := dataStart + (i*channels+c)*bytesPerSample
			s := samples[c][i]
			switch md.BitDepth {
			case 8:
				buf[off] = byte(sample.ToSignedByte(s))
			case 16:
				chunk.WriteI16(buf, off, int16(sample.ToPacked(s, 16)), order)
			case 24:
				write24(buf, off, sample.ToPacked(s, 24))
			}
		}
	}
	if payload%2 != 0 {
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

// read24 reads a big-endian 24 bit sample at off into the low three
// bytes of a 32 bit accumulator, sign-extending bit 23.
func read24(data []byte, off int) (int32, error) {
	if off+3 > len(data) {
		return 0, audioerr.MalformedChunk
	}
	v := int32(data[off])<<16 | int32(data[off+1])<<8 | int32(data[off+2])
	if v&0x800000 != 0 {
		v |= ^int32(0xFFFFFF)
	}
	return v, nil
}

// write24 emits the three low-order bytes of v at off, big-endian.
func write24(dst []byte, off int, v int32) {
	dst[off] = byte(v >> 16)
	dst[off+1] = byte(v >> 8)
	dst[off+2] = byte(v)
}
