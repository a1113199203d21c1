/*
NAME
  object.go

DESCRIPTION
  object.go defines AudioObject, an in-memory, multi-channel, planar
  sample buffer together with its sample rate, bit depth, source
  format and an optional iXML metadata payload. AudioObject is the
  library's top level type: Load/LoadFromMemory parse a WAVE or AIFF
  stream into it, Save/SaveToMemory encode it back out.

AUTHOR
  David Sutton <davidsutton@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package audiofile reads and writes uncompressed WAVE and AIFF/AIFC
// audio files into a single in-memory representation, AudioObject.
package audiofile

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/ausocean/audiofile/codec/aiff"
	"github.com/ausocean/audiofile/codec/audioerr"
	"github.com/ausocean/audiofile/codec/sample"
	"github.com/ausocean/audiofile/codec/wav"
	"github.com/ausocean/utils/logging"
)

// defaultBitDepth is the bit depth a freshly constructed AudioObject
// carries before a Load or SetBitDepth call changes it.
const defaultBitDepth = 16

// AudioObject is a planar, multi-channel sample buffer together with
// the format metadata needed to round-trip it through WAVE or AIFF.
type AudioObject[S sample.Type] struct {
	// Samples is the planar sample buffer: Samples[channel][index].
	// Every channel is kept the same length; use SetAudioBuffer,
	// SetNumChannels or SetNumSamplesPerChannel to change shape instead
	// of mutating this slice directly.
	Samples [][]S

	// IXMLChunk is the optional iXML metadata payload, round-tripped
	// verbatim as opaque UTF-8 text.
	IXMLChunk string

	path       string
	sampleRate uint32
	bitDepth   int
	format     Format
	logger     logging.Logger
	logEnabled bool
}

// New returns an empty AudioObject: zero channels, a 16 bit depth, and
// format NotLoaded.
func New[S sample.Type]() *AudioObject[S] {
	return &AudioObject[S]{bitDepth: defaultBitDepth, format: NotLoaded, logger: noopLogger{}}
}

// NewFromFile constructs an AudioObject and immediately loads path
// into it. The returned bool mirrors what Load would return.
func NewFromFile[S sample.Type](path string) (*AudioObject[S], bool) {
	a := New[S]()
	return a, a.Load(path)
}

// ShouldLogErrorsToConsole toggles whether parse/encode/IO failures
// are reported to standard error. Enabling it without a prior
// SetLogger installs the default stderr logger.
func (a *AudioObject[S]) ShouldLogErrorsToConsole(enabled bool) {
	if enabled {
		if _, ok := a.logger.(noopLogger); ok || a.logger == nil {
			a.logger = newStderrLogger()
		}
	}
	a.logEnabled = enabled
}

// SetLogger installs a custom diagnostic sink, overriding the default
// stderr logger.
func (a *AudioObject[S]) SetLogger(l logging.Logger) {
	a.logger = l
	a.logEnabled = l != nil
}

func (a *AudioObject[S]) logError(format string, args ...interface{}) {
	if !a.logEnabled || a.logger == nil {
		return
	}
	a.logger.Error(fmt.Sprintf(format, args...))
}

// Load reads path and parses it as either a WAVE or an AIFF/AIFC
// stream, auto-detected from its signature. It returns false, leaving
// the object reset to its empty NotLoaded state, on any read or parse
// failure.
func (a *AudioObject[S]) Load(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		a.reset()
		a.logError("audiofile: could not read %q: %v", path, err)
		return false
	}
	ok := a.LoadFromMemory(data)
	if ok {
		a.path = path
	}
	return ok
}

// LoadFromMemory parses data as either a WAVE or an AIFF/AIFC stream,
// auto-detected from its signature. It returns false, leaving the
// object reset to its empty NotLoaded state, on any parse failure.
func (a *AudioObject[S]) LoadFromMemory(data []byte) bool {
	switch sniff(data) {
	case Wave:
		d, err := wav.Parse[S](data)
		if err != nil {
			a.reset()
			a.logError("audiofile: wav parse failed: %v", err)
			return false
		}
		a.Samples = d.Samples
		a.sampleRate = d.Metadata.SampleRate
		a.bitDepth = d.Metadata.BitDepth
		a.IXMLChunk = d.IXML
		a.format = Wave
		return true
	case Aiff:
		d, err := aiff.Parse[S](data)
		if err != nil {
			a.reset()
			a.logError("audiofile: aiff parse failed: %v", err)
			return false
		}
		a.Samples = d.Samples
		a.sampleRate = d.Metadata.SampleRate
		a.bitDepth = d.Metadata.BitDepth
		a.IXMLChunk = d.IXML
		a.format = Aiff
		return true
	default:
		a.reset()
		a.logError("audiofile: unrecognised container signature")
		return false
	}
}

// reset returns the object to its freshly constructed state, as
// required of every failed Load/LoadFromMemory call.
func (a *AudioObject[S]) reset() {
	a.Samples = nil
	a.sampleRate = 0
	a.bitDepth = defaultBitDepth
	a.format = NotLoaded
	a.IXMLChunk = ""
	a.path = ""
}

// Save encodes the object as format and writes it to path. It returns
// false on any encode or write failure; an encode failure leaves path
// untouched.
func (a *AudioObject[S]) Save(path string, format Format) bool {
	data, err := a.encode(format)
	if err != nil {
		a.logError("audiofile: encode failed: %v", err)
		return false
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		wrapped := errors.Wrapf(audioerr.WriteFailure, "audiofile: could not write %q: %v", path, err)
		a.logError("%v", wrapped)
		return false
	}
	a.path = path
	return true
}

// SaveToMemory encodes the object as format without touching the
// filesystem.
func (a *AudioObject[S]) SaveToMemory(format Format) ([]byte, error) {
	return a.encode(format)
}

func (a *AudioObject[S]) encode(format Format) ([]byte, error) {
	switch format {
	case Wave:
		md := wav.Metadata{Channels: len(a.Samples), SampleRate: a.sampleRate, BitDepth: a.bitDepth}
		return wav.Emit(md, a.Samples, a.IXMLChunk)
	case Aiff:
		md := aiff.Metadata{Channels: len(a.Samples), SampleRate: a.sampleRate, BitDepth: a.bitDepth}
		return aiff.Emit(md, a.Samples, a.IXMLChunk)
	default:
		return nil, errors.Wrapf(audioerr.UnsupportedEncoding, "audiofile: unknown save format %v", format)
	}
}

// GetSampleRate returns the sample rate in Hz.
func (a *AudioObject[S]) GetSampleRate() uint32 { return a.sampleRate }

// SetSampleRate sets the sample rate in Hz, used on the next Save.
func (a *AudioObject[S]) SetSampleRate(rate uint32) { a.sampleRate = rate }

// GetNumChannels returns the number of channels in the sample buffer.
func (a *AudioObject[S]) GetNumChannels() int { return len(a.Samples) }

// GetBitDepth returns the bit depth samples are packed at on disk.
func (a *AudioObject[S]) GetBitDepth() int { return a.bitDepth }

// SetBitDepth sets the bit depth samples will be packed at on the next
// Save. It returns false, leaving the bit depth unchanged, for any
// depth other than 8, 16, 24 or 32.
func (a *AudioObject[S]) SetBitDepth(depth int) bool {
	switch depth {
	case 8, 16, 24, 32:
		a.bitDepth = depth
		return true
	default:
		return false
	}
}

// GetNumSamplesPerChannel returns the length of each channel.
func (a *AudioObject[S]) GetNumSamplesPerChannel() int {
	if len(a.Samples) == 0 {
		return 0
	}
	return len(a.Samples[0])
}

// GetLengthInSeconds returns the buffer's duration, or 0 if the sample
// rate is unset.
func (a *AudioObject[S]) GetLengthInSeconds() float64 {
	if a.sampleRate == 0 {
		return 0
	}
	return float64(a.GetNumSamplesPerChannel()) / float64(a.sampleRate)
}

// IsMono reports whether the buffer has exactly one channel.
func (a *AudioObject[S]) IsMono() bool { return len(a.Samples) == 1 }

// IsStereo reports whether the buffer has exactly two channels.
func (a *AudioObject[S]) IsStereo() bool { return len(a.Samples) == 2 }

// Format reports the container the object was last loaded from, or
// NotLoaded.
func (a *AudioObject[S]) Format() Format { return a.format }

// Path returns the filesystem path of the last successful Load or
// Save call, or "" if the object was never loaded from or saved to a
// file.
func (a *AudioObject[S]) Path() string { return a.path }

// SetNumChannels resizes the buffer to n channels, preserving each
// retained channel's existing length. New channels are zero filled;
// removed channels are discarded.
func (a *AudioObject[S]) SetNumChannels(n int) {
	a.SetAudioBufferSize(n, a.GetNumSamplesPerChannel())
}

// SetNumSamplesPerChannel resizes every channel to n samples,
// truncating or zero extending as needed.
func (a *AudioObject[S]) SetNumSamplesPerChannel(n int) {
	a.SetAudioBufferSize(len(a.Samples), n)
}

// SetAudioBufferSize resizes the buffer to the given channel count and
// samples per channel in one step, preserving overlapping data and
// zero filling the rest. Negative arguments are treated as zero.
func (a *AudioObject[S]) SetAudioBufferSize(channels, samplesPerChannel int) {
	if channels < 0 {
		channels = 0
	}
	if samplesPerChannel < 0 {
		samplesPerChannel = 0
	}
	next := make([][]S, channels)
	for c := range next {
		next[c] = make([]S, samplesPerChannel)
		if c < len(a.Samples) {
			copy(next[c], a.Samples[c])
		}
	}
	a.Samples = next
}

// SetAudioBuffer replaces the sample buffer wholesale. A
// non-rectangular buffer — channels of differing length — is rejected
// outright rather than silently copied: it returns ErrShapeMismatch
// and leaves the existing buffer untouched.
func (a *AudioObject[S]) SetAudioBuffer(buf [][]S) error {
	if len(buf) > 0 {
		n := len(buf[0])
		for _, ch := range buf {
			if len(ch) != n {
				return errors.Wrap(audioerr.ShapeMismatch, "audiofile: channels have differing lengths")
			}
		}
	}
	a.Samples = buf
	return nil
}

// PrintSummary writes a short, human readable description of the
// object's path, format, shape and duration to standard output.
func (a *AudioObject[S]) PrintSummary() {
	fmt.Print(a.summary())
}

func (a *AudioObject[S]) summary() string {
	path := a.path
	if path == "" {
		path = "(unset)"
	}
	return fmt.Sprintf(
		"path: %s\nformat: %s\nchannels: %d\nsamples/channel: %d\nsample rate: %d Hz\nbit depth: %d\nlength: %.3fs\n",
		path, a.format, a.GetNumChannels(), a.GetNumSamplesPerChannel(), a.sampleRate, a.bitDepth, a.GetLengthInSeconds(),
	)
}
