/*
NAME
  object_test.go

DESCRIPTION
  object_test.go provides testing for functionality found in object.go,
  format.go, errors.go and logging.go.

AUTHOR
  David Sutton <davidsutton@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package audiofile

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ausocean/audiofile/codec/aiff"
	"github.com/ausocean/audiofile/codec/wav"
)

func fill(channels, samples int) [][]int16 {
	out := make([][]int16, channels)
	for c := range out {
		out[c] = make([]int16, samples)
		for i := range out[c] {
			out[c][i] = int16((i*31 + c*7) % 4000)
		}
	}
	return out
}

func TestNewIsEmptyAndNotLoaded(t *testing.T) {
	a := New[int16]()
	if a.Format() != NotLoaded {
		t.Errorf("Format() = %v, want NotLoaded", a.Format())
	}
	if a.GetNumChannels() != 0 || a.GetNumSamplesPerChannel() != 0 {
		t.Errorf("new object is not empty: channels=%d samples=%d", a.GetNumChannels(), a.GetNumSamplesPerChannel())
	}
	if a.GetBitDepth() != defaultBitDepth {
		t.Errorf("GetBitDepth() = %d, want %d", a.GetBitDepth(), defaultBitDepth)
	}
}

func TestWaveSaveLoadRoundTrip(t *testing.T) {
	a := New[int16]()
	if err := a.SetAudioBuffer(fill(2, 500)); err != nil {
		t.Fatalf("SetAudioBuffer() error = %v", err)
	}
	a.SetSampleRate(44100)
	a.SetBitDepth(16)
	a.IXMLChunk = "<BWFXML/>"

	path := filepath.Join(t.TempDir(), "out.wav")
	if ok := a.Save(path, Wave); !ok {
		t.Fatalf("Save() = false")
	}

	b := New[int16]()
	b.ShouldLogErrorsToConsole(true)
	if ok := b.Load(path); !ok {
		t.Fatalf("Load() = false")
	}
	if b.Format() != Wave {
		t.Errorf("Format() = %v, want Wave", b.Format())
	}
	if b.GetSampleRate() != 44100 {
		t.Errorf("GetSampleRate() = %v, want 44100", b.GetSampleRate())
	}
	if b.GetNumChannels() != 2 || b.GetNumSamplesPerChannel() != 500 {
		t.Errorf("shape = %dx%d, want 2x500", b.GetNumChannels(), b.GetNumSamplesPerChannel())
	}
	if b.IXMLChunk != a.IXMLChunk {
		t.Errorf("IXMLChunk = %q, want %q", b.IXMLChunk, a.IXMLChunk)
	}
	if b.Path() != path {
		t.Errorf("Path() = %q, want %q", b.Path(), path)
	}
}

func TestAiffSaveLoadRoundTrip(t *testing.T) {
	a := New[int16]()
	if err := a.SetAudioBuffer(fill(1, 300)); err != nil {
		t.Fatalf("SetAudioBuffer() error = %v", err)
	}
	a.SetSampleRate(48000)
	a.SetBitDepth(24)

	path := filepath.Join(t.TempDir(), "out.aiff")
	if ok := a.Save(path, Aiff); !ok {
		t.Fatalf("Save() = false")
	}

	b := New[int16]()
	if ok := b.Load(path); !ok {
		t.Fatalf("Load() = false")
	}
	if b.Format() != Aiff {
		t.Errorf("Format() = %v, want Aiff", b.Format())
	}
	if b.IsMono() != true {
		t.Errorf("IsMono() = false, want true")
	}
	if b.GetLengthInSeconds() <= 0 {
		t.Errorf("GetLengthInSeconds() = %v, want > 0", b.GetLengthInSeconds())
	}
}

func TestLoadFailureResetsToNotLoaded(t *testing.T) {
	a := New[int16]()
	if err := a.SetAudioBuffer(fill(1, 10)); err != nil {
		t.Fatalf("SetAudioBuffer() error = %v", err)
	}
	a.format = Wave // simulate a prior successful load

	if ok := a.LoadFromMemory([]byte("not an audio file at all")); ok {
		t.Fatal("LoadFromMemory() = true, want false")
	}
	if a.Format() != NotLoaded {
		t.Errorf("Format() = %v, want NotLoaded after failed load", a.Format())
	}
	if a.GetNumChannels() != 0 {
		t.Errorf("GetNumChannels() = %d, want 0 after failed load", a.GetNumChannels())
	}
}

func TestLoadMissingFile(t *testing.T) {
	a := New[int16]()
	if ok := a.Load(filepath.Join(t.TempDir(), "does-not-exist.wav")); ok {
		t.Fatal("Load() = true, want false for missing file")
	}
}

func TestSetAudioBufferRejectsNonRectangular(t *testing.T) {
	a := New[int16]()
	bad := [][]int16{
		{1, 2, 3},
		{1, 2},
	}
	err := a.SetAudioBuffer(bad)
	if err == nil {
		t.Fatal("SetAudioBuffer() error = nil, want ErrShapeMismatch")
	}
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("SetAudioBuffer() error = %v, want ErrShapeMismatch", err)
	}
	if a.Samples != nil {
		t.Error("SetAudioBuffer() mutated buffer on rejection")
	}
}

func TestSetAudioBufferSizeGrowsAndShrinks(t *testing.T) {
	a := New[int16]()
	if err := a.SetAudioBuffer(fill(2, 10)); err != nil {
		t.Fatalf("SetAudioBuffer() error = %v", err)
	}

	a.SetNumChannels(3)
	if a.GetNumChannels() != 3 {
		t.Fatalf("GetNumChannels() = %d, want 3", a.GetNumChannels())
	}
	for _, s := range a.Samples[2] {
		if s != 0 {
			t.Fatalf("new channel not zero filled: %v", a.Samples[2])
		}
	}

	a.SetNumSamplesPerChannel(5)
	for c, ch := range a.Samples {
		if len(ch) != 5 {
			t.Fatalf("channel %d length = %d, want 5", c, len(ch))
		}
	}
	if a.Samples[0][0] != fill(2, 10)[0][0] {
		t.Errorf("truncation lost retained data: got %v", a.Samples[0][0])
	}
}

func TestSetBitDepthRejectsUnsupported(t *testing.T) {
	a := New[int16]()
	if ok := a.SetBitDepth(20); ok {
		t.Fatal("SetBitDepth(20) = true, want false")
	}
	if a.GetBitDepth() != defaultBitDepth {
		t.Errorf("GetBitDepth() = %d, want unchanged %d", a.GetBitDepth(), defaultBitDepth)
	}
}

func TestSaveUnknownFormat(t *testing.T) {
	a := New[int16]()
	if err := a.SetAudioBuffer(fill(1, 4)); err != nil {
		t.Fatalf("SetAudioBuffer() error = %v", err)
	}
	if ok := a.Save(filepath.Join(t.TempDir(), "x"), NotLoaded); ok {
		t.Fatal("Save() = true, want false for unknown format")
	}
}

func TestWaveErrorKindsMatchUnderlyingFailures(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want error
	}{
		{"too short", []byte("RI"), ErrIO},
		{"bad signature", []byte("RIFF\x00\x00\x00\x00WAVX"), ErrUnknownFormat},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := wav.Parse[int16](c.data)
			if !errors.Is(err, c.want) {
				t.Errorf("wav.Parse() error = %v, want %v", err, c.want)
			}
		})
	}
}

func TestAiffErrorKindsMatchUnderlyingFailures(t *testing.T) {
	_, err := aiff.Parse[int16]([]byte("NOTAFORM....AIFF"))
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("aiff.Parse() error = %v, want ErrUnknownFormat", err)
	}
}

func TestShapeMismatchIsErrShapeMismatch(t *testing.T) {
	a := New[int16]()
	err := a.SetAudioBuffer([][]int16{{1, 2}, {1}})
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("SetAudioBuffer() error = %v, want ErrShapeMismatch", err)
	}
}

func TestPrintSummaryDoesNotPanic(t *testing.T) {
	a := New[int16]()
	if err := a.SetAudioBuffer(fill(1, 4)); err != nil {
		t.Fatalf("SetAudioBuffer() error = %v", err)
	}
	a.PrintSummary()
}
