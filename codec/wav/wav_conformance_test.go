/*
NAME
  wav_conformance_test.go

DESCRIPTION
  wav_conformance_test.go cross-validates Emit's output against an
  independent decoder (github.com/go-audio/wav), so a bug shared
  between Parse and Emit that a round-trip test alone can't catch gets
  caught here.

AUTHOR
  David Sutton <davidsutton@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package wav

import (
	"bytes"
	"testing"

	goaudiowav "github.com/go-audio/wav"
)

func TestEmitConformsToIndependentDecoder(t *testing.T) {
	md := Metadata{Channels: 2, SampleRate: 44100, BitDepth: 16}
	in := planar(2, 512, func(c, i int) int16 { return int16((i*17 + c*9) % 20000) })

	data, err := Emit(md, in, "")
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	dec := goaudiowav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		t.Fatal("go-audio/wav rejected Emit's output as an invalid WAVE file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer() error = %v", err)
	}
	if int(dec.NumChans) != md.Channels {
		t.Errorf("NumChans = %d, want %d", dec.NumChans, md.Channels)
	}
	if int(dec.SampleRate) != int(md.SampleRate) {
		t.Errorf("SampleRate = %d, want %d", dec.SampleRate, md.SampleRate)
	}
	if int(dec.BitDepth) != md.BitDepth {
		t.Errorf("BitDepth = %d, want %d", dec.BitDepth, md.BitDepth)
	}

	channels := md.Channels
	samplesPerChannel := len(in[0])
	if len(buf.Data) != channels*samplesPerChannel {
		t.Fatalf("decoded frame count = %d, want %d", len(buf.Data), channels*samplesPerChannel)
	}
	for i := 0; i < samplesPerChannel; i++ {
		for c := 0; c < channels; c++ {
			want := int(in[c][i])
			got := buf.Data[i*channels+c]
			if got != want {
				t.Fatalf("sample[%d][%d] = %d, want %d", c, i, got, want)
			}
		}
	}
}
