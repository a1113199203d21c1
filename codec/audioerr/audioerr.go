/*
NAME
  audioerr.go

DESCRIPTION
  audioerr.go defines the shared error kinds returned by the codec
  layer, so that callers can distinguish them with errors.Is regardless
  of which container format produced them.

AUTHOR
  David Sutton <davidsutton@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package audioerr defines the sentinel error kinds shared by the WAVE
// and AIFF codecs and by the top-level AudioObject.
package audioerr

import "github.com/pkg/errors"

// Error kinds. Codec packages wrap one of these with contextual detail
// via github.com/pkg/errors so errors.Is still matches the kind.
var (
	// IO indicates the source could not be opened or read, or was
	// shorter than the minimum envelope (12 bytes).
	IO = errors.New("io error")

	// UnknownFormat indicates the first 12 bytes match neither the
	// WAVE nor the AIFF signature.
	UnknownFormat = errors.New("unknown format")

	// MalformedChunk indicates a required chunk is missing, or a
	// chunk's declared size exceeds the remaining bytes.
	MalformedChunk = errors.New("malformed chunk")

	// UnsupportedEncoding indicates an audio format code, compression
	// identifier or bit depth outside what this library supports.
	UnsupportedEncoding = errors.New("unsupported encoding")

	// ShapeMismatch indicates a non-rectangular buffer was rejected by
	// AudioObject.SetAudioBuffer.
	ShapeMismatch = errors.New("shape mismatch")

	// WriteFailure indicates the target path could not be written.
	WriteFailure = errors.New("write failure")
)
