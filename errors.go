/*
NAME
  errors.go

DESCRIPTION
  errors.go re-exposes the sentinel error kinds shared by codec/wav and
  codec/aiff, so callers can test AudioObject failures with
  errors.Is(err, audiofile.ErrX) without importing codec/audioerr
  directly.

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

import "github.com/ausocean/audiofile/codec/audioerr"

var (
	ErrIO                  = audioerr.IO
	ErrUnknownFormat       = audioerr.UnknownFormat
	ErrMalformedChunk      = audioerr.MalformedChunk
	ErrUnsupportedEncoding = audioerr.UnsupportedEncoding
	ErrShapeMismatch       = audioerr.ShapeMismatch
	ErrWriteFailure        = audioerr.WriteFailure
)
