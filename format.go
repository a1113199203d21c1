/*
NAME
  format.go

DESCRIPTION
  format.go defines the container format identity an AudioObject can
  carry, and the signature sniff used by Load to pick a codec.

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

// Format identifies the container an AudioObject's bytes were parsed
// from, or will be emitted as.
type Format int

const (
	// NotLoaded is the format of a freshly constructed AudioObject, and
	// the state a failed Load/LoadFromMemory resets back to.
	NotLoaded Format = iota
	Wave
	Aiff
	Error
)

func (f Format) String() string {
	switch f {
	case NotLoaded:
		return "not loaded"
	case Wave:
		return "wave"
	case Aiff:
		return "aiff"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// sniff inspects the first 12 bytes of data and identifies the
// container format by its signature, without validating any chunk
// beyond the envelope. It returns Error if neither the WAVE nor the
// AIFF/AIFC signature matches.
func sniff(data []byte) Format {
	if len(data) < 12 {
		return Error
	}
	if string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE" {
		return Wave
	}
	if string(data[0:4]) == "FORM" {
		kind := string(data[8:12])
		if kind == "AIFF" || kind == "AIFC" {
			return Aiff
		}
	}
	return Error
}
