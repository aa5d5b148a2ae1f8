// Package decoder defines the external decoder capability the analyzer
// depends on, plus a default adapter. The capability contract is owned by
// the core (§6 of the spec this module implements): given a path, return
// pixel dimensions, bit depth, format tag, and a perceptual hash, or a
// decode error. The pixel-level decoding and the perceptual hash math
// themselves are treated as an external, swappable concern.
package decoder

import (
	"errors"

	"github.com/halvard/duplifind/core/record"
)

// ErrUnsupportedFormat is returned when the decoder recognizes the file
// extension but has no registered codec for it.
var ErrUnsupportedFormat = errors.New("decoder: unsupported image format")

// Result is the decoder's successful output for one file.
type Result struct {
	Width          int
	Height         int
	BitDepth       int
	FormatTag      record.FormatTag
	PerceptualHash record.PerceptualHash
}

// Decoder is the capability the analyzer calls once per cache miss. A
// decode failure (corrupt data, unsupported format, truncated stream) is
// reported as an error; the analyzer is responsible for turning that into
// the appropriate ErrorRecord classification.
type Decoder interface {
	Decode(path string) (Result, error)
}
