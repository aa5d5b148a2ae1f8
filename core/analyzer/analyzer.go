// Package analyzer implements C2: for one file path, compute a content
// hash, a perceptual hash, and quality metadata, producing an ImageRecord
// or ErrorRecord (§4.2).
package analyzer

import (
	"crypto/sha256"
	"io"
	"os"
	"time"

	"github.com/halvard/duplifind/core/decoder"
	"github.com/halvard/duplifind/core/record"
)

// chunkSize is the read buffer used while folding file contents into the
// SHA-256 state, bounding per-file memory regardless of file size.
const chunkSize = 1 << 20 // 1 MiB

// Analyzer computes ImageRecords for individual files. It is pure: given
// identical bytes and the same Decoder, Analyze is deterministic.
type Analyzer struct {
	decoder decoder.Decoder
}

// New creates an Analyzer backed by the given decoder capability.
func New(dec decoder.Decoder) *Analyzer {
	return &Analyzer{decoder: dec}
}

// Analyze runs the full per-file pipeline. When the returned ImageRecord's
// Path is empty, analysis failed before a content hash could be computed
// (an IO failure) and errRec is always non-nil in that case. When errRec is
// non-nil but the record's Path is set, the file hashed successfully but
// failed to decode: the record is a valid, phash-less partial suitable for
// exact-hash grouping (§4.2 step 3, §9).
func (a *Analyzer) Analyze(path string) (rec record.ImageRecord, errRec *record.ErrorRecord) {
	info, err := os.Stat(path)
	if err != nil {
		return record.ImageRecord{}, &record.ErrorRecord{Path: path, Kind: record.ErrorIO, Message: err.Error()}
	}

	contentHash, err := hashContents(path)
	if err != nil {
		return record.ImageRecord{}, &record.ErrorRecord{Path: path, Kind: record.ErrorIO, Message: err.Error()}
	}

	base := record.ImageRecord{
		Path:        path,
		SizeBytes:   info.Size(),
		ModTime:     info.ModTime(),
		ContentHash: contentHash,
		BitDepth:    8,
		FormatTag:   record.FormatOTHER,
	}

	result, decErr := a.decoder.Decode(path)
	if decErr != nil {
		// A partial record keeps FormatOTHER, whatever tag the decoder
		// reported alongside its error.
		base.AnalyzedAt = time.Now()
		return base, &record.ErrorRecord{Path: path, Kind: record.ErrorDecode, Message: decErr.Error()}
	}

	base.HasPHash = true
	base.PerceptualHash = result.PerceptualHash
	base.Width = result.Width
	base.Height = result.Height
	base.FormatTag = result.FormatTag
	if result.BitDepth > 0 {
		base.BitDepth = result.BitDepth
	}
	base.AnalyzedAt = time.Now()
	return base, nil
}

func hashContents(path string) (record.ContentHash, error) {
	var zero record.ContentHash

	// #nosec G304 -- path comes from the caller's own discovery walk
	f, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return zero, err
	}

	var out record.ContentHash
	copy(out[:], h.Sum(nil))
	return out, nil
}
