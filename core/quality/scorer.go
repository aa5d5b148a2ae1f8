// Package quality implements C5: a deterministic quality score used to
// rank members within a duplicate group, plus the tie-break comparator
// that makes the ordering stable across runs (§4.5).
package quality

import (
	"github.com/halvard/duplifind/core/record"
)

// FormatPoints assigns the format-quality contribution to the score. RAW
// formats are assumed to carry the most recoverable detail; OTHER (a
// format the decoder couldn't classify) contributes nothing.
var FormatPoints = map[record.FormatTag]float64{
	record.FormatRAW:   20,
	record.FormatPNG:   17,
	record.FormatTIFF:  17,
	record.FormatWEBP:  12,
	record.FormatJPEG:  12,
	record.FormatHEIF:  12,
	record.FormatGIF:   5,
	record.FormatBMP:   10,
	record.FormatOTHER: 0,
}

// Score computes the deterministic [0, 110] quality score described in
// §4.5: resolution + file size + bit depth + format, each capped.
func Score(r record.ImageRecord) float64 {
	resolutionPts := min(50, float64(r.Width*r.Height)/1_000_000*2)
	filesizePts := min(30, float64(r.SizeBytes)/1_048_576*3)
	bitdepthPts := min(10, float64(r.BitDepth)/3.2)
	formatPts := FormatPoints[r.FormatTag]
	return resolutionPts + filesizePts + bitdepthPts + formatPts
}

// Less implements the strict tie-break order from §4.5: higher score first,
// then larger pixel count, then larger size, then higher bit depth, then
// lexicographically smaller path. It reports whether a sorts strictly
// before b (i.e. a should be ranked ahead of b).
func Less(a, b record.ImageRecord) bool {
	sa, sb := Score(a), Score(b)
	if sa != sb {
		return sa > sb
	}
	pa, pb := a.PixelCount(), b.PixelCount()
	if pa != pb {
		return pa > pb
	}
	if a.SizeBytes != b.SizeBytes {
		return a.SizeBytes > b.SizeBytes
	}
	if a.BitDepth != b.BitDepth {
		return a.BitDepth > b.BitDepth
	}
	return a.Path < b.Path
}

// SortMembers orders records in place per Less, placing the best
// representative (the group "head") at index 0.
func SortMembers(records []record.ImageRecord) {
	insertionSort(records)
}

// insertionSort is used instead of sort.Slice: group sizes are typically
// small (a handful of near-duplicates), so the simple, allocation-free
// pass is both fast enough and trivially stable.
func insertionSort(records []record.ImageRecord) {
	for i := 1; i < len(records); i++ {
		cur := records[i]
		j := i - 1
		for j >= 0 && Less(cur, records[j]) {
			records[j+1] = records[j]
			j--
		}
		records[j+1] = cur
	}
}
