package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/halvard/duplifind/core/record"
)

func TestScore_ComponentsCappedAndSummed(t *testing.T) {
	t.Parallel()

	r := record.ImageRecord{
		Width: 6000, Height: 5000, // 30 MP, past the 25 MP resolution cap
		SizeBytes: 50 * 1024 * 1024, // 50 MiB, well past the filesize cap
		BitDepth:  48,               // past the bit-depth cap
		FormatTag: record.FormatRAW,
	}
	assert.Equal(t, 50+30+10+20, int(Score(r)))
}

func TestScore_Uncapped(t *testing.T) {
	t.Parallel()

	r := record.ImageRecord{
		Width: 1000, Height: 1000, // 1 MP -> 2 pts
		SizeBytes: 1 << 20, // 1 MiB -> 3 pts
		BitDepth:  8,       // -> 2.5 pts
		FormatTag: record.FormatJPEG,
	}
	assert.InDelta(t, 2+3+2.5+12, Score(r), 0.0001)
}

func TestLess_TieBreakOrder(t *testing.T) {
	t.Parallel()

	// Every field below sits past its scoring cap (25 MP, 10 MiB, 32-bit
	// depth), so two records can differ on that field while their Score
	// still ties exactly — letting each tie-break clause be tested in
	// isolation.
	base := record.ImageRecord{
		Width: 5000, Height: 5000, SizeBytes: 20 << 20, BitDepth: 32, FormatTag: record.FormatJPEG,
	}

	// Tied score, bigger pixel count wins.
	bigger := base
	bigger.Width = 6000
	assert.Equal(t, Score(base), Score(bigger))
	assert.True(t, Less(bigger, base))
	assert.False(t, Less(base, bigger))

	// Tied score and pixel count, bigger file size wins.
	biggerFile := base
	biggerFile.SizeBytes = 30 << 20
	assert.Equal(t, Score(base), Score(biggerFile))
	assert.True(t, Less(biggerFile, base))

	// Tied score, pixel count, and size, higher bit depth wins.
	deeper := base
	deeper.BitDepth = 40
	assert.Equal(t, Score(base), Score(deeper))
	assert.True(t, Less(deeper, base))

	// Tied on everything measurable: lexicographically smaller path wins.
	a := base
	a.Path = "/a.jpg"
	b := base
	b.Path = "/b.jpg"
	assert.True(t, Less(a, b))
	assert.False(t, Less(b, a))
}

func TestSortMembers_Deterministic(t *testing.T) {
	t.Parallel()

	records := []record.ImageRecord{
		{Path: "/c.jpg", Width: 100, Height: 100, SizeBytes: 100, BitDepth: 8, FormatTag: record.FormatJPEG},
		{Path: "/a.jpg", Width: 100, Height: 100, SizeBytes: 100, BitDepth: 8, FormatTag: record.FormatJPEG},
		{Path: "/b.jpg", Width: 500, Height: 500, SizeBytes: 100, BitDepth: 8, FormatTag: record.FormatJPEG},
	}

	SortMembers(records)

	// /b.jpg has far more pixels, so it must lead; /a.jpg then /c.jpg break
	// the remaining tie by path.
	assert.Equal(t, []string{"/b.jpg", "/a.jpg", "/c.jpg"}, paths(records))
}

func TestSortMembers_StableAcrossRuns(t *testing.T) {
	t.Parallel()

	seed := []record.ImageRecord{
		{Path: "/z.jpg", Width: 1920, Height: 1080, SizeBytes: 2 << 20, BitDepth: 8, FormatTag: record.FormatPNG},
		{Path: "/y.jpg", Width: 1920, Height: 1080, SizeBytes: 2 << 20, BitDepth: 8, FormatTag: record.FormatPNG},
	}

	first := append([]record.ImageRecord(nil), seed...)
	second := append([]record.ImageRecord(nil), seed...)

	SortMembers(first)
	SortMembers(second)
	assert.Equal(t, paths(first), paths(second))
}

func paths(records []record.ImageRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Path
	}
	return out
}
