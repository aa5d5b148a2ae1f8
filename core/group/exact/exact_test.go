package exact

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/halvard/duplifind/core/record"
)

func hashOf(b byte) record.ContentHash {
	var h record.ContentHash
	h[0] = b
	return h
}

func TestBuild_GroupsByContentHash(t *testing.T) {
	t.Parallel()

	records := []record.ImageRecord{
		{Path: "/a.jpg", ContentHash: hashOf(1), SizeBytes: 100, FormatTag: record.FormatJPEG, BitDepth: 8},
		{Path: "/b.jpg", ContentHash: hashOf(1), SizeBytes: 100, FormatTag: record.FormatJPEG, BitDepth: 8},
		{Path: "/c.jpg", ContentHash: hashOf(2), SizeBytes: 200, FormatTag: record.FormatJPEG, BitDepth: 8},
	}

	result := Build(records)

	assert.Len(t, result.Groups, 1)
	assert.ElementsMatch(t, []string{"/a.jpg", "/b.jpg"}, []string{
		result.Groups[0].Members[0].Path, result.Groups[0].Members[1].Path,
	})
	assert.True(t, result.MemberPaths["/a.jpg"])
	assert.True(t, result.MemberPaths["/b.jpg"])
	assert.False(t, result.MemberPaths["/c.jpg"])
}

func TestBuild_SingletonsNeverEmitted(t *testing.T) {
	t.Parallel()

	records := []record.ImageRecord{
		{Path: "/a.jpg", ContentHash: hashOf(1)},
		{Path: "/b.jpg", ContentHash: hashOf(2)},
	}

	result := Build(records)
	assert.Empty(t, result.Groups)
	assert.Empty(t, result.MemberPaths)
}

func TestBuild_PotentialSavingsExcludesHead(t *testing.T) {
	t.Parallel()

	// b.jpg outranks a.jpg on size alone (both JPEG, 8-bit, same pixels).
	records := []record.ImageRecord{
		{Path: "/a.jpg", ContentHash: hashOf(9), Width: 10, Height: 10, SizeBytes: 50, BitDepth: 8, FormatTag: record.FormatJPEG},
		{Path: "/b.jpg", ContentHash: hashOf(9), Width: 10, Height: 10, SizeBytes: 500, BitDepth: 8, FormatTag: record.FormatJPEG},
	}

	result := Build(records)
	assert.Len(t, result.Groups, 1)
	g := result.Groups[0]
	assert.Equal(t, "/b.jpg", g.Members[0].Path, "larger file should rank ahead on quality")
	assert.Equal(t, int64(50), g.PotentialSavingsBytes)
}

func TestBuild_GroupOrderDeterministicBySmallestMemberPath(t *testing.T) {
	t.Parallel()

	records := []record.ImageRecord{
		{Path: "/z1.jpg", ContentHash: hashOf(1), SizeBytes: 1},
		{Path: "/z2.jpg", ContentHash: hashOf(1), SizeBytes: 1},
		{Path: "/a1.jpg", ContentHash: hashOf(2), SizeBytes: 1},
		{Path: "/a2.jpg", ContentHash: hashOf(2), SizeBytes: 1},
	}

	result := Build(records)
	assert.Len(t, result.Groups, 2)
	assert.Equal(t, "/a1.jpg", result.Groups[0].Members[0].Path)
	assert.Equal(t, "/z1.jpg", result.Groups[1].Members[0].Path)
}
