package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvard/duplifind/core/decoder"
	"github.com/halvard/duplifind/core/record"
)

type stubDecoder struct {
	result decoder.Result
	err    error
}

func (s stubDecoder) Decode(string) (decoder.Result, error) {
	return s.result, s.err
}

func TestAnalyze_Success(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.jpg")
	require.NoError(t, os.WriteFile(path, []byte("fake jpeg bytes"), 0o600))

	dec := stubDecoder{result: decoder.Result{
		Width: 800, Height: 600, BitDepth: 8, FormatTag: record.FormatJPEG, PerceptualHash: 0xCAFE,
	}}
	rec, errRec := New(dec).Analyze(path)

	require.Nil(t, errRec)
	assert.Equal(t, path, rec.Path)
	assert.True(t, rec.HasPHash)
	assert.Equal(t, record.PerceptualHash(0xCAFE), rec.PerceptualHash)
	assert.Equal(t, 800, rec.Width)
	assert.Equal(t, 600, rec.Height)
	assert.NotZero(t, rec.ContentHash)
}

func TestAnalyze_Deterministic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.jpg")
	require.NoError(t, os.WriteFile(path, []byte("identical bytes"), 0o600))

	dec := stubDecoder{result: decoder.Result{Width: 10, Height: 10, FormatTag: record.FormatJPEG}}
	a := New(dec)

	rec1, _ := a.Analyze(path)
	rec2, _ := a.Analyze(path)
	assert.Equal(t, rec1.ContentHash, rec2.ContentHash)
}

func TestAnalyze_StatFailure(t *testing.T) {
	t.Parallel()

	rec, errRec := New(stubDecoder{}).Analyze("/nonexistent/path/x.jpg")

	require.NotNil(t, errRec)
	assert.Equal(t, record.ErrorIO, errRec.Kind)
	assert.Empty(t, rec.Path, "IO failure before a content hash must leave the record empty")
}

func TestAnalyze_DecodeFailureKeepsPartialRecordForExactGrouping(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "broken.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not really a jpeg"), 0o600))

	dec := stubDecoder{result: decoder.Result{FormatTag: record.FormatOTHER}, err: decoder.ErrUnsupportedFormat}
	rec, errRec := New(dec).Analyze(path)

	require.NotNil(t, errRec)
	assert.Equal(t, record.ErrorDecode, errRec.Kind)
	assert.NotEmpty(t, rec.Path, "a hashable-but-undecodable file keeps its content hash for exact grouping")
	assert.False(t, rec.HasPHash)
	assert.NotZero(t, rec.ContentHash)
}

func TestAnalyze_DefaultBitDepthWhenDecoderOmitsIt(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))

	dec := stubDecoder{result: decoder.Result{Width: 1, Height: 1, FormatTag: record.FormatPNG}}
	rec, errRec := New(dec).Analyze(path)

	require.Nil(t, errRec)
	assert.Equal(t, 8, rec.BitDepth, "bit depth defaults to 8 when unknown (§4.2 step 5)")
}
