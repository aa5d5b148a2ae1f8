package decoder

import (
	stdimage "image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/halvard/duplifind/core/infrastructure/hash"
	"github.com/halvard/duplifind/core/record"
)

// formatByExtension maps a lower-cased, dot-prefixed extension to the
// format tag the scorer and cache use. Extensions the default decoder has
// no codec for (RAW variants, HEIF/AVIF/JXL) still resolve to a tag, which
// Decode returns alongside ErrUnsupportedFormat.
var formatByExtension = map[string]record.FormatTag{
	".jpg":  record.FormatJPEG,
	".jpeg": record.FormatJPEG,
	".png":  record.FormatPNG,
	".gif":  record.FormatGIF,
	".bmp":  record.FormatBMP,
	".tiff": record.FormatTIFF,
	".tif":  record.FormatTIFF,
	".webp": record.FormatWEBP,
	".heic": record.FormatHEIF,
	".heif": record.FormatHEIF,
	".avif": record.FormatHEIF,
	".jxl":  record.FormatOTHER,
	".cr2":  record.FormatRAW,
	".nef":  record.FormatRAW,
	".arw":  record.FormatRAW,
	".dng":  record.FormatRAW,
	".raf":  record.FormatRAW,
	".orf":  record.FormatRAW,
	".rw2":  record.FormatRAW,
}

// decodableFormats is the subset of formatByExtension the default decoder
// can actually open and perceptually hash. RAW and HEIF-family formats
// require a codec outside this module's reach; callers that need them
// should supply their own Decoder implementation (§6 decoder capability).
var decodableFormats = map[record.FormatTag]bool{
	record.FormatJPEG: true,
	record.FormatPNG:  true,
	record.FormatGIF:  true,
	record.FormatBMP:  true,
	record.FormatTIFF: true,
	record.FormatWEBP: true,
}

// FormatTagForPath returns the format tag implied by a file's extension,
// defaulting to OTHER for anything unrecognized.
func FormatTagForPath(path string) record.FormatTag {
	ext := strings.ToLower(filepath.Ext(path))
	if tag, ok := formatByExtension[ext]; ok {
		return tag
	}
	return record.FormatOTHER
}

// Default decodes PNG, JPEG, GIF, BMP, TIFF, and WEBP via the standard
// library plus golang.org/x/image, and computes the perceptual hash through
// an injected hash.HashProvider (64-bit DCT-based PerceptionHash, matching
// §4.2 step 4).
type Default struct {
	hashes hash.HashProvider
}

// NewDefault creates the default decoder adapter, backed by
// hash.DefaultHashProvider.
func NewDefault() *Default {
	return &Default{hashes: hash.NewDefaultHashProvider()}
}

// NewDefaultWithHashProvider lets callers substitute a HashProvider (tests,
// alternative hash algorithms) while keeping the rest of the decode pipeline.
func NewDefaultWithHashProvider(hashes hash.HashProvider) *Default {
	return &Default{hashes: hashes}
}

// Decode implements Decoder.
func (d *Default) Decode(path string) (Result, error) {
	tag := FormatTagForPath(path)
	if !decodableFormats[tag] {
		return Result{FormatTag: tag}, ErrUnsupportedFormat
	}

	// #nosec G304 -- path is supplied by the caller's own file discovery walk
	f, err := os.Open(path)
	if err != nil {
		return Result{FormatTag: tag}, err
	}
	defer func() { _ = f.Close() }()

	img, bitDepth, err := decodeByTag(tag, f)
	if err != nil {
		return Result{FormatTag: tag}, err
	}

	imgHash, err := d.hashes.PerceptionHash(img)
	if err != nil {
		return Result{FormatTag: tag}, err
	}

	bounds := img.Bounds()
	return Result{
		Width:          bounds.Dx(),
		Height:         bounds.Dy(),
		BitDepth:       bitDepth,
		FormatTag:      tag,
		PerceptualHash: record.PerceptualHash(imgHash.GetHash()),
	}, nil
}

func decodeByTag(tag record.FormatTag, f *os.File) (stdimage.Image, int, error) {
	switch tag {
	case record.FormatJPEG:
		img, err := jpeg.Decode(f)
		return img, 8, err
	case record.FormatPNG:
		img, err := png.Decode(f)
		return img, bitDepthForModel(img), err
	case record.FormatGIF:
		img, err := gif.Decode(f)
		return img, 8, err
	case record.FormatBMP:
		img, err := bmp.Decode(f)
		return img, 8, err
	case record.FormatTIFF:
		img, err := tiff.Decode(f)
		return img, bitDepthForModel(img), err
	case record.FormatWEBP:
		img, err := webp.Decode(f)
		return img, 8, err
	default:
		return nil, 0, ErrUnsupportedFormat
	}
}

// bitDepthForModel reports 16 for color models that carry 16 bits per
// channel and 8 otherwise (the spec's documented default, §4.2 step 5).
func bitDepthForModel(img stdimage.Image) int {
	if img == nil {
		return 8
	}
	switch img.ColorModel() {
	case stdimage.Gray16Model, stdimage.RGBA64Model, stdimage.NRGBA64Model:
		return 16
	default:
		return 8
	}
}
