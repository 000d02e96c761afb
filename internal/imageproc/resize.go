package imageproc

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrUnsupportedFormat is returned for images imaging cannot encode back.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Resized is an encoded, downscaled image.
type Resized struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

// FitWidth decodes an image and scales it down to width, keeping the aspect
// ratio. Images already narrower than width are re-encoded unchanged in size.
// The output format follows the file extension. GIFs are refused so
// animations are never flattened.
func FitWidth(r io.Reader, filename string, width int) (*Resized, error) {
	if width <= 0 {
		return nil, fmt.Errorf("invalid width %d", width)
	}
	format, err := imaging.FormatFromFilename(filename)
	if err != nil || format == imaging.GIF {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}

	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	var img image.Image = src
	if b := src.Bounds(); b.Dx() > width {
		img = imaging.Resize(src, width, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return &Resized{
		Data:        buf.Bytes(),
		ContentType: "image/" + strings.ToLower(format.String()),
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
	}, nil
}
