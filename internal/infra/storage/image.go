package storage

import (
	"bytes"
	"fmt"
	"image"
	"io"

	domainerrors "studio/internal/domain/errors"
	"studio/internal/errors"

	"github.com/disintegration/imaging"
)

const (
	jpegQuality     = 85
	jpegContentType = "image/jpeg"

	// maxImagePixels bounds the decoded size of an upload, checked from the
	// header before decoding.
	maxImagePixels = 40_000_000
)

// imageNormalizer crops uploads to a centered square and re-encodes them as
// JPEG, dropping EXIF data after applying its orientation.
type imageNormalizer struct {
	size int
}

func NewImageNormalizer(size int) *imageNormalizer {
	return &imageNormalizer{size: size}
}

func (n *imageNormalizer) Normalize(r io.Reader) ([]byte, string, error) {
	var header bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &header))
	if err != nil {
		return nil, "", errors.Wrap(domainerrors.ErrInvalidImage, err.Error())
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > maxImagePixels {
		return nil, "", errors.Wrap(domainerrors.ErrInvalidImage, fmt.Sprintf("image is %dx%d pixels", cfg.Width, cfg.Height))
	}

	img, err := imaging.Decode(io.MultiReader(&header, r), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", errors.Wrap(domainerrors.ErrInvalidImage, err.Error())
	}

	square := imaging.Fill(img, n.size, n.size, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, square, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, "", errors.Wrap(err, "encode profile image")
	}

	return buf.Bytes(), jpegContentType, nil
}
