package storage

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"strings"
	"testing"

	domainerrors "studio/internal/domain/errors"
	"studio/internal/errors"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func TestBlobStorage_PutReturnsPublicURL(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	store := NewBlobStorage(bucket, "https://media.studio.test/")
	ctx := context.Background()

	url, err := store.Put(ctx, "profile-pictures/uid-1", "image/jpeg", []byte("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://media.studio.test/profile-pictures/uid-1", url)

	data, contentType, err := store.Get(ctx, "profile-pictures/uid-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)
	assert.Equal(t, "image/jpeg", contentType)

	_, _, err = store.Get(ctx, "profile-pictures/missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestImageNormalizer_SquaresAndEncodesJPEG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 300, 120))
	for x := 0; x < 300; x++ {
		for y := 0; y < 120; y++ {
			src.Set(x, y, color.NRGBA{R: uint8(x % 256), G: 90, B: 160, A: 255})
		}
	}
	var png bytes.Buffer
	require.NoError(t, imaging.Encode(&png, src, imaging.PNG))

	out, contentType, err := NewImageNormalizer(64).Normalize(&png)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)

	decoded, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 64, decoded.Bounds().Dx())
	assert.Equal(t, 64, decoded.Bounds().Dy())
}

func TestImageNormalizer_RejectsNonImages(t *testing.T) {
	_, _, err := NewImageNormalizer(64).Normalize(strings.NewReader("definitely not an image"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidImage))
}

func TestImageNormalizer_RejectsOversizedDimensions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1)), imaging.PNG))

	// Rewrite the IHDR chunk to declare 10000x10000 pixels.
	data := buf.Bytes()
	require.Equal(t, "IHDR", string(data[12:16]))
	binary.BigEndian.PutUint32(data[16:20], 10000)
	binary.BigEndian.PutUint32(data[20:24], 10000)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 10000, cfg.Width)

	_, _, err = NewImageNormalizer(64).Normalize(bytes.NewReader(data))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidImage))
	assert.Contains(t, err.Error(), "10000x10000")
}
