package service

import (
	"context"
	"io"
)

// ObjectStorage stores blobs and returns a URL they can be fetched from.
type ObjectStorage interface {
	Put(ctx context.Context, key, contentType string, data []byte) (url string, err error)
}

// ImageNormalizer decodes an uploaded image and re-encodes it for storage.
type ImageNormalizer interface {
	// Normalize returns the encoded image and its content type.
	Normalize(r io.Reader) ([]byte, string, error)
}
