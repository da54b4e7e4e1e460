// Package storage keeps uploaded files in a gocloud blob bucket (memory,
// local directory or Google Cloud Storage, picked by URL scheme).
package storage

import (
	"context"
	"log/slog"
	"strings"

	"studio/config"
	domainerrors "studio/internal/domain/errors"
	"studio/internal/domain/service"
	"studio/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"
)

const cacheControl = "public, max-age=300"

type blobStorage struct {
	bucket  *blob.Bucket
	baseURL string
}

// NewBlobStorage wraps an open bucket. URLs are baseURL + "/" + key.
func NewBlobStorage(bucket *blob.Bucket, baseURL string) *blobStorage {
	return &blobStorage{bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *blobStorage) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	err := s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{
		ContentType:  contentType,
		CacheControl: cacheControl,
	})
	if err != nil {
		return "", errors.Wrapf(err, "write object %s", key)
	}

	return s.baseURL + "/" + key, nil
}

// Get reads an object back, used to serve media from non-public buckets.
func (s *blobStorage) Get(ctx context.Context, key string) ([]byte, string, error) {
	attrs, err := s.bucket.Attributes(ctx, key)
	if gcerrors.Code(err) == gcerrors.NotFound {
		return nil, "", domainerrors.ErrNotFound.WrapMessage(key)
	}
	if err != nil {
		return nil, "", errors.Wrapf(err, "stat object %s", key)
	}

	data, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		return nil, "", errors.Wrapf(err, "read object %s", key)
	}

	return data, attrs.ContentType, nil
}

type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

type Result struct {
	fx.Out

	Storage    service.ObjectStorage
	Media      MediaReader
	Normalizer service.ImageNormalizer
}

// MediaReader serves stored objects back over HTTP.
type MediaReader interface {
	Get(ctx context.Context, key string) ([]byte, string, error)
}

// New opens the configured bucket and closes it on shutdown.
func New(params Params) (Result, error) {
	cfg := params.Config.Storage

	bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
	if err != nil {
		return Result{}, errors.Wrapf(err, "open bucket %s", cfg.BucketURL)
	}
	params.Lc.Append(fx.StopHook(bucket.Close))

	params.Logger.Info("Object storage ready",
		slog.String("bucket_url", cfg.BucketURL),
		slog.String("public_base_url", cfg.PublicBaseURL),
	)

	store := NewBlobStorage(bucket, cfg.PublicBaseURL)

	return Result{
		Storage:    store,
		Media:      store,
		Normalizer: NewImageNormalizer(cfg.ProfileImageSize),
	}, nil
}
