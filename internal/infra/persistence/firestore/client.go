// Package firestore implements the repositories on Cloud Firestore, the
// portal's hosted document store.
package firestore

import (
	"context"
	"log/slog"

	"studio/config"
	"studio/internal/errors"
	"studio/internal/infra/firebase"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Client wraps the Firestore client with the configured collection names.
type Client struct {
	fs          *firestore.Client
	collections config.Collections
	logger      *slog.Logger
}

func NewClient(ctx context.Context, apps *firebase.AppProvider, cfg *config.Config, logger *slog.Logger) (*Client, error) {
	app, err := apps.App(ctx)
	if err != nil {
		return nil, err
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "create firestore client")
	}

	return &Client{fs: fs, collections: cfg.Store.Collections, logger: logger}, nil
}

func (c *Client) Close() error {
	return errors.WithStack(c.fs.Close())
}

func (c *Client) users() *firestore.CollectionRef {
	return c.fs.Collection(c.collections.Users)
}

func (c *Client) bookings() *firestore.CollectionRef {
	return c.fs.Collection(c.collections.Bookings)
}

func (c *Client) messages() *firestore.CollectionRef {
	return c.fs.Collection(c.collections.Messages)
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}

// watch runs a realtime query until ctx ends, handing every snapshot to fn.
func watch(ctx context.Context, q firestore.Query, fn func(docs []*firestore.DocumentSnapshot) error) error {
	iter := q.Snapshots(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err != nil {
			if ctx.Err() != nil || status.Code(err) == codes.Canceled {
				return nil
			}

			return errors.Wrap(err, "query snapshot")
		}

		docs, err := snap.Documents.GetAll()
		if err != nil {
			return errors.Wrap(err, "read snapshot documents")
		}
		if err := fn(docs); err != nil {
			return err
		}
	}
}
