// Package memory implements the repositories on gocloud's in-memory docstore.
// It backs local development and tests, and mirrors the Firestore
// implementation's ordering and snapshot behaviour.
package memory

import (
	"sync"
	"time"

	"studio/internal/errors"
	"studio/internal/infra/persistence/model"

	"gocloud.dev/docstore"
	"gocloud.dev/docstore/memdocstore"
)

// Store owns the collections and the change hubs shared by the repositories.
type Store struct {
	users    *docstore.Collection
	bookings *docstore.Collection
	messages *docstore.Collection

	bookingHub *hub
	messageHub *hub

	clockMu sync.Mutex
	now     func() time.Time
	last    time.Time
}

func NewStore() (*Store, error) {
	return NewStoreWithClock(time.Now)
}

// NewStoreWithClock lets tests control the timestamps the store assigns.
func NewStoreWithClock(now func() time.Time) (*Store, error) {
	users, err := memdocstore.OpenCollection(model.Key, nil)
	if err != nil {
		return nil, errors.Wrap(err, "open users collection")
	}
	bookings, err := memdocstore.OpenCollection(model.Key, nil)
	if err != nil {
		return nil, errors.Wrap(err, "open bookings collection")
	}
	messages, err := memdocstore.OpenCollection(model.Key, nil)
	if err != nil {
		return nil, errors.Wrap(err, "open messages collection")
	}

	return &Store{
		users:      users,
		bookings:   bookings,
		messages:   messages,
		bookingHub: newHub(),
		messageHub: newHub(),
		now:        now,
	}, nil
}

// timestamp plays the role of a server timestamp. Values are strictly
// increasing so creation order is never ambiguous.
func (s *Store) timestamp() time.Time {
	s.clockMu.Lock()
	defer s.clockMu.Unlock()

	t := s.now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t

	return t
}

func (s *Store) Close() error {
	return errors.Join(s.users.Close(), s.bookings.Close(), s.messages.Close())
}
