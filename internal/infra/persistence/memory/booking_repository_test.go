package memory

import (
	"context"
	"testing"
	"time"

	"studio/internal/domain/entity"
	domainerrors "studio/internal/domain/errors"
	"studio/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	fixed := time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC)
	store, err := NewStoreWithClock(func() time.Time { return fixed })
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func newBooking(userID string, status entity.BookingStatus) *entity.Booking {
	return &entity.Booking{
		UserID:       userID,
		UserName:     "Thandi",
		UserEmail:    "thandi@example.com",
		PackageID:    entity.PackageFull,
		Location:     entity.BookingLocation{Name: "Midrand", Province: "Gauteng", Lat: -25.9953, Lng: 28.1211},
		DistanceKm:   39.9,
		DistanceBand: "31-50km (Far Range)",
		Status:       status,
	}
}

func TestBookingRepository_CreateAndFind(t *testing.T) {
	repo := NewBookingRepository(newTestStore(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, newBooking("u1", entity.StatusPending))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.True(t, created.CreatedAt.Equal(created.LastUpdated))
	assert.Empty(t, created.PreferredDate)
	assert.Nil(t, created.QueuePosition)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Midrand", found.Location.Name)
	assert.InDelta(t, 28.1211, found.Location.Lng, 1e-9)
	assert.Equal(t, entity.PackageFull, found.PackageID)
	assert.Equal(t, entity.StatusPending, found.Status)
	assert.True(t, created.CreatedAt.Equal(found.CreatedAt))
}

func TestBookingRepository_FindByID_NotFound(t *testing.T) {
	repo := NewBookingRepository(newTestStore(t))

	_, err := repo.FindByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, domainerrors.ErrBookingNotFound))
}

func TestBookingRepository_ListNewestFirstWithFilters(t *testing.T) {
	repo := NewBookingRepository(newTestStore(t))
	ctx := context.Background()

	first, err := repo.Create(ctx, newBooking("u1", entity.StatusPending))
	require.NoError(t, err)
	second, err := repo.Create(ctx, newBooking("u2", entity.StatusPending))
	require.NoError(t, err)
	third, err := repo.Create(ctx, newBooking("u1", entity.StatusQueued))
	require.NoError(t, err)

	all, err := repo.List(ctx, entity.BookingQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{third.ID, second.ID, first.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	mine, err := repo.List(ctx, entity.BookingQuery{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, third.ID, mine[0].ID)

	queued, err := repo.List(ctx, entity.BookingQuery{UserID: "u1", Statuses: []entity.BookingStatus{entity.StatusQueued}})
	require.NoError(t, err)
	require.Len(t, queued, 1)
	assert.Equal(t, third.ID, queued[0].ID)
}

func TestBookingRepository_UpdateStampsLastUpdated(t *testing.T) {
	repo := NewBookingRepository(newTestStore(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, newBooking("u1", entity.StatusPending))
	require.NoError(t, err)

	queued := entity.StatusQueued
	position := 3
	updated, err := repo.Update(ctx, created.ID, entity.BookingChange{Status: &queued, QueuePosition: &position})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusQueued, updated.Status)
	require.NotNil(t, updated.QueuePosition)
	assert.Equal(t, 3, *updated.QueuePosition)
	assert.True(t, updated.LastUpdated.After(created.LastUpdated))
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))

	approved := entity.StatusApproved
	updated, err = repo.Update(ctx, created.ID, entity.BookingChange{Status: &approved})
	require.NoError(t, err)
	require.NotNil(t, updated.QueuePosition, "leaving queued keeps the stale position")
	assert.Equal(t, 3, *updated.QueuePosition)
}

func TestBookingRepository_Update_NotFound(t *testing.T) {
	repo := NewBookingRepository(newTestStore(t))

	cancelled := entity.StatusCancelled
	_, err := repo.Update(context.Background(), "missing", entity.BookingChange{Status: &cancelled})
	assert.True(t, errors.Is(err, domainerrors.ErrBookingNotFound))
}

func TestBookingRepository_SubscribeDeliversFullSnapshots(t *testing.T) {
	store := newTestStore(t)
	repo := NewBookingRepository(store)
	ctx, cancel := context.WithCancel(context.Background())

	snapshots := make(chan []*entity.Booking, 16)
	done := make(chan error, 1)
	go func() {
		done <- repo.Subscribe(ctx, entity.BookingQuery{UserID: "u1"}, func(b []*entity.Booking) {
			snapshots <- b
		})
	}()

	initial := <-snapshots
	assert.Empty(t, initial)

	_, err := repo.Create(context.Background(), newBooking("u1", entity.StatusPending))
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), newBooking("u1", entity.StatusPending))
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		for {
			select {
			case snap := <-snapshots:
				if len(snap) == 2 {
					return true
				}
			default:
				return false
			}
		}
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("subscribe did not return after cancel")
	}
	assert.Zero(t, store.bookingHub.size())
}
