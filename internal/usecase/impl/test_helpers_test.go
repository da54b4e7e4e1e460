package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"studio/config"
	"studio/internal/domain/entity"
	"studio/internal/domain/repository"
	"studio/internal/infra/catalog"
	"studio/internal/infra/persistence/memory"
	mockSvc "studio/internal/mocks/service"

	"github.com/stretchr/testify/require"
)

var (
	client  = entity.Actor{UserID: "client-1", Name: "Thandi", Email: "thandi@example.com"}
	other   = entity.Actor{UserID: "client-2", Name: "Sipho", Email: "sipho@example.com"}
	admin   = entity.Actor{UserID: "admin-1", Name: "Studio", Email: "admin@studio.local", IsAdmin: true}
	testNow = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Auth:    &config.AuthConfig{AdminEmails: []string{" Admin@Studio.local "}},
		Storage: &config.StorageConfig{MaxUploadBytes: 1024},
	}
}

type bookingFixture struct {
	ctx       context.Context
	catalog   repository.CatalogRepository
	bookings  repository.BookingRepository
	messages  repository.MessageRepository
	users     repository.UserRepository
	publisher *mockSvc.MockEventPublisher
	qrcode    *mockSvc.MockQRCodeService
	service   *bookingService
	chat      *messageService
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	store, err := memory.NewStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cat, err := catalog.NewStaticCatalog()
	require.NoError(t, err)

	f := &bookingFixture{
		ctx:       context.Background(),
		catalog:   cat,
		bookings:  memory.NewBookingRepository(store),
		messages:  memory.NewMessageRepository(store),
		users:     memory.NewUserRepository(store),
		publisher: mockSvc.NewMockEventPublisher(t),
		qrcode:    mockSvc.NewMockQRCodeService(t),
	}

	svc := NewBookingService(newDiscardLogger(), f.catalog, f.bookings, f.publisher, f.qrcode).(*bookingService)
	svc.now = func() time.Time { return testNow }
	f.service = svc

	chat := NewMessageService(newDiscardLogger(), f.bookings, f.messages, f.publisher).(*messageService)
	chat.now = func() time.Time { return testNow }
	f.chat = chat

	return f
}

// seed stores a booking directly, bypassing creation rules.
func (f *bookingFixture) seed(t *testing.T, owner entity.Actor, status entity.BookingStatus) *entity.Booking {
	t.Helper()

	b, err := f.bookings.Create(f.ctx, &entity.Booking{
		UserID:       owner.UserID,
		UserName:     owner.Name,
		UserEmail:    owner.Email,
		PackageID:    entity.PackageFull,
		Location:     entity.BookingLocation{Name: "Midrand", Province: "Gauteng", Lat: -25.9953, Lng: 28.1211},
		DistanceKm:   39.9,
		DistanceBand: "31-50km (Far Range)",
		Status:       status,
	})
	require.NoError(t, err)

	return b
}

func intPtr(v int) *int {
	return &v
}
