// Package persistence selects the document store backing the repositories.
package persistence

import (
	"context"
	"log/slog"

	"studio/config"
	"studio/internal/domain/constants"
	"studio/internal/domain/repository"
	"studio/internal/errors"
	"studio/internal/infra/firebase"
	"studio/internal/infra/persistence/firestore"
	"studio/internal/infra/persistence/memory"

	"go.uber.org/fx"
)

type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
	Apps   *firebase.AppProvider
}

type Repositories struct {
	fx.Out

	Users    repository.UserRepository
	Bookings repository.BookingRepository
	Messages repository.MessageRepository
}

// NewRepositories builds every repository on the configured store and closes
// the store on shutdown.
func NewRepositories(params Params) (Repositories, error) {
	provider := params.Config.Store.Provider
	logger := params.Logger.With(slog.String("store", provider))

	switch provider {
	case constants.StoreProviderMemory:
		store, err := memory.NewStore()
		if err != nil {
			return Repositories{}, err
		}
		logger.Warn("Using in-memory document store, data is lost on restart")
		params.Lc.Append(fx.StopHook(store.Close))

		return Repositories{
			Users:    memory.NewUserRepository(store),
			Bookings: memory.NewBookingRepository(store),
			Messages: memory.NewMessageRepository(store),
		}, nil

	case constants.StoreProviderFirestore:
		client, err := firestore.NewClient(params.Ctx, params.Apps, params.Config, logger)
		if err != nil {
			return Repositories{}, err
		}
		logger.Info("Using Firestore document store")
		params.Lc.Append(fx.StopHook(client.Close))

		return Repositories{
			Users:    firestore.NewUserRepository(client),
			Bookings: firestore.NewBookingRepository(client),
			Messages: firestore.NewMessageRepository(client),
		}, nil

	default:
		return Repositories{}, errors.Errorf("unknown store provider: %s", provider)
	}
}

// Module provides the repositories.
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewRepositories),
)
