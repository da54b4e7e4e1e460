package main

import (
	"context"
	"log/slog"
	"os"

	"studio/config"
	"studio/internal/delivery"
	"studio/internal/delivery/api"
	"studio/internal/delivery/api/middleware"
	"studio/internal/delivery/api/router/handler"
	"studio/internal/infra/auth"
	"studio/internal/infra/catalog"
	"studio/internal/infra/firebase"
	logs "studio/internal/infra/log"
	"studio/internal/infra/persistence"
	"studio/internal/infra/pubsub"
	"studio/internal/infra/qrcode"
	"studio/internal/infra/storage"
	"studio/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		persistence.Module,
		pubsub.Module,
		injectService(),
		injectUsecase(),
		injectMiddleware(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		firebase.NewAppProvider,
		catalog.NewStaticCatalog,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewIdentityVerifier,
			storage.New,
			qrcode.New,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewCatalogService,
			impl.NewBookingService,
			impl.NewMessageService,
			impl.NewProfileService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewRateLimiter,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewCatalogHandler,
			handler.NewBookingHandler,
			handler.NewMessageHandler,
			handler.NewProfileHandler,
			handler.NewStreamHandler,
			handler.NewMediaHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
