package main

import (
	"context"
	"log/slog"
	"os"

	"canteen/config"
	"canteen/internal/delivery"
	"canteen/internal/delivery/api"
	"canteen/internal/delivery/api/middleware"
	"canteen/internal/delivery/api/router/handler"
	"canteen/internal/domain/repository"
	"canteen/internal/domain/service"
	"canteen/internal/infra/auth"
	logs "canteen/internal/infra/log"
	"canteen/internal/infra/metrics"
	"canteen/internal/infra/persistence/memory"
	"canteen/internal/infra/persistence/postgres"
	"canteen/internal/infra/pubsub"
	"canteen/internal/infra/qrcode"
	"canteen/internal/infra/realtime"
	"canteen/internal/infra/seed"
	"canteen/internal/usecase"
	"canteen/internal/usecase/impl"

	"github.com/pkg/errors"
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
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startChangeListener,
			seedMemoryMenu,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newTransactionManager,
		),
	)
}

type storageParams struct {
	fx.In
	fx.Lifecycle

	Config   *config.Config
	Logger   *slog.Logger
	Recorder *metrics.Recorder
}

// newTransactionManager selects the store from storage.driver
func newTransactionManager(params storageParams) (repository.TransactionManager, error) {
	switch params.Config.Storage.Driver {
	case config.StorageDriverMemory:
		params.Logger.Warn("Using in-memory storage, data is lost on restart")

		return memory.NewTransactionManager(memory.NewStore()), nil

	case config.StorageDriverPostgres:
		pgParams := postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		}
		if cfg := params.Config.Metrics; cfg != nil && cfg.Enabled {
			pgParams.Registerer = params.Recorder.Registry()
		}
		db, err := postgres.New(pgParams)
		if err != nil {
			return nil, err
		}

		return postgres.NewTransactionManager(db), nil

	default:
		return nil, errors.Errorf("unknown storage driver: %s", params.Config.Storage.Driver)
	}
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			newQRCodeService,
			realtime.NewBroker,
			realtime.NewChangeFeed,
			realtime.NewListener,
			metrics.NewRecorder,
			metrics.NewMetrics,
		),
		pubsub.Module,
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewOrderService,
			impl.NewNotificationService,
			impl.NewMenuService,
			impl.NewProfileService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewMenuHandler,
			handler.NewProfileHandler,
			handler.NewOrderHandler,
			handler.NewNotificationHandler,
			handler.NewRealtimeHandler,
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

// startChangeListener forces the LISTEN loop to be built; it is nil unless
// realtime.source is postgres.
func startChangeListener(listener *realtime.Listener, logger *slog.Logger) {
	if listener != nil {
		logger.Info("Realtime change feed sourced from PostgreSQL")
	}
}

// seedMemoryMenu loads storage.seedMenu into the in-memory store.
func seedMemoryMenu(ctx context.Context, cfg *config.Config, menuUC usecase.MenuUsecase, logger *slog.Logger) error {
	if cfg.Storage.Driver != config.StorageDriverMemory || cfg.Storage.SeedMenu == "" {
		return nil
	}

	items, err := seed.LoadMenuFile(cfg.Storage.SeedMenu)
	if err != nil {
		return err
	}
	if err := menuUC.UpsertItems(ctx, items); err != nil {
		return errors.Wrap(err, "failed to seed menu")
	}

	logger.Info("Seeded in-memory menu", slog.Int("items", len(items)))

	return nil
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
