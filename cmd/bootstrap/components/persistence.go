package components

import (
	"context"
	"database/sql"
	"log/slog"

	"aura-inn/internal/infra/db"
	"aura-inn/internal/infra/jsonstore"
	"aura-inn/internal/infra/redisstore"
	"aura-inn/internal/infra/repository"
	"aura-inn/internal/infra/seed"
	"aura-inn/internal/pkg/clock"
	"aura-inn/internal/pkg/config"
	"aura-inn/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewJSONStore,
		repository.NewCatalogStore,
		fx.Annotate(
			func(s *repository.CatalogStore) *repository.CatalogStore { return s },
			fx.As(new(shared.CatalogReader)),
			fx.As(new(shared.OwnerDirectory)),
			fx.As(new(shared.ContentReader)),
		),
		NewBookingRepository,
		NewSweepStateStore,
	),
	fx.Invoke(ApplySeed),
)

func NewJSONStore(cfg config.Config) (*jsonstore.Store, error) {
	return jsonstore.Open(cfg.Store.DataDir)
}

// NewBookingRepository keeps bookings in the data directory unless STORE_BACKEND selects PostgreSQL.
func NewBookingRepository(lc fx.Lifecycle, cfg config.Config, store *jsonstore.Store, logger *slog.Logger) (shared.BookingRepository, error) {
	if cfg.Store.Backend != config.StoreBackendPostgres {
		return repository.NewJSONBookingRepository(store, logger), nil
	}
	conn, err := NewDB(lc, cfg, logger)
	if err != nil {
		return nil, err
	}
	return repository.NewPostgresBookingRepository(conn, logger), nil
}

func NewDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*sql.DB, error) {
	conn, cleanup, err := db.Connect(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return conn, nil
}

func NewSweepStateStore(lc fx.Lifecycle, cfg config.Config, store *jsonstore.Store, clk clock.Clock, logger *slog.Logger) shared.SweepStateStore {
	if cfg.Reminder.StateBackend != config.SweepStateRedis {
		return repository.NewFileSweepState(store, clk, logger)
	}

	client := redisstore.NewClient(cfg.Redis)
	state := redisstore.NewSweepState(client, logger)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return state.Ping(ctx)
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return state
}

// ApplySeed fills missing content collections from SEED_FILE. Existing data is never overwritten.
func ApplySeed(cfg config.Config, catalog *repository.CatalogStore, logger *slog.Logger) error {
	if cfg.Store.SeedFile == "" {
		return nil
	}
	doc, err := seed.Load(cfg.Store.SeedFile)
	if err != nil {
		return err
	}
	return seed.Apply(context.Background(), catalog, doc, logger)
}
