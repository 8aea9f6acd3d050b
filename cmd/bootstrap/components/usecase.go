package components

import (
	"log/slog"

	"aura-inn/internal/domain/booking"
	"aura-inn/internal/pkg/activitylog"
	"aura-inn/internal/pkg/clock"
	"aura-inn/internal/pkg/config"
	"aura-inn/internal/pkg/jwt"
	"aura-inn/internal/usecase/commands"
	"aura-inn/internal/usecase/queries"
	"aura-inn/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		booking.NewDefaultPriceCalculator,
		fx.As(new(booking.PriceCalculator)),
	),
	func(clock clock.Clock, calc booking.PriceCalculator) *booking.Services {
		return &booking.Services{
			Clock:           clock,
			PriceCalculator: calc,
		}
	},
	NewActivityLog,
	fx.Annotate(
		func(l *activitylog.Log) *activitylog.Log { return l },
		fx.As(new(shared.ActivityRecorder)),
		fx.As(new(queries.ActivityReader)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewBookingCommands,
		NewAuthCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		NewDashboardQueries,
		queries.NewRoomQueries,
		queries.NewExportQueries,
		queries.NewActivityQueries,
	),
)

func NewActivityLog(cfg config.Config, logger *slog.Logger) *activitylog.Log {
	return activitylog.New(cfg.Activity.Size, logger)
}

func NewBookingCommands(
	repo shared.BookingRepository,
	catalog shared.CatalogReader,
	notifier shared.Notifier,
	activity shared.ActivityRecorder,
	services *booking.Services,
	cfg config.Config,
	logger *slog.Logger,
) commands.BookingCommands {
	return commands.NewBookingCommands(repo, catalog, notifier, activity, services,
		commands.BookingCommandsConfig{StrictValidation: cfg.Booking.StrictValidation}, logger)
}

func NewAuthCommands(cfg config.Config, tokens *jwt.Service, activity shared.ActivityRecorder, clk clock.Clock, logger *slog.Logger) commands.AuthCommands {
	admin := commands.AdminCredentials{
		Username:     cfg.Admin.Username,
		PasswordHash: cfg.Admin.PasswordHash,
	}
	return commands.NewAuthCommands(admin, tokens, activity, clk, logger)
}

func NewDashboardQueries(repo shared.BookingRepository, catalog shared.CatalogReader, clk clock.Clock, cfg config.Config) queries.DashboardQueries {
	return queries.NewDashboardQueries(repo, catalog, clk, cfg.Reminder.Location())
}
