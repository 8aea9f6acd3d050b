package components

import (
	"aura-inn/internal/handler"
	"aura-inn/internal/handler/api"
	"aura-inn/internal/handler/middleware"
	"aura-inn/internal/pkg/config"
	"aura-inn/internal/pkg/jwt"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBookingHandler,
		api.NewDashboardHandler,
		api.NewRoomHandler,
		api.NewAdminHandler,
		fx.Annotate(
			func(s *jwt.Service) *jwt.Service { return s },
			fx.As(new(middleware.TokenValidator)),
		),
		middleware.NewAuthMiddleware,
		NewRateLimiter,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

type handlerParams struct {
	fx.In

	Auth      *api.AuthHandler
	Booking   *api.BookingHandler
	Dashboard *api.DashboardHandler
	Rooms     *api.RoomHandler
	Admin     *api.AdminHandler
}

func NewHandlers(p handlerParams) handler.Handlers {
	return handler.Handlers{
		Auth:      p.Auth,
		Booking:   p.Booking,
		Dashboard: p.Dashboard,
		Rooms:     p.Rooms,
		Admin:     p.Admin,
	}
}

func NewRateLimiter(cfg config.Config) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.RateLimit)
}
