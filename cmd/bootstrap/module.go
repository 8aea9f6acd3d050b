package bootstrap

import (
	"aura-inn/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	JWTModule,
	components.PersistenceModule,
	components.NotifyModule,
	components.UseCaseModule,
	components.ReminderModule,
	components.HandlerModule,
)
