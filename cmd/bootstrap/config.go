package bootstrap

import (
	"log/slog"

	"aura-inn/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		NewConfig,
	),
)

func NewConfig() (config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return config.Config{}, err
	}
	slog.Info("configuration loaded",
		"store_backend", cfg.Store.Backend,
		"notify_queue", cfg.Notify.Queue,
		"sweep_state", cfg.Reminder.StateBackend,
		"mail_enabled", cfg.Mail.Enabled(),
	)
	return cfg, nil
}
