package components

import (
	"log/slog"

	"scooter-rental/internal/infra/cache"
	"scooter-rental/internal/infra/external"
	"scooter-rental/internal/pkg/config"
	"scooter-rental/internal/usecase/shared"

	"go.uber.org/fx"
)

var ExternalModule = fx.Module("external",
	fx.Provide(
		fx.Annotate(
			NewExternalClient,
			fx.As(new(shared.ScooterSource)),
			fx.As(new(shared.UserSource)),
			fx.As(new(shared.PaymentGateway)),
			fx.As(new(cache.ConfigSource)),
			fx.As(new(cache.ZoneSource)),
		),
	),
)

func NewExternalClient(cfg config.Config, logger *slog.Logger) *external.Client {
	return external.NewClient(cfg.External, logger)
}
