package bootstrap

import (
	"scooter-rental/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	components.PersistenceModule,
	components.ExternalModule,
	components.CacheModule,
	components.EventsModule,
	components.UseCaseModule,
	components.HandlerModule,
)
