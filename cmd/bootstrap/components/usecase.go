package components

import (
	"scooter-rental/internal/pkg/clock"
	"scooter-rental/internal/pkg/pricingtoken"
	"scooter-rental/internal/usecase/commands"
	"scooter-rental/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		pricingtoken.NewCodec,
		fx.As(new(commands.TokenIssuer)),
		fx.As(new(commands.TokenValidator)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewOfferUseCase,
		commands.NewOrderUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOrderQueries,
	),
)
