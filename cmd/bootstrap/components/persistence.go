package components

import (
	"scooter-rental/internal/infra/cache"
	"scooter-rental/internal/infra/db"
	"scooter-rental/internal/infra/repository"
	"scooter-rental/internal/infra/uow"
	"scooter-rental/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		NewTxBeginner,
		uow.NewRetryPolicy,
		// UnitOfWork
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// Order reads outside a transaction feed the order cache
		fx.Annotate(
			repository.NewOrderRepository,
			fx.As(new(cache.OrderLoader)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewTxBeginner(pool *pgxpool.Pool) uow.TxBeginner {
	return pool
}
