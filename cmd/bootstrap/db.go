package bootstrap

import (
	"context"
	"log/slog"

	"scooter-rental/internal/infra/db"
	"scooter-rental/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

func NewDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("データベースに接続しました",
				"host", cfg.DB.Host,
				"database", cfg.DB.DBName,
				"max_conns", pool.Config().MaxConns)
			return nil
		},
		OnStop: func(_ context.Context) error {
			stat := pool.Stat()
			logger.Info("データベース接続を閉じます",
				"acquired", stat.AcquiredConns(),
				"total", stat.TotalConns())
			cleanup()
			return nil
		},
	})

	return pool, nil
}
