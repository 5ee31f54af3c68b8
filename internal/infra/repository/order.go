package repository

import (
	"context"
	"log/slog"

	"scooter-rental/internal/domain/order"
	"scooter-rental/internal/infra"
	"scooter-rental/internal/infra/db"
	"scooter-rental/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertOrder = `
INSERT INTO orders (
    id, user_id, scooter_id, zone_id,
    price_per_minute, price_unlock, deposit,
    total_amount, start_time, finish_time, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $9)`

const findOrderByID = `
SELECT id, user_id, scooter_id, zone_id,
       price_per_minute, price_unlock, deposit,
       total_amount, start_time, finish_time
FROM orders
WHERE id = $1`

const finishOrderIfStarted = `
UPDATE orders
SET finish_time = $2,
    total_amount = $3
WHERE id = $1
  AND finish_time IS NULL`

type OrderRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewOrderRepository(dbtx db.DBTX, logger *slog.Logger) *OrderRepository {
	return &OrderRepository{
		db:     dbtx,
		logger: logger,
	}
}

func (r *OrderRepository) Insert(ctx context.Context, o *order.Order) error {
	_, err := r.db.Exec(ctx, insertOrder,
		pgconv.UUIDToPgtype(o.ID()),
		o.UserID(),
		o.ScooterID(),
		o.ZoneID(),
		o.PricePerMinute(),
		o.PriceUnlock(),
		o.Deposit(),
		o.TotalAmount(),
		pgconv.TimeToPgtype(o.StartTime()),
		pgconv.TimePtrToPgtype(o.FinishTime()),
	)
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to insert order", err)
	}
	r.logger.Debug("order inserted", "order_id", o.ID(), "user_id", o.UserID())
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Snapshot, error) {
	var (
		rowID      pgtype.UUID
		snap       order.Snapshot
		startTime  pgtype.Timestamptz
		finishTime pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findOrderByID, pgconv.UUIDToPgtype(id)).Scan(
		&rowID,
		&snap.UserID,
		&snap.ScooterID,
		&snap.ZoneID,
		&snap.PricePerMinute,
		&snap.PriceUnlock,
		&snap.Deposit,
		&snap.TotalAmount,
		&startTime,
		&finishTime,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NotFound("order not found")
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to find order by ID", err)
	}

	snap.ID = pgconv.UUIDFromPgtype(rowID)
	snap.StartTime = pgconv.TimeFromPgtype(startTime)
	snap.FinishTime = pgconv.TimePtrFromPgtype(finishTime)
	return &snap, nil
}

func (r *OrderRepository) FinishIfStarted(ctx context.Context, o *order.Order) (bool, error) {
	if !o.IsFinished() {
		return false, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "order has no finish time", nil)
	}
	tag, err := r.db.Exec(ctx, finishOrderIfStarted,
		pgconv.UUIDToPgtype(o.ID()),
		pgconv.TimePtrToPgtype(o.FinishTime()),
		o.TotalAmount(),
	)
	if err != nil {
		return false, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to finish order", err)
	}
	return tag.RowsAffected() == 1, nil
}
