package repository

import (
	"context"
	"log/slog"

	"scooter-rental/internal/infra"
	"scooter-rental/internal/infra/db"
	"scooter-rental/internal/pkg/pgconv"
	"scooter-rental/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgtype"
)

const upsertUserSummary = `
INSERT INTO user_summary (user_id, rides_count, current_debt, last_payment_status)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id) DO UPDATE
SET rides_count = user_summary.rides_count + EXCLUDED.rides_count,
    current_debt = user_summary.current_debt + EXCLUDED.current_debt,
    last_payment_status = COALESCE(EXCLUDED.last_payment_status, user_summary.last_payment_status)`

const findUserSummary = `
SELECT user_id, rides_count, current_debt, last_payment_status
FROM user_summary
WHERE user_id = $1`

type UserSummary struct {
	UserID            string
	RidesCount        int64
	CurrentDebt       int64
	LastPaymentStatus *string
}

type UserSummaryRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewUserSummaryRepository(dbtx db.DBTX, logger *slog.Logger) *UserSummaryRepository {
	return &UserSummaryRepository{
		db:     dbtx,
		logger: logger,
	}
}

func (r *UserSummaryRepository) Upsert(ctx context.Context, delta shared.UserSummaryDelta) error {
	_, err := r.db.Exec(ctx, upsertUserSummary,
		delta.UserID,
		delta.Rides,
		delta.Debt,
		pgconv.StringPtrToPgtype(delta.LastPaymentStatus),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to upsert user summary", err)
	}
	return nil
}

func (r *UserSummaryRepository) FindByUserID(ctx context.Context, userID string) (*UserSummary, error) {
	var (
		summary UserSummary
		status  pgtype.Text
	)
	err := r.db.QueryRow(ctx, findUserSummary, userID).Scan(
		&summary.UserID,
		&summary.RidesCount,
		&summary.CurrentDebt,
		&status,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NotFound("user summary not found")
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to find user summary", err)
	}
	summary.LastPaymentStatus = pgconv.StringPtrFromPgtype(status)
	return &summary, nil
}
