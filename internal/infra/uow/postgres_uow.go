package uow

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"scooter-rental/internal/infra"
	"scooter-rental/internal/infra/db"
	"scooter-rental/internal/infra/repository"
	"scooter-rental/internal/pkg/config"
	"scooter-rental/internal/pkg/errs"
	"scooter-rental/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// TxBeginner is satisfied by *pgxpool.Pool.
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// RetryPolicy bounds replays of transactions that failed on serialization
// or deadlock. Backoff doubles per attempt with up to 20% jitter.
type RetryPolicy struct {
	MaxRetries int
	Base       time.Duration
}

func NewRetryPolicy(cfg config.Config) RetryPolicy {
	return RetryPolicy{MaxRetries: cfg.DB.TxMaxRetries, Base: cfg.DB.TxRetryBase}
}

func (p RetryPolicy) backoff(attempt int) time.Duration {
	wait := time.Duration(1<<attempt) * p.Base
	if jitter := int64(wait / 5); jitter > 0 {
		wait += time.Duration(rand.Int63n(jitter))
	}
	return wait
}

type PostgresUoW struct {
	pool   TxBeginner
	policy RetryPolicy
	logger *slog.Logger
}

func NewPostgresUoW(pool TxBeginner, policy RetryPolicy, logger *slog.Logger) *PostgresUoW {
	return &PostgresUoW{
		pool:   pool,
		policy: policy,
		logger: logger,
	}
}

// Within runs fn at READ COMMITTED. Order transitions rely on conditional
// updates rather than isolation level.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

	for attempt := 0; ; attempt++ {
		err := u.runOnce(ctx, opts, fn)
		if err == nil {
			return nil
		}
		if !infra.IsRetryable(err) {
			return err
		}
		if attempt >= u.policy.MaxRetries {
			u.logger.ErrorContext(ctx, "transaction failed after max retries", "attempts", attempt+1, "error", err.Error())
			return errs.Mark(err, errMaxRetriesExceeded)
		}

		wait := u.policy.backoff(attempt)
		u.logger.WarnContext(ctx, "retrying transaction",
			"attempt", attempt+1,
			"wait_ms", wait.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// runOnce owns one pgx transaction; it is committed or rolled back before
// returning so retries never stack open transactions.
func (u *PostgresUoW) runOnce(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) (err error) {
	pgxTx, err := u.pool.BeginTx(ctx, opts)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := pgxTx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			u.logger.WarnContext(ctx, "rollback failed", "error", rbErr.Error())
		}
	}()

	if err = fn(ctx, &pgTx{dbtx: pgxTx, logger: u.logger}); err != nil {
		return err
	}
	if err = pgxTx.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

type pgTx struct {
	dbtx   db.DBTX
	logger *slog.Logger

	orders    shared.OrderRepository
	summaries shared.UserSummaryRepository
}

func (t *pgTx) Orders() shared.OrderRepository {
	if t.orders == nil {
		t.orders = repository.NewOrderRepository(t.dbtx, t.logger)
	}
	return t.orders
}

func (t *pgTx) UserSummaries() shared.UserSummaryRepository {
	if t.summaries == nil {
		t.summaries = repository.NewUserSummaryRepository(t.dbtx, t.logger)
	}
	return t.summaries
}
