//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"scooter-rental/internal/domain/order"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// inserts an order row directly, bypassing the application
func InsertOrder(t *testing.T, db DBLike, snap order.Snapshot) {
	t.Helper()

	_, err := db.Exec(context.Background(), `
		INSERT INTO orders (id, user_id, scooter_id, zone_id, price_per_minute, price_unlock, deposit, total_amount, start_time, finish_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		snap.ID, snap.UserID, snap.ScooterID, snap.ZoneID,
		snap.PricePerMinute, snap.PriceUnlock, snap.Deposit, snap.TotalAmount,
		snap.StartTime, snap.FinishTime)
	require.NoError(t, err)
}

// reads back the persisted total and finish time of an order
func OrderTotals(t *testing.T, db DBLike, id uuid.UUID) (int64, *time.Time) {
	t.Helper()

	var (
		total  int64
		finish *time.Time
	)
	err := db.QueryRow(context.Background(),
		"SELECT total_amount, finish_time FROM orders WHERE id = $1", id).Scan(&total, &finish)
	require.NoError(t, err)
	return total, finish
}

type UserSummaryRow struct {
	RidesCount        int64
	CurrentDebt       int64
	LastPaymentStatus *string
}

func UserSummary(t *testing.T, db DBLike, userID string) UserSummaryRow {
	t.Helper()

	var row UserSummaryRow
	err := db.QueryRow(context.Background(),
		"SELECT rides_count, current_debt, last_payment_status FROM user_summary WHERE user_id = $1", userID).
		Scan(&row.RidesCount, &row.CurrentDebt, &row.LastPaymentStatus)
	require.NoError(t, err)
	return row
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
