//go:generate mockgen -source=uow.go -destination=../../../tests/mock/shared/uow_mock.go -package=sharedmock

package shared

import (
	"context"

	"scooter-rental/internal/domain/order"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Orders() OrderRepository
	UserSummaries() UserSummaryRepository
}

type OrderRepository interface {
	Insert(ctx context.Context, o *order.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*order.Snapshot, error)
	// FinishIfStarted persists the finish fields only when the stored order is
	// still open. It reports false when another writer finished it first.
	FinishIfStarted(ctx context.Context, o *order.Order) (bool, error)
}

const (
	PaymentStatusCleared = "cleared"
	PaymentStatusFailed  = "failed"
)

// UserSummaryDelta is added to the running per-user totals. A nil
// LastPaymentStatus keeps the stored status.
type UserSummaryDelta struct {
	UserID            string
	Rides             int64
	Debt              int64
	LastPaymentStatus *string
}

type UserSummaryRepository interface {
	Upsert(ctx context.Context, delta UserSummaryDelta) error
}
