//go:generate mockgen -source=orders.go -destination=../../../tests/mock/queries/queries_mock.go -package=queriesmock

package queries

import (
	"context"

	"scooter-rental/internal/domain/order"
	"scooter-rental/internal/pkg/errs"

	"github.com/google/uuid"
)

type OrderReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*order.Snapshot, bool, error)
}

type OrderQueries interface {
	GetOrder(ctx context.Context, id uuid.UUID) (*order.Snapshot, bool, error)
}

type orderQueriesImpl struct {
	reader OrderReader
}

func NewOrderQueries(reader OrderReader) OrderQueries {
	return &orderQueriesImpl{reader: reader}
}

// GetOrder reports found=false for an unknown id; only storage failures are
// returned as errors.
func (q *orderQueriesImpl) GetOrder(ctx context.Context, id uuid.UUID) (*order.Snapshot, bool, error) {
	snap, found, err := q.reader.FindByID(ctx, id)
	if err != nil {
		return nil, false, errs.Mark(errs.Wrap(err, "failed to read order"), errs.ErrDatabaseOperationFailed)
	}
	return snap, found, nil
}
