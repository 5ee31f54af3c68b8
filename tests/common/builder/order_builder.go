//go:build unit || e2e

package builder

import (
	"time"

	"scooter-rental/internal/domain/order"

	"github.com/google/uuid"
)

type OrderBuilder struct {
	ID             uuid.UUID
	UserID         string
	ScooterID      string
	ZoneID         string
	PricePerMinute int64
	PriceUnlock    int64
	Deposit        int64
	TotalAmount    int64
	StartTime      time.Time
	FinishTime     *time.Time
}

func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		ID:             uuid.New(),
		UserID:         "user-1",
		ScooterID:      "scooter-1",
		ZoneID:         "korolev",
		PricePerMinute: 12,
		PriceUnlock:    45,
		Deposit:        300,
		StartTime:      time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (o *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	if mutate != nil {
		mutate(o)
	}
	return o
}

// Finished marks the order as closed after elapsed with the given total.
func (o *OrderBuilder) Finished(elapsed time.Duration, total int64) *OrderBuilder {
	finish := o.StartTime.Add(elapsed)
	o.FinishTime = &finish
	o.TotalAmount = total
	return o
}

// Build methods
func (o *OrderBuilder) BuildSnapshot() order.Snapshot {
	var finish *time.Time
	if o.FinishTime != nil {
		t := *o.FinishTime
		finish = &t
	}
	return order.Snapshot{
		ID:             o.ID,
		UserID:         o.UserID,
		ScooterID:      o.ScooterID,
		ZoneID:         o.ZoneID,
		PricePerMinute: o.PricePerMinute,
		PriceUnlock:    o.PriceUnlock,
		Deposit:        o.Deposit,
		TotalAmount:    o.TotalAmount,
		StartTime:      o.StartTime,
		FinishTime:     finish,
	}
}

func (o *OrderBuilder) BuildDomain() *order.Order {
	return order.Reconstruct(o.BuildSnapshot())
}
