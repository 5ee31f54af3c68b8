package order

import (
	"errors"
	"time"

	"scooter-rental/internal/domain/pricing"

	"github.com/google/uuid"
)

var (
	ErrAlreadyFinished = errors.New("order already finished")
	ErrInvalidOffer    = errors.New("offer is not redeemable")
)

type Order struct {
	id             uuid.UUID
	userID         string
	scooterID      string
	zoneID         string
	pricePerMinute int64
	priceUnlock    int64
	deposit        int64
	totalAmount    int64
	startTime      time.Time
	finishTime     *time.Time
}

// Start opens an order from a verified offer. Pricing fields are copied
// verbatim and never change afterwards.
func Start(id uuid.UUID, offer pricing.Offer, now time.Time) (*Order, error) {
	if offer.UserID == "" || offer.ScooterID == "" {
		return nil, ErrInvalidOffer
	}
	if offer.PricePerMinute < 0 || offer.PriceUnlock < 0 || offer.Deposit < 0 {
		return nil, ErrInvalidOffer
	}
	return &Order{
		id:             id,
		userID:         offer.UserID,
		scooterID:      offer.ScooterID,
		zoneID:         offer.ZoneID,
		pricePerMinute: offer.PricePerMinute,
		priceUnlock:    offer.PriceUnlock,
		deposit:        offer.Deposit,
		startTime:      now.UTC(),
	}, nil
}

func Reconstruct(s Snapshot) *Order {
	var finish *time.Time
	if s.FinishTime != nil {
		t := *s.FinishTime
		finish = &t
	}
	return &Order{
		id:             s.ID,
		userID:         s.UserID,
		scooterID:      s.ScooterID,
		zoneID:         s.ZoneID,
		pricePerMinute: s.PricePerMinute,
		priceUnlock:    s.PriceUnlock,
		deposit:        s.Deposit,
		totalAmount:    s.TotalAmount,
		startTime:      s.StartTime,
		finishTime:     finish,
	}
}

// Finish closes the order at now and returns the billed amount.
func (o *Order) Finish(now time.Time, freeRideThreshold time.Duration) (int64, error) {
	if o.finishTime != nil {
		return 0, ErrAlreadyFinished
	}
	finishedAt := now.UTC()
	o.totalAmount = Bill(finishedAt.Sub(o.startTime), o.pricePerMinute, o.priceUnlock, freeRideThreshold)
	o.finishTime = &finishedAt
	return o.totalAmount, nil
}

// Bill charges whole elapsed seconds at the per-minute rate plus the unlock
// fee using integer math only. Rides shorter than freeRideThreshold are free
// and negative elapsed time bills as zero seconds.
func Bill(elapsed time.Duration, pricePerMinute, priceUnlock int64, freeRideThreshold time.Duration) int64 {
	if elapsed < freeRideThreshold {
		return 0
	}
	seconds := max(int64(elapsed/time.Second), 0)
	return seconds*pricePerMinute/60 + priceUnlock
}

func (o *Order) IsFinished() bool { return o.finishTime != nil }

func (o *Order) Status() Status {
	if o.IsFinished() {
		return StatusFinished
	}
	return StatusStarted
}

func (o *Order) Snapshot() Snapshot {
	var finish *time.Time
	if o.finishTime != nil {
		t := *o.finishTime
		finish = &t
	}
	return Snapshot{
		ID:             o.id,
		UserID:         o.userID,
		ScooterID:      o.scooterID,
		ZoneID:         o.zoneID,
		PricePerMinute: o.pricePerMinute,
		PriceUnlock:    o.priceUnlock,
		Deposit:        o.deposit,
		TotalAmount:    o.totalAmount,
		StartTime:      o.startTime,
		FinishTime:     finish,
	}
}

func (o *Order) ID() uuid.UUID          { return o.id }
func (o *Order) UserID() string         { return o.userID }
func (o *Order) ScooterID() string      { return o.scooterID }
func (o *Order) ZoneID() string         { return o.zoneID }
func (o *Order) PricePerMinute() int64  { return o.pricePerMinute }
func (o *Order) PriceUnlock() int64     { return o.priceUnlock }
func (o *Order) Deposit() int64         { return o.deposit }
func (o *Order) TotalAmount() int64     { return o.totalAmount }
func (o *Order) StartTime() time.Time   { return o.startTime }
func (o *Order) FinishTime() *time.Time { return o.finishTime }
