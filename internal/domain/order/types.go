package order

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusStarted  Status = "STARTED"
	StatusFinished Status = "FINISHED"
)

// Snapshot is the immutable, serializable form of an Order. Caches and the
// transport layer only ever see snapshots.
type Snapshot struct {
	ID             uuid.UUID  `json:"id"`
	UserID         string     `json:"user_id"`
	ScooterID      string     `json:"scooter_id"`
	ZoneID         string     `json:"zone_id"`
	PricePerMinute int64      `json:"price_per_minute"`
	PriceUnlock    int64      `json:"price_unlock"`
	Deposit        int64      `json:"deposit"`
	TotalAmount    int64      `json:"total_amount"`
	StartTime      time.Time  `json:"start_time"`
	FinishTime     *time.Time `json:"finish_time"`
}

func (s Snapshot) Status() Status {
	if s.FinishTime != nil {
		return StatusFinished
	}
	return StatusStarted
}

// Copy returns a snapshot that shares no memory with s.
func (s Snapshot) Copy() Snapshot {
	if s.FinishTime != nil {
		t := *s.FinishTime
		s.FinishTime = &t
	}
	return s
}
