package response

import (
	"time"

	"scooter-rental/internal/domain/order"
	"scooter-rental/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type OrderResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	ScooterID      string  `json:"scooter_id"`
	ZoneID         string  `json:"zone_id"`
	PricePerMinute int64   `json:"price_per_minute"`
	PriceUnlock    int64   `json:"price_unlock"`
	Deposit        int64   `json:"deposit"`
	TotalAmount    int64   `json:"total_amount"`
	StartTime      string  `json:"start_time"`
	FinishTime     *string `json:"finish_time"`
}

var snapshotConverters = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: uuid.UUID{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(uuid.UUID).String(), nil
			},
		},
		{
			SrcType: time.Time{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return formatTime(src.(time.Time)), nil
			},
		},
	},
}

func FromOrderSnapshot(s *order.Snapshot) (*OrderResponse, error) {
	if s == nil {
		return nil, errs.New("no order snapshot to render")
	}
	var res OrderResponse
	if err := copier.CopyWithOption(&res, s, snapshotConverters); err != nil {
		return nil, errs.Wrap(err, "failed to copy order snapshot")
	}
	res.FinishTime = nil
	if s.FinishTime != nil {
		finish := formatTime(*s.FinishTime)
		res.FinishTime = &finish
	}
	return &res, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
