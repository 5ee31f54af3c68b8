//go:generate mockgen -source=types.go -destination=../../../tests/mock/shared/shared_mock.go -package=sharedmock

package shared

import (
	"context"
	"time"

	"scooter-rental/internal/domain/order"
	"scooter-rental/internal/domain/pricing"
	"scooter-rental/internal/domain/settings"

	"github.com/google/uuid"
)

type ScooterSource interface {
	Scooter(ctx context.Context, scooterID string) (pricing.ScooterData, error)
}

type UserSource interface {
	UserProfile(ctx context.Context, userID string) (pricing.UserProfile, error)
}

type ZoneLookup interface {
	TariffZone(ctx context.Context, zoneID string) (pricing.TariffZone, error)
}

// ConfigProvider never fails; a nil override selects the static defaults.
type ConfigProvider interface {
	Configs(ctx context.Context, override settings.ConfigMap) settings.ConfigMap
}

type PaymentGateway interface {
	HoldMoney(ctx context.Context, userID string, orderID uuid.UUID, amount int64) error
	ClearMoney(ctx context.Context, userID string, orderID uuid.UUID, amount int64) error
}

// OrderCache is read-through on FindByID and write-through on Remember.
type OrderCache interface {
	FindByID(ctx context.Context, id uuid.UUID) (*order.Snapshot, bool, error)
	Remember(ctx context.Context, snap order.Snapshot)
}

type EventType string

const (
	EventOrderStarted       EventType = "order_started"
	EventOrderFinished      EventType = "order_finished"
	EventPaymentClearFailed EventType = "payment_clear_failed"
)

type OrderEvent struct {
	Type       EventType `json:"type"`
	OrderID    uuid.UUID `json:"order_id"`
	UserID     string    `json:"user_id"`
	Amount     int64     `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}

type OrderEventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}
