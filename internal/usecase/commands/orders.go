//go:generate mockgen -source=orders.go -destination=../../../tests/mock/commands/orders_mock.go -package=commandsmock

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"scooter-rental/internal/domain/order"
	"scooter-rental/internal/domain/pricing"
	"scooter-rental/internal/domain/settings"
	"scooter-rental/internal/pkg/clock"
	"scooter-rental/internal/pkg/errs"
	"scooter-rental/internal/pkg/pricingtoken"
	"scooter-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

type TokenValidator interface {
	Validate(offer pricing.Offer, token string, cfg settings.ConfigMap) (*pricingtoken.Claims, error)
}

type OrderCommands interface {
	StartOrder(ctx context.Context, offer pricing.Offer, pricingToken string) (*order.Snapshot, error)
	FinishOrder(ctx context.Context, orderID uuid.UUID) (*order.Snapshot, error)
}

type orderUseCaseImpl struct {
	uow      shared.UnitOfWork
	cache    shared.OrderCache
	configs  shared.ConfigProvider
	tokens   TokenValidator
	payments shared.PaymentGateway
	events   shared.OrderEventPublisher
	clock    clock.Clock
	logger   *slog.Logger
}

func NewOrderUseCase(
	uow shared.UnitOfWork,
	cache shared.OrderCache,
	configs shared.ConfigProvider,
	tokens TokenValidator,
	payments shared.PaymentGateway,
	events shared.OrderEventPublisher,
	clock clock.Clock,
	logger *slog.Logger,
) OrderCommands {
	return &orderUseCaseImpl{
		uow:      uow,
		cache:    cache,
		configs:  configs,
		tokens:   tokens,
		payments: payments,
		events:   events,
		clock:    clock,
		logger:   logger,
	}
}

func (o *orderUseCaseImpl) StartOrder(ctx context.Context, offer pricing.Offer, pricingToken string) (*order.Snapshot, error) {
	cfg := o.configs.Configs(ctx, nil)

	if _, err := o.tokens.Validate(offer, pricingToken, cfg); err != nil {
		o.logger.WarnContext(ctx, "pricing token rejected", "offer_id", offer.ID, "user_id", offer.UserID, "reason", err.Error())
		return nil, errs.Mark(err, errs.ErrInvalidPricingToken)
	}

	ord, err := order.Start(uuid.New(), offer, o.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidOffer)
	}

	err = o.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Orders().Insert(ctx, ord)
	})
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to persist order"), errs.ErrDatabaseOperationFailed)
	}

	snap := ord.Snapshot()
	o.cache.Remember(ctx, snap)

	if err := o.payments.HoldMoney(ctx, snap.UserID, snap.ID, snap.Deposit); err != nil {
		o.logger.WarnContext(ctx, "failed to hold deposit", "order_id", snap.ID, "user_id", snap.UserID, "amount", snap.Deposit, "error", err.Error())
	}
	o.publish(ctx, shared.EventOrderStarted, snap, snap.Deposit)

	o.logger.InfoContext(ctx, "order started",
		"order_id", snap.ID,
		"offer_id", offer.ID,
		"user_id", snap.UserID,
		"scooter_id", snap.ScooterID,
		"zone_id", snap.ZoneID)
	return &snap, nil
}

func (o *orderUseCaseImpl) FinishOrder(ctx context.Context, orderID uuid.UUID) (*order.Snapshot, error) {
	current, found, err := o.cache.FindByID(ctx, orderID)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to load order"), errs.ErrDatabaseOperationFailed)
	}
	if !found {
		return nil, errs.Wrap(errs.ErrOrderNotFound, fmt.Sprintf("order %s", orderID))
	}
	if current.FinishTime != nil {
		o.logger.InfoContext(ctx, "order already finished", "order_id", orderID)
		return current, nil
	}

	rules := o.configs.Configs(ctx, nil).Rules()
	ord := order.Reconstruct(*current)
	amount, err := ord.Finish(o.clock.Now(), rules.FreeRideThreshold)
	if err != nil {
		return nil, errs.Wrap(err, "failed to finish order")
	}

	var (
		result order.Snapshot
		won    bool
	)
	err = o.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		updated, err := tx.Orders().FinishIfStarted(ctx, ord)
		if err != nil {
			return err
		}
		if !updated {
			stored, err := tx.Orders().FindByID(ctx, orderID)
			if err != nil {
				return err
			}
			result, won = *stored, false
			return nil
		}
		result, won = ord.Snapshot(), true
		return tx.UserSummaries().Upsert(ctx, shared.UserSummaryDelta{UserID: ord.UserID(), Rides: 1})
	})
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to persist order finish"), errs.ErrDatabaseOperationFailed)
	}

	o.cache.Remember(ctx, result)
	if !won {
		o.logger.InfoContext(ctx, "order was finished concurrently, skipping charge", "order_id", orderID)
		return &result, nil
	}

	if err := o.payments.ClearMoney(ctx, result.UserID, result.ID, amount); err != nil {
		o.recordUnclearedCharge(ctx, result, amount, err)
	} else {
		o.recordClearedCharge(ctx, result)
	}
	o.publish(ctx, shared.EventOrderFinished, result, amount)

	o.logger.InfoContext(ctx, "order finished",
		"order_id", result.ID,
		"user_id", result.UserID,
		"amount", amount,
		"duration_sec", result.FinishTime.Sub(result.StartTime).Seconds())
	return &result, nil
}

func (o *orderUseCaseImpl) recordClearedCharge(ctx context.Context, snap order.Snapshot) {
	status := shared.PaymentStatusCleared
	err := o.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.UserSummaries().Upsert(ctx, shared.UserSummaryDelta{
			UserID:            snap.UserID,
			LastPaymentStatus: &status,
		})
	})
	if err != nil {
		o.logger.ErrorContext(ctx, "failed to record cleared charge", "order_id", snap.ID, "error", err.Error())
	}
}

// recordUnclearedCharge books the amount as user debt so it can be
// reconciled out of band.
func (o *orderUseCaseImpl) recordUnclearedCharge(ctx context.Context, snap order.Snapshot, amount int64, cause error) {
	o.logger.WarnContext(ctx, "failed to clear money for order",
		"order_id", snap.ID,
		"user_id", snap.UserID,
		"amount", amount,
		"error", cause.Error())

	status := shared.PaymentStatusFailed
	err := o.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.UserSummaries().Upsert(ctx, shared.UserSummaryDelta{
			UserID:            snap.UserID,
			Debt:              amount,
			LastPaymentStatus: &status,
		})
	})
	if err != nil {
		o.logger.ErrorContext(ctx, "failed to record uncleared charge", "order_id", snap.ID, "error", err.Error())
	}
	o.publish(ctx, shared.EventPaymentClearFailed, snap, amount)
}

func (o *orderUseCaseImpl) publish(ctx context.Context, eventType shared.EventType, snap order.Snapshot, amount int64) {
	err := o.events.Publish(ctx, shared.OrderEvent{
		Type:       eventType,
		OrderID:    snap.ID,
		UserID:     snap.UserID,
		Amount:     amount,
		OccurredAt: o.clock.Now(),
	})
	if err != nil {
		o.logger.WarnContext(ctx, "failed to publish order event", "type", eventType, "order_id", snap.ID, "error", err.Error())
	}
}
