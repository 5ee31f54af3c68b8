//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"scooter-rental/internal/domain/order"
	"scooter-rental/internal/pkg/clock"
	"scooter-rental/internal/pkg/errs"
	"scooter-rental/internal/pkg/pricingtoken"
	"scooter-rental/internal/usecase/commands"
	"scooter-rental/internal/usecase/shared"
	"scooter-rental/tests/common/builder"
	commandsmock "scooter-rental/tests/mock/commands"
	sharedmock "scooter-rental/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var orderStart = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

type orderMocks struct {
	uow       *sharedmock.MockUnitOfWork
	tx        *sharedmock.MockTx
	orders    *sharedmock.MockOrderRepository
	summaries *sharedmock.MockUserSummaryRepository
	cache     *sharedmock.MockOrderCache
	configs   *sharedmock.MockConfigProvider
	tokens    *commandsmock.MockTokenValidator
	payments  *sharedmock.MockPaymentGateway
	events    *sharedmock.MockOrderEventPublisher
	clock     *clock.MockClock
}

func setupOrderUseCase(t *testing.T) (commands.OrderCommands, orderMocks) {
	ctrl := gomock.NewController(t)
	m := orderMocks{
		uow:       sharedmock.NewMockUnitOfWork(ctrl),
		tx:        sharedmock.NewMockTx(ctrl),
		orders:    sharedmock.NewMockOrderRepository(ctrl),
		summaries: sharedmock.NewMockUserSummaryRepository(ctrl),
		cache:     sharedmock.NewMockOrderCache(ctrl),
		configs:   sharedmock.NewMockConfigProvider(ctrl),
		tokens:    commandsmock.NewMockTokenValidator(ctrl),
		payments:  sharedmock.NewMockPaymentGateway(ctrl),
		events:    sharedmock.NewMockOrderEventPublisher(ctrl),
		clock:     clock.NewMockClock(orderStart),
	}
	m.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, m.tx)
		}).AnyTimes()
	m.tx.EXPECT().Orders().Return(m.orders).AnyTimes()
	m.tx.EXPECT().UserSummaries().Return(m.summaries).AnyTimes()
	m.configs.EXPECT().Configs(gomock.Any(), gomock.Nil()).Return(testConfigs()).AnyTimes()

	uc := commands.NewOrderUseCase(m.uow, m.cache, m.configs, m.tokens, m.payments, m.events, m.clock, discardLogger())
	return uc, m
}

func eventOfType(eventType shared.EventType) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		e, ok := x.(shared.OrderEvent)
		return ok && e.Type == eventType
	})
}

func TestStartOrder(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		uc, m := setupOrderUseCase(t)
		offer := builder.NewOfferBuilder().BuildDomain()

		m.tokens.EXPECT().Validate(offer, "token", gomock.Any()).Return(&pricingtoken.Claims{UserID: offer.UserID}, nil)
		var inserted *order.Order
		m.orders.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, o *order.Order) error {
			inserted = o
			return nil
		})
		m.cache.EXPECT().Remember(gomock.Any(), gomock.Any())
		m.payments.EXPECT().HoldMoney(gomock.Any(), offer.UserID, gomock.Any(), offer.Deposit).Return(nil)
		m.events.EXPECT().Publish(gomock.Any(), eventOfType(shared.EventOrderStarted)).Return(nil)

		snap, err := uc.StartOrder(context.Background(), offer, "token")
		require.NoError(t, err)
		require.NotNil(t, inserted)

		assert.Equal(t, inserted.ID(), snap.ID)
		assert.Equal(t, offer.UserID, snap.UserID)
		assert.Equal(t, offer.PricePerMinute, snap.PricePerMinute)
		assert.Equal(t, offer.PriceUnlock, snap.PriceUnlock)
		assert.Equal(t, offer.Deposit, snap.Deposit)
		assert.Equal(t, orderStart, snap.StartTime)
		assert.Nil(t, snap.FinishTime)
		assert.Equal(t, int64(0), snap.TotalAmount)
	})

	t.Run("トークン不正なら理由付きで拒否し永続化しない", func(t *testing.T) {
		uc, m := setupOrderUseCase(t)
		offer := builder.NewOfferBuilder().BuildDomain()

		m.tokens.EXPECT().Validate(offer, "token", gomock.Any()).Return(nil, pricingtoken.ErrOfferTampered)

		snap, err := uc.StartOrder(context.Background(), offer, "token")
		require.ErrorIs(t, err, errs.ErrInvalidPricingToken)
		require.ErrorIs(t, err, pricingtoken.ErrOfferTampered)
		assert.Equal(t, "offer payload was tampered with", err.Error())
		assert.Nil(t, snap)
	})

	t.Run("保証金の確保失敗は注文開始を妨げない", func(t *testing.T) {
		uc, m := setupOrderUseCase(t)
		offer := builder.NewOfferBuilder().BuildDomain()

		m.tokens.EXPECT().Validate(offer, "token", gomock.Any()).Return(&pricingtoken.Claims{}, nil)
		m.orders.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		m.cache.EXPECT().Remember(gomock.Any(), gomock.Any())
		m.payments.EXPECT().HoldMoney(gomock.Any(), offer.UserID, gomock.Any(), offer.Deposit).Return(errors.New("502"))
		m.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		snap, err := uc.StartOrder(context.Background(), offer, "token")
		require.NoError(t, err)
		assert.NotNil(t, snap)
	})

	t.Run("永続化失敗", func(t *testing.T) {
		uc, m := setupOrderUseCase(t)
		offer := builder.NewOfferBuilder().BuildDomain()

		m.tokens.EXPECT().Validate(offer, "token", gomock.Any()).Return(&pricingtoken.Claims{}, nil)
		m.orders.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

		_, err := uc.StartOrder(context.Background(), offer, "token")
		require.ErrorIs(t, err, errs.ErrDatabaseOperationFailed)
	})
}

func TestFinishOrder(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		uc, m := setupOrderUseCase(t)
		started := builder.NewOrderBuilder().BuildSnapshot()
		m.clock.Set(started.StartTime.Add(10 * time.Minute))

		cleared := shared.PaymentStatusCleared

		m.cache.EXPECT().FindByID(gomock.Any(), started.ID).Return(&started, true, nil)
		m.orders.EXPECT().FinishIfStarted(gomock.Any(), gomock.Any()).Return(true, nil)
		gomock.InOrder(
			m.summaries.EXPECT().Upsert(gomock.Any(), shared.UserSummaryDelta{UserID: started.UserID, Rides: 1}).Return(nil),
			m.payments.EXPECT().ClearMoney(gomock.Any(), started.UserID, started.ID, int64(165)).Return(nil),
			m.summaries.EXPECT().Upsert(gomock.Any(), shared.UserSummaryDelta{
				UserID:            started.UserID,
				LastPaymentStatus: &cleared,
			}).Return(nil),
		)
		m.cache.EXPECT().Remember(gomock.Any(), gomock.Any())
		m.events.EXPECT().Publish(gomock.Any(), eventOfType(shared.EventOrderFinished)).Return(nil)

		snap, err := uc.FinishOrder(context.Background(), started.ID)
		require.NoError(t, err)

		assert.Equal(t, int64(165), snap.TotalAmount)
		require.NotNil(t, snap.FinishTime)
		assert.Equal(t, started.StartTime.Add(10*time.Minute), *snap.FinishTime)
	})

	t.Run("5秒未満は無料", func(t *testing.T) {
		uc, m := setupOrderUseCase(t)
		started := builder.NewOrderBuilder().BuildSnapshot()
		m.clock.Set(started.StartTime.Add(4 * time.Second))

		m.cache.EXPECT().FindByID(gomock.Any(), started.ID).Return(&started, true, nil)
		m.orders.EXPECT().FinishIfStarted(gomock.Any(), gomock.Any()).Return(true, nil)
		m.summaries.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil).Times(2)
		m.cache.EXPECT().Remember(gomock.Any(), gomock.Any())
		m.payments.EXPECT().ClearMoney(gomock.Any(), started.UserID, started.ID, int64(0)).Return(nil)
		m.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		snap, err := uc.FinishOrder(context.Background(), started.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), snap.TotalAmount)
	})

	t.Run("終了済みなら再課金せずそのまま返す", func(t *testing.T) {
		uc, m := setupOrderUseCase(t)
		finished := builder.NewOrderBuilder().Finished(time.Minute, 57).BuildSnapshot()

		m.cache.EXPECT().FindByID(gomock.Any(), finished.ID).Return(&finished, true, nil)

		snap, err := uc.FinishOrder(context.Background(), finished.ID)
		require.NoError(t, err)
		assert.Equal(t, finished, *snap)
	})

	t.Run("存在しない注文", func(t *testing.T) {
		uc, m := setupOrderUseCase(t)
		id := uuid.New()

		m.cache.EXPECT().FindByID(gomock.Any(), id).Return(nil, false, nil)

		_, err := uc.FinishOrder(context.Background(), id)
		require.ErrorIs(t, err, errs.ErrOrderNotFound)
	})

	t.Run("同時終了で負けた側は保存済みの結果を返し課金しない", func(t *testing.T) {
		uc, m := setupOrderUseCase(t)
		started := builder.NewOrderBuilder().BuildSnapshot()
		stored := builder.NewOrderBuilder().With(func(b *builder.OrderBuilder) { b.ID = started.ID }).
			Finished(5*time.Minute, 105).BuildSnapshot()
		m.clock.Set(started.StartTime.Add(10 * time.Minute))

		m.cache.EXPECT().FindByID(gomock.Any(), started.ID).Return(&started, true, nil)
		m.orders.EXPECT().FinishIfStarted(gomock.Any(), gomock.Any()).Return(false, nil)
		m.orders.EXPECT().FindByID(gomock.Any(), started.ID).Return(&stored, nil)
		m.cache.EXPECT().Remember(gomock.Any(), stored)

		snap, err := uc.FinishOrder(context.Background(), started.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(105), snap.TotalAmount)
	})

	t.Run("決済成功の記録に失敗しても終了結果を返す", func(t *testing.T) {
		uc, m := setupOrderUseCase(t)
		started := builder.NewOrderBuilder().BuildSnapshot()
		m.clock.Set(started.StartTime.Add(10 * time.Minute))
		cleared := shared.PaymentStatusCleared

		m.cache.EXPECT().FindByID(gomock.Any(), started.ID).Return(&started, true, nil)
		m.orders.EXPECT().FinishIfStarted(gomock.Any(), gomock.Any()).Return(true, nil)
		m.summaries.EXPECT().Upsert(gomock.Any(), shared.UserSummaryDelta{UserID: started.UserID, Rides: 1}).Return(nil)
		m.summaries.EXPECT().Upsert(gomock.Any(), shared.UserSummaryDelta{
			UserID:            started.UserID,
			LastPaymentStatus: &cleared,
		}).Return(errors.New("db down"))
		m.cache.EXPECT().Remember(gomock.Any(), gomock.Any())
		m.payments.EXPECT().ClearMoney(gomock.Any(), started.UserID, started.ID, int64(165)).Return(nil)
		m.events.EXPECT().Publish(gomock.Any(), eventOfType(shared.EventOrderFinished)).Return(nil)

		snap, err := uc.FinishOrder(context.Background(), started.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(165), snap.TotalAmount)
	})

	t.Run("決済失敗は負債として記録する", func(t *testing.T) {
		uc, m := setupOrderUseCase(t)
		started := builder.NewOrderBuilder().BuildSnapshot()
		m.clock.Set(started.StartTime.Add(10 * time.Minute))
		failed := shared.PaymentStatusFailed

		m.cache.EXPECT().FindByID(gomock.Any(), started.ID).Return(&started, true, nil)
		m.orders.EXPECT().FinishIfStarted(gomock.Any(), gomock.Any()).Return(true, nil)
		gomock.InOrder(
			m.summaries.EXPECT().Upsert(gomock.Any(), shared.UserSummaryDelta{UserID: started.UserID, Rides: 1}).Return(nil),
			m.summaries.EXPECT().Upsert(gomock.Any(), shared.UserSummaryDelta{
				UserID:            started.UserID,
				Debt:              165,
				LastPaymentStatus: &failed,
			}).Return(nil),
		)
		m.cache.EXPECT().Remember(gomock.Any(), gomock.Any())
		m.payments.EXPECT().ClearMoney(gomock.Any(), started.UserID, started.ID, int64(165)).Return(errors.New("502"))
		gomock.InOrder(
			m.events.EXPECT().Publish(gomock.Any(), eventOfType(shared.EventPaymentClearFailed)).Return(nil),
			m.events.EXPECT().Publish(gomock.Any(), eventOfType(shared.EventOrderFinished)).Return(nil),
		)

		snap, err := uc.FinishOrder(context.Background(), started.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(165), snap.TotalAmount)
	})

	t.Run("キャッシュ読み込み失敗", func(t *testing.T) {
		uc, m := setupOrderUseCase(t)
		id := uuid.New()

		m.cache.EXPECT().FindByID(gomock.Any(), id).Return(nil, false, errors.New("db down"))

		_, err := uc.FinishOrder(context.Background(), id)
		require.ErrorIs(t, err, errs.ErrDatabaseOperationFailed)
	})
}
