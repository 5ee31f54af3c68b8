//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"scooter-rental/internal/domain/pricing"
	"scooter-rental/internal/domain/settings"
	"scooter-rental/internal/pkg/errs"
	"scooter-rental/internal/usecase/commands"
	commandsmock "scooter-rental/tests/mock/commands"
	sharedmock "scooter-rental/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type offerMocks struct {
	scooters *sharedmock.MockScooterSource
	users    *sharedmock.MockUserSource
	zones    *sharedmock.MockZoneLookup
	configs  *sharedmock.MockConfigProvider
	tokens   *commandsmock.MockTokenIssuer
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfigs() settings.ConfigMap {
	return settings.Defaults().Merge(settings.ConfigMap{settings.KeyTokenSecret: "secret"})
}

func setupOfferUseCase(t *testing.T) (commands.OfferCommands, offerMocks) {
	ctrl := gomock.NewController(t)
	m := offerMocks{
		scooters: sharedmock.NewMockScooterSource(ctrl),
		users:    sharedmock.NewMockUserSource(ctrl),
		zones:    sharedmock.NewMockZoneLookup(ctrl),
		configs:  sharedmock.NewMockConfigProvider(ctrl),
		tokens:   commandsmock.NewMockTokenIssuer(ctrl),
	}
	uc := commands.NewOfferUseCase(m.scooters, m.users, m.zones, m.configs, m.tokens, discardLogger())
	return uc, m
}

func TestCreateOffer(t *testing.T) {
	scooter := pricing.ScooterData{ID: "scooter-1", ZoneID: "korolev", Charge: 57}
	zone := pricing.TariffZone{ID: "korolev", PricePerMinute: 12, PriceUnlock: 45, DefaultDeposit: 300}

	t.Run("基本成功ケース", func(t *testing.T) {
		uc, m := setupOfferUseCase(t)
		ctx := context.Background()

		m.scooters.EXPECT().Scooter(gomock.Any(), "scooter-1").Return(scooter, nil)
		m.users.EXPECT().UserProfile(gomock.Any(), "user-1").Return(pricing.UserProfile{ID: "user-1"}, nil)
		m.configs.EXPECT().Configs(gomock.Any(), gomock.Nil()).Return(testConfigs())
		m.zones.EXPECT().TariffZone(ctx, "korolev").Return(zone, nil)
		m.tokens.EXPECT().
			Generate(gomock.Any(), "user-1", "v1", "v1", 180*time.Second, "secret").
			DoAndReturn(func(offer pricing.Offer, _, _, _ string, _ time.Duration, _ string) (string, error) {
				assert.Equal(t, "scooter-1", offer.ScooterID)
				return "signed-token", nil
			})

		result, err := uc.CreateOffer(ctx, "scooter-1", "user-1")
		require.NoError(t, err)
		require.NotNil(t, result.Offer)

		assert.Empty(t, result.Rejection)
		assert.Equal(t, "signed-token", result.PricingToken)
		assert.NotEmpty(t, result.Offer.ID)
		assert.Equal(t, "user-1", result.Offer.UserID)
		assert.Equal(t, "korolev", result.Offer.ZoneID)
		assert.Equal(t, int64(12), result.Offer.PricePerMinute)
		assert.Equal(t, int64(45), result.Offer.PriceUnlock)
		assert.Equal(t, int64(300), result.Offer.Deposit)
	})

	t.Run("負債のあるユーザーは拒否される", func(t *testing.T) {
		uc, m := setupOfferUseCase(t)
		ctx := context.Background()

		m.scooters.EXPECT().Scooter(gomock.Any(), "scooter-1").Return(scooter, nil)
		m.users.EXPECT().UserProfile(gomock.Any(), "user-1").Return(pricing.UserProfile{ID: "user-1", CurrentDebt: 10}, nil)
		m.configs.EXPECT().Configs(gomock.Any(), gomock.Nil()).Return(testConfigs())
		m.zones.EXPECT().TariffZone(ctx, "korolev").Return(zone, nil)

		result, err := uc.CreateOffer(ctx, "scooter-1", "user-1")
		require.NoError(t, err)

		assert.Nil(t, result.Offer)
		assert.Empty(t, result.PricingToken)
		assert.Equal(t, "user has debt", result.Rejection)
	})

	t.Run("スクーター取得失敗は外部依存エラー", func(t *testing.T) {
		uc, m := setupOfferUseCase(t)

		m.scooters.EXPECT().Scooter(gomock.Any(), "scooter-1").Return(pricing.ScooterData{}, errors.New("connection refused"))
		m.users.EXPECT().UserProfile(gomock.Any(), "user-1").Return(pricing.UserProfile{ID: "user-1"}, nil).AnyTimes()
		m.configs.EXPECT().Configs(gomock.Any(), gomock.Nil()).Return(testConfigs()).AnyTimes()

		result, err := uc.CreateOffer(context.Background(), "scooter-1", "user-1")
		require.ErrorIs(t, err, errs.ErrExternalDependency)
		assert.Nil(t, result)
	})

	t.Run("ゾーン取得失敗は外部依存エラー", func(t *testing.T) {
		uc, m := setupOfferUseCase(t)

		m.scooters.EXPECT().Scooter(gomock.Any(), "scooter-1").Return(scooter, nil)
		m.users.EXPECT().UserProfile(gomock.Any(), "user-1").Return(pricing.UserProfile{ID: "user-1"}, nil)
		m.configs.EXPECT().Configs(gomock.Any(), gomock.Nil()).Return(testConfigs())
		m.zones.EXPECT().TariffZone(gomock.Any(), "korolev").Return(pricing.TariffZone{}, errors.New("timeout"))

		_, err := uc.CreateOffer(context.Background(), "scooter-1", "user-1")
		require.ErrorIs(t, err, errs.ErrExternalDependency)
	})

	t.Run("トークン発行失敗はそのまま返す", func(t *testing.T) {
		uc, m := setupOfferUseCase(t)

		m.scooters.EXPECT().Scooter(gomock.Any(), "scooter-1").Return(scooter, nil)
		m.users.EXPECT().UserProfile(gomock.Any(), "user-1").Return(pricing.UserProfile{ID: "user-1"}, nil)
		m.configs.EXPECT().Configs(gomock.Any(), gomock.Nil()).Return(settings.Defaults())
		m.zones.EXPECT().TariffZone(gomock.Any(), "korolev").Return(zone, nil)
		m.tokens.EXPECT().Generate(gomock.Any(), "user-1", "v1", "v1", gomock.Any(), "").Return("", errors.New("pricing token secret is not configured"))

		_, err := uc.CreateOffer(context.Background(), "scooter-1", "user-1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, errs.ErrExternalDependency)
	})
}
