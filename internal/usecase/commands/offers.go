//go:generate mockgen -source=offers.go -destination=../../../tests/mock/commands/offers_mock.go -package=commandsmock

package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"scooter-rental/internal/domain/pricing"
	"scooter-rental/internal/domain/settings"
	"scooter-rental/internal/pkg/errs"
	"scooter-rental/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// CreateOfferResult carries either a priced offer with its token or a
// business rejection. A rejection is not an error.
type CreateOfferResult struct {
	Offer        *pricing.Offer
	PricingToken string
	Rejection    string
}

type TokenIssuer interface {
	Generate(offer pricing.Offer, userID, tariffVersion, algoVersion string, ttl time.Duration, secret string) (string, error)
}

type OfferCommands interface {
	CreateOffer(ctx context.Context, scooterID, userID string) (*CreateOfferResult, error)
}

type offerUseCaseImpl struct {
	scooters shared.ScooterSource
	users    shared.UserSource
	zones    shared.ZoneLookup
	configs  shared.ConfigProvider
	tokens   TokenIssuer
	logger   *slog.Logger
}

func NewOfferUseCase(
	scooters shared.ScooterSource,
	users shared.UserSource,
	zones shared.ZoneLookup,
	configs shared.ConfigProvider,
	tokens TokenIssuer,
	logger *slog.Logger,
) OfferCommands {
	return &offerUseCaseImpl{
		scooters: scooters,
		users:    users,
		zones:    zones,
		configs:  configs,
		tokens:   tokens,
		logger:   logger,
	}
}

func (o *offerUseCaseImpl) CreateOffer(ctx context.Context, scooterID, userID string) (*CreateOfferResult, error) {
	var (
		scooter pricing.ScooterData
		user    pricing.UserProfile
		cfg     settings.ConfigMap
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		scooter, err = o.scooters.Scooter(gctx, scooterID)
		if err != nil {
			return errs.Mark(errs.Wrap(err, "failed to fetch scooter"), errs.ErrExternalDependency)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		user, err = o.users.UserProfile(gctx, userID)
		if err != nil {
			return errs.Mark(errs.Wrap(err, "failed to fetch user profile"), errs.ErrExternalDependency)
		}
		return nil
	})
	g.Go(func() error {
		cfg = o.configs.Configs(gctx, nil)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	zone, err := o.zones.TariffZone(ctx, scooter.ZoneID)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to fetch tariff zone"), errs.ErrExternalDependency)
	}

	rules := cfg.Rules()
	offer, err := pricing.NewCalculator(rules).Quote(uuid.NewString(), user, scooter, zone)
	if errors.Is(err, pricing.ErrUserHasDebt) {
		o.logger.InfoContext(ctx, "offer rejected", "user_id", userID, "reason", err.Error())
		return &CreateOfferResult{Rejection: err.Error()}, nil
	}
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "upstream pricing data is invalid"), errs.ErrExternalDependency)
	}

	token, err := o.tokens.Generate(offer, offer.UserID, rules.TariffVersion, rules.PricingAlgoVersion, rules.TokenTTL, rules.TokenSecret)
	if err != nil {
		return nil, errs.Wrap(err, "failed to issue pricing token")
	}

	o.logger.InfoContext(ctx, "offer created",
		"offer_id", offer.ID,
		"user_id", offer.UserID,
		"scooter_id", offer.ScooterID,
		"zone_id", offer.ZoneID,
		"price_per_minute", offer.PricePerMinute,
		"price_unlock", offer.PriceUnlock,
		"deposit", offer.Deposit)

	return &CreateOfferResult{Offer: &offer, PricingToken: token}, nil
}
