package pricing

import (
	"errors"

	"scooter-rental/internal/domain/settings"

	"github.com/shopspring/decimal"
)

var (
	ErrUserHasDebt    = errors.New("user has debt")
	ErrNegativeAmount = errors.New("amount cannot be negative")
)

type Calculator struct {
	rules settings.Rules
}

func NewCalculator(rules settings.Rules) *Calculator {
	return &Calculator{rules: rules}
}

// PricePerMinute applies surge and then the low-charge discount, truncating
// after each step.
func (c *Calculator) PricePerMinute(zone TariffZone, scooter ScooterData) int64 {
	price := zone.PricePerMinute
	if c.rules.Surge != nil {
		price = multiplyTrunc(price, *c.rules.Surge)
	}
	if c.rules.LowChargeDiscount != nil && scooter.Charge < c.rules.LowChargeThreshold {
		price = multiplyTrunc(price, *c.rules.LowChargeDiscount)
	}
	return price
}

func (c *Calculator) PriceUnlock(zone TariffZone, user UserProfile) int64 {
	if user.HasSubscription {
		return 0
	}
	return zone.PriceUnlock
}

func (c *Calculator) Deposit(zone TariffZone, user UserProfile) int64 {
	if user.Trusted {
		return 0
	}
	multiplier := 1.0
	if user.TotalDebt > c.rules.DepositDebtThreshold {
		multiplier = c.rules.DepositMultiplier
	}
	return multiplyTrunc(zone.DefaultDeposit, multiplier)
}

// Quote prices a ride for user on scooter. Users with outstanding debt are
// rejected with ErrUserHasDebt.
func (c *Calculator) Quote(offerID string, user UserProfile, scooter ScooterData, zone TariffZone) (Offer, error) {
	if user.CurrentDebt > 0 {
		return Offer{}, ErrUserHasDebt
	}

	offer := Offer{
		ID:             offerID,
		UserID:         user.ID,
		ScooterID:      scooter.ID,
		ZoneID:         scooter.ZoneID,
		PricePerMinute: c.PricePerMinute(zone, scooter),
		PriceUnlock:    c.PriceUnlock(zone, user),
		Deposit:        c.Deposit(zone, user),
	}
	if offer.PricePerMinute < 0 || offer.PriceUnlock < 0 || offer.Deposit < 0 {
		return Offer{}, ErrNegativeAmount
	}
	return offer, nil
}

func multiplyTrunc(amount int64, coeff float64) int64 {
	return decimal.NewFromInt(amount).Mul(decimal.NewFromFloat(coeff)).IntPart()
}
