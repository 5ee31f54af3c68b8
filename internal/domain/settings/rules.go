package settings

import (
	"time"

	"scooter-rental/internal/pkg/patch"
)

const (
	DefaultTariffVersion        = "v1"
	PricingAlgoVersion          = "v1"
	DefaultLowChargeThreshold   = 28
	DefaultDepositMultiplier    = 1.25
	DefaultDepositDebtThreshold = 10000
	DefaultFreeRideSeconds      = 5
	DefaultTokenTTLSeconds      = 180
)

// Recognized option keys.
const (
	KeyPriceCoeffSettings   = "price_coeff_settings"
	KeySurge                = "surge"
	KeyLowChargeDiscount    = "low_charge_discount"
	KeyLowChargeThreshold   = "low_charge_threshold"
	KeyPricingRules         = "pricing_rules"
	KeyDepositMultiplier    = "deposit_multiplier"
	KeyDepositDebtThreshold = "deposit_debt_threshold"
	KeyFreeRideSeconds      = "free_ride_seconds_threshold"
	KeyTariffVersion        = "tariff_version"
	KeyDefaultTariffVersion = "default_tariff_version"
	KeyPricingAlgoVersion   = "pricing_algo_version"
	KeyTokenSecret          = "pricing_token_secret"
	KeyTokenTTLSeconds      = "pricing_token_ttl_seconds"
)

// Defaults builds the static base configuration. Each call returns a fresh
// value so callers can never share it by accident.
func Defaults() ConfigMap {
	return ConfigMap{
		KeyPriceCoeffSettings: map[string]any{
			KeyLowChargeThreshold: int64(DefaultLowChargeThreshold),
		},
		KeyPricingRules: map[string]any{
			KeyDepositMultiplier:    DefaultDepositMultiplier,
			KeyDepositDebtThreshold: int64(DefaultDepositDebtThreshold),
			KeyFreeRideSeconds:      int64(DefaultFreeRideSeconds),
		},
		KeyDefaultTariffVersion: DefaultTariffVersion,
		KeyPricingAlgoVersion:   PricingAlgoVersion,
		KeyTokenTTLSeconds:      int64(DefaultTokenTTLSeconds),
	}
}

// Rules is the typed view of a resolved ConfigMap.
type Rules struct {
	Surge                *float64
	LowChargeDiscount    *float64
	LowChargeThreshold   int64
	DepositMultiplier    float64
	DepositDebtThreshold int64
	FreeRideThreshold    time.Duration
	TariffVersion        string
	PricingAlgoVersion   string
	TokenSecret          string
	TokenTTL             time.Duration
}

func (m ConfigMap) Rules() Rules {
	tariff, _ := m.OptString(KeyTariffVersion)
	defaultTariff, _ := m.OptString(KeyDefaultTariffVersion)
	algo, _ := m.OptString(KeyPricingAlgoVersion)

	return Rules{
		Surge:                m.optFloatPtr(KeyPriceCoeffSettings, KeySurge),
		LowChargeDiscount:    m.optFloatPtr(KeyPriceCoeffSettings, KeyLowChargeDiscount),
		LowChargeThreshold:   m.Int(DefaultLowChargeThreshold, KeyPriceCoeffSettings, KeyLowChargeThreshold),
		DepositMultiplier:    m.Float(DefaultDepositMultiplier, KeyPricingRules, KeyDepositMultiplier),
		DepositDebtThreshold: m.Int(DefaultDepositDebtThreshold, KeyPricingRules, KeyDepositDebtThreshold),
		FreeRideThreshold:    time.Duration(m.Int(DefaultFreeRideSeconds, KeyPricingRules, KeyFreeRideSeconds)) * time.Second,
		TariffVersion:        patch.FirstNonZero(tariff, defaultTariff, DefaultTariffVersion),
		PricingAlgoVersion:   patch.FirstNonZero(algo, PricingAlgoVersion),
		TokenSecret:          m.String("", KeyTokenSecret),
		TokenTTL:             time.Duration(m.Int(DefaultTokenTTLSeconds, KeyTokenTTLSeconds)) * time.Second,
	}
}

func (m ConfigMap) optFloatPtr(path ...string) *float64 {
	f, ok := m.OptFloat(path...)
	if !ok {
		return nil
	}
	return &f
}
