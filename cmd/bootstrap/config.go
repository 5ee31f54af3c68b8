package bootstrap

import (
	"scooter-rental/internal/domain/settings"
	"scooter-rental/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewBaseConfigMap,
	),
)

// NewBaseConfigMap seeds the static defaults with the env-provided pricing
// settings. Dynamic configs are merged on top of this map at runtime.
func NewBaseConfigMap(cfg config.Config) settings.ConfigMap {
	return settings.Defaults().Merge(settings.ConfigMap{
		settings.KeyTokenSecret:          cfg.Pricing.TokenSecret,
		settings.KeyTokenTTLSeconds:      int64(cfg.Pricing.TokenTTL.Seconds()),
		settings.KeyPricingAlgoVersion:   cfg.Pricing.AlgoVersion,
		settings.KeyDefaultTariffVersion: cfg.Pricing.DefaultTariffVersion,
	})
}
