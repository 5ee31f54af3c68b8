package components

import (
	"context"
	"log/slog"

	"scooter-rental/internal/infra/events"
	"scooter-rental/internal/pkg/config"
	"scooter-rental/internal/usecase/shared"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(NewEventPublisher),
)

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.OrderEventPublisher {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Info("Kafkaブローカー未設定のため注文イベントは送信しません")
		return events.NopPublisher{}
	}

	publisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}
