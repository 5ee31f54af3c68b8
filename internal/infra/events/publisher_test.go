//go:build unit

package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"scooter-rental/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, slog.New(slog.NewTextHandler(io.Discard, nil)))

	event := shared.OrderEvent{
		Type:       shared.EventPaymentClearFailed,
		OrderID:    uuid.New(),
		UserID:     "user-1",
		Amount:     165,
		OccurredAt: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.Publish(context.Background(), event))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, event.OrderID.String(), string(msg.Key))
	assert.Equal(t, []kafka.Header{{Key: "type", Value: []byte("payment_clear_failed")}}, msg.Headers)

	var decoded shared.OrderEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event, decoded)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteFailure(t *testing.T) {
	w := &fakeWriter{err: assert.AnError}
	p := newKafkaPublisher(w, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := p.Publish(context.Background(), shared.OrderEvent{Type: shared.EventOrderStarted, OrderID: uuid.New()})
	require.ErrorIs(t, err, assert.AnError)
}

func TestKafkaPublisher_UsesHashBalancer(t *testing.T) {
	p := NewKafkaPublisher([]string{"localhost:9092"}, "order-events", slog.New(slog.NewTextHandler(io.Discard, nil)))
	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)

	assert.Equal(t, "order-events", w.Topic)
	assert.IsType(t, &kafka.Hash{}, w.Balancer)
}
