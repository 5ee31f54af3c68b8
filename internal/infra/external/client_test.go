//go:build unit

package external_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"scooter-rental/internal/domain/pricing"
	"scooter-rental/internal/infra/external"
	"scooter-rental/internal/pkg/config"
	"scooter-rental/internal/pkg/requestid"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc) *external.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return external.NewClient(config.ExternalConfig{
		BaseURL:            srv.URL,
		Timeout:            time.Second,
		PaymentMaxAttempts: 3,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestScooter(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/scooter-data", r.URL.Path)
			assert.Equal(t, "s-1", r.URL.Query().Get("id"))
			writeJSON(w, map[string]any{"zone_id": "korolev", "charge": 57})
		})

		got, err := client.Scooter(context.Background(), "s-1")
		require.NoError(t, err)
		assert.Equal(t, pricing.ScooterData{ID: "s-1", ZoneID: "korolev", Charge: 57}, got)
	})

	t.Run("文字列の数値も受け付ける", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, map[string]any{"zone_id": "korolev", "charge": "42"})
		})

		got, err := client.Scooter(context.Background(), "s-1")
		require.NoError(t, err)
		assert.Equal(t, int64(42), got.Charge)
	})

	t.Run("必須フィールド欠落", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, map[string]any{"charge": 57})
		})

		_, err := client.Scooter(context.Background(), "s-1")
		require.ErrorIs(t, err, external.ErrInvalidPayload)
	})

	t.Run("非2xx", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := client.Scooter(context.Background(), "s-1")
		require.ErrorIs(t, err, external.ErrUpstreamStatus)
	})

	t.Run("不正なJSON", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		})

		_, err := client.Scooter(context.Background(), "s-1")
		require.ErrorIs(t, err, external.ErrInvalidPayload)
	})
}

func TestTariffZone(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/tariff-zone-data", r.URL.Path)
			writeJSON(w, map[string]any{"price_per_minute": 12, "price_unlock": 45, "default_deposit": 300})
		})

		got, err := client.TariffZone(context.Background(), "korolev")
		require.NoError(t, err)
		assert.Equal(t, pricing.TariffZone{ID: "korolev", PricePerMinute: 12, PriceUnlock: 45, DefaultDeposit: 300}, got)
	})

	t.Run("負の金額は拒否", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, map[string]any{"price_per_minute": -1, "price_unlock": 45, "default_deposit": 300})
		})

		_, err := client.TariffZone(context.Background(), "korolev")
		require.ErrorIs(t, err, external.ErrInvalidPayload)
	})
}

func TestUserProfile(t *testing.T) {
	t.Run("上流の綴りを受け付ける", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/user-profile", r.URL.Path)
			writeJSON(w, map[string]any{
				"has_subscribtion":    true,
				"trusted":             false,
				"rides_count":         10,
				"current_debt":        0,
				"total_debt":          15000,
				"last_payment_status": "ok",
			})
		})

		got, err := client.UserProfile(context.Background(), "u-1")
		require.NoError(t, err)
		assert.Equal(t, pricing.UserProfile{
			ID:                "u-1",
			HasSubscription:   true,
			RidesCount:        10,
			TotalDebt:         15000,
			LastPaymentStatus: "ok",
		}, got)
	})

	t.Run("正しい綴りも受け付ける", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, map[string]any{"has_subscription": true, "trusted": true, "current_debt": 0, "total_debt": 0})
		})

		got, err := client.UserProfile(context.Background(), "u-1")
		require.NoError(t, err)
		assert.True(t, got.HasSubscription)
		assert.True(t, got.Trusted)
	})

	t.Run("サブスクリプション欠落", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, map[string]any{"trusted": true, "current_debt": 0, "total_debt": 0})
		})

		_, err := client.UserProfile(context.Background(), "u-1")
		require.ErrorIs(t, err, external.ErrInvalidPayload)
	})
}

func TestConfigs(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/configs", r.URL.Path)
		writeJSON(w, map[string]any{"price_coeff_settings": map[string]any{"surge": 2, "low_charge_discount": 0.75}})
	})

	got, err := client.Configs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2.0, got.Float(0, "price_coeff_settings", "surge"))
	assert.Equal(t, 0.75, got.Float(0, "price_coeff_settings", "low_charge_discount"))
}

func TestPaymentRetries(t *testing.T) {
	orderID := uuid.New()

	t.Run("成功するまで再試行", func(t *testing.T) {
		var calls atomic.Int32
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/hold-money-for-order", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "u-1", body["user_id"])
			assert.Equal(t, orderID.String(), body["order_id"])
			assert.Equal(t, 300.0, body["amount"])

			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusOK)
		})

		require.NoError(t, client.HoldMoney(context.Background(), "u-1", orderID, 300))
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("上限回数で諦める", func(t *testing.T) {
		var calls atomic.Int32
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/clear-money-for-order", r.URL.Path)
			calls.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		})

		err := client.ClearMoney(context.Background(), "u-1", orderID, 165)
		require.ErrorIs(t, err, external.ErrUpstreamStatus)
		assert.Equal(t, int32(3), calls.Load())
	})
}

func TestRequestIDPropagation(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-123", r.Header.Get(requestid.Header))
		writeJSON(w, map[string]any{"zone_id": "korolev", "charge": 57})
	})

	ctx := requestid.NewContext(context.Background(), "req-123")
	_, err := client.Scooter(ctx, "s-1")
	require.NoError(t, err)
}
