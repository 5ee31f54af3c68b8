package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"scooter-rental/internal/domain/pricing"
	"scooter-rental/internal/domain/settings"
	"scooter-rental/internal/pkg/config"
	"scooter-rental/internal/pkg/errs"
	"scooter-rental/internal/pkg/metrics"
	"scooter-rental/internal/pkg/requestid"

	"github.com/google/uuid"
)

const (
	pathScooter   = "/scooter-data"
	pathZone      = "/tariff-zone-data"
	pathUser      = "/user-profile"
	pathConfigs   = "/configs"
	pathHoldMoney = "/hold-money-for-order"
	pathClear     = "/clear-money-for-order"

	maxBodyBytes = 1 << 20
)

var ErrUpstreamStatus = errs.New("upstream returned non-2xx status")

// Client talks to the scooter, tariff, user, config and payment services.
type Client struct {
	baseURL            string
	httpClient         *http.Client
	paymentMaxAttempts int
	logger             *slog.Logger
}

func NewClient(cfg config.ExternalConfig, logger *slog.Logger) *Client {
	attempts := cfg.PaymentMaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &Client{
		baseURL:            cfg.BaseURL,
		httpClient:         &http.Client{Timeout: cfg.Timeout},
		paymentMaxAttempts: attempts,
		logger:             logger,
	}
}

func (c *Client) Scooter(ctx context.Context, scooterID string) (pricing.ScooterData, error) {
	var p scooterPayload
	if err := c.getJSON(ctx, pathScooter, url.Values{"id": {scooterID}}, &p); err != nil {
		return pricing.ScooterData{}, err
	}
	return p.toDomain(scooterID)
}

func (c *Client) TariffZone(ctx context.Context, zoneID string) (pricing.TariffZone, error) {
	var p zonePayload
	if err := c.getJSON(ctx, pathZone, url.Values{"id": {zoneID}}, &p); err != nil {
		return pricing.TariffZone{}, err
	}
	return p.toDomain(zoneID)
}

func (c *Client) UserProfile(ctx context.Context, userID string) (pricing.UserProfile, error) {
	var p userPayload
	if err := c.getJSON(ctx, pathUser, url.Values{"id": {userID}}, &p); err != nil {
		return pricing.UserProfile{}, err
	}
	return p.toDomain(userID)
}

// Configs returns the dynamic overlay. Nested objects decode as
// map[string]any and numbers as json.Number.
func (c *Client) Configs(ctx context.Context) (settings.ConfigMap, error) {
	var m map[string]any
	if err := c.getJSON(ctx, pathConfigs, nil, &m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errs.Wrap(ErrInvalidPayload, "configs payload is not an object")
	}
	return settings.ConfigMap(m), nil
}

func (c *Client) HoldMoney(ctx context.Context, userID string, orderID uuid.UUID, amount int64) error {
	return c.postMoney(ctx, pathHoldMoney, "hold", moneyRequest{UserID: userID, OrderID: orderID.String(), Amount: amount})
}

func (c *Client) ClearMoney(ctx context.Context, userID string, orderID uuid.UUID, amount int64) error {
	return c.postMoney(ctx, pathClear, "clear", moneyRequest{UserID: userID, OrderID: orderID.String(), Amount: amount})
}

// postMoney retries transport errors and non-2xx responses without backoff.
func (c *Client) postMoney(ctx context.Context, path, operation string, body moneyRequest) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errs.Wrap(err, "failed to encode payment request")
	}

	var lastErr error
	for attempt := 1; attempt <= c.paymentMaxAttempts; attempt++ {
		_, lastErr = c.do(ctx, http.MethodPost, path, nil, payload)
		if lastErr == nil {
			c.logger.InfoContext(ctx, "payment call succeeded",
				"operation", operation,
				"user_id", body.UserID,
				"order_id", body.OrderID,
				"amount", body.Amount,
				"attempt", attempt)
			return nil
		}
		if ctx.Err() != nil {
			break
		}
		c.logger.WarnContext(ctx, "payment call failed",
			"operation", operation,
			"order_id", body.OrderID,
			"attempt", attempt,
			"error", lastErr.Error())
	}

	metrics.PaymentFailuresTotal.WithLabelValues(operation).Inc()
	return errs.Wrap(lastErr, fmt.Sprintf("%s money failed after %d attempts", operation, c.paymentMaxAttempts))
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	body, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return decodeJSON(body, v)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload []byte) (_ []byte, err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metrics.ExternalCallDuration.WithLabelValues(path, outcome).Observe(time.Since(start).Seconds())
	}()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build upstream request")
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.Header, id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.Wrap(err, method+" "+path+" failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errs.Wrap(err, "failed to read upstream response")
	}

	c.logger.DebugContext(ctx, "upstream call completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errs.Wrap(ErrUpstreamStatus, fmt.Sprintf("%s %s returned %d", method, path, resp.StatusCode))
	}
	return body, nil
}
