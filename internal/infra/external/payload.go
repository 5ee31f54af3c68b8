package external

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"scooter-rental/internal/domain/pricing"
	"scooter-rental/internal/pkg/errs"
	"scooter-rental/internal/pkg/patch"
)

var ErrInvalidPayload = errs.New("invalid upstream payload")

// flexInt accepts a JSON number or a numeric string. Fractions are truncated.
type flexInt struct {
	value int64
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))
	if raw == "null" {
		return errs.Wrap(ErrInvalidPayload, "null integer")
	}
	raw = strings.Trim(raw, `"`)
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		f.value = n
		return nil
	}
	fl, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return errs.Wrap(ErrInvalidPayload, "not an integer: "+raw)
	}
	f.value = int64(fl)
	return nil
}

type scooterPayload struct {
	ZoneID *string  `json:"zone_id"`
	Charge *flexInt `json:"charge"`
}

func (p scooterPayload) toDomain(id string) (pricing.ScooterData, error) {
	if p.ZoneID == nil || *p.ZoneID == "" {
		return pricing.ScooterData{}, errs.Wrap(ErrInvalidPayload, "scooter zone_id is missing")
	}
	if p.Charge == nil || p.Charge.value < 0 {
		return pricing.ScooterData{}, errs.Wrap(ErrInvalidPayload, "scooter charge is missing or negative")
	}
	return pricing.ScooterData{ID: id, ZoneID: *p.ZoneID, Charge: p.Charge.value}, nil
}

type zonePayload struct {
	PricePerMinute *flexInt `json:"price_per_minute"`
	PriceUnlock    *flexInt `json:"price_unlock"`
	DefaultDeposit *flexInt `json:"default_deposit"`
}

func (p zonePayload) toDomain(id string) (pricing.TariffZone, error) {
	for name, v := range map[string]*flexInt{
		"price_per_minute": p.PricePerMinute,
		"price_unlock":     p.PriceUnlock,
		"default_deposit":  p.DefaultDeposit,
	} {
		if v == nil || v.value < 0 {
			return pricing.TariffZone{}, errs.Wrap(ErrInvalidPayload, "tariff zone "+name+" is missing or negative")
		}
	}
	return pricing.TariffZone{
		ID:             id,
		PricePerMinute: p.PricePerMinute.value,
		PriceUnlock:    p.PriceUnlock.value,
		DefaultDeposit: p.DefaultDeposit.value,
	}, nil
}

// userPayload reads the upstream's "has_subscribtion" spelling and the
// corrected one.
type userPayload struct {
	HasSubscribtion   *bool    `json:"has_subscribtion"`
	HasSubscription   *bool    `json:"has_subscription"`
	Trusted           *bool    `json:"trusted"`
	RidesCount        *flexInt `json:"rides_count"`
	CurrentDebt       *flexInt `json:"current_debt"`
	TotalDebt         *flexInt `json:"total_debt"`
	LastPaymentStatus *string  `json:"last_payment_status"`
}

func (p userPayload) toDomain(id string) (pricing.UserProfile, error) {
	if p.HasSubscribtion == nil && p.HasSubscription == nil {
		return pricing.UserProfile{}, errs.Wrap(ErrInvalidPayload, "user has_subscribtion is missing")
	}
	if p.Trusted == nil {
		return pricing.UserProfile{}, errs.Wrap(ErrInvalidPayload, "user trusted is missing")
	}
	if p.CurrentDebt == nil || p.TotalDebt == nil {
		return pricing.UserProfile{}, errs.Wrap(ErrInvalidPayload, "user debt fields are missing")
	}
	if p.CurrentDebt.value < 0 || p.TotalDebt.value < 0 {
		return pricing.UserProfile{}, errs.Wrap(ErrInvalidPayload, "user debt is negative")
	}

	rides := patch.Coalesce(p.RidesCount, flexInt{})
	return pricing.UserProfile{
		ID:                id,
		HasSubscription:   patch.Coalesce(p.HasSubscribtion, patch.Coalesce(p.HasSubscription, false)),
		Trusted:           *p.Trusted,
		RidesCount:        rides.value,
		CurrentDebt:       p.CurrentDebt.value,
		TotalDebt:         p.TotalDebt.value,
		LastPaymentStatus: patch.Coalesce(p.LastPaymentStatus, ""),
	}, nil
}

type moneyRequest struct {
	UserID  string `json:"user_id"`
	OrderID string `json:"order_id"`
	Amount  int64  `json:"amount"`
}

func decodeJSON(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return errs.Mark(errs.Wrap(err, "failed to decode upstream response"), ErrInvalidPayload)
	}
	return nil
}
