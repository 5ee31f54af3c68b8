package request

import (
	"scooter-rental/internal/domain/pricing"
)

type CreateOfferRequest struct {
	ScooterID string `json:"scooter_id" binding:"required"`
	UserID    string `json:"user_id" binding:"required"`
}

// OfferPayload is the offer echoed back by the client. Prices are pointers so
// that a missing field is rejected while an explicit 0 is accepted.
type OfferPayload struct {
	ID             string `json:"id" binding:"required"`
	UserID         string `json:"user_id" binding:"required"`
	ScooterID      string `json:"scooter_id" binding:"required"`
	ZoneID         string `json:"zone_id" binding:"required"`
	PricePerMinute *int64 `json:"price_per_minute" binding:"required"`
	PriceUnlock    *int64 `json:"price_unlock" binding:"required"`
	Deposit        *int64 `json:"deposit" binding:"required"`
}

type StartOrderRequest struct {
	Offer        *OfferPayload `json:"offer" binding:"required"`
	PricingToken string        `json:"pricing_token" binding:"required"`
}

func (p *OfferPayload) ToDomain() pricing.Offer {
	return pricing.Offer{
		ID:             p.ID,
		UserID:         p.UserID,
		ScooterID:      p.ScooterID,
		ZoneID:         p.ZoneID,
		PricePerMinute: *p.PricePerMinute,
		PriceUnlock:    *p.PriceUnlock,
		Deposit:        *p.Deposit,
	}
}
