//go:build unit || e2e

package builder

import (
	"scooter-rental/internal/domain/pricing"
	reqdto "scooter-rental/internal/handler/dto/request"

	"github.com/google/uuid"
)

type OfferBuilder struct {
	ID             string
	UserID         string
	ScooterID      string
	ZoneID         string
	PricePerMinute int64
	PriceUnlock    int64
	Deposit        int64
}

func NewOfferBuilder() *OfferBuilder {
	return &OfferBuilder{
		ID:             uuid.NewString(),
		UserID:         "user-1",
		ScooterID:      "scooter-1",
		ZoneID:         "korolev",
		PricePerMinute: 12,
		PriceUnlock:    45,
		Deposit:        300,
	}
}

func (o *OfferBuilder) With(mutate func(*OfferBuilder)) *OfferBuilder {
	if mutate != nil {
		mutate(o)
	}
	return o
}

// Build methods
func (o *OfferBuilder) BuildDomain() pricing.Offer {
	return pricing.Offer{
		ID:             o.ID,
		UserID:         o.UserID,
		ScooterID:      o.ScooterID,
		ZoneID:         o.ZoneID,
		PricePerMinute: o.PricePerMinute,
		PriceUnlock:    o.PriceUnlock,
		Deposit:        o.Deposit,
	}
}

func (o *OfferBuilder) BuildPayloadDTO() reqdto.OfferPayload {
	ppm, unlock, deposit := o.PricePerMinute, o.PriceUnlock, o.Deposit
	return reqdto.OfferPayload{
		ID:             o.ID,
		UserID:         o.UserID,
		ScooterID:      o.ScooterID,
		ZoneID:         o.ZoneID,
		PricePerMinute: &ppm,
		PriceUnlock:    &unlock,
		Deposit:        &deposit,
	}
}

func (o *OfferBuilder) BuildStartRequestDTO(token string) reqdto.StartOrderRequest {
	payload := o.BuildPayloadDTO()
	return reqdto.StartOrderRequest{
		Offer:        &payload,
		PricingToken: token,
	}
}

func (o *OfferBuilder) BuildCreateRequestDTO() reqdto.CreateOfferRequest {
	return reqdto.CreateOfferRequest{
		ScooterID: o.ScooterID,
		UserID:    o.UserID,
	}
}
