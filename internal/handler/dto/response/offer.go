package response

import (
	"scooter-rental/internal/domain/pricing"
	"scooter-rental/internal/pkg/errs"
	"scooter-rental/internal/usecase/commands"

	"github.com/jinzhu/copier"
)

type OfferPayload struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	ScooterID      string `json:"scooter_id"`
	ZoneID         string `json:"zone_id"`
	PricePerMinute int64  `json:"price_per_minute"`
	PriceUnlock    int64  `json:"price_unlock"`
	Deposit        int64  `json:"deposit"`
}

// OfferResponse always renders all three keys; exactly one of offer or error
// is non-null.
type OfferResponse struct {
	Offer        *OfferPayload `json:"offer"`
	PricingToken *string       `json:"pricing_token"`
	Error        *string       `json:"error"`
}

func FromCreateOfferResult(r *commands.CreateOfferResult) (*OfferResponse, error) {
	if r == nil {
		return nil, errs.New("no offer result to render")
	}
	if r.Offer == nil {
		reason := r.Rejection
		return &OfferResponse{Error: &reason}, nil
	}
	payload, err := FromOffer(*r.Offer)
	if err != nil {
		return nil, err
	}
	token := r.PricingToken
	return &OfferResponse{Offer: payload, PricingToken: &token}, nil
}

func FromOffer(o pricing.Offer) (*OfferPayload, error) {
	var p OfferPayload
	if err := copier.Copy(&p, &o); err != nil {
		return nil, errs.Wrap(err, "failed to copy offer")
	}
	return &p, nil
}
