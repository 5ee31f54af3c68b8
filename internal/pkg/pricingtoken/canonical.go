package pricingtoken

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"scooter-rental/internal/domain/pricing"
)

// canonicalOffer fixes the hashed field set; declaration order is the
// lexicographic key order.
type canonicalOffer struct {
	Deposit        int64  `json:"deposit"`
	ID             string `json:"id"`
	PricePerMinute int64  `json:"price_per_minute"`
	PriceUnlock    int64  `json:"price_unlock"`
	ScooterID      string `json:"scooter_id"`
	UserID         string `json:"user_id"`
	ZoneID         string `json:"zone_id"`
}

// CanonicalOfferJSON renders the priced fields of offer as compact, ASCII-only
// JSON with sorted keys. Non-ASCII runes are written as \uXXXX escapes.
func CanonicalOfferJSON(offer pricing.Offer) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(canonicalOffer{
		Deposit:        offer.Deposit,
		ID:             offer.ID,
		PricePerMinute: offer.PricePerMinute,
		PriceUnlock:    offer.PriceUnlock,
		ScooterID:      offer.ScooterID,
		UserID:         offer.UserID,
		ZoneID:         offer.ZoneID,
	})
	if err != nil {
		return nil, err
	}
	return escapeNonASCII(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// OfferHash is the lowercase hex SHA-256 of the canonical offer JSON.
func OfferHash(offer pricing.Offer) (string, error) {
	canonical, err := CanonicalOfferJSON(offer)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func escapeNonASCII(in []byte) []byte {
	out := make([]byte, 0, len(in))
	for len(in) > 0 {
		r, size := utf8.DecodeRune(in)
		in = in[size:]
		if r < utf8.RuneSelf {
			out = append(out, byte(r))
			continue
		}
		if r > 0xFFFF {
			hi, lo := utf16.EncodeRune(r)
			out = fmt.Appendf(out, `\u%04x\u%04x`, hi, lo)
			continue
		}
		out = fmt.Appendf(out, `\u%04x`, r)
	}
	return out
}
