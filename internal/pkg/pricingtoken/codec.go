package pricingtoken

import (
	"errors"
	"time"

	"scooter-rental/internal/domain/pricing"
	"scooter-rental/internal/domain/settings"
	"scooter-rental/internal/pkg/clock"
	"scooter-rental/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken          = errors.New("pricing_token is invalid or expired")
	ErrMissingFields         = errors.New("pricing_token is missing required fields")
	ErrUserMismatch          = errors.New("pricing_token.user_id mismatch")
	ErrOfferTampered         = errors.New("offer payload was tampered with")
	ErrTokenExpired          = errors.New("pricing_token expired")
	ErrTariffVersionMismatch = errors.New("pricing_token.tariff_version mismatch")
	ErrAlgoVersionMismatch   = errors.New("pricing_token.pricing_algo_version mismatch")
	ErrSecretNotConfigured   = errors.New("pricing token secret is not configured")
)

// naiveISOLayout accepts expires_at values written without a zone offset,
// which are read as UTC.
const naiveISOLayout = "2006-01-02T15:04:05.999999999"

// Claims is the signed payload bound to exactly one offer and one user.
type Claims struct {
	UserID             string `json:"user_id"`
	ExpiresAt          string `json:"expires_at"`
	TariffVersion      string `json:"tariff_version"`
	PricingAlgoVersion string `json:"pricing_algo_version"`
	OfferHash          string `json:"offer_hash"`
	jwt.RegisteredClaims
}

func (c *Claims) complete() bool {
	return c.UserID != "" && c.ExpiresAt != "" && c.TariffVersion != "" &&
		c.PricingAlgoVersion != "" && c.OfferHash != ""
}

// Expiry parses the embedded expires_at claim.
func (c *Claims) Expiry() (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, c.ExpiresAt); err == nil {
		return t.UTC(), nil
	}
	return time.ParseInLocation(naiveISOLayout, c.ExpiresAt, time.UTC)
}

type Codec struct {
	clock clock.Clock
}

func NewCodec(clk clock.Clock) *Codec {
	return &Codec{clock: clk}
}

func (c *Codec) Generate(offer pricing.Offer, userID, tariffVersion, algoVersion string, ttl time.Duration, secret string) (string, error) {
	if secret == "" {
		return "", ErrSecretNotConfigured
	}
	hash, err := OfferHash(offer)
	if err != nil {
		return "", errs.Wrap(err, "failed to hash offer")
	}

	expiresAt := c.clock.Now().UTC().Add(ttl)
	claims := Claims{
		UserID:             userID,
		ExpiresAt:          expiresAt.Format(time.RFC3339Nano),
		TariffVersion:      tariffVersion,
		PricingAlgoVersion: algoVersion,
		OfferHash:          hash,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errs.Wrap(err, "failed to sign pricing token")
	}
	return signed, nil
}

// Decode verifies signature, algorithm and exp, then checks that every
// pricing claim is present.
func (c *Codec) Decode(tokenString, secret string) (*Claims, error) {
	if secret == "" {
		return nil, ErrSecretNotConfigured
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.clock.Now),
	)
	if err != nil {
		return nil, errs.WithCause(ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.complete() {
		return nil, ErrMissingFields
	}
	return claims, nil
}

// Validate proves that token was issued by this service for exactly offer and
// is still redeemable under cfg. Checks run in a fixed order and the first
// failure is returned.
func (c *Codec) Validate(offer pricing.Offer, tokenString string, cfg settings.ConfigMap) (*Claims, error) {
	rules := cfg.Rules()

	claims, err := c.Decode(tokenString, rules.TokenSecret)
	if err != nil {
		return nil, err
	}

	if claims.UserID != offer.UserID {
		return nil, ErrUserMismatch
	}

	hash, err := OfferHash(offer)
	if err != nil {
		return nil, errs.WithCause(ErrOfferTampered, err)
	}
	if claims.OfferHash != hash {
		return nil, ErrOfferTampered
	}

	expiresAt, err := claims.Expiry()
	if err != nil {
		return nil, errs.WithCause(ErrInvalidToken, err)
	}
	if c.clock.Now().After(expiresAt) {
		return nil, ErrTokenExpired
	}

	if claims.TariffVersion != rules.TariffVersion {
		return nil, ErrTariffVersionMismatch
	}
	if claims.PricingAlgoVersion != rules.PricingAlgoVersion {
		return nil, ErrAlgoVersionMismatch
	}

	return claims, nil
}
