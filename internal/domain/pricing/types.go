package pricing

type TariffZone struct {
	ID             string
	PricePerMinute int64
	PriceUnlock    int64
	DefaultDeposit int64
}

type UserProfile struct {
	ID                string
	HasSubscription   bool
	Trusted           bool
	RidesCount        int64
	CurrentDebt       int64
	TotalDebt         int64
	LastPaymentStatus string
}

type ScooterData struct {
	ID     string
	ZoneID string
	Charge int64
}

// Offer is a quoted price. It is never stored server side; its integrity is
// carried by the pricing token bound to it.
type Offer struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	ScooterID      string `json:"scooter_id"`
	ZoneID         string `json:"zone_id"`
	PricePerMinute int64  `json:"price_per_minute"`
	PriceUnlock    int64  `json:"price_unlock"`
	Deposit        int64  `json:"deposit"`
}
