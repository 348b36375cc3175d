package types

import "time"

// PriceBar is one bid/ask snapshot of the instrument. Bars are ordered oldest first.
type PriceBar struct {
	CloseBid         float64   `json:"closeBid"`
	CloseAsk         float64   `json:"closeAsk"`
	HighBid          float64   `json:"highBid"`
	LowBid           float64   `json:"lowBid"`
	LastTradedVolume float64   `json:"lastTradedVolume"`
	SnapshotTimeUTC  time.Time `json:"snapshotTimeUtc"`
}

// Session holds the broker security credentials of one cycle.
type Session struct {
	SecurityToken string `json:"-"`
	CST           string `json:"-"`
}

// Valid reports whether both tokens are present.
func (s Session) Valid() bool {
	return s.SecurityToken != "" && s.CST != ""
}

// MarketState is the broker's view of the instrument right now.
type MarketState struct {
	Epic         string              `json:"epic"`
	IsOpen       bool                `json:"isOpen"`
	Status       string              `json:"status"`
	OpeningHours map[string][]string `json:"openingHours,omitempty"`
}

// Direction is the broker-side side of a deal.
type Direction string

const (
	DirectionBuy  Direction = "BUY"
	DirectionSell Direction = "SELL"
)

// OpenPosition is one live broker position.
type OpenPosition struct {
	DealID    string    `json:"dealId"`
	Epic      string    `json:"epic"`
	Direction Direction `json:"direction"`
	Size      float64   `json:"size"`
	Level     float64   `json:"level"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Position maps the broker direction onto the engine's position state.
func (p OpenPosition) Position() Position {
	if p.Direction == DirectionBuy {
		return PositionLong
	}
	return PositionShort
}

// OrderRequest opens a new position.
type OrderRequest struct {
	Epic           string    `json:"epic" validate:"required"`
	Direction      Direction `json:"direction" validate:"required,oneof=BUY SELL"`
	Size           float64   `json:"size" validate:"gt=0"`
	GuaranteedStop bool      `json:"guaranteedStop"`
	StopDistance   float64   `json:"stopDistance" validate:"gt=0"`
	ProfitDistance float64   `json:"profitDistance" validate:"gt=0"`
}

// DealReference identifies an accepted order.
type DealReference struct {
	Reference string `json:"dealReference"`
}
