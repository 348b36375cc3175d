package capital

import (
	"time"

	"smarttrade-bot/internal/types"
)

type sessionRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type sessionTokens struct {
	SecurityToken string `validate:"required"`
	CST           string `validate:"required"`
}

type openingHours struct {
	Mon  []string `json:"mon"`
	Tue  []string `json:"tue"`
	Wed  []string `json:"wed"`
	Thu  []string `json:"thu"`
	Fri  []string `json:"fri"`
	Sat  []string `json:"sat"`
	Sun  []string `json:"sun"`
	Zone string   `json:"zone"`
}

func (o openingHours) byDay() map[string][]string {
	return map[string][]string{
		"mon": o.Mon, "tue": o.Tue, "wed": o.Wed, "thu": o.Thu,
		"fri": o.Fri, "sat": o.Sat, "sun": o.Sun,
	}
}

type marketDetailsResponse struct {
	Instrument struct {
		Epic         string       `json:"epic" validate:"required"`
		Name         string       `json:"name"`
		OpeningHours openingHours `json:"openingHours"`
	} `json:"instrument"`
	Snapshot struct {
		MarketStatus string  `json:"marketStatus" validate:"required"`
		Bid          float64 `json:"bid"`
		Offer        float64 `json:"offer"`
	} `json:"snapshot"`
}

type positionItem struct {
	Position struct {
		DealID         string  `json:"dealId" validate:"required"`
		DealReference  string  `json:"dealReference"`
		Size           float64 `json:"size" validate:"gt=0"`
		Direction      string  `json:"direction" validate:"required,oneof=BUY SELL"`
		Level          float64 `json:"level" validate:"gt=0"`
		Currency       string  `json:"currency"`
		CreatedDateUTC string  `json:"createdDateUTC"`
		GuaranteedStop bool    `json:"guaranteedStop"`
	} `json:"position"`
	Market struct {
		Epic         string `json:"epic" validate:"required"`
		MarketStatus string `json:"marketStatus"`
	} `json:"market"`
}

type positionsResponse struct {
	Positions []positionItem `json:"positions" validate:"dive"`
}

// pricePoint uses pointers so missing quotes are rejected rather than read as zero.
type pricePoint struct {
	Bid *float64 `json:"bid" validate:"required"`
	Ask *float64 `json:"ask" validate:"required"`
}

type priceOutput struct {
	SnapshotTimeUTC  string      `json:"snapshotTimeUTC" validate:"required"`
	ClosePrice       *pricePoint `json:"closePrice" validate:"required"`
	HighPrice        *pricePoint `json:"highPrice" validate:"required"`
	LowPrice         *pricePoint `json:"lowPrice" validate:"required"`
	LastTradedVolume float64     `json:"lastTradedVolume" validate:"gte=0"`
}

type pricesResponse struct {
	Prices         []priceOutput `json:"prices" validate:"dive"`
	InstrumentType string        `json:"instrumentType"`
}

type dealReferenceResponse struct {
	DealReference string `json:"dealReference" validate:"required"`
}

// utcLayouts are the timestamp formats used by the price and position endpoints.
var utcLayouts = []string{"2006-01-02T15:04:05", "2006-01-02T15:04:05.000", time.RFC3339}

func parseUTC(s string) (time.Time, bool) {
	for _, layout := range utcLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func (p positionItem) toOpenPosition() types.OpenPosition {
	created, _ := parseUTC(p.Position.CreatedDateUTC)
	return types.OpenPosition{
		DealID:    p.Position.DealID,
		Epic:      p.Market.Epic,
		Direction: types.Direction(p.Position.Direction),
		Size:      p.Position.Size,
		Level:     p.Position.Level,
		CreatedAt: created,
	}
}
