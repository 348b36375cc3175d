package engine

import (
	"github.com/shopspring/decimal"

	"smarttrade-bot/internal/errors"
)

var hundred = decimal.NewFromInt(100)

// PositionSize converts a notional amount into a deal size at price, rounded to 2 decimals.
func PositionSize(amount, price float64) (float64, error) {
	if price <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidParameter, "price must be positive, got %v", price)
	}
	size := decimal.NewFromFloat(amount).Div(decimal.NewFromFloat(price)).Round(2)
	return size.InexactFloat64(), nil
}

// PriceDistance is pct percent of price, rounded to 2 decimals.
func PriceDistance(price, pct float64) float64 {
	return decimal.NewFromFloat(price).
		Mul(decimal.NewFromFloat(pct)).
		Div(hundred).
		Round(2).
		InexactFloat64()
}
