package ta

import (
	"math"

	"github.com/moznion/go-optional"

	"smarttrade-bot/internal/errors"
	"smarttrade-bot/internal/types"
)

const (
	RSIPeriod      = 14
	MACDFast       = 12
	MACDSlow       = 26
	MACDSignal     = 9
	SMAPeriod      = 20
	BBPeriod       = 20
	BBStdDev       = 2.0
	ATRPeriod      = 14
	VolumeSpikeMul = 1.5

	// MinBars is the hard floor for ComputeIndicators, set by the EMA-26/MACD slow leg.
	MinBars = MACDSlow
)

// ComputeIndicators computes the indicator set for the last bar of an oldest-first window.
// Support and resistance are the window's low/high extremes, not detected pivots.
func ComputeIndicators(bars []types.PriceBar) (types.IndicatorSet, error) {
	if len(bars) < MinBars {
		return types.IndicatorSet{}, errors.NewInsufficientDataErrorf(MinBars, len(bars), "",
			"insufficient data for technical analysis: need at least %d periods, got %d", MinBars, len(bars))
	}

	closes := make([]float64, len(bars))
	highs := make([]float64, len(bars))
	lows := make([]float64, len(bars))
	vols := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.CloseBid
		highs[i] = b.HighBid
		lows[i] = b.LowBid
		vols[i] = b.LastTradedVolume
	}

	set := types.IndicatorSet{
		RSI:   some(RSI(closes, RSIPeriod)),
		SMA20: some(SMA(closes, SMAPeriod)),
		EMA12: some(EMA(closes, MACDFast)),
		EMA26: some(EMA(closes, MACDSlow)),
		ATR14: some(ATR(highs, lows, closes, ATRPeriod)),
	}

	if m, s, h, _, ok := MACD(closes, MACDFast, MACDSlow, MACDSignal); ok {
		set.MACD = optional.Some(types.MACD{MACD: m, Signal: s, Histogram: h})
	}
	if mid, up, low := Bollinger(closes, BBPeriod, BBStdDev); !math.IsNaN(mid) {
		set.BollingerBands = optional.Some(types.BollingerBands{Upper: up, Middle: mid, Lower: low})
	}

	avgVol := 0.0
	for _, v := range vols {
		avgVol += v
	}
	avgVol /= float64(len(vols))
	set.AverageVolume = math.Round(avgVol)
	set.VolumeSpike = vols[len(vols)-1] > avgVol*VolumeSpikeMul

	support, resistance := lows[0], highs[0]
	for i := range bars {
		support = math.Min(support, lows[i])
		resistance = math.Max(resistance, highs[i])
	}
	set.Support = Round2(support)
	set.Resistance = Round2(resistance)
	set.CurrentPrice = closes[len(closes)-1]

	return set, nil
}

// Round2 rounds half away from zero to two decimals.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func some(v float64) optional.Option[float64] {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return optional.None[float64]()
	}
	return optional.Some(v)
}
