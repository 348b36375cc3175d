package ta

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"smarttrade-bot/internal/errors"
	"smarttrade-bot/internal/types"
)

type IndicatorsTestSuite struct {
	suite.Suite
}

func TestIndicatorsSuite(t *testing.T) {
	suite.Run(t, new(IndicatorsTestSuite))
}

func bars(n int, price func(i int) float64, volume func(i int) float64) []types.PriceBar {
	start := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	out := make([]types.PriceBar, n)
	for i := range out {
		p := price(i)
		out[i] = types.PriceBar{
			CloseBid:         p,
			CloseAsk:         p + 0.3,
			HighBid:          p + 0.5,
			LowBid:           p - 0.5,
			LastTradedVolume: volume(i),
			SnapshotTimeUTC:  start.Add(time.Duration(i) * time.Minute),
		}
	}
	return out
}

func constVolume(int) float64 { return 1000 }

func (suite *IndicatorsTestSuite) TestFewerThanMinBarsFails() {
	for n := 0; n < MinBars; n++ {
		_, err := ComputeIndicators(bars(n, func(i int) float64 { return 100 }, constVolume))
		suite.Require().Error(err, "n=%d", n)
		ide, ok := errors.AsInsufficientDataError(err)
		suite.Require().True(ok)
		suite.Equal(MinBars, ide.Required)
		suite.Equal(n, ide.Actual)
	}
}

func (suite *IndicatorsTestSuite) TestFullWindow() {
	window := bars(60, func(i int) float64 { return 2000 + float64(i)*0.25 }, constVolume)
	set, err := ComputeIndicators(window)
	suite.Require().NoError(err)

	suite.True(set.RSI.IsSome())
	suite.True(set.MACD.IsSome())
	suite.True(set.SMA20.IsSome())
	suite.True(set.EMA12.IsSome())
	suite.True(set.EMA26.IsSome())
	suite.True(set.BollingerBands.IsSome())
	suite.True(set.ATR14.IsSome())
	suite.True(set.ProfitLossPercent.IsNone())

	suite.InDelta(2014.75, set.CurrentPrice, 1e-9)
	suite.InDelta(1999.5, set.Support, 1e-9)
	suite.InDelta(2015.25, set.Resistance, 1e-9)
	suite.Equal(1000.0, set.AverageVolume)
	suite.False(set.VolumeSpike)

	suite.InDelta(100.0, set.RSI.Unwrap(), 1e-9)
	suite.Greater(set.MACD.Unwrap().MACD, 0.0)
	suite.Greater(set.EMA12.Unwrap(), set.EMA26.Unwrap())
}

func (suite *IndicatorsTestSuite) TestMinimalWindowComputesEveryIndicator() {
	set, err := ComputeIndicators(bars(MinBars, func(i int) float64 { return 100 }, constVolume))
	suite.Require().NoError(err)
	suite.True(set.RSI.IsSome())
	suite.True(set.MACD.IsSome())
	suite.Equal(0.0, set.MACD.Unwrap().Histogram)
	suite.True(set.ATR14.IsSome())
	suite.InDelta(1.0, set.ATR14.Unwrap(), 1e-9)
}

func (suite *IndicatorsTestSuite) TestVolumeSpike() {
	window := bars(30, func(int) float64 { return 100 }, func(i int) float64 {
		if i == 29 {
			return 5000
		}
		return 1000
	})
	set, err := ComputeIndicators(window)
	suite.Require().NoError(err)
	// (29*1000 + 5000) / 30 = 1133.33
	suite.Equal(1133.0, set.AverageVolume)
	suite.True(set.VolumeSpike)
}

func (suite *IndicatorsTestSuite) TestSupportResistanceRounded() {
	window := bars(30, func(i int) float64 { return 100.1234 + float64(i%3)*0.001 }, constVolume)
	set, err := ComputeIndicators(window)
	suite.Require().NoError(err)
	suite.InDelta(99.62, set.Support, 1e-9)
	suite.InDelta(100.63, set.Resistance, 1e-9)
}

func (suite *IndicatorsTestSuite) TestRound2() {
	suite.Equal(1.01, Round2(1.005000001))
	suite.Equal(-1.1, Round2(-1.1000001))
	suite.Equal(2.0, Round2(1.999))
}
