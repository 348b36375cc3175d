package decision

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"smarttrade-bot/internal/types"
)

type FuserTestSuite struct {
	suite.Suite
	fuser *Fuser
}

func TestFuserSuite(t *testing.T) {
	suite.Run(t, new(FuserTestSuite))
}

func (suite *FuserTestSuite) SetupTest() {
	suite.fuser = NewFuser()
}

func forecast(p types.Prediction, confidence float64) types.Forecast {
	return types.Forecast{Prediction: p, Confidence: confidence, Reason: "test"}
}

func (suite *FuserTestSuite) TestBuyUpwardHighConfidence() {
	result := suite.fuser.Decide(types.ActionBuy, forecast(types.PredictionUpward, 80), types.PositionNone)

	suite.InDelta(1.0, result.Alignment, 1e-9)
	suite.InDelta(0.48, result.FundamentalWeight, 1e-9)
	suite.InDelta(0.88, result.Consensus, 1e-9)
	suite.True(result.ShouldTakeAction)
	suite.Equal(types.ActionBuy, result.FinalAction)
	suite.Equal("Technical analysis suggests BUY and fundamental analysis predicts UPWARD with 80% confidence. "+
		"Fundamental weight: 48%, Alignment: 100%, Consensus: 88% (threshold: 70%). Action approved.", result.Reasoning)
}

func (suite *FuserTestSuite) TestKeepStableRejected() {
	result := suite.fuser.Decide(types.ActionKeep, forecast(types.PredictionStable, 50), types.PositionNone)

	suite.Equal(0.0, result.Alignment)
	suite.InDelta(0.4, result.Consensus, 1e-9)
	suite.False(result.ShouldTakeAction)
	suite.Equal(types.ActionKeep, result.FinalAction)
	suite.Contains(result.Reasoning, "Action rejected - insufficient consensus.")
}

func (suite *FuserTestSuite) TestKeepStableWithPositionStillKeeps() {
	for _, pos := range []types.Position{types.PositionLong, types.PositionShort} {
		result := suite.fuser.Decide(types.ActionKeep, forecast(types.PredictionStable, 50), pos)
		suite.InDelta(0.64, result.Consensus, 1e-9)
		suite.False(result.ShouldTakeAction)
		suite.Equal(types.ActionKeep, result.FinalAction)
	}
}

func (suite *FuserTestSuite) TestCloseLongOnDownward() {
	result := suite.fuser.Decide(types.ActionClose, forecast(types.PredictionDownward, 90), types.PositionLong)
	suite.InDelta(0.832, result.Consensus, 1e-9)
	suite.True(result.ShouldTakeAction)
	suite.Equal(types.ActionClose, result.FinalAction)
}

func (suite *FuserTestSuite) TestBelowHighConfidenceFallsBackToTechnical() {
	result := suite.fuser.Decide(types.ActionBuy, forecast(types.PredictionUpward, 70), types.PositionNone)
	suite.InDelta(0.82, result.Consensus, 1e-9)
	suite.True(result.ShouldTakeAction)
	suite.Equal(types.ActionBuy, result.FinalAction)
}

func (suite *FuserTestSuite) TestApprovedStableHighConfidenceKeeps() {
	// 0.4 + 0.6 * 1.0 * 0.5 sits exactly on the threshold.
	result := suite.fuser.Decide(types.ActionBuy, forecast(types.PredictionStable, 100), types.PositionNone)
	suite.True(result.ShouldTakeAction)
	suite.Equal(types.ActionKeep, result.FinalAction)
}

func (suite *FuserTestSuite) TestOppositePredictionRejected() {
	result := suite.fuser.Decide(types.ActionSell, forecast(types.PredictionUpward, 95), types.PositionNone)
	suite.Equal(0.0, result.Alignment)
	suite.False(result.ShouldTakeAction)
	suite.Equal(types.ActionKeep, result.FinalAction)
}

func (suite *FuserTestSuite) TestHighConfidenceOverridesByPosition() {
	testCases := []struct {
		name       string
		technical  types.Action
		prediction types.Prediction
		position   types.Position
		expected   types.Action
	}{
		{"upward flat buys", types.ActionBuy, types.PredictionUpward, types.PositionNone, types.ActionBuy},
		{"keep short against upward is rejected", types.ActionKeep, types.PredictionUpward, types.PositionShort, types.ActionKeep},
		{"upward long keeps", types.ActionKeep, types.PredictionUpward, types.PositionLong, types.ActionKeep},
		{"downward flat sells", types.ActionSell, types.PredictionDownward, types.PositionNone, types.ActionSell},
		{"downward long closes", types.ActionClose, types.PredictionDownward, types.PositionLong, types.ActionClose},
		{"downward short keeps", types.ActionKeep, types.PredictionDownward, types.PositionShort, types.ActionKeep},
		{"close short on upward", types.ActionClose, types.PredictionUpward, types.PositionShort, types.ActionClose},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			result := suite.fuser.Decide(tc.technical, forecast(tc.prediction, 100), tc.position)
			suite.Equal(tc.expected, result.FinalAction)
		})
	}
}

func (suite *FuserTestSuite) TestAlignmentTableRows() {
	all := []types.Position{types.PositionNone, types.PositionLong, types.PositionShort}
	testCases := []struct {
		action     types.Action
		prediction types.Prediction
		positions  []types.Position
		expected   float64
	}{
		{types.ActionBuy, types.PredictionUpward, all, 1.0},
		{types.ActionSell, types.PredictionDownward, all, 1.0},
		{types.ActionBuy, types.PredictionStable, all, 0.5},
		{types.ActionSell, types.PredictionStable, all, 0.5},
		{types.ActionBuy, types.PredictionDownward, all, 0.0},
		{types.ActionSell, types.PredictionUpward, all, 0.0},

		{types.ActionClose, types.PredictionDownward, []types.Position{types.PositionLong}, 0.8},
		{types.ActionClose, types.PredictionStable, []types.Position{types.PositionLong}, 0.8},
		{types.ActionClose, types.PredictionUpward, []types.Position{types.PositionLong}, 0.3},
		{types.ActionClose, types.PredictionUpward, []types.Position{types.PositionShort}, 0.8},
		{types.ActionClose, types.PredictionStable, []types.Position{types.PositionShort}, 0.8},
		{types.ActionClose, types.PredictionDownward, []types.Position{types.PositionShort}, 0.3},

		{types.ActionKeep, types.PredictionUpward, []types.Position{types.PositionLong}, 0.8},
		{types.ActionKeep, types.PredictionStable, []types.Position{types.PositionLong}, 0.8},
		{types.ActionKeep, types.PredictionDownward, []types.Position{types.PositionLong}, 0.3},
		{types.ActionKeep, types.PredictionDownward, []types.Position{types.PositionShort}, 0.8},
		{types.ActionKeep, types.PredictionStable, []types.Position{types.PositionShort}, 0.8},
		{types.ActionKeep, types.PredictionUpward, []types.Position{types.PositionShort}, 0.3},

		{types.ActionClose, types.PredictionDownward, []types.Position{types.PositionNone}, 0.0},
		{types.ActionKeep, types.PredictionUpward, []types.Position{types.PositionNone}, 0.0},
		{types.ActionKeep, types.PredictionStable, []types.Position{types.PositionNone}, 0.0},
	}

	for _, tc := range testCases {
		for _, pos := range tc.positions {
			suite.Equal(tc.expected, Alignment(tc.action, tc.prediction, pos),
				"%s/%s/%s", tc.action, tc.prediction, pos)
		}
	}
}
