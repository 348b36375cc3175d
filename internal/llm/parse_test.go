package llm

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"smarttrade-bot/internal/errors"
	"smarttrade-bot/internal/types"
)

type ParseTestSuite struct {
	suite.Suite
}

func TestParseSuite(t *testing.T) {
	suite.Run(t, new(ParseTestSuite))
}

func (suite *ParseTestSuite) TestFencedBlock() {
	reply := "Here is my view.\n```json\n{\"prediction\": \"UPWARD\", \"confidence\": 82, \"reason\": \"Dovish Fed\"}\n```\nGood luck."

	f, err := ParseForecast(reply)
	suite.Require().NoError(err)
	suite.Equal(types.Forecast{Prediction: types.PredictionUpward, Confidence: 82, Reason: "Dovish Fed"}, f)
}

func (suite *ParseTestSuite) TestUnlabelledFence() {
	f, err := ParseForecast("```\n{\"prediction\":\"DOWNWARD\",\"confidence\":70,\"reason\":\"Strong dollar\"}\n```")
	suite.Require().NoError(err)
	suite.Equal(types.PredictionDownward, f.Prediction)
}

func (suite *ParseTestSuite) TestBareJSON() {
	f, err := ParseForecast(`  {"prediction":"stable","confidence":40.5,"reason":"Mixed data"}  `)
	suite.Require().NoError(err)
	suite.Equal(types.PredictionStable, f.Prediction)
	suite.Equal(40.5, f.Confidence)
}

func (suite *ParseTestSuite) TestJSONInsideProse() {
	f, err := ParseForecast(`My answer: {"prediction":"UPWARD","confidence":90,"reason":"Safe-haven demand"} as requested.`)
	suite.Require().NoError(err)
	suite.Equal(90.0, f.Confidence)
}

func (suite *ParseTestSuite) TestZeroConfidenceIsAccepted() {
	f, err := ParseForecast(`{"prediction":"STABLE","confidence":0,"reason":"No signal"}`)
	suite.Require().NoError(err)
	suite.Equal(types.Forecast{Prediction: types.PredictionStable, Confidence: 0, Reason: "No signal"}, f)
}

func (suite *ParseTestSuite) TestRejectsInvalidForecasts() {
	tests := map[string]string{
		"unknown prediction":  `{"prediction":"SIDEWAYS","confidence":50,"reason":"x"}`,
		"confidence too high": `{"prediction":"UPWARD","confidence":150,"reason":"x"}`,
		"negative confidence": `{"prediction":"UPWARD","confidence":-1,"reason":"x"}`,
		"empty reason":        `{"prediction":"UPWARD","confidence":50,"reason":""}`,
		"missing confidence":  `{"prediction":"UPWARD","reason":"gold rally"}`,
		"null confidence":     `{"prediction":"UPWARD","confidence":null,"reason":"gold rally"}`,
		"missing prediction":  `{"confidence":60,"reason":"gold rally"}`,
		"no json":             "I cannot help with that.",
		"empty":               "   ",
	}
	for name, reply := range tests {
		suite.Run(name, func() {
			_, err := ParseForecast(reply)
			suite.Require().Error(err)
			suite.True(errors.HasCode(err, errors.ErrCodeMalformedResponse))
		})
	}
}
