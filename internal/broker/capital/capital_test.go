package capital

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"smarttrade-bot/internal/errors"
	"smarttrade-bot/internal/types"
)

var session = types.Session{SecurityToken: "sec", CST: "cst"}

type CapitalTestSuite struct {
	suite.Suite
	mux    *http.ServeMux
	server *httptest.Server
	broker *Capital
}

func TestCapitalSuite(t *testing.T) {
	suite.Run(t, new(CapitalTestSuite))
}

func (suite *CapitalTestSuite) SetupTest() {
	suite.mux = http.NewServeMux()
	suite.server = httptest.NewServer(suite.mux)
	suite.broker = NewCapital(Params{
		BaseURL:    suite.server.URL,
		APIKey:     "api-key",
		Identifier: "me@example.com",
		Password:   "secret",
		Timeout:    5 * time.Second,
	})
}

func (suite *CapitalTestSuite) TearDownTest() {
	suite.server.Close()
}

// authed asserts the API key and session headers before delegating.
func (suite *CapitalTestSuite) authed(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		suite.Equal("api-key", r.Header.Get("X-CAP-API-KEY"))
		suite.Equal("sec", r.Header.Get("X-SECURITY-TOKEN"))
		suite.Equal("cst", r.Header.Get("CST"))
		h(w, r)
	}
}

func (suite *CapitalTestSuite) TestOpenSession() {
	suite.mux.HandleFunc("POST /api/v1/session", func(w http.ResponseWriter, r *http.Request) {
		suite.Equal("api-key", r.Header.Get("X-CAP-API-KEY"))
		var body sessionRequest
		suite.Require().NoError(json.NewDecoder(r.Body).Decode(&body))
		suite.Equal("me@example.com", body.Identifier)
		suite.Equal("secret", body.Password)

		w.Header().Set("X-SECURITY-TOKEN", "sec")
		w.Header().Set("CST", "cst")
		_, _ = w.Write([]byte(`{}`))
	})

	got, err := suite.broker.OpenSession(context.Background())
	suite.Require().NoError(err)
	suite.Equal(session, got)
	suite.True(got.Valid())
}

func (suite *CapitalTestSuite) TestOpenSessionWithoutTokensIsMalformed() {
	suite.mux.HandleFunc("POST /api/v1/session", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("CST", "cst")
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := suite.broker.OpenSession(context.Background())
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMalformedResponse))
}

func (suite *CapitalTestSuite) TestOpenSessionUnauthorized() {
	suite.mux.HandleFunc("POST /api/v1/session", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errorCode":"error.invalid.details"}`, http.StatusUnauthorized)
	})

	_, err := suite.broker.OpenSession(context.Background())
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeSessionFailed))
}

func (suite *CapitalTestSuite) TestCloseSession() {
	called := false
	suite.mux.HandleFunc("DELETE /api/v1/session", suite.authed(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, _ = w.Write([]byte(`{"status":"SUCCESS"}`))
	}))

	suite.Require().NoError(suite.broker.CloseSession(context.Background(), session))
	suite.True(called)
}

func (suite *CapitalTestSuite) TestMarketState() {
	suite.mux.HandleFunc("GET /api/v1/markets/GOLD", suite.authed(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"instrument": {"epic": "GOLD", "name": "Gold", "openingHours": {
				"mon": ["00:00 - 21:59", "23:00 - 00:00"], "sat": [], "zone": "UTC"}},
			"snapshot": {"marketStatus": "TRADEABLE", "bid": 2000.1, "offer": 2000.4}
		}`))
	}))

	state, err := suite.broker.MarketState(context.Background(), "GOLD", session)
	suite.Require().NoError(err)
	suite.True(state.IsOpen)
	suite.Equal("TRADEABLE", state.Status)
	suite.Equal([]string{"00:00 - 21:59", "23:00 - 00:00"}, state.OpeningHours["mon"])
}

func (suite *CapitalTestSuite) TestMarketStateClosed() {
	suite.mux.HandleFunc("GET /api/v1/markets/GOLD", suite.authed(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"instrument": {"epic": "GOLD"}, "snapshot": {"marketStatus": "CLOSED"}}`))
	}))

	state, err := suite.broker.MarketState(context.Background(), "GOLD", session)
	suite.Require().NoError(err)
	suite.False(state.IsOpen)
}

func (suite *CapitalTestSuite) TestMarketStateMissingSnapshotIsMalformed() {
	suite.mux.HandleFunc("GET /api/v1/markets/GOLD", suite.authed(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"instrument": {"epic": "GOLD"}}`))
	}))

	_, err := suite.broker.MarketState(context.Background(), "GOLD", session)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMalformedResponse))
}

func (suite *CapitalTestSuite) TestOpenPositions() {
	suite.mux.HandleFunc("GET /api/v1/positions", suite.authed(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"positions": [
			{"position": {"dealId": "d-1", "size": 0.05, "direction": "BUY", "level": 2010.5,
				"createdDateUTC": "2026-10-13T09:30:00.000"},
			 "market": {"epic": "GOLD", "marketStatus": "TRADEABLE"}},
			{"position": {"dealId": "d-2", "size": 1, "direction": "SELL", "level": 30.2},
			 "market": {"epic": "SILVER"}}
		]}`))
	}))

	positions, err := suite.broker.OpenPositions(context.Background(), session)
	suite.Require().NoError(err)
	suite.Require().Len(positions, 2)
	suite.Equal("d-1", positions[0].DealID)
	suite.Equal("GOLD", positions[0].Epic)
	suite.Equal(types.PositionLong, positions[0].Position())
	suite.Equal(2010.5, positions[0].Level)
	suite.Equal(time.Date(2026, time.October, 13, 9, 30, 0, 0, time.UTC), positions[0].CreatedAt)
	suite.Equal(types.PositionShort, positions[1].Position())
}

func (suite *CapitalTestSuite) TestOpenPositionsRejectsUnknownDirection() {
	suite.mux.HandleFunc("GET /api/v1/positions", suite.authed(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"positions": [{"position": {"dealId": "d-1", "size": 1, "direction": "HOLD", "level": 1},
			"market": {"epic": "GOLD"}}]}`))
	}))

	_, err := suite.broker.OpenPositions(context.Background(), session)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMalformedResponse))
}

func (suite *CapitalTestSuite) TestPriceHistory() {
	suite.mux.HandleFunc("GET /api/v1/prices/GOLD", suite.authed(func(w http.ResponseWriter, r *http.Request) {
		suite.Equal("MINUTE", r.URL.Query().Get("resolution"))
		suite.Equal("60", r.URL.Query().Get("max"))
		_, _ = w.Write([]byte(`{"instrumentType": "COMMODITIES", "prices": [
			{"snapshotTimeUTC": "2026-10-13T10:00:00", "closePrice": {"bid": 2000, "ask": 2000.3},
			 "highPrice": {"bid": 2001, "ask": 2001.3}, "lowPrice": {"bid": 1999, "ask": 1999.3},
			 "lastTradedVolume": 120}
		]}`))
	}))

	bars, err := suite.broker.PriceHistory(context.Background(), "GOLD", "MINUTE", 60, session)
	suite.Require().NoError(err)
	suite.Require().Len(bars, 1)
	suite.Equal(types.PriceBar{
		CloseBid:         2000,
		CloseAsk:         2000.3,
		HighBid:          2001,
		LowBid:           1999,
		LastTradedVolume: 120,
		SnapshotTimeUTC:  time.Date(2026, time.October, 13, 10, 0, 0, 0, time.UTC),
	}, bars[0])
}

func (suite *CapitalTestSuite) TestPriceHistoryBadTimestampIsMalformed() {
	suite.mux.HandleFunc("GET /api/v1/prices/GOLD", suite.authed(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"prices": [{"snapshotTimeUTC": "yesterday",
			"closePrice": {"bid": 1, "ask": 1}, "highPrice": {"bid": 1, "ask": 1},
			"lowPrice": {"bid": 1, "ask": 1}, "lastTradedVolume": 1}]}`))
	}))

	_, err := suite.broker.PriceHistory(context.Background(), "GOLD", "MINUTE", 60, session)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMalformedResponse))
}

func (suite *CapitalTestSuite) TestPriceHistoryMissingQuotesIsMalformed() {
	var body string
	suite.mux.HandleFunc("GET /api/v1/prices/GOLD", suite.authed(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))

	tests := map[string]string{
		"snapshot time only": `{"prices": [{"snapshotTimeUTC": "2026-10-12T10:00:00"}]}`,
		"missing low price": `{"prices": [{"snapshotTimeUTC": "2026-10-12T10:00:00",
			"closePrice": {"bid": 2000, "ask": 2000.3}, "highPrice": {"bid": 2001, "ask": 2001.3}}]}`,
		"missing ask": `{"prices": [{"snapshotTimeUTC": "2026-10-12T10:00:00",
			"closePrice": {"bid": 2000}, "highPrice": {"bid": 2001, "ask": 2001.3},
			"lowPrice": {"bid": 1999, "ask": 1999.3}}]}`,
		"null bid": `{"prices": [{"snapshotTimeUTC": "2026-10-12T10:00:00",
			"closePrice": {"bid": null, "ask": 2000.3}, "highPrice": {"bid": 2001, "ask": 2001.3},
			"lowPrice": {"bid": 1999, "ask": 1999.3}}]}`,
	}
	for name, tc := range tests {
		suite.Run(name, func() {
			body = tc
			bars, err := suite.broker.PriceHistory(context.Background(), "GOLD", "MINUTE", 60, session)
			suite.Require().Error(err)
			suite.Nil(bars)
			suite.True(errors.HasCode(err, errors.ErrCodeMalformedResponse))
		})
	}
}

func (suite *CapitalTestSuite) TestOpenPosition() {
	suite.mux.HandleFunc("POST /api/v1/positions", suite.authed(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		suite.Require().NoError(json.NewDecoder(r.Body).Decode(&body))
		suite.Equal("GOLD", body["epic"])
		suite.Equal("BUY", body["direction"])
		suite.Equal(0.05, body["size"])
		suite.Equal(true, body["guaranteedStop"])
		suite.Equal(10.0, body["stopDistance"])
		suite.Equal(20.0, body["profitDistance"])
		_, _ = w.Write([]byte(`{"dealReference": "o_123"}`))
	}))

	ref, err := suite.broker.OpenPosition(context.Background(), types.OrderRequest{
		Epic:           "GOLD",
		Direction:      types.DirectionBuy,
		Size:           0.05,
		GuaranteedStop: true,
		StopDistance:   10,
		ProfitDistance: 20,
	}, session)
	suite.Require().NoError(err)
	suite.Equal("o_123", ref.Reference)
}

func (suite *CapitalTestSuite) TestOpenPositionValidatesBeforeSending() {
	_, err := suite.broker.OpenPosition(context.Background(), types.OrderRequest{Epic: "GOLD", Direction: types.DirectionBuy}, session)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *CapitalTestSuite) TestClosePosition() {
	suite.mux.HandleFunc("DELETE /api/v1/positions/d-1", suite.authed(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"dealReference": "p_456"}`))
	}))

	ref, err := suite.broker.ClosePosition(context.Background(), "d-1", session)
	suite.Require().NoError(err)
	suite.Equal("p_456", ref.Reference)
}

func (suite *CapitalTestSuite) TestClosePositionRejected() {
	suite.mux.HandleFunc("DELETE /api/v1/positions/d-1", suite.authed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errorCode":"error.not-found.dealId"}`, http.StatusNotFound)
	}))

	_, err := suite.broker.ClosePosition(context.Background(), "d-1", session)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeOrderFailed))
}
