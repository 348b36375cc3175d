// Package capital implements the broker interface on the Capital.com REST API.
package capital

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"smarttrade-bot/internal/api"
	"smarttrade-bot/internal/errors"
	"smarttrade-bot/internal/interfaces"
	"smarttrade-bot/internal/types"
)

const (
	DefaultBaseURL = "https://api-capital.backend-capital.com"

	headerAPIKey        = "X-CAP-API-KEY"
	headerSecurityToken = "X-SECURITY-TOKEN"
	headerCST           = "CST"

	marketTradeable = "TRADEABLE"
)

type Params struct {
	BaseURL    string
	APIKey     string
	Identifier string
	Password   string
	Timeout    time.Duration
}

type Capital struct {
	p        Params
	client   *api.Client
	validate *validator.Validate
}

var _ interfaces.Broker = (*Capital)(nil)

func NewCapital(p Params) *Capital {
	if p.BaseURL == "" {
		p.BaseURL = DefaultBaseURL
	}
	if p.Timeout <= 0 {
		p.Timeout = 30 * time.Second
	}
	return &Capital{
		p: p,
		client: api.NewClient(
			api.WithBaseURL(p.BaseURL),
			api.WithTimeout(p.Timeout),
			api.WithHeader(headerAPIKey, p.APIKey),
			api.WithLogging(true),
		),
		validate: validator.New(),
	}
}

func (c *Capital) OpenSession(ctx context.Context) (types.Session, error) {
	req := api.NewRequest(http.MethodPost, "/api/v1/session").
		WithContext(ctx).
		WithBody(sessionRequest{Identifier: c.p.Identifier, Password: c.p.Password})

	resp, err := c.client.Do(req)
	if err != nil {
		return types.Session{}, errors.Wrap(errors.ErrCodeSessionFailed, "failed to create session", err)
	}

	tokens := sessionTokens{
		SecurityToken: resp.Headers.Get(headerSecurityToken),
		CST:           resp.Headers.Get(headerCST),
	}
	if err := c.validate.Struct(tokens); err != nil {
		return types.Session{}, errors.Wrap(errors.ErrCodeMalformedResponse, "session response is missing security tokens", err)
	}
	return types.Session{SecurityToken: tokens.SecurityToken, CST: tokens.CST}, nil
}

func (c *Capital) CloseSession(ctx context.Context, session types.Session) error {
	if _, err := c.client.DELETE(ctx, "/api/v1/session", authHeaders(session)); err != nil {
		return errors.Wrap(errors.ErrCodeSessionFailed, "failed to close session", err)
	}
	return nil
}

func (c *Capital) MarketState(ctx context.Context, epic string, session types.Session) (types.MarketState, error) {
	var out marketDetailsResponse
	if err := c.getJSON(ctx, "/api/v1/markets/"+url.PathEscape(epic), nil, session, &out); err != nil {
		return types.MarketState{}, err
	}
	return types.MarketState{
		Epic:         epic,
		IsOpen:       out.Snapshot.MarketStatus == marketTradeable,
		Status:       out.Snapshot.MarketStatus,
		OpeningHours: out.Instrument.OpeningHours.byDay(),
	}, nil
}

func (c *Capital) OpenPositions(ctx context.Context, session types.Session) ([]types.OpenPosition, error) {
	var out positionsResponse
	if err := c.getJSON(ctx, "/api/v1/positions", nil, session, &out); err != nil {
		return nil, err
	}
	positions := make([]types.OpenPosition, 0, len(out.Positions))
	for _, item := range out.Positions {
		positions = append(positions, item.toOpenPosition())
	}
	return positions, nil
}

func (c *Capital) PriceHistory(ctx context.Context, epic, resolution string, max int, session types.Session) ([]types.PriceBar, error) {
	query := url.Values{}
	query.Set("resolution", resolution)
	query.Set("max", strconv.Itoa(max))

	var out pricesResponse
	if err := c.getJSON(ctx, "/api/v1/prices/"+url.PathEscape(epic), query, session, &out); err != nil {
		return nil, err
	}

	bars := make([]types.PriceBar, 0, len(out.Prices))
	for i, p := range out.Prices {
		ts, ok := parseUTC(p.SnapshotTimeUTC)
		if !ok {
			return nil, errors.Newf(errors.ErrCodeMalformedResponse, "price %d has invalid snapshot time %q", i, p.SnapshotTimeUTC)
		}
		bars = append(bars, types.PriceBar{
			CloseBid:         *p.ClosePrice.Bid,
			CloseAsk:         *p.ClosePrice.Ask,
			HighBid:          *p.HighPrice.Bid,
			LowBid:           *p.LowPrice.Bid,
			LastTradedVolume: p.LastTradedVolume,
			SnapshotTimeUTC:  ts,
		})
	}
	return bars, nil
}

func (c *Capital) OpenPosition(ctx context.Context, order types.OrderRequest, session types.Session) (types.DealReference, error) {
	if err := c.validate.Struct(order); err != nil {
		return types.DealReference{}, errors.Wrap(errors.ErrCodeInvalidParameter, "invalid order request", err)
	}
	resp, err := c.client.POST(ctx, "/api/v1/positions", order, authHeaders(session))
	if err != nil {
		return types.DealReference{}, errors.Wrap(errors.ErrCodeOrderFailed, "failed to create position", err)
	}
	return c.dealReference(resp)
}

func (c *Capital) ClosePosition(ctx context.Context, dealID string, session types.Session) (types.DealReference, error) {
	if dealID == "" {
		return types.DealReference{}, errors.New(errors.ErrCodeInvalidParameter, "deal id is required")
	}
	resp, err := c.client.DELETE(ctx, "/api/v1/positions/"+url.PathEscape(dealID), authHeaders(session))
	if err != nil {
		return types.DealReference{}, errors.Wrapf(errors.ErrCodeOrderFailed, err, "failed to close position %s", dealID)
	}
	return c.dealReference(resp)
}

func (c *Capital) getJSON(ctx context.Context, path string, query url.Values, session types.Session, out any) error {
	req := api.NewRequest(http.MethodGet, path).WithContext(ctx)
	for key, value := range authHeaders(session) {
		req.WithHeader(key, value)
	}
	for key, values := range query {
		for _, v := range values {
			req.WithQuery(key, v)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeBrokerRequest, err, "GET %s failed", path)
	}
	if err := resp.ParseJSON(out); err != nil {
		return errors.Wrapf(errors.ErrCodeMalformedResponse, err, "GET %s returned invalid JSON", path)
	}
	if err := c.validate.Struct(out); err != nil {
		return errors.Wrapf(errors.ErrCodeMalformedResponse, err, "GET %s returned an unexpected shape", path)
	}
	return nil
}

func (c *Capital) dealReference(resp *api.Response) (types.DealReference, error) {
	var out dealReferenceResponse
	if err := resp.ParseJSON(&out); err != nil {
		return types.DealReference{}, errors.Wrap(errors.ErrCodeMalformedResponse, "invalid deal reference response", err)
	}
	if err := c.validate.Struct(out); err != nil {
		return types.DealReference{}, errors.Wrap(errors.ErrCodeMalformedResponse, "deal reference missing", err)
	}
	return types.DealReference{Reference: out.DealReference}, nil
}

func authHeaders(session types.Session) map[string]string {
	return map[string]string{
		headerSecurityToken: session.SecurityToken,
		headerCST:           session.CST,
	}
}
