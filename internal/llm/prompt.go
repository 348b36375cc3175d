// Package llm renders the fundamental forecast prompt and parses model replies.
package llm

import (
	"bytes"
	"encoding/json"
	"strings"
	"text/template"

	"smarttrade-bot/internal/errors"
	"smarttrade-bot/internal/types"
)

// SystemPrompt frames the model as a decisive gold analyst.
const SystemPrompt = `You are a senior precious-metals analyst and active trader with two decades of experience in
fundamental analysis and macroeconomic forecasting. You understand gold as a safe-haven asset and how
monetary policy, inflation, geopolitics, currency moves and risk appetite drive its price. You know the
Federal Reserve's influence on gold and the inverse relationship between dollar strength and gold.

You read news for market-moving information and commit to a direction. When forces conflict you decide
which one dominates. You prefer a clear directional call over staying neutral, and you keep your
reasoning grounded in fundamentals.`

const userTemplate = `# Gold Price Forecast

Analyze the news below and forecast the direction of the gold price.

## US news

` + "```json" + `
{{.USNews}}
` + "```" + `

## Global news

` + "```json" + `
{{.GlobalNews}}
` + "```" + `

## What to assess

1. Dominant market sentiment: economic data, geopolitical tension, central bank policy and currency
   moves, inflation pressure, equity market risk appetite.
2. Direction of gold: UPWARD, STABLE or DOWNWARD. Markets move constantly; only answer STABLE when
   the news clearly points to no movement.

## Trading context

- Timeframe: {{.Timeframe}}
- Risk tolerance: {{.RiskTolerance}}
- Position size: {{.PositionSize}}

## Response format

Reply with ONLY a JSON object with exactly these fields:

` + "```json" + `
{"prediction": "UPWARD", "confidence": 85, "reason": "One decisive sentence explaining the call"}
` + "```" + `

- prediction: one of "UPWARD", "STABLE", "DOWNWARD"
- confidence: number from 0 to 100
- reason: one sentence
`

var userPrompt = template.Must(template.New("forecast").Parse(userTemplate))

// Prompt is a system and user message pair.
type Prompt struct {
	System string
	User   string
}

// promptArticle is the subset of an article the model sees.
type promptArticle struct {
	PublishedAt string `json:"published_at"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Country     string `json:"country"`
}

// RenderPrompt builds the forecast prompt for a batch of articles.
func RenderPrompt(in types.ForecastInput) (Prompt, error) {
	us, err := articlesJSON(in.USArticles)
	if err != nil {
		return Prompt{}, err
	}
	global, err := articlesJSON(in.GlobalArticles)
	if err != nil {
		return Prompt{}, err
	}

	var buf bytes.Buffer
	err = userPrompt.Execute(&buf, map[string]string{
		"USNews":        us,
		"GlobalNews":    global,
		"Timeframe":     in.Timeframe,
		"RiskTolerance": in.RiskTolerance,
		"PositionSize":  in.PositionSize,
	})
	if err != nil {
		return Prompt{}, errors.Wrap(errors.ErrCodeForecastFailed, "failed to render forecast prompt", err)
	}
	return Prompt{System: SystemPrompt, User: strings.TrimSpace(buf.String())}, nil
}

func articlesJSON(articles []types.Article) (string, error) {
	out := make([]promptArticle, 0, len(articles))
	for _, a := range articles {
		out = append(out, promptArticle{
			PublishedAt: a.PublishedAt.UTC().Format("2006-01-02T15:04:05Z"),
			Title:       a.Title,
			Description: a.Description,
			Source:      a.Source,
			Country:     a.Country,
		})
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeForecastFailed, "failed to encode articles", err)
	}
	return string(b), nil
}
