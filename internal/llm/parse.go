package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"smarttrade-bot/internal/errors"
	"smarttrade-bot/internal/types"
)

var (
	fencedJSON = regexp.MustCompile("```(?:json)?\\s*\\n?([\\s\\S]*?)\\n?```")
	validate   = validator.New()
)

// forecastReply is the wire shape of a forecast. Confidence is a pointer so a missing field
// fails validation instead of reading as zero.
type forecastReply struct {
	Prediction string   `json:"prediction" validate:"required,oneof=UPWARD STABLE DOWNWARD"`
	Confidence *float64 `json:"confidence" validate:"required,gte=0,lte=100"`
	Reason     string   `json:"reason" validate:"required"`
}

// ParseForecast extracts and validates the forecast in a model reply. The JSON may sit in a
// fenced block, be the whole reply, or be embedded in surrounding prose.
func ParseForecast(text string) (types.Forecast, error) {
	var lastErr error
	for _, candidate := range candidates(text) {
		var r forecastReply
		if err := json.Unmarshal([]byte(candidate), &r); err != nil {
			lastErr = err
			continue
		}
		r.Prediction = strings.ToUpper(strings.TrimSpace(r.Prediction))
		if err := validate.Struct(r); err != nil {
			return types.Forecast{}, errors.Wrap(errors.ErrCodeMalformedResponse, "forecast failed validation", err)
		}
		return types.Forecast{
			Prediction: types.Prediction(r.Prediction),
			Confidence: *r.Confidence,
			Reason:     r.Reason,
		}, nil
	}
	if lastErr == nil {
		return types.Forecast{}, errors.New(errors.ErrCodeMalformedResponse, "empty model reply")
	}
	return types.Forecast{}, errors.Wrap(errors.ErrCodeMalformedResponse, "no forecast JSON in model reply", lastErr)
}

func candidates(text string) []string {
	var out []string
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		out = append(out, strings.TrimSpace(m[1]))
	}
	if t := strings.TrimSpace(text); t != "" {
		out = append(out, t)
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		out = append(out, text[start:end+1])
	}
	return out
}
