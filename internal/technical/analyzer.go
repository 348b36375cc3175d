package technical

import (
	"github.com/moznion/go-optional"

	"smarttrade-bot/internal/ta"
	"smarttrade-bot/internal/types"
)

// Analyzer computes indicators for a price window and classifies them.
type Analyzer struct {
	classifier *Classifier
}

func NewAnalyzer(c *Classifier) *Analyzer {
	return &Analyzer{classifier: c}
}

// Analyze fails with an InsufficientDataError when the window is shorter than ta.MinBars.
func (a *Analyzer) Analyze(bars []types.PriceBar, position types.Position, entryPrice optional.Option[float64]) (types.TechnicalAnalysisResult, error) {
	inds, err := ta.ComputeIndicators(bars)
	if err != nil {
		return types.TechnicalAnalysisResult{}, err
	}
	if EntryKnown(entryPrice) {
		inds.ProfitLossPercent = optional.Some(ProfitLossPercent(position, entryPrice.Unwrap(), inds.CurrentPrice))
	}

	action, reason := a.classifier.Classify(position, entryPrice, inds)
	return types.TechnicalAnalysisResult{
		Action:     action,
		Reason:     reason,
		Indicators: inds,
	}, nil
}
