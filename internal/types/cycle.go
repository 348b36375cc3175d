package types

import "time"

// Outcome is the variant of a cycle result.
type Outcome string

const (
	// OutcomeCompleted means the cycle reached the decision step.
	OutcomeCompleted Outcome = "COMPLETED"
	// OutcomeGated means an expected gating condition ended the cycle early.
	OutcomeGated Outcome = "GATED"
	// OutcomeFailed means an unexpected error ended the cycle.
	OutcomeFailed Outcome = "FAILED"
)

// ExecutedAction records the single order-affecting call of a cycle.
type ExecutedAction struct {
	Action        Action        `json:"action"`
	Direction     Direction     `json:"direction,omitempty"`
	Size          float64       `json:"size,omitempty"`
	DealID        string        `json:"dealId,omitempty"`
	DealReference DealReference `json:"details"`
	Forced        bool          `json:"forced,omitempty"`
}

// CycleResult summarizes one invocation of the cycle controller.
type CycleResult struct {
	CycleID             string                   `json:"cycleId"`
	Epic                string                   `json:"epic"`
	Outcome             Outcome                  `json:"outcome"`
	IsMarketOpen        bool                     `json:"isMarketOpen"`
	Message             string                   `json:"message,omitempty"`
	Position            Position                 `json:"position,omitempty"`
	Expected            int                      `json:"expected,omitempty"`
	Received            int                      `json:"received,omitempty"`
	Timeframe           string                   `json:"timeframe,omitempty"`
	PricesCount         int                      `json:"pricesCount,omitempty"`
	TechnicalAnalysis   *TechnicalAnalysisResult `json:"technicalAnalysis,omitempty"`
	FundamentalAnalysis *Forecast                `json:"fundamentalAnalysis,omitempty"`
	Decision            *DecisionResult          `json:"decision,omitempty"`
	ActionTaken         *ExecutedAction          `json:"actionTaken,omitempty"`
	Error               string                   `json:"error,omitempty"`
	StartedAt           time.Time                `json:"startedAt"`
	FinishedAt          time.Time                `json:"finishedAt"`
}
