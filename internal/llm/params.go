package llm

import "time"

// Params configure a hosted model provider.
type Params struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Endpoint    string
	Timeout     time.Duration
}
