package errors

// ErrorCode identifies an error category.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInsufficientData     ErrorCode = 106
	ErrCodeInvalidAction        ErrorCode = 120

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound ErrorCode = 200
	ErrCodeQueryFailed  ErrorCode = 202

	// Broker errors (500-599)
	ErrCodeOrderFailed      ErrorCode = 500
	ErrCodePositionNotFound ErrorCode = 501
	ErrCodeSessionFailed    ErrorCode = 510
	ErrCodeBrokerRequest    ErrorCode = 511

	// External data errors (700-799)
	ErrCodeMalformedResponse ErrorCode = 700
	ErrCodeForecastFailed    ErrorCode = 710
	ErrCodeNewsFetchFailed   ErrorCode = 720
	ErrCodeNotifyFailed      ErrorCode = 730

	// Cycle errors (800-899)
	ErrCodeCyclePanic ErrorCode = 800
)

var codeNames = map[ErrorCode]string{
	ErrCodeUnknown:              "UNKNOWN",
	ErrCodeInvalidParameter:     "INVALID_PARAMETER",
	ErrCodeInvalidConfiguration: "INVALID_CONFIGURATION",
	ErrCodeInsufficientData:     "INSUFFICIENT_DATA",
	ErrCodeInvalidAction:        "INVALID_ACTION",
	ErrCodeDataNotFound:         "DATA_NOT_FOUND",
	ErrCodeQueryFailed:          "QUERY_FAILED",
	ErrCodeOrderFailed:          "ORDER_FAILED",
	ErrCodePositionNotFound:     "POSITION_NOT_FOUND",
	ErrCodeSessionFailed:        "SESSION_FAILED",
	ErrCodeBrokerRequest:        "BROKER_REQUEST",
	ErrCodeMalformedResponse:    "MALFORMED_RESPONSE",
	ErrCodeForecastFailed:       "FORECAST_FAILED",
	ErrCodeNewsFetchFailed:      "NEWS_FETCH_FAILED",
	ErrCodeNotifyFailed:         "NOTIFY_FAILED",
	ErrCodeCyclePanic:           "CYCLE_PANIC",
}

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
