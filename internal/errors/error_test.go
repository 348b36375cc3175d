package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewFormatsCodeName() {
	err := New(ErrCodeInvalidAction, "close without position")
	suite.Equal("[INVALID_ACTION] close without position", err.Error())
	suite.Nil(err.Unwrap())
}

func (suite *ErrorTestSuite) TestWrapKeepsCause() {
	cause := errors.New("connection reset")
	err := Wrapf(ErrCodeBrokerRequest, cause, "GET %s", "/api/v1/positions")

	suite.Equal("[BROKER_REQUEST] GET /api/v1/positions: connection reset", err.Error())
	suite.True(Is(err, cause))
	suite.True(HasCode(err, ErrCodeBrokerRequest))
}

func (suite *ErrorTestSuite) TestGetCodeThroughFmtWrap() {
	inner := New(ErrCodeMalformedResponse, "missing dealReference")
	outer := fmt.Errorf("open position: %w", inner)

	suite.Equal(ErrCodeMalformedResponse, GetCode(outer))
	suite.Equal(ErrCodeUnknown, GetCode(errors.New("plain")))
	suite.Equal(ErrCodeUnknown, GetCode(nil))
}

func (suite *ErrorTestSuite) TestInsufficientData() {
	err := NewInsufficientDataErrorf(26, 10, "GOLD", "need at least %d periods, got %d", 26, 10)
	wrapped := fmt.Errorf("analyze: %w", err)

	suite.True(IsInsufficientDataError(wrapped))
	suite.Equal(ErrCodeInsufficientData, GetCode(wrapped))

	got, ok := AsInsufficientDataError(wrapped)
	suite.Require().True(ok)
	suite.Equal(26, got.Required)
	suite.Equal(10, got.Actual)
	suite.Equal("GOLD", got.Symbol)
	suite.Equal("need at least 26 periods, got 10", got.Error())

	suite.False(IsInsufficientDataError(errors.New("other")))
}

func (suite *ErrorTestSuite) TestUnknownCodeString() {
	suite.Equal("UNKNOWN", ErrorCode(9999).String())
}
