package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type LoggerTestSuite struct {
	suite.Suite
	buf *bytes.Buffer
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (suite *LoggerTestSuite) SetupTest() {
	suite.buf = &bytes.Buffer{}
	suite.Require().NoError(InitWithConfig(LogConfig{
		Level:  "DEBUG",
		Format: "json",
		Output: suite.buf,
	}))
}

func (suite *LoggerTestSuite) lines() []map[string]any {
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(suite.buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		suite.Require().NoError(json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func (suite *LoggerTestSuite) TestInfoWritesFields() {
	Info(context.Background(), "Market is open", "epic", "GOLD")

	lines := suite.lines()
	suite.Require().Len(lines, 1)
	suite.Equal("Market is open", lines[0]["msg"])
	suite.Equal("GOLD", lines[0]["epic"])
	suite.Equal("INFO", lines[0]["level"])
}

func (suite *LoggerTestSuite) TestDebugGatedByDetailedLogging() {
	Debug(context.Background(), "hidden")
	suite.Empty(suite.lines())
	suite.False(IsDebugEnabled())
}

func (suite *LoggerTestSuite) TestErrorWithErr() {
	ErrorWithErr(context.Background(), "Cycle failed", errors.New("boom"), "epic", "GOLD")

	lines := suite.lines()
	suite.Require().Len(lines, 1)
	suite.Equal("boom", lines[0]["error"])
	suite.Equal("ERROR", lines[0]["level"])
}

func (suite *LoggerTestSuite) TestDomainHelpers() {
	ctx := context.Background()
	Decision(ctx, "GOLD", "BUY", 0.88, "aligned")
	Trade(ctx, "GOLD", "BUY", 0.05, "ref-1")
	Risk(ctx, "GOLD", "FORCE_CLOSE")

	lines := suite.lines()
	suite.Require().Len(lines, 3)
	suite.Equal("DECISION", lines[0]["type"])
	suite.Equal("TRADE", lines[1]["type"])
	suite.Equal("ref-1", lines[1]["deal_reference"])
	suite.Equal("RISK", lines[2]["type"])
	suite.Equal("WARN", lines[2]["level"])
}

func (suite *LoggerTestSuite) TestDetailedLoggingAddsSource() {
	suite.Require().NoError(InitWithConfig(LogConfig{
		Level:           "DEBUG",
		Format:          "json",
		DetailedLogging: true,
		Output:          suite.buf,
	}))
	defer func() { detailedLogging = false }()

	Debug(context.Background(), "visible")
	InfoSkip(context.Background(), 0, "skip zero")

	lines := suite.lines()
	suite.Require().Len(lines, 2)
	source, ok := lines[0]["source"].(map[string]any)
	suite.Require().True(ok)
	suite.Contains(source["file"], "logger_test.go")
}

func (suite *LoggerTestSuite) TestOperationTimer() {
	op := StartOperation(context.Background(), "cycle", "epic", "GOLD", "bars", 60)
	suite.NotNil(op.GetContext())
	op.End("action", "KEEP")

	op = StartOperation(context.Background(), "cycle")
	op.EndWithError(errors.New("failed"))

	lines := suite.lines()
	suite.Require().NotEmpty(lines)
	suite.Equal("Operation failed", lines[len(lines)-1]["msg"])
}

func (suite *LoggerTestSuite) TestParseLogLevel() {
	suite.Equal("DEBUG", parseLogLevel("debug").String())
	suite.Equal("WARN", parseLogLevel("WARN").String())
	suite.Equal("INFO", parseLogLevel("nonsense").String())
}
