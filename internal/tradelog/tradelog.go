// Package tradelog journals cycle decisions and executed trades as daily JSON-lines files.
package tradelog

import (
	"compress/gzip"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"smarttrade-bot/internal/errors"
	"smarttrade-bot/internal/interfaces"
	"smarttrade-bot/internal/logger"
	"smarttrade-bot/internal/types"
)

const (
	decisionsDir = "decisions"
	tradesDir    = "trades"
	fileExt      = ".jsonl"
)

// sink is the open file for one kind of entry on one UTC day
type sink struct {
	date   string
	file   *os.File
	logger *zap.Logger
}

// Journal writes one decision line per cycle and one trade line per executed order
type Journal struct {
	dir   string
	mu    sync.Mutex
	sinks map[string]*sink
	now   func() time.Time
}

var _ interfaces.Journal = (*Journal)(nil)

func New(dir string) *Journal {
	if dir == "" {
		dir = "logs"
	}
	return &Journal{dir: dir, sinks: map[string]*sink{}, now: time.Now}
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.MessageKey = "event"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.LevelKey = zapcore.OmitKey
	cfg.CallerKey = zapcore.OmitKey
	cfg.StacktraceKey = zapcore.OmitKey
	return cfg
}

// writer returns the logger for kind on date, rotating the file when the day changes.
func (j *Journal) writer(kind, date string) (*zap.Logger, error) {
	if s, ok := j.sinks[kind]; ok {
		if s.date == date {
			return s.logger, nil
		}
		_ = s.logger.Sync()
		_ = s.file.Close()
		delete(j.sinks, kind)
	}

	path := filepath.Join(j.dir, kind, date+fileExt)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), zapcore.AddSync(f), zapcore.InfoLevel)
	s := &sink{date: date, file: f, logger: zap.New(core)}
	j.sinks[kind] = s
	return s.logger, nil
}

// RecordCycle appends the cycle's decision and, when an order was sent, the trade.
func (j *Journal) RecordCycle(ctx context.Context, res *types.CycleResult) error {
	if res == nil {
		return nil
	}
	at := res.FinishedAt
	if at.IsZero() {
		at = j.now()
	}
	date := at.UTC().Format("2006-01-02")

	j.mu.Lock()
	defer j.mu.Unlock()

	w, err := j.writer(decisionsDir, date)
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnknown, "open decision journal", err)
	}
	w.Info("cycle", decisionFields(res)...)

	if res.ActionTaken != nil {
		w, err := j.writer(tradesDir, date)
		if err != nil {
			return errors.Wrap(errors.ErrCodeUnknown, "open trade journal", err)
		}
		w.Info("trade", tradeFields(res)...)
	}

	for _, s := range j.sinks {
		if err := s.logger.Sync(); err != nil {
			logger.Warn(ctx, "Failed to flush trade journal", "path", s.file.Name(), "error", err)
		}
	}
	return nil
}

func decisionFields(res *types.CycleResult) []zap.Field {
	fields := []zap.Field{
		zap.String("cycle_id", res.CycleID),
		zap.String("epic", res.Epic),
		zap.String("outcome", string(res.Outcome)),
		zap.Bool("market_open", res.IsMarketOpen),
		zap.Time("started_at", res.StartedAt),
		zap.Time("finished_at", res.FinishedAt),
	}
	if res.Message != "" {
		fields = append(fields, zap.String("message", res.Message))
	}
	if res.Position != "" {
		fields = append(fields, zap.String("position", string(res.Position)))
	}
	if res.TechnicalAnalysis != nil {
		fields = append(fields,
			zap.String("technical_action", string(res.TechnicalAnalysis.Action)),
			zap.String("technical_reason", res.TechnicalAnalysis.Reason),
			zap.Float64("price", res.TechnicalAnalysis.Indicators.CurrentPrice),
		)
	}
	if f := res.FundamentalAnalysis; f != nil {
		fields = append(fields,
			zap.String("prediction", string(f.Prediction)),
			zap.Float64("confidence", f.Confidence),
			zap.String("forecast_reason", f.Reason),
		)
	}
	if d := res.Decision; d != nil {
		fields = append(fields,
			zap.Bool("should_take_action", d.ShouldTakeAction),
			zap.Float64("consensus", d.Consensus),
			zap.Float64("fundamental_weight", d.FundamentalWeight),
			zap.Float64("alignment", d.Alignment),
			zap.String("final_action", string(d.FinalAction)),
		)
	}
	if res.Error != "" {
		fields = append(fields, zap.String("error", res.Error))
	}
	return fields
}

func tradeFields(res *types.CycleResult) []zap.Field {
	a := res.ActionTaken
	return []zap.Field{
		zap.String("cycle_id", res.CycleID),
		zap.String("epic", res.Epic),
		zap.String("action", string(a.Action)),
		zap.String("direction", string(a.Direction)),
		zap.Float64("size", a.Size),
		zap.String("deal_id", a.DealID),
		zap.String("deal_reference", a.DealReference.Reference),
		zap.Bool("forced", a.Forced),
	}
}

// Close flushes and closes the open journal files.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	var first error
	for kind, s := range j.sinks {
		_ = s.logger.Sync()
		if err := s.file.Close(); err != nil && first == nil {
			first = err
		}
		delete(j.sinks, kind)
	}
	return first
}

// CompressOlder gzips journal files last written more than retentionDays ago and removes the originals.
// It returns the number of files compressed.
func (j *Journal) CompressOlder(retentionDays int) (int, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := j.now().AddDate(0, 0, -retentionDays)

	j.mu.Lock()
	open := make(map[string]bool, len(j.sinks))
	for _, s := range j.sinks {
		open[s.file.Name()] = true
	}
	j.mu.Unlock()

	compressed := 0
	err := filepath.WalkDir(j.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, fileExt) || open[p] {
			return nil
		}
		info, err := d.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			return nil
		}
		if err := gzipFile(p); err != nil {
			return err
		}
		compressed++
		return nil
	})
	return compressed, err
}

func gzipFile(p string) error {
	gz := p + ".gz"
	// A previous run already compressed it
	if _, err := os.Stat(gz); err == nil {
		return os.Remove(p)
	}

	in, err := os.Open(p)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(gz, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	gw := gzip.NewWriter(out)
	if _, err := io.Copy(gw, in); err != nil {
		gw.Close()
		out.Close()
		os.Remove(gz)
		return err
	}
	if err := gw.Close(); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(p)
}
