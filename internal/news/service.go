// Package news ingests business news into the article store the fundamental analysis reads.
package news

import (
	"context"
	"time"

	"smarttrade-bot/internal/errors"
	"smarttrade-bot/internal/interfaces"
	"smarttrade-bot/internal/logger"
	"smarttrade-bot/internal/trace"
	"smarttrade-bot/internal/types"
)

// ServiceConfig configures the ingest service
type ServiceConfig struct {
	PageSize  int           // Articles requested per page
	PageDelay time.Duration // Pause between page requests
}

// DefaultServiceConfig returns default configuration
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		PageSize:  100,
		PageDelay: 1 * time.Second,
	}
}

// regions are fetched in this order
var regions = []types.Region{types.RegionUnitedStates, types.RegionGlobal}

// Service pulls unstored articles from a news source into an article store
type Service struct {
	source  interfaces.NewsSource
	store   interfaces.ArticleStore
	scraper *Scraper
	cfg     *ServiceConfig
	now     func() time.Time
}

// ServiceOption customizes a Service
type ServiceOption func(*Service)

// WithScraper enables content enrichment of newly fetched articles
func WithScraper(s *Scraper) ServiceOption {
	return func(svc *Service) {
		svc.scraper = s
	}
}

// WithClock overrides the wall clock used to pick the ingest date
func WithClock(now func() time.Time) ServiceOption {
	return func(svc *Service) {
		svc.now = now
	}
}

// NewService creates a new news ingest service
func NewService(source interfaces.NewsSource, store interfaces.ArticleStore, cfg *ServiceConfig, opts ...ServiceOption) *Service {
	if cfg == nil {
		cfg = DefaultServiceConfig()
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultServiceConfig().PageSize
	}
	svc := &Service{source: source, store: store, cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// FetchUnstored pages through each region's news for date and stops at the first article already
// stored for that date. Pages arrive newest first, so everything after it is stored too.
func (s *Service) FetchUnstored(ctx context.Context, date time.Time) ([]types.Article, error) {
	ctx, span := trace.StartSpan(ctx, "news-fetch-unstored")
	defer span.End()

	stored, err := s.store.FindAllAtDate(ctx, date)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(stored))
	for _, a := range stored {
		seen[a.ID] = true
	}

	var all []types.Article
	for i, region := range regions {
		if i > 0 {
			if err := s.pause(ctx); err != nil {
				return all, err
			}
		}
		fetched, err := s.fetchUntilStored(ctx, date, region, seen)
		all = append(all, fetched...)
		if err != nil {
			return all, err
		}
	}
	return all, nil
}

func (s *Service) fetchUntilStored(ctx context.Context, date time.Time, region types.Region, seen map[string]bool) ([]types.Article, error) {
	var out []types.Article
	for offset := 0; ; offset += s.cfg.PageSize {
		if offset > 0 {
			if err := s.pause(ctx); err != nil {
				return out, err
			}
		}

		page, err := s.source.FetchPage(ctx, date, region, offset, s.cfg.PageSize)
		if err != nil {
			return out, err
		}
		logger.Debug(ctx, "Fetched news page", "region", region, "offset", offset, "count", len(page))

		if len(page) == 0 {
			return out, nil
		}
		for _, a := range page {
			if seen[a.ID] {
				return out, nil
			}
			seen[a.ID] = true
			out = append(out, a)
		}
		if len(page) < s.cfg.PageSize {
			return out, nil
		}
	}
}

func (s *Service) pause(ctx context.Context) error {
	if s.cfg.PageDelay <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.cfg.PageDelay):
		return nil
	}
}

// Collect runs one ingest pass for today's UTC date and returns the number of articles saved.
func (s *Service) Collect(ctx context.Context) (int, error) {
	ctx, span := trace.StartSpan(ctx, "news-collect")
	defer span.End()

	timer := logger.StartOperation(ctx, "news collection")
	date := s.now().UTC()

	articles, err := s.FetchUnstored(ctx, date)
	if err != nil && len(articles) == 0 {
		timer.EndWithError(err)
		return 0, errors.Wrap(errors.ErrCodeNewsFetchFailed, "news fetch failed", err)
	}
	if err != nil {
		// Keep what arrived before the failure
		logger.ErrorWithErr(ctx, "News fetch interrupted, saving partial results", err, "fetched", len(articles))
	}

	if s.scraper != nil && len(articles) > 0 {
		articles = s.enrichNew(ctx, articles)
	}

	saved, saveErr := s.store.SaveAll(ctx, articles)
	if saveErr != nil {
		timer.EndWithError(saveErr)
		return 0, saveErr
	}

	timer.End("date", date.Format(dateLayout), "saved", saved)
	return saved, err
}

// enrichNew scrapes content only for articles the store has never seen under any date.
func (s *Service) enrichNew(ctx context.Context, articles []types.Article) []types.Article {
	ids := make([]string, len(articles))
	for i, a := range articles {
		ids[i] = a.ID
	}
	existing, err := s.store.ExistingIDs(ctx, ids)
	if err != nil {
		logger.Warn(ctx, "Skipping content enrichment", "error", err)
		return articles
	}

	var fresh []types.Article
	var idx []int
	for i, a := range articles {
		if !existing[a.ID] {
			fresh = append(fresh, a)
			idx = append(idx, i)
		}
	}
	for j, a := range s.scraper.Enrich(ctx, fresh) {
		articles[idx[j]] = a
	}
	return articles
}
