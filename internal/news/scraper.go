package news

import (
	"context"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"smarttrade-bot/internal/errors"
	"smarttrade-bot/internal/logger"
	"smarttrade-bot/internal/trace"
	"smarttrade-bot/internal/types"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// contentSelector matches the usual article body containers.
	contentSelector = "article, div.article-body, div.content-body, div.story-content, main"

	// Paragraphs shorter than this are usually captions or share buttons.
	minParagraphLength = 20

	// Articles whose content is already this long are left alone.
	minContentLength = 200
)

// Scraper enriches articles with their body text
type Scraper struct {
	timeout time.Duration
	delay   time.Duration
}

func NewScraper(timeout, delay time.Duration) *Scraper {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Scraper{timeout: timeout, delay: delay}
}

// FetchContent visits an article page and returns its paragraphs joined by blank lines.
func (s *Scraper) FetchContent(ctx context.Context, articleURL string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "scrape-article")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(s.timeout)

	var content string
	c.OnHTML(contentSelector, func(e *colly.HTMLElement) {
		// The first matching container wins
		if content != "" {
			return
		}
		var paragraphs []string
		e.ForEach("p", func(_ int, el *colly.HTMLElement) {
			text := CleanHTML(el.Text)
			if len(text) > minParagraphLength {
				paragraphs = append(paragraphs, text)
			}
		})
		content = strings.Join(paragraphs, "\n\n")
	})

	if err := c.Visit(articleURL); err != nil {
		return "", errors.Wrapf(errors.ErrCodeNewsFetchFailed, err, "failed to visit %s", articleURL)
	}
	return content, nil
}

// Enrich fills in content for articles that have little or none. Failures are logged and skipped.
func (s *Scraper) Enrich(ctx context.Context, articles []types.Article) []types.Article {
	enriched := make([]types.Article, len(articles))
	copy(enriched, articles)

	for i := range enriched {
		if ctx.Err() != nil {
			break
		}
		if len(enriched[i].Content) >= minContentLength {
			continue
		}

		content, err := s.FetchContent(ctx, enriched[i].URL)
		if err != nil {
			logger.Warn(ctx, "Failed to fetch article content", "url", enriched[i].URL, "error", err)
		} else if content != "" {
			enriched[i].Content = content
		}

		if s.delay > 0 && i < len(enriched)-1 {
			select {
			case <-ctx.Done():
			case <-time.After(s.delay):
			}
		}
	}
	return enriched
}
