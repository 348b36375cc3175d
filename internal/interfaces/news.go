package interfaces

import (
	"context"
	"time"

	"smarttrade-bot/internal/types"
)

// ArticleStore persists news articles keyed by their deterministic id.
type ArticleStore interface {
	SaveAll(ctx context.Context, articles []types.Article) (int, error)
	ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error)
	FindLatestByRegion(ctx context.Context, region types.Region, limit int) ([]types.Article, error)
	FindAllAtDate(ctx context.Context, date time.Time) ([]types.Article, error)
}

// NewsSource returns one page of an upstream provider's articles for a day, newest first.
type NewsSource interface {
	FetchPage(ctx context.Context, date time.Time, region types.Region, offset, limit int) ([]types.Article, error)
}
