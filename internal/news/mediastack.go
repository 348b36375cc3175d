package news

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"smarttrade-bot/internal/api"
	"smarttrade-bot/internal/errors"
	"smarttrade-bot/internal/interfaces"
	"smarttrade-bot/internal/trace"
	"smarttrade-bot/internal/types"
)

const (
	// DefaultBaseURL is the mediastack v1 API root.
	DefaultBaseURL           = "https://api.mediastack.com/v1"
	DefaultRequestsPerMinute = 30
	dateLayout               = "2006-01-02"
)

var validate = validator.New()

// MediastackConfig configures the mediastack client
type MediastackConfig struct {
	BaseURL           string
	APIKey            string
	RequestsPerMinute int
	Timeout           time.Duration
}

// Mediastack fetches business news from mediastack.com
type Mediastack struct {
	client  *api.Client
	apiKey  string
	limiter *rate.Limiter
	retry   *api.RetryConfig
}

var _ interfaces.NewsSource = (*Mediastack)(nil)

func NewMediastack(cfg MediastackConfig) *Mediastack {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = DefaultRequestsPerMinute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Mediastack{
		client: api.NewClient(
			api.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")),
			api.WithTimeout(cfg.Timeout),
		),
		apiKey:  cfg.APIKey,
		limiter: rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60), 1),
		retry:   api.DefaultRetryConfig(),
	}
}

type mediastackArticle struct {
	Author      string `json:"author"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	URL         string `json:"url" validate:"required,url"`
	Source      string `json:"source"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Language    string `json:"language"`
	Country     string `json:"country"`
	PublishedAt string `json:"published_at" validate:"required"`
}

type mediastackResponse struct {
	Pagination struct {
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
		Count  int `json:"count"`
		Total  int `json:"total"`
	} `json:"pagination"`
	Data []mediastackArticle `json:"data" validate:"dive"`
}

// countries maps a region to the mediastack country filter. A leading '-' excludes.
func countries(region types.Region) string {
	if region == types.RegionUnitedStates {
		return "us"
	}
	return "-us"
}

// FetchPage returns one page of English business news published on date for region.
func (m *Mediastack) FetchPage(ctx context.Context, date time.Time, region types.Region, offset, limit int) ([]types.Article, error) {
	ctx, span := trace.StartSpan(ctx, "mediastack-fetch-page")
	defer span.End()

	if m.apiKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "MEDIASTACK_API_KEY missing")
	}
	if err := m.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req := api.NewRequest("GET", "/news").
		WithContext(ctx).
		WithQuery("access_key", m.apiKey).
		WithQuery("categories", "business").
		WithQuery("countries", countries(region)).
		WithQuery("languages", "en").
		WithQuery("date", date.UTC().Format(dateLayout)).
		WithQuery("sort", "published_desc").
		WithQuery("limit", strconv.Itoa(limit)).
		WithQuery("offset", strconv.Itoa(offset))

	resp, err := m.client.DoWithRetry(req, m.retry)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeNewsFetchFailed, err, "mediastack request failed (region=%s offset=%d)", region, offset)
	}

	var out mediastackResponse
	if err := resp.ParseJSON(&out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedResponse, "invalid mediastack response", err)
	}
	if err := validate.Struct(out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedResponse, "mediastack response failed validation", err)
	}

	articles := make([]types.Article, 0, len(out.Data))
	for _, item := range out.Data {
		a, err := item.toArticle(region)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, nil
}

func (m mediastackArticle) toArticle(region types.Region) (types.Article, error) {
	published, err := time.Parse(time.RFC3339, m.PublishedAt)
	if err != nil {
		return types.Article{}, errors.Wrapf(errors.ErrCodeMalformedResponse, err, "invalid published_at %q", m.PublishedAt)
	}
	published = published.UTC()
	return types.Article{
		ID:          ArticleID(m.URL),
		PublishedAt: published,
		Author:      m.Author,
		Title:       CleanHTML(m.Title),
		Description: CleanHTML(m.Description),
		URL:         m.URL,
		Source:      m.Source,
		Image:       m.Image,
		Category:    m.Category,
		Language:    m.Language,
		Country:     m.Country,
		Region:      region,
		Date:        published.Format(dateLayout),
	}, nil
}

// ArticleID derives the stable id of an article from its URL.
func ArticleID(url string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(url)).String()
}
