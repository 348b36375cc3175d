package news

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"smarttrade-bot/internal/errors"
	"smarttrade-bot/internal/interfaces"
	"smarttrade-bot/internal/logger"
	"smarttrade-bot/internal/types"
)

// migrations are applied in order; PRAGMA user_version records how many have run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS articles (
		id           TEXT PRIMARY KEY,
		published_at INTEGER NOT NULL,
		author       TEXT NOT NULL DEFAULT '',
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		content      TEXT NOT NULL DEFAULT '',
		url          TEXT NOT NULL,
		source       TEXT NOT NULL DEFAULT '',
		image        TEXT NOT NULL DEFAULT '',
		category     TEXT NOT NULL DEFAULT '',
		language     TEXT NOT NULL DEFAULT '',
		country      TEXT NOT NULL DEFAULT '',
		region       TEXT NOT NULL,
		date         TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_articles_region_published ON articles(region, published_at DESC);
	CREATE INDEX IF NOT EXISTS idx_articles_date ON articles(date);`,
	`ALTER TABLE articles ADD COLUMN saved_at INTEGER NOT NULL DEFAULT 0;`,
}

const articleColumns = `id, published_at, author, title, description, content, url, source, image, category, language, country, region, date`

// ExistingIDs queries in batches to stay under the sqlite variable limit.
const idBatchSize = 500

// Repository is a sqlite-backed article store
type Repository struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

var _ interfaces.ArticleStore = (*Repository)(nil)

// OpenRepository opens (or creates) the database at path and runs pending migrations.
func OpenRepository(ctx context.Context, path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "open sqlite", err)
	}
	// A single connection serializes writers and keeps :memory: databases shared
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "set WAL mode", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "set busy timeout", err)
	}

	r := &Repository{db: db, now: time.Now}
	if err := r.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info(ctx, "Article store opened", "path", path)
	return r, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) migrate(ctx context.Context) error {
	var version int
	if err := r.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "read schema version", err)
	}

	for i := version; i < len(migrations); i++ {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return errors.Wrap(errors.ErrCodeQueryFailed, "begin migration", err)
		}
		if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
			tx.Rollback()
			return errors.Wrapf(errors.ErrCodeQueryFailed, err, "migration %d", i+1)
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			tx.Rollback()
			return errors.Wrapf(errors.ErrCodeQueryFailed, err, "record migration %d", i+1)
		}
		if err := tx.Commit(); err != nil {
			return errors.Wrapf(errors.ErrCodeQueryFailed, err, "commit migration %d", i+1)
		}
		logger.Debug(ctx, "Applied article store migration", "version", i+1)
	}
	return nil
}

// SaveAll upserts articles by id and returns how many were written.
func (r *Repository) SaveAll(ctx context.Context, articles []types.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}
	for _, a := range articles {
		if err := validate.Struct(a); err != nil {
			return 0, errors.Wrapf(errors.ErrCodeInvalidParameter, err, "invalid article %q", a.URL)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "begin save", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO articles (`+articleColumns+`, saved_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET
			published_at = excluded.published_at,
			author       = excluded.author,
			title        = excluded.title,
			description  = excluded.description,
			content      = CASE WHEN excluded.content != '' THEN excluded.content ELSE articles.content END,
			source       = excluded.source,
			image        = excluded.image,
			category     = excluded.category,
			language     = excluded.language,
			country      = excluded.country,
			region       = excluded.region,
			date         = excluded.date,
			saved_at     = excluded.saved_at`)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "prepare upsert", err)
	}
	defer stmt.Close()

	savedAt := r.now().UnixMilli()
	for _, a := range articles {
		_, err := stmt.ExecContext(ctx,
			a.ID, a.PublishedAt.UTC().UnixMilli(), a.Author, a.Title, a.Description, a.Content,
			a.URL, a.Source, a.Image, a.Category, a.Language, a.Country, string(a.Region), a.Date,
			savedAt,
		)
		if err != nil {
			return 0, errors.Wrapf(errors.ErrCodeQueryFailed, err, "upsert article %s", a.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "commit save", err)
	}
	return len(articles), nil
}

// ExistingIDs reports which of ids are already stored.
func (r *Repository) ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	found := make(map[string]bool, len(ids))
	for start := 0; start < len(ids); start += idBatchSize {
		end := min(start+idBatchSize, len(ids))
		batch := ids[start:end]

		args := make([]any, len(batch))
		for i, id := range batch {
			args[i] = id
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(batch)), ",")

		rows, err := r.db.QueryContext(ctx, "SELECT id FROM articles WHERE id IN ("+placeholders+")", args...)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "query existing ids", err)
		}
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return nil, errors.Wrap(errors.ErrCodeQueryFailed, "scan id", err)
			}
			found[id] = true
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "iterate ids", err)
		}
	}
	return found, nil
}

// FindLatestByRegion returns up to limit articles of region, newest first.
func (r *Repository) FindLatestByRegion(ctx context.Context, region types.Region, limit int) ([]types.Article, error) {
	return r.query(ctx, `SELECT `+articleColumns+` FROM articles WHERE region = ? ORDER BY published_at DESC, id LIMIT ?`,
		string(region), limit)
}

// FindAllAtDate returns every article whose UTC publication date is date's UTC date.
func (r *Repository) FindAllAtDate(ctx context.Context, date time.Time) ([]types.Article, error) {
	return r.query(ctx, `SELECT `+articleColumns+` FROM articles WHERE date = ? ORDER BY published_at DESC, id`,
		date.UTC().Format(dateLayout))
}

func (r *Repository) query(ctx context.Context, q string, args ...any) ([]types.Article, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "query articles", err)
	}
	defer rows.Close()

	var out []types.Article
	for rows.Next() {
		var (
			a         types.Article
			published int64
			region    string
		)
		err := rows.Scan(&a.ID, &published, &a.Author, &a.Title, &a.Description, &a.Content,
			&a.URL, &a.Source, &a.Image, &a.Category, &a.Language, &a.Country, &region, &a.Date)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "scan article", err)
		}
		a.PublishedAt = time.UnixMilli(published).UTC()
		a.Region = types.Region(region)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "iterate articles", err)
	}
	return out, nil
}
