package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/acucogn/site/internal/model"
)

// Article cache keys, relative to the backend prefix.
const (
	publishedListKey = "articles:published"
	articleKeyPrefix = "articles:id:"
)

// Articles caches the published listing and single article rows on top of
// a Cache. Lookups report hits with a bool; backend failures are logged and
// treated as misses so the blog always falls back to its source.
type Articles struct {
	c   Cache
	ttl time.Duration
}

// NewArticles wraps c. Entries live for ttl.
func NewArticles(c Cache, ttl time.Duration) *Articles {
	return &Articles{c: c, ttl: ttl}
}

// Published returns the cached listing.
func (a *Articles) Published(ctx context.Context) ([]model.Article, bool) {
	var list []model.Article
	if !a.load(ctx, publishedListKey, &list) {
		return nil, false
	}
	return list, true
}

// SetPublished caches the listing.
func (a *Articles) SetPublished(ctx context.Context, list []model.Article) {
	a.save(ctx, publishedListKey, list)
}

// Article returns the cached row for id. Rows no longer marked published
// are not returned.
func (a *Articles) Article(ctx context.Context, id string) (*model.Article, bool) {
	var art model.Article
	if !a.load(ctx, articleKeyPrefix+id, &art) || !art.IsPublished() {
		return nil, false
	}
	return &art, true
}

// SetArticle caches one row.
func (a *Articles) SetArticle(ctx context.Context, art *model.Article) {
	a.save(ctx, articleKeyPrefix+art.ID, art)
}

// Invalidate drops the listing and every cached row, so articles that were
// unpublished since they were cached disappear on the next read.
func (a *Articles) Invalidate(ctx context.Context) error {
	return a.c.Clear(ctx)
}

func (a *Articles) load(ctx context.Context, key string, dst any) bool {
	err := GetJSON(ctx, a.c, key, dst)
	if err != nil && !errors.Is(err, ErrCacheMiss) {
		slog.WarnContext(ctx, "article cache read failed", "key", key, "error", err)
	}
	return err == nil
}

func (a *Articles) save(ctx context.Context, key string, v any) {
	if err := SetJSON(ctx, a.c, key, v, a.ttl); err != nil {
		slog.WarnContext(ctx, "article cache write failed", "key", key, "error", err)
	}
}
