package cache

import (
	"context"
	"testing"
	"time"

	"github.com/acucogn/site/internal/model"
)

func TestArticles_PublishedAndRows(t *testing.T) {
	mc := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute})
	defer func() { _ = mc.Close() }()
	a := NewArticles(mc, time.Minute)
	ctx := context.Background()

	if _, ok := a.Published(ctx); ok {
		t.Fatal("empty cache reported a listing")
	}

	list := []model.Article{{ID: "one", Title: "One", Published: true}, {ID: "two", Title: "Two", Published: true}}
	a.SetPublished(ctx, list)
	a.SetArticle(ctx, &list[0])
	a.SetArticle(ctx, &model.Article{ID: "draft", Title: "Draft"})

	got, ok := a.Published(ctx)
	if !ok || len(got) != 2 || got[1].Title != "Two" {
		t.Errorf("Published() = %+v, %v", got, ok)
	}
	if row, ok := a.Article(ctx, "one"); !ok || row.Title != "One" {
		t.Errorf("Article(one) = %+v, %v", row, ok)
	}
	if _, ok := a.Article(ctx, "draft"); ok {
		t.Error("unpublished row returned from cache")
	}
}

func TestArticles_InvalidateDropsEverything(t *testing.T) {
	mc := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute})
	defer func() { _ = mc.Close() }()
	a := NewArticles(mc, time.Minute)
	ctx := context.Background()

	a.SetPublished(ctx, []model.Article{{ID: "one", Published: true}})
	a.SetArticle(ctx, &model.Article{ID: "one", Published: true})

	if err := a.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, ok := a.Published(ctx); ok {
		t.Error("listing survived Invalidate")
	}
	if _, ok := a.Article(ctx, "one"); ok {
		t.Error("row survived Invalidate")
	}
}

func TestArticles_BackendFailureIsMiss(t *testing.T) {
	mc := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute})
	a := NewArticles(mc, time.Minute)
	ctx := context.Background()

	a.SetPublished(ctx, []model.Article{{ID: "one", Published: true}})
	_ = mc.Close()

	if _, ok := a.Published(ctx); ok {
		t.Error("closed cache reported a hit")
	}
	a.SetArticle(ctx, &model.Article{ID: "one", Published: true})
}
