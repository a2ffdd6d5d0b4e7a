// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package blog reads published articles for the blog pages.
//
// The Service wraps an article Source (the SQL store or the hosted backend),
// enforces that only published articles leave it, orders listings newest
// first and optionally caches the raw article rows.
package blog

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/acucogn/site/internal/cache"
	"github.com/acucogn/site/internal/metrics"
	"github.com/acucogn/site/internal/model"
)

// Source is where articles come from.
type Source interface {
	ListPublished(ctx context.Context) ([]model.Article, error)
	GetPublished(ctx context.Context, id string) (*model.Article, error)
}

// Category is a category label with its slug and article count.
type Category struct {
	Name  string
	Slug  string
	Count int
}

// Service lists and fetches published articles.
type Service struct {
	source  Source
	cache   *cache.Articles
	metrics *metrics.Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithCache caches article rows in c for ttl.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Service) { s.cache = cache.NewArticles(c, ttl) }
}

// WithMetrics records fetch outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService creates a Service reading from source.
func NewService(source Source, opts ...Option) *Service {
	s := &Service{source: source}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns all published articles ordered by creation time, newest
// first. Articles with equal timestamps keep the order the source returned.
// Failures are reported as *model.TransportError.
func (s *Service) List(ctx context.Context) ([]model.Article, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Published(ctx); ok {
			s.metrics.ArticleFetch("list", metrics.OutcomeCacheHit)
			return cached, nil
		}
	}

	articles, err := s.source.ListPublished(ctx)
	if err != nil {
		s.metrics.ArticleFetch("list", metrics.OutcomeError)
		return nil, &model.TransportError{Op: "list articles", Err: err}
	}

	articles = SortNewestFirst(publishedOnly(articles))
	if s.cache != nil {
		s.cache.SetPublished(ctx, articles)
	}
	s.metrics.ArticleFetch("list", metrics.OutcomeSuccess)
	return articles, nil
}

// ListByCategory returns published articles whose category slug is slug.
// An empty slug returns every published article.
func (s *Service) ListByCategory(ctx context.Context, slug string) ([]model.Article, error) {
	articles, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByCategory(articles, slug), nil
}

// FilterByCategory returns the articles whose category slug is slug, in
// their original order. An empty slug keeps every article.
func FilterByCategory(articles []model.Article, slug string) []model.Article {
	if slug == "" {
		return articles
	}
	filtered := make([]model.Article, 0, len(articles))
	for _, a := range articles {
		if a.CategorySlug() == slug {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// Categories returns the categories of published articles in order of
// first appearance in the listing.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	articles, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return CategoriesOf(articles), nil
}

// Get returns the published article with id. Absent, unpublished and
// malformed identifiers all yield model.ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*model.Article, error) {
	if _, err := uuid.Parse(id); err != nil {
		s.metrics.ArticleFetch("get", metrics.OutcomeNotFound)
		return nil, model.ErrNotFound
	}

	if s.cache != nil {
		if cached, ok := s.cache.Article(ctx, id); ok {
			s.metrics.ArticleFetch("get", metrics.OutcomeCacheHit)
			return cached, nil
		}
	}

	a, err := s.source.GetPublished(ctx, id)
	switch {
	case errors.Is(err, model.ErrNotFound):
		s.metrics.ArticleFetch("get", metrics.OutcomeNotFound)
		return nil, model.ErrNotFound
	case err != nil:
		s.metrics.ArticleFetch("get", metrics.OutcomeError)
		return nil, &model.TransportError{Op: "get article", Err: err}
	case a == nil || !a.IsPublished():
		s.metrics.ArticleFetch("get", metrics.OutcomeNotFound)
		return nil, model.ErrNotFound
	}

	if s.cache != nil {
		s.cache.SetArticle(ctx, a)
	}
	s.metrics.ArticleFetch("get", metrics.OutcomeSuccess)
	return a, nil
}

// Warm drops every cached article and loads the listing again.
func (s *Service) Warm(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		slog.WarnContext(ctx, "failed to drop article cache", "error", err)
	}
	_, err := s.List(ctx)
	return err
}

// SortNewestFirst sorts articles by CreatedAt descending in place and
// returns them. The sort is stable.
func SortNewestFirst(articles []model.Article) []model.Article {
	slices.SortStableFunc(articles, func(a, b model.Article) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return articles
}

// CategoriesOf groups articles by category slug.
func CategoriesOf(articles []model.Article) []Category {
	var cats []Category
	index := make(map[string]int)
	for _, a := range articles {
		slug := a.CategorySlug()
		if slug == "" {
			continue
		}
		if i, ok := index[slug]; ok {
			cats[i].Count++
			continue
		}
		index[slug] = len(cats)
		cats = append(cats, Category{Name: a.Category, Slug: slug, Count: 1})
	}
	return cats
}

// publishedOnly drops unpublished rows a misconfigured source may return.
func publishedOnly(articles []model.Article) []model.Article {
	out := articles[:0]
	for _, a := range articles {
		if a.IsPublished() {
			out = append(out, a)
		}
	}
	if out == nil {
		return []model.Article{}
	}
	return out
}
