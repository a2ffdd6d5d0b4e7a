// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model contains domain models and constants for the application.
package model

import (
	"strings"
	"time"
	"unicode"

	"github.com/acucogn/site/internal/formatter"
	"github.com/acucogn/site/internal/util"
)

// DefaultArticleImageURL is shown when an article has no cover image.
const DefaultArticleImageURL = "https://images.unsplash.com/photo-1518770660439-4636190af475?auto=format&fit=crop&w=1200&q=80"

// Article is a blog post. Articles are authored elsewhere and are read-only
// here; only published articles may ever be shown.
type Article struct {
	ID             string    `db:"id" json:"id"`
	Title          string    `db:"title" json:"title"`
	Excerpt        string    `db:"excerpt" json:"excerpt"`
	Content        string    `db:"content" json:"content"`
	Category       string    `db:"category" json:"category"`
	Author         string    `db:"author" json:"author"`
	AuthorImageURL *string   `db:"author_image_url" json:"author_image_url"`
	ImageURL       *string   `db:"image_url" json:"image_url"`
	Published      bool      `db:"published" json:"published"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// IsPublished returns true if the article may be shown to readers.
func (a *Article) IsPublished() bool {
	return a.Published
}

// CoverImage returns the cover image URL or the default image.
func (a *Article) CoverImage() string {
	if a.ImageURL != nil && *a.ImageURL != "" {
		return *a.ImageURL
	}
	return DefaultArticleImageURL
}

// AuthorImage returns the author avatar URL, or "" when none is set.
func (a *Article) AuthorImage() string {
	if a.AuthorImageURL == nil {
		return ""
	}
	return *a.AuthorImageURL
}

// AuthorInitial returns the upper-cased first letter of the author name,
// used as an avatar placeholder.
func (a *Article) AuthorInitial() string {
	name := strings.TrimSpace(a.Author)
	for _, r := range name {
		return string(unicode.ToUpper(r))
	}
	return "?"
}

// CategorySlug returns the URL form of the category label.
func (a *Article) CategorySlug() string {
	return util.Slugify(a.Category)
}

// Blocks formats the article body for display. The result is rebuilt on
// every call.
func (a *Article) Blocks() []formatter.Block {
	return formatter.Format(a.Content)
}

// Description returns the excerpt, or a summary of the body when the
// excerpt is empty.
func (a *Article) Description() string {
	if s := strings.TrimSpace(a.Excerpt); s != "" {
		return s
	}
	return formatter.Summary(a.Content, 160)
}
