// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds meta tags, structured data, sitemaps and robots.txt.
package seo

import (
	"encoding/json"
	"html/template"
	"strings"
	"time"

	"github.com/acucogn/site/internal/model"
)

// Meta holds the meta tags for a page.
type Meta struct {
	Title         string
	Description   string
	Canonical     string
	OGTitle       string
	OGDescription string
	OGImage       string
	OGType        string
	OGSiteName    string
	OGURL         string
	Robots        string
	TwitterCard   string
	JSONLD        template.JS
}

// SiteConfig contains site-wide settings.
type SiteConfig struct {
	SiteName        string
	SiteURL         string
	SiteDescription string
	DefaultOGImage  string
}

// ForPage builds meta for a static panel. An empty title means the home page.
func ForPage(site *SiteConfig, path, title, description string) *Meta {
	if description == "" {
		description = site.SiteDescription
	}
	fullTitle := site.SiteName
	if title != "" {
		fullTitle = title + " | " + site.SiteName
	}

	canonical := makeAbsoluteURL(path, site.SiteURL)
	return &Meta{
		Title:         fullTitle,
		Description:   description,
		Canonical:     canonical,
		OGTitle:       fullTitle,
		OGDescription: description,
		OGImage:       makeAbsoluteURL(site.DefaultOGImage, site.SiteURL),
		OGType:        "website",
		OGSiteName:    site.SiteName,
		OGURL:         canonical,
		Robots:        "index,follow",
		TwitterCard:   "summary_large_image",
	}
}

// ForArticle builds meta and Article structured data for a blog post.
func ForArticle(site *SiteConfig, a *model.Article) *Meta {
	description := truncateText(a.Description(), 160)
	canonical := site.SiteURL + "/blog/" + a.ID

	return &Meta{
		Title:         a.Title + " | " + site.SiteName,
		Description:   description,
		Canonical:     canonical,
		OGTitle:       a.Title,
		OGDescription: description,
		OGImage:       makeAbsoluteURL(a.CoverImage(), site.SiteURL),
		OGType:        "article",
		OGSiteName:    site.SiteName,
		OGURL:         canonical,
		Robots:        "index,follow",
		TwitterCard:   "summary_large_image",
		JSONLD:        BuildArticleSchema(a, site),
	}
}

// NoIndex builds meta for pages that must stay out of search results.
func NoIndex(site *SiteConfig, title string) *Meta {
	return &Meta{
		Title:      title + " | " + site.SiteName,
		OGSiteName: site.SiteName,
		Robots:     "noindex,nofollow",
	}
}

// ArticleSchema is JSON-LD Article structured data.
type ArticleSchema struct {
	Context          string        `json:"@context"`
	Type             string        `json:"@type"`
	Headline         string        `json:"headline"`
	Description      string        `json:"description,omitempty"`
	Image            string        `json:"image,omitempty"`
	DatePublished    string        `json:"datePublished,omitempty"`
	ArticleSection   string        `json:"articleSection,omitempty"`
	Author           *PersonSchema `json:"author,omitempty"`
	Publisher        *OrgSchema    `json:"publisher,omitempty"`
	MainEntityOfPage string        `json:"mainEntityOfPage,omitempty"`
}

// PersonSchema is JSON-LD Person structured data.
type PersonSchema struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// OrgSchema is JSON-LD Organization structured data.
type OrgSchema struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// BuildArticleSchema creates JSON-LD Article structured data.
func BuildArticleSchema(a *model.Article, site *SiteConfig) template.JS {
	if a == nil {
		return ""
	}

	article := ArticleSchema{
		Context:          "https://schema.org",
		Type:             "Article",
		Headline:         a.Title,
		Description:      a.Excerpt,
		Image:            makeAbsoluteURL(a.CoverImage(), site.SiteURL),
		ArticleSection:   a.Category,
		MainEntityOfPage: site.SiteURL + "/blog/" + a.ID,
		Publisher: &OrgSchema{
			Type: "Organization",
			Name: site.SiteName,
			URL:  site.SiteURL,
		},
	}
	if !a.CreatedAt.IsZero() {
		article.DatePublished = a.CreatedAt.UTC().Format(time.RFC3339)
	}
	if a.Author != "" {
		article.Author = &PersonSchema{Type: "Person", Name: a.Author}
	}

	return marshalJSONLD(article)
}

func marshalJSONLD(v any) template.JS {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return template.JS(data) //nolint:gosec // json.Marshal escapes <, > and &
}

// truncateText cuts text to maxLen runes at a word boundary.
func truncateText(text string, maxLen int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	truncated := string(runes[:maxLen])
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > len(truncated)/2 {
		truncated = truncated[:lastSpace]
	}
	return strings.TrimSpace(truncated) + "..."
}

// makeAbsoluteURL prefixes relative URLs with siteURL.
func makeAbsoluteURL(url, siteURL string) string {
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	siteURL = strings.TrimSuffix(siteURL, "/")
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return siteURL + url
}
