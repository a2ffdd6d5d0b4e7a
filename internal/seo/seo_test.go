// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/acucogn/site/internal/model"
)

var testSite = &SiteConfig{
	SiteName:        "ACUCOGN",
	SiteURL:         "https://acucogn.example",
	SiteDescription: "AI consulting",
	DefaultOGImage:  "/static/og.png",
}

func testArticle() *model.Article {
	return &model.Article{
		ID:        "7f1d2c9e-8a4b-4c3d-9e2f-1a2b3c4d5e6f",
		Title:     "Agents in Production",
		Excerpt:   "What we learned shipping agents.",
		Content:   "## Intro\nBody text.",
		Category:  "Generative AI",
		Author:    "Priya Shah",
		Published: true,
		CreatedAt: time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC),
	}
}

func TestForPage(t *testing.T) {
	m := ForPage(testSite, "/services", "Services", "")

	if m.Title != "Services | ACUCOGN" {
		t.Errorf("Title = %q", m.Title)
	}
	if m.Description != "AI consulting" {
		t.Errorf("Description = %q, want site default", m.Description)
	}
	if m.Canonical != "https://acucogn.example/services" {
		t.Errorf("Canonical = %q", m.Canonical)
	}
	if m.OGImage != "https://acucogn.example/static/og.png" {
		t.Errorf("OGImage = %q", m.OGImage)
	}

	home := ForPage(testSite, "/", "", "Custom")
	if home.Title != "ACUCOGN" || home.Description != "Custom" {
		t.Errorf("home meta = %+v", home)
	}
}

func TestForArticle(t *testing.T) {
	a := testArticle()
	m := ForArticle(testSite, a)

	if m.OGType != "article" {
		t.Errorf("OGType = %q", m.OGType)
	}
	if m.Canonical != "https://acucogn.example/blog/"+a.ID {
		t.Errorf("Canonical = %q", m.Canonical)
	}
	if m.Description != a.Excerpt {
		t.Errorf("Description = %q", m.Description)
	}
	if m.OGImage != model.DefaultArticleImageURL {
		t.Errorf("OGImage = %q, want default cover", m.OGImage)
	}

	var schema ArticleSchema
	if err := json.Unmarshal([]byte(m.JSONLD), &schema); err != nil {
		t.Fatalf("JSONLD: %v", err)
	}
	if schema.Headline != a.Title || schema.Author == nil || schema.Author.Name != "Priya Shah" {
		t.Errorf("schema = %+v", schema)
	}
	if schema.DatePublished != "2025-03-04T10:00:00Z" {
		t.Errorf("DatePublished = %q", schema.DatePublished)
	}
}

func TestBuildArticleSchema_EscapesScript(t *testing.T) {
	a := testArticle()
	a.Title = "</script><script>alert(1)</script>"

	js := string(BuildArticleSchema(a, testSite))
	if strings.Contains(js, "</script>") {
		t.Errorf("JSON-LD not escaped: %s", js)
	}
}

func TestNoIndex(t *testing.T) {
	m := NoIndex(testSite, "Not Found")
	if m.Robots != "noindex,nofollow" {
		t.Errorf("Robots = %q", m.Robots)
	}
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short", "hello world", 20, "hello world"},
		{"collapses whitespace", "hello \n  world", 20, "hello world"},
		{"word boundary", "the quick brown fox jumps", 12, "the quick..."},
		{"multibyte", "héllo wörld ünïcode", 11, "héllo wörld..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateText(tt.in, tt.max); got != tt.want {
				t.Errorf("truncateText(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestGenerateSitemap(t *testing.T) {
	pub := *testArticle()
	draft := *testArticle()
	draft.ID = "draft"
	draft.Published = false

	data, err := GenerateSitemap("https://acucogn.example/", []string{"/", "/blog", "/faq"}, []model.Article{pub, draft})
	if err != nil {
		t.Fatalf("GenerateSitemap: %v", err)
	}

	if !strings.HasPrefix(string(data), xml.Header) {
		t.Error("missing XML header")
	}

	var sm Sitemap
	if err := xml.Unmarshal(data, &sm); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(sm.URLs) != 4 {
		t.Fatalf("urls = %d, want 4", len(sm.URLs))
	}
	if sm.URLs[0].Loc != "https://acucogn.example/" || sm.URLs[0].Priority != "1.0" {
		t.Errorf("home = %+v", sm.URLs[0])
	}
	if sm.URLs[1].ChangeFreq != ChangeFreqDaily {
		t.Errorf("blog changefreq = %q", sm.URLs[1].ChangeFreq)
	}
	last := sm.URLs[3]
	if last.Loc != "https://acucogn.example/blog/"+pub.ID || last.LastMod != "2025-03-04T10:00:00Z" {
		t.Errorf("article = %+v", last)
	}
}

func TestGenerateRobots(t *testing.T) {
	prod := GenerateRobots("https://acucogn.example/", true)
	for _, want := range []string{"User-agent: *", "Disallow: /api/", "Allow: /", "Sitemap: https://acucogn.example/sitemap.xml"} {
		if !strings.Contains(prod, want) {
			t.Errorf("production robots missing %q:\n%s", want, prod)
		}
	}

	dev := GenerateRobots("https://acucogn.example", false)
	if !strings.Contains(dev, "Disallow: /\n") || strings.Contains(dev, "Sitemap:") {
		t.Errorf("development robots = %q", dev)
	}
}

func TestRobotsExtraRules(t *testing.T) {
	out := NewRobotsBuilder(RobotsConfig{
		DisallowPaths: []string{"/drafts"},
		ExtraRules:    "User-agent: GPTBot\nDisallow: /",
	}).Build()

	if !strings.Contains(out, "Disallow: /drafts\n") {
		t.Errorf("missing custom path:\n%s", out)
	}
	if !strings.HasSuffix(out, "Disallow: /\n") {
		t.Errorf("extra rules not newline-terminated:\n%s", out)
	}
}

func TestGenerateSecurityTxt(t *testing.T) {
	expires := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	out := GenerateSecurityTxt("sales@acucogn.com", "https://acucogn.example/", expires)

	want := "Contact: mailto:sales@acucogn.com\n" +
		"Expires: 2027-01-01T00:00:00Z\n" +
		"Preferred-Languages: en\n" +
		"Canonical: https://acucogn.example/.well-known/security.txt\n"
	if out != want {
		t.Errorf("security.txt =\n%s\nwant\n%s", out, want)
	}
}

func TestBuildSecurityTxt_DefaultExpiry(t *testing.T) {
	out := BuildSecurityTxt(SecurityTxtConfig{Contact: []string{"https://acucogn.example/contact", ""}})
	if strings.Count(out, "Contact:") != 1 {
		t.Errorf("empty contact not skipped:\n%s", out)
	}
	if !strings.Contains(out, "Expires: ") {
		t.Errorf("missing Expires:\n%s", out)
	}
}
