package seo

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/acucogn/site/internal/model"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq is the change frequency of a URL.
type ChangeFreq string

// Change frequencies used by the site.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// SitemapURL is one URL entry.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap is the complete document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapBuilder collects URLs.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a builder for siteURL.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: strings.TrimSuffix(siteURL, "/"),
		urls:    make([]SitemapURL, 0),
	}
}

// AddStatic adds a static panel. "/" gets top priority.
func (b *SitemapBuilder) AddStatic(path string) {
	u := SitemapURL{
		Loc:        b.siteURL + path,
		ChangeFreq: ChangeFreqMonthly,
		Priority:   "0.8",
	}
	switch path {
	case "/":
		u.ChangeFreq = ChangeFreqWeekly
		u.Priority = "1.0"
	case "/blog":
		u.ChangeFreq = ChangeFreqDaily
	}
	b.urls = append(b.urls, u)
}

// AddArticle adds a published blog post.
func (b *SitemapBuilder) AddArticle(a model.Article) {
	u := SitemapURL{
		Loc:        b.siteURL + "/blog/" + a.ID,
		ChangeFreq: ChangeFreqMonthly,
		Priority:   "0.6",
	}
	if !a.CreatedAt.IsZero() {
		u.LastMod = a.CreatedAt.UTC().Format(time.RFC3339)
	}
	b.urls = append(b.urls, u)
}

// Len returns the number of URLs added.
func (b *SitemapBuilder) Len() int {
	return len(b.urls)
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}

// GenerateSitemap builds a sitemap of the static paths followed by the
// published articles.
func GenerateSitemap(siteURL string, paths []string, articles []model.Article) ([]byte, error) {
	builder := NewSitemapBuilder(siteURL)
	for _, p := range paths {
		builder.AddStatic(p)
	}
	for _, a := range articles {
		if a.IsPublished() {
			builder.AddArticle(a)
		}
	}
	return builder.Build()
}
