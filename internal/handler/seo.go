package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/acucogn/site/internal/blog"
	"github.com/acucogn/site/internal/model"
	"github.com/acucogn/site/internal/seo"
	"github.com/acucogn/site/internal/site"
)

// SEOHandler serves sitemap.xml, robots.txt and security.txt.
type SEOHandler struct {
	blog       *blog.Service
	siteURL    string
	email      string
	production bool
	now        func() time.Time
}

// NewSEOHandler creates an SEOHandler. email is the security contact.
func NewSEOHandler(b *blog.Service, siteURL, email string, production bool) *SEOHandler {
	return &SEOHandler{blog: b, siteURL: siteURL, email: email, production: production, now: time.Now}
}

// Sitemap handles GET /sitemap.xml. When articles cannot be loaded the
// sitemap still lists the static panels.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	paths := make([]string, 0, len(site.Tabs))
	for _, t := range site.Tabs {
		paths = append(paths, t.Path)
	}

	var articles []model.Article
	if h.blog != nil {
		var err error
		if articles, err = h.blog.List(r.Context()); err != nil {
			slog.WarnContext(r.Context(), "sitemap without articles", "error", err)
			articles = nil
		}
	}

	body, err := seo.GenerateSitemap(h.siteURL, paths, articles)
	if err != nil {
		slog.ErrorContext(r.Context(), "sitemap build failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(body)
}

// Robots handles GET /robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write([]byte(seo.GenerateRobots(h.siteURL, h.production)))
}

// SecurityTxt handles GET /.well-known/security.txt. The expiry rolls
// forward a year from each request.
func (h *SEOHandler) SecurityTxt(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(seo.GenerateSecurityTxt(h.email, h.siteURL, h.now().AddDate(1, 0, 0))))
}
