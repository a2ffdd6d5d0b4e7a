package handler

import (
	"net/http"

	"github.com/acucogn/site/internal/seo"
	"github.com/acucogn/site/internal/site"
)

// PagesHandler serves the static promotional panels.
type PagesHandler struct {
	*Views
}

// NewPagesHandler creates a PagesHandler.
func NewPagesHandler(v *Views) *PagesHandler {
	return &PagesHandler{Views: v}
}

// FAQData is the view data of the FAQ page. Open is the expanded item, or
// -1 when all are collapsed.
type FAQData struct {
	Open int
}

// PortfolioData is the view data of the portfolio page.
type PortfolioData struct {
	DemoOpen bool
}

// Home handles GET /.
func (h *PagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	meta := seo.ForPage(h.SEO, RouteRoot, "", h.Site.Hero.Subtitle)
	h.render(w, r, http.StatusOK, "home", h.page(r, site.TabHome, meta, nil))
}

// Services handles GET /services.
func (h *PagesHandler) Services(w http.ResponseWriter, r *http.Request) {
	meta := seo.ForPage(h.SEO, RouteServices, h.Site.Services.Title, h.Site.Services.Subtitle)
	h.render(w, r, http.StatusOK, "services", h.page(r, site.TabServices, meta, nil))
}

// Portfolio handles GET /portfolio. ?demo=1 opens the demo request dialog.
func (h *PagesHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	meta := seo.ForPage(h.SEO, RoutePortfolio, h.Site.Portfolio.Title, h.Site.Portfolio.Subtitle)
	data := PortfolioData{DemoOpen: r.URL.Query().Get(QueryDemo) != ""}
	h.render(w, r, http.StatusOK, "portfolio", h.page(r, site.TabPortfolio, meta, data))
}

// FAQ handles GET /faq. ?open=n expands item n; at most one item is open.
func (h *PagesHandler) FAQ(w http.ResponseWriter, r *http.Request) {
	meta := seo.ForPage(h.SEO, RouteFAQ, h.Site.FAQ.Title, h.Site.FAQ.Subtitle)
	data := FAQData{Open: h.Site.OpenFAQ(r.URL.Query().Get(QueryOpen))}
	h.render(w, r, http.StatusOK, "faq", h.page(r, site.TabFAQ, meta, data))
}
