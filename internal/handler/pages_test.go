package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPages_ActiveTab(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		path string
		tab  string
	}{
		{"/", "Home"},
		{"/services", "Services"},
		{"/portfolio", "Portfolio"},
		{"/faq", "FAQ"},
		{"/blog", "Blog"},
		{"/contact", "Contact"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w, doc := env.get(t, tt.path, nil)
			assert.Equal(t, http.StatusOK, w.Code)
			active := doc.Find("nav a.tab.active")
			assert.Equal(t, 1, active.Length())
			assert.Equal(t, tt.tab, active.Text())
		})
	}
}

func TestPages_Promotion(t *testing.T) {
	env := newTestEnv(t)

	_, doc := env.get(t, "/", nil)
	assert.Contains(t, doc.Find(".promo a").Text(), "Schedule a Free Consultation")

	_, doc = env.get(t, "/services", nil)
	assert.Contains(t, doc.Find(".promo a").Text(), "Schedule a Call Today")

	_, doc = env.get(t, "/faq", nil)
	assert.Equal(t, 0, doc.Find(".promo").Length())
}

func TestFAQ_SingleOpenItem(t *testing.T) {
	env := newTestEnv(t)

	_, doc := env.get(t, "/faq", nil)
	assert.Equal(t, 0, doc.Find(".faq-item.open").Length())

	_, doc = env.get(t, "/faq?open=2", nil)
	open := doc.Find(".faq-item.open")
	assert.Equal(t, 1, open.Length())
	id, _ := open.Attr("id")
	assert.Equal(t, "faq-2", id)

	// The open item's link collapses it again.
	href, _ := open.Find("a.faq-question").Attr("href")
	assert.Equal(t, "/faq#faq-2", href)

	_, doc = env.get(t, "/faq?open=99", nil)
	assert.Equal(t, 0, doc.Find(".faq-item.open").Length())
}

func TestPortfolio_DemoDialog(t *testing.T) {
	env := newTestEnv(t)

	_, doc := env.get(t, "/portfolio", nil)
	assert.Equal(t, 5, doc.Find(".portfolio-item").Length())
	assert.Equal(t, 0, doc.Find("#demo").Length())

	_, doc = env.get(t, "/portfolio?demo=1", nil)
	assert.Equal(t, "Request for Demo", doc.Find("#demo-title").Text())
}

func TestNotFound(t *testing.T) {
	env := newTestEnv(t)

	w, doc := env.get(t, "/no-such-page", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Page Not Found", doc.Find("section.not-found h1").Text())
}
