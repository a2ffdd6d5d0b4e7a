package handler

import (
	"net/http"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
)

func TestBlogList(t *testing.T) {
	env := newTestEnv(t)

	w, doc := env.get(t, "/blog", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	titles := doc.Find(".post-card h3").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"RAG Basics", "Agents in Production"}, titles, "newest first, drafts hidden")
	assert.Equal(t, 3, doc.Find("nav.categories a").Length())
}

func TestBlogList_Category(t *testing.T) {
	env := newTestEnv(t)

	_, doc := env.get(t, "/blog?category=genai", nil)
	assert.Equal(t, 1, doc.Find(".post-card").Length())
	assert.Equal(t, "Agents in Production", doc.Find(".post-card h3").Text())
	assert.Contains(t, doc.Find("nav.categories a.active").Text(), "GenAI")

	// Malformed slugs fall back to the full listing.
	_, doc = env.get(t, "/blog?category=%3Cscript%3E", nil)
	assert.Equal(t, 2, doc.Find(".post-card").Length())
}

func TestBlogList_Empty(t *testing.T) {
	env := newTestEnv(t)
	env.source.articles = nil

	_, doc := env.get(t, "/blog", nil)
	assert.Equal(t, "No blog posts available at the moment.", doc.Find("p.empty").Text())
}

func TestBlogList_BackendError(t *testing.T) {
	env := newTestEnv(t)
	env.source.err = errBackend

	w, doc := env.get(t, "/blog", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "Error loading blog posts. Please try again later.", doc.Find("p.error").Text())
}

func TestBlogShow(t *testing.T) {
	env := newTestEnv(t)

	w, doc := env.get(t, "/blog/"+idAgents, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Agents in Production", doc.Find("article.post h1").Text())
	assert.Equal(t, "Why", doc.Find(".post-body h2.post-heading").Text())
	assert.Equal(t, "Written by sam", doc.Find(".written-by").Text())

	canonical, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
	assert.Equal(t, "https://acucogn.test/blog/"+idAgents, canonical)
}

func TestBlogShow_NotFound(t *testing.T) {
	env := newTestEnv(t)

	for _, id := range []string{idNotThere, idDraft, "not-a-uuid"} {
		t.Run(id, func(t *testing.T) {
			w, doc := env.get(t, "/blog/"+id, nil)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, "Blog Post Not Found", doc.Find("section.not-found h1").Text())
			assert.Contains(t, doc.Find("section.not-found a").Text(), "Back to Blogs")
		})
	}
}

func TestBlogShow_BackendError(t *testing.T) {
	env := newTestEnv(t)
	env.source.err = errBackend

	w, doc := env.get(t, "/blog/"+idAgents, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "Error loading blog post. Please try again later.", doc.Find("section.error-page p").Text())
}
