package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acucogn/site/internal/blog"
	"github.com/acucogn/site/internal/model"
	"github.com/acucogn/site/internal/seo"
	"github.com/acucogn/site/internal/site"
	"github.com/acucogn/site/internal/util"
)

// BlogHandler serves the blog listing and article pages.
type BlogHandler struct {
	*Views
	blog *blog.Service
}

// NewBlogHandler creates a BlogHandler.
func NewBlogHandler(v *Views, svc *blog.Service) *BlogHandler {
	return &BlogHandler{Views: v, blog: svc}
}

// BlogListData is the view data of the blog listing.
type BlogListData struct {
	Articles   []model.Article
	Categories []blog.Category
	Category   string
	Error      bool
}

// BlogPostData is the view data of an article page.
type BlogPostData struct {
	Article *model.Article
}

// List handles GET /blog. ?category=slug filters the listing.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	meta := seo.ForPage(h.SEO, RouteBlog, "AI Insights",
		"Stay updated with the latest trends, insights, and developments in artificial intelligence")

	category := r.URL.Query().Get(QueryCategory)
	if !util.IsValidSlug(category) {
		category = ""
	}

	articles, err := h.blog.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to load blog posts", "error", err)
		h.render(w, r, http.StatusServiceUnavailable, "blog", h.page(r, site.TabBlog, meta, BlogListData{Error: true}))
		return
	}

	data := BlogListData{
		Articles:   blog.FilterByCategory(articles, category),
		Categories: blog.CategoriesOf(articles),
		Category:   category,
	}
	h.render(w, r, http.StatusOK, "blog", h.page(r, site.TabBlog, meta, data))
}

// Show handles GET /blog/{id}. Unknown and unpublished articles get the
// "Blog Post Not Found" page.
func (h *BlogHandler) Show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	article, err := h.blog.Get(r.Context(), id)
	switch {
	case errors.Is(err, model.ErrNotFound):
		meta := seo.NoIndex(h.SEO, "Blog Post Not Found")
		h.render(w, r, http.StatusNotFound, "not_found", h.page(r, site.TabBlog, meta, NotFoundData{
			Heading:   "Blog Post Not Found",
			Message:   "The blog post you're looking for doesn't exist.",
			BackURL:   RouteBlog,
			BackLabel: "Back to Blogs",
		}))
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "failed to load blog post", "id", id, "error", err)
		meta := seo.NoIndex(h.SEO, "Error")
		h.render(w, r, http.StatusServiceUnavailable, "error", h.page(r, site.TabBlog, meta, ErrorData{
			Message: "Error loading blog post. Please try again later.",
		}))
		return
	}

	meta := seo.ForArticle(h.SEO, article)
	h.render(w, r, http.StatusOK, "blog_post", h.page(r, site.TabBlog, meta, BlogPostData{Article: article}))
}
