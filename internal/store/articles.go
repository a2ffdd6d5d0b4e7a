package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/acucogn/site/internal/model"
)

const articleColumns = `id, title, excerpt, content, category, author, author_image_url, image_url, published, created_at`

// ArticleRepository reads blog posts from the blog_posts table.
type ArticleRepository struct {
	db *sqlx.DB
}

// NewArticleRepository creates an ArticleRepository.
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// ListPublished returns published articles, newest first.
func (r *ArticleRepository) ListPublished(ctx context.Context) ([]model.Article, error) {
	query := r.db.Rebind(`SELECT ` + articleColumns + ` FROM blog_posts WHERE published = ? ORDER BY created_at DESC`)

	articles := []model.Article{}
	if err := r.db.SelectContext(ctx, &articles, query, true); err != nil {
		return nil, fmt.Errorf("listing published articles: %w", err)
	}
	return articles, nil
}

// GetPublished returns the article with id if it is published, or
// model.ErrNotFound.
func (r *ArticleRepository) GetPublished(ctx context.Context, id string) (*model.Article, error) {
	query := r.db.Rebind(`SELECT ` + articleColumns + ` FROM blog_posts WHERE id = ? AND published = ?`)

	var a model.Article
	if err := r.db.GetContext(ctx, &a, query, id, true); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("getting article %s: %w", id, err)
	}
	return &a, nil
}

// Insert stores an article. It is used by the seeder; the site itself never
// writes articles.
func (r *ArticleRepository) Insert(ctx context.Context, a *model.Article) error {
	query := r.db.Rebind(`INSERT INTO blog_posts (` + articleColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Title, a.Excerpt, a.Content, a.Category, a.Author,
		nullable(a.AuthorImageURL), nullable(a.ImageURL), a.Published, a.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting article: %w", err)
	}
	return nil
}

// Count returns the number of rows in blog_posts, published or not.
func (r *ArticleRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM blog_posts`); err != nil {
		return 0, fmt.Errorf("counting articles: %w", err)
	}
	return n, nil
}

// nullable converts an optional string to a driver value, mapping nil and
// "" to NULL.
func nullable[T ~string](p *T) any {
	if p == nil || *p == "" {
		return nil
	}
	return string(*p)
}
