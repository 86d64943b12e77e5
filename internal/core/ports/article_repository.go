package ports

import (
	"context"

	"github.com/inkroom/cms/internal/core/domain"
)

// ArticleFilter narrows an article listing. Zero values mean "no filter".
type ArticleFilter struct {
	AuthorID   string      // optional: scoped to one author
	AuthorRole domain.Role // optional: only articles whose author holds this role
	Published  *bool       // optional: publication state
	Search     string      // optional: case-insensitive match on title, content or author username
}

// ArticleRepository defines persistence operations for articles.
type ArticleRepository interface {
	Create(ctx context.Context, a *domain.Article) error
	FindByID(ctx context.Context, id string) (*domain.Article, error)
	// List returns matching articles, newest first.
	List(ctx context.Context, filter ArticleFilter) ([]*domain.Article, error)
	// Update persists title, content, published flag and update timestamp.
	// Author and creation time are never written.
	Update(ctx context.Context, a *domain.Article) error
}
