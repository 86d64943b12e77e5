package ports

import (
	"context"

	"github.com/inkroom/cms/internal/core/domain"
)

// ArticleInput is the caller-editable part of an article. Author and
// publication state are set by the service only.
type ArticleInput struct {
	Title   string
	Content string
}

type ArticleService interface {
	ListVisible(ctx context.Context, caller *domain.User) ([]*domain.Article, error)
	Create(ctx context.Context, caller *domain.User, in ArticleInput) (*domain.Article, error)
	Edit(ctx context.Context, caller *domain.User, id string, in ArticleInput) (*domain.Article, error)
	ToggleStatus(ctx context.Context, caller *domain.User, id string) (*domain.Article, error)
	// View accepts a nil caller for anonymous readers.
	View(ctx context.Context, caller *domain.User, id string) (*domain.Article, error)
	ListForModeration(ctx context.Context, caller *domain.User, filter ArticleFilter) ([]*domain.Article, error)
}
