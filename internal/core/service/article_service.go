package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/inkroom/cms/internal/core/domain"
	"github.com/inkroom/cms/internal/core/policy"
	"github.com/inkroom/cms/internal/core/ports"
)

type ArticleService struct {
	repo   ports.ArticleRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewArticleService(repo ports.ArticleRepository, logger zerolog.Logger) *ArticleService {
	return &ArticleService{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ListVisible returns the articles the caller may browse, newest first.
// Writers only see what they wrote; every other role sees everything.
func (s *ArticleService) ListVisible(ctx context.Context, caller *domain.User) ([]*domain.Article, error) {
	if err := policy.RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	var filter ports.ArticleFilter
	if policy.ScopeToAuthor(caller) {
		filter.AuthorID = caller.ID
	}
	return s.repo.List(ctx, filter)
}

// Create stores a new unpublished article authored by the caller.
func (s *ArticleService) Create(ctx context.Context, caller *domain.User, in ports.ArticleInput) (*domain.Article, error) {
	if err := policy.RequireWriterOrAbove(caller); err != nil {
		s.logger.Debug().Str("user_id", userID(caller)).Msg("article create denied")
		return nil, err
	}

	title, content, err := cleanArticleInput(in)
	if err != nil {
		return nil, err
	}

	now := s.now()
	article := &domain.Article{
		Title:     title,
		Content:   content,
		AuthorID:  caller.ID,
		Published: false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, article); err != nil {
		s.logger.Error().Err(err).Str("author_id", caller.ID).Msg("failed to create article")
		return nil, err
	}

	s.logger.Info().Str("article_id", article.ID).Str("author_id", caller.ID).Msg("article created")
	return article, nil
}

// Edit replaces title and content. Writers may only edit their own articles.
func (s *ArticleService) Edit(ctx context.Context, caller *domain.User, id string, in ports.ArticleInput) (*domain.Article, error) {
	if err := policy.RequireWriterOrAbove(caller); err != nil {
		return nil, err
	}

	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := policy.CanEditArticle(caller, article); err != nil {
		s.logger.Debug().Str("article_id", id).Str("user_id", caller.ID).Msg("article edit forbidden")
		return nil, err
	}

	title, content, err := cleanArticleInput(in)
	if err != nil {
		return nil, err
	}

	article.Title = title
	article.Content = content
	article.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, article); err != nil {
		s.logger.Error().Err(err).Str("article_id", id).Msg("failed to update article")
		return nil, err
	}

	s.logger.Info().Str("article_id", id).Str("editor_id", caller.ID).Msg("article updated")
	return article, nil
}

// ToggleStatus flips the published flag.
func (s *ArticleService) ToggleStatus(ctx context.Context, caller *domain.User, id string) (*domain.Article, error) {
	if err := policy.RequireModeratorOrAdmin(caller); err != nil {
		return nil, err
	}

	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	article.TogglePublished(s.now())

	if err := s.repo.Update(ctx, article); err != nil {
		s.logger.Error().Err(err).Str("article_id", id).Msg("failed to toggle article status")
		return nil, err
	}

	s.logger.Info().Str("article_id", id).Str("status", article.Status()).Str("moderator_id", caller.ID).Msg("article status changed")
	return article, nil
}

// View returns a single article. caller is nil for anonymous readers.
func (s *ArticleService) View(ctx context.Context, caller *domain.User, id string) (*domain.Article, error) {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := policy.CanViewArticle(caller, article); err != nil {
		return nil, err
	}
	return article, nil
}

// ListForModeration returns every article matching filter, newest first.
// AuthorID is ignored; moderators always see all authors.
func (s *ArticleService) ListForModeration(ctx context.Context, caller *domain.User, filter ports.ArticleFilter) ([]*domain.Article, error) {
	if err := policy.RequireModeratorOrAdmin(caller); err != nil {
		return nil, err
	}

	filter.AuthorID = ""
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.List(ctx, filter)
}

// cleanArticleInput trims the title. Content is stored as written.
func cleanArticleInput(in ports.ArticleInput) (string, string, error) {
	title := strings.TrimSpace(in.Title)

	ve := domain.NewValidationError()
	switch {
	case title == "":
		ve.Add("title", "this field is required")
	case utf8.RuneCountInString(title) > domain.MaxTitleLength:
		ve.Add("title", "ensure this value has at most 200 characters")
	}
	if strings.TrimSpace(in.Content) == "" {
		ve.Add("content", "this field is required")
	}

	if err := ve.Err(); err != nil {
		return "", "", err
	}
	return title, in.Content, nil
}

func userID(u *domain.User) string {
	if u == nil {
		return ""
	}
	return u.ID
}
