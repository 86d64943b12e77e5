package policy

import "github.com/inkroom/cms/internal/core/domain"

// ScopeToAuthor reports whether article listings for u must be limited to
// articles u wrote.
func ScopeToAuthor(u *domain.User) bool {
	return IsWriter(u)
}

// CanEditArticle assumes u already passed RequireWriterOrAbove.
// Writers may only edit their own articles.
func CanEditArticle(u *domain.User, a *domain.Article) error {
	if IsWriter(u) && !a.WrittenBy(u) {
		return domain.ErrForbidden
	}
	return nil
}

// CanViewArticle allows anyone, anonymous callers included, to read a
// published article. Drafts are visible to moderators and admins only;
// authorship grants nothing here.
func CanViewArticle(u *domain.User, a *domain.Article) error {
	if a.Published {
		return nil
	}
	if IsModeratorOrAdmin(u) {
		return nil
	}
	return domain.ErrForbidden
}
