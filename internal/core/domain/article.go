package domain

import "time"

// MaxTitleLength is the longest article title accepted, counted in characters.
const MaxTitleLength = 200

// Article is a piece of content owned by exactly one author.
//
// AuthorID is assigned once at creation and never changes afterwards.
type Article struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"author_id"`
	Published bool      `json:"is_published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WrittenBy reports whether u authored the article.
func (a *Article) WrittenBy(u *User) bool {
	return u != nil && a.AuthorID != "" && a.AuthorID == u.ID
}

// TogglePublished flips the published flag and stamps the update time.
func (a *Article) TogglePublished(now time.Time) {
	a.Published = !a.Published
	a.UpdatedAt = now
}

// Status returns the label used for the publication state in logs and metrics.
func (a *Article) Status() string {
	if a.Published {
		return "published"
	}
	return "draft"
}
