package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkroom/cms/internal/core/domain"
	"github.com/inkroom/cms/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub store shared by the user and article repositories, so user
// deletion can cascade like the Mongo transaction does.
// ---------------------------------------------------------------------------

type stubStore struct {
	users    map[string]*domain.User
	articles map[string]*domain.Article
	seq      int

	updateErr error // if set, Update calls return this error
}

func newStubStore() *stubStore {
	return &stubStore{
		users:    make(map[string]*domain.User),
		articles: make(map[string]*domain.Article),
	}
}

func (s *stubStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s%d", prefix, s.seq)
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func cloneArticle(a *domain.Article) *domain.Article {
	c := *a
	return &c
}

type stubUserRepo struct{ *stubStore }

func (r stubUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return domain.DuplicateUsername()
		}
	}
	u.ID = r.nextID("u")
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// List applies the same filters and ordering the Mongo repository does.
func (r stubUserRepo) List(_ context.Context, f ports.UserFilter) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Active != nil && u.Active != *f.Active {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(u.Username), q) && !strings.Contains(strings.ToLower(u.Email), q) {
				continue
			}
		}
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	stored, ok := r.users[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	for _, other := range r.users {
		if other.ID != u.ID && other.Username == u.Username {
			return domain.DuplicateUsername()
		}
	}
	joined := stored.CreatedAt
	r.users[u.ID] = cloneUser(u)
	r.users[u.ID].CreatedAt = joined
	return nil
}

func (r stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	for aid, a := range r.articles {
		if a.AuthorID == id {
			delete(r.articles, aid)
		}
	}
	return nil
}

type stubArticleRepo struct{ *stubStore }

func (r stubArticleRepo) Create(_ context.Context, a *domain.Article) error {
	a.ID = r.nextID("a")
	r.articles[a.ID] = cloneArticle(a)
	return nil
}

func (r stubArticleRepo) FindByID(_ context.Context, id string) (*domain.Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	return cloneArticle(a), nil
}

func (r stubArticleRepo) List(_ context.Context, f ports.ArticleFilter) ([]*domain.Article, error) {
	var out []*domain.Article
	for _, a := range r.articles {
		if f.AuthorID != "" && a.AuthorID != f.AuthorID {
			continue
		}
		if f.Published != nil && a.Published != *f.Published {
			continue
		}
		author := r.users[a.AuthorID]
		if f.AuthorRole != "" && (author == nil || author.Role != f.AuthorRole) {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			byAuthor := author != nil && strings.Contains(strings.ToLower(author.Username), q)
			if !strings.Contains(strings.ToLower(a.Title), q) && !strings.Contains(strings.ToLower(a.Content), q) && !byAuthor {
				continue
			}
		}
		out = append(out, cloneArticle(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Update mirrors the Mongo $set: author and creation time are kept.
func (r stubArticleRepo) Update(_ context.Context, a *domain.Article) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	stored, ok := r.articles[a.ID]
	if !ok {
		return domain.ErrArticleNotFound
	}
	stored.Title = a.Title
	stored.Content = a.Content
	stored.Published = a.Published
	stored.UpdatedAt = a.UpdatedAt
	return nil
}

// ---------------------------------------------------------------------------
// Session store stub
// ---------------------------------------------------------------------------

type stubSessions struct {
	byID    map[string]string
	saveErr error
	lastTTL time.Duration
}

func newStubSessions() *stubSessions {
	return &stubSessions{byID: make(map[string]string)}
}

func (s *stubSessions) Save(_ context.Context, sessionID, userID string, ttl time.Duration) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.byID[sessionID] = userID
	s.lastTTL = ttl
	return nil
}

func (s *stubSessions) Lookup(_ context.Context, sessionID string) (string, error) {
	uid, ok := s.byID[sessionID]
	if !ok {
		return "", domain.ErrUnauthenticated
	}
	return uid, nil
}

func (s *stubSessions) Delete(_ context.Context, sessionID string) error {
	delete(s.byID, sessionID)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

// fakeClock hands out strictly increasing timestamps.
type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

// seedUser stores a user directly, bypassing validation and hashing.
func seedUser(store *stubStore, username string, role domain.Role, joined time.Time) *domain.User {
	u := &domain.User{
		ID:        store.nextID("u"),
		Username:  username,
		Email:     username + "@example.com",
		Role:      role,
		Active:    true,
		CreatedAt: joined,
		UpdatedAt: joined,
	}
	store.users[u.ID] = cloneUser(u)
	return u
}

func seedArticle(store *stubStore, author *domain.User, title string, published bool, created time.Time) *domain.Article {
	a := &domain.Article{
		ID:        store.nextID("a"),
		Title:     title,
		Content:   title + " body",
		AuthorID:  author.ID,
		Published: published,
		CreatedAt: created,
		UpdatedAt: created,
	}
	store.articles[a.ID] = cloneArticle(a)
	return a
}

func boolPtr(b bool) *bool { return &b }
