package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/inkroom/cms/internal/core/domain"
	"github.com/inkroom/cms/internal/core/ports"
)

type articleFixture struct {
	store  *stubStore
	svc    *ArticleService
	clock  *fakeClock
	admin  *domain.User
	mod    *domain.User
	writer *domain.User
	other  *domain.User
	viewer *domain.User
}

func newArticleFixture() *articleFixture {
	store := newStubStore()
	clock := newFakeClock()
	svc := NewArticleService(stubArticleRepo{store}, discardLogger)
	svc.now = clock.now

	joined := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return &articleFixture{
		store:  store,
		svc:    svc,
		clock:  clock,
		admin:  seedUser(store, "root", domain.RoleAdmin, joined),
		mod:    seedUser(store, "mia", domain.RoleModerator, joined),
		writer: seedUser(store, "wes", domain.RoleWriter, joined),
		other:  seedUser(store, "wanda", domain.RoleWriter, joined),
		viewer: seedUser(store, "vic", domain.RoleViewer, joined),
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestArticleService_Create_AuthorIsCallerAndUnpublished(t *testing.T) {
	f := newArticleFixture()

	for _, caller := range []*domain.User{f.writer, f.mod, f.admin} {
		a, err := f.svc.Create(context.Background(), caller, ports.ArticleInput{Title: "Hello", Content: "World"})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", caller.Role, err)
		}
		stored := f.store.articles[a.ID]
		if stored.AuthorID != caller.ID {
			t.Errorf("%s: expected author %q, got %q", caller.Role, caller.ID, stored.AuthorID)
		}
		if stored.Published {
			t.Errorf("%s: new article must be unpublished", caller.Role)
		}
		if stored.CreatedAt.IsZero() || !stored.CreatedAt.Equal(stored.UpdatedAt) {
			t.Errorf("%s: expected created == updated, got %v / %v", caller.Role, stored.CreatedAt, stored.UpdatedAt)
		}
	}
}

func TestArticleService_Create_ViewerDenied(t *testing.T) {
	f := newArticleFixture()

	_, err := f.svc.Create(context.Background(), f.viewer, ports.ArticleInput{Title: "x", Content: "y"})
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if len(f.store.articles) != 0 {
		t.Fatalf("no article must be stored, got %d", len(f.store.articles))
	}
}

func TestArticleService_Create_Anonymous(t *testing.T) {
	f := newArticleFixture()

	_, err := f.svc.Create(context.Background(), nil, ports.ArticleInput{Title: "x", Content: "y"})
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestArticleService_Create_Validation(t *testing.T) {
	f := newArticleFixture()

	cases := []struct {
		name  string
		in    ports.ArticleInput
		field string
	}{
		{"empty title", ports.ArticleInput{Title: "  ", Content: "body"}, "title"},
		{"title too long", ports.ArticleInput{Title: strings.Repeat("é", 201), Content: "body"}, "title"},
		{"empty content", ports.ArticleInput{Title: "ok", Content: "\n"}, "content"},
	}

	for _, tc := range cases {
		_, err := f.svc.Create(context.Background(), f.writer, tc.in)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
		}
		if ve.Fields[tc.field] == "" {
			t.Errorf("%s: expected message for %q, got %v", tc.name, tc.field, ve.Fields)
		}
	}
}

func TestArticleService_Create_TitleAtLimitAccepted(t *testing.T) {
	f := newArticleFixture()

	title := strings.Repeat("é", domain.MaxTitleLength)
	a, err := f.svc.Create(context.Background(), f.writer, ports.ArticleInput{Title: title, Content: "body"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Title != title {
		t.Fatalf("title altered")
	}
}

// ---------------------------------------------------------------------------
// Edit
// ---------------------------------------------------------------------------

func TestArticleService_Edit_WriterOwnArticle(t *testing.T) {
	f := newArticleFixture()
	a := seedArticle(f.store, f.writer, "Draft", false, f.clock.now())

	got, err := f.svc.Edit(context.Background(), f.writer, a.ID, ports.ArticleInput{Title: " New ", Content: "Fresh"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "New" || got.Content != "Fresh" {
		t.Errorf("unexpected article: %+v", got)
	}
	stored := f.store.articles[a.ID]
	if stored.AuthorID != f.writer.ID {
		t.Errorf("author changed to %q", stored.AuthorID)
	}
	if !stored.UpdatedAt.After(stored.CreatedAt) {
		t.Errorf("updated timestamp not refreshed")
	}
}

func TestArticleService_Edit_WriterOtherArticleForbidden(t *testing.T) {
	f := newArticleFixture()
	a := seedArticle(f.store, f.other, "Theirs", false, f.clock.now())

	_, err := f.svc.Edit(context.Background(), f.writer, a.ID, ports.ArticleInput{Title: "Mine now", Content: "x"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if f.store.articles[a.ID].Title != "Theirs" {
		t.Fatalf("article must be unchanged")
	}
}

func TestArticleService_Edit_ModeratorKeepsAuthor(t *testing.T) {
	f := newArticleFixture()
	a := seedArticle(f.store, f.writer, "Theirs", true, f.clock.now())

	_, err := f.svc.Edit(context.Background(), f.mod, a.ID, ports.ArticleInput{Title: "Fixed typo", Content: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored := f.store.articles[a.ID]
	if stored.AuthorID != f.writer.ID {
		t.Errorf("expected author %q, got %q", f.writer.ID, stored.AuthorID)
	}
	if !stored.Published {
		t.Errorf("edit must not change publication state")
	}
}

func TestArticleService_Edit_ViewerDenied(t *testing.T) {
	f := newArticleFixture()
	a := seedArticle(f.store, f.writer, "x", false, f.clock.now())

	_, err := f.svc.Edit(context.Background(), f.viewer, a.ID, ports.ArticleInput{Title: "y", Content: "z"})
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestArticleService_Edit_NotFound(t *testing.T) {
	f := newArticleFixture()

	_, err := f.svc.Edit(context.Background(), f.admin, "missing", ports.ArticleInput{Title: "y", Content: "z"})
	if !errors.Is(err, domain.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
}

func TestArticleService_Edit_RepoError(t *testing.T) {
	f := newArticleFixture()
	a := seedArticle(f.store, f.writer, "x", false, f.clock.now())
	f.store.updateErr = errors.New("db unavailable")

	_, err := f.svc.Edit(context.Background(), f.writer, a.ID, ports.ArticleInput{Title: "y", Content: "z"})
	if err == nil {
		t.Fatal("expected error when repo fails, got nil")
	}
}

// ---------------------------------------------------------------------------
// ToggleStatus
// ---------------------------------------------------------------------------

func TestArticleService_ToggleStatus_TwiceRestores(t *testing.T) {
	f := newArticleFixture()
	a := seedArticle(f.store, f.writer, "x", false, f.clock.now())

	first, err := f.svc.ToggleStatus(context.Background(), f.mod, a.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.Published {
		t.Fatalf("expected published after first toggle")
	}

	second, err := f.svc.ToggleStatus(context.Background(), f.admin, a.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Published {
		t.Fatalf("expected unpublished after second toggle")
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Errorf("updated timestamp must advance on each toggle")
	}
}

func TestArticleService_ToggleStatus_WriterDenied(t *testing.T) {
	f := newArticleFixture()
	a := seedArticle(f.store, f.writer, "x", false, f.clock.now())

	_, err := f.svc.ToggleStatus(context.Background(), f.writer, a.ID)
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if f.store.articles[a.ID].Published {
		t.Fatalf("status must be unchanged")
	}
}

func TestArticleService_ToggleStatus_NotFound(t *testing.T) {
	f := newArticleFixture()

	_, err := f.svc.ToggleStatus(context.Background(), f.mod, "missing")
	if !errors.Is(err, domain.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func TestArticleService_View_Rules(t *testing.T) {
	f := newArticleFixture()
	draft := seedArticle(f.store, f.writer, "draft", false, f.clock.now())
	live := seedArticle(f.store, f.writer, "live", true, f.clock.now())

	cases := []struct {
		name    string
		caller  *domain.User
		id      string
		wantErr error
	}{
		{"anonymous published", nil, live.ID, nil},
		{"viewer published", f.viewer, live.ID, nil},
		{"anonymous draft", nil, draft.ID, domain.ErrForbidden},
		{"viewer draft", f.viewer, draft.ID, domain.ErrForbidden},
		{"author draft", f.writer, draft.ID, domain.ErrForbidden},
		{"moderator draft", f.mod, draft.ID, nil},
		{"admin draft", f.admin, draft.ID, nil},
		{"missing", f.admin, "missing", domain.ErrArticleNotFound},
	}

	for _, tc := range cases {
		a, err := f.svc.View(context.Background(), tc.caller, tc.id)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
			continue
		}
		if a.ID != tc.id {
			t.Errorf("%s: expected article %q, got %q", tc.name, tc.id, a.ID)
		}
	}
}

// ---------------------------------------------------------------------------
// Listing
// ---------------------------------------------------------------------------

func TestArticleService_ListVisible_WriterSeesOwnOnly(t *testing.T) {
	f := newArticleFixture()
	seedArticle(f.store, f.writer, "mine-1", false, f.clock.now())
	seedArticle(f.store, f.other, "theirs", true, f.clock.now())
	seedArticle(f.store, f.writer, "mine-2", true, f.clock.now())

	list, err := f.svc.ListVisible(context.Background(), f.writer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(list))
	}
	for _, a := range list {
		if a.AuthorID != f.writer.ID {
			t.Errorf("writer saw article by %q", a.AuthorID)
		}
	}
	if list[0].Title != "mine-2" {
		t.Errorf("expected newest first, got %q", list[0].Title)
	}
}

func TestArticleService_ListVisible_OtherRolesSeeAll(t *testing.T) {
	f := newArticleFixture()
	seedArticle(f.store, f.writer, "a", false, f.clock.now())
	seedArticle(f.store, f.other, "b", true, f.clock.now())

	for _, caller := range []*domain.User{f.viewer, f.mod, f.admin} {
		list, err := f.svc.ListVisible(context.Background(), caller)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", caller.Role, err)
		}
		if len(list) != 2 {
			t.Errorf("%s: expected 2 articles, got %d", caller.Role, len(list))
		}
	}
}

func TestArticleService_ListVisible_Anonymous(t *testing.T) {
	f := newArticleFixture()

	_, err := f.svc.ListVisible(context.Background(), nil)
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestArticleService_ListForModeration(t *testing.T) {
	f := newArticleFixture()
	seedArticle(f.store, f.writer, "first", false, f.clock.now())
	seedArticle(f.store, f.other, "second", true, f.clock.now())
	seedArticle(f.store, f.writer, "third", false, f.clock.now())

	list, err := f.svc.ListForModeration(context.Background(), f.mod, ports.ArticleFilter{AuthorID: f.writer.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected all 3 articles regardless of author filter, got %d", len(list))
	}
	if list[0].Title != "third" || list[2].Title != "first" {
		t.Errorf("expected newest first, got %q..%q", list[0].Title, list[2].Title)
	}

	drafts, err := f.svc.ListForModeration(context.Background(), f.admin, ports.ArticleFilter{Published: boolPtr(false), Search: " THIRD "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drafts) != 1 || drafts[0].Title != "third" {
		t.Fatalf("unexpected filtered result: %+v", drafts)
	}
}

func TestArticleService_ListForModeration_AuthorFilters(t *testing.T) {
	f := newArticleFixture()
	seedArticle(f.store, f.admin, "announcement", true, f.clock.now())
	seedArticle(f.store, f.writer, "draft by wes", false, f.clock.now())
	seedArticle(f.store, f.other, "column", true, f.clock.now())

	byWriters, err := f.svc.ListForModeration(context.Background(), f.mod, ports.ArticleFilter{AuthorRole: domain.RoleWriter})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byWriters) != 2 {
		t.Fatalf("expected the 2 writer articles, got %d", len(byWriters))
	}
	for _, a := range byWriters {
		if a.AuthorID == f.admin.ID {
			t.Fatalf("admin article leaked into writer filter: %+v", a)
		}
	}

	byName, err := f.svc.ListForModeration(context.Background(), f.mod, ports.ArticleFilter{Search: "WANDA"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byName) != 1 || byName[0].Title != "column" {
		t.Fatalf("expected search on author username to find wanda's article, got %+v", byName)
	}
}

func TestArticleService_ListForModeration_Denied(t *testing.T) {
	f := newArticleFixture()

	for _, caller := range []*domain.User{f.writer, f.viewer} {
		_, err := f.svc.ListForModeration(context.Background(), caller, ports.ArticleFilter{})
		if !errors.Is(err, domain.ErrPermissionDenied) {
			t.Errorf("%s: expected ErrPermissionDenied, got %v", caller.Role, err)
		}
	}
}
