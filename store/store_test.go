package store

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"veranda/domain"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// One connection, or every pooled conn gets its own empty memory DB.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../db/migrations/0001_init.up.sql")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}

func TestPostServiceRoundTrip(t *testing.T) {
	ps := NewPostService(newTestDB(t))
	ctx := context.Background()

	post := domain.Post{
		ID:       "p1",
		Slug:     "hello-world",
		Title:    "Hello World",
		Content:  "# Hi",
		Date:     time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		Tags:     []string{"go", "blog"},
		Status:   domain.StatusPublished,
		Type:     domain.PostTypeArticle,
		IsListed: true,
	}
	if err := ps.Save(ctx, post); err != nil {
		t.Fatal(err)
	}

	got, err := ps.ByID(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("post not found after save")
	}
	if got.Slug != post.Slug || got.Title != post.Title || len(got.Tags) != 2 {
		t.Errorf("got %+v, want %+v", got, post)
	}

	bySlug, err := ps.BySlug(ctx, "hello-world")
	if err != nil {
		t.Fatal(err)
	}
	if bySlug == nil || bySlug.ID != "p1" {
		t.Errorf("BySlug = %+v", bySlug)
	}

	// Save again with the same id updates in place.
	post.Title = "Hello Again"
	if err := ps.Save(ctx, post); err != nil {
		t.Fatal(err)
	}
	got, err = ps.ByID(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Hello Again" {
		t.Errorf("Title = %q after update", got.Title)
	}

	if err := ps.Delete(ctx, "p1"); err != nil {
		t.Fatal(err)
	}
	if err := ps.Delete(ctx, "p1"); err != ErrNotFound {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
	got, err = ps.ByID(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Error("post still present after delete")
	}
}

func TestPostServiceListOrder(t *testing.T) {
	ps := NewPostService(newTestDB(t))
	ctx := context.Background()

	for i, id := range []string{"old", "mid", "new"} {
		p := domain.Post{
			ID:   id,
			Slug: id,
			Date: time.Date(2026, 1, 1+i, 0, 0, 0, 0, time.UTC),
		}
		if err := ps.Save(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	posts, err := ps.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"new", "mid", "old"}
	if len(posts) != len(want) {
		t.Fatalf("len = %d, want %d", len(posts), len(want))
	}
	for i, p := range posts {
		if p.ID != want[i] {
			t.Errorf("posts[%d] = %q, want %q", i, p.ID, want[i])
		}
	}
}

func TestPageServiceRoundTrip(t *testing.T) {
	ps := NewPageService(newTestDB(t))
	ctx := context.Background()

	page := domain.Page{
		ID:          "gear",
		Slug:        "gear",
		Title:       "Gear",
		Type:        domain.PageTypePage,
		InSidebar:   true,
		Position:    5,
		PostIDs:     []string{"a", "b", "c"},
		IsProtected: true,
		Password:    "abc",
		UpdatedAt:   time.Now().UTC(),
	}
	if err := ps.Save(ctx, page); err != nil {
		t.Fatal(err)
	}

	got, err := ps.ByID(ctx, "gear")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("page not found after save")
	}
	if len(got.PostIDs) != 3 || got.PostIDs[0] != "a" || got.PostIDs[2] != "c" {
		t.Errorf("PostIDs = %v, order not preserved", got.PostIDs)
	}
	if !got.IsProtected || got.Password != "abc" {
		t.Errorf("protection fields lost: %+v", got)
	}

	if err := ps.Delete(ctx, "gear"); err != nil {
		t.Fatal(err)
	}
}

func TestPageServiceSystemPagesUndeletable(t *testing.T) {
	db := newTestDB(t)
	ps := NewPageService(db)
	ctx := context.Background()

	home := domain.Page{ID: "home", Slug: "", Title: "Home", IsSystem: true, UpdatedAt: time.Now().UTC()}
	if err := ps.Save(ctx, home); err != nil {
		t.Fatal(err)
	}
	if err := ps.Delete(ctx, "home"); err != ErrNotFound {
		t.Errorf("deleting system page err = %v, want ErrNotFound", err)
	}
	got, err := ps.ByID(ctx, "home")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Error("system page was deleted")
	}
}

func TestSettingsDefaults(t *testing.T) {
	ss := NewSettingsService(newTestDB(t))
	ctx := context.Background()

	s, err := ss.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if s.GlobalTitle == "" {
		t.Error("expected default settings when none saved")
	}

	s.GlobalTitle = "My Site"
	if err := ss.Save(ctx, s); err != nil {
		t.Fatal(err)
	}
	got, err := ss.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.GlobalTitle != "My Site" {
		t.Errorf("GlobalTitle = %q", got.GlobalTitle)
	}
}

func TestSubscriberDelete(t *testing.T) {
	ss := NewSubscriberService(newTestDB(t))
	ctx := context.Background()

	for _, id := range []string{"s1", "s2", "s3"} {
		sub := domain.Subscriber{ID: id, Email: id + "@example.com", Name: id, SubscribedAt: time.Now().UTC()}
		if err := ss.Add(ctx, sub); err != nil {
			t.Fatal(err)
		}
	}
	if err := ss.Delete(ctx, []string{"s1", "s3"}); err != nil {
		t.Fatal(err)
	}
	subs, err := ss.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 1 || subs[0].ID != "s2" {
		t.Errorf("remaining = %+v, want only s2", subs)
	}
}
