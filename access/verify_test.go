package access

import (
	"context"
	"errors"
	"testing"

	"veranda/domain"
)

type fakePosts map[string]domain.Post

func (f fakePosts) ByID(_ context.Context, id string) (*domain.Post, error) {
	if p, ok := f[id]; ok {
		return &p, nil
	}
	return nil, nil
}

type fakePages []domain.Page

func (f fakePages) ByID(_ context.Context, id string) (*domain.Page, error) {
	for _, p := range f {
		if p.ID == id {
			page := p
			return &page, nil
		}
	}
	return nil, nil
}

func (f fakePages) List(_ context.Context) ([]domain.Page, error) {
	return f, nil
}

func newTestVerifier() *Verifier {
	posts := fakePosts{
		"open":    {ID: "open"},
		"locked":  {ID: "locked", IsProtected: true, Password: "sesame"},
		"curated": {ID: "curated"},
		"both":    {ID: "both", IsProtected: true, Password: "own-secret"},
	}
	pages := fakePages{
		{ID: "collection", IsProtected: true, Password: "abc", PostIDs: []string{"curated", "both"}},
		{ID: "public", PostIDs: []string{"open"}},
	}
	return NewVerifier(posts, pages)
}

func TestVerifyPost(t *testing.T) {
	v := newTestVerifier()
	ctx := context.Background()

	tests := []struct {
		name      string
		id        string
		password  string
		wantToken string
		wantErr   error
	}{
		{"own password", "locked", "sesame", PostTokenName("locked"), nil},
		{"wrong password", "locked", "nope", "", ErrIncorrectPassword},
		{"missing post", "ghost", "sesame", "", ErrNotFound},
		{"no secret anywhere", "open", "anything", "", ErrNotProtected},
		{"parent page password unlocks page", "curated", "abc", PageTokenName("collection"), nil},
		{"parent path after own mismatch", "both", "abc", PageTokenName("collection"), nil},
		{"own password wins over parent", "both", "own-secret", PostTokenName("both"), nil},
		{"curated wrong password", "curated", "nope", "", ErrIncorrectPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grant, err := v.VerifyPost(ctx, tt.id, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if grant.TokenName != tt.wantToken {
				t.Errorf("TokenName = %q, want %q", grant.TokenName, tt.wantToken)
			}
			if tt.wantErr == nil && grant.TTL != TokenTTL {
				t.Errorf("TTL = %v, want %v", grant.TTL, TokenTTL)
			}
		})
	}
}

func TestVerifyPage(t *testing.T) {
	v := newTestVerifier()
	ctx := context.Background()

	tests := []struct {
		name      string
		id        string
		password  string
		wantToken string
		wantErr   error
	}{
		{"correct", "collection", "abc", PageTokenName("collection"), nil},
		{"incorrect", "collection", "xyz", "", ErrIncorrectPassword},
		{"missing", "ghost", "abc", "", ErrNotFound},
		{"no password set", "public", "abc", "", ErrNotProtected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grant, err := v.VerifyPage(ctx, tt.id, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if grant.TokenName != tt.wantToken {
				t.Errorf("TokenName = %q, want %q", grant.TokenName, tt.wantToken)
			}
		})
	}
}

func TestVerifyIdempotent(t *testing.T) {
	v := newTestVerifier()
	ctx := context.Background()

	first, err := v.VerifyPost(ctx, "locked", "sesame")
	if err != nil {
		t.Fatal(err)
	}
	second, err := v.VerifyPost(ctx, "locked", "sesame")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("repeated verification minted different grants: %+v vs %+v", first, second)
	}
}

// The grant from a verified page password must satisfy the resolver for
// every post the page curates.
func TestVerifyThenResolve(t *testing.T) {
	v := newTestVerifier()
	ctx := context.Background()

	grant, err := v.VerifyPage(ctx, "collection", "abc")
	if err != nil {
		t.Fatal(err)
	}
	held := tokens(grant.TokenName)

	pages, _ := v.pages.List(ctx)
	for _, id := range []string{"curated", "both"} {
		post, _ := v.posts.ByID(ctx, id)
		if d := ResolvePost(*post, pages, held); !d.Allowed {
			t.Errorf("post %q still denied after page unlock", id)
		}
	}
}
