package access

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"veranda/domain"
)

var (
	ErrNotFound          = errors.New("entity not found")
	ErrNotProtected      = errors.New("entity has no password")
	ErrIncorrectPassword = errors.New("incorrect password")
)

// PostGetter looks up one post. A nil post with a nil error means the
// post does not exist.
type PostGetter interface {
	ByID(ctx context.Context, id string) (*domain.Post, error)
}

// PageSource looks up pages. List is used to search for protected
// parents; ByID for direct page unlocks. Nil with nil error means absent.
type PageSource interface {
	ByID(ctx context.Context, id string) (*domain.Page, error)
	List(ctx context.Context) ([]domain.Page, error)
}

// Verifier checks submitted passwords against stored secrets and mints
// unlock grants. It holds no state between calls.
type Verifier struct {
	posts PostGetter
	pages PageSource
}

func NewVerifier(posts PostGetter, pages PageSource) *Verifier {
	return &Verifier{posts: posts, pages: pages}
}

// VerifyPost checks the password against the post's own secret first,
// then against every protected page curating the post. A parent-page
// match mints the PAGE grant, transitively unlocking the whole curated
// feed, mirroring how a reader given one collection password should see
// all of it.
func (v *Verifier) VerifyPost(ctx context.Context, id, password string) (Grant, error) {
	post, err := v.posts.ByID(ctx, id)
	if err != nil {
		return Grant{}, fmt.Errorf("look up post %q: %w", id, err)
	}
	if post == nil {
		return Grant{}, ErrNotFound
	}

	hasSecret := false
	if post.IsProtected && post.Password != "" {
		hasSecret = true
		if passwordsEqual(post.Password, password) {
			return Grant{TokenName: PostTokenName(post.ID), TTL: TokenTTL}, nil
		}
	}

	pages, err := v.pages.List(ctx)
	if err != nil {
		return Grant{}, fmt.Errorf("list pages: %w", err)
	}
	for _, page := range pages {
		if !page.IsProtected || page.Password == "" || !page.Curates(post.ID) {
			continue
		}
		hasSecret = true
		if passwordsEqual(page.Password, password) {
			return Grant{TokenName: PageTokenName(page.ID), TTL: TokenTTL}, nil
		}
	}

	if !hasSecret {
		return Grant{}, ErrNotProtected
	}
	return Grant{}, ErrIncorrectPassword
}

// VerifyPage checks the password against the page's stored secret.
func (v *Verifier) VerifyPage(ctx context.Context, id, password string) (Grant, error) {
	page, err := v.pages.ByID(ctx, id)
	if err != nil {
		return Grant{}, fmt.Errorf("look up page %q: %w", id, err)
	}
	if page == nil {
		return Grant{}, ErrNotFound
	}
	if page.Password == "" {
		return Grant{}, ErrNotProtected
	}
	if !passwordsEqual(page.Password, password) {
		return Grant{}, ErrIncorrectPassword
	}
	return Grant{TokenName: PageTokenName(page.ID), TTL: TokenTTL}, nil
}

// passwordsEqual is exact-match, constant-time. Content passwords are
// stored plain so admins can read them back into the edit form; the
// least we can do is not leak where the comparison diverged.
func passwordsEqual(stored, submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}
