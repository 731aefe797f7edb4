package access

import (
	"veranda/domain"
)

// Decision is the outcome of resolving a visitor's access to an entity.
// HintLink is only set on deny, pointing at wherever the password is
// shared (a newsletter issue, a community page).
type Decision struct {
	Allowed  bool
	HintLink string
}

// ResolvePage decides whether the visitor may view a page right now.
func ResolvePage(page domain.Page, tokens TokenSet) Decision {
	if !page.IsProtected {
		return Decision{Allowed: true}
	}
	if tokens.Has(PageTokenName(page.ID)) {
		return Decision{Allowed: true}
	}
	return Decision{HintLink: page.PasswordHintLink}
}

// ResolvePost decides whether the visitor may view a post. A post can be
// locked two ways: its own password, or inheritance from a protected
// page that curates it. Holding a token for any such parent page unlocks
// the post even when the post is independently protected.
func ResolvePost(post domain.Post, pages []domain.Page, tokens TokenSet) Decision {
	locked := post.IsProtected && !tokens.Has(PostTokenName(post.ID))
	hint := post.PasswordHintLink

	parents := protectedParents(post.ID, pages)
	for _, parent := range parents {
		if tokens.Has(PageTokenName(parent.ID)) {
			return Decision{Allowed: true}
		}
	}
	if len(parents) > 0 && !post.IsProtected {
		locked = true
		hint = parents[0].PasswordHintLink
	}

	if locked {
		return Decision{HintLink: hint}
	}
	return Decision{Allowed: true}
}

// protectedParents returns every protected page curating the post, in
// page order. A post may appear in several curated feeds; unlocking any
// one of them unlocks the post.
func protectedParents(postID string, pages []domain.Page) []domain.Page {
	var parents []domain.Page
	for _, page := range pages {
		if page.IsProtected && page.Curates(postID) {
			parents = append(parents, page)
		}
	}
	return parents
}
