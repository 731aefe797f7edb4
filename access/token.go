// Package access decides whether a visitor may view a protected post or
// page, verifies submitted passwords, and composes the curated feeds
// attached to pages. It is pure request-scoped computation: callers load
// the entities and the visitor's unlock tokens, access computes a
// decision, and the handler layer turns grants into cookies.
package access

import (
	"time"
)

// TokenPrefix starts every unlock-token name, for both entity kinds.
const TokenPrefix = "access_granted_"

const pageTokenPrefix = TokenPrefix + "page_"

// TokenTTL is how long an unlock token stays valid after issuance.
const TokenTTL = 7 * 24 * time.Hour

// PostTokenName returns the token name granting access to one post.
func PostTokenName(postID string) string {
	return TokenPrefix + postID
}

// PageTokenName returns the token name granting access to one page and,
// through inheritance, to every post the page curates.
func PageTokenName(pageID string) string {
	return pageTokenPrefix + pageID
}

// TokenSet is the set of unlock-token names a visitor currently holds.
// Validation of the underlying credential (signature, expiry) happens
// before names are added here.
type TokenSet map[string]struct{}

func (s TokenSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s TokenSet) Add(name string) {
	s[name] = struct{}{}
}

// Grant is a freshly minted unlock capability for one entity.
type Grant struct {
	TokenName string
	TTL       time.Duration
}
