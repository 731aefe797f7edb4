package domain

import (
	"time"
)

const (
	PageTypePage    = "page"
	PageTypeHeading = "heading"
	PageTypeLink    = "link"
)

// Page is a sidebar entry. Type "page" carries markdown content and an
// optional curated feed (PostIDs, in editorial order); "heading" and
// "link" exist only for navigation.
type Page struct {
	ID               string
	Slug             string
	Title            string
	Content          string
	InSidebar        bool
	Position         int
	Type             string
	ExternalURL      string
	PostIDs          []string
	IsProtected      bool
	Password         string
	PasswordHintLink string
	IsSystem         bool
	Path             string
	UpdatedAt        time.Time
}

// Curates reports whether the page's curated feed includes the post.
func (p Page) Curates(postID string) bool {
	for _, id := range p.PostIDs {
		if id == postID {
			return true
		}
	}
	return false
}
