package domain

import (
	"time"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

const (
	PostTypeArticle    = "article"
	PostTypeVideo      = "video"
	PostTypeNewsletter = "newsletter"
)

type Post struct {
	ID               string
	Slug             string
	Title            string
	Excerpt          string
	Content          string
	Date             time.Time
	Tags             []string
	ThumbnailURL     string
	Pinned           bool
	Status           string
	Type             string
	IsListed         bool
	IsProtected      bool
	Password         string
	PasswordHintLink string
}

// Visible reports whether the post belongs in public listings. Password
// protection gates content, not listing, so it plays no part here.
func (p Post) Visible() bool {
	return p.Status == StatusPublished && p.IsListed
}

func (p Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
