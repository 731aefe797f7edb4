package access

import (
	"veranda/domain"
)

// ComposeFeed produces the posts to render beneath a page body, in the
// page's editorial order. Drafts, unlisted posts, and ids whose post has
// been deleted are dropped without error.
func ComposeFeed(page domain.Page, posts []domain.Post) []domain.Post {
	if len(page.PostIDs) == 0 {
		return nil
	}
	byID := make(map[string]domain.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	feed := make([]domain.Post, 0, len(page.PostIDs))
	for _, id := range page.PostIDs {
		p, ok := byID[id]
		if !ok || !p.Visible() {
			continue
		}
		feed = append(feed, p)
	}
	return feed
}
