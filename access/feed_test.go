package access

import (
	"testing"

	"veranda/domain"
)

func TestComposeFeed(t *testing.T) {
	posts := []domain.Post{
		{ID: "a", Status: domain.StatusPublished, IsListed: true},
		{ID: "b", Status: domain.StatusDraft, IsListed: true},
		{ID: "c", Status: domain.StatusPublished, IsListed: true},
		{ID: "d", Status: domain.StatusPublished, IsListed: false},
	}

	tests := []struct {
		name    string
		postIDs []string
		want    []string
	}{
		{"empty", nil, nil},
		{"editorial order preserved", []string{"c", "a"}, []string{"c", "a"}},
		{"draft dropped", []string{"a", "b", "c"}, []string{"a", "c"}},
		{"unlisted dropped", []string{"d", "a"}, []string{"a"}},
		{"deleted id dropped silently", []string{"a", "gone", "c"}, []string{"a", "c"}},
		{"everything filtered", []string{"b", "d", "gone"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := domain.Page{ID: "p", PostIDs: tt.postIDs}
			feed := ComposeFeed(page, posts)
			if len(feed) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(feed), len(tt.want))
			}
			for i, p := range feed {
				if p.ID != tt.want[i] {
					t.Errorf("feed[%d] = %q, want %q", i, p.ID, tt.want[i])
				}
			}
		})
	}
}
