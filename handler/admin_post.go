package handler

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"veranda/domain"
)

var slugCleanup = regexp.MustCompile("[^a-z0-9]+")

func slugify(s string) string {
	s = slugCleanup.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	}) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (h *Handler) AdminListPosts(c echo.Context) error {
	site, err := h.siteData(c)
	if err != nil {
		return err
	}
	posts, err := h.Posts.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "admin-posts.html", struct {
		SiteData
		Posts []domain.Post
	}{site, posts})
}

func (h *Handler) AdminNewPostForm(c echo.Context) error {
	site, err := h.siteData(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "admin-post-edit.html", struct {
		SiteData
		Post domain.Post
		New  bool
	}{site, domain.Post{ID: uuid.NewString(), Status: domain.StatusDraft, Type: domain.PostTypeArticle, IsListed: true}, true})
}

func (h *Handler) AdminEditPostForm(c echo.Context) error {
	site, err := h.siteData(c)
	if err != nil {
		return err
	}
	post, err := h.Posts.ByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if post == nil {
		return echo.ErrNotFound
	}
	return c.Render(http.StatusOK, "admin-post-edit.html", struct {
		SiteData
		Post domain.Post
		New  bool
	}{site, *post, false})
}

// postFromForm reads the editor form over an existing post, so fields
// outside the form (the publish date on update) survive.
func postFromForm(c echo.Context, existing domain.Post) domain.Post {
	p := existing
	p.Title = c.FormValue("title")
	p.Excerpt = c.FormValue("excerpt")
	p.Content = c.FormValue("content")
	p.Status = c.FormValue("status")
	p.Type = c.FormValue("type")
	p.Tags = splitList(c.FormValue("tags"))
	p.ThumbnailURL = c.FormValue("thumbnailUrl")
	p.Pinned = c.FormValue("pinned") == "on"
	p.IsListed = c.FormValue("isListed") == "on"
	p.IsProtected = c.FormValue("isProtected") == "on"
	p.Password = c.FormValue("password")
	p.PasswordHintLink = c.FormValue("passwordHintLink")
	if slug := c.FormValue("slug"); slug != "" {
		p.Slug = slugify(slug)
	} else {
		p.Slug = slugify(p.Title)
	}
	if p.Status == "" {
		p.Status = domain.StatusDraft
	}
	if p.Type == "" {
		p.Type = domain.PostTypeArticle
	}
	return p
}

func (h *Handler) AdminCreatePost(c echo.Context) error {
	id := c.FormValue("id")
	if id == "" {
		id = uuid.NewString()
	}
	if c.FormValue("title") == "" {
		return c.HTML(http.StatusBadRequest, "Title is required")
	}

	post := postFromForm(c, domain.Post{ID: id, Date: time.Now().UTC()})
	if err := h.Posts.Save(c.Request().Context(), post); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/admin/posts")
}

func (h *Handler) AdminUpdatePost(c echo.Context) error {
	ctx := c.Request().Context()
	existing, err := h.Posts.ByID(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	if existing == nil {
		return echo.ErrNotFound
	}
	if c.FormValue("title") == "" {
		return c.HTML(http.StatusBadRequest, "Title is required")
	}

	post := postFromForm(c, *existing)
	if err := h.Posts.Save(ctx, post); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/admin/posts")
}

func (h *Handler) AdminDeletePost(c echo.Context) error {
	if err := h.Posts.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/admin/posts")
}
