package handler

import (
	"html/template"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"veranda/access"
	"veranda/domain"
)

type PostDTO struct {
	ID           string
	Slug         string
	Title        string
	Excerpt      string
	Content      template.HTML
	Tags         []string
	Date         string
	Pinned       bool
	ThumbnailURL string
}

func postCard(p domain.Post) PostDTO {
	return PostDTO{
		ID:           p.ID,
		Slug:         p.Slug,
		Title:        sanitizerStrict.Sanitize(p.Title),
		Excerpt:      sanitizerStrict.Sanitize(p.Excerpt),
		Tags:         p.Tags,
		Date:         p.Date.Format(time.DateOnly),
		Pinned:       p.Pinned,
		ThumbnailURL: p.ThumbnailURL,
	}
}

func (h *Handler) Home(c echo.Context) error {
	site, err := h.siteData(c)
	if err != nil {
		return err
	}
	posts, err := h.Posts.List(c.Request().Context())
	if err != nil {
		return err
	}

	var cards []PostDTO
	for _, p := range posts {
		if p.Visible() {
			cards = append(cards, postCard(p))
		}
	}
	// Pinned posts surface first; within each group List's
	// newest-first order holds.
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].Pinned && !cards[j].Pinned
	})

	return c.Render(http.StatusOK, "index.html", struct {
		SiteData
		Intro template.HTML
		Posts []PostDTO
	}{
		SiteData: site,
		Intro:    safeMd(site.Site.HomeIntroContent),
		Posts:    cards,
	})
}

// lockedView is the password challenge shown in place of protected
// content. Action is the unlock endpoint for the entity kind.
type lockedView struct {
	SiteData
	Title    string
	Action   string
	Redirect string
	HintLink string
	Error    string
}

func (h *Handler) GetPost(c echo.Context) error {
	ctx := c.Request().Context()
	post, err := h.Posts.BySlug(ctx, c.Param("slug"))
	if err != nil {
		return err
	}
	if post == nil {
		return echo.ErrNotFound
	}
	site, err := h.siteData(c)
	if err != nil {
		return err
	}
	pages, err := h.Pages.List(ctx)
	if err != nil {
		return err
	}

	decision := access.ResolvePost(*post, pages, h.heldTokens(c))
	if !decision.Allowed {
		return c.Render(http.StatusOK, "locked.html", lockedView{
			SiteData: site,
			Title:    sanitizerStrict.Sanitize(post.Title),
			Action:   "/posts/" + post.ID + "/unlock",
			Redirect: "/posts/" + post.Slug,
			HintLink: decision.HintLink,
			Error:    c.QueryParam("error"),
		})
	}

	dto := postCard(*post)
	dto.Content = safeMd(post.Content)
	return c.Render(http.StatusOK, "post-view.html", struct {
		SiteData
		Post PostDTO
	}{site, dto})
}

func (h *Handler) GetPage(c echo.Context) error {
	ctx := c.Request().Context()
	page, err := h.Pages.BySlug(ctx, c.Param("slug"))
	if err != nil {
		return err
	}
	if page == nil || page.Type == domain.PageTypeHeading {
		return echo.ErrNotFound
	}
	if page.Type == domain.PageTypeLink && page.ExternalURL != "" {
		return c.Redirect(http.StatusFound, page.ExternalURL)
	}
	site, err := h.siteData(c)
	if err != nil {
		return err
	}

	decision := access.ResolvePage(*page, h.heldTokens(c))
	if !decision.Allowed {
		return c.Render(http.StatusOK, "locked.html", lockedView{
			SiteData: site,
			Title:    sanitizerStrict.Sanitize(page.Title),
			Action:   "/pages/" + page.ID + "/unlock",
			Redirect: "/" + page.Slug,
			HintLink: decision.HintLink,
			Error:    c.QueryParam("error"),
		})
	}

	posts, err := h.Posts.List(ctx)
	if err != nil {
		return err
	}
	var feed []PostDTO
	for _, p := range access.ComposeFeed(*page, posts) {
		feed = append(feed, postCard(p))
	}

	return c.Render(http.StatusOK, "page-view.html", struct {
		SiteData
		Title   string
		Content template.HTML
		Feed    []PostDTO
	}{site, sanitizerStrict.Sanitize(page.Title), safeMd(page.Content), feed})
}

func (h *Handler) GetTag(c echo.Context) error {
	tag := c.Param("tag")
	site, err := h.siteData(c)
	if err != nil {
		return err
	}
	posts, err := h.Posts.List(c.Request().Context())
	if err != nil {
		return err
	}
	var cards []PostDTO
	for _, p := range posts {
		if p.Visible() && p.HasTag(tag) {
			cards = append(cards, postCard(p))
		}
	}
	return c.Render(http.StatusOK, "tag.html", struct {
		SiteData
		Tag   string
		Posts []PostDTO
	}{site, sanitizerStrict.Sanitize(tag), cards})
}

func (h *Handler) GetResume(c echo.Context) error {
	site, err := h.siteData(c)
	if err != nil {
		return err
	}
	resume, err := h.Resume.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "resume.html", struct {
		SiteData
		Resume domain.Resume
	}{site, resume})
}

func (h *Handler) GetContactForm(c echo.Context) error {
	site, err := h.siteData(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "contact.html", struct {
		SiteData
		Intro template.HTML
		Sent  bool
	}{site, safeMd(site.Site.ContactIntro), c.QueryParam("sent") == "1"})
}

func (h *Handler) SubmitContactForm(c echo.Context) error {
	firstName := c.FormValue("firstName")
	lastName := c.FormValue("lastName")
	email := c.FormValue("email")
	body := c.FormValue("message")
	if firstName == "" || lastName == "" || email == "" || body == "" {
		return c.HTML(http.StatusBadRequest, "Missing required fields")
	}

	msg := domain.Message{
		ID:          uuid.NewString(),
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		Phone:       c.FormValue("phone"),
		Category:    c.FormValue("category"),
		Body:        body,
		SubmittedAt: time.Now().UTC(),
	}
	if err := h.Messages.Save(c.Request().Context(), msg); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/contact?sent=1")
}

func (h *Handler) Subscribe(c echo.Context) error {
	email := c.FormValue("email")
	name := c.FormValue("name")
	if email == "" || name == "" {
		return c.HTML(http.StatusBadRequest, "Name and email are required")
	}

	sub := domain.Subscriber{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Phone:        c.FormValue("phone"),
		SubscribedAt: time.Now().UTC(),
	}
	if err := h.Subscribers.Add(c.Request().Context(), sub); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/?subscribed=1")
}

// RegisterPushSubscription accepts the browser's PushSubscription JSON.
func (h *Handler) RegisterPushSubscription(c echo.Context) error {
	var req struct {
		Endpoint string `json:"endpoint"`
		Keys     struct {
			P256dh string `json:"p256dh"`
			Auth   string `json:"auth"`
		} `json:"keys"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid subscription")
	}
	if req.Endpoint == "" || req.Keys.P256dh == "" || req.Keys.Auth == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "incomplete subscription")
	}

	sub := domain.PushSubscription{
		Endpoint:  req.Endpoint,
		P256dh:    req.Keys.P256dh,
		Auth:      req.Keys.Auth,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Push.Save(c.Request().Context(), sub); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
