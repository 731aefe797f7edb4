package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"veranda/domain"
	"veranda/store"
)

func (h *Handler) AdminListPages(c echo.Context) error {
	site, err := h.siteData(c)
	if err != nil {
		return err
	}
	pages, err := h.Pages.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "admin-pages.html", struct {
		SiteData
		Pages []domain.Page
	}{site, pages})
}

func (h *Handler) AdminNewPageForm(c echo.Context) error {
	site, err := h.siteData(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "admin-page-edit.html", struct {
		SiteData
		Page    domain.Page
		PostIDs string
		New     bool
	}{site, domain.Page{ID: uuid.NewString(), Type: domain.PageTypePage, InSidebar: true}, "", true})
}

func (h *Handler) AdminEditPageForm(c echo.Context) error {
	site, err := h.siteData(c)
	if err != nil {
		return err
	}
	page, err := h.Pages.ByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if page == nil {
		return echo.ErrNotFound
	}
	return c.Render(http.StatusOK, "admin-page-edit.html", struct {
		SiteData
		Page    domain.Page
		PostIDs string
		New     bool
	}{site, *page, strings.Join(page.PostIDs, "\n"), false})
}

func pageFromForm(c echo.Context, existing domain.Page) domain.Page {
	p := existing
	p.Title = c.FormValue("title")
	p.Content = c.FormValue("content")
	p.Type = c.FormValue("type")
	p.ExternalURL = c.FormValue("externalUrl")
	p.InSidebar = c.FormValue("inSidebar") == "on"
	// PostIDs come one per line, in editorial order; no implicit sort.
	p.PostIDs = splitList(c.FormValue("postIds"))
	p.IsProtected = c.FormValue("isProtected") == "on"
	p.Password = c.FormValue("password")
	p.PasswordHintLink = c.FormValue("passwordHintLink")
	if pos, err := strconv.Atoi(c.FormValue("position")); err == nil {
		p.Position = pos
	}
	if slug := c.FormValue("slug"); slug != "" {
		p.Slug = slugify(slug)
	} else {
		p.Slug = slugify(p.Title)
	}
	if p.Type == "" {
		p.Type = domain.PageTypePage
	}
	p.UpdatedAt = time.Now().UTC()
	return p
}

func (h *Handler) AdminCreatePage(c echo.Context) error {
	id := c.FormValue("id")
	if id == "" {
		id = uuid.NewString()
	}
	if c.FormValue("title") == "" {
		return c.HTML(http.StatusBadRequest, "Title is required")
	}

	page := pageFromForm(c, domain.Page{ID: id})
	if err := h.Pages.Save(c.Request().Context(), page); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/admin/pages")
}

func (h *Handler) AdminUpdatePage(c echo.Context) error {
	ctx := c.Request().Context()
	existing, err := h.Pages.ByID(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	if existing == nil {
		return echo.ErrNotFound
	}
	if c.FormValue("title") == "" {
		return c.HTML(http.StatusBadRequest, "Title is required")
	}

	page := pageFromForm(c, *existing)
	if err := h.Pages.Save(ctx, page); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/admin/pages")
}

func (h *Handler) AdminDeletePage(c echo.Context) error {
	err := h.Pages.Delete(c.Request().Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		// Already gone, or a system page that stays.
		return c.Redirect(http.StatusFound, "/admin/pages")
	}
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/admin/pages")
}
