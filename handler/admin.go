package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) AdminDashboard(c echo.Context) error {
	ctx := c.Request().Context()
	site, err := h.siteData(c)
	if err != nil {
		return err
	}
	posts, err := h.Posts.List(ctx)
	if err != nil {
		return err
	}
	pages, err := h.Pages.List(ctx)
	if err != nil {
		return err
	}
	subs, err := h.Subscribers.List(ctx)
	if err != nil {
		return err
	}
	msgs, err := h.Messages.List(ctx)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "admin-dashboard.html", struct {
		SiteData
		PostCount       int
		PageCount       int
		SubscriberCount int
		MessageCount    int
	}{site, len(posts), len(pages), len(subs), len(msgs)})
}
