package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"veranda/domain"
)

func (h *Handler) AdminListSubscribers(c echo.Context) error {
	site, err := h.siteData(c)
	if err != nil {
		return err
	}
	subs, err := h.Subscribers.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "admin-subscribers.html", struct {
		SiteData
		Subscribers []domain.Subscriber
	}{site, subs})
}

func (h *Handler) AdminDeleteSubscribers(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		return err
	}
	if err := h.Subscribers.Delete(c.Request().Context(), form["ids"]); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/admin/subscribers")
}

func (h *Handler) AdminListMessages(c echo.Context) error {
	site, err := h.siteData(c)
	if err != nil {
		return err
	}
	msgs, err := h.Messages.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "admin-messages.html", struct {
		SiteData
		Messages []domain.Message
	}{site, msgs})
}

func (h *Handler) AdminDeleteMessages(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		return err
	}
	if err := h.Messages.Delete(c.Request().Context(), form["ids"]); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/admin/messages")
}
