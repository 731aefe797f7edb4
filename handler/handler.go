package handler

import (
	"github.com/labstack/echo/v4"

	"veranda/access"
	"veranda/domain"
	"veranda/store"
)

type Handler struct {
	JWTSecret    string
	EnableSignup bool
	Environment  string

	Posts       *store.PostService
	Pages       *store.PageService
	Settings    *store.SettingsService
	Resume      *store.ResumeService
	Subscribers *store.SubscriberService
	Messages    *store.MessageService
	Push        *store.PushService
	Users       *store.UserService
	Verifier    *access.Verifier

	VAPIDPublicKey  string
	VAPIDPrivateKey string
	PushContact     string
}

// SiteData is the chrome every template renders against: settings for
// the header, sidebar navigation, login state.
type SiteData struct {
	Site     domain.Settings
	Sidebar  []domain.Page
	LoggedIn bool
}

func (h *Handler) siteData(c echo.Context) (SiteData, error) {
	ctx := c.Request().Context()
	settings, err := h.Settings.Get(ctx)
	if err != nil {
		return SiteData{}, err
	}
	pages, err := h.Pages.List(ctx)
	if err != nil {
		return SiteData{}, err
	}
	var sidebar []domain.Page
	for _, p := range pages {
		if p.InSidebar {
			sidebar = append(sidebar, p)
		}
	}
	return SiteData{
		Site:     settings,
		Sidebar:  sidebar,
		LoggedIn: h.currentUserID(c) != "",
	}, nil
}
