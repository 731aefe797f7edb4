package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"veranda/domain"
)

func (h *Handler) AdminResumeForm(c echo.Context) error {
	site, err := h.siteData(c)
	if err != nil {
		return err
	}
	resume, err := h.Resume.Get(c.Request().Context())
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "admin-resume.html", struct {
		SiteData
		ResumeJSON string
		Saved      bool
	}{site, string(raw), c.QueryParam("saved") == "1"})
}

// AdminSaveResume replaces the resume wholesale from a JSON document.
// The nesting is too deep for flat form fields; the editor posts the
// whole structure.
func (h *Handler) AdminSaveResume(c echo.Context) error {
	raw := c.FormValue("resumeData")
	if raw == "" {
		return c.HTML(http.StatusBadRequest, "Invalid data")
	}
	var resume domain.Resume
	if err := json.Unmarshal([]byte(raw), &resume); err != nil {
		return c.HTML(http.StatusBadRequest, "Invalid resume JSON: "+err.Error())
	}
	if err := h.Resume.Save(c.Request().Context(), resume); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/admin/resume?saved=1")
}

func (h *Handler) AdminSettingsForm(c echo.Context) error {
	site, err := h.siteData(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "admin-settings.html", struct {
		SiteData
		Saved bool
	}{site, c.QueryParam("saved") == "1"})
}

func (h *Handler) AdminSaveSettings(c echo.Context) error {
	title := c.FormValue("globalTitle")
	description := c.FormValue("globalDescription")
	if title == "" || description == "" {
		return c.HTML(http.StatusBadRequest, "Title and Description are required")
	}

	ctx := c.Request().Context()
	settings, err := h.Settings.Get(ctx)
	if err != nil {
		return err
	}
	settings.GlobalTitle = title
	settings.GlobalDescription = description
	settings.HomeIntroContent = c.FormValue("homeIntroContent")
	settings.ProfileName = c.FormValue("profileName")
	settings.ProfileLabel = c.FormValue("profileLabel")
	settings.NewsletterTitle = c.FormValue("newsletterTitle")
	settings.NewsletterDescription = c.FormValue("newsletterDescription")
	settings.ContactIntro = c.FormValue("contactIntro")
	settings.ContactEmail = c.FormValue("contactEmail")

	if err := h.Settings.Save(ctx, settings); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/admin/settings?saved=1")
}
