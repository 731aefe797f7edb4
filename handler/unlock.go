package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"veranda/access"
)

// UnlockPost verifies a submitted password for a post. A match against a
// protected parent page's password grants the page token instead, which
// the resolver honors for every post that page curates.
func (h *Handler) UnlockPost(c echo.Context) error {
	grant, err := h.Verifier.VerifyPost(c.Request().Context(), c.Param("id"), c.FormValue("password"))
	return h.finishUnlock(c, grant, err)
}

// UnlockPage verifies a submitted password for a page.
func (h *Handler) UnlockPage(c echo.Context) error {
	grant, err := h.Verifier.VerifyPage(c.Request().Context(), c.Param("id"), c.FormValue("password"))
	return h.finishUnlock(c, grant, err)
}

func (h *Handler) finishUnlock(c echo.Context, grant access.Grant, err error) error {
	target := safeRedirect(c.FormValue("redirect"))

	switch {
	case err == nil:
		cookie, cerr := h.grantCookie(grant)
		if cerr != nil {
			return cerr
		}
		c.SetCookie(cookie)
		return c.Redirect(http.StatusFound, target)
	case errors.Is(err, access.ErrNotFound):
		return echo.ErrNotFound
	case errors.Is(err, access.ErrIncorrectPassword), errors.Is(err, access.ErrNotProtected):
		// The same message for both, so probing cannot tell a wrong
		// password from an unprotected entity.
		return c.Redirect(http.StatusFound, target+"?error=incorrect-password")
	default:
		return err
	}
}

// safeRedirect confines post-unlock redirects to local paths.
func safeRedirect(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return "/"
	}
	if _, err := url.Parse(target); err != nil {
		return "/"
	}
	return target
}
