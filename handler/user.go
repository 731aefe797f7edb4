package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"veranda/config"
	"veranda/domain"
)

func (h *Handler) Login(c echo.Context) error {
	formUsername := c.FormValue("username")
	formPassword := c.FormValue("password")

	if len(formUsername) == 0 || len(formPassword) == 0 {
		return c.HTML(http.StatusBadRequest, "Bad request")
	}

	user, hash, err := h.Users.ByUsername(c.Request().Context(), formUsername)
	if err != nil {
		c.Logger().Error(err)
		return c.HTML(http.StatusInternalServerError, "Internal server error")
	}
	if user == nil {
		return c.HTML(http.StatusBadRequest, "Wrong username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(formPassword)); err != nil {
		return c.HTML(http.StatusBadRequest, "Wrong username or password")
	}

	cookie, err := h.authorizationCookie(user.ID)
	if err != nil {
		return err
	}
	c.SetCookie(cookie)
	return c.Redirect(http.StatusFound, "/admin")
}

func (h *Handler) NewUser(c echo.Context) error {
	if h.Environment != config.DevEnv && !h.EnableSignup {
		return c.HTML(http.StatusForbidden, "<h1>Forbidden!</h1><p>Sign up has been disabled.</p>")
	}

	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return c.HTML(http.StatusBadRequest, "Bad request")
	}

	ctx := c.Request().Context()
	taken, err := h.Users.Exists(ctx, username)
	if err != nil {
		return err
	}
	if taken {
		return c.HTML(http.StatusConflict, "Username already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := domain.User{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := h.Users.Create(ctx, user, string(hashed)); err != nil {
		return err
	}

	cookie, err := h.authorizationCookie(user.ID)
	if err != nil {
		return err
	}
	c.SetCookie(cookie)
	return c.Redirect(http.StatusFound, "/admin")
}

func (h *Handler) Logout(c echo.Context) error {
	cookie := new(http.Cookie)
	cookie.Name = "Authorization"
	cookie.Value = ""
	cookie.Path = "/"
	cookie.Expires = time.Now().Add(-1 * time.Second)
	c.SetCookie(cookie)
	return c.Redirect(http.StatusFound, "/")
}

func (h *Handler) GetLoginForm(c echo.Context) error {
	site, err := h.siteData(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "login.html", site)
}

func (h *Handler) GetNewUserForm(c echo.Context) error {
	site, err := h.siteData(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "signup.html", site)
}
