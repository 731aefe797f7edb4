package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"veranda/config"
)

const sessionDuration = time.Hour * 24 * 7

func (h *Handler) authorizationCookie(userID string) (*http.Cookie, error) {
	if h.JWTSecret == "" {
		return nil, errors.New("missing secret")
	}
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["userID"] = userID
	exp := time.Now().Add(sessionDuration)
	claims["exp"] = exp.Unix()
	signed, err := token.SignedString([]byte(h.JWTSecret))
	if err != nil {
		return nil, err
	}

	cookie := new(http.Cookie)
	cookie.Name = "Authorization"
	cookie.Value = signed
	cookie.Expires = exp
	cookie.Path = "/"
	cookie.HttpOnly = true
	cookie.Secure = h.Environment != config.DevEnv
	return cookie, nil
}

// currentUserID returns the admin user id from the Authorization cookie,
// or "" for anonymous visitors.
func (h *Handler) currentUserID(c echo.Context) string {
	if h.JWTSecret == "" {
		return ""
	}
	cookie, err := c.Cookie("Authorization")
	if err != nil {
		return ""
	}
	token, err := jwt.Parse(cookie.Value, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(h.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	userID, _ := claims["userID"].(string)
	return userID
}
