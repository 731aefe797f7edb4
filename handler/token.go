package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"veranda/access"
	"veranda/config"
)

// Unlock tokens travel as one cookie per granted entity. The cookie name
// is the token name; the value is an HS256 JWT scoped to that name so a
// visitor cannot mint grants by hand-writing cookies.

func (h *Handler) grantCookie(g access.Grant) (*http.Cookie, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["scope"] = g.TokenName
	claims["exp"] = time.Now().Add(g.TTL).Unix()
	signed, err := token.SignedString([]byte(h.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("sign unlock token: %w", err)
	}

	cookie := new(http.Cookie)
	cookie.Name = g.TokenName
	cookie.Value = signed
	cookie.Path = "/"
	cookie.Expires = time.Now().Add(g.TTL)
	cookie.HttpOnly = true
	cookie.Secure = h.Environment != config.DevEnv
	return cookie, nil
}

// heldTokens collects the unlock-token names this request carries with a
// valid signature, unexpired, and a scope matching the cookie name.
// Anything else is ignored rather than rejected.
func (h *Handler) heldTokens(c echo.Context) access.TokenSet {
	held := access.TokenSet{}
	for _, ck := range c.Cookies() {
		if !strings.HasPrefix(ck.Name, access.TokenPrefix) {
			continue
		}
		token, err := jwt.Parse(ck.Value, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(h.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			continue
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			continue
		}
		if scope, _ := claims["scope"].(string); scope != ck.Name {
			continue
		}
		held.Add(ck.Name)
	}
	return held
}
