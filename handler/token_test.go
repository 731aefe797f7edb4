package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"veranda/access"
)

func contextWithCookies(cookies ...*http.Cookie) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestGrantCookieRoundTrip(t *testing.T) {
	h := &Handler{JWTSecret: "test-secret", Environment: "dev"}
	grant := access.Grant{TokenName: access.PageTokenName("p1"), TTL: access.TokenTTL}

	cookie, err := h.grantCookie(grant)
	if err != nil {
		t.Fatal(err)
	}
	if cookie.Name != "access_granted_page_p1" {
		t.Errorf("Name = %q", cookie.Name)
	}
	if !cookie.HttpOnly {
		t.Error("cookie must be HttpOnly")
	}
	if cookie.Secure {
		t.Error("cookie should not be Secure in dev")
	}
	if cookie.Path != "/" {
		t.Errorf("Path = %q", cookie.Path)
	}

	held := h.heldTokens(contextWithCookies(cookie))
	if !held.Has(grant.TokenName) {
		t.Error("freshly granted token not held")
	}
}

func TestGrantCookieSecureOutsideDev(t *testing.T) {
	h := &Handler{JWTSecret: "test-secret", Environment: "pro"}
	cookie, err := h.grantCookie(access.Grant{TokenName: access.PostTokenName("x"), TTL: access.TokenTTL})
	if err != nil {
		t.Fatal(err)
	}
	if !cookie.Secure {
		t.Error("cookie must be Secure outside dev")
	}
}

func TestHeldTokensRejectsForgeries(t *testing.T) {
	h := &Handler{JWTSecret: "test-secret", Environment: "dev"}
	grant := access.Grant{TokenName: access.PostTokenName("n1"), TTL: access.TokenTTL}
	genuine, err := h.grantCookie(grant)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{"hand-written value", &http.Cookie{Name: access.PostTokenName("n1"), Value: "true"}},
		{"value copied to another entity's name", &http.Cookie{
			Name:  access.PostTokenName("other"),
			Value: genuine.Value,
		}},
		{"signed with another secret", func() *http.Cookie {
			other := &Handler{JWTSecret: "different", Environment: "dev"}
			ck, err := other.grantCookie(grant)
			if err != nil {
				t.Fatal(err)
			}
			return ck
		}()},
		{"expired", func() *http.Cookie {
			ck, err := h.grantCookie(access.Grant{TokenName: grant.TokenName, TTL: -time.Hour})
			if err != nil {
				t.Fatal(err)
			}
			return ck
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			held := h.heldTokens(contextWithCookies(tt.cookie))
			if held.Has(tt.cookie.Name) {
				t.Errorf("forged cookie %q accepted", tt.name)
			}
		})
	}
}

func TestHeldTokensIgnoresUnrelatedCookies(t *testing.T) {
	h := &Handler{JWTSecret: "test-secret", Environment: "dev"}
	held := h.heldTokens(contextWithCookies(
		&http.Cookie{Name: "Authorization", Value: "whatever"},
		&http.Cookie{Name: "theme", Value: "dark"},
	))
	if len(held) != 0 {
		t.Errorf("held = %v, want empty", held)
	}
}
