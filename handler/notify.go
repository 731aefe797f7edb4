package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/labstack/echo/v4"
)

func (h *Handler) AdminNotificationsForm(c echo.Context) error {
	site, err := h.siteData(c)
	if err != nil {
		return err
	}
	subs, err := h.Push.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "admin-notifications.html", struct {
		SiteData
		DeviceCount int
		Configured  bool
		Result      string
	}{site, len(subs), h.VAPIDPrivateKey != "", c.QueryParam("result")})
}

// AdminSendNotification broadcasts to every registered subscription.
// Endpoints the push service reports gone are pruned as we go.
func (h *Handler) AdminSendNotification(c echo.Context) error {
	title := c.FormValue("title")
	body := c.FormValue("body")
	if title == "" || body == "" {
		return c.HTML(http.StatusBadRequest, "Title and body are required")
	}
	if h.VAPIDPrivateKey == "" {
		return c.HTML(http.StatusInternalServerError, "Push is not configured: missing VAPID keys")
	}

	ctx := c.Request().Context()
	subs, err := h.Push.List(ctx)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		return c.Redirect(http.StatusFound, "/admin/notifications?result=no-devices")
	}

	payload, err := json.Marshal(map[string]string{"title": title, "body": body})
	if err != nil {
		return err
	}

	sent, failed := 0, 0
	for _, sub := range subs {
		resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
			Endpoint: sub.Endpoint,
			Keys:     webpush.Keys{P256dh: sub.P256dh, Auth: sub.Auth},
		}, &webpush.Options{
			Subscriber:      h.PushContact,
			VAPIDPublicKey:  h.VAPIDPublicKey,
			VAPIDPrivateKey: h.VAPIDPrivateKey,
			TTL:             60,
		})
		if err != nil {
			failed++
			c.Logger().Errorf("push to %s: %v", sub.Endpoint, err)
			continue
		}
		if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
			// Subscription expired or was revoked; forget it.
			if err := h.Push.Delete(ctx, sub.Endpoint); err != nil {
				c.Logger().Error(err)
			}
			failed++
		} else if resp.StatusCode >= 400 {
			failed++
		} else {
			sent++
		}
		resp.Body.Close()
	}

	return c.Redirect(http.StatusFound,
		fmt.Sprintf("/admin/notifications?result=sent-%d-failed-%d", sent, failed))
}
