package domain

import (
	"time"
)

// PushSubscription holds one browser's Web Push registration. The
// endpoint doubles as the identity: re-registering the same endpoint
// replaces the keys.
type PushSubscription struct {
	Endpoint  string `json:"endpoint"`
	P256dh    string `json:"p256dh"`
	Auth      string `json:"auth"`
	CreatedAt time.Time
}
