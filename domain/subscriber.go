package domain

import (
	"time"
)

type Subscriber struct {
	ID           string
	Email        string
	Name         string
	Phone        string
	SubscribedAt time.Time
}
