package domain

import (
	"errors"
	"strings"
	"time"
)

// User is an admin account. Visitors are anonymous.
type User struct {
	ID        string
	Username  string
	Email     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) ValidateEmail() error {
	if u.Email != nil && !strings.Contains(*u.Email, "@") {
		return errors.New("invalid email address")
	}
	return nil
}
