package domain

import (
	"time"
)

// Message is a contact-form submission.
type Message struct {
	ID          string
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Category    string
	Body        string
	SubmittedAt time.Time
}
