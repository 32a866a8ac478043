package domain

import "time"

// ContactInquiry is a message submitted through the contact form.
type ContactInquiry struct {
	ID        int64
	Name      string
	Email     string
	Company   string
	Phone     string
	Message   string
	CreatedAt time.Time
}
