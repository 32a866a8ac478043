package domain

import "time"

// Lead is a prospective investor captured through the registration form.
type Lead struct {
	ID              int64
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Company         string
	JobTitle        string
	Country         string
	InvestmentRange string
	Interests       string
	HowHeard        string
	CreatedAt       time.Time
}
