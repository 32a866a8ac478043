package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"investor-portal/internal/domain"
	"investor-portal/internal/repository"
)

var (
	namePattern     = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	phoneStripper   = regexp.MustCompile(`[^0-9+]`)
	validCountries  = map[string]bool{"US": true, "CA": true, "GB": true, "DE": true, "FR": true, "AU": true, "SG": true, "HK": true, "JP": true, "ZA": true, "Other": true}
	validRanges     = map[string]bool{"under_50k": true, "50k_100k": true, "100k_500k": true, "500k_1m": true, "over_1m": true}
	validSources    = map[string]bool{"search_engine": true, "social_media": true, "referral": true, "news_article": true, "event": true, "other": true}
	maxInterestsLen = 1000
)

// LeadInput carries the investor registration form fields.
type LeadInput struct {
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
}

// LeadService validates and persists investor leads.
type LeadService interface {
	RegisterLead(ctx context.Context, input LeadInput) (*domain.Lead, error)
	ListLeads(ctx context.Context) ([]domain.Lead, error)
}

type leadService struct {
	leads repository.LeadRepository
}

func NewLeadService(leads repository.LeadRepository) LeadService {
	return &leadService{leads: leads}
}

func (s *leadService) RegisterLead(ctx context.Context, input LeadInput) (*domain.Lead, error) {
	fields := map[string]string{}

	firstName, msg := validateName(input.FirstName)
	if msg != "" {
		fields["firstName"] = msg
	}
	lastName, msg := validateName(input.LastName)
	if msg != "" {
		fields["lastName"] = msg
	}

	email := strings.ToLower(cleanText(input.Email))
	if !emailPattern.MatchString(email) {
		fields["email"] = "a valid email address is required"
	}

	phone := phoneStripper.ReplaceAllString(input.Phone, "")
	digits := strings.ReplaceAll(phone, "+", "")
	if len(digits) < 7 || len(digits) > 15 {
		fields["phone"] = "a valid phone number is required (7-15 digits)"
	}

	country := strings.TrimSpace(input.Country)
	if !validCountries[country] {
		fields["country"] = "a valid country selection is required"
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	lead := &domain.Lead{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
		Company:   cleanText(input.Company),
		JobTitle:  cleanText(input.JobTitle),
		Country:   country,
	}

	// Optimistic duplicate check; the store's unique constraint closes the race.
	if _, err := s.leads.GetByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateLead
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// Optional enumerated fields are dropped rather than rejected when invalid.
	if validRanges[input.InvestmentRange] {
		lead.InvestmentRange = input.InvestmentRange
	}
	if interests := cleanText(input.Interests); len(interests) <= maxInterestsLen {
		lead.Interests = interests
	}
	if validSources[input.HowHeard] {
		lead.HowHeard = input.HowHeard
	}

	if _, err := s.leads.Create(ctx, lead); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrDuplicateLead
		}
		return nil, err
	}
	return lead, nil
}

func (s *leadService) ListLeads(ctx context.Context) ([]domain.Lead, error) {
	return s.leads.List(ctx)
}

func validateName(name string) (string, string) {
	name = cleanText(name)
	if len(name) < 2 {
		return "", "must be at least 2 characters long"
	}
	if !namePattern.MatchString(name) {
		return "", "can only contain letters, spaces, hyphens, and apostrophes"
	}
	// cases.Caser is stateful, so build one per call.
	return cases.Title(language.English).String(name), ""
}

// cleanText collapses runs of whitespace and trims the result.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
