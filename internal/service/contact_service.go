package service

import (
	"context"
	"strings"

	"investor-portal/internal/domain"
	"investor-portal/internal/repository"
)

// ContactInput carries the contact form fields.
type ContactInput struct {
	Name    string
	Email   string
	Company string
	Phone   string
	Message string
}

// ContactService persists contact form submissions.
type ContactService interface {
	SubmitInquiry(ctx context.Context, input ContactInput) (*domain.ContactInquiry, error)
}

type contactService struct {
	inquiries repository.InquiryRepository
}

func NewContactService(inquiries repository.InquiryRepository) ContactService {
	return &contactService{inquiries: inquiries}
}

func (s *contactService) SubmitInquiry(ctx context.Context, input ContactInput) (*domain.ContactInquiry, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Message = strings.TrimSpace(input.Message)

	if input.Name == "" {
		return nil, invalidField("name", "name is required")
	}
	if !emailPattern.MatchString(input.Email) {
		return nil, invalidField("email", "a valid email address is required")
	}
	if input.Message == "" {
		return nil, invalidField("message", "message is required")
	}

	inquiry := &domain.ContactInquiry{
		Name:    input.Name,
		Email:   input.Email,
		Company: strings.TrimSpace(input.Company),
		Phone:   strings.TrimSpace(input.Phone),
		Message: input.Message,
	}

	if _, err := s.inquiries.Create(ctx, inquiry); err != nil {
		return nil, err
	}
	return inquiry, nil
}
