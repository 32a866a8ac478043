package repository

import (
	"context"

	"investor-portal/internal/domain"
)

// InquiryRepository defines persistence operations for contact inquiries.
type InquiryRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, inquiry *domain.ContactInquiry) (int64, error)
}
