package memory

import (
	"context"
	"sync"

	"investor-portal/internal/domain"
	"investor-portal/internal/repository"
)

// InquiryRepository is an in-memory inquiry store for tests.
type InquiryRepository struct {
	mu        sync.Mutex
	nextID    int64
	inquiries []domain.ContactInquiry
}

func NewInquiryRepository() *InquiryRepository {
	return &InquiryRepository{}
}

func (r *InquiryRepository) Init(ctx context.Context) error { return nil }

func (r *InquiryRepository) Create(ctx context.Context, inquiry *domain.ContactInquiry) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	inquiry.ID = r.nextID
	r.inquiries = append(r.inquiries, *inquiry)
	return inquiry.ID, nil
}

// All returns the stored inquiries.
func (r *InquiryRepository) All() []domain.ContactInquiry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ContactInquiry, len(r.inquiries))
	copy(out, r.inquiries)
	return out
}

var _ repository.InquiryRepository = (*InquiryRepository)(nil)
