package repository

import (
	"context"

	"investor-portal/internal/domain"
)

// LeadRepository defines persistence operations for investor leads.
type LeadRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, lead *domain.Lead) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.Lead, error)
	List(ctx context.Context) ([]domain.Lead, error)
}
