package repository

import (
	"context"

	"investor-portal/internal/domain"
)

// UserRepository defines persistence operations for User entities.
//
// Create must enforce email uniqueness at the persistence layer and return
// ErrConflict when two inserts race on the same address.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
