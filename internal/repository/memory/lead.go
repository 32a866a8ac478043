package memory

import (
	"context"
	"sort"
	"sync"

	"investor-portal/internal/domain"
	"investor-portal/internal/repository"
)

// LeadRepository is an in-memory lead store for tests.
type LeadRepository struct {
	mu     sync.Mutex
	nextID int64
	leads  map[int64]domain.Lead
}

func NewLeadRepository() *LeadRepository {
	return &LeadRepository{leads: make(map[int64]domain.Lead)}
}

func (r *LeadRepository) Init(ctx context.Context) error { return nil }

func (r *LeadRepository) Create(ctx context.Context, lead *domain.Lead) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range r.leads {
		if l.Email == lead.Email {
			return 0, repository.ErrConflict
		}
	}

	r.nextID++
	lead.ID = r.nextID
	r.leads[lead.ID] = *lead
	return lead.ID, nil
}

func (r *LeadRepository) GetByEmail(ctx context.Context, email string) (*domain.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range r.leads {
		if l.Email == email {
			found := l
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *LeadRepository) List(ctx context.Context) ([]domain.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	leads := make([]domain.Lead, 0, len(r.leads))
	for _, l := range r.leads {
		leads = append(leads, l)
	}
	sort.Slice(leads, func(i, j int) bool { return leads[i].ID > leads[j].ID })
	return leads, nil
}

var _ repository.LeadRepository = (*LeadRepository)(nil)
