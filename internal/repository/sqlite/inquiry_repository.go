package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"investor-portal/internal/domain"
	"investor-portal/internal/repository"
)

const createInquiriesTable = `
CREATE TABLE IF NOT EXISTS contact_inquiries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	company TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	message TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
`

type InquiryRepository struct {
	db *sql.DB
}

func NewInquiryRepository(db *sql.DB) repository.InquiryRepository {
	return &InquiryRepository{db: db}
}

func (r *InquiryRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createInquiriesTable); err != nil {
		return fmt.Errorf("create contact_inquiries table: %w", err)
	}
	return nil
}

func (r *InquiryRepository) Create(ctx context.Context, inquiry *domain.ContactInquiry) (int64, error) {
	inquiry.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO contact_inquiries (name, email, company, phone, message, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		inquiry.Name,
		inquiry.Email,
		inquiry.Company,
		inquiry.Phone,
		inquiry.Message,
		inquiry.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert inquiry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("inquiry last insert id: %w", err)
	}
	inquiry.ID = id
	return id, nil
}
