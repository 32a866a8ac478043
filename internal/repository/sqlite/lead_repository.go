package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"investor-portal/internal/domain"
	"investor-portal/internal/repository"
)

const createLeadsTable = `
CREATE TABLE IF NOT EXISTS leads (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	phone TEXT NOT NULL,
	company TEXT NOT NULL DEFAULT '',
	job_title TEXT NOT NULL DEFAULT '',
	country TEXT NOT NULL,
	investment_range TEXT NOT NULL DEFAULT '',
	interests TEXT NOT NULL DEFAULT '',
	how_heard TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);
`

const createLeadsEmailIndex = `CREATE INDEX IF NOT EXISTS idx_leads_email ON leads(email);`

type LeadRepository struct {
	db *sql.DB
}

func NewLeadRepository(db *sql.DB) repository.LeadRepository {
	return &LeadRepository{db: db}
}

func (r *LeadRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createLeadsTable); err != nil {
		return fmt.Errorf("create leads table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createLeadsEmailIndex); err != nil {
		return fmt.Errorf("create leads email index: %w", err)
	}
	return nil
}

func (r *LeadRepository) Create(ctx context.Context, lead *domain.Lead) (int64, error) {
	lead.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO leads (first_name, last_name, email, phone, company, job_title, country, investment_range, interests, how_heard, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lead.FirstName,
		lead.LastName,
		lead.Email,
		lead.Phone,
		lead.Company,
		lead.JobTitle,
		lead.Country,
		lead.InvestmentRange,
		lead.Interests,
		lead.HowHeard,
		lead.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, repository.ErrConflict
		}
		return 0, fmt.Errorf("insert lead: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("lead last insert id: %w", err)
	}
	lead.ID = id
	return id, nil
}

func (r *LeadRepository) GetByEmail(ctx context.Context, email string) (*domain.Lead, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, first_name, last_name, email, phone, company, job_title, country, investment_range, interests, how_heard, created_at
FROM leads
WHERE email = ?`,
		email,
	)
	lead, err := scanLead(row)
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func (r *LeadRepository) List(ctx context.Context) ([]domain.Lead, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, first_name, last_name, email, phone, company, job_title, country, investment_range, interests, how_heard, created_at
FROM leads
ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var leads []domain.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}

func scanLead(row interface {
	Scan(dest ...any) error
}) (*domain.Lead, error) {
	var lead domain.Lead
	if err := row.Scan(
		&lead.ID,
		&lead.FirstName,
		&lead.LastName,
		&lead.Email,
		&lead.Phone,
		&lead.Company,
		&lead.JobTitle,
		&lead.Country,
		&lead.InvestmentRange,
		&lead.Interests,
		&lead.HowHeard,
		&lead.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan lead: %w", err)
	}
	return &lead, nil
}
