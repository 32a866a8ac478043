package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"investor-portal/internal/domain"
	"investor-portal/internal/storage"
)

// ErrStorageNotConfigured is returned when an export is requested without an object store.
var ErrStorageNotConfigured = errors.New("storage service not configured")

// ExportResult describes a completed lead export.
type ExportResult struct {
	Location    string
	DownloadURL string
	Count       int
}

// ExportObject describes a previously written export in object storage.
type ExportObject struct {
	Key          string
	Size         int64
	LastModified *time.Time
}

// ExportService writes lead snapshots to object storage as CSV.
type ExportService interface {
	ExportLeads(ctx context.Context) (*ExportResult, error)
	ListExports(ctx context.Context) ([]ExportObject, error)
}

type exportService struct {
	leads     LeadService
	storage   storage.Service
	bucket    string
	keyPrefix string
	urlTTL    time.Duration
}

func NewExportService(leads LeadService, store storage.Service, bucket, keyPrefix string, urlTTL time.Duration) ExportService {
	return &exportService{
		leads:     leads,
		storage:   store,
		bucket:    bucket,
		keyPrefix: strings.Trim(keyPrefix, "/"),
		urlTTL:    urlTTL,
	}
}

func (s *exportService) ExportLeads(ctx context.Context) (*ExportResult, error) {
	if s.storage == nil || s.bucket == "" {
		return nil, ErrStorageNotConfigured
	}

	leads, err := s.leads.ListLeads(ctx)
	if err != nil {
		return nil, err
	}

	body, err := leadsToCSV(leads)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("exports/leads-%s-%s.csv", time.Now().UTC().Format("20060102-150405"), uuid.NewString())
	if s.keyPrefix != "" {
		key = s.keyPrefix + "/" + key
	}

	location, err := s.storage.PutObject(ctx, s.bucket, key, "text/csv", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	url, err := s.storage.GetObjectURL(ctx, s.bucket, key, s.urlTTL)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		Location:    location,
		DownloadURL: url,
		Count:       len(leads),
	}, nil
}

// ListExports returns the export objects accumulated under the configured prefix.
func (s *exportService) ListExports(ctx context.Context) ([]ExportObject, error) {
	if s.storage == nil || s.bucket == "" {
		return nil, ErrStorageNotConfigured
	}

	prefix := "exports/"
	if s.keyPrefix != "" {
		prefix = s.keyPrefix + "/" + prefix
	}

	objects, err := s.storage.ListObjects(ctx, s.bucket, prefix)
	if err != nil {
		return nil, err
	}

	exports := make([]ExportObject, len(objects))
	for i, obj := range objects {
		exports[i] = ExportObject{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		}
	}
	return exports, nil
}

func leadsToCSV(leads []domain.Lead) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"id", "first_name", "last_name", "email", "phone", "company", "job_title", "country", "investment_range", "interests", "how_heard", "created_at"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, lead := range leads {
		record := []string{
			strconv.FormatInt(lead.ID, 10),
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
			lead.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
