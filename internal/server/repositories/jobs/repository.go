// Package jobs stores job postings and their counters.
package jobs

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, job *models.Job) (*models.Job, error)
	// GetByID returns the job with CompanyName and OwnerID filled in.
	GetByID(ctx context.Context, id string) (*models.Job, error)
	// Update writes the content fields of job. Status and counters are left
	// alone.
	Update(ctx context.Context, job *models.Job) error
	// UpdateStatus writes status, is_active, published_at and closed_at.
	UpdateStatus(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id string) error

	IncrementViewCount(ctx context.Context, id string) error
	// AddApplicationCount adds delta to application_count, never going below
	// zero.
	AddApplicationCount(ctx context.Context, id string, delta int, now time.Time) error

	// ListOpen returns OPEN and active jobs, newest first.
	ListOpen(ctx context.Context, page models.Page) ([]models.Job, error)
	ListByStatus(ctx context.Context, status models.JobStatus, page models.Page) ([]models.Job, error)
	ListByCompany(ctx context.Context, companyID string, page models.Page) ([]models.Job, error)

	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.JobStatus) (int64, error)
	CountByCompany(ctx context.Context, companyID string) (int64, error)
	CountByCompanyAndStatus(ctx context.Context, companyID string, status models.JobStatus) (int64, error)
	CountByWorkModeAndStatus(ctx context.Context, mode models.WorkMode, status models.JobStatus) (int64, error)
	// SumApplicationCountByCompany totals application_count over the
	// company's jobs.
	SumApplicationCountByCompany(ctx context.Context, companyID string) (int64, error)
	// CountByCategory groups active jobs by category; a NULL category is
	// reported under the empty key.
	CountByCategory(ctx context.Context) (map[string]int64, error)
}
