// Package applications stores job applications.
package applications

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/server/models"
)

type Repository interface {
	// Create inserts the application. A second application for the same
	// (job, applicant) pair yields common.ErrorConflict.
	Create(ctx context.Context, app *models.Application) (*models.Application, error)
	// GetByID returns the application with job title, company name,
	// employer and applicant email filled in.
	GetByID(ctx context.Context, id string) (*models.Application, error)
	ExistsForJobAndApplicant(ctx context.Context, jobID, applicantID string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, notes string, reviewedAt time.Time) error
	Delete(ctx context.Context, id string) error

	ListByApplicant(ctx context.Context, applicantID string, page models.Page) ([]models.Application, error)
	ListByJob(ctx context.Context, jobID string, page models.Page) ([]models.Application, error)
	// ListByCompany returns applications to the company's jobs, newest first.
	ListByCompany(ctx context.Context, companyID string, page models.Page) ([]models.Application, error)
	ListRecent(ctx context.Context, page models.Page) ([]models.Application, error)

	// CVSharedWithEmployer reports whether cvID is attached to an application
	// for a job owned by employerID.
	CVSharedWithEmployer(ctx context.Context, cvID, employerID string) (bool, error)

	Count(ctx context.Context) (int64, error)
	CountByApplicant(ctx context.Context, applicantID string) (int64, error)
	CountByStatus(ctx context.Context) (map[models.ApplicationStatus]int64, error)
}
