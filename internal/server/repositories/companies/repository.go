// Package companies stores employer company profiles.
package companies

import (
	"context"

	"github.com/dmitrijs2005/jobportal/internal/server/models"
)

type Repository interface {
	// Create inserts the company. A second company for the same user yields
	// common.ErrorConflict.
	Create(ctx context.Context, company *models.Company) (*models.Company, error)
	GetByID(ctx context.Context, id string) (*models.Company, error)
	GetByUserID(ctx context.Context, userID string) (*models.Company, error)
	// UpdateVerification writes the verification fields of company.
	UpdateVerification(ctx context.Context, company *models.Company) error
	Count(ctx context.Context) (int64, error)
}
