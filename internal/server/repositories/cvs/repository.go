// Package cvs stores seeker CVs and their default flag.
package cvs

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, cv *models.CV) (*models.CV, error)
	GetByID(ctx context.Context, id string) (*models.CV, error)
	// GetDefault returns the user's default CV or common.ErrorNotFound.
	GetDefault(ctx context.Context, userID string) (*models.CV, error)
	// GetLatest returns the most recently created CV of the user.
	GetLatest(ctx context.Context, userID string) (*models.CV, error)
	ListByUser(ctx context.Context, userID string) ([]models.CV, error)
	CountByUser(ctx context.Context, userID string) (int64, error)

	// Update writes the content fields; the default flag is not touched.
	Update(ctx context.Context, cv *models.CV) error
	// ClearDefault unsets the default flag on every CV of the user.
	ClearDefault(ctx context.Context, userID string, now time.Time) error
	SetDefault(ctx context.Context, id string, now time.Time) error
	Delete(ctx context.Context, id string) error
}
