// Package savedjobs stores the seeker bookmark relation between users and
// jobs.
package savedjobs

import (
	"context"

	"github.com/dmitrijs2005/jobportal/internal/server/models"
)

type Repository interface {
	// Create inserts the pair. An existing pair yields common.ErrorConflict.
	Create(ctx context.Context, saved *models.SavedJob) (*models.SavedJob, error)
	Exists(ctx context.Context, userID, jobID string) (bool, error)
	// Delete removes the pair or returns common.ErrorNotFound.
	Delete(ctx context.Context, userID, jobID string) error
	ListByUser(ctx context.Context, userID string, page models.Page) ([]models.SavedJob, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}
