// Package users stores accounts and their role assignments.
package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/server/models"
)

type Repository interface {
	// Create inserts the user and returns it with ID set. A taken email
	// yields common.ErrorConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	AddRole(ctx context.Context, userID string, role models.Role) error

	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, page models.Page) ([]models.User, error)
	// ListPendingEmployers returns EMPLOYER accounts not yet verified.
	ListPendingEmployers(ctx context.Context) ([]models.User, error)

	SetActive(ctx context.Context, id string, active bool, now time.Time) error
	SetVerified(ctx context.Context, id string, verified bool, now time.Time) error
	SetPasswordHash(ctx context.Context, id string, hash string, now time.Time) error
	Delete(ctx context.Context, id string) error

	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role models.Role) (int64, error)
	CountPendingEmployers(ctx context.Context) (int64, error)
}
