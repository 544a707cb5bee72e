// Package refreshtokens stores the server side of refresh tokens.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string, token string, expires time.Time) error
	// Find returns common.ErrorNotFound for unknown tokens.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)
	// Delete is a no-op for unknown tokens.
	Delete(ctx context.Context, token string) error
	// DeleteByUser revokes every session of the user.
	DeleteByUser(ctx context.Context, userID string) error
}
