// Package notifications stores in-app notifications addressed to users.
package notifications

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, n *models.Notification) (*models.Notification, error)
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	ListByUser(ctx context.Context, userID string, page models.Page) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id string, now time.Time) error
	// MarkAllRead marks every unread notification of the user and returns
	// how many changed.
	MarkAllRead(ctx context.Context, userID string, now time.Time) (int64, error)
}
