// Package notify delivers in-app notifications. Notifications are always
// persisted first; pushers (Redis pub/sub) are a best-effort live channel on
// top of the stored row.
package notify

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/logging"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/repomanager"
)

// Sink accepts notifications addressed to a user.
type Sink interface {
	Notify(ctx context.Context, n *models.Notification) error
}

// Pusher forwards an already stored notification to connected clients.
type Pusher interface {
	Push(ctx context.Context, n *models.Notification) error
}

type StoreSink struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	pushers     []Pusher
	log         logging.Logger
	now         func() time.Time
}

func NewStoreSink(db *sql.DB, repomanager repomanager.RepositoryManager, log logging.Logger, pushers ...Pusher) *StoreSink {
	return &StoreSink{
		db:          db,
		repomanager: repomanager,
		pushers:     pushers,
		log:         log.With("module", "notify"),
		now:         time.Now,
	}
}

func (s *StoreSink) Notify(ctx context.Context, n *models.Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now().UTC()
	}

	stored, err := s.repomanager.Notifications(s.db).Create(ctx, n)
	if err != nil {
		return err
	}

	for _, p := range s.pushers {
		if err := p.Push(ctx, stored); err != nil {
			s.log.Warn(ctx, "notification push failed", "notification_id", stored.ID, "user_id", stored.UserID, "error", err)
		}
	}
	return nil
}
