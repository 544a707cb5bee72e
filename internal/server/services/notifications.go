package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/repomanager"
)

// NotificationService is the read side of the inbox. Notifications are
// only ever created by the workflow through notify.Sink.
type NotificationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewNotificationService(db *sql.DB, repomanager repomanager.RepositoryManager) *NotificationService {
	return &NotificationService{db: db, repomanager: repomanager, now: time.Now}
}

func (s *NotificationService) List(ctx context.Context, actor *Actor, page models.Page) ([]models.Notification, error) {
	return s.repomanager.Notifications(s.db).ListByUser(ctx, actor.UserID(), normalizePage(page))
}

func (s *NotificationService) CountUnread(ctx context.Context, actor *Actor) (int64, error) {
	return s.repomanager.Notifications(s.db).CountUnread(ctx, actor.UserID())
}

func (s *NotificationService) MarkRead(ctx context.Context, actor *Actor, notificationID string) error {
	repo := s.repomanager.Notifications(s.db)

	n, err := repo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if !actor.Owns(n.UserID) {
		return fmt.Errorf("%w: notification addressed to another user", common.ErrorAccessDenied)
	}
	return repo.MarkRead(ctx, notificationID, s.now().UTC())
}

// MarkAllRead returns how many notifications changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, actor *Actor) (int64, error) {
	return s.repomanager.Notifications(s.db).MarkAllRead(ctx, actor.UserID(), s.now().UTC())
}
