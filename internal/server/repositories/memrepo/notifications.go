package memrepo

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/google/uuid"
)

type notificationRepo struct {
	s *Store
}

func copyNotification(n *models.Notification) models.Notification {
	v := *n
	v.ReadAt = timePtr(n.ReadAt)
	return v
}

func (r *notificationRepo) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	if err := r.s.lock("notifications.Create"); err != nil {
		r.s.mu.Unlock()
		return nil, err
	}
	defer r.s.mu.Unlock()

	n.ID = uuid.NewString()
	stored := copyNotification(n)
	r.s.notifications[n.ID] = &stored
	r.s.track(n.ID)
	return n, nil
}

func (r *notificationRepo) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	if err := r.s.lock("notifications.GetByID"); err != nil {
		r.s.mu.Unlock()
		return nil, err
	}
	defer r.s.mu.Unlock()

	n, ok := r.s.notifications[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	v := copyNotification(n)
	return &v, nil
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID string, page models.Page) ([]models.Notification, error) {
	if err := r.s.lock("notifications.ListByUser"); err != nil {
		r.s.mu.Unlock()
		return nil, err
	}
	defer r.s.mu.Unlock()

	out := []models.Notification{}
	for _, n := range r.s.notifications {
		if n.UserID == userID {
			out = append(out, copyNotification(n))
		}
	}
	newestFirst(r.s, out, func(n models.Notification) (string, time.Time) { return n.ID, n.CreatedAt })
	return window(out, page), nil
}

func (r *notificationRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	if err := r.s.lock("notifications.CountUnread"); err != nil {
		r.s.mu.Unlock()
		return 0, err
	}
	defer r.s.mu.Unlock()

	var c int64
	for _, n := range r.s.notifications {
		if n.UserID == userID && !n.IsRead {
			c++
		}
	}
	return c, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, id string, now time.Time) error {
	if err := r.s.lock("notifications.MarkRead"); err != nil {
		r.s.mu.Unlock()
		return err
	}
	defer r.s.mu.Unlock()

	n, ok := r.s.notifications[id]
	if !ok {
		return common.ErrorNotFound
	}
	n.IsRead = true
	if n.ReadAt == nil {
		n.ReadAt = &now
	}
	return nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID string, now time.Time) (int64, error) {
	if err := r.s.lock("notifications.MarkAllRead"); err != nil {
		r.s.mu.Unlock()
		return 0, err
	}
	defer r.s.mu.Unlock()

	var c int64
	for _, n := range r.s.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			t := now
			n.ReadAt = &t
			c++
		}
	}
	return c, nil
}
