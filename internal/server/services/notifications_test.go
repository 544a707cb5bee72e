package services

import (
	"testing"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationInbox(t *testing.T) {
	f := newFixture(t)
	seeker := f.seeker("s@example.com")
	other := f.seeker("o@example.com")
	repo := f.store.Notifications(nil)

	var ids []string
	for _, title := range []string{"a", "b", "c"} {
		n, err := repo.Create(f.ctx, &models.Notification{
			UserID:    seeker.UserID(),
			Title:     title,
			Type:      models.NotificationSystemAlert,
			CreatedAt: testNow,
		})
		require.NoError(t, err)
		ids = append(ids, n.ID)
	}

	svc := NewNotificationService(f.db, f.store)
	svc.now = fixedClock(testNow)

	list, err := svc.List(f.ctx, seeker, models.Page{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].Title, "newest first")

	unread, err := svc.CountUnread(f.ctx, seeker)
	require.NoError(t, err)
	assert.EqualValues(t, 3, unread)

	require.ErrorIs(t, svc.MarkRead(f.ctx, other, ids[0]), common.ErrorAccessDenied)
	require.ErrorIs(t, svc.MarkRead(f.ctx, seeker, "missing"), common.ErrorNotFound)
	require.NoError(t, svc.MarkRead(f.ctx, seeker, ids[0]))

	unread, err = svc.CountUnread(f.ctx, seeker)
	require.NoError(t, err)
	assert.EqualValues(t, 2, unread)

	changed, err := svc.MarkAllRead(f.ctx, seeker)
	require.NoError(t, err)
	assert.EqualValues(t, 2, changed)

	unread, err = svc.CountUnread(f.ctx, seeker)
	require.NoError(t, err)
	assert.Zero(t, unread)
}
