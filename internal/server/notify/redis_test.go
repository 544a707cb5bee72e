package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	channel string
	message interface{}
	err     error
}

func (f *fakePublisher) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	f.channel = channel
	f.message = message
	return redis.NewIntResult(1, f.err)
}

func TestRedisPublisher_Push(t *testing.T) {
	fp := &fakePublisher{}
	p := &RedisPublisher{client: fp}
	created := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	err := p.Push(context.Background(), &models.Notification{
		ID:         "n1",
		UserID:     "u1",
		Title:      "Application Update: Go dev",
		Message:    "hello",
		Type:       models.NotificationApplicationStatus,
		RelatedURL: "/dashboard/jobseeker/applied",
		CreatedAt:  created,
	})
	require.NoError(t, err)
	assert.Equal(t, "notifications:u1", fp.channel)

	body, ok := fp.message.([]byte)
	require.True(t, ok, "message must be a JSON byte slice")

	var got payload
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "n1", got.ID)
	assert.Equal(t, "APPLICATION_STATUS", got.Type)
	assert.Equal(t, created, got.CreatedAt)
}

func TestRedisPublisher_PushError(t *testing.T) {
	p := &RedisPublisher{client: &fakePublisher{err: errors.New("conn refused")}}
	err := p.Push(context.Background(), &models.Notification{UserID: "u1"})
	require.EqualError(t, err, "conn refused")
}

func TestNewRedisClient_BadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not-a-url://x")
	require.Error(t, err)
}
