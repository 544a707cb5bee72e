package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/redis/go-redis/v9"
)

const channelPrefix = "notifications:"

// Channel is the pub/sub channel a user's clients subscribe to.
func Channel(userID string) string {
	return channelPrefix + userID
}

type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

type payload struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Type       string    `json:"type"`
	RelatedURL string    `json:"related_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type RedisPublisher struct {
	client publisher
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// NewRedisClient parses redisURL and verifies the server answers PING.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func (p *RedisPublisher) Push(ctx context.Context, n *models.Notification) error {
	body, err := json.Marshal(payload{
		ID:         n.ID,
		Title:      n.Title,
		Message:    n.Message,
		Type:       string(n.Type),
		RelatedURL: n.RelatedURL,
		CreatedAt:  n.CreatedAt,
	})
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, Channel(n.UserID), body).Err()
}
