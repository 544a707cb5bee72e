package notifications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/dbx"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectNotification = `SELECT id, user_id, title, message, type, related_url, is_read, read_at, created_at
	 FROM notifications`

type scanner interface {
	Scan(dest ...any) error
}

func scanNotification(row scanner) (*models.Notification, error) {
	n := &models.Notification{}
	var typ string
	var readAt sql.NullTime
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &typ, &n.RelatedURL,
		&n.IsRead, &readAt, &n.CreatedAt); err != nil {
		return nil, err
	}
	n.Type = models.NotificationType(typ)
	if readAt.Valid {
		n.ReadAt = &readAt.Time
	}
	return n, nil
}

func (r *PostgresRepository) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	query :=
		`INSERT INTO notifications (user_id, title, message, type, related_url, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query, n.UserID, n.Title, n.Message, string(n.Type),
		n.RelatedURL, n.CreatedAt).Scan(&n.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	n, err := scanNotification(r.db.QueryRowContext(ctx, selectNotification+`
	 WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, page models.Page) ([]models.Notification, error) {
	rows, err := r.db.QueryContext(ctx, selectNotification+`
	 WHERE user_id = $1
	 ORDER BY created_at DESC
	 LIMIT $2 OFFSET $3`, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) MarkRead(ctx context.Context, id string, now time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE, read_at = COALESCE(read_at, $2) WHERE id = $1`, id, now)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RowsAffectedOrNotFound(res, common.ErrorNotFound)
}

func (r *PostgresRepository) MarkAllRead(ctx context.Context, userID string, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE, read_at = $2 WHERE user_id = $1 AND NOT is_read`, userID, now)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
