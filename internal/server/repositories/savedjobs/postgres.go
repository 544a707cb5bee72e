package savedjobs

import (
	"context"
	"fmt"

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

func (r *PostgresRepository) Create(ctx context.Context, s *models.SavedJob) (*models.SavedJob, error) {
	query :=
		`INSERT INTO saved_jobs (user_id, job_id, created_at)
		 VALUES ($1, $2, $3)
		 RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, s.UserID, s.JobID, s.CreatedAt).Scan(&s.ID); err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: job already saved", common.ErrorConflict)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, userID, jobID string) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM saved_jobs WHERE user_id = $1 AND job_id = $2)`,
		userID, jobID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return ok, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, jobID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`, userID, jobID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RowsAffectedOrNotFound(res, common.ErrorNotFound)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, page models.Page) ([]models.SavedJob, error) {
	query :=
		`SELECT s.id, s.user_id, s.job_id, s.created_at, j.title, c.name
		 FROM saved_jobs s
		 JOIN jobs j ON j.id = s.job_id
		 JOIN companies c ON c.id = j.company_id
		 WHERE s.user_id = $1
		 ORDER BY s.created_at DESC
		 LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.SavedJob
	for rows.Next() {
		var s models.SavedJob
		if err := rows.Scan(&s.ID, &s.UserID, &s.JobID, &s.CreatedAt, &s.JobTitle, &s.CompanyName); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM saved_jobs WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
