package cvs

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

const selectCV = `SELECT id, user_id, title, summary, skills, file_name, storage_key, is_default, created_at, updated_at
	 FROM cvs`

type scanner interface {
	Scan(dest ...any) error
}

func scanCV(row scanner) (*models.CV, error) {
	cv := &models.CV{}
	err := row.Scan(&cv.ID, &cv.UserID, &cv.Title, &cv.Summary, &cv.Skills, &cv.FileName,
		&cv.StorageKey, &cv.IsDefault, &cv.CreatedAt, &cv.UpdatedAt)
	return cv, err
}

func (r *PostgresRepository) Create(ctx context.Context, cv *models.CV) (*models.CV, error) {
	query :=
		`INSERT INTO cvs (user_id, title, summary, skills, file_name, storage_key, is_default, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query, cv.UserID, cv.Title, cv.Summary, cv.Skills,
		cv.FileName, cv.StorageKey, cv.IsDefault, cv.CreatedAt).Scan(&cv.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: user already has a default CV", common.ErrorConflict)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	cv.UpdatedAt = cv.CreatedAt
	return cv, nil
}

func (r *PostgresRepository) one(ctx context.Context, query string, args ...any) (*models.CV, error) {
	cv, err := scanCV(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return cv, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.CV, error) {
	return r.one(ctx, selectCV+`
	 WHERE id = $1`, id)
}

func (r *PostgresRepository) GetDefault(ctx context.Context, userID string) (*models.CV, error) {
	return r.one(ctx, selectCV+`
	 WHERE user_id = $1 AND is_default`, userID)
}

func (r *PostgresRepository) GetLatest(ctx context.Context, userID string) (*models.CV, error) {
	return r.one(ctx, selectCV+`
	 WHERE user_id = $1
	 ORDER BY created_at DESC
	 LIMIT 1`, userID)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.CV, error) {
	rows, err := r.db.QueryContext(ctx, selectCV+`
	 WHERE user_id = $1
	 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.CV
	for rows.Next() {
		cv, err := scanCV(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *cv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cvs WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Update(ctx context.Context, cv *models.CV) error {
	query :=
		`UPDATE cvs
		 SET title = $2, summary = $3, skills = $4, file_name = $5, updated_at = $6
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, cv.ID, cv.Title, cv.Summary, cv.Skills, cv.FileName, cv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RowsAffectedOrNotFound(res, common.ErrorNotFound)
}

func (r *PostgresRepository) ClearDefault(ctx context.Context, userID string, now time.Time) error {
	query :=
		`UPDATE cvs SET is_default = FALSE, updated_at = $2
		 WHERE user_id = $1 AND is_default`

	if _, err := r.db.ExecContext(ctx, query, userID, now); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetDefault(ctx context.Context, id string, now time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE cvs SET is_default = TRUE, updated_at = $2 WHERE id = $1`, id, now)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return fmt.Errorf("%w: user already has a default CV", common.ErrorConflict)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RowsAffectedOrNotFound(res, common.ErrorNotFound)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cvs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RowsAffectedOrNotFound(res, common.ErrorNotFound)
}
