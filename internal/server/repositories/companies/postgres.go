package companies

import (
	"context"
	"database/sql"
	"errors"
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

func (r *PostgresRepository) Create(ctx context.Context, c *models.Company) (*models.Company, error) {
	query :=
		`INSERT INTO companies (user_id, name, description, industry, website, city,
			is_verified, verification_status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		c.UserID, c.Name, c.Description, c.Industry, c.Website, c.City,
		c.IsVerified, string(c.VerificationStatus), c.CreatedAt).Scan(&c.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: user already has a company", common.ErrorConflict)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	c.UpdatedAt = c.CreatedAt
	return c, nil
}

func (r *PostgresRepository) get(ctx context.Context, column, value string) (*models.Company, error) {
	query :=
		`SELECT id, user_id, name, description, industry, website, city,
			is_verified, verification_status, verification_notes, verified_at, created_at, updated_at
		 FROM companies
		 WHERE ` + column + ` = $1`

	c := &models.Company{}
	var status string
	var verifiedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, value).Scan(&c.ID, &c.UserID, &c.Name, &c.Description,
		&c.Industry, &c.Website, &c.City, &c.IsVerified, &status, &c.VerificationNotes,
		&verifiedAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	c.VerificationStatus = models.VerificationStatus(status)
	if verifiedAt.Valid {
		c.VerifiedAt = &verifiedAt.Time
	}
	return c, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Company, error) {
	return r.get(ctx, "id", id)
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.Company, error) {
	return r.get(ctx, "user_id", userID)
}

func (r *PostgresRepository) UpdateVerification(ctx context.Context, c *models.Company) error {
	query :=
		`UPDATE companies
		 SET is_verified = $2, verification_status = $3, verification_notes = $4,
			verified_at = $5, updated_at = $6
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, c.ID, c.IsVerified, string(c.VerificationStatus),
		c.VerificationNotes, c.VerifiedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RowsAffectedOrNotFound(res, common.ErrorNotFound)
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM companies`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
