package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
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

const selectUser = `SELECT u.id, u.email, u.password_hash, u.first_name, u.last_name, u.phone,
		u.is_active, u.is_verified, u.created_at, u.updated_at,
		COALESCE(string_agg(r.role, ',' ORDER BY r.role), '')
	 FROM users u
	 LEFT JOIN user_roles r ON r.user_id = u.id`

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*models.User, error) {
	u := &models.User{}
	var roles string
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone,
		&u.IsActive, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt, &roles); err != nil {
		return nil, err
	}
	u.Roles = splitRoles(roles)
	return u, nil
}

func splitRoles(s string) []models.Role {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	roles := make([]models.Role, 0, len(parts))
	for _, p := range parts {
		roles = append(roles, models.Role(p))
	}
	return roles
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (email, password_hash, first_name, last_name, phone, is_active, is_verified, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Phone,
		user.IsActive, user.IsVerified, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: email already in use", common.ErrorConflict)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	user.UpdatedAt = user.CreatedAt

	for _, role := range user.Roles {
		if err := r.AddRole(ctx, user.ID, role); err != nil {
			return nil, err
		}
	}

	return user, nil
}

func (r *PostgresRepository) AddRole(ctx context.Context, userID string, role models.Role) error {
	query :=
		`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, userID, string(role)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) getOne(ctx context.Context, where string, arg any) (*models.User, error) {
	query := selectUser + "\n\t WHERE " + where + "\n\t GROUP BY u.id"

	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, "u.id = $1", id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, "u.email = $1", email)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) List(ctx context.Context, page models.Page) ([]models.User, error) {
	query := selectUser + `
	 GROUP BY u.id
	 ORDER BY u.created_at DESC
	 LIMIT $1 OFFSET $2`
	return r.list(ctx, query, page.Limit, page.Offset)
}

func (r *PostgresRepository) ListPendingEmployers(ctx context.Context) ([]models.User, error) {
	query := selectUser + `
	 WHERE u.is_verified = FALSE
	   AND EXISTS (SELECT 1 FROM user_roles e WHERE e.user_id = u.id AND e.role = 'EMPLOYER')
	 GROUP BY u.id
	 ORDER BY u.created_at`
	return r.list(ctx, query)
}

func (r *PostgresRepository) update(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RowsAffectedOrNotFound(res, common.ErrorNotFound)
}

func (r *PostgresRepository) SetActive(ctx context.Context, id string, active bool, now time.Time) error {
	return r.update(ctx, `UPDATE users SET is_active = $2, updated_at = $3 WHERE id = $1`, id, active, now)
}

func (r *PostgresRepository) SetVerified(ctx context.Context, id string, verified bool, now time.Time) error {
	return r.update(ctx, `UPDATE users SET is_verified = $2, updated_at = $3 WHERE id = $1`, id, verified, now)
}

func (r *PostgresRepository) SetPasswordHash(ctx context.Context, id string, hash string, now time.Time) error {
	return r.update(ctx, `UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`, id, hash, now)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.update(ctx, `DELETE FROM users WHERE id = $1`, id)
}

func (r *PostgresRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users`)
}

func (r *PostgresRepository) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM user_roles WHERE role = $1`, string(role))
}

func (r *PostgresRepository) CountPendingEmployers(ctx context.Context) (int64, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM users u
		 WHERE u.is_verified = FALSE
		   AND EXISTS (SELECT 1 FROM user_roles e WHERE e.user_id = u.id AND e.role = 'EMPLOYER')`)
}
