package applications

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

const selectApplication = `SELECT a.id, a.job_id, a.applicant_id, a.cv_id, a.cover_letter, a.status,
		a.employer_notes, a.reviewed_at, a.created_at, a.updated_at,
		j.title, c.name, c.user_id, u.email
	 FROM applications a
	 JOIN jobs j ON j.id = a.job_id
	 JOIN companies c ON c.id = j.company_id
	 JOIN users u ON u.id = a.applicant_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanApplication(row scanner) (*models.Application, error) {
	a := &models.Application{}
	var (
		cvID       sql.NullString
		status     string
		reviewedAt sql.NullTime
	)
	err := row.Scan(&a.ID, &a.JobID, &a.ApplicantID, &cvID, &a.CoverLetter, &status,
		&a.EmployerNotes, &reviewedAt, &a.CreatedAt, &a.UpdatedAt,
		&a.JobTitle, &a.CompanyName, &a.EmployerID, &a.ApplicantEmail)
	if err != nil {
		return nil, err
	}
	a.Status = models.ApplicationStatus(status)
	if cvID.Valid {
		a.CVID = &cvID.String
	}
	if reviewedAt.Valid {
		a.ReviewedAt = &reviewedAt.Time
	}
	return a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.Application) (*models.Application, error) {
	query :=
		`INSERT INTO applications (job_id, applicant_id, cv_id, cover_letter, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		a.JobID, a.ApplicantID, a.CVID, a.CoverLetter, string(a.Status), a.CreatedAt).Scan(&a.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: already applied to this job", common.ErrorConflict)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	a.UpdatedAt = a.CreatedAt
	return a, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Application, error) {
	query := selectApplication + `
	 WHERE a.id = $1`

	app, err := scanApplication(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return app, nil
}

func (r *PostgresRepository) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var ok bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&ok); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return ok, nil
}

func (r *PostgresRepository) ExistsForJobAndApplicant(ctx context.Context, jobID, applicantID string) (bool, error) {
	return r.exists(ctx,
		`SELECT EXISTS (SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2)`,
		jobID, applicantID)
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, notes string, reviewedAt time.Time) error {
	query :=
		`UPDATE applications
		 SET status = $2, employer_notes = $3, reviewed_at = $4, updated_at = $4
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, string(status), notes, reviewedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RowsAffectedOrNotFound(res, common.ErrorNotFound)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RowsAffectedOrNotFound(res, common.ErrorNotFound)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]models.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) ListByApplicant(ctx context.Context, applicantID string, page models.Page) ([]models.Application, error) {
	query := selectApplication + `
	 WHERE a.applicant_id = $1
	 ORDER BY a.created_at DESC
	 LIMIT $2 OFFSET $3`
	return r.list(ctx, query, applicantID, page.Limit, page.Offset)
}

func (r *PostgresRepository) ListByJob(ctx context.Context, jobID string, page models.Page) ([]models.Application, error) {
	query := selectApplication + `
	 WHERE a.job_id = $1
	 ORDER BY a.created_at DESC
	 LIMIT $2 OFFSET $3`
	return r.list(ctx, query, jobID, page.Limit, page.Offset)
}

func (r *PostgresRepository) ListByCompany(ctx context.Context, companyID string, page models.Page) ([]models.Application, error) {
	query := selectApplication + `
	 WHERE j.company_id = $1
	 ORDER BY a.created_at DESC
	 LIMIT $2 OFFSET $3`
	return r.list(ctx, query, companyID, page.Limit, page.Offset)
}

func (r *PostgresRepository) ListRecent(ctx context.Context, page models.Page) ([]models.Application, error) {
	query := selectApplication + `
	 ORDER BY a.created_at DESC
	 LIMIT $1 OFFSET $2`
	return r.list(ctx, query, page.Limit, page.Offset)
}

func (r *PostgresRepository) CVSharedWithEmployer(ctx context.Context, cvID, employerID string) (bool, error) {
	return r.exists(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM applications a
			JOIN jobs j ON j.id = a.job_id
			JOIN companies c ON c.id = j.company_id
			WHERE a.cv_id = $1 AND c.user_id = $2)`,
		cvID, employerID)
}

func (r *PostgresRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM applications`)
}

func (r *PostgresRepository) CountByApplicant(ctx context.Context, applicantID string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM applications WHERE applicant_id = $1`, applicantID)
}

func (r *PostgresRepository) CountByStatus(ctx context.Context) (map[models.ApplicationStatus]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := map[models.ApplicationStatus]int64{}
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result[models.ApplicationStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
