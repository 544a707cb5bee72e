package jobs

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

const selectJob = `SELECT j.id, j.company_id, j.title, j.description, j.requirements, j.responsibilities,
		j.location, j.job_type, j.work_mode, j.category, j.experience_level,
		j.salary_min::float8, j.salary_max::float8, j.salary_currency, j.openings,
		j.application_deadline, j.is_active, j.status, j.view_count, j.application_count,
		j.created_at, j.updated_at, j.published_at, j.closed_at, c.name, c.user_id
	 FROM jobs j
	 JOIN companies c ON c.id = j.company_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (*models.Job, error) {
	j := &models.Job{}
	var (
		workMode, status                string
		category                        sql.NullString
		salaryMin, salaryMax            sql.NullFloat64
		deadline, published, closedTime sql.NullTime
	)
	err := row.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Requirements, &j.Responsibilities,
		&j.Location, &j.JobType, &workMode, &category, &j.ExperienceLevel,
		&salaryMin, &salaryMax, &j.SalaryCurrency, &j.Openings,
		&deadline, &j.IsActive, &status, &j.ViewCount, &j.ApplicationCount,
		&j.CreatedAt, &j.UpdatedAt, &published, &closedTime, &j.CompanyName, &j.OwnerID)
	if err != nil {
		return nil, err
	}
	j.WorkMode = models.WorkMode(workMode)
	j.Status = models.JobStatus(status)
	j.Category = category.String
	if salaryMin.Valid {
		j.SalaryMin = &salaryMin.Float64
	}
	if salaryMax.Valid {
		j.SalaryMax = &salaryMax.Float64
	}
	if deadline.Valid {
		j.ApplicationDeadline = &deadline.Time
	}
	if published.Valid {
		j.PublishedAt = &published.Time
	}
	if closedTime.Valid {
		j.ClosedAt = &closedTime.Time
	}
	return j, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *PostgresRepository) Create(ctx context.Context, j *models.Job) (*models.Job, error) {
	query :=
		`INSERT INTO jobs (company_id, title, description, requirements, responsibilities, location,
			job_type, work_mode, category, experience_level, salary_min, salary_max, salary_currency,
			openings, application_deadline, is_active, status, published_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $19)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		j.CompanyID, j.Title, j.Description, j.Requirements, j.Responsibilities, j.Location,
		j.JobType, string(j.WorkMode), nullString(j.Category), j.ExperienceLevel, j.SalaryMin, j.SalaryMax,
		j.SalaryCurrency, j.Openings, j.ApplicationDeadline, j.IsActive, string(j.Status),
		j.PublishedAt, j.CreatedAt).Scan(&j.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	j.UpdatedAt = j.CreatedAt
	return j, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Job, error) {
	query := selectJob + `
	 WHERE j.id = $1`

	job, err := scanJob(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return job, nil
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RowsAffectedOrNotFound(res, common.ErrorNotFound)
}

func (r *PostgresRepository) Update(ctx context.Context, j *models.Job) error {
	query :=
		`UPDATE jobs
		 SET title = $2, description = $3, requirements = $4, responsibilities = $5, location = $6,
			job_type = $7, work_mode = $8, category = $9, experience_level = $10, salary_min = $11,
			salary_max = $12, salary_currency = $13, openings = $14, application_deadline = $15,
			updated_at = $16
		 WHERE id = $1`

	return r.exec(ctx, query, j.ID, j.Title, j.Description, j.Requirements, j.Responsibilities, j.Location,
		j.JobType, string(j.WorkMode), nullString(j.Category), j.ExperienceLevel, j.SalaryMin, j.SalaryMax,
		j.SalaryCurrency, j.Openings, j.ApplicationDeadline, j.UpdatedAt)
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, j *models.Job) error {
	query :=
		`UPDATE jobs
		 SET status = $2, is_active = $3, published_at = $4, closed_at = $5, updated_at = $6
		 WHERE id = $1`

	return r.exec(ctx, query, j.ID, string(j.Status), j.IsActive, j.PublishedAt, j.ClosedAt, j.UpdatedAt)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
}

func (r *PostgresRepository) IncrementViewCount(ctx context.Context, id string) error {
	return r.exec(ctx, `UPDATE jobs SET view_count = view_count + 1 WHERE id = $1`, id)
}

func (r *PostgresRepository) AddApplicationCount(ctx context.Context, id string, delta int, now time.Time) error {
	query :=
		`UPDATE jobs
		 SET application_count = GREATEST(application_count + $2, 0), updated_at = $3
		 WHERE id = $1`
	return r.exec(ctx, query, id, delta, now)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]models.Job, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) ListOpen(ctx context.Context, page models.Page) ([]models.Job, error) {
	query := selectJob + `
	 WHERE j.status = 'OPEN' AND j.is_active
	 ORDER BY j.created_at DESC
	 LIMIT $1 OFFSET $2`
	return r.list(ctx, query, page.Limit, page.Offset)
}

func (r *PostgresRepository) ListByStatus(ctx context.Context, status models.JobStatus, page models.Page) ([]models.Job, error) {
	query := selectJob + `
	 WHERE j.status = $1
	 ORDER BY j.created_at DESC
	 LIMIT $2 OFFSET $3`
	return r.list(ctx, query, string(status), page.Limit, page.Offset)
}

func (r *PostgresRepository) ListByCompany(ctx context.Context, companyID string, page models.Page) ([]models.Job, error) {
	query := selectJob + `
	 WHERE j.company_id = $1
	 ORDER BY j.created_at DESC
	 LIMIT $2 OFFSET $3`
	return r.list(ctx, query, companyID, page.Limit, page.Offset)
}

func (r *PostgresRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM jobs`)
}

func (r *PostgresRepository) CountByStatus(ctx context.Context, status models.JobStatus) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM jobs WHERE status = $1`, string(status))
}

func (r *PostgresRepository) CountByCompany(ctx context.Context, companyID string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM jobs WHERE company_id = $1`, companyID)
}

func (r *PostgresRepository) CountByCompanyAndStatus(ctx context.Context, companyID string, status models.JobStatus) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM jobs WHERE company_id = $1 AND status = $2`, companyID, string(status))
}

func (r *PostgresRepository) CountByWorkModeAndStatus(ctx context.Context, mode models.WorkMode, status models.JobStatus) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM jobs WHERE work_mode = $1 AND status = $2`, string(mode), string(status))
}

func (r *PostgresRepository) SumApplicationCountByCompany(ctx context.Context, companyID string) (int64, error) {
	return r.count(ctx, `SELECT COALESCE(SUM(application_count), 0) FROM jobs WHERE company_id = $1`, companyID)
}

func (r *PostgresRepository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, COUNT(*) FROM jobs
		 WHERE is_active
		 GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := map[string]int64{}
	for rows.Next() {
		var category sql.NullString
		var n int64
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result[category.String] += n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
