package jobs

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewPostgresRepository(db), mock
}

var jobColumns = []string{"id", "company_id", "title", "description", "requirements", "responsibilities",
	"location", "job_type", "work_mode", "category", "experience_level", "salary_min", "salary_max",
	"salary_currency", "openings", "application_deadline", "is_active", "status", "view_count",
	"application_count", "created_at", "updated_at", "published_at", "closed_at", "name", "user_id"}

func jobRow(id string, status string, category any, published any, now time.Time) []driver.Value {
	return []driver.Value{id, "c-1", "Go developer", "Write Go", "", "", "Riga", "FULL_TIME", "REMOTE",
		category, "SENIOR", 3000.0, nil, "EUR", 2, nil, true, status, int64(10), int64(3),
		now, now, published, nil, "Acme", "emp-1"}
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	min := 1000.0

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+jobs\s*\(company_id,.*RETURNING\s+id$`).
		WithArgs("c-1", "Go developer", "Write Go", "", "", "", "", "", nil, "", &min, nil, "", 1, nil,
			true, "PENDING_APPROVAL", nil, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("j-1"))

	j, err := repo.Create(context.Background(), &models.Job{
		CompanyID: "c-1", Title: "Go developer", Description: "Write Go", SalaryMin: &min,
		Openings: 1, IsActive: true, Status: models.JobPendingApproval, CreatedAt: now,
	})
	require.NoError(t, err)
	require.Equal(t, "j-1", j.ID)
	require.Equal(t, now, j.UpdatedAt)
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()
	q := `(?s)^SELECT\s+j\.id,.*FROM\s+jobs\s+j\s+JOIN\s+companies\s+c\s+ON\s+c\.id\s*=\s*j\.company_id\s+WHERE\s+j\.id\s*=\s*\$1$`

	mock.ExpectQuery(q).WithArgs("j-1").
		WillReturnRows(sqlmock.NewRows(jobColumns).AddRow(jobRow("j-1", "OPEN", "IT", now, now)...))

	j, err := repo.GetByID(context.Background(), "j-1")
	require.NoError(t, err)
	require.Equal(t, models.JobOpen, j.Status)
	require.Equal(t, models.WorkRemote, j.WorkMode)
	require.Equal(t, "IT", j.Category)
	require.Equal(t, "Acme", j.CompanyName)
	require.Equal(t, "emp-1", j.OwnerID)
	require.NotNil(t, j.SalaryMin)
	require.Nil(t, j.SalaryMax)
	require.NotNil(t, j.PublishedAt)
	require.Nil(t, j.ClosedAt)

	mock.ExpectQuery(q).WithArgs("ghost").WillReturnError(sql.ErrNoRows)
	_, err = repo.GetByID(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdateStatus(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()
	q := `(?s)^UPDATE\s+jobs\s+SET\s+status\s*=\s*\$2,\s*is_active\s*=\s*\$3,\s*published_at\s*=\s*\$4,\s*closed_at\s*=\s*\$5,\s*updated_at\s*=\s*\$6\s+WHERE\s+id\s*=\s*\$1$`

	mock.ExpectExec(q).WithArgs("j-1", "CLOSED", true, nil, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), &models.Job{
		ID: "j-1", Status: models.JobClosed, IsActive: true, ClosedAt: &now, UpdatedAt: now,
	})
	require.NoError(t, err)
}

func TestIncrementViewCount(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	q := `(?s)^UPDATE\s+jobs\s+SET\s+view_count\s*=\s*view_count\s*\+\s*1\s+WHERE\s+id\s*=\s*\$1$`

	mock.ExpectExec(q).WithArgs("j-1").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.IncrementViewCount(context.Background(), "j-1"))

	mock.ExpectExec(q).WithArgs("j-2").WillReturnError(errors.New("db down"))
	require.ErrorContains(t, repo.IncrementViewCount(context.Background(), "j-2"), "db error: db down")
}

func TestAddApplicationCount(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectExec(`(?s)^UPDATE\s+jobs\s+SET\s+application_count\s*=\s*GREATEST\(application_count\s*\+\s*\$2,\s*0\)`).
		WithArgs("j-1", -1, now).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.AddApplicationCount(context.Background(), "j-1", -1, now)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestListOpen(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`(?s)WHERE\s+j\.status\s*=\s*'OPEN'\s+AND\s+j\.is_active\s+ORDER\s+BY\s+j\.created_at\s+DESC\s+LIMIT\s+\$1\s+OFFSET\s+\$2$`).
		WithArgs(5, 10).
		WillReturnRows(sqlmock.NewRows(jobColumns).
			AddRow(jobRow("j-2", "OPEN", nil, now, now)...).
			AddRow(jobRow("j-1", "OPEN", "IT", now, now)...))

	got, err := repo.ListOpen(context.Background(), models.Page{Limit: 5, Offset: 10})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "", got[0].Category)
	require.Equal(t, "j-1", got[1].ID)
}

func TestSumApplicationCountByCompany(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT\s+COALESCE\(SUM\(application_count\),\s*0\)\s+FROM\s+jobs\s+WHERE\s+company_id\s*=\s*\$1$`).
		WithArgs("c-1").
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(int64(17)))

	n, err := repo.SumApplicationCountByCompany(context.Background(), "c-1")
	require.NoError(t, err)
	require.Equal(t, int64(17), n)
}

func TestCountByCategory(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT\s+category,\s*COUNT\(\*\)\s+FROM\s+jobs\s+WHERE\s+is_active\s+GROUP\s+BY\s+category$`).
		WillReturnRows(sqlmock.NewRows([]string{"category", "count"}).
			AddRow("IT", int64(4)).
			AddRow(nil, int64(2)).
			AddRow("Finance", int64(1)))

	got, err := repo.CountByCategory(context.Background())
	require.NoError(t, err)
	require.Equal(t, map[string]int64{"IT": 4, "": 2, "Finance": 1}, got)
}
