package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/jobportal/internal/dbx"
	"github.com/dmitrijs2005/jobportal/internal/server/migrations"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/applications"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/companies"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/cvs"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/notifications"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/savedjobs"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL repositories and runs the
// embedded goose migrations.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Companies(db dbx.DBTX) companies.Repository {
	return companies.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Jobs(db dbx.DBTX) jobs.Repository {
	return jobs.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Applications(db dbx.DBTX) applications.Repository {
	return applications.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) CVs(db dbx.DBTX) cvs.Repository {
	return cvs.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) SavedJobs(db dbx.DBTX) savedjobs.Repository {
	return savedjobs.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Notifications(db dbx.DBTX) notifications.Repository {
	return notifications.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

// gooseUpContext is a seam for tests.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}
