// Package repomanager vends repositories bound to a DBTX so services can
// use the same code on *sql.DB and inside transactions.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/jobportal/internal/dbx"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/applications"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/companies"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/cvs"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/notifications"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/savedjobs"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Companies(db dbx.DBTX) companies.Repository
	Jobs(db dbx.DBTX) jobs.Repository
	Applications(db dbx.DBTX) applications.Repository
	CVs(db dbx.DBTX) cvs.Repository
	SavedJobs(db dbx.DBTX) savedjobs.Repository
	Notifications(db dbx.DBTX) notifications.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
