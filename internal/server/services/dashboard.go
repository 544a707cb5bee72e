package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/repomanager"
)

// otherCategory labels jobs without a category in histograms.
const otherCategory = "Other"

// DashboardService computes statistics from live rows on every call.
type DashboardService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewDashboardService(db *sql.DB, repomanager repomanager.RepositoryManager) *DashboardService {
	return &DashboardService{db: db, repomanager: repomanager}
}

// counter runs a sequence of count queries, stopping at the first error.
type counter struct {
	ctx context.Context
	err error
}

func (c *counter) count(dst *int64, fn func(context.Context) (int64, error)) {
	if c.err != nil {
		return
	}
	*dst, c.err = fn(c.ctx)
}

func (s *DashboardService) AdminStats(ctx context.Context, actor *Actor) (*models.DashboardStats, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	users := s.repomanager.Users(s.db)
	jobs := s.repomanager.Jobs(s.db)
	apps := s.repomanager.Applications(s.db)

	st := &models.DashboardStats{}
	c := &counter{ctx: ctx}
	c.count(&st.TotalUsers, users.Count)
	c.count(&st.TotalJobs, jobs.Count)
	c.count(&st.ActiveJobs, func(ctx context.Context) (int64, error) {
		return jobs.CountByStatus(ctx, models.JobOpen)
	})
	c.count(&st.ClosedJobs, func(ctx context.Context) (int64, error) {
		return jobs.CountByStatus(ctx, models.JobClosed)
	})
	c.count(&st.PendingJobs, func(ctx context.Context) (int64, error) {
		return jobs.CountByStatus(ctx, models.JobPendingApproval)
	})
	c.count(&st.TotalCompanies, s.repomanager.Companies(s.db).Count)
	c.count(&st.TotalApplicants, func(ctx context.Context) (int64, error) {
		return users.CountByRole(ctx, models.RoleJobSeeker)
	})
	c.count(&st.TotalApplications, apps.Count)
	c.count(&st.PendingUsers, users.CountPendingEmployers)
	if c.err != nil {
		return nil, c.err
	}

	byStatus, err := apps.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	st.ApplicationsByStatus = byStatus
	return st, nil
}

// EmployerStats reports on the actor's company. TotalApplicants sums the
// per-job application counters.
func (s *DashboardService) EmployerStats(ctx context.Context, actor *Actor) (*models.EmployerStats, error) {
	if err := requireRole(actor, models.RoleEmployer); err != nil {
		return nil, err
	}
	company, err := s.repomanager.Companies(s.db).GetByUserID(ctx, actor.UserID())
	if err != nil {
		return nil, err
	}

	jobs := s.repomanager.Jobs(s.db)
	st := &models.EmployerStats{}
	c := &counter{ctx: ctx}
	c.count(&st.TotalPosted, func(ctx context.Context) (int64, error) {
		return jobs.CountByCompany(ctx, company.ID)
	})
	c.count(&st.ActiveJobs, func(ctx context.Context) (int64, error) {
		return jobs.CountByCompanyAndStatus(ctx, company.ID, models.JobOpen)
	})
	c.count(&st.ClosedJobs, func(ctx context.Context) (int64, error) {
		return jobs.CountByCompanyAndStatus(ctx, company.ID, models.JobClosed)
	})
	c.count(&st.TotalApplicants, func(ctx context.Context) (int64, error) {
		return jobs.SumApplicationCountByCompany(ctx, company.ID)
	})
	if c.err != nil {
		return nil, c.err
	}
	return st, nil
}

func (s *DashboardService) JobSeekerStats(ctx context.Context, actor *Actor) (*models.JobSeekerStats, error) {
	if err := requireRole(actor, models.RoleJobSeeker); err != nil {
		return nil, err
	}

	uid := actor.UserID()
	jobs := s.repomanager.Jobs(s.db)

	st := &models.JobSeekerStats{}
	c := &counter{ctx: ctx}
	c.count(&st.TotalApplied, func(ctx context.Context) (int64, error) {
		return s.repomanager.Applications(s.db).CountByApplicant(ctx, uid)
	})
	c.count(&st.SavedJobs, func(ctx context.Context) (int64, error) {
		return s.repomanager.SavedJobs(s.db).CountByUser(ctx, uid)
	})
	c.count(&st.UnreadNotifications, func(ctx context.Context) (int64, error) {
		return s.repomanager.Notifications(s.db).CountUnread(ctx, uid)
	})
	c.count(&st.TotalJobs, func(ctx context.Context) (int64, error) {
		return jobs.CountByStatus(ctx, models.JobOpen)
	})
	c.count(&st.TotalCompanies, s.repomanager.Companies(s.db).Count)
	c.count(&st.RemoteJobs, func(ctx context.Context) (int64, error) {
		return jobs.CountByWorkModeAndStatus(ctx, models.WorkRemote, models.JobOpen)
	})
	if c.err != nil {
		return nil, c.err
	}

	byCategory, err := jobs.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	st.CategoryCounts = make(map[string]int64, len(byCategory))
	for k, v := range byCategory {
		if k == "" {
			k = otherCategory
		}
		st.CategoryCounts[k] += v
	}
	return st, nil
}
