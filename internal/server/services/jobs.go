package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/logging"
	"github.com/dmitrijs2005/jobportal/internal/server/metrics"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/repomanager"
)

// JobInput carries the editable fields of a job. CompanyID and Status are
// honoured only for admin-created jobs.
type JobInput struct {
	CompanyID           string
	Title               string
	Description         string
	Requirements        string
	Responsibilities    string
	Location            string
	JobType             string
	WorkMode            models.WorkMode
	Category            string
	ExperienceLevel     string
	SalaryMin           *float64
	SalaryMax           *float64
	SalaryCurrency      string
	Openings            int
	ApplicationDeadline *time.Time
	Status              models.JobStatus
}

func (in *JobInput) validate() error {
	if common.IsBlank(in.Title) {
		return fmt.Errorf("%w: job title is required", common.ErrorValidation)
	}
	if common.IsBlank(in.Description) {
		return fmt.Errorf("%w: job description is required", common.ErrorValidation)
	}
	if in.WorkMode != "" && !in.WorkMode.Valid() {
		return fmt.Errorf("%w: unknown work mode %q", common.ErrorValidation, in.WorkMode)
	}
	if in.SalaryMin != nil && in.SalaryMax != nil && *in.SalaryMin > *in.SalaryMax {
		return fmt.Errorf("%w: salary minimum exceeds maximum", common.ErrorValidation)
	}
	if in.Openings < 0 {
		return fmt.Errorf("%w: openings must not be negative", common.ErrorValidation)
	}
	return nil
}

func (in *JobInput) applyTo(j *models.Job) {
	j.Title = in.Title
	j.Description = in.Description
	j.Requirements = in.Requirements
	j.Responsibilities = in.Responsibilities
	j.Location = in.Location
	j.JobType = in.JobType
	j.WorkMode = in.WorkMode
	j.Category = in.Category
	j.ExperienceLevel = in.ExperienceLevel
	j.SalaryMin = in.SalaryMin
	j.SalaryMax = in.SalaryMax
	j.SalaryCurrency = in.SalaryCurrency
	j.Openings = in.Openings
	if j.Openings == 0 {
		j.Openings = common.DefaultOpenings
	}
	j.ApplicationDeadline = in.ApplicationDeadline
}

type JobService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	metrics     *metrics.Metrics
	log         logging.Logger
	now         func() time.Time
}

func NewJobService(db *sql.DB, repomanager repomanager.RepositoryManager, m *metrics.Metrics, log logging.Logger) *JobService {
	return &JobService{
		db:          db,
		repomanager: repomanager,
		metrics:     m,
		log:         log.With("module", "jobs"),
		now:         time.Now,
	}
}

// CreateJob posts a job. Employers post into their own company and the job
// waits for admin approval; admins post into any company, OPEN by default.
func (s *JobService) CreateJob(ctx context.Context, actor *Actor, in JobInput) (*models.Job, error) {
	switch {
	case actor.IsAdmin():
		return s.createAsAdmin(ctx, in)
	case actor.Has(models.RoleEmployer):
		return s.createAsEmployer(ctx, actor, in)
	default:
		return nil, fmt.Errorf("%w: only employers and admins can post jobs", common.ErrorAccessDenied)
	}
}

func (s *JobService) createAsEmployer(ctx context.Context, actor *Actor, in JobInput) (*models.Job, error) {
	if !actor.IsVerified() {
		return nil, fmt.Errorf("%w: employer account is awaiting admin approval", common.ErrorAccountNotApproved)
	}

	company, err := s.repomanager.Companies(s.db).GetByUserID(ctx, actor.UserID())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: employer has no company", common.ErrorNotFound)
		}
		return nil, err
	}

	if err := in.validate(); err != nil {
		return nil, err
	}

	return s.insert(ctx, company.ID, models.JobPendingApproval, in)
}

func (s *JobService) createAsAdmin(ctx context.Context, in JobInput) (*models.Job, error) {
	if common.IsBlank(in.CompanyID) {
		return nil, fmt.Errorf("%w: company is required", common.ErrorValidation)
	}
	status := in.Status
	if status == "" {
		status = models.JobOpen
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown job status %q", common.ErrorValidation, status)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	if _, err := s.repomanager.Companies(s.db).GetByID(ctx, in.CompanyID); err != nil {
		return nil, err
	}

	return s.insert(ctx, in.CompanyID, status, in)
}

func (s *JobService) insert(ctx context.Context, companyID string, status models.JobStatus, in JobInput) (*models.Job, error) {
	now := s.now().UTC()
	job := &models.Job{CompanyID: companyID, CreatedAt: now}
	in.applyTo(job)
	transition(job, status, now)

	repo := s.repomanager.Jobs(s.db)
	created, err := repo.Create(ctx, job)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "job created", "job_id", created.ID, "company_id", companyID, "status", string(status))
	return repo.GetByID(ctx, created.ID)
}

// authorizeJob allows admins and the employer owning the job's company.
func authorizeJob(actor *Actor, job *models.Job) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.Has(models.RoleEmployer) && actor.Owns(job.OwnerID) {
		return nil
	}
	return fmt.Errorf("%w: job belongs to another employer", common.ErrorAccessDenied)
}

func (s *JobService) UpdateJob(ctx context.Context, actor *Actor, jobID string, in JobInput) (*models.Job, error) {
	repo := s.repomanager.Jobs(s.db)

	job, err := repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := authorizeJob(actor, job); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	in.applyTo(job)
	job.UpdatedAt = s.now().UTC()
	if err := repo.Update(ctx, job); err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, jobID)
}

// DeleteJob removes the job together with its applications and saved-job
// rows.
func (s *JobService) DeleteJob(ctx context.Context, actor *Actor, jobID string) error {
	repo := s.repomanager.Jobs(s.db)

	job, err := repo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if err := authorizeJob(actor, job); err != nil {
		return err
	}
	if err := repo.Delete(ctx, jobID); err != nil {
		return err
	}
	s.log.Info(ctx, "job deleted", "job_id", jobID, "actor_id", actor.UserID())
	return nil
}

// transition moves job to status and maintains the timestamps and
// visibility flag that go with it.
func transition(job *models.Job, status models.JobStatus, now time.Time) {
	job.Status = status
	job.UpdatedAt = now
	switch status {
	case models.JobOpen:
		job.PublishedAt = &now
		job.ClosedAt = nil
		job.IsActive = true
	case models.JobClosed:
		job.ClosedAt = &now
		job.IsActive = false
	default:
		job.IsActive = false
	}
}

func (s *JobService) changeStatus(ctx context.Context, job *models.Job, status models.JobStatus) (*models.Job, error) {
	transition(job, status, s.now().UTC())

	repo := s.repomanager.Jobs(s.db)
	if err := repo.UpdateStatus(ctx, job); err != nil {
		return nil, err
	}
	s.metrics.JobStatusChanged(string(status))
	s.log.Info(ctx, "job status changed", "job_id", job.ID, "status", string(status))
	return repo.GetByID(ctx, job.ID)
}

// SetJobStatus sets any status on a job. No transition table is enforced;
// only the admin-or-owner guard applies.
func (s *JobService) SetJobStatus(ctx context.Context, actor *Actor, jobID string, status models.JobStatus) (*models.Job, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown job status %q", common.ErrorValidation, status)
	}

	job, err := s.repomanager.Jobs(s.db).GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := authorizeJob(actor, job); err != nil {
		return nil, err
	}
	return s.changeStatus(ctx, job, status)
}

// ApproveJob publishes a job. Approving an already OPEN job republishes it
// with a fresh publishedAt.
func (s *JobService) ApproveJob(ctx context.Context, actor *Actor, jobID string) (*models.Job, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	job, err := s.repomanager.Jobs(s.db).GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return s.changeStatus(ctx, job, models.JobOpen)
}

func (s *JobService) RejectJob(ctx context.Context, actor *Actor, jobID string) (*models.Job, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	job, err := s.repomanager.Jobs(s.db).GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return s.changeStatus(ctx, job, models.JobCancelled)
}

// GetJob returns a job and counts the view. The counter is approximate: a
// failed increment is logged and the read still succeeds.
func (s *JobService) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	repo := s.repomanager.Jobs(s.db)

	job, err := repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := repo.IncrementViewCount(ctx, jobID); err != nil {
		s.log.Warn(ctx, "view count not updated", "job_id", jobID, "error", err)
		return job, nil
	}
	job.ViewCount++
	return job, nil
}

func (s *JobService) ListOpenJobs(ctx context.Context, page models.Page) ([]models.Job, error) {
	return s.repomanager.Jobs(s.db).ListOpen(ctx, normalizePage(page))
}

// RecommendedJobs returns the latest open jobs.
func (s *JobService) RecommendedJobs(ctx context.Context) ([]models.Job, error) {
	return s.repomanager.Jobs(s.db).ListOpen(ctx, models.Page{Limit: common.DefaultRecommendLimit})
}

func (s *JobService) ListPendingJobs(ctx context.Context, actor *Actor, page models.Page) ([]models.Job, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.repomanager.Jobs(s.db).ListByStatus(ctx, models.JobPendingApproval, normalizePage(page))
}

// ListEmployerJobs lists every job of the actor's company regardless of
// status.
func (s *JobService) ListEmployerJobs(ctx context.Context, actor *Actor, page models.Page) ([]models.Job, error) {
	if err := requireRole(actor, models.RoleEmployer); err != nil {
		return nil, err
	}
	company, err := s.repomanager.Companies(s.db).GetByUserID(ctx, actor.UserID())
	if err != nil {
		return nil, err
	}
	return s.repomanager.Jobs(s.db).ListByCompany(ctx, company.ID, normalizePage(page))
}
